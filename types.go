package autobuild

import "log/slog"

// UnknownPolicy controls how With handles keys outside the plan.
type UnknownPolicy int

const (
	UnknownStrict UnknownPolicy = iota // Reject the key with ErrKeyNotInPlan.
	UnknownStrip                       // Drop the key and keep the builder unchanged.
)

// Severity expresses how a re-supplied key is treated.
type Severity int

const (
	Ignore Severity = iota // Overwrite silently.
	Warn                   // Overwrite and log a warning.
	Error                  // Reject with ErrResupplied.
)

// BuildOpt bundles builder options. When several are passed variadically the
// last one wins.
type BuildOpt struct {
	Unknown    UnknownPolicy
	OnResupply Severity
	// Logger receives debug events for plan rejection and finalization.
	// A nil Logger discards everything.
	Logger *slog.Logger
}

var discardLogger = slog.New(slog.DiscardHandler)

func lastOpt(opt []BuildOpt) BuildOpt {
	if len(opt) == 0 {
		return BuildOpt{}
	}
	return opt[len(opt)-1]
}

func (o BuildOpt) logger() *slog.Logger {
	if o.Logger == nil {
		return discardLogger
	}
	return o.Logger
}
