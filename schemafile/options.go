package schemafile

import (
	"log/slog"

	"github.com/reoring/autobuild"
)

// Option adjusts the BuildOpt read from a document.
type Option func(*autobuild.BuildOpt)

// WithLogger sets the logger of loaded schemas.
func WithLogger(l *slog.Logger) Option {
	return func(o *autobuild.BuildOpt) { o.Logger = l }
}

// WithUnknown overrides the document's unknown policy.
func WithUnknown(p autobuild.UnknownPolicy) Option {
	return func(o *autobuild.BuildOpt) { o.Unknown = p }
}

// WithResupply overrides the document's re-supply severity.
func WithResupply(s autobuild.Severity) Option {
	return func(o *autobuild.BuildOpt) { o.OnResupply = s }
}
