package autobuild

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/autobuild/i18n"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeRequired     = "required"      // plan omits a required field
	CodeUnknownKey   = "unknown_key"   // key is not declared by the schema
	CodeNotInPlan    = "not_in_plan"   // key is declared but was not planned
	CodeDuplicateKey = "duplicate_key" // schema declares a name twice, or a key was re-supplied
	CodeInvalidType  = "invalid_type"
	CodeEmptyPlan    = "empty_plan"
	CodeFinalized    = "finalized"
	CodeParseError   = "parse_error"
)

// Sentinel causes. Every Issue produced by this package carries one of them in
// Cause so callers can branch with errors.Is on the returned Issues.
var (
	ErrIncompletePlan = errors.New("autobuild: missing required keys in plan")
	ErrUnknownField   = errors.New("autobuild: field not declared by schema")
	ErrKeyNotInPlan   = errors.New("autobuild: key not in plan")
	ErrInvalidValue   = errors.New("autobuild: value does not match field type")
	ErrResupplied     = errors.New("autobuild: key already supplied")
	ErrFinalized      = errors.New("autobuild: record already finalized")
	ErrEmptyPlan      = errors.New("autobuild: plan is empty")
	ErrInvalidSchema  = errors.New("autobuild: invalid schema")
	ErrMalformedInput = errors.New("autobuild: malformed input")
)

// Issue represents a single usage error.
type Issue struct {
	Path    string // JSON Pointer of the field (for example: /username).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints.
	Cause   error  // Sentinel error describing the kind of failure.
	// Params carries structured parameters (e.g., {"key":"id", "expected":"int"})
	// for i18n and observability.
	Params map[string]any
}

// Issues is a collection of usage errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. required at /id
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Is reports whether any issue was caused by target.
func (iss Issues) Is(target error) bool {
	for _, it := range iss {
		if it.Cause != nil && errors.Is(it.Cause, target) {
			return true
		}
	}
	return false
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// MissingKeys returns the required keys named by an incomplete-plan error, in
// schema declaration order. It returns nil for any other error.
func MissingKeys(err error) []string {
	iss, ok := AsIssues(err)
	if !ok {
		return nil
	}
	var out []string
	for _, it := range iss {
		if it.Code == CodeRequired {
			out = append(out, keyParam(it))
		}
	}
	return out
}

func keyParam(it Issue) string {
	if k, ok := it.Params["key"].(string); ok {
		return k
	}
	return strings.TrimPrefix(it.Path, "/")
}

// issueFor builds an Issue for a field key, localizing the message through i18n.
func issueFor(key, code string, cause error, params map[string]any) Issue {
	if params == nil {
		params = map[string]any{}
	}
	params["key"] = key
	data := make(map[string]string, len(params))
	for k, v := range params {
		data[k] = fmt.Sprint(v)
	}
	return Issue{
		Path:    pointer(key),
		Code:    code,
		Message: i18n.T(code, data),
		Cause:   cause,
		Params:  params,
	}
}

// pointer renders a top-level JSON Pointer for key, escaping per RFC6901.
func pointer(key string) string {
	if key == "" {
		return "/"
	}
	return "/" + strings.ReplaceAll(strings.ReplaceAll(key, "~", "~0"), "/", "~1")
}
