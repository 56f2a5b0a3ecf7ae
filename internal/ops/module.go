// Package ops implements the domain operations behind the catalog. Each
// family (shift, job, goal, ...) is one module; the dispatcher routes a
// proposed call to its module by the catalog's family annotation and the
// module switches on the operation name.
package ops

import (
	"context"
	"strconv"
	"time"
)

// Request is one resolved operation call. Date arguments have already been
// converted to YYYY-MM-DD and the job id filled in where the catalog asks for
// it; modules validate and execute.
type Request struct {
	AccountID string
	Name      string
	Args      Args

	// Anchor is the turn's local calendar date at midnight. Period math
	// (this week, this year) is relative to it, never to server time.
	Anchor time.Time

	// LocalTime is the caller-reported wall clock, freeform, may be empty.
	LocalTime string
}

// Module executes the operations of one catalog family.
type Module interface {
	Execute(ctx context.Context, req Request) (*Result, error)
}

// Args is the decoded JSON argument object of a proposed call.
type Args map[string]any

// Str returns a string argument, or "" when absent or not a string.
func (a Args) Str(key string) string {
	if v, ok := a[key].(string); ok {
		return v
	}
	return ""
}

// Num returns a numeric argument. JSON numbers decode as float64 but models
// occasionally send numbers as quoted strings; both are accepted.
func (a Args) Num(key string) (float64, bool) {
	switch v := a[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// NumOr returns a numeric argument or a default.
func (a Args) NumOr(key string, def float64) float64 {
	if v, ok := a.Num(key); ok {
		return v
	}
	return def
}

// Int returns an integer argument, truncating fractional values.
func (a Args) Int(key string) (int, bool) {
	if v, ok := a.Num(key); ok {
		return int(v), true
	}
	return 0, false
}

// IntOr returns an integer argument or a default.
func (a Args) IntOr(key string, def int) int {
	if v, ok := a.Int(key); ok {
		return v
	}
	return def
}

// Bool returns a boolean argument; absent or mistyped reads as false. The
// confirmation protocol depends on this default: an omitted confirmed flag
// must behave exactly like confirmed=false.
func (a Args) Bool(key string) bool {
	switch v := a[key].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	}
	return false
}

// Has reports whether the argument was provided at all, regardless of type.
func (a Args) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// Object returns a nested object argument such as an updates map.
func (a Args) Object(key string) Args {
	if v, ok := a[key].(map[string]any); ok {
		return Args(v)
	}
	return nil
}
