// Package report implements the diagnostic model for the Compiscript
// pipeline: structured, position-carrying errors and warnings collected
// during a single compile invocation.
package report

import "fmt"

// Position is a zero-indexed line/column pair identifying a point in
// source text. Spans are represented as a Start/End pair of Positions.
type Position struct {
	Line, Col int
}

// Span is an inclusive range of source text.
type Span struct {
	Start, End Position
}

// SpanOver returns the span that covers both a and b.
func SpanOver(a, b Span) Span {
	return Span{Start: a.Start, End: b.End}
}

// Severity distinguishes a fatal problem from an advisory one.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Code is a stable diagnostic identifier, per spec §7.
type Code string

const (
	UnknownSymbol        Code = "UnknownSymbol"
	DuplicateSymbol      Code = "DuplicateSymbol"
	TypeMismatch         Code = "TypeMismatch"
	NotNumeric           Code = "NotNumeric"
	NotBoolean           Code = "NotBoolean"
	NotComparable        Code = "NotComparable"
	AssignToConst        Code = "AssignToConst"
	InvalidLValue        Code = "InvalidLValue"
	ArityMismatch        Code = "ArityMismatch"
	UnknownMember        Code = "UnknownMember"
	MissingReturn        Code = "MissingReturn"
	UnboundBreakContinue Code = "UnboundBreakContinue"
	DeadCode             Code = "DeadCode"
	BadConstructor       Code = "BadConstructor"
	FallthroughCase      Code = "FallthroughCase"
)

// Diagnostic is a single structured error or warning produced by the
// checker. It never carries a Go error value -- it is the sole channel
// through which the checker communicates problems to its caller.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Pos      Position
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s: [%s] %s", d.Pos.Line+1, d.Pos.Col+1, d.Severity, d.Code, d.Message)
}

// Bag accumulates diagnostics for a single compile. It never panics and
// never stops collecting on the first error: every problem the checker
// finds is reported.
type Bag struct {
	diags []Diagnostic
}

// Error appends an error-severity diagnostic.
func (b *Bag) Error(pos Position, code Code, format string, args ...interface{}) {
	b.diags = append(b.diags, Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Pos:      pos,
	})
}

// Warn appends a warning-severity diagnostic.
func (b *Bag) Warn(pos Position, code Code, format string, args ...interface{}) {
	b.diags = append(b.diags, Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Pos:      pos,
	})
}

// AnyErrors reports whether any error-severity diagnostic was recorded.
// TAC generation is skipped whenever this is true, per spec §4.5.
func (b *Bag) AnyErrors() bool {
	for _, d := range b.diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// All returns the diagnostics collected so far, in emission order.
func (b *Bag) All() []Diagnostic {
	return b.diags
}

// checkAbort is the internal recoverable-panic payload used by the
// checker to bail out of a single declaration without corrupting the
// rest of the pass. It never escapes a Checker's exported API -- see
// internal/checker's per-declaration recover.
type checkAbort struct {
	diag Diagnostic
}

// Abort raises a checkAbort carrying the given diagnostic. Call sites
// that can't safely keep evaluating a malformed subtree call this
// instead of returning a zero value that would cascade further errors;
// the nearest Recover call turns it back into a single Diagnostic.
func Abort(pos Position, code Code, format string, args ...interface{}) {
	panic(checkAbort{diag: Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Pos:      pos,
	}})
}

// Recover must be deferred at a checkpoint boundary (one top-level
// declaration, one method body). It converts a pending checkAbort panic
// into a single diagnostic appended to bag and swallows it; any other
// panic value is re-raised since it indicates a genuine bug rather than
// an anticipated abort.
func Recover(bag *Bag) {
	if r := recover(); r != nil {
		if ab, ok := r.(checkAbort); ok {
			bag.diags = append(bag.diags, ab.diag)
			return
		}
		panic(r)
	}
}
