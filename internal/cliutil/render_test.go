package cliutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"compiscript/internal/report"
)

// pterm writes ANSI styling to stdout directly, so these tests only
// assert that rendering doesn't panic against real inputs -- matching
// the reference's own display.go, which has no unit tests of its own
// printed bytes, only exercised visually.
func TestRenderDiagnosticDoesNotPanic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.csc")
	require.NoError(t, os.WriteFile(path, []byte("let x: integer = 1;\n"), 0o644))

	d := report.Diagnostic{
		Severity: report.SeverityError,
		Code:     report.TypeMismatch,
		Message:  "cannot assign string to integer",
		Pos:      report.Position{Line: 0, Col: 4},
	}

	require.NotPanics(t, func() { RenderDiagnostic(path, d) })
}

func TestRenderDiagnosticMissingFileDoesNotPanic(t *testing.T) {
	d := report.Diagnostic{
		Severity: report.SeverityWarning,
		Code:     report.DeadCode,
		Message:  "unreachable code",
		Pos:      report.Position{Line: 3, Col: 0},
	}
	require.NotPanics(t, func() { RenderDiagnostic("/no/such/file.csc", d) })
}

func TestRenderSummaryDoesNotPanic(t *testing.T) {
	require.NotPanics(t, func() { RenderSummary(0, 0) })
	require.NotPanics(t, func() { RenderSummary(1, 2) })
}

func TestPhaseSpinnerLifecycle(t *testing.T) {
	require.NotPanics(t, func() {
		BeginPhase("Checking")
		EndPhase(true)
	})
}
