// Package cliutil renders diagnostics and pipeline progress for
// cmd/compiscript. It is the only package in this module that prints
// to the terminal -- internal/report and internal/checker collect
// diagnostics purely in memory and never touch stdout/stderr.
//
// Grounded on the reference compiler's src/logging/display.go: the
// same banner/excerpt/summary shape, rebuilt around this module's flat
// Position (Line, Col) diagnostics rather than the reference's
// multi-line TextSpan.
package cliutil

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"compiscript/internal/report"
)

var (
	successFG = pterm.FgLightGreen
	successBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	warnFG    = pterm.FgYellow
	warnBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	errorFG   = pterm.FgRed
	errorBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	infoFG    = successFG
)

// RenderDiagnostic prints one diagnostic: a banner naming its severity
// and code, the source excerpt around Pos with a caret under the
// offending column, then the message text.
func RenderDiagnostic(sourcePath string, d report.Diagnostic) {
	fmt.Print("\n\n-- ")
	if d.Severity == report.SeverityError {
		errorBG.Print(string(d.Code) + " Error")
	} else {
		warnBG.Print(string(d.Code) + " Warning")
	}
	fmt.Print(" ")
	infoFG.Println(filepath.Base(sourcePath))

	displayExcerpt(sourcePath, d.Pos)
	fmt.Println(d.Message)
}

// displayExcerpt prints the source line at pos.Line with a caret under
// pos.Col. Positions are 0-indexed internally (per report.Position) and
// rendered 1-indexed for humans, matching the reference's
// `span.StartLine+1` convention.
func displayExcerpt(sourcePath string, pos report.Position) {
	f, err := os.Open(sourcePath)
	if err != nil {
		return
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Split(bufio.ScanLines)
	var line string
	for lineNo := 0; sc.Scan(); lineNo++ {
		if lineNo == pos.Line {
			line = sc.Text()
			break
		}
	}

	lineNoStr := strconv.Itoa(pos.Line + 1)
	fmt.Println()
	infoFG.Print(lineNoStr)
	fmt.Print(" |  ")
	fmt.Println(line)

	fmt.Print(strings.Repeat(" ", len(lineNoStr)), " |  ")
	errorFG.Println(strings.Repeat(" ", pos.Col) + "^")
}

// RenderSummary prints the final error/warning tally, colored red,
// yellow, or green, matching the reference's displayCompilationFinished.
func RenderSummary(errCount, warnCount int) {
	fmt.Print("\n")
	if errCount == 0 {
		successFG.Print("All done! ")
	} else {
		errorFG.Print("Oh no! ")
	}

	fmt.Print("(")
	printCount(errCount, errorFG, "error", "errors")
	fmt.Print(", ")
	printCount(warnCount, warnFG, "warning", "warnings")
	fmt.Println(")")
}

func printCount(n int, color pterm.Color, singular, plural string) {
	if n == 0 {
		successFG.Print(0)
	} else {
		color.Print(n)
	}
	if n == 1 {
		fmt.Print(" " + singular)
	} else {
		fmt.Print(" " + plural)
	}
}

// phaseSpinner brackets one pipeline phase ("Checking", "Generating"),
// mirroring the reference's displayBeginPhase/displayEndPhase pair.
var phaseSpinner *pterm.SpinnerPrinter

// BeginPhase starts a spinner labeled with the phase name.
func BeginPhase(name string) {
	phaseSpinner = pterm.DefaultSpinner.WithStyle(pterm.NewStyle(infoFG))
	phaseSpinner.SuccessPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix:       pterm.Prefix{Style: successBG, Text: "Done"},
	}
	phaseSpinner.FailPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix:       pterm.Prefix{Style: errorBG, Text: "Fail"},
	}
	phaseSpinner.Start(name + "...")
}

// EndPhase stops the current spinner, marking it succeeded or failed.
func EndPhase(success bool) {
	if phaseSpinner == nil {
		return
	}
	if success {
		phaseSpinner.Success()
	} else {
		phaseSpinner.Fail()
	}
	phaseSpinner = nil
}
