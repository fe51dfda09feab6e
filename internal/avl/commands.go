package avl

import (
	"fmt"
	"strings"
)

// Command scripts are newline-joined keystroke sequences piped to AVL's
// stdin. AVL's menus are strictly positional, so the line order here is
// load-bearing: CASE loads the run file, OPER enters the operating menu,
// "#"/index selects a case, X executes, G/T open the geometry and Trefftz
// plots, S saves, and Q backs out of each menu level.

// EnvelopeScript drives a full sweep: load the run file, execute every
// case, show the Trefftz plot for the last one, save results, and quit.
func EnvelopeScript(runFile string, numCases int) string {
	lines := []string{
		"CASE",
		runFile,
		"OPER",
	}
	for i := 1; i <= numCases; i++ {
		lines = append(lines,
			"#",
			fmt.Sprintf("%d", i),
			"X",
			"",
		)
	}
	lines = append(lines,
		"T",
		"",
		"S",
		runFile,
		"Q",
		"Q",
	)
	return strings.Join(lines, "\n") + "\n"
}

// ViewerScript loads a run file, executes the first case, and opens the
// geometry view rotated to a planform orientation followed by the
// Trefftz plot.
func ViewerScript(runFile string) string {
	lines := []string{
		"CASE",
		runFile,
		"OPER",
		"#",
		"1",
		"X",
		"G",
		"V",
		"90",
		"90",
		"",
		"T",
	}
	return strings.Join(lines, "\n") + "\n"
}

// GeometryRefreshScript re-renders the geometry view after the window
// manager has repositioned the plot window.
func GeometryRefreshScript() string {
	lines := []string{
		"",
		"OPER",
		"G",
		"V",
		"-90 -90",
		"X",
		"C",
		"",
	}
	return "\n\n" + strings.Join(lines, "\n") + "\n"
}

// TrefftzRefreshScript re-renders the Trefftz plot with a fixed scale.
func TrefftzRefreshScript() string {
	return "\nOPER\nT\nX\nS\n6.5\n\n"
}

// StabilityScript executes the first case and writes the stability
// derivatives (including the neutral point) to outFile via the ST
// command.
func StabilityScript(runFile, outFile string) string {
	lines := []string{
		"CASE",
		runFile,
		"OPER",
		"#",
		"1",
		"X",
		"ST",
		outFile,
		"",
		"Q",
		"Q",
	}
	return strings.Join(lines, "\n") + "\n"
}
