package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"

	"kontaktvault/internal/passx"
)

// startSpinner shows a spinner with the given message until the returned
// stop function is called. In verbose mode the spinner would tangle with
// log lines, so it stays off.
func startSpinner(message string) func() {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message
	_ = s.Color("cyan")
	if !verbose {
		s.Start()
	}
	return s.Stop
}

func successf(format string, a ...any) {
	fmt.Println(color.GreenString("✓") + " " + fmt.Sprintf(format, a...))
}

func failf(format string, a ...any) {
	fmt.Println(color.RedString("✗") + " " + fmt.Sprintf(format, a...))
}

func notef(format string, a ...any) {
	fmt.Println(color.CyanString("→") + " " + fmt.Sprintf(format, a...))
}

func warnf(format string, a ...any) {
	fmt.Println(color.YellowString("!") + " " + fmt.Sprintf(format, a...))
}

// strengthLine renders a password strength as a four-segment bar plus the
// colored label, e.g. "[███░] Strong".
func strengthLine(st passx.Strength) string {
	bar := strings.Repeat("█", st.Score) + strings.Repeat("░", 4-st.Score)
	label := st.Label
	switch {
	case st.Score >= 3:
		label = color.GreenString(label)
	case st.Score == 2:
		label = color.YellowString(label)
	default:
		label = color.RedString(label)
	}
	return fmt.Sprintf("[%s] %s", bar, label)
}
