// deflog-host decodes binary record streams captured from a firmware
// target back into readable log lines, using the catalog image of the
// interned format strings.
package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var noColor bool

var rootCmd = &cobra.Command{
	Use:           "deflog-host",
	Short:         "Host-side decoder for deferred binary logs",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

type fdWriter interface {
	Fd() uintptr
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(fdWriter)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func colorEnabled(w io.Writer) bool {
	return !noColor && isTerminal(w)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Stderr.WriteString("deflog-host: " + err.Error() + "\n")
		os.Exit(1)
	}
}
