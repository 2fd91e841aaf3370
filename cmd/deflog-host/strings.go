package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	deflog "github.com/Javier-varez/deferred-logging"
	"github.com/Javier-varez/deferred-logging/decoder"
)

var stringsLevel string

var stringsCmd = &cobra.Command{
	Use:   "strings catalog-file",
	Short: "Dump the interned format strings in a catalog",
	Long: `Strings carves a catalog image into its severity regions and prints
every format string the build can emit, without needing any records.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		image, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		catalog, err := decoder.ParseCatalog(image)
		if err != nil {
			return err
		}
		levels := []deflog.Level{deflog.DebugLevel, deflog.InfoLevel, deflog.WarningLevel, deflog.ErrorLevel}
		if stringsLevel != "" {
			level, ok := deflog.ParseLevel(stringsLevel)
			if !ok || level == deflog.OffLevel {
				return fmt.Errorf("unknown level %q", stringsLevel)
			}
			levels = []deflog.Level{level}
		}
		out := cmd.OutOrStdout()
		for _, level := range levels {
			for _, s := range catalog.Strings(level) {
				fmt.Fprintf(out, "%s\t%q\n", deflog.LevelString(level), s)
			}
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the supported catalog format version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "deflog-host, catalog format v%d\n", deflog.CatalogVersion)
	},
}

func init() {
	stringsCmd.Flags().StringVarP(&stringsLevel, "level", "l", "", "restrict output to one severity region")
	rootCmd.AddCommand(stringsCmd)
	rootCmd.AddCommand(versionCmd)
}
