package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Javier-varez/deferred-logging/decoder"
)

var catalogPath string

var decodeCmd = &cobra.Command{
	Use:   "decode [records-file]",
	Short: "Decode a framed record stream into log lines",
	Long: `Decode reads COBS-framed log records from a file, or from stdin when
no file is given, and renders each against the catalog. Corrupt frames are
reported on stderr and skipped so a live stream keeps flowing.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}
		in := cmd.InOrStdin()
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}
		return decodeAll(catalog, in, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	decodeCmd.Flags().StringVarP(&catalogPath, "catalog", "c", "", "path to the interned string catalog image")
	_ = decodeCmd.MarkFlagRequired("catalog")
	rootCmd.AddCommand(decodeCmd)
}

func loadCatalog() (*decoder.Catalog, error) {
	image, err := os.ReadFile(catalogPath)
	if err != nil {
		return nil, err
	}
	return decoder.ParseCatalog(image)
}

func decodeAll(catalog *decoder.Catalog, in io.Reader, out, errOut io.Writer) error {
	color := colorEnabled(out)
	stream := decoder.NewStreamDecoder(catalog, in)
	for {
		rec, err := stream.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(errOut, "skipping frame: %v\n", err)
			continue
		}
		fmt.Fprintln(out, decoder.Render(rec, color))
	}
}
