package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/mjeanroy/exiftool"
	"github.com/mjeanroy/exiftool/internal/logging"
)

// CreateReadCmd creates the read command.
func CreateReadCmd() *cobra.Command {
	var path string
	var numeric bool
	var logJSON bool

	cmd := &cobra.Command{
		Use:   "read FILE [TAG...]",
		Short: "Read metadata tags from a file",
		Long: `Extracts metadata from the given file using a one-shot exiftool process. ` +
			`With no tags specified, every tag present in the file is printed.`,
		Args: cobra.MinimumNArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			file := args[0]
			tags := args[1:]

			loggingConfig := logging.Config{Level: "warn", Format: "text"}
			if logJSON {
				loggingConfig.Format = "json"
			}
			logging.Initialize(loggingConfig)

			engine, err := newCLIEngine(path, numeric)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
			defer engine.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			values, err := engine.ReadMetadata(ctx, file, tags...)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}

			names := make([]string, 0, len(values))
			for name := range values {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Printf("%s: %s\n", name, values[name])
			}
		},
	}

	cmd.Flags().StringVar(&path, "exiftool-path", "", "Path to the exiftool executable")
	cmd.Flags().BoolVarP(&numeric, "numeric", "n", false, "Print machine-parsable numeric values")
	cmd.Flags().BoolVar(&logJSON, "log-json", false, "Output logs in JSON format")

	return cmd
}

// newCLIEngine builds a one-shot engine for CLI commands. Persistent workers
// buy nothing for a single invocation.
func newCLIEngine(path string, numeric bool) (*exiftool.ExifTool, error) {
	opts := []exiftool.Option{
		exiftool.WithPath(path),
		exiftool.WithLogger(logging.GetLogger("engine")),
	}
	if numeric {
		opts = append(opts, exiftool.WithNumericOutput())
	}
	return exiftool.New(opts...)
}
