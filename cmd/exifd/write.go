package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mjeanroy/exiftool/internal/logging"
)

// CreateWriteCmd creates the write command.
func CreateWriteCmd() *cobra.Command {
	var path string
	var logJSON bool

	cmd := &cobra.Command{
		Use:   "write FILE TAG=VALUE [TAG=VALUE...]",
		Short: "Write metadata tags to a file",
		Long: `Writes the given tag/value pairs to the file using a one-shot exiftool ` +
			`process. Tag names are raw exiftool names, e.g. Artist=someone.`,
		Args: cobra.MinimumNArgs(2),
		Run: func(_ *cobra.Command, args []string) {
			file := args[0]

			tags := make(map[string]string, len(args)-1)
			for _, pair := range args[1:] {
				name, value, found := strings.Cut(pair, "=")
				if !found || name == "" {
					fmt.Fprintf(os.Stderr, "error: invalid tag assignment %q, expected TAG=VALUE\n", pair)
					os.Exit(1)
				}
				tags[name] = value
			}

			loggingConfig := logging.Config{Level: "warn", Format: "text"}
			if logJSON {
				loggingConfig.Format = "json"
			}
			logging.Initialize(loggingConfig)

			engine, err := newCLIEngine(path, false)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
			defer engine.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := engine.WriteMetadata(ctx, file, tags); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}

			fmt.Printf("wrote %d tags to %s\n", len(tags), file)
		},
	}

	cmd.Flags().StringVar(&path, "exiftool-path", "", "Path to the exiftool executable")
	cmd.Flags().BoolVar(&logJSON, "log-json", false, "Output logs in JSON format")

	return cmd
}
