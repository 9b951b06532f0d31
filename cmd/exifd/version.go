package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mjeanroy/exiftool"
	"github.com/mjeanroy/exiftool/internal/version"
)

// CreateVersionCmd creates the version command.
func CreateVersionCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(_ *cobra.Command, _ []string) {
			info := version.Get()
			fmt.Printf("exifd %s\n", info.Version)
			fmt.Printf("  commit:   %s\n", info.GitCommit)
			fmt.Printf("  built:    %s\n", info.BuildDate)
			fmt.Printf("  go:       %s\n", info.GoVersion)
			fmt.Printf("  platform: %s\n", info.Platform)

			// Best effort: the probe fails when exiftool is not installed.
			engine, err := exiftool.New(
				exiftool.WithPath(path),
				exiftool.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
			)
			if err == nil {
				fmt.Printf("  exiftool: %s\n", engine.Version())
				_ = engine.Close()
			}
		},
	}

	cmd.Flags().StringVar(&path, "exiftool-path", "", "Path to the exiftool executable")

	return cmd
}
