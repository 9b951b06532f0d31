package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mjeanroy/exiftool/internal/logging"
	"github.com/mjeanroy/exiftool/internal/updater"
)

// CreateUpdateCmd creates the update command.
func CreateUpdateCmd() *cobra.Command {
	var repository string
	var prerelease bool
	var checkOnly bool
	var devBuild bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update exifd to the latest release",
		Long: `Checks GitHub releases for a newer exifd build and replaces the running ` +
			`binary in place. A backup of the current binary is kept for rollback.`,
		Run: func(_ *cobra.Command, _ []string) {
			logging.Initialize(logging.Config{Level: "info", Format: "text"})

			service, err := updater.NewService(&updater.Options{
				Repository: repository,
				Prerelease: prerelease,
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
			if !service.IsEnabled() {
				fmt.Fprintf(os.Stderr, "error: updates unavailable: %s\n", service.DisabledReason())
				os.Exit(1)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			if devBuild {
				if err := service.ApplyDevBuild(ctx); err != nil {
					fmt.Fprintf(os.Stderr, "error: %v\n", err)
					os.Exit(1)
				}
				fmt.Println("dev build applied")
				return
			}

			info, err := service.CheckForUpdate(ctx)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}

			if !info.UpdateAvailable {
				fmt.Printf("already up to date (%s)\n", info.CurrentVersion)
				return
			}

			fmt.Printf("update available: %s -> %s\n", info.CurrentVersion, info.LatestVersion)
			if checkOnly {
				return
			}

			if err := service.ApplyUpdate(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("updated to %s\n", info.LatestVersion)
		},
	}

	cmd.Flags().StringVar(&repository, "repository", "mjeanroy/exiftool", "GitHub repository to update from")
	cmd.Flags().BoolVar(&prerelease, "prerelease", false, "Include prereleases")
	cmd.Flags().BoolVar(&checkOnly, "check", false, "Only check for an update, do not apply it")
	cmd.Flags().BoolVar(&devBuild, "dev", false, "Apply the rolling dev build instead of the latest release")

	return cmd
}
