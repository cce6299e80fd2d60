// Package cmd implements the lensctl command line.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/listinglens/dashboard/internal/domain"
	"github.com/listinglens/dashboard/internal/logging"
	"github.com/listinglens/dashboard/internal/usecase"
)

var rootCmd = &cobra.Command{
	Use:   "lensctl",
	Short: "Render Banggood listing dashboards from the command line",
	Long: `lensctl runs the ListingLens analysis pipeline against a cleaned
Banggood listing CSV without starting the web server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.SetupWriter(cmd.ErrOrStderr(), logLevel, "development")
	},
}

var logLevel string

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
}

// openUpload opens a CSV file as a pipeline upload. The caller closes the file.
func openUpload(path string) (*usecase.Upload, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return &usecase.Upload{Name: filepath.Base(path), Reader: f}, f, nil
}

// describe turns pipeline errors into a message fit for a terminal
func describe(err error) error {
	if domain.IsInputError(err) {
		return fmt.Errorf("invalid listing file: %w", err)
	}
	return err
}
