package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/registrar/internal/api"
	"github.com/jackzampolin/registrar/internal/config"
	"github.com/jackzampolin/registrar/internal/home"
	"github.com/jackzampolin/registrar/version"
)

var (
	cfgFile      string
	homePath     string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "registrar",
	Short: "Academic transcript digitization with vision-model extraction",
	Long: `Registrar turns scanned academic transcript PDFs into structured,
verified records using vision-model extraction.

The pipeline includes:
  - PDF page rendering at archival resolution
  - Per-page structured extraction against a strict schema
  - Multi-page consolidation with retake-aware course deduplication
  - Credit and GPA consistency verification`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.registrar/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homePath, "home", "", "registrar home directory (default: ~/.registrar)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(consolidateCmd)
	rootCmd.AddCommand(initCmd)
}

// setup resolves the home directory, config, and logger shared by commands.
func setup() (*config.Manager, *home.Dir, *slog.Logger, error) {
	h, err := home.New(homePath)
	if err != nil {
		return nil, nil, nil, err
	}

	cfgPath := cfgFile
	if cfgPath == "" && h.ConfigExists() {
		cfgPath = h.ConfigPath()
	}
	cm, err := config.NewManager(cfgPath)
	if err != nil {
		return nil, nil, nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	return cm, h, logger, nil
}
