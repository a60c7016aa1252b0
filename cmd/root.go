package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/cyberlab/internal/config"
	"github.com/abhisek/cyberlab/internal/content"
)

var rootCmd = &cobra.Command{
	Use:   "cyberlab",
	Short: "Interactive cybersecurity training lab",
	Long:  "CyberLab is a terminal lab that walks learners through cybersecurity exercises, grades their answers and tracks progress.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("data-dir", "", "Directory for progress, history and logs (overrides CYBERLAB_DATA_DIR)")
	rootCmd.PersistentFlags().String("content", "", "Path to a JSON content pack (overrides CYBERLAB_CONTENT)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides CYBERLAB_LOG_LEVEL)")
	rootCmd.PersistentFlags().Bool("no-history", false, "Do not record attempt history")

	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(contentCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves configuration: flags (highest priority), then
// CYBERLAB_* env vars, then defaults.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.ConfigFromEnv()
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if d, _ := flags.GetString("data-dir"); d != "" {
		base := cfg
		cfg = config.WithDataDir(d)
		cfg.ContentFile = base.ContentFile
		cfg.LogLevel = base.LogLevel
		cfg.HistoryEnabled = base.HistoryEnabled
	}
	if c, _ := flags.GetString("content"); c != "" {
		cfg.ContentFile = c
	}
	if l, _ := flags.GetString("log-level"); l != "" {
		cfg.LogLevel = l
	}
	if off, _ := flags.GetBool("no-history"); off {
		cfg.HistoryEnabled = false
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// loadCatalog returns the configured content pack, or the built-in
// catalog. Invalid content is fatal.
func loadCatalog(cfg config.Config) (*content.Catalog, error) {
	if cfg.ContentFile != "" {
		return content.LoadFile(cfg.ContentFile)
	}
	cat := content.Default()
	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("built-in content: %w", err)
	}
	return cat, nil
}
