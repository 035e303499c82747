package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"readwise2org/internal/config"
	"readwise2org/internal/logger"
	"readwise2org/internal/notion"
	"readwise2org/internal/readwise"
	"readwise2org/internal/secrets"
	"readwise2org/internal/syncer"
)

var version = "dev"

var (
	configPath string
	debugFlag  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "readwise2org",
	Short: "Sync Readwise highlights into org outline files",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveConfigPath returns the --config flag value or the default location.
func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.DefaultPath()
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch all highlights and rewrite the outline files",
	RunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env file is fine; it only supplies optional env vars
		_ = godotenv.Load()

		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		cfg, err := config.ReadFromFile(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		level := "info"
		if cfg.Debug || debugFlag {
			level = "debug"
		}
		if err := logger.Init(level); err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}

		tokens, err := secrets.ForBackend(cfg.AuthBackend)
		if err != nil {
			return err
		}

		client := readwise.New(readwise.Config{BaseURL: cfg.ExportURL})

		var reindexer syncer.Reindexer
		if len(cfg.ReindexCommand) > 0 {
			reindexer = syncer.NewCommandReindexer(cfg.ReindexCommand)
		}

		var mirror syncer.Mirror
		if cfg.Notion.Enabled {
			notionClient, err := notion.New(cfg.Notion.ParentPageID)
			if err != nil {
				return fmt.Errorf("initializing notion mirror: %w", err)
			}
			mirror = notionClient
		}

		s := syncer.New(client, tokens, reindexer, mirror, cfg.OutputDir)
		return s.Sync(cmd.Context())
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}

		cfg := config.New()
		if err := config.Init(path, cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		cmd.Printf("Configuration initialized at %s\n", path)
		cmd.Printf("Output Dir: %s\n", cfg.OutputDir)
		cmd.Printf("Auth Backend: %s\n", cfg.AuthBackend)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		cfg, err := config.ReadFromFile(path)
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		cmd.Printf("Configuration from %s:\n\n", path)
		cmd.Printf("Output Dir:   %s\n", cfg.OutputDir)
		cmd.Printf("Auth Backend: %s\n", cfg.AuthBackend)
		cmd.Printf("Export URL:   %s\n", cfg.ExportURL)
		cmd.Printf("Debug:        %v\n", cfg.Debug)
		if len(cfg.ReindexCommand) > 0 {
			cmd.Printf("Reindex:      %v\n", cfg.ReindexCommand)
		}
		if cfg.Notion.Enabled {
			cmd.Printf("Notion:       enabled (parent %s)\n", cfg.Notion.ParentPageID)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("readwise2org %s\n", version)
	},
}
