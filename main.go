package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/seracht/gpterm/app"
	"github.com/seracht/gpterm/config"
	"github.com/seracht/gpterm/history"
	sentrypkg "github.com/seracht/gpterm/internal/sentry"
	"github.com/seracht/gpterm/log"
)

var (
	version   = "0.3.0"
	modelFlag string
	debugFlag bool

	rootCmd = &cobra.Command{
		Use:   "gpterm",
		Short: "gpterm - Talk to ChatGPT from the terminal, vi keys included.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg := config.LoadConfig()
			if modelFlag != "" {
				cfg.Model = modelFlag
				if err := config.SaveConfig(cfg); err != nil {
					return fmt.Errorf("failed to save model override: %w", err)
				}
			}

			if err := sentrypkg.Init(version, cfg.IsTelemetryEnabled()); err != nil {
				// Non-fatal: sentry failure should not prevent startup
				_ = err
			}
			defer sentrypkg.Flush()
			defer sentrypkg.RecoverPanic()

			configDir, err := config.GetConfigDir()
			if err != nil {
				return fmt.Errorf("failed to get config directory: %w", err)
			}
			log.Initialize(configDir, debugFlag)
			defer log.Close()

			conversations := 0
			if st, err := history.NewStore(); err == nil {
				if meta, err := st.LoadMetadata(); err == nil {
					conversations = len(meta.List)
				}
			}
			sentrypkg.SetContext(cfg.ModelName(), cfg.HasAPIKey(), conversations)

			return app.Run(ctx)
		},
	}

	resetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Delete all stored conversations",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := history.NewStore()
			if err != nil {
				return fmt.Errorf("failed to open history: %w", err)
			}
			meta, err := st.LoadMetadata()
			if err != nil {
				return fmt.Errorf("failed to load history: %w", err)
			}
			for _, item := range meta.List {
				if err := st.Delete(item.ID); err != nil {
					return fmt.Errorf("failed to delete conversation %s: %w", item.ID, err)
				}
			}
			fmt.Printf("Deleted %d conversation(s)\n", len(meta.List))
			return nil
		},
	}

	debugCmd = &cobra.Command{
		Use:   "debug",
		Short: "Print debug information like config paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()

			configDir, err := config.GetConfigDir()
			if err != nil {
				return fmt.Errorf("failed to get config directory: %w", err)
			}
			// Never print the key itself.
			redacted := *cfg
			if redacted.APIKey != "" {
				redacted.APIKey = "<set>"
			}
			configJson, _ := json.MarshalIndent(redacted, "", "  ")

			fmt.Printf("Config: %s\n%s\n", filepath.Join(configDir, config.ConfigFileName), configJson)
			fmt.Printf("History: %s\n", filepath.Join(configDir, "history"))
			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of gpterm",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("gpterm version %s\n", version)
		},
	}
)

func init() {
	rootCmd.Flags().StringVarP(&modelFlag, "model", "m", "",
		"Model to chat with (e.g. 'gpt-4o'); persisted to the config file")
	rootCmd.Flags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(debugCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(resetCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
