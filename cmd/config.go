package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/snadboy/notiongen/internal/sbnotion/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Long: `Show current configuration settings.

Displays the effective configuration from environment variables and the
config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfig()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	configDir, _ := config.GetConfigDir()

	fmt.Println("Current Configuration")
	fmt.Println("=====================")
	fmt.Println()

	if cfg.Token != "" {
		fmt.Printf("Token:      %s\n", maskToken(cfg.Token))
	} else {
		fmt.Println("Token:      (not set)")
	}
	fmt.Printf("Output dir: %s\n", cfg.OutputDir)

	fmt.Println()
	fmt.Println("Sources")
	fmt.Println("-------")

	if os.Getenv("NOTIONGEN_TOKEN") != "" {
		fmt.Println("NOTIONGEN_TOKEN: set")
	}
	if os.Getenv("NOTION_API_KEY") != "" {
		fmt.Println("NOTION_API_KEY:  set")
	}

	configPath := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("Config file:     %s\n", configPath)
	} else {
		fmt.Println("Config file:     (not found)")
	}

	return nil
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "****" + token[len(token)-4:]
}
