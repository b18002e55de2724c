/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/biponi/notify/internal/colors"
	"github.com/biponi/notify/internal/config"
	"github.com/biponi/notify/internal/logging"
	"github.com/biponi/notify/internal/version"
)

var (
	flagServer string
	flagToken  string
	flagDebug  bool
)

// appLogger is the process-wide structured logger, initialized from
// config before any subcommand runs.
var appLogger logging.Logger = logging.Noop()

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "biponi-notify",
	Short: "Notification tray for the Biponi commerce platform",
	Long: `Notification tray for the Biponi commerce platform.

Fetches, follows and manages your in-app notifications from the
terminal: a live panel, a status-bar badge, and plumbing-friendly
subcommands for scripts.`,
	SilenceUsage:      true,
	PersistentPreRunE: initApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Version = version.String()
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "", "Backend base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "Bearer token (overrides keyring session)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug output")
}

// initApp loads configuration, applies flag overrides and starts the
// structured logger. Runs once before every subcommand.
func initApp(cmd *cobra.Command, args []string) error {
	config.Load()

	if flagServer != "" {
		config.Set("server_url", flagServer)
	}
	if flagDebug {
		config.Set("debug", "true")
	}
	colors.SetDebug(config.GetBool("debug"))

	logCfg := logging.DefaultConfig()
	logCfg.Enabled = config.GetBool("log_enabled")
	logCfg.Level = config.Get("log_level")
	logCfg.MaxFiles = config.GetInt("log_max_files", logCfg.MaxFiles)
	logCfg.Command = cmd.Name()

	logger, err := logging.Init(logCfg)
	if err != nil {
		colors.Warning("logging disabled: " + err.Error())
		logger = logging.Noop()
	}
	appLogger = logger
	colors.SetLogger(logger)
	return nil
}
