/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/biponi/notify/internal/colors"
	"github.com/biponi/notify/internal/config"
	"github.com/biponi/notify/internal/session"
)

// loginSessionOpen is swapped in tests to avoid the OS keyring.
var loginSessionOpen = func() (session.Store, error) {
	return session.Open(config.Get("state_dir"))
}

// NewLoginCmd creates the login command.
func NewLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login [TOKEN]",
		Short: "Store the API bearer token in the OS keyring",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token := ""
			if len(args) == 1 {
				token = args[0]
			}
			if token == "" {
				prompt := huh.NewInput().
					Title("API token").
					EchoMode(huh.EchoModePassword).
					Validate(huh.ValidateNotEmpty()).
					Value(&token)
				if err := prompt.Run(); err != nil {
					return err
				}
			}

			sess, err := loginSessionOpen()
			if err != nil {
				return err
			}
			if err := sess.SetToken(token); err != nil {
				return err
			}
			colors.Success("Token saved")
			return nil
		},
	}
}

// NewLogoutCmd creates the logout command.
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored API bearer token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := loginSessionOpen()
			if err != nil {
				return err
			}
			if err := sess.ClearToken(); err != nil {
				return err
			}
			colors.Success("Token removed")
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(NewLoginCmd())
	rootCmd.AddCommand(NewLogoutCmd())
}
