/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/biponi/notify/internal/store"
)

type unreadClient interface {
	UnreadCount(ctx context.Context) (int, error)
}

// NewUnreadCmd creates the unread command with explicit dependencies.
func NewUnreadCmd(client unreadClient) *cobra.Command {
	if client == nil {
		panic("NewUnreadCmd: client dependency cannot be nil")
	}

	var unreadBadge bool

	unreadCmd := &cobra.Command{
		Use:   "unread",
		Short: "Print the unread notification count",
		Long: `Print the unread notification count.

With --badge, prints the capped badge string ("99+" above 99, empty
when zero) for embedding in a status bar.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := client.UnreadCount(cmd.Context())
			if err != nil {
				return err
			}
			if unreadBadge {
				fmt.Fprintln(cmd.OutOrStdout(), store.FormatBadge(count))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), count)
			return nil
		},
	}

	unreadCmd.Flags().BoolVar(&unreadBadge, "badge", false, "Print the capped badge string")

	return unreadCmd
}

func init() {
	rootCmd.AddCommand(NewUnreadCmd(defaultClient))
}
