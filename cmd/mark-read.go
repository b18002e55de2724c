/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/biponi/notify/internal/colors"
)

type markReadClient interface {
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
}

// NewMarkReadCmd creates the mark-read command with explicit dependencies.
func NewMarkReadCmd(client markReadClient) *cobra.Command {
	if client == nil {
		panic("NewMarkReadCmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "mark-read ID...",
		Short: "Mark one or more notifications as read",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, id := range args {
				if err := client.MarkRead(cmd.Context(), id); err != nil {
					return err
				}
				colors.Success("Marked " + id + " as read")
			}
			return nil
		},
	}
}

// NewMarkAllReadCmd creates the mark-all-read command with explicit dependencies.
func NewMarkAllReadCmd(client markReadClient) *cobra.Command {
	if client == nil {
		panic("NewMarkAllReadCmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "mark-all-read",
		Short: "Mark every notification as read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.MarkAllRead(cmd.Context()); err != nil {
				return err
			}
			colors.Success("All notifications marked as read")
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(NewMarkReadCmd(defaultClient))
	rootCmd.AddCommand(NewMarkAllReadCmd(defaultClient))
}
