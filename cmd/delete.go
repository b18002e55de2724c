/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/biponi/notify/internal/colors"
)

type deleteClient interface {
	Delete(ctx context.Context, id string) error
}

// NewDeleteCmd creates the delete command with explicit dependencies.
func NewDeleteCmd(client deleteClient) *cobra.Command {
	if client == nil {
		panic("NewDeleteCmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a notification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if err := client.Delete(cmd.Context(), id); err != nil {
				return err
			}
			colors.Success("Notification " + id + " deleted")
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(NewDeleteCmd(defaultClient))
}
