/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/biponi/notify/internal/colors"
)

type topicsClient interface {
	SubscribeTopic(ctx context.Context, topic string) error
	UnsubscribeTopic(ctx context.Context, topic string) error
}

// NewTopicsCmd creates the topics command group with explicit dependencies.
func NewTopicsCmd(client topicsClient) *cobra.Command {
	if client == nil {
		panic("NewTopicsCmd: client dependency cannot be nil")
	}

	topicsCmd := &cobra.Command{
		Use:   "topics",
		Short: "Manage topic subscriptions",
	}

	subscribeCmd := &cobra.Command{
		Use:   "subscribe TOPIC",
		Short: "Subscribe to a topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topic := args[0]
			if err := client.SubscribeTopic(cmd.Context(), topic); err != nil {
				return err
			}
			colors.Success("Subscribed to " + topic)
			return nil
		},
	}

	unsubscribeCmd := &cobra.Command{
		Use:   "unsubscribe TOPIC",
		Short: "Unsubscribe from a topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topic := args[0]
			if err := client.UnsubscribeTopic(cmd.Context(), topic); err != nil {
				return err
			}
			colors.Success("Unsubscribed from " + topic)
			return nil
		},
	}

	topicsCmd.AddCommand(subscribeCmd)
	topicsCmd.AddCommand(unsubscribeCmd)
	return topicsCmd
}

func init() {
	rootCmd.AddCommand(NewTopicsCmd(defaultClient))
}
