/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/biponi/notify/internal/colors"
	"github.com/biponi/notify/internal/config"
	"github.com/biponi/notify/internal/push"
)

type tokenClient interface {
	RegisterToken(ctx context.Context, token string, topics []string) error
}

// NewTokenCmd creates the token command group.
func NewTokenCmd(client tokenClient) *cobra.Command {
	if client == nil {
		panic("NewTokenCmd: client dependency cannot be nil")
	}

	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the push registration token",
	}

	var registerTopics []string

	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Obtain a push token and register it with the backend",
		Long: `Obtain a push token and register it with the backend.

Dials the push endpoint to obtain a registration token, then registers
it for this device along with the subscribed topics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession()
			if err != nil {
				return err
			}

			transport := push.NewWSTransport(pushURL(), sess,
				push.WithTransportLogger(appLogger),
			)
			defer transport.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			token, err := transport.Connect(ctx)
			if err != nil {
				return err
			}
			if token == "" {
				return fmt.Errorf("push unavailable: no token obtained from %s", pushURL())
			}

			topics := registerTopics
			if len(topics) == 0 {
				topics = config.GetList("default_topics")
			}
			if err := client.RegisterToken(ctx, token, topics); err != nil {
				return err
			}
			colors.Success("Push token registered")
			return nil
		},
	}

	registerCmd.Flags().StringSliceVar(&registerTopics, "topics", nil, "Topics to subscribe (default: default_topics from config)")

	tokenCmd.AddCommand(registerCmd)
	return tokenCmd
}

func init() {
	rootCmd.AddCommand(NewTokenCmd(defaultClient))
}
