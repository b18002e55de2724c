/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/biponi/notify/internal/api"
	"github.com/biponi/notify/internal/colors"
	"github.com/biponi/notify/internal/domain"
)

type sendClient interface {
	Send(ctx context.Context, req api.ComposeRequest) error
}

const sendCommandLong = `Compose and send a notification (admin).

USAGE:
    biponi-notify send [OPTIONS]

Without --subject, an interactive form is opened.

OPTIONS:
    --subject <text>       Notification subject
    --message <text>       Notification body
    --topic <topic>        Topic (default: system)
    --priority <level>     Priority: low, normal, high, urgent (default: normal)
    --channels <list>      Delivery channels: in_app, push, email (default: in_app)
    --to <list>            Recipient user IDs (mutually exclusive with --broadcast)
    --broadcast            Send to every user
    --action-url <url>     Optional action link
    --action-text <text>   Optional action label
    -h, --help             Show this help`

// NewSendCmd creates the send command with explicit dependencies.
func NewSendCmd(client sendClient) *cobra.Command {
	if client == nil {
		panic("NewSendCmd: client dependency cannot be nil")
	}

	var req api.ComposeRequest
	var recipients []string

	sendCmd := &cobra.Command{
		Use:   "send",
		Short: "Compose and send a notification (admin)",
		Long:  sendCommandLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Recipients = recipients
			if req.Subject == "" {
				if err := composeForm(&req); err != nil {
					return err
				}
			}
			if err := req.Validate(); err != nil {
				return err
			}
			if err := client.Send(cmd.Context(), req); err != nil {
				return err
			}
			colors.Success("Notification sent")
			return nil
		},
	}

	sendCmd.Flags().StringVar(&req.Subject, "subject", "", "Notification subject")
	sendCmd.Flags().StringVar(&req.Message, "message", "", "Notification body")
	sendCmd.Flags().StringVar(&req.Topic, "topic", domain.TopicSystem, "Topic")
	sendCmd.Flags().StringVar(&req.Priority, "priority", string(domain.PriorityNormal), "Priority: low, normal, high, urgent")
	sendCmd.Flags().StringSliceVar(&req.Channels, "channels", []string{"in_app"}, "Delivery channels: in_app, push, email")
	sendCmd.Flags().StringSliceVar(&recipients, "to", nil, "Recipient user IDs")
	sendCmd.Flags().BoolVar(&req.Broadcast, "broadcast", false, "Send to every user")
	sendCmd.Flags().StringVar(&req.ActionURL, "action-url", "", "Optional action link")
	sendCmd.Flags().StringVar(&req.ActionText, "action-text", "", "Optional action label")

	return sendCmd
}

// composeForm fills the request interactively.
func composeForm(req *api.ComposeRequest) error {
	var recipientsRaw string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Subject").
				Value(&req.Subject).
				Validate(huh.ValidateNotEmpty()),
			huh.NewText().
				Title("Message").
				Value(&req.Message).
				Validate(huh.ValidateNotEmpty()),
			huh.NewInput().
				Title("Topic").
				Value(&req.Topic),
			huh.NewSelect[string]().
				Title("Priority").
				Options(huh.NewOptions(
					string(domain.PriorityLow),
					string(domain.PriorityNormal),
					string(domain.PriorityHigh),
					string(domain.PriorityUrgent),
				)...).
				Value(&req.Priority),
			huh.NewMultiSelect[string]().
				Title("Channels").
				Options(huh.NewOptions("in_app", "push", "email")...).
				Value(&req.Channels),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Broadcast to every user?").
				Value(&req.Broadcast),
			huh.NewInput().
				Title("Recipients (comma-separated user IDs, empty for broadcast)").
				Value(&recipientsRaw),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	req.Recipients = nil
	for _, id := range strings.Split(recipientsRaw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			req.Recipients = append(req.Recipients, id)
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(NewSendCmd(defaultClient))
}
