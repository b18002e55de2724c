/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/biponi/notify/internal/colors"
	"github.com/biponi/notify/internal/config"
	"github.com/biponi/notify/internal/domain"
	"github.com/biponi/notify/internal/store"
)

// followCmd represents the follow command
var (
	followInterval int
	followNoPush   bool
	followTopic    string
)

// FollowOptions holds all parameters for following notifications.
type FollowOptions struct {
	Topic  string    // only print notifications with this topic
	Output io.Writer // where to write notifications (default os.Stdout)
}

// NewFollowCmd creates the follow command.
func NewFollowCmd() *cobra.Command {
	followCmd := &cobra.Command{
		Use:   "follow",
		Short: "Print notifications in real-time as they arrive",
		Long: `Print notifications in real-time as they arrive.

USAGE:
    biponi-notify follow [OPTIONS]

OPTIONS:
    --interval <secs>  Poll interval in seconds (default: poll_interval from config)
    --topic <topic>    Only print notifications with this topic
    --no-push          Disable the real-time push connection, poll only
    -h, --help         Show this help`,
		RunE: runFollow,
	}

	followCmd.Flags().IntVar(&followInterval, "interval", 0, "Poll interval in seconds")
	followCmd.Flags().BoolVar(&followNoPush, "no-push", false, "Disable push, poll only")
	followCmd.Flags().StringVar(&followTopic, "topic", "", "Only print notifications with this topic")

	return followCmd
}

func runFollow(cmd *cobra.Command, args []string) error {
	st := store.New(defaultClient,
		store.WithLogger(appLogger),
		store.WithPageSize(defaultPageSize()),
	)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Prime the seen set from the first fetch so only arrivals print.
	if err := st.FetchPage(ctx, 1, false); err != nil {
		colors.Warning("initial fetch failed: " + err.Error())
	}

	interval := config.GetDuration("poll_interval", 30*time.Second)
	if followInterval > 0 {
		interval = time.Duration(followInterval) * time.Second
	}
	go st.StartPolling(ctx, interval)

	if !followNoPush && config.GetBool("push_enabled") {
		if stop, err := startPush(ctx, st); err != nil {
			appLogger.Warn("push not started", "error", err)
		} else {
			defer stop()
		}
	}

	return Follow(ctx, st, FollowOptions{Topic: followTopic, Output: cmd.OutOrStdout()})
}

// Follow prints every notification the store learns about after the
// call, until interrupted (Ctrl+C) or the context is cancelled.
func Follow(ctx context.Context, st *store.Store, opts FollowOptions) error {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	colors.Info("Following notifications (Ctrl+C to stop)...")

	var mu sync.Mutex
	seen := make(map[string]bool)
	for _, n := range st.Snapshot().Notifications {
		seen[n.ID] = true
	}

	unsub := st.Subscribe(func(snap store.Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		// Oldest unseen first, so arrival order reads naturally.
		for i := len(snap.Notifications) - 1; i >= 0; i-- {
			n := snap.Notifications[i]
			if seen[n.ID] {
				continue
			}
			seen[n.ID] = true
			if opts.Topic != "" && n.Topic != opts.Topic {
				continue
			}
			printIncoming(n, opts.Output)
		}
	})
	defer unsub()

	select {
	case <-ctx.Done():
		return nil
	case sig := <-sigChan:
		fmt.Fprintf(opts.Output, "\nReceived signal %v, stopping...\n", sig)
		return nil
	}
}

// printIncoming prints a single notification with priority coloring.
func printIncoming(n domain.Notification, w io.Writer) {
	timeStr := n.CreatedAt.Format("2006-01-02 15:04:05")
	msg := fmt.Sprintf("[%s] [%s] %s: %s", timeStr, n.Topic, n.Subject, n.Message)
	color := colorForPriority(n.Priority)
	if color != "" {
		fmt.Fprintf(w, "%s%s%s\n", color, msg, colors.Reset)
	} else {
		fmt.Fprintln(w, msg)
	}
	if n.ActionURL != "" {
		fmt.Fprintf(w, "  └─ %s\n", n.ActionURL)
	}
}

// colorForPriority returns the appropriate color code for a priority.
func colorForPriority(p domain.Priority) string {
	switch p {
	case domain.PriorityUrgent:
		return colors.Red
	case domain.PriorityHigh:
		return colors.Yellow
	default:
		return "" // default color
	}
}

func init() {
	rootCmd.AddCommand(NewFollowCmd())
}
