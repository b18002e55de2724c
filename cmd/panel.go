/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/biponi/notify/internal/cache"
	"github.com/biponi/notify/internal/config"
	"github.com/biponi/notify/internal/push"
	"github.com/biponi/notify/internal/store"
	"github.com/biponi/notify/internal/tui"
)

// NewPanelCmd creates the panel command.
func NewPanelCmd() *cobra.Command {
	var panelPageView bool
	var panelNoPush bool

	panelCmd := &cobra.Command{
		Use:   "panel",
		Short: "Open the interactive notification panel",
		Long: `Open the interactive notification panel.

The panel keeps itself fresh from three sources: the initial fetch,
periodic polling, and real-time push. Keys: j/k move, r mark read,
R mark all, d delete, q quit. With --page-view, f and t cycle
read-state and topic filters.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPanel(cmd.Context(), panelPageView, panelNoPush)
		},
	}

	panelCmd.Flags().BoolVar(&panelPageView, "page-view", false, "Start in full-page mode with filter controls")
	panelCmd.Flags().BoolVar(&panelNoPush, "no-push", false, "Disable the real-time push connection")

	return panelCmd
}

func runPanel(parent context.Context, pageView, noPush bool) error {
	st := store.New(defaultClient,
		store.WithLogger(appLogger),
		store.WithPageSize(defaultPageSize()),
	)

	cacheLimit := config.GetInt("cache_limit", 100)
	var warm *cache.Cache
	if config.GetBool("cache_enabled") {
		c, err := cache.Open(config.Get("cache_path"))
		if err != nil {
			appLogger.Warn("cache unavailable", "error", err)
		} else {
			warm = c
			defer warm.Close()
			if seed, err := warm.Load(cacheLimit); err == nil {
				st.Seed(seed)
			}
		}
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	go st.StartPolling(ctx, config.GetDuration("poll_interval", 30*time.Second))

	if !noPush && config.GetBool("push_enabled") {
		if stop, err := startPush(ctx, st); err != nil {
			appLogger.Warn("push not started", "error", err)
		} else {
			defer stop()
		}
	}

	model := tui.NewModel(st, pageView)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()

	if warm != nil {
		if serr := warm.Save(st.Snapshot().Notifications, cacheLimit); serr != nil {
			appLogger.Warn("cache save failed", "error", serr)
		}
	}
	return err
}

// startPush wires the websocket loop into the store and registers the
// obtained token with the backend. Returns a stop func closing the
// transport.
func startPush(ctx context.Context, st *store.Store) (func(), error) {
	sess, err := openSession()
	if err != nil {
		return nil, err
	}

	transport := push.NewWSTransport(pushURL(), sess,
		push.WithAwaitTimeout(config.GetDuration("push_await_timeout", 90*time.Second)),
		push.WithTransportLogger(appLogger),
	)

	go registerPushToken(ctx, st)

	loop := push.NewLoop(transport, st, appLogger)
	go func() {
		if err := loop.Run(ctx); err != nil && ctx.Err() == nil {
			appLogger.Warn("push loop ended", "error", err)
		}
	}()

	return func() { transport.Close() }, nil
}

// registerPushToken waits for the store to learn its push token, then
// registers it with the backend along with the default topics. Runs at
// most one registration per command invocation.
func registerPushToken(ctx context.Context, st *store.Store) {
	tokenCh := make(chan string, 1)
	offer := func(token string) {
		if token == "" {
			return
		}
		select {
		case tokenCh <- token:
		default:
		}
	}

	unsub := st.Subscribe(func(snap store.Snapshot) { offer(snap.PushToken) })
	defer unsub()
	offer(st.Snapshot().PushToken)

	select {
	case <-ctx.Done():
	case token := <-tokenCh:
		rctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := defaultClient.RegisterToken(rctx, token, config.GetList("default_topics")); err != nil {
			appLogger.Warn("push token registration failed", "error", err)
		}
	}
}

func init() {
	rootCmd.AddCommand(NewPanelCmd())
}
