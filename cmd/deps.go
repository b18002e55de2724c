/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"strings"
	"sync"

	"github.com/biponi/notify/internal/api"
	"github.com/biponi/notify/internal/config"
	"github.com/biponi/notify/internal/session"
)

func defaultPageSize() int {
	return config.GetInt("page_size", 20)
}

// pushURL returns the websocket push endpoint, derived from the server
// base URL unless push_url overrides it.
func pushURL() string {
	if u := config.Get("push_url"); u != "" {
		return u
	}
	base := config.Get("server_url")
	base = strings.Replace(base, "https://", "wss://", 1)
	base = strings.Replace(base, "http://", "ws://", 1)
	return strings.TrimRight(base, "/") + "/ws/notification"
}

// openSession returns the token store. The --token flag wins over the
// keyring-backed session.
func openSession() (session.Store, error) {
	if flagToken != "" {
		return session.Static(flagToken), nil
	}
	return session.Open(config.Get("state_dir"))
}

// lazyClient defers building the REST client until the first call, so
// config and flags are settled by then. It satisfies the per-command
// client interfaces and store.Client.
type lazyClient struct {
	once sync.Once
	c    *api.Client
	err  error
}

// defaultClient is the client every subcommand shares.
var defaultClient = &lazyClient{}

func (l *lazyClient) resolve() (*api.Client, error) {
	l.once.Do(func() {
		sess, err := openSession()
		if err != nil {
			l.err = err
			return
		}
		l.c = api.NewClient(config.Get("server_url"), sess, api.WithLogger(appLogger))
	})
	return l.c, l.err
}

func (l *lazyClient) List(ctx context.Context, page, limit int, unreadOnly bool) (*api.ListResult, error) {
	c, err := l.resolve()
	if err != nil {
		return nil, err
	}
	return c.List(ctx, page, limit, unreadOnly)
}

func (l *lazyClient) UnreadCount(ctx context.Context) (int, error) {
	c, err := l.resolve()
	if err != nil {
		return 0, err
	}
	return c.UnreadCount(ctx)
}

func (l *lazyClient) MarkRead(ctx context.Context, id string) error {
	c, err := l.resolve()
	if err != nil {
		return err
	}
	return c.MarkRead(ctx, id)
}

func (l *lazyClient) MarkAllRead(ctx context.Context) error {
	c, err := l.resolve()
	if err != nil {
		return err
	}
	return c.MarkAllRead(ctx)
}

func (l *lazyClient) Delete(ctx context.Context, id string) error {
	c, err := l.resolve()
	if err != nil {
		return err
	}
	return c.Delete(ctx, id)
}

func (l *lazyClient) RegisterToken(ctx context.Context, token string, topics []string) error {
	c, err := l.resolve()
	if err != nil {
		return err
	}
	return c.RegisterToken(ctx, token, topics)
}

func (l *lazyClient) SubscribeTopic(ctx context.Context, topic string) error {
	c, err := l.resolve()
	if err != nil {
		return err
	}
	return c.SubscribeTopic(ctx, topic)
}

func (l *lazyClient) UnsubscribeTopic(ctx context.Context, topic string) error {
	c, err := l.resolve()
	if err != nil {
		return err
	}
	return c.UnsubscribeTopic(ctx, topic)
}

func (l *lazyClient) Send(ctx context.Context, req api.ComposeRequest) error {
	c, err := l.resolve()
	if err != nil {
		return err
	}
	return c.Send(ctx, req)
}
