/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/biponi/notify/internal/api"
	"github.com/biponi/notify/internal/domain"
	"github.com/biponi/notify/internal/search"
)

type listClient interface {
	List(ctx context.Context, page, limit int, unreadOnly bool) (*api.ListResult, error)
}

const listCommandLong = `List notifications.

USAGE:
    biponi-notify list [OPTIONS]

OPTIONS:
    --page <n>         Page to fetch (default: 1)
    --limit <n>        Items per page (default: page_size from config)
    --unread-only      Only unread notifications
    --topic <topic>    Filter by topic (client-side)
    --search <query>   Search subject, message and topic (substring match)
    --regex            Use regex search with --search
    --ignore-case      Case-insensitive search
    --format=<format>  Output format: table (default), json
    -h, --help         Show this help`

// NewListCmd creates the list command with explicit dependencies.
func NewListCmd(client listClient) *cobra.Command {
	if client == nil {
		panic("NewListCmd: client dependency cannot be nil")
	}

	var listPage int
	var listLimit int
	var listUnreadOnly bool
	var listTopic string
	var listSearch string
	var listRegex bool
	var listIgnoreCase bool
	var listFormat string

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications",
		Long:  listCommandLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listFormat != "table" && listFormat != "json" {
				return fmt.Errorf("invalid format: %s (must be table or json)", listFormat)
			}
			limit := listLimit
			if limit <= 0 {
				limit = defaultPageSize()
			}

			result, err := client.List(cmd.Context(), listPage, limit, listUnreadOnly)
			if err != nil {
				return err
			}

			items := result.Notifications
			if listTopic != "" {
				filter := domain.Filter{Topic: listTopic}
				items = filter.Apply(items)
			}
			if listSearch != "" {
				items = search.Apply(searchProvider(listRegex, listIgnoreCase), items, listSearch)
			}

			if listFormat == "json" {
				return printListJSON(cmd.OutOrStdout(), items)
			}
			printListTable(cmd.OutOrStdout(), items, listPage, result.TotalPages)
			return nil
		},
	}

	listCmd.Flags().IntVar(&listPage, "page", 1, "Page to fetch")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Items per page (default: page_size from config)")
	listCmd.Flags().BoolVar(&listUnreadOnly, "unread-only", false, "Only unread notifications")
	listCmd.Flags().StringVar(&listTopic, "topic", "", "Filter by topic")
	listCmd.Flags().StringVar(&listSearch, "search", "", "Search subject, message and topic")
	listCmd.Flags().BoolVar(&listRegex, "regex", false, "Use regex search with --search")
	listCmd.Flags().BoolVar(&listIgnoreCase, "ignore-case", false, "Case-insensitive search")
	listCmd.Flags().StringVar(&listFormat, "format", "table", "Output format: table, json")

	return listCmd
}

func searchProvider(regex, ignoreCase bool) search.Provider {
	opts := []search.Option{search.WithCaseInsensitive(ignoreCase)}
	if regex {
		return search.NewRegexProvider(opts...)
	}
	return search.NewSubstringProvider(opts...)
}

func printListJSON(w io.Writer, items []domain.Notification) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}

func printListTable(w io.Writer, items []domain.Notification, page, totalPages int) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No notifications.")
		return
	}
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, " \tID\tTIME\tTOPIC\tPRIORITY\tSUBJECT")
	for _, n := range items {
		mark := " "
		if n.Unread {
			mark = "*"
		}
		subject := n.Subject
		if subject == "" {
			subject = firstLine(n.Message)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			mark,
			n.ID,
			n.CreatedAt.Format("2006-01-02 15:04"),
			n.Topic,
			n.Priority,
			subject,
		)
	}
	tw.Flush()
	if totalPages > 1 {
		fmt.Fprintf(w, "\nPage %d of %d\n", page, totalPages)
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func init() {
	rootCmd.AddCommand(NewListCmd(defaultClient))
}
