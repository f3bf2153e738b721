package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/snadboy/notiongen/internal/notion"
	"github.com/snadboy/notiongen/internal/sbnotion"
)

type listOptions struct {
	format string
}

var listOpts = &listOptions{}

var listCmd = &cobra.Command{
	Use:       "list (databases|pages)",
	Short:     "List cached Notion databases or pages",
	Long:      `List the databases or pages visible to the token, served from the directory cache.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"databases", "pages"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd.Context(), args[0], listOpts)
	},
}

func init() {
	listCmd.Flags().StringVarP(&listOpts.format, "format", "f", "table", "Output format: json, text, table")

	rootCmd.AddCommand(listCmd)
}

func runList(ctx context.Context, what string, opts *listOptions) error {
	svc, logger, err := newService("")
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	formatter := sbnotion.NewFormatter(sbnotion.OutputFormat(opts.format), os.Stdout)

	switch what {
	case "databases":
		databases, err := svc.Databases(ctx)
		if err != nil && len(databases) == 0 {
			return fmt.Errorf("failed to list databases: %w", err)
		}
		ordered := make([]*notion.Database, 0, len(databases))
		for _, db := range databases {
			ordered = append(ordered, db)
		}
		sort.Slice(ordered, func(i, j int) bool {
			return ordered[i].PlainTitle() < ordered[j].PlainTitle()
		})
		return formatter.FormatDatabases(ordered)

	case "pages":
		pages, err := svc.Pages(ctx)
		if err != nil && len(pages) == 0 {
			return fmt.Errorf("failed to list pages: %w", err)
		}
		ordered := make([]*notion.Page, 0, len(pages))
		for _, p := range pages {
			ordered = append(ordered, p)
		}
		sort.Slice(ordered, func(i, j int) bool {
			return ordered[i].PlainTitle() < ordered[j].PlainTitle()
		})
		return formatter.FormatPages(ordered)

	default:
		return fmt.Errorf("unknown listing %q: expected databases or pages", what)
	}
}
