package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/snadboy/notiongen/internal/notion"
	"github.com/snadboy/notiongen/internal/sbnotion"
)

type getOptions struct {
	format   string
	database bool
}

var getOpts = &getOptions{}

var getCmd = &cobra.Command{
	Use:   "get <id-or-title>",
	Short: "Resolve a single Notion page or database",
	Long: `Resolve a page (or, with --database, a database) by its ID, URL or
display title and print it. Unknown identifiers trigger one directory
refresh before giving up.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGet(cmd.Context(), args[0], getOpts)
	},
}

func init() {
	getCmd.Flags().StringVarP(&getOpts.format, "format", "f", "text", "Output format: json, text")
	getCmd.Flags().BoolVarP(&getOpts.database, "database", "d", false, "Resolve a database instead of a page")

	rootCmd.AddCommand(getCmd)
}

func runGet(ctx context.Context, identifier string, opts *getOptions) error {
	svc, logger, err := newService("")
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	identifier = notion.ExtractID(identifier)
	formatter := sbnotion.NewFormatter(sbnotion.OutputFormat(opts.format), os.Stdout)

	if opts.database {
		db, err := svc.GetDatabase(ctx, identifier)
		if errors.Is(err, sbnotion.ErrNotFound) {
			return fmt.Errorf("database %q not found", identifier)
		}
		if err != nil {
			return err
		}
		return formatter.FormatDatabase(db)
	}

	page, err := svc.GetPage(ctx, identifier)
	if errors.Is(err, sbnotion.ErrNotFound) {
		return fmt.Errorf("page %q not found", identifier)
	}
	if err != nil {
		return err
	}
	return formatter.FormatPage(page)
}
