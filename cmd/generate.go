package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/snadboy/notiongen/internal/notion"
	"github.com/snadboy/notiongen/internal/sbnotion"
)

type generateOptions struct {
	outputDir   string
	packageName string
	force       bool
	filter      string
}

var generateOpts = &generateOptions{}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate Go record types for Notion databases",
	Long: `Generate a Go record type and metadata sidecar for every database
visible to the token. Databases whose schema hash is unchanged since the
last run are skipped unless --force is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd.Context(), generateOpts)
	},
}

func init() {
	generateCmd.Flags().StringVarP(&generateOpts.outputDir, "output-dir", "o", "", "Directory for generated files (default: configured output dir)")
	generateCmd.Flags().StringVar(&generateOpts.packageName, "package", "generated", "Package name of generated files")
	generateCmd.Flags().BoolVar(&generateOpts.force, "force", false, "Regenerate even if the schema hash is unchanged")
	generateCmd.Flags().StringVar(&generateOpts.filter, "filter", "", "Only process databases whose title contains this substring")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(ctx context.Context, opts *generateOptions) error {
	svc, logger, err := newService(opts.outputDir, sbnotion.WithPackageName(opts.packageName))
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	databases, err := svc.Databases(ctx)
	if err != nil && len(databases) == 0 {
		return fmt.Errorf("failed to list databases: %w", err)
	}
	if len(databases) == 0 {
		return fmt.Errorf("no databases found; check the token and its page permissions")
	}

	ordered := make([]*notion.Database, 0, len(databases))
	for _, db := range databases {
		if opts.filter != "" && !strings.Contains(strings.ToLower(db.PlainTitle()), strings.ToLower(opts.filter)) {
			continue
		}
		ordered = append(ordered, db)
	}
	if len(ordered) == 0 {
		color.Yellow("No databases found matching filter: %s", opts.filter)
		return nil
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].PlainTitle() < ordered[j].PlainTitle()
	})

	var failed int
	for _, db := range ordered {
		title := db.PlainTitle()
		if title == "" {
			title = db.ID
		}

		path, err := svc.GenerateDatabaseType(ctx, db.ID, opts.force)
		switch {
		case err != nil:
			failed++
			color.Red("error: %s: %v", title, err)
		case path == "":
			fmt.Printf("skipped %s (no changes detected)\n", title)
		default:
			color.Green("generated %s -> %s", title, path)
		}
	}

	if failed > 0 {
		return fmt.Errorf("generation failed for %d of %d databases", failed, len(ordered))
	}
	return nil
}
