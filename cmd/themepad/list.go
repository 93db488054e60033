package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themepad/internal/core"
	"github.com/jmylchreest/themepad/internal/output"
)

var listOpts struct {
	format    string
	template  string
	showIndex bool

	category  string
	search    string
	limit     int
	sortBy    string
	sortOrder string
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List themes available from the source",
	Long: `Fetch the theme index and print it. The index is fetched on every call.

Formats:
  plain   "Name (Category)  id" per line
  dmenu   "id<TAB>Name (Category)" per line, for dmenu/rofi/fuzzel
  json    JSON array of {id, name, category}
  yaml    YAML sequence of {id, name, category}
  ids     theme ids only

Examples:
  # Dark themes, alphabetically
  themepad list --category dark --sort name

  # Search and output as YAML
  themepad list -s blue --format yaml`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listOpts.format, "format", "f", string(output.FormatPlain),
		"Output format (plain, dmenu, json, yaml, ids)")
	listCmd.Flags().StringVar(&listOpts.template, "template", "",
		"Custom Go template for plain/dmenu output (fields: .Index, .Theme.ID, .Theme.Name, .Theme.Category)")
	listCmd.Flags().BoolVar(&listOpts.showIndex, "index", false,
		"Prefix plain output with a 1-based index")

	listCmd.Flags().StringVar(&listOpts.category, "category", "",
		"Only list themes in this category")
	listCmd.Flags().StringVarP(&listOpts.search, "search", "s", "",
		"Only list themes whose id, name or category contains this text")
	listCmd.Flags().IntVarP(&listOpts.limit, "limit", "n", 0,
		"Maximum number of themes to show after sorting (0=unlimited)")
	listCmd.Flags().StringVar(&listOpts.sortBy, "sort", string(core.SortByIndex),
		"Sort by field (index, name, id, category)")
	listCmd.Flags().StringVar(&listOpts.sortOrder, "order", string(core.SortAsc),
		"Sort order (asc, desc)")
}

func runList(cmd *cobra.Command, args []string) error {
	opts := output.DefaultFormatterOptions()
	opts.Template = listOpts.template
	opts.ShowIndex = listOpts.showIndex

	formatter, err := output.NewFormatter(output.FormatType(listOpts.format), opts)
	if err != nil {
		return err
	}

	sortOpts, err := core.ParseSortOptions(listOpts.sortBy, listOpts.sortOrder)
	if err != nil {
		return err
	}

	themes, err := app.loader.ListAvailable(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list themes: %w", err)
	}

	themes = core.Filter(themes, core.FilterOptions{
		Category: listOpts.category,
		Search:   listOpts.search,
	})
	core.Sort(themes, sortOpts)
	themes = core.Limit(themes, listOpts.limit)

	return formatter.Format(cmd.OutOrStdout(), themes)
}
