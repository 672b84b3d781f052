package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rpggio/mlaconnect/internal/render"
	"github.com/rpggio/mlaconnect/internal/table"
	"github.com/spf13/cobra"
)

func newTablesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List dashboard tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.open()
			if err != nil {
				return err
			}
			defer a.DB.Close()
			return render.Tables(cmd.OutOrStdout(), a.Catalog.Tables())
		},
	}
}

type queryFlags struct {
	filters  []string
	search   string
	sort     []string
	page     int
	pageSize int
	hide     []string
	asJSON   bool
}

func newQueryCmd(opts *rootOptions) *cobra.Command {
	var f queryFlags

	cmd := &cobra.Command{
		Use:   "query <table>",
		Short: "Filter, sort and page through a table",
		Long: `Query one dashboard table. Filters narrow the rows, sort keys order them
and the page flags pick which slice is printed.

Examples:
  mlactl query grievances --filter status=PENDING --sort created_at:desc
  mlactl query constituencies --search pune --page 2 --page-size 5
  mlactl query projects --hide id,constituency_id --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := f.state(cmd)
			if err != nil {
				return err
			}

			a, err := opts.open()
			if err != nil {
				return err
			}
			defer a.DB.Close()

			res, err := a.Catalog.Query(cmd.Context(), opts.tenant, args[0], state)
			if err != nil {
				return err
			}

			if f.asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), render.Table(res))
			return err
		},
	}

	cmd.Flags().StringArrayVar(&f.filters, "filter", nil, "column filter as column=value (repeatable)")
	cmd.Flags().StringVar(&f.search, "search", "", "search across all filterable columns")
	cmd.Flags().StringSliceVar(&f.sort, "sort", nil, "sort keys as column[:desc], highest priority first")
	cmd.Flags().IntVar(&f.page, "page", 1, "page number, starting at 1")
	cmd.Flags().IntVar(&f.pageSize, "page-size", 0, "rows per page (default from config)")
	cmd.Flags().StringSliceVar(&f.hide, "hide", nil, "columns to hide")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "print the page as JSON")
	return cmd
}

// state turns the flags into a view state. Hidden stays nil unless --hide
// was given so the table's default visibility applies.
func (f queryFlags) state(cmd *cobra.Command) (table.State, error) {
	var state table.State

	for _, raw := range f.filters {
		col, val, ok := strings.Cut(raw, "=")
		if !ok || strings.TrimSpace(col) == "" {
			return table.State{}, fmt.Errorf("invalid filter %q: want column=value", raw)
		}
		if state.Filters == nil {
			state.Filters = make(map[string]string)
		}
		state.Filters[strings.TrimSpace(col)] = val
	}

	state.Search = f.search
	for _, key := range f.sort {
		state.Sort = append(state.Sort, table.ParseSortKey(key))
	}
	state.PageIndex = f.page - 1
	state.PageSize = f.pageSize
	if cmd.Flags().Changed("hide") {
		state.Hidden = append([]string{}, f.hide...)
	}
	return state, nil
}
