package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/epigraph-tools/lapis/dataset"
	"github.com/epigraph-tools/lapis/engine"
	"github.com/epigraph-tools/lapis/search"
)

var (
	flagSearch  string
	flagFilters []string
	flagWhere   string
	flagSort    string
	flagLimit   int
	flagFormat  string
	flagOut     string
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run a one-shot filtered query against the dataset",
	Long: `Applies the free-text search, exact field filters, and optional
boolean expression to the dataset and prints the resulting view.

Examples:
  lapis query --search julia --format table
  lapis query --filter gender=Male --filter age_category=Adult --format csv --out males.csv
  lapis query --where 'year > 100 and gender == "Female"' --sort year --limit 5`,
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringVarP(&flagSearch, "search", "q", "", "free-text search across all columns")
	queryCmd.Flags().StringArrayVar(&flagFilters, "filter", nil, "exact field filter, field=value (repeatable)")
	queryCmd.Flags().StringVar(&flagWhere, "where", "", "boolean filter expression")
	queryCmd.Flags().StringVar(&flagSort, "sort", "", "numeric column to order by, descending")
	queryCmd.Flags().IntVar(&flagLimit, "limit", 0, "max rows to print (0 = all)")
	queryCmd.Flags().StringVar(&flagFormat, "format", "table", "output format: json, pretty, csv, table")
	queryCmd.Flags().StringVar(&flagOut, "out", "", "write output to file instead of stdout")
}

func runQuery(cmd *cobra.Command, args []string) error {
	ds, _ := loadData()

	fields := make(map[string]string)
	for _, f := range flagFilters {
		field, value, found := strings.Cut(f, "=")
		if !found || field == "" {
			return fmt.Errorf("invalid --filter %q, want field=value", f)
		}
		fields[field] = value
	}

	view := engine.ApplyFilters(ds, flagSearch, fields)

	if flagWhere != "" {
		ev, err := search.New(flagWhere)
		if err != nil {
			return err
		}
		view = ev.Filter(view)
	}

	if flagSort != "" {
		view = engine.SortByNumericDesc(view, flagSort)
	}
	if flagLimit > 0 {
		view = engine.Head(view, flagLimit)
	}

	w, closeOut, err := outputWriter(flagOut)
	if err != nil {
		return err
	}
	defer closeOut()

	switch flagFormat {
	case "csv":
		out, err := dataset.Export(view)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err

	case "json", "pretty":
		payload := map[string]any{
			"columns": view.Columns(),
			"rows":    engine.Rows(view),
			"total":   view.Len(),
		}
		var out []byte
		if flagFormat == "pretty" {
			out, err = json.MarshalIndent(payload, "", "  ")
		} else {
			out, err = json.Marshal(payload)
		}
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err

	case "table":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(view.Columns(), "\t"))
		for i := 0; i < view.Len(); i++ {
			fmt.Fprintln(tw, strings.Join(view.Row(i), "\t"))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "(%d rows)\n", view.Len())
		return err

	default:
		return fmt.Errorf("unknown format %q, want json, pretty, csv, or table", flagFormat)
	}
}
