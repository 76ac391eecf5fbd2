package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/epigraph-tools/lapis/engine"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print summary metrics for the dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, source := loadData()
		metrics := engine.SummaryMetrics(ds).Map()

		keys := make([]string, 0, len(metrics))
		for k := range metrics {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fmt.Printf("source: %s\n", source)
		for _, k := range keys {
			fmt.Printf("%-14s %s\n", k, metrics[k])
		}
		return nil
	},
}
