package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/epigraph-tools/lapis/schema"
)

var flagProfilePretty bool

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Print the heuristic column profile of the dataset",
	Long: `Classifies each column (identifier, numeric, categorical, free
text) the same way the dashboard does when deciding which fields get filter
dropdowns and statistics breakdowns.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, _ := loadData()
		p := schema.Discover(ds)

		var out []byte
		var err error
		if flagProfilePretty {
			out, err = json.MarshalIndent(p, "", "  ")
		} else {
			out, err = json.Marshal(p)
		}
		if err != nil {
			return fmt.Errorf("failed to marshal profile: %w", err)
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	profileCmd.Flags().BoolVar(&flagProfilePretty, "pretty", false, "pretty-print JSON")
}
