package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var namesCmd = &cobra.Command{
	Use:   "names",
	Short: "List indexed location names",
	Long:  "Prints every location name in the index, or autocomplete suggestions when --query is set.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		idx, err := newIndex(cfg)
		if err != nil {
			return err
		}

		query, _ := cmd.Flags().GetString("query")
		limit, _ := cmd.Flags().GetInt("limit")
		if limit < 0 {
			limit = cfg.Suggest.Limit
		}

		var names []string
		if query != "" {
			names, err = idx.Suggest(ctx, query, limit)
		} else {
			names, err = idx.Names(ctx)
			if err == nil && limit > 0 && len(names) > limit {
				names = names[:limit]
			}
		}
		if err != nil {
			return err
		}

		printNames(cmd.OutOrStdout(), names)
		return nil
	},
}

func printNames(w io.Writer, names []string) {
	for _, n := range names {
		fmt.Fprintln(w, n)
	}
}

func init() {
	namesCmd.Flags().String("query", "", "only names containing this text (case-insensitive)")
	namesCmd.Flags().Int("limit", -1, "maximum names to print (0 = all, default from suggest.limit)")
	rootCmd.AddCommand(namesCmd)
}
