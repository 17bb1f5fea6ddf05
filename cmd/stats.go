package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/navai/locindex/internal/locindex"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Build the index and show its statistics",
	RunE: func(cmd *cobra.Command, _ []string) error {
		idx, err := newIndex(cfg)
		if err != nil {
			return err
		}
		buildErr := idx.Build(cmd.Context())

		formatStats(cmd.OutOrStdout(), idx.Stats())
		return buildErr
	},
}

func formatStats(w io.Writer, st locindex.Stats) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Built:\t%t\n", st.Built)
	fmt.Fprintf(tw, "Source loads:\t%d\n", st.SourceLoads)
	if st.Built {
		fmt.Fprintf(tw, "Built at:\t%s\n", st.BuiltAt.UTC().Format(time.RFC3339))
		fmt.Fprintf(tw, "Locations:\t%d\n", st.Locations)
		fmt.Fprintf(tw, "Override names:\t%d\n", st.OverrideNames)
		fmt.Fprintf(tw, "Generated names:\t%d\n", st.GeneratedNames)
	}
	if st.Bounds != nil {
		fmt.Fprintf(tw, "Latitude range:\t%.6f .. %.6f\n", st.Bounds.Min(1), st.Bounds.Max(1))
		fmt.Fprintf(tw, "Longitude range:\t%.6f .. %.6f\n", st.Bounds.Min(0), st.Bounds.Max(0))
	}
	_ = tw.Flush()
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
