package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/navai/locindex/internal/locindex"
)

// lookupResult is one resolved name. Found is false for unrecognized names.
type lookupResult struct {
	Name      string  `json:"name"`
	Found     bool    `json:"found"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <name>...",
	Short: "Resolve location names to coordinates",
	Long:  "Prints the coordinate of each named location. Exits non-zero when any name is not recognized.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		idx, err := newIndex(cfg)
		if err != nil {
			return err
		}
		if err := idx.Build(ctx); err != nil {
			return err
		}

		results, missing, err := lookupAll(ctx, idx, args)
		if err != nil {
			return err
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(results); err != nil {
				return eris.Wrap(err, "lookup: encode json")
			}
		} else {
			formatLookup(cmd.OutOrStdout(), results)
		}

		if missing > 0 {
			return eris.Errorf("lookup: %d location(s) not recognized", missing)
		}
		return nil
	},
}

func lookupAll(ctx context.Context, idx *locindex.Index, names []string) ([]lookupResult, int, error) {
	results := make([]lookupResult, 0, len(names))
	var missing int
	for _, name := range names {
		c, err := idx.Lookup(ctx, name)
		switch {
		case err == nil:
			results = append(results, lookupResult{Name: name, Found: true, Latitude: c.Latitude, Longitude: c.Longitude})
		case errors.Is(err, locindex.ErrNotFound):
			results = append(results, lookupResult{Name: name})
			missing++
		default:
			return nil, 0, err
		}
	}
	return results, missing, nil
}

func formatLookup(w io.Writer, results []lookupResult) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tLATITUDE\tLONGITUDE")
	for _, r := range results {
		if !r.Found {
			fmt.Fprintf(tw, "%s\t-\t-\n", r.Name)
			continue
		}
		fmt.Fprintf(tw, "%s\t%.6f\t%.6f\n", r.Name, r.Latitude, r.Longitude)
	}
	_ = tw.Flush()
}

func init() {
	lookupCmd.Flags().Bool("json", false, "print results as JSON")
	rootCmd.AddCommand(lookupCmd)
}
