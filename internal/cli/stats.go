package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kbukum/querykit/query"
)

// Stats summarizes a list of numbers.
type Stats struct {
	Count  int     `json:"count"`
	Sum    float64 `json:"sum"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

func (s Stats) renderText(w io.Writer) {
	fmt.Fprintf(w, "count:  %d\n", s.Count)
	fmt.Fprintf(w, "sum:    %s\n", formatNumber(s.Sum))
	fmt.Fprintf(w, "min:    %s\n", formatNumber(s.Min))
	fmt.Fprintf(w, "max:    %s\n", formatNumber(s.Max))
	fmt.Fprintf(w, "mean:   %s\n", formatNumber(s.Mean))
	fmt.Fprintf(w, "median: %s\n", formatNumber(s.Median))
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "stats <n>...",
		Short:         "Summarize numbers",
		Example:       "  qk stats 3 1 4 1 5 9 2 6",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.execute(cmd, func(ctx context.Context) (any, error) {
				return runStats(args)
			})
		},
	}

	return cmd
}

// runStats runs one query per aggregate over a re-enumerable Slice.
func runStats(args []string) (Stats, error) {
	values, err := parseNumbers(args)
	if err != nil {
		return Stats{}, err
	}
	src := query.Slice[float64](values)

	var s Stats
	if s.Count, err = query.From[float64](src).Count(); err != nil {
		return Stats{}, err
	}
	if s.Sum, err = query.Sum(query.From[float64](src)); err != nil {
		return Stats{}, err
	}
	if s.Min, err = query.Min(query.From[float64](src)); err != nil {
		return Stats{}, err
	}
	if s.Max, err = query.Max(query.From[float64](src)); err != nil {
		return Stats{}, err
	}
	if s.Mean, err = query.Mean(query.From[float64](src)); err != nil {
		return Stats{}, err
	}
	if s.Median, err = query.Median(query.From[float64](src)); err != nil {
		return Stats{}, err
	}
	return s, nil
}
