package cli

import (
	"context"
	"math"

	"github.com/spf13/cobra"

	"github.com/kbukum/querykit/query"
)

// RangeOptions holds flags for the range command.
type RangeOptions struct {
	Even bool
	Odd  bool
	Skip int
	Take int
}

// NewRangeCommand creates the range command.
func NewRangeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RangeOptions{}

	cmd := &cobra.Command{
		Use:   "range <start> <end> [step]",
		Short: "Print an arithmetic sequence",
		Long: `Print start, start+step, ... up to and including end.

The step defaults to 1, or -1 when end is below start. Filters apply
in the order --where-even/--where-odd, --skip, --take.`,
		Example:       "  qk range 1 20 --where-even --skip 2 --take 3",
		Args:          cobra.RangeArgs(2, 3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.execute(cmd, func(ctx context.Context) (any, error) {
				return runRange(opts, args, cmd.Flags().Changed("take"))
			})
		},
	}

	cmd.Flags().BoolVar(&opts.Even, "where-even", false, "keep only even values")
	cmd.Flags().BoolVar(&opts.Odd, "where-odd", false, "keep only odd values")
	cmd.MarkFlagsMutuallyExclusive("where-even", "where-odd")
	cmd.Flags().IntVar(&opts.Skip, "skip", 0, "drop the first N values")
	cmd.Flags().IntVar(&opts.Take, "take", 0, "stop after N values")

	return cmd
}

func runRange(opts *RangeOptions, args []string, limit bool) (numbers, error) {
	bounds, err := parseNumbers(args)
	if err != nil {
		return nil, err
	}
	start, end := bounds[0], bounds[1]
	step := 1.0
	switch {
	case len(bounds) == 3:
		step = bounds[2]
	case end < start:
		step = -1
	}

	q := query.Range(start, end, step)
	switch {
	case opts.Even:
		q = q.Where(func(v float64) bool { return math.Mod(v, 2) == 0 })
	case opts.Odd:
		q = q.Where(func(v float64) bool { return math.Abs(math.Mod(v, 2)) == 1 })
	}
	q = q.Skip(opts.Skip)
	if limit {
		q = q.Take(opts.Take)
	}
	return q.ToSlice()
}
