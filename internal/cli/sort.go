package cli

import (
	"cmp"
	"context"

	"github.com/spf13/cobra"

	"github.com/kbukum/querykit/query"
)

// SortOptions holds flags for the sort command.
type SortOptions struct {
	Descending bool
	Distinct   bool
}

// NewSortCommand creates the sort command.
func NewSortCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SortOptions{}

	cmd := &cobra.Command{
		Use:           "sort <n>...",
		Short:         "Sort numbers",
		Example:       "  qk sort --distinct -- 10 4 -5 4 1",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.execute(cmd, func(ctx context.Context) (any, error) {
				return runSort(opts, args)
			})
		},
	}

	cmd.Flags().BoolVarP(&opts.Descending, "desc", "d", false, "sort largest first")
	cmd.Flags().BoolVar(&opts.Distinct, "distinct", false, "drop repeated values")

	return cmd
}

func runSort(opts *SortOptions, args []string) (numbers, error) {
	values, err := parseNumbers(args)
	if err != nil {
		return nil, err
	}
	q := query.FromSlice(values)
	if opts.Distinct {
		q = q.Distinct()
	}
	if opts.Descending {
		return q.OrderByDescending(cmp.Compare[float64]).ToSlice()
	}
	return q.OrderBy(cmp.Compare[float64]).ToSlice()
}
