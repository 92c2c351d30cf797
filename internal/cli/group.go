package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/spf13/cobra"

	"github.com/kbukum/querykit/query"
	"github.com/kbukum/querykit/validation"
)

// GroupOptions holds flags for the group command.
type GroupOptions struct {
	Mod float64
}

// groups keeps remainder groups in first-seen order for text output and
// keyed by remainder for JSON.
type groups struct {
	ordered []query.Group[string, float64]
	byKey   map[string][]float64
}

func (g groups) renderText(w io.Writer) {
	for _, grp := range g.ordered {
		fmt.Fprintf(w, "%s: %s\n", grp.Key, joinNumbers(grp.Value))
	}
}

func (g groups) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.byKey)
}

// NewGroupCommand creates the group command.
func NewGroupCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GroupOptions{}

	cmd := &cobra.Command{
		Use:   "group <n>...",
		Short: "Group numbers by remainder",
		Long: `Group numbers by their remainder modulo --mod. Groups are listed in
the order their remainder first appears; members keep input order.`,
		Example:       "  qk group 1 2 3 4 5 6 7 --mod 3",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.execute(cmd, func(ctx context.Context) (any, error) {
				return runGroup(opts, args, rootOpts.config().Query.StrictMaps)
			})
		},
	}

	cmd.Flags().Float64VarP(&opts.Mod, "mod", "m", 2, "modulus")

	return cmd
}

func runGroup(opts *GroupOptions, args []string, strict bool) (groups, error) {
	if err := validation.New().Custom(opts.Mod != 0 && !math.IsNaN(opts.Mod), "mod", "must not be zero").Validate(); err != nil {
		return groups{}, err
	}
	values, err := parseNumbers(args)
	if err != nil {
		return groups{}, err
	}

	remainder := func(v float64) string {
		r := math.Mod(v, opts.Mod)
		if r == 0 {
			r = 0 // fold -0 into 0
		}
		return formatNumber(r)
	}
	ordered, err := query.GroupBy(query.FromSlice(values), remainder).ToSlice()
	if err != nil {
		return groups{}, err
	}
	byKey, err := query.ToPairsMap(query.FromSlice(ordered), strict)
	if err != nil {
		return groups{}, err
	}
	return groups{ordered: ordered, byKey: byKey}, nil
}
