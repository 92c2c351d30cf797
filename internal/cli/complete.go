package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kbukum/querykit/query"
	"github.com/kbukum/querykit/trie"
)

// CompleteOptions holds flags for the complete command.
type CompleteOptions struct {
	Limit int
}

// NewCompleteCommand creates the complete command.
func NewCompleteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompleteOptions{}

	cmd := &cobra.Command{
		Use:   "complete <prefix> <word>...",
		Short: "List the words that start with a prefix",
		Long: `Index the words in a trie and list those starting with prefix, in
lexicographic order. Repeated words are listed once.`,
		Example:       "  qk complete te tea ten to tenant inn",
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.execute(cmd, func(ctx context.Context) (any, error) {
				return runComplete(opts, args[0], args[1:], cmd.Flags().Changed("limit"))
			})
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "list at most N words")

	return cmd
}

func runComplete(opts *CompleteOptions, prefix string, candidates []string, limit bool) (words, error) {
	q := query.FromSlice(trie.New(candidates...).WithPrefix(prefix))
	if limit {
		q = q.Take(opts.Limit)
	}
	return q.ToSlice()
}
