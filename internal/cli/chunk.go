package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kbukum/querykit/query"
	"github.com/kbukum/querykit/validation"
)

// ChunkOptions holds flags for the chunk command.
type ChunkOptions struct {
	Size int
}

// chunks renders one chunk per line.
type chunks [][]float64

func (c chunks) renderText(w io.Writer) {
	for _, chunk := range c {
		fmt.Fprintln(w, joinNumbers(chunk))
	}
}

// NewChunkCommand creates the chunk command.
func NewChunkCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ChunkOptions{}

	cmd := &cobra.Command{
		Use:   "chunk <n>...",
		Short: "Split numbers into fixed-size groups",
		Long: `Split numbers into consecutive groups of --size values. The last
group may be shorter. The size defaults to query.chunk_size from the
configuration.`,
		Example:       "  qk chunk 1 2 3 4 5 --size 2",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.execute(cmd, func(ctx context.Context) (any, error) {
				size := opts.Size
				if !cmd.Flags().Changed("size") {
					size = rootOpts.config().Query.ChunkSize
				}
				return runChunk(size, args)
			})
		},
	}

	cmd.Flags().IntVarP(&opts.Size, "size", "s", 0, "values per group")

	return cmd
}

func runChunk(size int, args []string) (chunks, error) {
	if err := validation.New().Min("size", size, 1).Validate(); err != nil {
		return nil, err
	}
	values, err := parseNumbers(args)
	if err != nil {
		return nil, err
	}
	return query.Chunk(query.FromSlice(values), size).ToSlice()
}
