package commands

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/exascience/paraccum/parallel"
)

func newRandomCmd(args *rootArgs) *cobra.Command {
	var (
		n        int
		limit    int
		seed     uint64
		printSeq bool
	)

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Sum n uniformly distributed integers from [0, max]",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			if n < 0 || limit < 0 {
				return fmt.Errorf("%w: --n and --max must not be negative", ErrInvalidArgument)
			}

			if !cc.Flags().Changed("seed") {
				seed = uint64(time.Now().UnixNano())
			}

			rnd := rand.New(rand.NewPCG(seed, seed))
			seq := make([]int, n)
			for i := range seq {
				seq[i] = rnd.IntN(limit + 1)
			}

			args.logger.Info("reducing random sequence", "n", n, "max", limit, "seed", seed)

			out := cc.OutOrStdout()

			if printSeq {
				fields := make([]string, len(seq))
				for i, v := range seq {
					fields[i] = strconv.Itoa(v)
				}

				if _, err := fmt.Fprintf(out, "%s\n\n", strings.Join(fields, " ")); err != nil {
					return err
				}
			}

			sum, err := parallel.Sum(seq, args.cfg.Options()...)
			if err != nil {
				return fmt.Errorf("sum: %w", err)
			}

			_, err = fmt.Fprintln(out, sum)

			return err
		},
	}

	cmd.Flags().IntVar(&n, "n", 1000, "Number of random integers")
	cmd.Flags().IntVar(&limit, "max", 1000, "Largest value that can be drawn")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed (default: current time)")
	cmd.Flags().BoolVar(&printSeq, "print", false, "Print the generated sequence before the sum")

	return cmd
}
