package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/exascience/paraccum/parallel"
)

func newSumCmd(args *rootArgs) *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:   "sum",
		Short: "Sum the integers 0 to n-1",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			if n < 0 {
				return fmt.Errorf("%w: --n must not be negative, got %d", ErrInvalidArgument, n)
			}

			seq := make([]int, n)
			for i := range seq {
				seq[i] = i
			}

			args.logger.Info("reducing sequence", "n", n)

			sum, err := parallel.Sum(seq, args.cfg.Options()...)
			if err != nil {
				return fmt.Errorf("sum: %w", err)
			}

			_, err = fmt.Fprintln(cc.OutOrStdout(), sum)

			return err
		},
	}

	cmd.Flags().IntVar(&n, "n", 100, "Number of integers to sum")

	return cmd
}
