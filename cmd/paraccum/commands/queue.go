package commands

import (
	"errors"
	"fmt"
	gosync "sync"

	"github.com/spf13/cobra"

	"github.com/exascience/paraccum/parallel"
	"github.com/exascience/paraccum/sync"
)

func newQueueCmd(args *rootArgs) *cobra.Command {
	var goroutines, per int

	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Push values from several goroutines, then pop and sum them",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			if goroutines < 1 || per < 0 {
				return fmt.Errorf("%w: --goroutines must be at least 1 and --per must not be negative",
					ErrInvalidArgument)
			}

			var q sync.Queue[int]

			var wg gosync.WaitGroup
			for g := range goroutines {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for i := range per {
						q.Push(g*per + i)
					}
				}()
			}
			wg.Wait()

			args.logger.Info("pushed", "goroutines", goroutines, "len", q.Len())

			popped := make([]int, 0, goroutines*per)
			for {
				v, err := q.Pop()
				if errors.Is(err, sync.ErrEmptyQueue) {
					break
				}
				popped = append(popped, v)
			}

			sum, err := parallel.Sum(popped, args.cfg.Options()...)
			if err != nil {
				return fmt.Errorf("sum: %w", err)
			}

			_, err = fmt.Fprintf(cc.OutOrStdout(), "popped=%d sum=%d\n", len(popped), sum)

			return err
		},
	}

	cmd.Flags().IntVar(&goroutines, "goroutines", 8, "Number of pushing goroutines")
	cmd.Flags().IntVar(&per, "per", 125, "Values pushed by each goroutine")

	return cmd
}
