package main

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/AntonStoeckl/survey-variables-go/variables"
)

const cancellationCheckInterval = 1024

// countMembers evaluates responses on workers goroutines and returns the member count per instance id.
// Every worker obtains its own evaluator, the compiled variable itself is shared.
func countMembers(
	ctx context.Context,
	variable variables.Variable[variables.Numeric],
	responses []variables.ResponseEntity,
	workers int,
) (map[int]int, error) {

	perWorker := make([]map[int]int, workers)
	g, ctx := errgroup.WithContext(ctx)

	for w := range workers {
		g.Go(func() error {
			membersOf := variable.MembersAt(func(variables.Numeric) bool { return true })
			counts := make(map[int]int)

			for n, i := 0, w; i < len(responses); n, i = n+1, i+workers {
				if n%cancellationCheckInterval == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}

				for _, instanceID := range membersOf(responses[i]) {
					counts[instanceID]++
				}
			}

			perWorker[w] = counts

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := make(map[int]int)
	for _, counts := range perWorker {
		for instanceID, n := range counts {
			total[instanceID] += n
		}
	}

	return total, nil
}
