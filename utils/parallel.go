package utils

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ParallelFactor controls the max level of parallelization. This might be useful
// to set in tests where too much parallelism actually slows tests down in
// aggregate.
var ParallelFactor = runtime.GOMAXPROCS(0)

func init() {
	if ParallelFactor <= 0 {
		ParallelFactor = 1
	}
}

// GroupWorkFunc processes the half-open range [from, to) of work items for one group.
type GroupWorkFunc func(ctx context.Context, groupNum, from, to int) error

// GroupWorkParallel splits totalSize work items into at most ParallelFactor contiguous groups and
// runs each group in its own goroutine. The last group picks up the remainder. The first error
// cancels the context handed to the other groups and is returned; a panic in a group is
// recovered and returned as an error.
func GroupWorkParallel(ctx context.Context, totalSize int, groupWork GroupWorkFunc) error {
	if totalSize <= 0 {
		return nil
	}
	numGroups := ParallelFactor
	if numGroups > totalSize {
		numGroups = totalSize
	}
	groupSize := totalSize / numGroups
	extra := totalSize % numGroups

	g, ctx := errgroup.WithContext(ctx)
	for groupNum := 0; groupNum < numGroups; groupNum++ {
		from := groupSize * groupNum
		to := from + groupSize
		if groupNum == numGroups-1 {
			to += extra
		}
		g.Go(func() (err error) {
			defer func() {
				if thePanic := recover(); thePanic != nil {
					err = fmt.Errorf("got panic running group %d in parallel: %v", groupNum, thePanic)
				}
			}()
			if err := ctx.Err(); err != nil {
				return err
			}
			return groupWork(ctx, groupNum, from, to)
		})
	}
	return g.Wait()
}
