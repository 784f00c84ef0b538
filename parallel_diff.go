package digitring

import (
	"context"
	"sort"
	"time"

	cid "github.com/ipfs/go-cid"
	cbor "github.com/ipfs/go-ipld-cbor"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"
)

// minSpan keeps tiny rings from being split into tasks smaller than the cost
// of handing them to a worker.
const minSpan = 1024

type span struct {
	from, to int
}

// ParallelDiff is Diff with the comparison split into spans handled by a
// pool of workers. The result is sorted by index and equal to Diff's.
func ParallelDiff(ctx context.Context, prevBs, curBs cbor.IpldStore, prev, cur cid.Cid, workers int64) ([]*Change, error) {
	start := time.Now()
	prevRing, err := LoadRing(ctx, prevBs, prev)
	if err != nil {
		return nil, xerrors.Errorf("loading previous ring: %w", err)
	}

	curRing, err := LoadRing(ctx, curBs, cur)
	if err != nil {
		return nil, xerrors.Errorf("loading current ring: %w", err)
	}

	if curRing.base != prevRing.base {
		return nil, invalidArgumentError("diffing rings with differing bases not supported (prev=%d, cur=%d)", prevRing.base, curRing.base)
	}
	if workers < 1 {
		workers = 1
	}

	// Snapshot the digits so workers never touch the rings themselves.
	pd, cd := prevRing.Digits(), curRing.Digits()
	n := max(len(pd), len(cd))
	width := max((n+int(workers)-1)/int(workers), minSpan)

	grp, ctx := errgroup.WithContext(ctx)
	tasks := make(chan span)
	out := make(chan *Change)

	grp.Go(func() error {
		defer close(tasks)
		for from := 0; from < n; from += width {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case tasks <- span{from, min(from+width, n)}:
			}
		}
		return nil
	})

	for i := int64(0); i < workers; i++ {
		grp.Go(func() error {
			for t := range tasks {
				for _, change := range diffRange(pd, cd, t.from, t.to) {
					select {
					case <-ctx.Done():
						return ctx.Err()
					case out <- change:
					}
				}
			}
			return nil
		})
	}

	changes := make([]*Change, 0)
	done := make(chan struct{})
	go func() {
		for change := range out {
			changes = append(changes, change)
		}
		close(done)
	}()

	err = grp.Wait()
	close(out)
	<-done
	if err != nil {
		return nil, err
	}

	sort.Slice(changes, func(i, j int) bool {
		return changes[i].Index < changes[j].Index
	})
	log.Infow("parallel diff", "duration", time.Since(start), "digits", n, "changes", len(changes), "workers", workers)

	return changes, nil
}
