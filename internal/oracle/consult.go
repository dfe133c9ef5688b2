package oracle

import (
	"context"
	"log"
	"time"
)

// Consult fans out to all sources concurrently, applying an individual timeout
// to each call. A source that fails or times out is dropped from the result —
// absence, not zero-confidence noise — so it does not dilute the confidence
// average. Order of the returned estimates follows the source list.
func Consult(ctx context.Context, sources []Source, req Request, timeout time.Duration) []Estimate {
	type slot struct {
		est Estimate
		err error
	}
	slots := make([]slot, len(sources))
	done := make(chan int, len(sources))

	for i, src := range sources {
		go func(i int, src Source) {
			cctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			est, err := src.Estimate(cctx, req)
			slots[i] = slot{est: est, err: err}
			done <- i
		}(i, src)
	}
	for range sources {
		<-done
	}

	out := make([]Estimate, 0, len(sources))
	for i, s := range slots {
		if s.err != nil {
			log.Printf("oracle: source %s skipped: %v", sources[i].Name(), s.err)
			continue
		}
		out = append(out, s.est)
	}
	return out
}
