package export

import "golang.org/x/sync/semaphore"

// Gate admits one export at a time. Requests arriving while an export runs are
// refused rather than queued.
type Gate struct {
	sem *semaphore.Weighted
}

func NewGate() *Gate {
	return &Gate{sem: semaphore.NewWeighted(1)}
}

// TryEnter reports whether the caller may start an export. A true result must be
// paired with Leave.
func (g *Gate) TryEnter() bool {
	return g.sem.TryAcquire(1)
}

func (g *Gate) Leave() {
	g.sem.Release(1)
}
