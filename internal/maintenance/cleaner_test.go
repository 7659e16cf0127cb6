package maintenance

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/grocify/price-service/internal/model"
	"github.com/grocify/price-service/internal/scraper"
)

type fakePriceRepo struct {
	mu      sync.Mutex
	cutoffs []time.Time
}

func (f *fakePriceRepo) UpsertDaily(context.Context, string, []scraper.Quote, time.Time) error {
	return nil
}

func (f *fakePriceRepo) FindOrdered(context.Context, string, string) ([]model.PriceObservation, error) {
	return nil, nil
}

func (f *fakePriceRepo) LatestPerStore(context.Context, string) (map[string]model.PriceObservation, error) {
	return nil, nil
}

func (f *fakePriceRepo) DeleteObservedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cutoffs = append(f.cutoffs, cutoff)
	return 3, nil
}

func (f *fakePriceRepo) pruneCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.cutoffs)
}

func TestCleanerPrunesImmediatelyAndStops(t *testing.T) {
	repo := &fakePriceRepo{}
	cleaner := NewCleaner(repo, time.Hour, 90, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		cleaner.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for repo.pruneCount() == 0 {
		select {
		case <-deadline:
			t.Fatal("cleaner never pruned")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("cleaner did not stop on cancellation")
	}

	repo.mu.Lock()
	cutoff := repo.cutoffs[0]
	repo.mu.Unlock()
	wantAround := time.Now().UTC().AddDate(0, 0, -90)
	if diff := cutoff.Sub(wantAround); diff < -time.Minute || diff > time.Minute {
		t.Fatalf("cutoff = %v, want about 90 days ago", cutoff)
	}
}

func TestCleanerDefaults(t *testing.T) {
	c := NewCleaner(&fakePriceRepo{}, 0, 0, zap.NewNop())
	if c.interval != 24*time.Hour {
		t.Fatalf("interval = %v, want 24h", c.interval)
	}
	if c.retention != 90*24*time.Hour {
		t.Fatalf("retention = %v, want 90 days", c.retention)
	}
}
