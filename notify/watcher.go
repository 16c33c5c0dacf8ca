package notify

import (
	"context"
	"sync"
	"time"

	"github.com/nyctransithub/transit-hub/alerts"
	"github.com/nyctransithub/transit-hub/gtfsrt"
	"github.com/nyctransithub/transit-hub/internal/logging"
)

// TrainSource yields train updates for a line group
type TrainSource interface {
	TrainsOrEmpty(ctx context.Context, lineGroup string) []gtfsrt.TrainUpdate
}

// AlertSource yields service alerts for a category
type AlertSource interface {
	FetchOrEmpty(ctx context.Context, category string) []alerts.ServiceAlert
}

// DefaultInterval is used when Watcher.Interval is not positive
const DefaultInterval = 30 * time.Second

// Sink receives snapshots
type Sink interface {
	Publish(kind, id string, items any, count int) error
}

// Watcher polls every configured feed on an interval and forwards non-empty
// snapshots to a sink
type Watcher struct {
	Trains     TrainSource
	Alerts     AlertSource
	LineGroups []string
	Categories []string
	Sink       Sink
	Interval   time.Duration
	Log        logging.Logger
}

// Run polls until ctx is cancelled. The first poll happens immediately.
func (w *Watcher) Run(ctx context.Context) error {
	if w.Log == nil {
		w.Log = logging.Nop()
	}
	interval := w.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		n := w.Poll(ctx)
		w.Log.Info("watch cycle complete", "published", n)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Poll fetches every feed concurrently once and returns the number of
// snapshots published
func (w *Watcher) Poll(ctx context.Context) int {
	log := w.Log
	if log == nil {
		log = logging.Nop()
	}
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		published int
	)
	publish := func(kind, id string, items any, count int) {
		if count == 0 {
			return
		}
		if err := w.Sink.Publish(kind, id, items, count); err != nil {
			log.Error("publish failed", "kind", kind, "id", id, "error", err)
			return
		}
		mu.Lock()
		published++
		mu.Unlock()
	}

	if w.Trains != nil {
		for _, g := range w.LineGroups {
			wg.Add(1)
			go func(group string) {
				defer wg.Done()
				trains := w.Trains.TrainsOrEmpty(ctx, group)
				publish(KindTrains, group, trains, len(trains))
			}(g)
		}
	}
	if w.Alerts != nil {
		for _, c := range w.Categories {
			wg.Add(1)
			go func(category string) {
				defer wg.Done()
				list := w.Alerts.FetchOrEmpty(ctx, category)
				publish(KindAlerts, category, list, len(list))
			}(c)
		}
	}
	wg.Wait()
	return published
}
