package jobs

import (
	"context"
	"log"
	"time"

	"lexipedia/internal/db"
)

// StatsReconciler periodically recomputes stale contribution ledgers. The
// ledger is recomputed inline after every review decision, so this loop
// only catches rows missed by crashes or external data changes.
type StatsReconciler struct {
	db       *db.DB
	interval time.Duration
	maxAge   time.Duration
}

// NewStatsReconciler creates a new stats reconciler.
func NewStatsReconciler(database *db.DB, interval, maxAge time.Duration) *StatsReconciler {
	return &StatsReconciler{
		db:       database,
		interval: interval,
		maxAge:   maxAge,
	}
}

// Start begins the background reconcile loop.
func (r *StatsReconciler) Start(ctx context.Context) {
	log.Printf("Stats reconciler started (interval: %v, maxAge: %v)", r.interval, r.maxAge)

	// Run immediately on start
	r.reconcile(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Stats reconciler stopped")
			return
		case <-ticker.C:
			r.reconcile(ctx)
		}
	}
}

func (r *StatsReconciler) reconcile(ctx context.Context) {
	ids, err := r.db.GetStaleStatsUserIDs(ctx, r.maxAge)
	if err != nil {
		log.Printf("Stats reconciler: failed to list stale ledgers: %v", err)
		return
	}

	if len(ids) == 0 {
		return
	}

	log.Printf("Stats reconciler: recomputing %d ledgers", len(ids))

	for _, id := range ids {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := r.db.RecomputeContributionStats(ctx, id); err != nil {
			log.Printf("Stats reconciler: failed to recompute stats for %s: %v", id, err)
		}
	}
}
