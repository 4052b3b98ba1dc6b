package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/goroti11/trutube-sub003/internal/model"
	"github.com/goroti11/trutube-sub003/internal/repository"
)

// TrustWorker serializes trust-record writes per user. Events from anywhere
// in the pipeline are enqueued as deltas; the worker merges deltas for the
// same user and applies each merged set through a read-update-CAS cycle.
// This is the only path allowed to write user_trust_scores — a naive
// read-modify-write from two call sites would silently drop updates.
type TrustWorker struct {
	trustSvc  *TrustService
	trustRepo *repository.TrustRepo
	batchMs   time.Duration

	mu      sync.Mutex
	pending map[string]model.TrustDeltas // user IDs with unapplied deltas
}

const trustWriteRetries = 3

// NewTrustWorker creates a trust update worker.
func NewTrustWorker(trustSvc *TrustService, trustRepo *repository.TrustRepo) *TrustWorker {
	return &TrustWorker{
		trustSvc:  trustSvc,
		trustRepo: trustRepo,
		batchMs:   2 * time.Second,
		pending:   make(map[string]model.TrustDeltas),
	}
}

// Enqueue merges deltas for a user into the pending set. Safe to call from
// any goroutine.
func (w *TrustWorker) Enqueue(userID string, deltas model.TrustDeltas) {
	if deltas.IsZero() {
		return
	}
	w.mu.Lock()
	merged := w.pending[userID]
	merged.Merge(deltas)
	w.pending[userID] = merged
	w.mu.Unlock()
}

// Start begins the flush loop. Blocks until ctx is cancelled; a final flush
// runs before exit.
func (w *TrustWorker) Start(ctx context.Context) {
	log.Printf("trust-worker: starting (batch window=%s)", w.batchMs)

	ticker := time.NewTicker(w.batchMs)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.flush(ctx)
		case <-ctx.Done():
			log.Println("trust-worker: stopping (context cancelled)")
			w.flush(context.Background())
			return
		}
	}
}

// flush drains the pending set and applies each user's merged deltas.
func (w *TrustWorker) flush(ctx context.Context) {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}

	// Swap out the pending map
	batch := w.pending
	w.pending = make(map[string]model.TrustDeltas)
	w.mu.Unlock()

	applied := 0
	for userID, deltas := range batch {
		if err := w.apply(ctx, userID, deltas); err != nil {
			log.Printf("trust-worker: apply error for user %s: %v", userID, err)
			continue
		}
		applied++
	}

	if applied > 0 {
		log.Printf("trust-worker: batch complete — %d users updated", applied)
	}
}

// apply runs one read-update-CAS cycle with bounded retries on version
// conflicts.
func (w *TrustWorker) apply(ctx context.Context, userID string, deltas model.TrustDeltas) error {
	var err error
	for attempt := 0; attempt < trustWriteRetries; attempt++ {
		var current *model.UserTrustScore
		current, err = w.trustRepo.GetOrDefault(ctx, userID)
		if err != nil {
			return err
		}

		updated := w.trustSvc.UpdateUserTrustScore(*current, deltas)
		updated.Version = current.Version

		err = w.trustRepo.Save(ctx, &updated)
		if err == nil {
			return nil
		}
		if err != repository.ErrVersionConflict {
			return err
		}
	}
	return err
}
