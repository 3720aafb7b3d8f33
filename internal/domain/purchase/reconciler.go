package purchase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vtuboss/vtuboss-api/internal/pkg/metrics"
	"github.com/vtuboss/vtuboss-api/internal/pkg/storage"
)

// Reconciler sweeps pending purchase reservations that outlived their
// deadline. A reservation goes stale when the process dies between the
// debit and the provider call; releasing it refunds the user.
type Reconciler struct {
	ledger   Ledger
	archive  *storage.R2Archive
	interval time.Duration
	deadline time.Duration
	stopCh   chan struct{}
}

// NewReconciler creates the pending-purchase reconciler. archive may be nil.
func NewReconciler(ledger Ledger, archive *storage.R2Archive, interval, deadline time.Duration) *Reconciler {
	if interval == 0 {
		interval = 5 * time.Minute
	}
	if deadline == 0 {
		deadline = 15 * time.Minute
	}
	return &Reconciler{
		ledger:   ledger,
		archive:  archive,
		interval: interval,
		deadline: deadline,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background sweep loop
func (r *Reconciler) Start() {
	log.Info().Dur("interval", r.interval).Msg("Starting purchase reconciler...")
	go r.loop()
}

// Stop gracefully stops the reconciler
func (r *Reconciler) Stop() {
	log.Info().Msg("Stopping purchase reconciler...")
	close(r.stopCh)
}

func (r *Reconciler) loop() {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	// Run once immediately on startup to recover from a crash
	r.sweep()

	for {
		select {
		case <-ticker.C:
			r.sweep()
		case <-r.stopCh:
			return
		}
	}
}

func (r *Reconciler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-r.deadline)
	released, err := r.ledger.SweepExpired(ctx, cutoff)
	if err != nil {
		log.Error().Err(err).Msg("Failed to sweep expired purchase reservations")
		return
	}
	if released == 0 {
		return
	}

	metrics.PendingReleased.Add(float64(released))
	log.Info().Int("released", released).Time("cutoff", cutoff).Msg("Released stale purchase reservations")

	if r.archive != nil {
		report, _ := json.Marshal(map[string]interface{}{
			"swept_at": time.Now().UTC().Format(time.RFC3339),
			"cutoff":   cutoff.UTC().Format(time.RFC3339),
			"released": released,
		})
		key := "reconciler/" + time.Now().UTC().Format("2006/01/02/150405") + ".json"
		if err := r.archive.PutJSON(ctx, key, report); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Failed to archive reconciliation report")
		}
	}
}
