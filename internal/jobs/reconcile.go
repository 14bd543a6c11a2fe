package jobs

import (
	"context"
	"fmt"
	"time"

	"log/slog"

	"github.com/jpereira/homecheck/internal/models"
	"github.com/jpereira/homecheck/internal/storage"
	"github.com/jpereira/homecheck/pkg/repository"
)

// Reconciler sweeps image markers stuck in the pending state. The upload
// pipeline inserts a marker, uploads the object, then links the marker; a
// crash between those steps strands the marker. The sweep promotes markers
// whose object made it to storage and drops the rest.
type Reconciler struct {
	images repository.ImageRepo
	store  storage.ObjectStore
	cutoff time.Duration
	logger *slog.Logger
}

func NewReconciler(images repository.ImageRepo, store storage.ObjectStore, cutoff time.Duration, logger *slog.Logger) *Reconciler {
	if cutoff <= 0 {
		cutoff = 15 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{images: images, store: store, cutoff: cutoff, logger: logger}
}

// Handler returns the job handler for ReconcileImagesJob.
func (rc *Reconciler) Handler() Handler {
	return func(ctx context.Context, j *models.BackgroundJob) error {
		return rc.Run(ctx)
	}
}

// Run performs one reconciliation sweep. Markers younger than the cutoff are
// left alone: their upload may still be in flight.
func (rc *Reconciler) Run(ctx context.Context) error {
	before := time.Now().Add(-rc.cutoff).UTC().UnixMilli()
	pending, err := rc.images.ListPendingImagesBefore(ctx, before)
	if err != nil {
		return fmt.Errorf("list pending images: %w", err)
	}

	var failed int
	for _, img := range pending {
		ok, err := rc.store.Exists(ctx, img.StorageKey)
		if err != nil {
			rc.logger.Error("check object", "key", img.StorageKey, "err", err)
			failed++
			continue
		}
		if ok {
			if err := rc.images.LinkImage(ctx, img.ID, rc.store.PublicURL(img.StorageKey)); err != nil {
				rc.logger.Error("link image", "id", img.ID, "err", err)
				failed++
			}
			continue
		}
		// object never arrived; drop the orphan marker
		if err := rc.images.DeleteImage(ctx, img.ID); err != nil {
			rc.logger.Error("delete orphan marker", "id", img.ID, "err", err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("reconcile: %d of %d markers failed", failed, len(pending))
	}
	return nil
}
