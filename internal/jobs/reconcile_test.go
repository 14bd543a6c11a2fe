package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jpereira/homecheck/internal/jobs"
	"github.com/jpereira/homecheck/internal/models"
	"github.com/jpereira/homecheck/internal/storage"
	"github.com/jpereira/homecheck/pkg/repository/mock"
)

// A marker whose object made it to storage is promoted to a linked image;
// a marker whose object never arrived is dropped.
func TestReconcilerRun(t *testing.T) {
	ctx := context.Background()
	images := &mock.ImageRepo{}
	store := storage.NewMemoryStore()

	old := time.Now().Add(-time.Hour).UTC().UnixMilli()
	uploadedID, err := images.CreateImage(ctx, &models.InspectionImage{InspectionID: 1, StorageKey: "inspections/uploaded.jpg", Created: old})
	if err != nil {
		t.Fatalf("create marker: %v", err)
	}
	orphanID, err := images.CreateImage(ctx, &models.InspectionImage{InspectionID: 1, StorageKey: "inspections/orphan.jpg", Created: old})
	if err != nil {
		t.Fatalf("create marker: %v", err)
	}
	if err := store.Upload(ctx, "inspections/uploaded.jpg", []byte("jpegdata"), "image/jpeg"); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	rc := jobs.NewReconciler(images, store, 15*time.Minute, nil)
	if err := rc.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	linked, err := images.GetImage(ctx, uploadedID)
	if err != nil {
		t.Fatalf("get linked: %v", err)
	}
	if linked == nil || linked.State != models.ImageLinked {
		t.Fatalf("uploaded marker not promoted: %#v", linked)
	}
	if linked.URL != store.PublicURL("inspections/uploaded.jpg") {
		t.Fatalf("wrong url: %q", linked.URL)
	}

	orphan, err := images.GetImage(ctx, orphanID)
	if err != nil {
		t.Fatalf("get orphan: %v", err)
	}
	if orphan != nil {
		t.Fatalf("orphan marker should be dropped, got: %#v", orphan)
	}
}

// Markers younger than the cutoff are left alone: their upload may still be
// in flight.
func TestReconcilerSkipsFreshMarkers(t *testing.T) {
	ctx := context.Background()
	images := &mock.ImageRepo{}
	store := storage.NewMemoryStore()

	fresh := time.Now().UTC().UnixMilli()
	id, err := images.CreateImage(ctx, &models.InspectionImage{InspectionID: 1, StorageKey: "inspections/fresh.jpg", Created: fresh})
	if err != nil {
		t.Fatalf("create marker: %v", err)
	}

	rc := jobs.NewReconciler(images, store, 15*time.Minute, nil)
	if err := rc.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	img, err := images.GetImage(ctx, id)
	if err != nil {
		t.Fatalf("get marker: %v", err)
	}
	if img == nil || img.State != models.ImagePending {
		t.Fatalf("fresh marker should be untouched, got: %#v", img)
	}
}

func TestReconcilerReportsFailures(t *testing.T) {
	ctx := context.Background()
	images := &mock.ImageRepo{LinkErr: errors.New("db down")}
	store := storage.NewMemoryStore()

	old := time.Now().Add(-time.Hour).UTC().UnixMilli()
	if _, err := images.CreateImage(ctx, &models.InspectionImage{InspectionID: 1, StorageKey: "inspections/a.jpg", Created: old}); err != nil {
		t.Fatalf("create marker: %v", err)
	}
	if err := store.Upload(ctx, "inspections/a.jpg", []byte("jpegdata"), "image/jpeg"); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	rc := jobs.NewReconciler(images, store, 15*time.Minute, nil)
	if err := rc.Run(ctx); err == nil {
		t.Fatalf("expected error when linking fails")
	}
}

// End to end through the worker pool: the periodic job type runs the sweep.
func TestReconcileJobThroughPool(t *testing.T) {
	repo, cleanup := setupJobsDB(t, "jobsreconcile")
	defer cleanup()
	ctx := context.Background()

	store := storage.NewMemoryStore()
	rc := jobs.NewReconciler(repo, store, time.Millisecond, nil)

	handlers := map[string]jobs.Handler{jobs.ReconcileImagesJob: rc.Handler()}
	pool := jobs.NewWorkerPool(repo, handlers, nil, 1)
	pool.Start(ctx)
	defer pool.Stop()

	if _, err := pool.Enqueue(ctx, jobs.ReconcileImagesJob, nil, 100, 3); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		j, err := repo.FetchNext(ctx)
		if err != nil {
			t.Fatalf("fetch next: %v", err)
		}
		if j == nil {
			return // sweep ran and the job left the queue
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatalf("reconcile job never completed")
}
