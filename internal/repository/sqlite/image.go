package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jpereira/homecheck/internal/models"
)

func (r *SQLiteRepo) CreateImage(ctx context.Context, img *models.InspectionImage) (int64, error) {
	if img == nil {
		return 0, fmt.Errorf("image is nil")
	}
	if img.State == "" {
		img.State = models.ImagePending
	}
	if img.Created == 0 {
		img.Created = now()
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO inspection_images (inspection_id, storage_key, url, state, created) VALUES (?, ?, ?, ?, ?)`,
		img.InspectionID, img.StorageKey, img.URL, img.State, img.Created)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetImage(ctx context.Context, id int64) (*models.InspectionImage, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, inspection_id, storage_key, url, state, created FROM inspection_images WHERE id = ?`, id)

	var img models.InspectionImage
	if err := row.Scan(&img.ID, &img.InspectionID, &img.StorageKey, &img.URL, &img.State, &img.Created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &img, nil
}

// ListImagesByInspection returns only linked images; pending markers are an
// implementation detail of the upload pipeline.
func (r *SQLiteRepo) ListImagesByInspection(ctx context.Context, inspectionID int64) ([]models.InspectionImage, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, inspection_id, storage_key, url, state, created FROM inspection_images WHERE inspection_id = ? AND state = ? ORDER BY id ASC`,
		inspectionID, models.ImageLinked)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.InspectionImage
	for rows.Next() {
		var img models.InspectionImage
		if err := rows.Scan(&img.ID, &img.InspectionID, &img.StorageKey, &img.URL, &img.State, &img.Created); err != nil {
			return nil, err
		}

		out = append(out, img)
	}

	return out, rows.Err()
}

// LinkImage promotes a pending marker to a linked image with its public URL.
func (r *SQLiteRepo) LinkImage(ctx context.Context, id int64, url string) error {
	_, err := r.conn.Exec(ctx, `UPDATE inspection_images SET url = ?, state = ? WHERE id = ?`, url, models.ImageLinked, id)
	return err
}

func (r *SQLiteRepo) DeleteImage(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM inspection_images WHERE id = ?`, id)
	return err
}

// ListPendingImagesBefore returns pending markers created before cutoff
// (millisecond timestamp). These are candidates for reconciliation.
func (r *SQLiteRepo) ListPendingImagesBefore(ctx context.Context, cutoff int64) ([]models.InspectionImage, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, inspection_id, storage_key, url, state, created FROM inspection_images WHERE state = ? AND created < ? ORDER BY id ASC`,
		models.ImagePending, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.InspectionImage
	for rows.Next() {
		var img models.InspectionImage
		if err := rows.Scan(&img.ID, &img.InspectionID, &img.StorageKey, &img.URL, &img.State, &img.Created); err != nil {
			return nil, err
		}

		out = append(out, img)
	}

	return out, rows.Err()
}
