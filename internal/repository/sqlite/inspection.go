package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jpereira/homecheck/internal/models"
)

func (r *SQLiteRepo) CreateInspection(ctx context.Context, i *models.Inspection) (int64, error) {
	if i == nil {
		return 0, fmt.Errorf("inspection is nil")
	}
	if i.Status == "" {
		i.Status = models.StatusPending
	}
	if i.Created == 0 {
		i.Created = now()
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO inspections (room_id, inspector_id, status, notes, created) VALUES (?, ?, ?, ?, ?)`,
		i.RoomID, i.InspectorID, i.Status, i.Notes, i.Created)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetInspection(ctx context.Context, id int64) (*models.Inspection, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, room_id, inspector_id, status, notes, created FROM inspections WHERE id = ?`, id)

	var i models.Inspection
	if err := row.Scan(&i.ID, &i.RoomID, &i.InspectorID, &i.Status, &i.Notes, &i.Created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &i, nil
}

// ListInspectionsByRoom returns the inspector's inspections for one room,
// most recent first. Other inspectors' records are never visible.
func (r *SQLiteRepo) ListInspectionsByRoom(ctx context.Context, roomID, inspectorID int64) ([]models.Inspection, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, room_id, inspector_id, status, notes, created FROM inspections WHERE room_id = ? AND inspector_id = ? ORDER BY created DESC, id DESC`, roomID, inspectorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Inspection
	for rows.Next() {
		var i models.Inspection
		if err := rows.Scan(&i.ID, &i.RoomID, &i.InspectorID, &i.Status, &i.Notes, &i.Created); err != nil {
			return nil, err
		}

		out = append(out, i)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) UpdateInspection(ctx context.Context, i *models.Inspection) error {
	if i == nil {
		return fmt.Errorf("inspection is nil")
	}

	_, err := r.conn.Exec(ctx, `UPDATE inspections SET room_id = ?, status = ?, notes = ? WHERE id = ?`,
		i.RoomID, i.Status, i.Notes, i.ID)
	return err
}

func (r *SQLiteRepo) DeleteInspection(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM inspections WHERE id = ?`, id)
	return err
}
