package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jpereira/homecheck/internal/models"
)

func (r *SQLiteRepo) CreateHouse(ctx context.Context, h *models.House) (int64, error) {
	if h == nil {
		return 0, fmt.Errorf("house is nil")
	}
	if h.Created == 0 {
		h.Created = now()
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO houses (name, created) VALUES (?, ?)`, h.Name, h.Created)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetHouse(ctx context.Context, id int64) (*models.House, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, name, created FROM houses WHERE id = ?`, id)

	var h models.House
	if err := row.Scan(&h.ID, &h.Name, &h.Created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &h, nil
}

// ListHouses returns all houses, most recent first.
func (r *SQLiteRepo) ListHouses(ctx context.Context) ([]models.House, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, name, created FROM houses ORDER BY created DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.House
	for rows.Next() {
		var h models.House
		if err := rows.Scan(&h.ID, &h.Name, &h.Created); err != nil {
			return nil, err
		}

		out = append(out, h)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) UpdateHouse(ctx context.Context, h *models.House) error {
	if h == nil {
		return fmt.Errorf("house is nil")
	}

	_, err := r.conn.Exec(ctx, `UPDATE houses SET name = ? WHERE id = ?`, h.Name, h.ID)
	return err
}

func (r *SQLiteRepo) DeleteHouse(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM houses WHERE id = ?`, id)
	return err
}
