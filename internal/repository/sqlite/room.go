package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jpereira/homecheck/internal/models"
)

func (r *SQLiteRepo) CreateRoom(ctx context.Context, rm *models.Room) (int64, error) {
	if rm == nil {
		return 0, fmt.Errorf("room is nil")
	}
	if rm.Created == 0 {
		rm.Created = now()
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO rooms (house_id, name, created) VALUES (?, ?, ?)`,
		rm.HouseID, rm.Name, rm.Created)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetRoom(ctx context.Context, id int64) (*models.Room, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, house_id, name, created FROM rooms WHERE id = ?`, id)

	var rm models.Room
	if err := row.Scan(&rm.ID, &rm.HouseID, &rm.Name, &rm.Created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &rm, nil
}

func (r *SQLiteRepo) ListRoomsByHouse(ctx context.Context, houseID int64) ([]models.Room, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, house_id, name, created FROM rooms WHERE house_id = ? ORDER BY created DESC, id DESC`, houseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Room
	for rows.Next() {
		var rm models.Room
		if err := rows.Scan(&rm.ID, &rm.HouseID, &rm.Name, &rm.Created); err != nil {
			return nil, err
		}

		out = append(out, rm)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) UpdateRoom(ctx context.Context, rm *models.Room) error {
	if rm == nil {
		return fmt.Errorf("room is nil")
	}

	_, err := r.conn.Exec(ctx, `UPDATE rooms SET name = ? WHERE id = ?`, rm.Name, rm.ID)
	return err
}

func (r *SQLiteRepo) DeleteRoom(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	return err
}
