package sqlite

import (
	"time"

	"log/slog"

	"github.com/jpereira/homecheck/internal/db"
	"github.com/jpereira/homecheck/pkg/repository"
)

// SQLiteRepo implements repository interfaces using the internal DB wrapper.
type SQLiteRepo struct {
	conn   *db.DB
	logger *slog.Logger
}

// Ensure SQLiteRepo implements the public interfaces.
var _ repository.UserRepo = (*SQLiteRepo)(nil)
var _ repository.HouseRepo = (*SQLiteRepo)(nil)
var _ repository.RoomRepo = (*SQLiteRepo)(nil)
var _ repository.InspectionRepo = (*SQLiteRepo)(nil)
var _ repository.ImageRepo = (*SQLiteRepo)(nil)
var _ repository.TreeRepo = (*SQLiteRepo)(nil)
var _ repository.JobRepo = (*SQLiteRepo)(nil)

func New(conn *db.DB, logger *slog.Logger) *SQLiteRepo {
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLiteRepo{conn: conn, logger: logger}
}

func now() int64 {
	return time.Now().UTC().UnixMilli()
}
