package models

import (
	"encoding/json"
	"time"
)

// Inspection status values. The UI offers exactly these three.
const (
	StatusPending   = "pending"
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
)

// ValidStatus reports whether s is one of the known inspection statuses.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusOngoing || s == StatusCompleted
}

// Image link states. A pending marker exists while the object upload is in
// flight; the reconciler promotes or removes markers left behind by a crash.
const (
	ImagePending = "pending"
	ImageLinked  = "linked"
)

type User struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
	Created      int64  `json:"created" db:"created"`
}

type House struct {
	ID      int64  `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	Created int64  `json:"created" db:"created"`
}

type Room struct {
	ID      int64  `json:"id" db:"id"`
	HouseID int64  `json:"house_id" db:"house_id"`
	Name    string `json:"name" db:"name"`
	Created int64  `json:"created" db:"created"`
}

type Inspection struct {
	ID          int64  `json:"id" db:"id"`
	RoomID      int64  `json:"room_id" db:"room_id"`
	InspectorID int64  `json:"inspector_id" db:"inspector_id"`
	Status      string `json:"status" db:"status"`
	Notes       string `json:"notes,omitempty" db:"notes"`
	Created     int64  `json:"created" db:"created"`
}

type InspectionImage struct {
	ID           int64  `json:"id" db:"id"`
	InspectionID int64  `json:"inspection_id" db:"inspection_id"`
	StorageKey   string `json:"storage_key" db:"storage_key"`
	URL          string `json:"url,omitempty" db:"url"`
	State        string `json:"state" db:"state"`
	Created      int64  `json:"created" db:"created"`
}

// Tree view-models returned by the /v1/tree endpoint. Slices are never nil so
// empty branches serialize as [] rather than null.

type HouseNode struct {
	House
	Rooms []RoomNode `json:"rooms"`
}

type RoomNode struct {
	Room
	Inspections []InspectionNode `json:"inspections"`
}

type InspectionNode struct {
	Inspection
	Images []InspectionImage `json:"images"`
}

type BackgroundJob struct {
	ID          int64           `json:"id"`
	Type        string          `json:"type"`
	Payload     json.RawMessage `json:"payload"`
	Status      string          `json:"status"`
	Attempts    int             `json:"attempts"`
	MaxAttempts int             `json:"max_attempts"`
	Priority    int             `json:"priority"`
	ScheduledAt time.Time       `json:"scheduled_at"`
	NextTryAt   *time.Time      `json:"next_try_at,omitempty"`
	LastError   string          `json:"last_error,omitempty"`
	Created     time.Time       `json:"created"`
	Updated     time.Time       `json:"updated"`
}
