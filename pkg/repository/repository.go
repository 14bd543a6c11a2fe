package repository

import (
	"context"

	"github.com/jpereira/homecheck/internal/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type HouseRepo interface {
	CreateHouse(ctx context.Context, h *models.House) (int64, error)
	GetHouse(ctx context.Context, id int64) (*models.House, error)
	ListHouses(ctx context.Context) ([]models.House, error)
	UpdateHouse(ctx context.Context, h *models.House) error
	DeleteHouse(ctx context.Context, id int64) error
}

type RoomRepo interface {
	CreateRoom(ctx context.Context, r *models.Room) (int64, error)
	GetRoom(ctx context.Context, id int64) (*models.Room, error)
	ListRoomsByHouse(ctx context.Context, houseID int64) ([]models.Room, error)
	UpdateRoom(ctx context.Context, r *models.Room) error
	DeleteRoom(ctx context.Context, id int64) error
}

type InspectionRepo interface {
	CreateInspection(ctx context.Context, i *models.Inspection) (int64, error)
	GetInspection(ctx context.Context, id int64) (*models.Inspection, error)
	ListInspectionsByRoom(ctx context.Context, roomID, inspectorID int64) ([]models.Inspection, error)
	UpdateInspection(ctx context.Context, i *models.Inspection) error
	DeleteInspection(ctx context.Context, id int64) error
}

type ImageRepo interface {
	CreateImage(ctx context.Context, img *models.InspectionImage) (int64, error)
	GetImage(ctx context.Context, id int64) (*models.InspectionImage, error)
	ListImagesByInspection(ctx context.Context, inspectionID int64) ([]models.InspectionImage, error)
	LinkImage(ctx context.Context, id int64, url string) error
	DeleteImage(ctx context.Context, id int64) error
	ListPendingImagesBefore(ctx context.Context, cutoff int64) ([]models.InspectionImage, error)
}

// TreeRepo assembles the full house->room->inspection->image hierarchy for
// one inspector in a constant number of queries.
type TreeRepo interface {
	LoadTree(ctx context.Context, inspectorID int64) ([]models.HouseNode, error)
}

type JobRepo interface {
	Enqueue(ctx context.Context, j *models.BackgroundJob) (int64, error)
	FetchNext(ctx context.Context) (*models.BackgroundJob, error)
	UpdateJob(ctx context.Context, j *models.BackgroundJob) error
	MoveToDeadLetter(ctx context.Context, j *models.BackgroundJob) error
}
