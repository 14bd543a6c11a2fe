package mock

import (
	"context"

	"github.com/jpereira/homecheck/internal/models"
)

// Test helpers and mocks
type Mocks struct {
	Users       *UserRepo
	Houses      *HouseRepo
	Rooms       *RoomRepo
	Inspections *InspectionRepo
	Images      *ImageRepo
	Tree        *TreeRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		Users:       &UserRepo{},
		Houses:      &HouseRepo{},
		Rooms:       &RoomRepo{},
		Inspections: &InspectionRepo{},
		Images:      &ImageRepo{},
		Tree:        &TreeRepo{},
	}
}

type UserRepo struct {
	Stored    *models.User
	CreateErr error
}

func (m *UserRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.Stored = &models.User{ID: 1, Name: u.Name, Email: u.Email, PasswordHash: u.PasswordHash}
	return 1, nil
}

func (m *UserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if m.Stored != nil && m.Stored.ID == id {
		return m.Stored, nil
	}
	return nil, nil
}

func (m *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.Stored != nil && m.Stored.Email == email {
		return m.Stored, nil
	}
	return nil, nil
}

type HouseRepo struct {
	Houses    []models.House
	nextID    int64
	CreateErr error
	ListErr   error
	DeleteErr error
}

func (m *HouseRepo) CreateHouse(ctx context.Context, h *models.House) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.nextID++
	h.ID = m.nextID
	m.Houses = append(m.Houses, *h)
	return h.ID, nil
}

func (m *HouseRepo) GetHouse(ctx context.Context, id int64) (*models.House, error) {
	for i := range m.Houses {
		if m.Houses[i].ID == id {
			h := m.Houses[i]
			return &h, nil
		}
	}
	return nil, nil
}

// ListHouses returns houses most recent first (reverse insertion order).
func (m *HouseRepo) ListHouses(ctx context.Context) ([]models.House, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := make([]models.House, 0, len(m.Houses))
	for i := len(m.Houses) - 1; i >= 0; i-- {
		out = append(out, m.Houses[i])
	}
	return out, nil
}

func (m *HouseRepo) UpdateHouse(ctx context.Context, h *models.House) error {
	for i := range m.Houses {
		if m.Houses[i].ID == h.ID {
			m.Houses[i] = *h
		}
	}
	return nil
}

func (m *HouseRepo) DeleteHouse(ctx context.Context, id int64) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	out := m.Houses[:0]
	for _, h := range m.Houses {
		if h.ID != id {
			out = append(out, h)
		}
	}
	m.Houses = out
	return nil
}

type RoomRepo struct {
	Rooms     []models.Room
	nextID    int64
	CreateErr error
}

func (m *RoomRepo) CreateRoom(ctx context.Context, r *models.Room) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.nextID++
	r.ID = m.nextID
	m.Rooms = append(m.Rooms, *r)
	return r.ID, nil
}

func (m *RoomRepo) GetRoom(ctx context.Context, id int64) (*models.Room, error) {
	for i := range m.Rooms {
		if m.Rooms[i].ID == id {
			r := m.Rooms[i]
			return &r, nil
		}
	}
	return nil, nil
}

func (m *RoomRepo) ListRoomsByHouse(ctx context.Context, houseID int64) ([]models.Room, error) {
	out := []models.Room{}
	for i := len(m.Rooms) - 1; i >= 0; i-- {
		if m.Rooms[i].HouseID == houseID {
			out = append(out, m.Rooms[i])
		}
	}
	return out, nil
}

func (m *RoomRepo) UpdateRoom(ctx context.Context, r *models.Room) error {
	for i := range m.Rooms {
		if m.Rooms[i].ID == r.ID {
			m.Rooms[i] = *r
		}
	}
	return nil
}

func (m *RoomRepo) DeleteRoom(ctx context.Context, id int64) error {
	out := m.Rooms[:0]
	for _, r := range m.Rooms {
		if r.ID != id {
			out = append(out, r)
		}
	}
	m.Rooms = out
	return nil
}

type InspectionRepo struct {
	Inspections []models.Inspection
	nextID      int64
	CreateErr   error
	UpdateErr   error
}

func (m *InspectionRepo) CreateInspection(ctx context.Context, i *models.Inspection) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	if i.Status == "" {
		i.Status = models.StatusPending
	}
	m.nextID++
	i.ID = m.nextID
	m.Inspections = append(m.Inspections, *i)
	return i.ID, nil
}

func (m *InspectionRepo) GetInspection(ctx context.Context, id int64) (*models.Inspection, error) {
	for i := range m.Inspections {
		if m.Inspections[i].ID == id {
			insp := m.Inspections[i]
			return &insp, nil
		}
	}
	return nil, nil
}

func (m *InspectionRepo) ListInspectionsByRoom(ctx context.Context, roomID, inspectorID int64) ([]models.Inspection, error) {
	out := []models.Inspection{}
	for i := len(m.Inspections) - 1; i >= 0; i-- {
		if m.Inspections[i].RoomID == roomID && m.Inspections[i].InspectorID == inspectorID {
			out = append(out, m.Inspections[i])
		}
	}
	return out, nil
}

func (m *InspectionRepo) UpdateInspection(ctx context.Context, i *models.Inspection) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	for idx := range m.Inspections {
		if m.Inspections[idx].ID == i.ID {
			m.Inspections[idx] = *i
		}
	}
	return nil
}

func (m *InspectionRepo) DeleteInspection(ctx context.Context, id int64) error {
	out := m.Inspections[:0]
	for _, i := range m.Inspections {
		if i.ID != id {
			out = append(out, i)
		}
	}
	m.Inspections = out
	return nil
}

type ImageRepo struct {
	Images    []models.InspectionImage
	nextID    int64
	CreateErr error
	LinkErr   error
}

func (m *ImageRepo) CreateImage(ctx context.Context, img *models.InspectionImage) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	if img.State == "" {
		img.State = models.ImagePending
	}
	m.nextID++
	img.ID = m.nextID
	m.Images = append(m.Images, *img)
	return img.ID, nil
}

func (m *ImageRepo) GetImage(ctx context.Context, id int64) (*models.InspectionImage, error) {
	for i := range m.Images {
		if m.Images[i].ID == id {
			img := m.Images[i]
			return &img, nil
		}
	}
	return nil, nil
}

func (m *ImageRepo) ListImagesByInspection(ctx context.Context, inspectionID int64) ([]models.InspectionImage, error) {
	out := []models.InspectionImage{}
	for _, img := range m.Images {
		if img.InspectionID == inspectionID && img.State == models.ImageLinked {
			out = append(out, img)
		}
	}
	return out, nil
}

func (m *ImageRepo) LinkImage(ctx context.Context, id int64, url string) error {
	if m.LinkErr != nil {
		return m.LinkErr
	}
	for i := range m.Images {
		if m.Images[i].ID == id {
			m.Images[i].URL = url
			m.Images[i].State = models.ImageLinked
		}
	}
	return nil
}

func (m *ImageRepo) DeleteImage(ctx context.Context, id int64) error {
	out := m.Images[:0]
	for _, img := range m.Images {
		if img.ID != id {
			out = append(out, img)
		}
	}
	m.Images = out
	return nil
}

func (m *ImageRepo) ListPendingImagesBefore(ctx context.Context, cutoff int64) ([]models.InspectionImage, error) {
	out := []models.InspectionImage{}
	for _, img := range m.Images {
		if img.State == models.ImagePending && img.Created < cutoff {
			out = append(out, img)
		}
	}
	return out, nil
}

type TreeRepo struct {
	Nodes   []models.HouseNode
	LoadErr error
}

func (m *TreeRepo) LoadTree(ctx context.Context, inspectorID int64) ([]models.HouseNode, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Nodes == nil {
		return []models.HouseNode{}, nil
	}
	return m.Nodes, nil
}
