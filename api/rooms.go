package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"log/slog"

	"github.com/jpereira/homecheck/internal/models"
	"github.com/jpereira/homecheck/pkg/repository"
)

type RoomsHandler struct {
	roomRepo  repository.RoomRepo
	houseRepo repository.HouseRepo
}

func NewRoomsHandler(rr repository.RoomRepo, hr repository.HouseRepo) *RoomsHandler {
	return &RoomsHandler{roomRepo: rr, houseRepo: hr}
}

type roomRequest struct {
	HouseID int64  `json:"house_id"`
	Name    string `json:"name"`
}

func (h *RoomsHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req roomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.HouseID <= 0 || req.Name == "" {
		http.Error(w, "Select house and enter room name", http.StatusBadRequest)
		return
	}

	house, err := h.houseRepo.GetHouse(r.Context(), req.HouseID)
	if err != nil {
		http.Error(w, "Failed to load house", http.StatusInternalServerError)
		return
	}
	if house == nil {
		http.Error(w, "House not found", http.StatusNotFound)
		return
	}

	room := models.Room{HouseID: req.HouseID, Name: req.Name}
	id, err := h.roomRepo.CreateRoom(r.Context(), &room)
	if err != nil {
		logger.Error("create room", slog.Any("err", err))
		http.Error(w, "Failed to add room", http.StatusInternalServerError)
		return
	}
	room.ID = id

	writeJSON(w, room, http.StatusCreated)
}

// ListRooms returns the rooms of one house (?house_id=), most recent first.
func (h *RoomsHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	houseStr := r.URL.Query().Get("house_id")
	houseID, err := strconv.ParseInt(houseStr, 10, 64)
	if err != nil || houseID <= 0 {
		http.Error(w, "house_id is required", http.StatusBadRequest)
		return
	}

	rooms, err := h.roomRepo.ListRoomsByHouse(r.Context(), houseID)
	if err != nil {
		logger.Error("list rooms", slog.Any("err", err))
		http.Error(w, "Failed to load rooms", http.StatusInternalServerError)
		return
	}
	if rooms == nil {
		rooms = []models.Room{}
	}

	writeJSON(w, rooms, http.StatusOK)
}

func (h *RoomsHandler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid room id", http.StatusBadRequest)
		return
	}

	var req roomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		http.Error(w, "Room name is required", http.StatusBadRequest)
		return
	}

	room, err := h.roomRepo.GetRoom(r.Context(), id)
	if err != nil {
		http.Error(w, "Failed to load room", http.StatusInternalServerError)
		return
	}
	if room == nil {
		http.Error(w, "Room not found", http.StatusNotFound)
		return
	}

	room.Name = req.Name
	if err := h.roomRepo.UpdateRoom(r.Context(), room); err != nil {
		logger.Error("update room", slog.Any("err", err))
		http.Error(w, "Failed to update room", http.StatusInternalServerError)
		return
	}

	writeJSON(w, room, http.StatusOK)
}

func (h *RoomsHandler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid room id", http.StatusBadRequest)
		return
	}

	if err := h.roomRepo.DeleteRoom(r.Context(), id); err != nil {
		logger.Error("delete room", slog.Any("err", err))
		http.Error(w, "Failed to delete room", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
