package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"log/slog"

	"github.com/gorilla/mux"

	"github.com/jpereira/homecheck/internal/models"
	"github.com/jpereira/homecheck/pkg/repository"
)

type HousesHandler struct {
	houseRepo repository.HouseRepo
}

func NewHousesHandler(hr repository.HouseRepo) *HousesHandler {
	return &HousesHandler{houseRepo: hr}
}

type houseRequest struct {
	Name string `json:"name"`
}

func pathID(r *http.Request) (int64, bool) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (h *HousesHandler) CreateHouse(w http.ResponseWriter, r *http.Request) {
	var req houseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		http.Error(w, "House name is required", http.StatusBadRequest)
		return
	}

	house := models.House{Name: req.Name}
	id, err := h.houseRepo.CreateHouse(r.Context(), &house)
	if err != nil {
		logger.Error("create house", slog.Any("err", err))
		http.Error(w, "Failed to add house", http.StatusInternalServerError)
		return
	}
	house.ID = id

	writeJSON(w, house, http.StatusCreated)
}

// ListHouses returns all houses, most recent first.
func (h *HousesHandler) ListHouses(w http.ResponseWriter, r *http.Request) {
	houses, err := h.houseRepo.ListHouses(r.Context())
	if err != nil {
		logger.Error("list houses", slog.Any("err", err))
		http.Error(w, "Failed to load houses", http.StatusInternalServerError)
		return
	}
	if houses == nil {
		houses = []models.House{}
	}

	writeJSON(w, houses, http.StatusOK)
}

func (h *HousesHandler) GetHouse(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid house id", http.StatusBadRequest)
		return
	}

	house, err := h.houseRepo.GetHouse(r.Context(), id)
	if err != nil {
		logger.Error("get house", slog.Any("err", err))
		http.Error(w, "Failed to load house", http.StatusInternalServerError)
		return
	}
	if house == nil {
		http.Error(w, "House not found", http.StatusNotFound)
		return
	}

	writeJSON(w, house, http.StatusOK)
}

func (h *HousesHandler) UpdateHouse(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid house id", http.StatusBadRequest)
		return
	}

	var req houseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		http.Error(w, "House name is required", http.StatusBadRequest)
		return
	}

	house, err := h.houseRepo.GetHouse(r.Context(), id)
	if err != nil {
		http.Error(w, "Failed to load house", http.StatusInternalServerError)
		return
	}
	if house == nil {
		http.Error(w, "House not found", http.StatusNotFound)
		return
	}

	house.Name = req.Name
	if err := h.houseRepo.UpdateHouse(r.Context(), house); err != nil {
		logger.Error("update house", slog.Any("err", err))
		http.Error(w, "Failed to update house", http.StatusInternalServerError)
		return
	}

	writeJSON(w, house, http.StatusOK)
}

// DeleteHouse removes the house; rooms, inspections and image rows underneath
// it go with it via foreign key cascade.
func (h *HousesHandler) DeleteHouse(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid house id", http.StatusBadRequest)
		return
	}

	if err := h.houseRepo.DeleteHouse(r.Context(), id); err != nil {
		logger.Error("delete house", slog.Any("err", err))
		http.Error(w, "Failed to delete house", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
