package api

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"log/slog"

	"github.com/jpereira/homecheck/internal/models"
	"github.com/jpereira/homecheck/internal/storage"
	"github.com/jpereira/homecheck/pkg/repository"
)

// maxUploadBytes caps one multipart submission (form fields plus photos).
const maxUploadBytes = 32 << 20

type InspectionsHandler struct {
	inspectionRepo repository.InspectionRepo
	imageRepo      repository.ImageRepo
	roomRepo       repository.RoomRepo
	store          storage.ObjectStore
}

func NewInspectionsHandler(ir repository.InspectionRepo, imr repository.ImageRepo, rr repository.RoomRepo, store storage.ObjectStore) *InspectionsHandler {
	return &InspectionsHandler{inspectionRepo: ir, imageRepo: imr, roomRepo: rr, store: store}
}

type inspectionForm struct {
	RoomID int64
	Status string
	Notes  string
	Files  []*multipart.FileHeader
}

type inspectionResponse struct {
	models.Inspection
	Images []models.InspectionImage `json:"images"`
}

// parseInspectionForm accepts either a multipart form (fields room_id, status,
// notes plus zero or more "photos" file parts) or a plain JSON body without
// attachments.
func parseInspectionForm(r *http.Request) (*inspectionForm, error) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return nil, err
		}
		roomID, _ := strconv.ParseInt(r.FormValue("room_id"), 10, 64)
		form := &inspectionForm{
			RoomID: roomID,
			Status: strings.TrimSpace(r.FormValue("status")),
			Notes:  strings.TrimSpace(r.FormValue("notes")),
		}
		if r.MultipartForm != nil {
			form.Files = r.MultipartForm.File["photos"]
		}
		return form, nil
	}

	var req struct {
		RoomID int64  `json:"room_id"`
		Status string `json:"status"`
		Notes  string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, err
	}
	return &inspectionForm{
		RoomID: req.RoomID,
		Status: strings.TrimSpace(req.Status),
		Notes:  strings.TrimSpace(req.Notes),
	}, nil
}

// CreateInspection persists the inspection row, then uploads and links each
// photo. The two phases are deliberately not transactional: a failed upload
// is logged and skipped, and the inspection row stays.
func (h *InspectionsHandler) CreateInspection(w http.ResponseWriter, r *http.Request) {
	inspectorID, ok := UserIDFrom(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	form, err := parseInspectionForm(r)
	if err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if form.RoomID <= 0 {
		http.Error(w, "Select a room first", http.StatusBadRequest)
		return
	}
	if form.Status == "" {
		form.Status = models.StatusPending
	}
	if !models.ValidStatus(form.Status) {
		http.Error(w, "Invalid status", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	room, err := h.roomRepo.GetRoom(ctx, form.RoomID)
	if err != nil {
		http.Error(w, "Failed to load room", http.StatusInternalServerError)
		return
	}
	if room == nil {
		http.Error(w, "Room not found", http.StatusNotFound)
		return
	}

	inspection := models.Inspection{
		RoomID:      form.RoomID,
		InspectorID: inspectorID,
		Status:      form.Status,
		Notes:       form.Notes,
	}
	id, err := h.inspectionRepo.CreateInspection(ctx, &inspection)
	if err != nil {
		logger.Error("create inspection", slog.Any("err", err))
		http.Error(w, "Failed to add inspection", http.StatusInternalServerError)
		return
	}
	inspection.ID = id

	images := h.attachPhotos(r, id, form.Files)

	writeJSON(w, inspectionResponse{Inspection: inspection, Images: images}, http.StatusCreated)
}

// attachPhotos runs the upload pipeline for each file: insert a pending
// marker, upload the bytes, promote the marker to a linked image. An upload
// failure removes its marker and moves on; the parent inspection is never
// rolled back.
func (h *InspectionsHandler) attachPhotos(r *http.Request, inspectionID int64, files []*multipart.FileHeader) []models.InspectionImage {
	ctx := r.Context()
	images := []models.InspectionImage{}

	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			logger.Error("open upload", slog.String("file", fh.Filename), slog.Any("err", err))
			continue
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			logger.Error("read upload", slog.String("file", fh.Filename), slog.Any("err", err))
			continue
		}

		key := storage.ObjectKey(inspectionID, fh.Filename, time.Now())
		img := models.InspectionImage{InspectionID: inspectionID, StorageKey: key}
		markerID, err := h.imageRepo.CreateImage(ctx, &img)
		if err != nil {
			logger.Error("create image marker", slog.String("key", key), slog.Any("err", err))
			continue
		}

		contentType := fh.Header.Get("Content-Type")
		if err := h.store.Upload(ctx, key, data, contentType); err != nil {
			logger.Error("upload inspection photo", slog.String("key", key), slog.Any("err", err))
			if delErr := h.imageRepo.DeleteImage(ctx, markerID); delErr != nil {
				logger.Error("remove image marker", slog.Int64("id", markerID), slog.Any("err", delErr))
			}
			continue
		}

		url := h.store.PublicURL(key)
		if err := h.imageRepo.LinkImage(ctx, markerID, url); err != nil {
			// object is in the bucket; the reconciler will promote the marker
			logger.Error("link image", slog.Int64("id", markerID), slog.Any("err", err))
			continue
		}

		img.ID = markerID
		img.URL = url
		img.State = models.ImageLinked
		images = append(images, img)
	}

	return images
}

// ListInspections returns the caller's inspections for one room (?room_id=),
// each with its linked images, most recent first.
func (h *InspectionsHandler) ListInspections(w http.ResponseWriter, r *http.Request) {
	inspectorID, ok := UserIDFrom(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	roomStr := r.URL.Query().Get("room_id")
	roomID, err := strconv.ParseInt(roomStr, 10, 64)
	if err != nil || roomID <= 0 {
		http.Error(w, "room_id is required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	inspections, err := h.inspectionRepo.ListInspectionsByRoom(ctx, roomID, inspectorID)
	if err != nil {
		logger.Error("list inspections", slog.Any("err", err))
		http.Error(w, "Failed to load inspections", http.StatusInternalServerError)
		return
	}

	out := make([]inspectionResponse, 0, len(inspections))
	for _, insp := range inspections {
		imgs, err := h.imageRepo.ListImagesByInspection(ctx, insp.ID)
		if err != nil {
			logger.Error("list inspection images", slog.Int64("inspection_id", insp.ID), slog.Any("err", err))
			http.Error(w, "Failed to load inspections", http.StatusInternalServerError)
			return
		}
		if imgs == nil {
			imgs = []models.InspectionImage{}
		}
		out = append(out, inspectionResponse{Inspection: insp, Images: imgs})
	}

	writeJSON(w, out, http.StatusOK)
}

// UpdateInspection edits status/notes/room and optionally attaches new
// photos. Existing image links are untouched when no file is sent.
func (h *InspectionsHandler) UpdateInspection(w http.ResponseWriter, r *http.Request) {
	inspectorID, ok := UserIDFrom(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid inspection id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	inspection, err := h.inspectionRepo.GetInspection(ctx, id)
	if err != nil {
		http.Error(w, "Failed to load inspection", http.StatusInternalServerError)
		return
	}
	if inspection == nil || inspection.InspectorID != inspectorID {
		http.Error(w, "Inspection not found", http.StatusNotFound)
		return
	}

	form, err := parseInspectionForm(r)
	if err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if form.Status != "" {
		if !models.ValidStatus(form.Status) {
			http.Error(w, "Invalid status", http.StatusBadRequest)
			return
		}
		inspection.Status = form.Status
	}
	inspection.Notes = form.Notes
	if form.RoomID > 0 && form.RoomID != inspection.RoomID {
		room, err := h.roomRepo.GetRoom(ctx, form.RoomID)
		if err != nil {
			http.Error(w, "Failed to load room", http.StatusInternalServerError)
			return
		}
		if room == nil {
			http.Error(w, "Room not found", http.StatusNotFound)
			return
		}
		inspection.RoomID = form.RoomID
	}

	if err := h.inspectionRepo.UpdateInspection(ctx, inspection); err != nil {
		logger.Error("update inspection", slog.Any("err", err))
		http.Error(w, "Failed to update inspection", http.StatusInternalServerError)
		return
	}

	h.attachPhotos(r, id, form.Files)

	imgs, err := h.imageRepo.ListImagesByInspection(ctx, id)
	if err != nil {
		http.Error(w, "Failed to load inspection images", http.StatusInternalServerError)
		return
	}
	if imgs == nil {
		imgs = []models.InspectionImage{}
	}

	writeJSON(w, inspectionResponse{Inspection: *inspection, Images: imgs}, http.StatusOK)
}

// DeleteInspection removes the inspection row (image rows cascade) and then
// deletes the stored objects best effort.
func (h *InspectionsHandler) DeleteInspection(w http.ResponseWriter, r *http.Request) {
	inspectorID, ok := UserIDFrom(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid inspection id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	inspection, err := h.inspectionRepo.GetInspection(ctx, id)
	if err != nil {
		http.Error(w, "Failed to load inspection", http.StatusInternalServerError)
		return
	}
	if inspection == nil || inspection.InspectorID != inspectorID {
		http.Error(w, "Inspection not found", http.StatusNotFound)
		return
	}

	imgs, err := h.imageRepo.ListImagesByInspection(ctx, id)
	if err != nil {
		http.Error(w, "Failed to load inspection images", http.StatusInternalServerError)
		return
	}

	if err := h.inspectionRepo.DeleteInspection(ctx, id); err != nil {
		logger.Error("delete inspection", slog.Any("err", err))
		http.Error(w, "Failed to delete inspection", http.StatusInternalServerError)
		return
	}

	for _, img := range imgs {
		if err := h.store.Delete(ctx, img.StorageKey); err != nil {
			logger.Error("delete photo object", slog.String("key", img.StorageKey), slog.Any("err", err))
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListImages returns the linked images of one inspection.
func (h *InspectionsHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	inspectorID, ok := UserIDFrom(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid inspection id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	inspection, err := h.inspectionRepo.GetInspection(ctx, id)
	if err != nil {
		http.Error(w, "Failed to load inspection", http.StatusInternalServerError)
		return
	}
	if inspection == nil || inspection.InspectorID != inspectorID {
		http.Error(w, "Inspection not found", http.StatusNotFound)
		return
	}

	imgs, err := h.imageRepo.ListImagesByInspection(ctx, id)
	if err != nil {
		logger.Error("list inspection images", slog.Any("err", err))
		http.Error(w, "Failed to load inspection images", http.StatusInternalServerError)
		return
	}
	if imgs == nil {
		imgs = []models.InspectionImage{}
	}

	writeJSON(w, imgs, http.StatusOK)
}

// DeleteImage removes one image row and its stored object.
func (h *InspectionsHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	inspectorID, ok := UserIDFrom(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid image id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	img, err := h.imageRepo.GetImage(ctx, id)
	if err != nil {
		http.Error(w, "Failed to load image", http.StatusInternalServerError)
		return
	}
	if img == nil {
		http.Error(w, "Image not found", http.StatusNotFound)
		return
	}

	inspection, err := h.inspectionRepo.GetInspection(ctx, img.InspectionID)
	if err != nil {
		http.Error(w, "Failed to load inspection", http.StatusInternalServerError)
		return
	}
	if inspection == nil || inspection.InspectorID != inspectorID {
		http.Error(w, "Image not found", http.StatusNotFound)
		return
	}

	if err := h.imageRepo.DeleteImage(ctx, id); err != nil {
		logger.Error("delete image", slog.Any("err", err))
		http.Error(w, "Failed to delete image", http.StatusInternalServerError)
		return
	}
	if err := h.store.Delete(ctx, img.StorageKey); err != nil {
		logger.Error("delete photo object", slog.String("key", img.StorageKey), slog.Any("err", err))
	}

	w.WriteHeader(http.StatusNoContent)
}
