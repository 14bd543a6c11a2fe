package api

import (
	"net/http"

	"log/slog"

	"github.com/jpereira/homecheck/pkg/repository"
)

type TreeHandler struct {
	treeRepo repository.TreeRepo
}

func NewTreeHandler(tr repository.TreeRepo) *TreeHandler {
	return &TreeHandler{treeRepo: tr}
}

// GetTree returns the full house->room->inspection->image hierarchy for the
// authenticated inspector in one response. The repository loads it with a
// constant number of queries rather than one fetch per house and room.
func (h *TreeHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	inspectorID, ok := UserIDFrom(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	tree, err := h.treeRepo.LoadTree(r.Context(), inspectorID)
	if err != nil {
		logger.Error("load tree", slog.Any("err", err))
		http.Error(w, "Failed to load houses", http.StatusInternalServerError)
		return
	}

	writeJSON(w, tree, http.StatusOK)
}
