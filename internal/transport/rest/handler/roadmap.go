package handler

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"advisor-api/internal/service"
)

// RoadmapHandler serves composed roadmaps and their export
type RoadmapHandler struct {
	roadmapSvc *service.RoadmapService
	exportSvc  *service.ExportService
}

// NewRoadmapHandler creates a new roadmap handler
func NewRoadmapHandler(roadmapSvc *service.RoadmapService, exportSvc *service.ExportService) *RoadmapHandler {
	return &RoadmapHandler{
		roadmapSvc: roadmapSvc,
		exportSvc:  exportSvc,
	}
}

// Get handles GET /v1/submissions/{submissionId}/roadmap
// ?mode=legacy selects the superseded unweighted scoring mode.
func (h *RoadmapHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["submissionId"]
	legacy := r.URL.Query().Get("mode") == "legacy"

	roadmap, err := h.roadmapSvc.Get(r.Context(), id, legacy)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, roadmap)
}

// Export handles GET /v1/submissions/{submissionId}/roadmap/export (admin)
func (h *RoadmapHandler) Export(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["submissionId"]

	workbook, err := h.exportSvc.RoadmapWorkbook(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="roadmap-%s.xlsx"`, id))
	if err := workbook.Write(w); err != nil {
		// Headers are already out; nothing sensible left to send
		return
	}
}
