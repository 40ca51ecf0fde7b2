package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"advisor-api/internal/model"
	"advisor-api/internal/service"
)

// SubmissionHandler handles respondent session endpoints
type SubmissionHandler struct {
	submissionSvc *service.SubmissionService
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(submissionSvc *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionSvc: submissionSvc}
}

// StartSubmissionRequest is the request body for opening a session
type StartSubmissionRequest struct {
	QuestionnaireID string           `json:"questionnaireId"`
	Respondent      model.Respondent `json:"respondent"`
}

// Start handles POST /v1/submissions
func (h *SubmissionHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req StartSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	progress, err := h.submissionSvc.Start(r.Context(), req.QuestionnaireID, req.Respondent)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, progress)
}

// Current handles GET /v1/submissions/{submissionId}/current
func (h *SubmissionHandler) Current(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["submissionId"]
	progress, err := h.submissionSvc.Current(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// SubmitAnswerRequest carries one answer value. Scalar and set shapes
// are accepted per the question's type.
type SubmitAnswerRequest struct {
	Value  string   `json:"value,omitempty"`
	Values []string `json:"values,omitempty"`
}

// SubmitAnswer handles PUT /v1/submissions/{submissionId}/answers/{questionKey}
func (h *SubmissionHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var req SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var value model.AnswerValue
	if req.Values != nil {
		value = model.SetValue(req.Values...)
	} else {
		value = model.ScalarValue(req.Value)
	}

	progress, err := h.submissionSvc.SubmitAnswer(r.Context(), vars["submissionId"], vars["questionKey"], value)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// Advance handles POST /v1/submissions/{submissionId}/advance
func (h *SubmissionHandler) Advance(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["submissionId"]
	progress, err := h.submissionSvc.Advance(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// Delete handles DELETE /v1/submissions/{submissionId} (admin). Removes
// the submission with its answers and cached state.
func (h *SubmissionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["submissionId"]
	if err := h.submissionSvc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// List handles GET /v1/submissions (admin)
func (h *SubmissionHandler) List(w http.ResponseWriter, r *http.Request) {
	submissions, err := h.submissionSvc.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"submissions": submissions})
}
