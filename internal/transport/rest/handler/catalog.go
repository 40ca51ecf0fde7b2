package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"advisor-api/internal/model"
	"advisor-api/internal/service"
)

// CatalogHandler handles administrative configuration endpoints
type CatalogHandler struct {
	catalogSvc *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogSvc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

// CreateQuestionnaire handles POST /v1/questionnaires
func (h *CatalogHandler) CreateQuestionnaire(w http.ResponseWriter, r *http.Request) {
	var q model.Questionnaire
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.catalogSvc.CreateQuestionnaire(r.Context(), &q)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"questionnaireId": id})
}

// GetQuestionnaire handles GET /v1/questionnaires/{questionnaireId}
func (h *CatalogHandler) GetQuestionnaire(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["questionnaireId"]
	q, err := h.catalogSvc.GetQuestionnaire(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// ListQuestionnaires handles GET /v1/questionnaires
func (h *CatalogHandler) ListQuestionnaires(w http.ResponseWriter, r *http.Request) {
	questionnaires, err := h.catalogSvc.ListQuestionnaires(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"questionnaires": questionnaires})
}

// UpdateQuestionnaire handles PUT /v1/questionnaires/{questionnaireId}
func (h *CatalogHandler) UpdateQuestionnaire(w http.ResponseWriter, r *http.Request) {
	var q model.Questionnaire
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	q.ID = mux.Vars(r)["questionnaireId"]

	if err := h.catalogSvc.UpdateQuestionnaire(r.Context(), &q); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// DeleteQuestionnaire handles DELETE /v1/questionnaires/{questionnaireId}
func (h *CatalogHandler) DeleteQuestionnaire(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["questionnaireId"]
	if err := h.catalogSvc.DeleteQuestionnaire(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// CreateOffering handles POST /v1/offerings
func (h *CatalogHandler) CreateOffering(w http.ResponseWriter, r *http.Request) {
	var offering model.Offering
	if err := json.NewDecoder(r.Body).Decode(&offering); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.catalogSvc.CreateOffering(r.Context(), &offering); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, offering)
}

// ListOfferings handles GET /v1/offerings
func (h *CatalogHandler) ListOfferings(w http.ResponseWriter, r *http.Request) {
	offerings, err := h.catalogSvc.ListOfferings(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"offerings": offerings})
}

// UpdateOffering handles PUT /v1/offerings/{key}
func (h *CatalogHandler) UpdateOffering(w http.ResponseWriter, r *http.Request) {
	var offering model.Offering
	if err := json.NewDecoder(r.Body).Decode(&offering); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	offering.Key = mux.Vars(r)["key"]

	if err := h.catalogSvc.UpdateOffering(r.Context(), &offering); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, offering)
}

// DeleteOffering handles DELETE /v1/offerings/{key}
func (h *CatalogHandler) DeleteOffering(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	if err := h.catalogSvc.DeleteOffering(r.Context(), key); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// CreateRuleRequest is the request body for adding a matrix row
type CreateRuleRequest struct {
	QuestionnaireID string `json:"questionnaireId"`
	QuestionKey     string `json:"questionKey"`
	AnswerValue     string `json:"answerValue"`
	OfferingKey     string `json:"offeringKey"`
	Weight          int    `json:"weight"`
}

// CreateRule handles POST /v1/rules
func (h *CatalogHandler) CreateRule(w http.ResponseWriter, r *http.Request) {
	var req CreateRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rule := &model.DecisionRule{
		QuestionKey: req.QuestionKey,
		AnswerValue: req.AnswerValue,
		OfferingKey: req.OfferingKey,
		Weight:      req.Weight,
	}
	id, err := h.catalogSvc.CreateRule(r.Context(), req.QuestionnaireID, rule)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"ruleId": id})
}

// ListRules handles GET /v1/rules. Passing both questionKey and
// answerValue narrows the result to the matching matrix rows.
func (h *CatalogHandler) ListRules(w http.ResponseWriter, r *http.Request) {
	questionKey := r.URL.Query().Get("questionKey")
	answerValue := r.URL.Query().Get("answerValue")

	var (
		rules []*model.DecisionRule
		err   error
	)
	if questionKey != "" && answerValue != "" {
		rules, err = h.catalogSvc.FindRules(r.Context(), questionKey, answerValue)
	} else {
		rules, err = h.catalogSvc.ListRules(r.Context())
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"rules": rules})
}

// DeleteRule handles DELETE /v1/rules/{ruleId}
func (h *CatalogHandler) DeleteRule(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["ruleId"]
	if err := h.catalogSvc.DeleteRule(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
