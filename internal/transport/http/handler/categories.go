package handler

import (
	"encoding/json"
	"net/http"

	"github.com/wordly-app/backend/internal/application/category"
	"github.com/wordly-app/backend/internal/domain"
	"github.com/wordly-app/backend/internal/pkg/validate"
)

type CategoryHandler struct {
	svc category.Service
}

func NewCategoryHandler(svc category.Service) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// List is public: the registration form shows categories before the
// visitor has an account.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	cats, err := h.svc.List(r.Context())
	if err != nil {
		status, msg := statusFromErr(err)
		writeError(w, status, msg)
		return
	}
	if cats == nil {
		cats = []domain.Category{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"categories": cats})
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	cat, err := h.svc.Create(r.Context(), req.Name)
	if err != nil {
		status, msg := statusFromErr(err)
		writeError(w, status, msg)
		return
	}
	writeJSON(w, http.StatusCreated, CategoryEnvelope{
		Message:  "category created successfully",
		Category: cat,
	})
}
