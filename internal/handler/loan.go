package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/acff/debt-engine/internal/domain"
	"github.com/acff/debt-engine/internal/service"
	"github.com/acff/debt-engine/pkg/response"
)

type LoanHandler struct {
	service   *service.LoanService
	validator *validator.Validate
}

func NewLoanHandler(service *service.LoanService) *LoanHandler {
	return &LoanHandler{
		service:   service,
		validator: newValidator(),
	}
}

// Create handles POST /loans
func (h *LoanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Invalid loan payload", err)
		return
	}

	loan, err := h.service.Create(r.Context(), &request)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Created(w, loan)
}

// Get handles GET /loans/{loanId}
func (h *LoanHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "loanId")
	if err != nil {
		response.BadRequest(w, "Invalid loan id", err)
		return
	}

	result, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, result)
}

// ListByUser handles GET /users/{userId}/loans
func (h *LoanHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		response.BadRequest(w, "Invalid user id", err)
		return
	}

	loans, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, loans)
}

// Update handles PUT /loans/{loanId}
func (h *LoanHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "loanId")
	if err != nil {
		response.BadRequest(w, "Invalid loan id", err)
		return
	}

	var request domain.UpdateLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	result, err := h.service.Update(r.Context(), id, &request)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, result)
}

// Delete handles DELETE /loans/{loanId}
func (h *LoanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "loanId")
	if err != nil {
		response.BadRequest(w, "Invalid loan id", err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, map[string]string{"deleted": id.String()})
}
