package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/acff/debt-engine/internal/domain"
	"github.com/acff/debt-engine/internal/service"
	"github.com/acff/debt-engine/pkg/response"
)

type DebtorHandler struct {
	service   *service.DebtorService
	validator *validator.Validate
}

func NewDebtorHandler(service *service.DebtorService) *DebtorHandler {
	return &DebtorHandler{
		service:   service,
		validator: newValidator(),
	}
}

// Create handles POST /debtors
func (h *DebtorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateDebtorRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Invalid debtor payload", err)
		return
	}

	debtor, err := h.service.Create(r.Context(), &request)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Created(w, debtor)
}

// Get handles GET /debtors/{debtorId}
func (h *DebtorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "debtorId")
	if err != nil {
		response.BadRequest(w, "Invalid debtor id", err)
		return
	}

	debtor, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, debtor)
}

// GetByPhone handles GET /debtors/phone/{phone}
func (h *DebtorHandler) GetByPhone(w http.ResponseWriter, r *http.Request) {
	phone := mux.Vars(r)["phone"]
	if phone == "" {
		response.BadRequest(w, "Invalid debtor phone", nil)
		return
	}

	debtor, err := h.service.GetByPhone(r.Context(), phone)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, debtor)
}

// List handles GET /debtors
func (h *DebtorHandler) List(w http.ResponseWriter, r *http.Request) {
	debtors, err := h.service.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, debtors)
}

// Loans handles GET /debtors/{debtorId}/loans
func (h *DebtorHandler) Loans(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "debtorId")
	if err != nil {
		response.BadRequest(w, "Invalid debtor id", err)
		return
	}

	loans, err := h.service.Loans(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, loans)
}

// Update handles PUT /debtors/{debtorId}
func (h *DebtorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "debtorId")
	if err != nil {
		response.BadRequest(w, "Invalid debtor id", err)
		return
	}

	var request domain.UpdateDebtorRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	debtor, err := h.service.Update(r.Context(), id, &request)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, debtor)
}

// Delete handles DELETE /debtors/{debtorId}
func (h *DebtorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "debtorId")
	if err != nil {
		response.BadRequest(w, "Invalid debtor id", err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, map[string]string{"deleted": id.String()})
}
