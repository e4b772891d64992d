package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/acff/debt-engine/internal/domain"
	"github.com/acff/debt-engine/internal/service"
	"github.com/acff/debt-engine/pkg/response"
)

type PaymentHandler struct {
	service   *service.PaymentService
	validator *validator.Validate
}

func NewPaymentHandler(service *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		service:   service,
		validator: newValidator(),
	}
}

// Create handles POST /payments
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var request domain.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Invalid payment payload", err)
		return
	}

	payment, err := h.service.Create(r.Context(), &request)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Created(w, payment)
}

// Get handles GET /payments/{paymentId}
func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "paymentId")
	if err != nil {
		response.BadRequest(w, "Invalid payment id", err)
		return
	}

	payment, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, payment)
}

// ListByLoan handles GET /loans/{loanId}/payments
func (h *PaymentHandler) ListByLoan(w http.ResponseWriter, r *http.Request) {
	loanID, err := pathID(r, "loanId")
	if err != nil {
		response.BadRequest(w, "Invalid loan id", err)
		return
	}

	result, err := h.service.ListByLoan(r.Context(), loanID)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, result)
}

// Update handles PUT /payments/{paymentId}
func (h *PaymentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "paymentId")
	if err != nil {
		response.BadRequest(w, "Invalid payment id", err)
		return
	}

	var request domain.UpdatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Invalid payment payload", err)
		return
	}

	payment, err := h.service.Update(r.Context(), id, &request)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, payment)
}

// Delete handles DELETE /payments/{paymentId}
func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "paymentId")
	if err != nil {
		response.BadRequest(w, "Invalid payment id", err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, map[string]string{"deleted": id.String()})
}
