package quotation

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/fieldkeep/fieldkeep/internal/rest"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type QuotationDTO struct {
	Uid             string              `json:"uid"`
	ClientId        int                 `json:"clientId"`
	TicketId        *int                `json:"ticketId,omitempty"`
	Number          string              `json:"number"`
	GrandTotal      decimal.NullDecimal `json:"grandTotal"`
	ExpectedExpense decimal.NullDecimal `json:"expectedExpense"`
	Status          string              `json:"status"`
	CreatedAt       time.Time           `json:"createdAt"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// CreateQuotation godoc
// @Summary Create a quotation
// @Tags Quotation
// @Accept json
// @Produce json
// @Param quotation body QuotationDTO true "Quotation"
// @Success 201 {object} QuotationDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/quotations [post]
func (h *Handler) CreateQuotation(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto QuotationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body format")
		return
	}

	created, err := h.service.Create(r.Context(), Quotation{
		ClientId:        dto.ClientId,
		TicketId:        dto.TicketId,
		Number:          dto.Number,
		GrandTotal:      dto.GrandTotal,
		ExpectedExpense: dto.ExpectedExpense,
	})
	if err != nil {
		if errors.Is(err, ErrQuotationDataInvalid) {
			writeError(w, http.StatusBadRequest, "clientId is required and amounts must not be negative")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(quotationToDTO(&created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GetQuotations godoc
// @Summary List quotations
// @Tags Quotation
// @Produce json
// @Success 200 {array} QuotationDTO
// @Router /api/quotations [get]
func (h *Handler) GetQuotations(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	quotations, err := h.service.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]QuotationDTO, 0, len(quotations))
	for i := range quotations {
		dtos = append(dtos, quotationToDTO(&quotations[i]))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GetQuotation godoc
// @Summary Get a quotation
// @Tags Quotation
// @Produce json
// @Param quotationUid path string true "Quotation UID"
// @Success 200 {object} QuotationDTO
// @Failure 404 {string} string "Not Found"
// @Router /api/quotations/{quotationUid} [get]
func (h *Handler) GetQuotation(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	uid := mux.Vars(r)["quotationUid"]

	q, err := h.service.Get(r.Context(), uid)
	if err != nil {
		if errors.Is(err, ErrQuotationNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(quotationToDTO(&q)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// UpdateQuotation godoc
// @Summary Update a quotation
// @Tags Quotation
// @Accept json
// @Produce json
// @Param quotationUid path string true "Quotation UID"
// @Param quotation body QuotationDTO true "Quotation"
// @Success 200 {object} QuotationDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Failure 404 {string} string "Not Found"
// @Router /api/quotations/{quotationUid} [put]
func (h *Handler) UpdateQuotation(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	uid := mux.Vars(r)["quotationUid"]

	var dto QuotationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body format")
		return
	}
	status, err := ParseStatus(dto.Status)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unknown status")
		return
	}

	updated, err := h.service.Update(r.Context(), Quotation{
		Uid:             uid,
		Number:          dto.Number,
		GrandTotal:      dto.GrandTotal,
		ExpectedExpense: dto.ExpectedExpense,
		Status:          status,
	})
	if err != nil {
		if errors.Is(err, ErrQuotationNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if errors.Is(err, ErrQuotationDataInvalid) {
			writeError(w, http.StatusBadRequest, "Amounts must not be negative")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(quotationToDTO(&updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// DeleteQuotation godoc
// @Summary Delete a quotation
// @Tags Quotation
// @Param quotationUid path string true "Quotation UID"
// @Success 204 {string} string "No Content"
// @Failure 404 {string} string "Not Found"
// @Router /api/quotations/{quotationUid} [delete]
func (h *Handler) DeleteQuotation(w http.ResponseWriter, r *http.Request) {
	uid := mux.Vars(r)["quotationUid"]

	if err := h.service.Delete(r.Context(), uid); err != nil {
		if errors.Is(err, ErrQuotationNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: message}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func quotationToDTO(q *Quotation) QuotationDTO {
	return QuotationDTO{
		Uid:             q.Uid,
		ClientId:        q.ClientId,
		TicketId:        q.TicketId,
		Number:          q.Number,
		GrandTotal:      q.GrandTotal,
		ExpectedExpense: q.ExpectedExpense,
		Status:          string(q.Status),
		CreatedAt:       q.CreatedAt,
	}
}
