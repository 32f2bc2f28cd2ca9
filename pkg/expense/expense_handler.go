package expense

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/fieldkeep/fieldkeep/internal/rest"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type ExpenseDTO struct {
	Uid         string              `json:"uid"`
	Amount      decimal.NullDecimal `json:"amount"`
	Category    string              `json:"category"`
	QuotationId *int                `json:"quotationId,omitempty"`
	TicketId    *int                `json:"ticketId,omitempty"`
	Description string              `json:"description"`
	CreatedAt   time.Time           `json:"createdAt"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// CreateExpense godoc
// @Summary Create an expense
// @Tags Expense
// @Accept json
// @Produce json
// @Param expense body ExpenseDTO true "Expense"
// @Success 201 {object} ExpenseDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/expenses [post]
func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto ExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body format")
		return
	}
	category, err := ParseCategory(dto.Category)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unknown category")
		return
	}

	created, err := h.service.Create(r.Context(), Expense{
		Amount:      dto.Amount,
		Category:    category,
		QuotationId: dto.QuotationId,
		TicketId:    dto.TicketId,
		Description: dto.Description,
	})
	if err != nil {
		if errors.Is(err, ErrExpenseDataInvalid) {
			writeError(w, http.StatusBadRequest, "Category is required and amount must not be negative")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(expenseToDTO(&created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GetExpenses godoc
// @Summary List expenses
// @Tags Expense
// @Produce json
// @Success 200 {array} ExpenseDTO
// @Router /api/expenses [get]
func (h *Handler) GetExpenses(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	expenses, err := h.service.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]ExpenseDTO, 0, len(expenses))
	for i := range expenses {
		dtos = append(dtos, expenseToDTO(&expenses[i]))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GetExpense godoc
// @Summary Get an expense
// @Tags Expense
// @Produce json
// @Param expenseUid path string true "Expense UID"
// @Success 200 {object} ExpenseDTO
// @Failure 404 {string} string "Not Found"
// @Router /api/expenses/{expenseUid} [get]
func (h *Handler) GetExpense(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	uid := mux.Vars(r)["expenseUid"]

	e, err := h.service.Get(r.Context(), uid)
	if err != nil {
		if errors.Is(err, ErrExpenseNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(expenseToDTO(&e)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// UpdateExpense godoc
// @Summary Update an expense
// @Tags Expense
// @Accept json
// @Produce json
// @Param expenseUid path string true "Expense UID"
// @Param expense body ExpenseDTO true "Expense"
// @Success 200 {object} ExpenseDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Failure 404 {string} string "Not Found"
// @Router /api/expenses/{expenseUid} [put]
func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	uid := mux.Vars(r)["expenseUid"]

	var dto ExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body format")
		return
	}
	category, err := ParseCategory(dto.Category)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unknown category")
		return
	}

	updated, err := h.service.Update(r.Context(), Expense{
		Uid:         uid,
		Amount:      dto.Amount,
		Category:    category,
		Description: dto.Description,
	})
	if err != nil {
		if errors.Is(err, ErrExpenseNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if errors.Is(err, ErrExpenseDataInvalid) {
			writeError(w, http.StatusBadRequest, "Amount must not be negative")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(expenseToDTO(&updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// DeleteExpense godoc
// @Summary Delete an expense
// @Tags Expense
// @Param expenseUid path string true "Expense UID"
// @Success 204 {string} string "No Content"
// @Failure 404 {string} string "Not Found"
// @Router /api/expenses/{expenseUid} [delete]
func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	uid := mux.Vars(r)["expenseUid"]

	if err := h.service.Delete(r.Context(), uid); err != nil {
		if errors.Is(err, ErrExpenseNotFound) {
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

func expenseToDTO(e *Expense) ExpenseDTO {
	return ExpenseDTO{
		Uid:         e.Uid,
		Amount:      e.Amount,
		Category:    string(e.Category),
		QuotationId: e.QuotationId,
		TicketId:    e.TicketId,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
}
