package ratecard

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/fieldkeep/fieldkeep/internal/rest"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type RateCardDTO struct {
	Uid       string          `json:"uid"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"createdAt"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// CreateRateCard godoc
// @Summary Create a rate card
// @Tags RateCard
// @Accept json
// @Produce json
// @Param rateCard body RateCardDTO true "Rate card"
// @Success 201 {object} RateCardDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/ratecards [post]
func (h *Handler) CreateRateCard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto RateCardDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body format")
		return
	}

	created, err := h.service.Create(r.Context(), RateCard{
		Name:      dto.Name,
		Category:  dto.Category,
		Unit:      dto.Unit,
		UnitPrice: dto.UnitPrice,
	})
	if err != nil {
		if errors.Is(err, ErrRateCardDataInvalid) {
			writeError(w, http.StatusBadRequest, "Name and unit are required and unit price must not be negative")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(rateCardToDTO(&created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GetRateCards godoc
// @Summary List rate cards
// @Tags RateCard
// @Produce json
// @Param active query bool false "Only active rate cards"
// @Success 200 {array} RateCardDTO
// @Router /api/ratecards [get]
func (h *Handler) GetRateCards(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	activeOnly := r.URL.Query().Get("active") == "true"

	cards, err := h.service.GetAll(r.Context(), activeOnly)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]RateCardDTO, 0, len(cards))
	for i := range cards {
		dtos = append(dtos, rateCardToDTO(&cards[i]))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GetRateCard godoc
// @Summary Get a rate card
// @Tags RateCard
// @Produce json
// @Param rateCardUid path string true "Rate card UID"
// @Success 200 {object} RateCardDTO
// @Failure 404 {string} string "Not Found"
// @Router /api/ratecards/{rateCardUid} [get]
func (h *Handler) GetRateCard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	uid := mux.Vars(r)["rateCardUid"]

	card, err := h.service.Get(r.Context(), uid)
	if err != nil {
		if errors.Is(err, ErrRateCardNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(rateCardToDTO(&card)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// UpdateRateCard godoc
// @Summary Update a rate card
// @Tags RateCard
// @Accept json
// @Produce json
// @Param rateCardUid path string true "Rate card UID"
// @Param rateCard body RateCardDTO true "Rate card"
// @Success 200 {object} RateCardDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Failure 404 {string} string "Not Found"
// @Router /api/ratecards/{rateCardUid} [put]
func (h *Handler) UpdateRateCard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	uid := mux.Vars(r)["rateCardUid"]

	var dto RateCardDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body format")
		return
	}

	updated, err := h.service.Update(r.Context(), RateCard{
		Uid:       uid,
		Name:      dto.Name,
		Category:  dto.Category,
		Unit:      dto.Unit,
		UnitPrice: dto.UnitPrice,
		Active:    dto.Active,
	})
	if err != nil {
		if errors.Is(err, ErrRateCardNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if errors.Is(err, ErrRateCardDataInvalid) {
			writeError(w, http.StatusBadRequest, "Name and unit are required and unit price must not be negative")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(rateCardToDTO(&updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// DeleteRateCard godoc
// @Summary Delete a rate card
// @Tags RateCard
// @Param rateCardUid path string true "Rate card UID"
// @Success 204 {string} string "No Content"
// @Failure 404 {string} string "Not Found"
// @Router /api/ratecards/{rateCardUid} [delete]
func (h *Handler) DeleteRateCard(w http.ResponseWriter, r *http.Request) {
	uid := mux.Vars(r)["rateCardUid"]

	if err := h.service.Delete(r.Context(), uid); err != nil {
		if errors.Is(err, ErrRateCardNotFound) {
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

func rateCardToDTO(c *RateCard) RateCardDTO {
	return RateCardDTO{
		Uid:       c.Uid,
		Name:      c.Name,
		Category:  c.Category,
		Unit:      c.Unit,
		UnitPrice: c.UnitPrice,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
	}
}
