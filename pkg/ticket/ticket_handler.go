package ticket

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/fieldkeep/fieldkeep/internal/rest"
	"github.com/gorilla/mux"
)

type TicketDTO struct {
	Uid         string    `json:"uid"`
	ClientId    int       `json:"clientId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	AssigneeId  *int      `json:"assigneeId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// CreateTicket godoc
// @Summary Create a ticket
// @Tags Ticket
// @Accept json
// @Produce json
// @Param ticket body TicketDTO true "Ticket"
// @Success 201 {object} TicketDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/tickets [post]
func (h *Handler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto TicketDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body format")
		return
	}

	created, err := h.service.Create(r.Context(), Ticket{
		ClientId:    dto.ClientId,
		Title:       dto.Title,
		Description: dto.Description,
		AssigneeId:  dto.AssigneeId,
	})
	if err != nil {
		if errors.Is(err, ErrTicketDataInvalid) {
			writeError(w, http.StatusBadRequest, "Title and clientId are required")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(ticketToDTO(&created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GetTickets godoc
// @Summary List tickets
// @Tags Ticket
// @Produce json
// @Param status query string false "Filter by status"
// @Param clientId query int false "Filter by client"
// @Success 200 {array} TicketDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid filter"
// @Router /api/tickets [get]
func (h *Handler) GetTickets(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var filter Filter
	if statusParam := r.URL.Query().Get("status"); statusParam != "" {
		status, err := ParseStatus(statusParam)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Unknown status filter")
			return
		}
		filter.Status = status
	}
	if clientParam := r.URL.Query().Get("clientId"); clientParam != "" {
		clientId, err := strconv.Atoi(clientParam)
		if err != nil {
			writeError(w, http.StatusBadRequest, "clientId must be a number")
			return
		}
		filter.ClientId = clientId
	}

	tickets, err := h.service.GetAll(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]TicketDTO, 0, len(tickets))
	for i := range tickets {
		dtos = append(dtos, ticketToDTO(&tickets[i]))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GetTicket godoc
// @Summary Get a ticket
// @Tags Ticket
// @Produce json
// @Param ticketUid path string true "Ticket UID"
// @Success 200 {object} TicketDTO
// @Failure 404 {string} string "Not Found"
// @Router /api/tickets/{ticketUid} [get]
func (h *Handler) GetTicket(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	uid := mux.Vars(r)["ticketUid"]

	t, err := h.service.Get(r.Context(), uid)
	if err != nil {
		if errors.Is(err, ErrTicketNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ticketToDTO(&t)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// UpdateTicket godoc
// @Summary Update a ticket
// @Tags Ticket
// @Accept json
// @Produce json
// @Param ticketUid path string true "Ticket UID"
// @Param ticket body TicketDTO true "Ticket"
// @Success 200 {object} TicketDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Failure 404 {string} string "Not Found"
// @Failure 409 {object} rest.ErrorResponse "Invalid status transition"
// @Router /api/tickets/{ticketUid} [put]
func (h *Handler) UpdateTicket(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	uid := mux.Vars(r)["ticketUid"]

	var dto TicketDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body format")
		return
	}
	status, err := ParseStatus(dto.Status)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unknown status")
		return
	}

	updated, err := h.service.Update(r.Context(), Ticket{
		Uid:         uid,
		Title:       dto.Title,
		Description: dto.Description,
		Status:      status,
		AssigneeId:  dto.AssigneeId,
	})
	if err != nil {
		if errors.Is(err, ErrTicketNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if errors.Is(err, ErrBadTransition) {
			writeError(w, http.StatusConflict, "Invalid status transition")
			return
		}
		if errors.Is(err, ErrTicketDataInvalid) {
			writeError(w, http.StatusBadRequest, "Title is required")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ticketToDTO(&updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// DeleteTicket godoc
// @Summary Delete a ticket
// @Tags Ticket
// @Param ticketUid path string true "Ticket UID"
// @Success 204 {string} string "No Content"
// @Failure 404 {string} string "Not Found"
// @Router /api/tickets/{ticketUid} [delete]
func (h *Handler) DeleteTicket(w http.ResponseWriter, r *http.Request) {
	uid := mux.Vars(r)["ticketUid"]

	if err := h.service.Delete(r.Context(), uid); err != nil {
		if errors.Is(err, ErrTicketNotFound) {
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

func ticketToDTO(t *Ticket) TicketDTO {
	return TicketDTO{
		Uid:         t.Uid,
		ClientId:    t.ClientId,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		AssigneeId:  t.AssigneeId,
		CreatedAt:   t.CreatedAt,
	}
}
