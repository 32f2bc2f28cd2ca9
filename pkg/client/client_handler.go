package client

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/fieldkeep/fieldkeep/internal/rest"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type ClientDTO struct {
	Uid         string    `json:"uid"`
	Name        string    `json:"name"`
	ContactName string    `json:"contactName"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// CreateClient godoc
// @Summary Create a client
// @Tags Client
// @Accept json
// @Produce json
// @Param client body ClientDTO true "Client"
// @Success 201 {object} ClientDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/clients [post]
func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Debug("Creating client")

	var dto ClientDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body format")
		return
	}
	if len(dto.Name) == 0 {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	created, err := h.service.Create(r.Context(), dtoToClient(dto))
	if err != nil {
		if errors.Is(err, ErrClientDataInvalid) {
			writeError(w, http.StatusBadRequest, "Invalid client data")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(clientToDTO(&created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GetClients godoc
// @Summary List clients
// @Tags Client
// @Produce json
// @Success 200 {array} ClientDTO
// @Router /api/clients [get]
func (h *Handler) GetClients(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	clients, err := h.service.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]ClientDTO, 0, len(clients))
	for i := range clients {
		dtos = append(dtos, clientToDTO(&clients[i]))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GetClient godoc
// @Summary Get a client
// @Tags Client
// @Produce json
// @Param clientUid path string true "Client UID"
// @Success 200 {object} ClientDTO
// @Failure 404 {string} string "Not Found"
// @Router /api/clients/{clientUid} [get]
func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	uid := mux.Vars(r)["clientUid"]

	c, err := h.service.Get(r.Context(), uid)
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(clientToDTO(&c)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// UpdateClient godoc
// @Summary Update a client
// @Tags Client
// @Accept json
// @Produce json
// @Param clientUid path string true "Client UID"
// @Param client body ClientDTO true "Client"
// @Success 200 {object} ClientDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Failure 404 {string} string "Not Found"
// @Router /api/clients/{clientUid} [put]
func (h *Handler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	uid := mux.Vars(r)["clientUid"]

	var dto ClientDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body format")
		return
	}
	if len(dto.Name) == 0 {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	client := dtoToClient(dto)
	client.Uid = uid
	updated, err := h.service.Update(r.Context(), client)
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(clientToDTO(&updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// DeleteClient godoc
// @Summary Delete a client
// @Tags Client
// @Param clientUid path string true "Client UID"
// @Success 204 {string} string "No Content"
// @Failure 404 {string} string "Not Found"
// @Router /api/clients/{clientUid} [delete]
func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	uid := mux.Vars(r)["clientUid"]

	if err := h.service.Delete(r.Context(), uid); err != nil {
		if errors.Is(err, ErrClientNotFound) {
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

func clientToDTO(c *Client) ClientDTO {
	return ClientDTO{
		Uid:         c.Uid,
		Name:        c.Name,
		ContactName: c.ContactName,
		Email:       c.Email,
		Phone:       c.Phone,
		Address:     c.Address,
		CreatedAt:   c.CreatedAt,
	}
}

func dtoToClient(dto ClientDTO) Client {
	return Client{
		Name:        dto.Name,
		ContactName: dto.ContactName,
		Email:       dto.Email,
		Phone:       dto.Phone,
		Address:     dto.Address,
	}
}
