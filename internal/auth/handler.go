package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/fieldkeep/fieldkeep/internal/rest"
	"github.com/fieldkeep/fieldkeep/pkg/rbac"
	log "github.com/sirupsen/logrus"
)

// SessionCookie carries the signed session token.
const SessionCookie = "fieldkeep_session"

// CredentialsVerifier checks a username/password pair and resolves it to a
// session. Implemented by the user service.
type CredentialsVerifier interface {
	Authenticate(ctx context.Context, username, password string) (Session, error)
}

type LoginRequestDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SessionDTO struct {
	UserUid  string       `json:"userUid"`
	Username string       `json:"username"`
	Role     string       `json:"role"`
	NavItems []NavItemDTO `json:"navItems"`
}

type NavItemDTO struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

type Handler struct {
	verifier CredentialsVerifier
	tokens   *Tokens
	policy   *rbac.Policy
	tokenTTL time.Duration
}

func NewHandler(verifier CredentialsVerifier, tokens *Tokens, policy *rbac.Policy, tokenTTL time.Duration) *Handler {
	return &Handler{
		verifier: verifier,
		tokens:   tokens,
		policy:   policy,
		tokenTTL: tokenTTL,
	}
}

// Login godoc
// @Summary Log in
// @Description Verify credentials and set the session cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequestDTO true "Credentials"
// @Success 200 {object} SessionDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Failure 401 {object} rest.ErrorResponse "Invalid credentials"
// @Router /api/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid request body format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	if len(req.Username) == 0 || len(req.Password) == 0 {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Username and password are required",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	session, err := h.verifier.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			log.Debugf("failed login attempt for %q", req.Username)
			w.WriteHeader(http.StatusUnauthorized)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error: "Invalid username or password",
			})
			if encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
			return
		}
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	token, err := h.tokens.Issue(session)
	if err != nil {
		log.Errorf("failed to issue session token: %v", err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(h.sessionToDTO(session)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Logout godoc
// @Summary Log out
// @Description Clear the session cookie
// @Tags Auth
// @Success 204 {string} string "No Content"
// @Router /api/auth/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

// CurrentSession godoc
// @Summary Current session
// @Description Return the authenticated caller's session and navigation
// @Tags Auth
// @Produce json
// @Success 200 {object} SessionDTO
// @Failure 401 {string} string "Unauthorized"
// @Router /api/auth/session [get]
func (h *Handler) CurrentSession(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	session, err := CurrentSession(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(h.sessionToDTO(session)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Navigation godoc
// @Summary Navigation menu
// @Description Return the navigation items visible to the caller's role, in menu order
// @Tags Auth
// @Produce json
// @Success 200 {array} NavItemDTO
// @Failure 401 {string} string "Unauthorized"
// @Router /api/navigation [get]
func (h *Handler) Navigation(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	session, err := CurrentSession(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	items := h.policy.VisibleNavItems(session.Role)
	dtos := make([]NavItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, NavItemDTO{Label: item.Label, Path: item.Path})
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) sessionToDTO(s Session) SessionDTO {
	items := h.policy.VisibleNavItems(s.Role)
	navItems := make([]NavItemDTO, 0, len(items))
	for _, item := range items {
		navItems = append(navItems, NavItemDTO{Label: item.Label, Path: item.Path})
	}
	return SessionDTO{
		UserUid:  s.UserUID,
		Username: s.Username,
		Role:     string(s.Role),
		NavItems: navItems,
	}
}
