package api

import (
	"encoding/json"
	"errors"
	"html"
	"io"
	"net/http"
	"strconv"

	"github.com/garnizeh/mentormatch/internal/schema"
	"github.com/garnizeh/mentormatch/pkg/models"
	"github.com/garnizeh/mentormatch/pkg/repository"
	"github.com/gorilla/mux"
)

type MatchesHandler struct {
	userRepo  repository.UserRepo
	matchRepo repository.MatchRequestRepo
	validator *schema.Validator
}

func NewMatchesHandler(ur repository.UserRepo, mr repository.MatchRequestRepo, v *schema.Validator) *MatchesHandler {
	return &MatchesHandler{userRepo: ur, matchRepo: mr, validator: v}
}

type createMatchRequest struct {
	MentorID int64  `json:"mentorId"`
	MenteeID int64  `json:"menteeId"`
	Message  string `json:"message"`
}

// Create opens a new pending match request from the calling mentee towards a
// mentor. The mentee side is always the caller, whatever the body says, so
// ownership of the later cancel stays with the creator.
func (h *MatchesHandler) Create(w http.ResponseWriter, r *http.Request) {
	callerID, callerRole, ok := callerFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if callerRole != models.RoleMentee {
		writeError(w, "Forbidden", http.StatusForbidden)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, "Invalid payload", http.StatusBadRequest)
		return
	}
	if err := h.validator.Validate(r.Context(), "match_request", body); err != nil {
		writeError(w, "Invalid payload", http.StatusBadRequest)
		return
	}
	var req createMatchRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	target, err := h.userRepo.GetByID(ctx, req.MentorID)
	if err != nil {
		writeError(w, "DB error", http.StatusInternalServerError)
		return
	}
	if target == nil || target.Role != models.RoleMentor {
		writeError(w, "Mentor not found", http.StatusBadRequest)
		return
	}

	m := models.MatchRequest{
		MentorID: req.MentorID,
		MenteeID: callerID,
		Message:  html.EscapeString(req.Message),
		Status:   models.StatusPending,
	}
	id, err := h.matchRepo.CreateMatchRequest(ctx, &m)
	if err != nil {
		writeError(w, "DB error", http.StatusInternalServerError)
		return
	}
	m.ID = id

	writeJSON(w, m, http.StatusCreated)
}

// Incoming lists the calling mentor's requests, newest first, each joined
// with the mentee's name and email.
func (h *MatchesHandler) Incoming(w http.ResponseWriter, r *http.Request) {
	callerID, callerRole, ok := callerFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if callerRole != models.RoleMentor {
		writeError(w, "Forbidden", http.StatusForbidden)
		return
	}

	list, err := h.matchRepo.ListIncoming(r.Context(), callerID)
	if err != nil {
		writeError(w, "DB error", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []models.IncomingMatchRequest{}
	}

	writeJSON(w, list, http.StatusOK)
}

// Outgoing lists the calling mentee's requests, newest first.
func (h *MatchesHandler) Outgoing(w http.ResponseWriter, r *http.Request) {
	callerID, callerRole, ok := callerFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if callerRole != models.RoleMentee {
		writeError(w, "Forbidden", http.StatusForbidden)
		return
	}

	list, err := h.matchRepo.ListOutgoing(r.Context(), callerID)
	if err != nil {
		writeError(w, "DB error", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []models.MatchRequest{}
	}

	writeJSON(w, list, http.StatusOK)
}

func (h *MatchesHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, models.RoleMentor, models.StatusAccepted)
}

func (h *MatchesHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, models.RoleMentor, models.StatusRejected)
}

// Cancel is the mentee-side transition; the record stays around with status
// cancelled, it is never deleted.
func (h *MatchesHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, models.RoleMentee, models.StatusCancelled)
}

func (h *MatchesHandler) transition(w http.ResponseWriter, r *http.Request, requiredRole models.Role, status models.MatchStatus) {
	callerID, callerRole, ok := callerFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if callerRole != requiredRole {
		writeError(w, "Forbidden", http.StatusForbidden)
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, "Not found", http.StatusNotFound)
		return
	}

	ctx := r.Context()
	if err := h.matchRepo.Transition(ctx, id, callerID, requiredRole, status); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, "Not found", http.StatusNotFound)
		case errors.Is(err, repository.ErrConflict):
			writeError(w, "Request already resolved", http.StatusConflict)
		default:
			writeError(w, "DB error", http.StatusInternalServerError)
		}
		return
	}

	m, err := h.matchRepo.GetMatchRequest(ctx, id)
	if err != nil || m == nil {
		writeError(w, "DB error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, m, http.StatusOK)
}
