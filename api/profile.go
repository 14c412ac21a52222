package api

import (
	"encoding/json"
	"html"
	"net/http"

	"github.com/garnizeh/mentormatch/pkg/models"
	"github.com/garnizeh/mentormatch/pkg/repository"
)

type ProfileHandler struct {
	userRepo repository.UserRepo
}

func NewProfileHandler(ur repository.UserRepo) *ProfileHandler {
	return &ProfileHandler{userRepo: ur}
}

// userResponse is the public shape of a user: no credential fields, profile
// nested as the clients expect it.
type userResponse struct {
	ID      int64          `json:"id"`
	Email   string         `json:"email"`
	Role    models.Role    `json:"role"`
	Profile models.Profile `json:"profile"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Role: u.Role, Profile: u.Profile}
}

// profilePatch distinguishes absent fields from empty ones so a PATCH only
// touches what the client sent.
type profilePatch struct {
	Name     *string   `json:"name"`
	Bio      *string   `json:"bio"`
	ImageURL *string   `json:"imageUrl"`
	Skills   *[]string `json:"skills"`
}

type patchMeRequest struct {
	Profile *profilePatch `json:"profile"`
}

func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	callerID, _, ok := callerFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.userRepo.GetByID(r.Context(), callerID)
	if err != nil {
		writeError(w, "DB error", http.StatusInternalServerError)
		return
	}
	if user == nil {
		writeError(w, "Not found", http.StatusNotFound)
		return
	}

	writeJSON(w, toUserResponse(user), http.StatusOK)
}

// UpdateMe applies a partial profile update. Text fields are HTML-escaped on
// every write; skills only stick for mentors.
func (h *ProfileHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	callerID, _, ok := callerFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req patchMeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Profile == nil {
		writeError(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	user, err := h.userRepo.GetByID(ctx, callerID)
	if err != nil {
		writeError(w, "DB error", http.StatusInternalServerError)
		return
	}
	if user == nil {
		writeError(w, "Not found", http.StatusNotFound)
		return
	}

	p := user.Profile
	if req.Profile.Name != nil {
		p.Name = html.EscapeString(*req.Profile.Name)
	}
	if req.Profile.Bio != nil {
		p.Bio = html.EscapeString(*req.Profile.Bio)
	}
	if req.Profile.ImageURL != nil {
		p.ImageURL = *req.Profile.ImageURL
	}
	if req.Profile.Skills != nil && user.Role == models.RoleMentor {
		p.Skills = req.Profile.Skills
	}

	if err := h.userRepo.UpdateProfile(ctx, callerID, &p); err != nil {
		writeError(w, "DB error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{"message": "Profile updated", "profile": p}, http.StatusOK)
}

type replaceProfileRequest struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Bio      string   `json:"bio"`
	ImageURL string   `json:"imageUrl"`
	Skills   []string `json:"skills"`
}

// ReplaceProfile replaces the whole profile. The target id travels in the
// body and must be the caller's own.
func (h *ProfileHandler) ReplaceProfile(w http.ResponseWriter, r *http.Request) {
	callerID, callerRole, ok := callerFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req replaceProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid payload", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		writeError(w, "Invalid payload", http.StatusBadRequest)
		return
	}
	if req.ID != callerID {
		writeError(w, "Forbidden", http.StatusForbidden)
		return
	}

	p := models.Profile{
		Name:     html.EscapeString(req.Name),
		Bio:      html.EscapeString(req.Bio),
		ImageURL: req.ImageURL,
	}
	if callerRole == models.RoleMentor {
		skills := req.Skills
		if skills == nil {
			skills = []string{}
		}
		p.Skills = &skills
	}

	if err := h.userRepo.UpdateProfile(r.Context(), callerID, &p); err != nil {
		writeError(w, "DB error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{"message": "Profile updated", "profile": p}, http.StatusOK)
}
