package api

import (
	"net/http"

	"github.com/garnizeh/mentormatch/pkg/repository"
)

type MentorsHandler struct {
	userRepo repository.UserRepo
}

func NewMentorsHandler(ur repository.UserRepo) *MentorsHandler {
	return &MentorsHandler{userRepo: ur}
}

// List returns every mentor, optionally filtered by a single skill substring
// and sorted by name or skill. No pagination: the whole matching set is
// returned on each call.
func (h *MentorsHandler) List(w http.ResponseWriter, r *http.Request) {
	skill := r.URL.Query().Get("skill")
	orderBy := r.URL.Query().Get("order_by")

	mentors, err := h.userRepo.ListMentors(r.Context(), skill, orderBy)
	if err != nil {
		writeError(w, "DB error", http.StatusInternalServerError)
		return
	}

	out := make([]userResponse, 0, len(mentors))
	for i := range mentors {
		out = append(out, toUserResponse(&mentors[i]))
	}

	writeJSON(w, out, http.StatusOK)
}
