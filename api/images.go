package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/garnizeh/mentormatch/internal/images"
	"github.com/garnizeh/mentormatch/pkg/models"
	"github.com/garnizeh/mentormatch/pkg/repository"
	"github.com/gorilla/mux"
)

type ImagesHandler struct {
	userRepo repository.UserRepo
	store    *images.Store
	maxBytes int64
}

func NewImagesHandler(ur repository.UserRepo, store *images.Store, maxBytes int64) *ImagesHandler {
	return &ImagesHandler{userRepo: ur, store: store, maxBytes: maxBytes}
}

// Upload accepts a single JPEG or PNG under the multipart field "profile",
// stores it keyed by the caller's id and points the caller's imageUrl at the
// serving route.
func (h *ImagesHandler) Upload(w http.ResponseWriter, r *http.Request) {
	callerID, callerRole, ok := callerFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	// slack beyond the image limit for multipart framing
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+64*1024)
	file, _, err := r.FormFile("profile")
	if err != nil {
		writeError(w, "Invalid payload", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if err := h.store.Save(callerID, file); err != nil {
		switch {
		case errors.Is(err, images.ErrTooLarge):
			writeError(w, "Image too large", http.StatusBadRequest)
		case errors.Is(err, images.ErrUnsupportedType):
			writeError(w, "Only JPEG and PNG images are accepted", http.StatusBadRequest)
		default:
			writeError(w, "Error storing image", http.StatusInternalServerError)
		}
		return
	}

	ctx := r.Context()
	user, err := h.userRepo.GetByID(ctx, callerID)
	if err != nil || user == nil {
		writeError(w, "DB error", http.StatusInternalServerError)
		return
	}

	p := user.Profile
	p.ImageURL = fmt.Sprintf("/api/images/%s/%d", callerRole, callerID)
	if err := h.userRepo.UpdateProfile(ctx, callerID, &p); err != nil {
		writeError(w, "DB error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"message": "Image uploaded", "imageUrl": p.ImageURL}, http.StatusOK)
}

// Serve streams the stored image for a user, falling back to the role
// placeholder when nothing was uploaded or the file went missing.
func (h *ImagesHandler) Serve(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	role := vars["role"]
	if !models.ValidRole(role) {
		writeError(w, "Not found", http.StatusNotFound)
		return
	}
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		writeError(w, "Not found", http.StatusNotFound)
		return
	}

	if path, ok := h.store.Path(id); ok {
		http.ServeFile(w, r, path)
		return
	}

	placeholder := menteePlaceholder
	if role == string(models.RoleMentor) {
		placeholder = mentorPlaceholder
	}
	http.Redirect(w, r, placeholder, http.StatusFound)
}
