package api

import (
	"encoding/json"
	"html"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/garnizeh/mentormatch/internal/schema"
	"github.com/garnizeh/mentormatch/pkg/models"
	"github.com/garnizeh/mentormatch/pkg/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenIssuer   = "mentor-mentee-app"
	tokenAudience = "mentor-mentee-client"

	mentorPlaceholder = "https://placehold.co/500x500.jpg?text=MENTOR"
	menteePlaceholder = "https://placehold.co/500x500.jpg?text=MENTEE"
)

type AuthHandler struct {
	userRepo      repository.UserRepo
	validator     *schema.Validator
	jwtSecret     string
	tokenDuration time.Duration
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
func NewAuthHandler(ur repository.UserRepo, v *schema.Validator, jwtSecret string, tokenDuration time.Duration) *AuthHandler {
	return &AuthHandler{userRepo: ur, validator: v, jwtSecret: jwtSecret, tokenDuration: tokenDuration}
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, "Invalid payload", http.StatusBadRequest)
		return
	}
	if err := h.validator.Validate(r.Context(), "signup", body); err != nil {
		writeError(w, "Invalid payload", http.StatusBadRequest)
		return
	}
	var req signupRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	existing, err := h.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		writeError(w, "DB error", http.StatusInternalServerError)
		return
	}
	if existing != nil {
		writeError(w, "Email already exists", http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, "Error hashing password", http.StatusInternalServerError)
		return
	}

	user := models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         models.Role(req.Role),
		Profile: models.Profile{
			Name:     html.EscapeString(req.Name),
			ImageURL: menteePlaceholder,
		},
	}
	if user.Role == models.RoleMentor {
		user.Profile.ImageURL = mentorPlaceholder
		skills := []string{}
		user.Profile.Skills = &skills
	}

	if _, err := h.userRepo.CreateUser(ctx, &user); err != nil {
		writeError(w, "DB error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"message": "Signup success"}, http.StatusCreated)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid payload", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	user, err := h.userRepo.GetByEmail(r.Context(), req.Email)
	if err != nil {
		writeError(w, "DB error", http.StatusInternalServerError)
		return
	}
	// unknown email and wrong password are indistinguishable
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	tokenStr, err := h.issueToken(user)
	if err != nil {
		writeError(w, "Error signing token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, tokenResponse{Token: tokenStr}, http.StatusOK)
}

// issueToken signs a JWT carrying the registered claim set plus the user's
// name, email and role.
func (h *AuthHandler) issueToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss":   tokenIssuer,
		"sub":   strconv.FormatInt(user.ID, 10),
		"aud":   tokenAudience,
		"exp":   now.Add(h.tokenDuration).Unix(),
		"nbf":   now.Unix(),
		"iat":   now.Unix(),
		"jti":   uuid.NewString(),
		"name":  user.Profile.Name,
		"email": user.Email,
		"role":  string(user.Role),
	})

	return token.SignedString([]byte(h.jwtSecret))
}
