package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"cardvault/internal/domain/user"
	"cardvault/internal/shared/auth"
	"cardvault/internal/shared/middleware"
)

const minPasswordLength = 6

type AuthHandler struct {
	userRepo user.Repository
	jwt      *auth.JWT
}

func NewAuthHandler(userRepo user.Repository, jwt *auth.JWT) *AuthHandler {
	return &AuthHandler{userRepo: userRepo, jwt: jwt}
}

type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}

// HandleSignup creates a new user account and issues its first token.
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	if len(req.Password) < minPasswordLength {
		writeError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Printf("Error hashing password during signup: %v", err)
		writeError(w, http.StatusInternalServerError, "Signup failed")
		return
	}

	// No pre-check: the store's uniqueness constraint decides, so two racing
	// signups with the same username yield exactly one success.
	u, err := h.userRepo.Create(r.Context(), user.CreateUserParams{
		Username:     req.Username,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, user.ErrUsernameTaken) {
			writeError(w, http.StatusConflict, "Username already exists")
			return
		}
		log.Printf("Error creating user %q: %v", req.Username, err)
		writeError(w, http.StatusInternalServerError, "Signup failed")
		return
	}

	token, err := h.jwt.Generate(u.ID)
	if err != nil {
		log.Printf("Error generating token for new user %s: %v", u.ID, err)
		writeError(w, http.StatusInternalServerError, "Signup failed")
		return
	}

	log.Printf("New user created: %s", u.Username)
	writeJSON(w, http.StatusCreated, AuthResponse{Token: token, User: u})
}

// HandleLogin authenticates a user with username and password. Unknown
// usernames and wrong passwords produce the same response, so the endpoint
// cannot be used to enumerate accounts.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	u, err := h.userRepo.GetByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			writeError(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		log.Printf("Error looking up user %q: %v", req.Username, err)
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	if err := auth.VerifyPassword(u.PasswordHash, req.Password); err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, err := h.jwt.Generate(u.ID)
	if err != nil {
		log.Printf("Error generating token for user %s: %v", u.ID, err)
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	log.Printf("User logged in: %s", u.Username)
	writeJSON(w, http.StatusOK, AuthResponse{Token: token, User: u})
}

// HandleMe returns the authenticated user's public view.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	u, err := h.userRepo.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("Error getting user %s: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "Failed to get user info")
		return
	}

	writeJSON(w, http.StatusOK, map[string]*user.User{"user": u})
}
