package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/hongminglow/task-tracker/internal/auth"
	"github.com/hongminglow/task-tracker/internal/config"
	"github.com/hongminglow/task-tracker/internal/http/respond"
	"github.com/hongminglow/task-tracker/internal/models"
	"github.com/hongminglow/task-tracker/internal/models/dto"
	"github.com/hongminglow/task-tracker/internal/storage"
)

const minPasswordLength = 6

// AuthHandler owns signup, login and profile endpoints.
type AuthHandler struct {
	store  storage.UserStore
	tokens *auth.TokenManager
	cfg    *config.Config
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(store storage.UserStore, tokens *auth.TokenManager, cfg *config.Config) *AuthHandler {
	return &AuthHandler{store: store, tokens: tokens, cfg: cfg}
}

// Register attaches auth routes to the router. requireAuth guards the
// profile and token verification endpoints.
func (h *AuthHandler) Register(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/signup", h.handleSignup)
		r.Post("/login", h.handleLogin)
		r.Post("/logout", h.handleLogout)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/profile", h.handleProfile)
			r.Put("/profile", h.handleUpdateProfile)
			r.Get("/verify-token", h.handleVerifyToken)
		})
	})
}

func (h *AuthHandler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" || strings.TrimSpace(req.Role) == "" {
		respond.Error(w, http.StatusBadRequest, "email, password and role are required")
		return
	}
	if err := validatePassword(req.Password); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	// The admin key travels and is compared in plaintext.
	role := models.NormalizeRole(strings.TrimSpace(req.Role))
	if role == models.RoleAdmin && signupSecret(req) != h.cfg.AdminKey {
		respond.Error(w, http.StatusConflict, "invalid secret key")
		return
	}

	if _, err := h.store.FindByEmail(r.Context(), email); err == nil {
		respond.Error(w, http.StatusConflict, "Email already exists")
		return
	} else if !errors.Is(err, storage.ErrNotFound) {
		log.Printf("signup: lookup %s: %v", email, err)
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.cfg.BcryptCost)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	created, err := h.store.CreateUser(r.Context(), models.User{
		Email:        email,
		Role:         role,
		PasswordHash: string(passwordHash),
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrAlreadyExists):
			respond.Error(w, http.StatusConflict, "Email already exists")
		default:
			log.Printf("create user error: %v", err)
			respond.Error(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	token, err := h.tokens.Issue(created)
	if err != nil {
		log.Printf("signup: issue token: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	respond.JSON(w, http.StatusCreated, dto.AuthResponse{Message: "User created successfully", User: created, Token: token})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.store.FindByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		log.Printf("login failed: error fetching user %s: %v", email, err)
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respond.Error(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		log.Printf("login: issue token: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	respond.JSON(w, http.StatusOK, dto.AuthResponse{Message: "Logged in successfully", User: user, Token: token})
}

func (h *AuthHandler) handleProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	respond.JSON(w, http.StatusOK, dto.ProfileResponse{User: caller.User})
}

// handleUpdateProfile only honours the fields in dto.UpdateProfileRequest;
// role and password cannot be changed here.
func (h *AuthHandler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	var req dto.UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user := caller.User
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email == "" {
			respond.Error(w, http.StatusBadRequest, "email cannot be empty")
			return
		}
		updated, err := h.store.UpdateEmail(r.Context(), caller.User.ID, email)
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrAlreadyExists):
				respond.Error(w, http.StatusConflict, "Email already exists")
			case errors.Is(err, storage.ErrNotFound):
				respond.Error(w, http.StatusUnauthorized, "User not found")
			default:
				log.Printf("update profile %s: %v", caller.User.ID, err)
				respond.Error(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}
		user = updated
	}
	respond.JSON(w, http.StatusOK, dto.ProfileResponse{Message: "Profile updated successfully", User: user})
}

// handleLogout is stateless; clients discard their token.
func (h *AuthHandler) handleLogout(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, dto.MessageResponse{Message: "Logged out successfully"})
}

func (h *AuthHandler) handleVerifyToken(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	respond.JSON(w, http.StatusOK, dto.VerifyTokenResponse{Valid: true, User: caller.User, TokenData: caller.Claims})
}

func signupSecret(req dto.SignupRequest) string {
	if req.SecretKey != "" {
		return req.SecretKey
	}
	return req.LegacySecretKey
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validatePassword(password string) error {
	if !utf8.ValidString(password) || utf8.RuneCountInString(password) < minPasswordLength {
		return errors.New("password must be at least 6 characters")
	}
	return nil
}
