package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tradejournal/src/auth"
	"tradejournal/src/model"
)

type userStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id uint) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
}

// RegisterPayload is the request body for account creation.
type RegisterPayload struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginPayload is the request body for login.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries the bearer token plus the account it belongs to.
type TokenResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

// RegisterHandler creates an account with a bcrypt-hashed password.
func RegisterHandler(users userStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload RegisterPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}

		payload.Email = strings.TrimSpace(strings.ToLower(payload.Email))
		if payload.Email == "" || payload.Password == "" {
			http.Error(w, "email and password are required", http.StatusBadRequest)
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.WithError(err).Error("failed to hash password")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		user := model.User{
			Email:       payload.Email,
			Password:    string(hashed),
			DisplayName: strings.TrimSpace(payload.DisplayName),
		}

		if err := users.Create(r.Context(), &user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				http.Error(w, "email already registered", http.StatusConflict)
				return
			}
			logger.WithError(err).Error("failed to create user")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(user.ToResponse()); err != nil {
			logger.WithError(err).Error("failed to encode register response")
		}
	}
}

// LoginHandler verifies credentials and issues a bearer token.
func LoginHandler(users userStore) http.HandlerFunc {
	config := auth.GetConfig()

	return func(w http.ResponseWriter, r *http.Request) {
		var payload LoginPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}

		payload.Email = strings.TrimSpace(strings.ToLower(payload.Email))
		if payload.Email == "" || payload.Password == "" {
			http.Error(w, "email and password are required", http.StatusBadRequest)
			return
		}

		user, err := users.FindByEmail(r.Context(), payload.Email)
		if err != nil {
			logger.WithError(err).Error("failed to look up user for login")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if user == nil {
			http.Error(w, "invalid email or password", http.StatusUnauthorized)
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)); err != nil {
			http.Error(w, "invalid email or password", http.StatusUnauthorized)
			return
		}

		token, err := auth.IssueToken(user.ID, config.JWTSecret, time.Duration(config.TokenTTL)*time.Hour)
		if err != nil {
			logger.WithError(err).Error("failed to issue token")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(TokenResponse{Token: token, User: user.ToResponse()}); err != nil {
			logger.WithError(err).Error("failed to encode login response")
		}
	}
}

// MeHandler returns the authenticated account.
func MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.GetUserFromContext(r.Context())
		if !ok || user == nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(user.ToResponse()); err != nil {
			logger.WithError(err).Error("failed to encode user response")
		}
	}
}

// UpdateUserHandler applies a partial profile update.
func UpdateUserHandler(users userStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.GetUserFromContext(r.Context())
		if !ok || user == nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var payload model.UpdateUserPayload
		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&payload); err != nil {
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}

		if payload.Email != nil {
			user.Email = strings.TrimSpace(strings.ToLower(*payload.Email))
		}
		if payload.DisplayName != nil {
			user.DisplayName = strings.TrimSpace(*payload.DisplayName)
		}
		if payload.AvatarURL != nil {
			user.AvatarURL = strings.TrimSpace(*payload.AvatarURL)
		}
		if payload.Bio != nil {
			user.Bio = strings.TrimSpace(*payload.Bio)
		}

		if err := users.Update(r.Context(), user); err != nil {
			logger.WithError(err).Error("failed to update user profile")
			http.Error(w, "Unable to update profile", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(user.ToResponse()); err != nil {
			logger.WithError(err).Error("failed to encode user response")
		}
	}
}
