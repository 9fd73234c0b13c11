package chi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/marcelsud/webhook-vault/auth"
)

type tokenRequest struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

type tokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
}

func postToken(jwtSecret string) handlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		var req tokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return validationError("userId is required and must be a string")
		}
		if req.UserID == "" {
			return validationError("userId is required and must be a string")
		}
		if jwtSecret == "" {
			return internalError("authentication is not configured")
		}

		token, err := auth.Issue(req.UserID, req.Role, jwtSecret, auth.DefaultExpiresIn)
		if err != nil {
			return fmt.Errorf("issuing token: %w", err)
		}

		writeJSON(w, http.StatusOK, tokenResponse{
			Token:     token,
			ExpiresIn: int64(auth.DefaultExpiresIn / time.Second),
		})
		return nil
	}
}

func getMe(jwtSecret string) handlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		header := r.Header.Get("Authorization")
		if header == "" {
			return unauthorizedError("Missing authorization header")
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return unauthorizedError("Invalid authorization header format. Expected: Bearer <token>")
		}
		if jwtSecret == "" {
			return internalError("authentication is not configured")
		}

		payload, err := auth.Validate(parts[1], jwtSecret)
		if err != nil {
			return unauthorizedError("Invalid or expired token")
		}

		writeJSON(w, http.StatusOK, payload)
		return nil
	}
}
