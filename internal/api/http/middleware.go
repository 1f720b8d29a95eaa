package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/mudgalz/foodie-be/internal/service"
)

type contextKey string

const (
	subjectKey contextKey = "subject"
	userIDKey  contextKey = "userID"
)

func subjectFrom(ctx context.Context) string {
	subject, _ := ctx.Value(subjectKey).(string)
	return subject
}

func userIDFrom(ctx context.Context) int {
	id, _ := ctx.Value(userIDKey).(int)
	return id
}

// authenticated verifies the bearer credential and stores the identity
// subject. It does not require an account to exist yet.
func (h *Handler) authenticated(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "Token not found")
			return
		}

		subject, err := h.Tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Token not valid")
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), subjectKey, subject)))
	}
}

// withAccount additionally resolves the subject to an internal account.
func (h *Handler) withAccount(next http.HandlerFunc) http.HandlerFunc {
	return h.authenticated(func(w http.ResponseWriter, r *http.Request) {
		user, err := h.Users.GetByAuth0ID(r.Context(), subjectFrom(r.Context()))
		if err != nil {
			if errors.Is(err, service.ErrUserNotFound) {
				writeError(w, http.StatusUnauthorized, "User not found")
				return
			}
			h.serverError(w, "resolve account", err)
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), userIDKey, user.ID)))
	})
}
