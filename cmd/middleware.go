package main

import (
	"fmt"
	"net/http"

	"github.com/quillside/weblog/internal/auth"
)

const (
	sessionKeyUserID   = "userID"
	sessionKeyUsername = "username"
	sessionKeyRole     = "role"
)

// authenticate attaches the session's principal to the request context. A
// request without a session stays a guest and is admitted nowhere that
// requires a role.
func (app *application) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := app.sessions.GetInt64(r.Context(), sessionKeyUserID)
		if userID != 0 {
			principal := &auth.Principal{
				UserID:   userID,
				Username: app.sessions.GetString(r.Context(), sessionKeyUsername),
				Role:     auth.ParseRole(app.sessions.GetString(r.Context(), sessionKeyRole)),
			}
			r = auth.SetPrincipal(r, principal)
		}

		next.ServeHTTP(w, r)
	})
}

// requireRole admits the caller when its role meets the required level. The
// gate runs before any handler that mutates state.
func (app *application) requireRole(required auth.Role, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, err := auth.GetPrincipal(r)
		if err != nil {
			app.unauthenticatedResponse(w, r)
			return
		}

		if !principal.Role.Meets(required) {
			app.forbiddenResponse(w, r)
			return
		}

		next(w, r)
	}
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.internalErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
