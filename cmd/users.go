package main

import (
	"errors"
	"net/http"

	"github.com/quillside/weblog/internal/auth"
	"github.com/quillside/weblog/internal/core"
	"github.com/quillside/weblog/internal/validator"
)

func (app *application) signup(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username        string `json:"username"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}

	if err := app.readJSON(w, r, &input); err != nil {
		app.badRequestResponse(w, r, &AppError{ErrorMessage: err.Error(), ErrorStack: err})
		return
	}

	v := validator.New()
	v.CheckNotBlank(input.Username, "username", "must be provided")
	v.Check(len(input.Username) >= 4, "username", "must be at least 4 characters long")
	v.CheckNotBlank(input.Email, "email", "must be provided")
	v.CheckEmail(input.Email, "must be a valid email address")
	v.Check(len(input.Password) >= 4, "password", "must be at least 4 characters long")
	v.Check(input.Password == input.ConfirmPassword, "confirmPassword", "must match the password")
	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{ErrorMessage: "Invalid signup data", ErrorDetails: v.Errors})
		return
	}

	// Answer the common case with a friendly conflict before hashing; the
	// unique constraints inside RegisterUser still catch racing sign-ups.
	_, err := app.core.UserByUsernameOrEmail(r.Context(), input.Username, input.Email)
	if err == nil {
		app.errorResponse(w, r, http.StatusConflict, &AppError{
			ErrorMessage: "Username or email is already in use",
		})
		return
	}
	if !errors.Is(err, core.ErrNotFound) {
		app.failureResponse(w, r, err)
		return
	}

	user := &auth.User{
		Username: input.Username,
		Email:    input.Email,
	}
	if err := user.SetPassword(input.Password, app.config.BcryptCost); err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	user, err = app.core.RegisterUser(r.Context(), user)
	if err != nil {
		app.failureResponse(w, r, err)
		return
	}

	if err := app.sessions.RenewToken(r.Context()); err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}
	app.sessions.Put(r.Context(), sessionKeyUserID, user.ID)
	app.sessions.Put(r.Context(), sessionKeyUsername, user.Username)
	app.sessions.Put(r.Context(), sessionKeyRole, user.Role.String())

	if err := app.writeJSON(w, http.StatusCreated, envelope{"user": user}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := app.readJSON(w, r, &input); err != nil {
		app.badRequestResponse(w, r, &AppError{ErrorMessage: err.Error(), ErrorStack: err})
		return
	}

	v := validator.New()
	v.CheckNotBlank(input.Username, "username", "must be provided")
	v.CheckNotBlank(input.Password, "password", "must be provided")
	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{ErrorMessage: "Invalid login data", ErrorDetails: v.Errors})
		return
	}

	user, err := app.core.UserByUsername(r.Context(), input.Username)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			app.invalidCredentialsResponse(w, r, err)
			return
		}
		app.failureResponse(w, r, err)
		return
	}

	match, err := user.IsPasswordMatch(input.Password)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}
	if !match {
		app.invalidCredentialsResponse(w, r, nil)
		return
	}

	if err := app.sessions.RenewToken(r.Context()); err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}
	app.sessions.Put(r.Context(), sessionKeyUserID, user.ID)
	app.sessions.Put(r.Context(), sessionKeyUsername, user.Username)
	app.sessions.Put(r.Context(), sessionKeyRole, user.Role.String())

	if err := app.writeJSON(w, http.StatusOK, envelope{"user": user}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) logout(w http.ResponseWriter, r *http.Request) {
	if err := app.sessions.Destroy(r.Context()); err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"message": "logged out"}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

// deleteAccount removes the caller's own account and ends the session. Blogs,
// drafts, articles, comments and interactions are removed with it.
func (app *application) deleteAccount(w http.ResponseWriter, r *http.Request) {
	principal, err := auth.GetPrincipal(r)
	if err != nil {
		app.unauthenticatedResponse(w, r)
		return
	}

	if err := app.core.DeleteUser(r.Context(), principal.UserID); err != nil {
		app.failureResponse(w, r, err)
		return
	}

	if err := app.sessions.Destroy(r.Context()); err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"message": "account deleted"}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}
