package main

import (
	"net/http"
)

// accounts lists every account grouped by role for the admin console.
func (app *application) accounts(w http.ResponseWriter, r *http.Request) {
	admins, err := app.core.Admins(r.Context())
	if err != nil {
		app.failureResponse(w, r, err)
		return
	}

	authors, err := app.core.Authors(r.Context())
	if err != nil {
		app.failureResponse(w, r, err)
		return
	}

	users, err := app.core.Users(r.Context())
	if err != nil {
		app.failureResponse(w, r, err)
		return
	}

	response := envelope{
		"admins":  admins,
		"authors": authors,
		"users":   users,
	}

	if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) promoteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	if err := app.core.PromoteToAuthor(r.Context(), userID); err != nil {
		app.failureResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"message": "user promoted to author"}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) adminDeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	if err := app.core.DeleteUser(r.Context(), userID); err != nil {
		app.failureResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"message": "user deleted"}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) adminDeleteComment(w http.ResponseWriter, r *http.Request) {
	commentID, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	if err := app.core.DeleteComment(r.Context(), commentID); err != nil {
		app.failureResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"message": "comment deleted"}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}
