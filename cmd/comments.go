package main

import (
	"net/http"

	"github.com/quillside/weblog/internal/auth"
	"github.com/quillside/weblog/internal/validator"
)

const maxCommentLength = 500

func (app *application) createComment(w http.ResponseWriter, r *http.Request) {
	principal, err := auth.GetPrincipal(r)
	if err != nil {
		app.unauthenticatedResponse(w, r)
		return
	}

	articleID, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	var input struct {
		Content string `json:"content"`
	}
	if err := app.readJSON(w, r, &input); err != nil {
		app.badRequestResponse(w, r, &AppError{ErrorMessage: err.Error(), ErrorStack: err})
		return
	}

	v := validator.New()
	v.CheckNotBlank(input.Content, "content", "must be provided")
	v.Check(len(input.Content) <= maxCommentLength, "content", "must not be longer than 500 characters")
	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{ErrorMessage: "Invalid comment", ErrorDetails: v.Errors})
		return
	}

	// Commenting on a missing article must 404, not violate a foreign key.
	if _, err := app.core.ArticleByID(r.Context(), articleID); err != nil {
		app.failureResponse(w, r, err)
		return
	}

	comment, err := app.core.AddComment(r.Context(), articleID, principal.UserID, input.Content)
	if err != nil {
		app.failureResponse(w, r, err)
		return
	}
	comment.Username = principal.Username

	if err := app.writeJSON(w, http.StatusCreated, envelope{"comment": comment}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}
