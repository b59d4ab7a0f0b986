package main

import (
	"net/http"

	"github.com/quillside/weblog/internal/auth"
)

// likeArticle toggles the caller's like and responds with the new state plus
// the article's current like total.
func (app *application) likeArticle(w http.ResponseWriter, r *http.Request) {
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

	liked, err := app.core.ToggleLike(r.Context(), articleID, principal.UserID)
	if err != nil {
		app.failureResponse(w, r, err)
		return
	}

	likes, _, err := app.core.InteractionCounts(r.Context(), articleID)
	if err != nil {
		app.failureResponse(w, r, err)
		return
	}

	response := envelope{
		"liked": liked,
		"likes": likes,
	}

	if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}
