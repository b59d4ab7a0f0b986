package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/quillside/weblog/internal/auth"
	"github.com/quillside/weblog/internal/core"
	"github.com/quillside/weblog/models"
)

// home serves the public feed. Authors and admins additionally get their own
// blog so the client can route them to their dashboard.
func (app *application) home(w http.ResponseWriter, r *http.Request) {
	feed, err := app.core.BlogsWithArticles(r.Context())
	if err != nil {
		app.failureResponse(w, r, err)
		return
	}

	response := envelope{"blogs": feed}

	if principal, err := auth.GetPrincipal(r); err == nil && principal.Role.Meets(auth.RoleAuthor) {
		blog, err := app.core.BlogByUserID(r.Context(), principal.UserID)
		switch {
		case err == nil:
			response["ownBlog"] = blog
		case errors.Is(err, core.ErrNotFound):
			// An author without a blog yet is fine.
		default:
			app.failureResponse(w, r, err)
			return
		}
	}

	if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) getArticle(w http.ResponseWriter, r *http.Request) {
	articleID, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	article, err := app.core.ArticleByID(r.Context(), articleID)
	if err != nil {
		app.failureResponse(w, r, err)
		return
	}

	comments, err := app.core.CommentsByArticleID(r.Context(), articleID)
	if err != nil {
		app.failureResponse(w, r, err)
		return
	}

	interaction := &models.Interaction{ArticleID: articleID}
	if principal, err := auth.GetPrincipal(r); err == nil {
		interaction, err = app.core.InteractionFor(r.Context(), principal.UserID, articleID)
		if err != nil {
			app.failureResponse(w, r, err)
			return
		}

		// Recording the view must not delay the response. The request
		// context dies with the response, so the task carries its own.
		userID := principal.UserID
		app.doInBackground(func() {
			if err := app.core.AddView(context.Background(), articleID, userID); err != nil {
				app.logger.Error("recording view failed", "article_id", articleID, "user_id", userID, "error", err.Error())
			}
		})
	}

	response := envelope{
		"article":     article,
		"comments":    comments,
		"interaction": interaction,
	}

	if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}
