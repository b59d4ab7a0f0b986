package main

import (
	"errors"
	"net/http"

	"github.com/quillside/weblog/internal/auth"
	"github.com/quillside/weblog/internal/core"
	"github.com/quillside/weblog/internal/validator"
	"github.com/quillside/weblog/models"
)

// dashboard returns everything the author workspace needs in one response:
// the blog (nil until first saved), published articles and pending drafts.
func (app *application) dashboard(w http.ResponseWriter, r *http.Request) {
	principal, err := auth.GetPrincipal(r)
	if err != nil {
		app.unauthenticatedResponse(w, r)
		return
	}

	var blog *models.Blog
	blog, err = app.core.BlogByUserID(r.Context(), principal.UserID)
	if err != nil {
		if !errors.Is(err, core.ErrNotFound) {
			app.failureResponse(w, r, err)
			return
		}
		blog = nil
	}

	articles, err := app.core.ArticlesByUserID(r.Context(), principal.UserID)
	if err != nil {
		app.failureResponse(w, r, err)
		return
	}

	drafts, err := app.core.DraftsByUserID(r.Context(), principal.UserID)
	if err != nil {
		app.failureResponse(w, r, err)
		return
	}

	response := envelope{
		"blog":     blog,
		"articles": articles,
		"drafts":   drafts,
	}

	if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) updateBlogInfo(w http.ResponseWriter, r *http.Request) {
	principal, err := auth.GetPrincipal(r)
	if err != nil {
		app.unauthenticatedResponse(w, r)
		return
	}

	var input struct {
		Title       string `json:"title"`
		Subtitle    string `json:"subtitle"`
		DisplayName string `json:"displayName"`
	}
	if err := app.readJSON(w, r, &input); err != nil {
		app.badRequestResponse(w, r, &AppError{ErrorMessage: err.Error(), ErrorStack: err})
		return
	}

	v := validator.New()
	v.CheckNotBlank(input.Title, "title", "must be provided")
	v.CheckNotBlank(input.Subtitle, "subtitle", "must be provided")
	v.CheckNotBlank(input.DisplayName, "displayName", "must be provided")
	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{ErrorMessage: "Invalid blog data", ErrorDetails: v.Errors})
		return
	}

	blog, err := app.core.SaveBlogInfo(r.Context(), principal.UserID, input.Title, input.Subtitle, input.DisplayName)
	if err != nil {
		app.failureResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"blog": blog}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) getDraft(w http.ResponseWriter, r *http.Request) {
	principal, err := auth.GetPrincipal(r)
	if err != nil {
		app.unauthenticatedResponse(w, r)
		return
	}

	draftID, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	draft, err := app.core.DraftByID(r.Context(), draftID)
	if err != nil {
		app.failureResponse(w, r, err)
		return
	}

	// Drafts are private to their author: a foreign draft 404s rather than
	// confirming it exists.
	if err := app.checkDraftOwnership(r, principal.UserID, draft.BlogID); err != nil {
		app.notFoundResponse(w, r)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"draft": draft}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) saveEdit(w http.ResponseWriter, r *http.Request) {
	principal, err := auth.GetPrincipal(r)
	if err != nil {
		app.unauthenticatedResponse(w, r)
		return
	}

	var input struct {
		Kind      string `json:"kind"`
		Reference int64  `json:"reference"`
		Title     string `json:"title"`
		Subtitle  string `json:"subtitle"`
		Content   string `json:"content"`
	}
	if err := app.readJSON(w, r, &input); err != nil {
		app.badRequestResponse(w, r, &AppError{ErrorMessage: err.Error(), ErrorStack: err})
		return
	}

	v := validator.New()
	v.CheckNotBlank(input.Title, "title", "must be provided")
	v.CheckNotBlank(input.Content, "content", "must be provided")
	v.Check(input.Kind == core.EditKindArticle || input.Kind == core.EditKindDraft, "kind", "must be 'article' or 'draft'")
	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{ErrorMessage: "Invalid edit data", ErrorDetails: v.Errors})
		return
	}

	err = app.core.SaveEdit(r.Context(), principal.UserID, input.Kind, input.Reference, input.Title, input.Subtitle, input.Content)
	if err != nil {
		app.failureResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"message": "saved"}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) publishDraft(w http.ResponseWriter, r *http.Request) {
	principal, err := auth.GetPrincipal(r)
	if err != nil {
		app.unauthenticatedResponse(w, r)
		return
	}

	draftID, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	article, err := app.core.PublishDraft(r.Context(), draftID, principal.UserID)
	if err != nil {
		app.failureResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusCreated, envelope{"article": article}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) deleteDraft(w http.ResponseWriter, r *http.Request) {
	principal, err := auth.GetPrincipal(r)
	if err != nil {
		app.unauthenticatedResponse(w, r)
		return
	}

	draftID, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	draft, err := app.core.DraftByID(r.Context(), draftID)
	if err != nil {
		app.failureResponse(w, r, err)
		return
	}
	if err := app.checkDraftOwnership(r, principal.UserID, draft.BlogID); err != nil {
		app.notFoundResponse(w, r)
		return
	}

	if err := app.core.DeleteDraft(r.Context(), draftID); err != nil {
		app.failureResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"message": "draft deleted"}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) deleteArticle(w http.ResponseWriter, r *http.Request) {
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

	article, err := app.core.ArticleByID(r.Context(), articleID)
	if err != nil {
		app.failureResponse(w, r, err)
		return
	}

	// Authors may delete only their own articles; admins may delete any.
	if !principal.Role.Meets(auth.RoleAdmin) {
		blog, err := app.core.BlogByUserID(r.Context(), principal.UserID)
		if err != nil || blog.ID != article.BlogID {
			app.forbiddenResponse(w, r)
			return
		}
	}

	if err := app.core.DeleteArticle(r.Context(), articleID); err != nil {
		app.failureResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"message": "article deleted"}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

// checkDraftOwnership verifies the draft's blog belongs to userID.
func (app *application) checkDraftOwnership(r *http.Request, userID, blogID int64) error {
	blog, err := app.core.BlogByUserID(r.Context(), userID)
	if err != nil {
		return err
	}
	if blog.ID != blogID {
		return core.ErrNotFound
	}
	return nil
}
