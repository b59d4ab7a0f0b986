package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/quillside/weblog/internal/auth"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundResponse)

	// Public surface
	router.HandlerFunc(http.MethodPost, "/api/users/signup", app.signup)
	router.HandlerFunc(http.MethodPost, "/api/users/login", app.login)
	router.HandlerFunc(http.MethodPost, "/api/users/logout", app.logout)
	router.HandlerFunc(http.MethodDelete, "/api/user", app.requireRole(auth.RoleUser, app.deleteAccount))
	router.HandlerFunc(http.MethodGet, "/api/home", app.home)
	router.HandlerFunc(http.MethodGet, "/api/articles/:id", app.getArticle)
	router.HandlerFunc(http.MethodPost, "/api/articles/:id/like", app.requireRole(auth.RoleUser, app.likeArticle))
	router.HandlerFunc(http.MethodPost, "/api/articles/:id/comments", app.requireRole(auth.RoleUser, app.createComment))

	// Author surface
	router.HandlerFunc(http.MethodGet, "/api/author/dashboard", app.requireRole(auth.RoleAuthor, app.dashboard))
	router.HandlerFunc(http.MethodPut, "/api/author/blog", app.requireRole(auth.RoleAuthor, app.updateBlogInfo))
	router.HandlerFunc(http.MethodGet, "/api/author/drafts/:id", app.requireRole(auth.RoleAuthor, app.getDraft))
	router.HandlerFunc(http.MethodPost, "/api/author/edit", app.requireRole(auth.RoleAuthor, app.saveEdit))
	router.HandlerFunc(http.MethodPost, "/api/author/drafts/:id/publish", app.requireRole(auth.RoleAuthor, app.publishDraft))
	router.HandlerFunc(http.MethodDelete, "/api/author/drafts/:id", app.requireRole(auth.RoleAuthor, app.deleteDraft))
	router.HandlerFunc(http.MethodDelete, "/api/author/articles/:id", app.requireRole(auth.RoleAuthor, app.deleteArticle))

	// Admin surface
	router.HandlerFunc(http.MethodGet, "/api/admin/accounts", app.requireRole(auth.RoleAdmin, app.accounts))
	router.HandlerFunc(http.MethodPost, "/api/admin/users/:id/promote", app.requireRole(auth.RoleAdmin, app.promoteUser))
	router.HandlerFunc(http.MethodDelete, "/api/admin/users/:id", app.requireRole(auth.RoleAdmin, app.adminDeleteUser))
	router.HandlerFunc(http.MethodDelete, "/api/admin/comments/:id", app.requireRole(auth.RoleAdmin, app.adminDeleteComment))

	return app.recoverPanic(app.sessions.LoadAndSave(app.authenticate(router)))
}
