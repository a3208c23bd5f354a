package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ecalder/formlab/app"
	"github.com/ecalder/formlab/routes/middlewares"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)

	root.Mount("/api", apiRouter(app))
	root.Mount("/", servePublicFiles())

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()

	api.Post("/login", Login(app))
	api.Post("/refresh", Refresh(app))
	api.Post("/register", Register(app))

	api.Get("/templates", ListPublicTemplates(app))

	api.Route("/user", func(r chi.Router) {
		r.Use(middlewares.Authenticated(app.Config))

		// CRUD template
		r.Post("/templates", CreateTemplate(app))
		r.Get("/templates", ListTemplates(app))
		r.Get("/templates/{id}", GetTemplate(app))
		r.Put("/templates/{id}", UpdateTemplate(app))
		r.Delete("/templates/{id}", DeleteTemplate(app))

		// filling flow
		r.Get("/fillForm/{id}", GetFillForm(app))
		r.Post("/submitForm/{id}", SubmitForm(app))

		// owner views over collected responses
		r.Get("/formResponses/{id}", GetFormResponses(app))
		r.Get("/analytics/templates/{id}", GetTemplateAnalytics(app))

		// access control
		r.Get("/access-settings/{id}", GetAccessSettings(app))
		r.Post("/access-settings", SetAccessSetting(app))
		r.Get("/users", ListUsers(app))
	})

	return api
}

func servePublicFiles() http.Handler {
	return http.FileServer(http.Dir("public"))
}
