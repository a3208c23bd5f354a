package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/ecalder/formlab/app"
	"github.com/ecalder/formlab/httpx"
	"github.com/ecalder/formlab/log"
	"github.com/ecalder/formlab/model"
	"github.com/ecalder/formlab/routes/middlewares"
)

func GetAccessSettings(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		templateID := chi.URLParam(r, "id")
		userID := middlewares.UserID(r)

		template, err := fetchTemplate(r.Context(), app.DB, templateID)
		if err != nil {
			httpx.LogModelError(w, "get_access_settings", err, templateID)
			return
		}
		if template.OwnerID != userID {
			httpx.LogForbidden(w, "get_access_settings", templateID)
			return
		}

		rows, err := app.QueryContext(r.Context(), `
			SELECT user_id, can_access FROM access_entry
			WHERE template_id = ?`,
			templateID,
		)
		if err != nil {
			httpx.LogInternalError(w, "db.get_access_settings", err)
			return
		}
		defer rows.Close()

		entries := []model.AccessEntry{}
		for rows.Next() {
			entry := model.AccessEntry{TemplateID: templateID}
			err = rows.Scan(&entry.UserID, &entry.CanAccess)
			if err != nil {
				httpx.LogInternalError(w, "db.get_access_settings.scan", err)
				return
			}
			entries = append(entries, entry)
		}

		render.JSON(w, r, entries)
	}
}

type accessUpdate struct {
	TemplateID string `json:"templateId"`
	UserID     string `json:"userId"`
	CanAccess  bool   `json:"canAccess"`
}

func SetAccessSetting(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middlewares.UserID(r)

		var update accessUpdate
		err := render.DecodeJSON(r.Body, &update)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		template, err := fetchTemplate(r.Context(), app.DB, update.TemplateID)
		if err != nil {
			httpx.LogModelError(w, "set_access_setting", err, update.TemplateID)
			return
		}
		if template.OwnerID != userID {
			httpx.LogForbidden(w, "set_access_setting", update.TemplateID)
			return
		}

		// one decision per (template, user): an existing entry is replaced
		_, err = app.ExecContext(r.Context(), `
			INSERT INTO access_entry (template_id, user_id, can_access)
			VALUES (?, ?, ?)
			ON CONFLICT (template_id, user_id)
			DO UPDATE SET can_access = excluded.can_access`,
			update.TemplateID,
			update.UserID,
			update.CanAccess,
		)
		if err != nil {
			httpx.LogInternalError(w, "db.set_access_setting", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func ListUsers(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := app.QueryContext(r.Context(), `
			SELECT id, username FROM user
			ORDER BY username`)
		if err != nil {
			httpx.LogInternalError(w, "db.get_users", err)
			return
		}
		defer rows.Close()

		users := []model.User{}
		for rows.Next() {
			u := model.User{}
			err = rows.Scan(&u.ID, &u.Username)
			if err != nil {
				httpx.LogInternalError(w, "db.get_users.scan", err)
				return
			}
			users = append(users, u)
		}

		render.JSON(w, r, users)
	}
}
