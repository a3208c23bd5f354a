package routes

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/gofrs/uuid"

	"github.com/ecalder/formlab/app"
	"github.com/ecalder/formlab/codec"
	"github.com/ecalder/formlab/httpx"
	"github.com/ecalder/formlab/log"
	"github.com/ecalder/formlab/model"
	"github.com/ecalder/formlab/routes/middlewares"
)

// GetFillForm serves the template as fillers see it: hidden questions are
// filtered out of the definition before rendering.
func GetFillForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		templateID := chi.URLParam(r, "id")
		userID := middlewares.UserID(r)

		template, err := fetchTemplate(r.Context(), app.DB, templateID)
		if err != nil {
			httpx.LogModelError(w, "get_fill_form", err, templateID)
			return
		}

		ok, err := canAccess(r.Context(), app.DB, template, userID)
		if err != nil {
			httpx.LogInternalError(w, "db.get_fill_form.access", err)
			return
		}
		if !ok {
			httpx.LogForbidden(w, "get_fill_form", templateID)
			return
		}

		shown := make([]model.Question, 0, len(template.Questions))
		for _, q := range template.Questions {
			if q.Shown {
				shown = append(shown, q)
			}
		}
		template.Questions = shown

		render.JSON(w, r, template)
	}
}

type submission struct {
	Responses map[string]model.Answer `json:"responses"`
}

func SubmitForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		templateID := chi.URLParam(r, "id")
		userID := middlewares.UserID(r)

		var sub submission
		err := render.DecodeJSON(r.Body, &sub)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		template, err := fetchTemplate(r.Context(), app.DB, templateID)
		if err != nil {
			httpx.LogModelError(w, "submit_form", err, templateID)
			return
		}

		ok, err := canAccess(r.Context(), app.DB, template, userID)
		if err != nil {
			httpx.LogInternalError(w, "db.submit_form.access", err)
			return
		}
		if !ok {
			httpx.LogForbidden(w, "submit_form", templateID)
			return
		}

		// every answer must encode before anything is written: one invalid
		// answer rejects the whole submission. Keys that match no currently
		// shown question are dropped.
		encoded := make(map[string]model.Answer, len(sub.Responses))
		for _, q := range template.Questions {
			if !q.Shown {
				continue
			}
			raw, answered := sub.Responses[q.ID]
			if !answered {
				continue
			}
			answer, err := codec.EncodeAnswer(q, raw)
			if err != nil {
				httpx.LogModelError(w, "submit_form.encode", err, q.ID)
				return
			}
			encoded[q.ID] = answer
		}

		tx, err := app.BeginTx(r.Context(), nil)
		if err != nil {
			httpx.LogInternalError(w, "db.begin_tx", err)
			return
		}
		defer tx.Rollback()

		responseID := uuid.Must(uuid.NewV4()).String()
		_, err = tx.ExecContext(r.Context(), `
			INSERT INTO response (id, template_id, user_id, submitted_at)
			VALUES (?, ?, ?, ?)`,
			responseID,
			templateID,
			userID,
			time.Now(),
		)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_response", err)
			return
		}

		stmt, err := tx.PrepareContext(r.Context(), `
			INSERT INTO response_answer (response_id, question_id, value)
			VALUES (?, ?, ?)`)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_response.answers.prepare", err)
			return
		}
		defer stmt.Close()

		for questionID, answer := range encoded {
			valueJson, err := json.Marshal(answer)
			if err != nil {
				httpx.LogInternalError(w, "db.insert_response.answers.encode", err)
				return
			}
			_, err = stmt.ExecContext(r.Context(), responseID, questionID, string(valueJson))
			if err != nil {
				httpx.LogInternalError(w, "db.insert_response.answers.insert", err)
				return
			}
		}

		err = tx.Commit()
		if err != nil {
			httpx.LogInternalError(w, "db.insert_response.commit", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"id": responseID,
		})
	}
}
