package routes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/gofrs/uuid"

	"github.com/ecalder/formlab/app"
	"github.com/ecalder/formlab/editor"
	"github.com/ecalder/formlab/httpx"
	"github.com/ecalder/formlab/log"
	"github.com/ecalder/formlab/model"
	"github.com/ecalder/formlab/routes/middlewares"
)

func CreateTemplate(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		template := model.Template{}
		err := render.DecodeJSON(r.Body, &template)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		template.OwnerID = middlewares.UserID(r)
		template.Tags = model.NormalizeTags(template.Tags)
		for i := range template.Questions {
			if template.Questions[i].ID == "" {
				template.Questions[i].ID = editor.NewQuestionID()
			}
		}
		if err := model.ValidateTemplate(template); err != nil {
			httpx.LogModelError(w, "create_template.validate", err, nil)
			return
		}

		tx, err := app.BeginTx(r.Context(), nil)
		if err != nil {
			httpx.LogInternalError(w, "db.begin_tx", err)
			return
		}
		defer tx.Rollback()

		templateID := uuid.Must(uuid.NewV4()).String()
		tagsJson, err := json.Marshal(template.Tags)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_template.tags", err)
			return
		}
		_, err = tx.ExecContext(r.Context(), `
			INSERT INTO template (id, owner_id, title, description, topic, image_url, public, tags, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			templateID,
			template.OwnerID,
			template.Title,
			template.Description,
			template.Topic,
			template.ImageURL,
			template.Public,
			string(tagsJson),
			time.Now(),
		)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_template", err)
			return
		}

		err = insertQuestions(r.Context(), tx, templateID, template.Questions)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_template.questions", err)
			return
		}

		err = tx.Commit()
		if err != nil {
			httpx.LogInternalError(w, "db.insert_template.commit", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"id": templateID,
		})
	}
}

func ListTemplates(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middlewares.UserID(r)

		rows, err := app.QueryContext(r.Context(), `
			SELECT id, owner_id, version, title, description, topic, image_url, public, tags
			FROM template
			WHERE owner_id = ?
			ORDER BY created_at`,
			userID,
		)
		if err != nil {
			httpx.LogInternalError(w, "db.get_templates", err)
			return
		}
		defer rows.Close()

		templates, err := scanTemplates(rows)
		if err != nil {
			httpx.LogInternalError(w, "db.get_templates.scan", err)
			return
		}

		render.JSON(w, r, templates)
	}
}

func ListPublicTemplates(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := app.QueryContext(r.Context(), `
			SELECT id, owner_id, version, title, description, topic, image_url, public, tags
			FROM template
			WHERE public = 1
			ORDER BY created_at`)
		if err != nil {
			httpx.LogInternalError(w, "db.get_public_templates", err)
			return
		}
		defer rows.Close()

		templates, err := scanTemplates(rows)
		if err != nil {
			httpx.LogInternalError(w, "db.get_public_templates.scan", err)
			return
		}

		render.JSON(w, r, templates)
	}
}

func GetTemplate(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		templateID := chi.URLParam(r, "id")
		userID := middlewares.UserID(r)

		template, err := fetchTemplate(r.Context(), app.DB, templateID)
		if err != nil {
			httpx.LogModelError(w, "get_template", err, templateID)
			return
		}

		ok, err := canAccess(r.Context(), app.DB, template, userID)
		if err != nil {
			httpx.LogInternalError(w, "db.get_template.access", err)
			return
		}
		if !ok {
			httpx.LogForbidden(w, "get_template", templateID)
			return
		}

		render.JSON(w, r, template)
	}
}

func UpdateTemplate(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		templateID := chi.URLParam(r, "id")
		userID := middlewares.UserID(r)

		template := model.Template{}
		err := render.DecodeJSON(r.Body, &template)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		template.Tags = model.NormalizeTags(template.Tags)
		for i := range template.Questions {
			if template.Questions[i].ID == "" {
				template.Questions[i].ID = editor.NewQuestionID()
			}
		}
		if err := model.ValidateTemplate(template); err != nil {
			httpx.LogModelError(w, "update_template.validate", err, templateID)
			return
		}

		current, err := fetchTemplate(r.Context(), app.DB, templateID)
		if err != nil {
			httpx.LogModelError(w, "update_template", err, templateID)
			return
		}
		if current.OwnerID != userID {
			httpx.LogForbidden(w, "update_template", templateID)
			return
		}

		tx, err := app.BeginTx(r.Context(), nil)
		if err != nil {
			httpx.LogInternalError(w, "db.begin_tx", err)
			return
		}
		defer tx.Rollback()

		// replace all questions wholesale: the incoming sequence is the new
		// order, positions are reassigned from the slice index
		_, err = tx.ExecContext(r.Context(), `
			DELETE FROM question
			WHERE template_id = ?`,
			templateID,
		)
		if err != nil {
			httpx.LogInternalError(w, "db.update_template.delete_questions", err)
			return
		}

		err = insertQuestions(r.Context(), tx, templateID, template.Questions)
		if err != nil {
			httpx.LogInternalError(w, "db.update_template.questions", err)
			return
		}

		tagsJson, err := json.Marshal(template.Tags)
		if err != nil {
			httpx.LogInternalError(w, "db.update_template.tags", err)
			return
		}
		res, err := tx.ExecContext(r.Context(), `
			UPDATE template
			SET
				title = ?,
				description = ?,
				topic = ?,
				image_url = ?,
				public = ?,
				tags = ?,
				version = version+1
			WHERE	id = ?
				AND version = ?`,
			template.Title,
			template.Description,
			template.Topic,
			template.ImageURL,
			template.Public,
			string(tagsJson),
			templateID,
			template.Version,
		)
		if err != nil {
			httpx.LogInternalError(w, "db.update_template", err)
			return
		}
		// optimistic lock
		n, err := res.RowsAffected()
		if err != nil {
			httpx.LogInternalError(w, "db.update_template.verify", err)
			return
		}
		if n < 1 {
			httpx.LogStatus(w, http.StatusConflict, log.DebugLevel, "db.update_template.verify.conflict")
			return
		}

		err = tx.Commit()
		if err != nil {
			httpx.LogInternalError(w, "db.update_template.commit", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func DeleteTemplate(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		templateID := chi.URLParam(r, "id")
		userID := middlewares.UserID(r)

		template, err := fetchTemplate(r.Context(), app.DB, templateID)
		if err != nil {
			httpx.LogModelError(w, "delete_template", err, templateID)
			return
		}
		if template.OwnerID != userID {
			httpx.LogForbidden(w, "delete_template", templateID)
			return
		}

		// questions and access entries go with the template; collected
		// responses are owned by the response store and stay behind
		_, err = app.ExecContext(r.Context(), `
			DELETE FROM template WHERE id = ?`,
			templateID,
		)
		if err != nil {
			httpx.LogInternalError(w, "db.delete_template", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func fetchTemplate(ctx context.Context, db querier, id string) (model.Template, error) {
	t, err := scanTemplate(db.QueryRowContext(ctx, `
		SELECT id, owner_id, version, title, description, topic, image_url, public, tags
		FROM template
		WHERE id = ?`,
		id,
	))
	if err != nil {
		return model.Template{}, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, type, prompt, shown, options
		FROM question
		WHERE template_id = ?
		ORDER BY position`,
		id,
	)
	if err != nil {
		return model.Template{}, err
	}
	defer rows.Close()

	for rows.Next() {
		q := model.Question{}
		var opts string
		err = rows.Scan(&q.ID, &q.Type, &q.Prompt, &q.Shown, &opts)
		if err != nil {
			return model.Template{}, err
		}
		q.Options = parseStoredOptions(opts)
		t.Questions = append(t.Questions, q)
	}
	return t, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTemplate(row rowScanner) (model.Template, error) {
	t := model.Template{}
	var tags string
	err := row.Scan(
		&t.ID, &t.OwnerID, &t.Version, &t.Title, &t.Description,
		&t.Topic, &t.ImageURL, &t.Public, &tags,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Template{}, model.ErrNotFound
	}
	if err != nil {
		return model.Template{}, err
	}
	t.Tags = parseStoredTags(tags)
	return t, nil
}

func scanTemplates(rows *sql.Rows) ([]model.Template, error) {
	templates := []model.Template{}
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// parseStoredTags reads the tags column: a JSON list for current rows, a raw
// comma-separated string for legacy ones.
func parseStoredTags(raw string) model.TagList {
	var tags model.TagList
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		tags = model.NormalizeTags(strings.Split(raw, ","))
	}
	return tags
}

// parseStoredOptions reads the options column with the same dual tolerance.
func parseStoredOptions(raw string) model.OptionList {
	if raw == "" {
		return nil
	}
	var opts model.OptionList
	if err := json.Unmarshal([]byte(raw), &opts); err != nil {
		opts = model.ParseOptionString(raw)
	}
	return opts
}

func insertQuestions(ctx context.Context, tx *sql.Tx, templateID string, questions []model.Question) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO question (id, template_id, position, type, prompt, shown, options)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, q := range questions {
		var optionsJson []byte
		if q.Options != nil {
			optionsJson, err = json.Marshal(q.Options)
			if err != nil {
				return err
			}
		}
		_, err = stmt.ExecContext(ctx, q.ID, templateID, i, q.Type, q.Prompt, q.Shown, string(optionsJson))
		if err != nil {
			return err
		}
	}
	return nil
}

// canAccess applies the access decision: the owner always may, an explicit
// entry decides otherwise, and with no entry the public flag is the default.
func canAccess(ctx context.Context, db querier, t model.Template, userID string) (bool, error) {
	if t.OwnerID == userID {
		return true, nil
	}

	var allowed bool
	err := db.QueryRowContext(ctx, `
		SELECT can_access FROM access_entry
		WHERE template_id = ?
			AND user_id = ?`,
		t.ID,
		userID,
	).Scan(&allowed)
	if errors.Is(err, sql.ErrNoRows) {
		return t.Public, nil
	}
	if err != nil {
		return false, err
	}
	return allowed, nil
}
