package routes

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/ecalder/formlab/analytics"
	"github.com/ecalder/formlab/app"
	"github.com/ecalder/formlab/httpx"
	"github.com/ecalder/formlab/model"
	"github.com/ecalder/formlab/routes/middlewares"
)

func GetFormResponses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		templateID := chi.URLParam(r, "id")
		userID := middlewares.UserID(r)

		template, err := fetchTemplate(r.Context(), app.DB, templateID)
		if err != nil {
			httpx.LogModelError(w, "get_responses", err, templateID)
			return
		}
		if template.OwnerID != userID {
			httpx.LogForbidden(w, "get_responses", templateID)
			return
		}

		responses, err := fetchResponses(r.Context(), app.DB, templateID)
		if err != nil {
			httpx.LogInternalError(w, "db.get_responses", err)
			return
		}

		render.JSON(w, r, responses)
	}
}

func GetTemplateAnalytics(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		templateID := chi.URLParam(r, "id")
		userID := middlewares.UserID(r)

		template, err := fetchTemplate(r.Context(), app.DB, templateID)
		if err != nil {
			httpx.LogModelError(w, "get_analytics", err, templateID)
			return
		}
		if template.OwnerID != userID {
			httpx.LogForbidden(w, "get_analytics", templateID)
			return
		}

		responses, err := fetchResponses(r.Context(), app.DB, templateID)
		if err != nil {
			httpx.LogInternalError(w, "db.get_analytics", err)
			return
		}

		render.JSON(w, r, analytics.Aggregate(template, responses))
	}
}

// fetchResponses loads a template's responses in submission order, the order
// the aggregation's tie-break contract is defined on.
func fetchResponses(ctx context.Context, db querier, templateID string) ([]model.Response, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT r.id, r.user_id, r.submitted_at, a.question_id, a.value
		FROM response r
		LEFT OUTER JOIN response_answer a ON (r.id = a.response_id)
		WHERE r.template_id = ?
		ORDER BY r.submitted_at, r.id`,
		templateID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := []model.Response{}
	for rows.Next() {
		var (
			resp       model.Response
			questionID *string
			value      *string
		)
		err = rows.Scan(&resp.ID, &resp.UserID, &resp.SubmittedAt, &questionID, &value)
		if err != nil {
			return nil, err
		}

		lastIdx := len(responses) - 1
		if lastIdx < 0 || responses[lastIdx].ID != resp.ID {
			resp.TemplateID = templateID
			resp.Answers = map[string]model.Answer{}
			responses = append(responses, resp)
			lastIdx++
		}

		if questionID == nil || value == nil {
			// response without answers
			continue
		}
		var answer model.Answer
		if err := json.Unmarshal([]byte(*value), &answer); err != nil {
			return nil, err
		}
		responses[lastIdx].Answers[*questionID] = answer
	}
	return responses, rows.Err()
}
