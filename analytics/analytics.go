// Package analytics reduces a template's responses into per-question
// statistics. The reduction is a pure function of the response set and is
// recomputed from scratch on every call.
package analytics

import (
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/ecalder/formlab/codec"
	"github.com/ecalder/formlab/model"
)

// QuestionSummary is one row of the analytics table. Exactly one of the two
// value fields is set, chosen by the question's type; both stay nil when no
// answers exist.
type QuestionSummary struct {
	QuestionID            string   `json:"question_id"`
	QuestionText          string   `json:"question_text"`
	AvgNumericValue       *float64 `json:"avg_numeric_value"`
	MostCommonStringValue *string  `json:"most_common_string_value"`
}

// Aggregate summarizes every question of the template over the given
// responses, which must be ordered by submission time. Answers keyed to
// question ids no longer present in the template are skipped silently.
func Aggregate(t model.Template, responses []model.Response) []QuestionSummary {
	out := make([]QuestionSummary, 0, len(t.Questions))
	for _, q := range t.Questions {
		summary := QuestionSummary{QuestionID: q.ID, QuestionText: q.Prompt}
		if q.Type == model.TypeNumber {
			summary.AvgNumericValue = average(q, responses)
		} else {
			summary.MostCommonStringValue = mostCommon(q, responses)
		}
		out = append(out, summary)
	}
	return out
}

// average is the arithmetic mean of every decoded value that parses as a
// number, or nil when there are none.
func average(q model.Question, responses []model.Response) *float64 {
	var values []float64
	for _, r := range responses {
		encoded, ok := r.Answers[q.ID]
		if !ok {
			continue
		}
		decoded := codec.DecodeAnswer(q, encoded)
		if decoded.Multi {
			continue
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(decoded.Text), 64)
		if err != nil {
			continue
		}
		values = append(values, n)
	}
	if len(values) == 0 {
		return nil
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return nil
	}
	return &mean
}

// mostCommon is the modal decoded value. Each checkbox selection counts as a
// separate occurrence. On a tie the winner is the value that reached the
// leading count most recently in submission order.
func mostCommon(q model.Question, responses []model.Response) *string {
	counts := make(map[string]int)
	var best string
	bestCount := 0
	for _, r := range responses {
		encoded, ok := r.Answers[q.ID]
		if !ok {
			continue
		}
		decoded := codec.DecodeAnswer(q, encoded)

		var occurrences []string
		if decoded.Multi {
			occurrences = decoded.Values
		} else if decoded.Text != "" {
			occurrences = []string{decoded.Text}
		}

		for _, v := range occurrences {
			counts[v]++
			if counts[v] >= bestCount {
				best, bestCount = v, counts[v]
			}
		}
	}
	if bestCount == 0 {
		return nil
	}
	return &best
}
