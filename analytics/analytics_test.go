package analytics

import (
	"strconv"
	"testing"
	"time"

	"github.com/ecalder/formlab/model"
)

func responseAt(i int, answers map[string]model.Answer) model.Response {
	return model.Response{
		ID:          "r" + strconv.Itoa(i),
		TemplateID:  "tpl",
		SubmittedAt: time.Date(2024, 3, 1, 12, 0, i, 0, time.UTC),
		Answers:     answers,
	}
}

func TestNumericAverage(t *testing.T) {
	tpl := model.Template{
		ID:    "tpl",
		Title: "Ages",
		Questions: []model.Question{
			{ID: "age", Type: model.TypeNumber, Prompt: "Your age", Shown: true},
		},
	}
	responses := []model.Response{
		responseAt(1, map[string]model.Answer{"age": model.TextAnswer("2")}),
		responseAt(2, map[string]model.Answer{"age": model.TextAnswer("4")}),
		responseAt(3, map[string]model.Answer{"age": model.TextAnswer("6")}),
	}

	rows := Aggregate(tpl, responses)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row.QuestionText != "Your age" {
		t.Errorf("question text = %q", row.QuestionText)
	}
	if row.AvgNumericValue == nil || *row.AvgNumericValue != 4 {
		t.Errorf("average = %v, want 4", row.AvgNumericValue)
	}
	if row.MostCommonStringValue != nil {
		t.Errorf("number question should have no modal value, got %v", *row.MostCommonStringValue)
	}
}

func TestNumericAverageNoResponses(t *testing.T) {
	tpl := model.Template{
		ID:    "tpl",
		Title: "Ages",
		Questions: []model.Question{
			{ID: "age", Type: model.TypeNumber, Prompt: "Your age", Shown: true},
		},
	}

	rows := Aggregate(tpl, nil)
	if rows[0].AvgNumericValue != nil {
		t.Errorf("average without responses = %v, want nil", *rows[0].AvgNumericValue)
	}

	// a response that skipped the question must not count either
	rows = Aggregate(tpl, []model.Response{responseAt(1, map[string]model.Answer{})})
	if rows[0].AvgNumericValue != nil {
		t.Errorf("average without answers = %v, want nil", *rows[0].AvgNumericValue)
	}
}

func TestModalTieBreak(t *testing.T) {
	tpl := model.Template{
		ID:    "tpl",
		Title: "Colors",
		Questions: []model.Question{
			{ID: "color", Type: model.TypeRadio, Prompt: "Pick one", Shown: true, Options: model.OptionList{
				{Label: "A", Value: "A"},
				{Label: "B", Value: "B"},
			}},
		},
	}
	// submitted in order B, A, B, A: both occur twice, A wins the tie
	responses := []model.Response{
		responseAt(1, map[string]model.Answer{"color": model.TextAnswer("B")}),
		responseAt(2, map[string]model.Answer{"color": model.TextAnswer("A")}),
		responseAt(3, map[string]model.Answer{"color": model.TextAnswer("B")}),
		responseAt(4, map[string]model.Answer{"color": model.TextAnswer("A")}),
	}

	rows := Aggregate(tpl, responses)
	if rows[0].MostCommonStringValue == nil || *rows[0].MostCommonStringValue != "A" {
		t.Errorf("modal value = %v, want A", rows[0].MostCommonStringValue)
	}
}

func TestModalCountsLabelsAndCheckboxOccurrences(t *testing.T) {
	tpl := model.Template{
		ID:    "tpl",
		Title: "Fruit",
		Questions: []model.Question{
			{ID: "fruit", Type: model.TypeCheckbox, Prompt: "Pick many", Shown: true, Options: model.OptionList{
				{Label: "Apples", Value: "a"},
				{Label: "Bananas", Value: "b"},
			}},
		},
	}
	// each selection counts on its own, and counting happens over labels
	responses := []model.Response{
		responseAt(1, map[string]model.Answer{"fruit": model.MultiAnswer("a", "b")}),
		responseAt(2, map[string]model.Answer{"fruit": model.MultiAnswer("b")}),
		responseAt(3, map[string]model.Answer{"fruit": model.MultiAnswer()}),
	}

	rows := Aggregate(tpl, responses)
	if rows[0].MostCommonStringValue == nil || *rows[0].MostCommonStringValue != "Bananas" {
		t.Errorf("modal value = %v, want Bananas", rows[0].MostCommonStringValue)
	}
}

func TestModalNoValues(t *testing.T) {
	tpl := model.Template{
		ID:    "tpl",
		Title: "Empty",
		Questions: []model.Question{
			{ID: "q", Type: model.TypeText, Prompt: "Anything", Shown: true},
		},
	}
	rows := Aggregate(tpl, nil)
	if rows[0].MostCommonStringValue != nil {
		t.Errorf("modal value without responses = %v, want nil", *rows[0].MostCommonStringValue)
	}
}

func TestOrphanedAnswersSkipped(t *testing.T) {
	tpl := model.Template{
		ID:    "tpl",
		Title: "Edited",
		Questions: []model.Question{
			{ID: "kept", Type: model.TypeText, Prompt: "Still here", Shown: true},
		},
	}
	// "deleted" was removed from the template after these responses came in
	responses := []model.Response{
		responseAt(1, map[string]model.Answer{
			"kept":    model.TextAnswer("hello"),
			"deleted": model.TextAnswer("ghost"),
		}),
		responseAt(2, map[string]model.Answer{
			"deleted": model.MultiAnswer("x", "y"),
		}),
	}

	rows := Aggregate(tpl, responses)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].QuestionID != "kept" {
		t.Errorf("row for %q, want kept", rows[0].QuestionID)
	}
	if rows[0].MostCommonStringValue == nil || *rows[0].MostCommonStringValue != "hello" {
		t.Errorf("modal value = %v, want hello", rows[0].MostCommonStringValue)
	}
}
