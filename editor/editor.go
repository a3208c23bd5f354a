// Package editor holds the in-memory mutation operations of the template
// editor. Every operation is a pure transformation: it deep-copies the input
// template and returns a new one, leaving the argument untouched. The caller
// owns the current value and installs each result wholesale, so no consumer
// ever observes a half-updated question list.
package editor

import (
	"github.com/gofrs/uuid"

	"github.com/ecalder/formlab/model"
)

func clone(t model.Template) model.Template {
	out := t
	out.Tags = append(model.TagList(nil), t.Tags...)
	out.Questions = make([]model.Question, len(t.Questions))
	for i, q := range t.Questions {
		q.Options = append(model.OptionList(nil), q.Options...)
		out.Questions[i] = q
	}
	return out
}

// NewQuestionID mints a fresh question identity. Ids are stable across every
// later edit: they key a question to its answers.
func NewQuestionID() string {
	return uuid.Must(uuid.NewV4()).String()
}

// AddQuestion appends a new question with defaults: single-line text, empty
// prompt, shown to fillers, no options.
func AddQuestion(t model.Template) model.Template {
	out := clone(t)
	out.Questions = append(out.Questions, model.Question{
		ID:    NewQuestionID(),
		Type:  model.TypeText,
		Shown: true,
	})
	return out
}

// DeleteQuestion removes the question with the given id. All other questions
// keep their relative order and identities.
func DeleteQuestion(t model.Template, questionID string) (model.Template, error) {
	out := clone(t)
	_, i, ok := out.Question(questionID)
	if !ok {
		return t, model.ErrNotFound
	}
	out.Questions = append(out.Questions[:i], out.Questions[i+1:]...)
	return out, nil
}

// ReorderQuestions removes the question at from and reinserts it at to. The
// destination is checked against the post-removal length: moving to a
// position that does not exist once the source is taken out is rejected, not
// clamped. The moved question keeps its identity and content.
func ReorderQuestions(t model.Template, from, to int) (model.Template, error) {
	if from < 0 || from >= len(t.Questions) {
		return t, model.Invalid("invalid-index", "no question at index %d", from)
	}

	out := clone(t)
	moved := out.Questions[from]
	rest := append(out.Questions[:from], out.Questions[from+1:]...)
	if to < 0 || to >= len(rest) {
		return t, model.Invalid("invalid-index", "cannot move to index %d", to)
	}

	qs := make([]model.Question, 0, len(rest)+1)
	qs = append(qs, rest[:to]...)
	qs = append(qs, moved)
	qs = append(qs, rest[to:]...)
	out.Questions = qs
	return out, nil
}

// ChangeQuestionType switches a question to a new type. Entering a choice
// type starts from an empty option list unless options already exist; leaving
// a choice type discards the options for good.
func ChangeQuestionType(t model.Template, questionID string, newType model.QuestionType) (model.Template, error) {
	if !newType.Valid() {
		return t, model.Invalid("bad-type", "unknown question type %q", newType)
	}

	out := clone(t)
	_, i, ok := out.Question(questionID)
	if !ok {
		return t, model.ErrNotFound
	}

	q := &out.Questions[i]
	q.Type = newType
	if newType.HasOptions() {
		if q.Options == nil {
			q.Options = model.OptionList{}
		}
	} else {
		q.Options = nil
	}
	return out, nil
}

// EditPrompt replaces a question's prompt text.
func EditPrompt(t model.Template, questionID, prompt string) (model.Template, error) {
	out := clone(t)
	_, i, ok := out.Question(questionID)
	if !ok {
		return t, model.ErrNotFound
	}
	out.Questions[i].Prompt = prompt
	return out, nil
}

// ShowQuestion flips whether the question appears to fillers. A hidden
// question stays in the template definition and keeps its recorded answers.
func ShowQuestion(t model.Template, questionID string, shown bool) (model.Template, error) {
	out := clone(t)
	_, i, ok := out.Question(questionID)
	if !ok {
		return t, model.ErrNotFound
	}
	out.Questions[i].Shown = shown
	return out, nil
}

func choiceQuestion(t model.Template, questionID string) (int, error) {
	q, i, ok := t.Question(questionID)
	if !ok {
		return -1, model.ErrNotFound
	}
	if !q.Type.HasOptions() {
		return -1, model.Invalid("unexpected-options", "%s questions take no options", q.Type)
	}
	return i, nil
}

// AddOption appends a blank option to a checkbox/radio question.
func AddOption(t model.Template, questionID string) (model.Template, error) {
	out := clone(t)
	i, err := choiceQuestion(out, questionID)
	if err != nil {
		return t, err
	}
	out.Questions[i].Options = append(out.Questions[i].Options, model.Option{})
	return out, nil
}

// DeleteOption removes the option at the given index.
func DeleteOption(t model.Template, questionID string, optionIndex int) (model.Template, error) {
	out := clone(t)
	i, err := choiceQuestion(out, questionID)
	if err != nil {
		return t, err
	}
	opts := out.Questions[i].Options
	if optionIndex < 0 || optionIndex >= len(opts) {
		return t, model.Invalid("invalid-index", "no option at index %d", optionIndex)
	}
	out.Questions[i].Options = append(opts[:optionIndex], opts[optionIndex+1:]...)
	return out, nil
}

// EditOption sets the option's label, keeping its value in lockstep: once an
// option goes through the editor there is no independent value override.
func EditOption(t model.Template, questionID string, optionIndex int, label string) (model.Template, error) {
	out := clone(t)
	i, err := choiceQuestion(out, questionID)
	if err != nil {
		return t, err
	}
	opts := out.Questions[i].Options
	if optionIndex < 0 || optionIndex >= len(opts) {
		return t, model.Invalid("invalid-index", "no option at index %d", optionIndex)
	}
	opts[optionIndex] = model.Option{Label: label, Value: label}
	return out, nil
}
