package model

import "strings"

// ValidateTemplate checks the structural invariants a template must satisfy
// before save: non-empty title, a known topic, valid questions with unique
// ids. It returns a *ValidationError describing the first violation.
func ValidateTemplate(t Template) error {
	if strings.TrimSpace(t.Title) == "" {
		return Invalid("empty-title", "template title must not be empty")
	}
	if !t.Topic.Valid() {
		return Invalid("bad-topic", "unknown topic %q", t.Topic)
	}

	seen := make(map[string]struct{}, len(t.Questions))
	for _, q := range t.Questions {
		if q.ID != "" {
			if _, ok := seen[q.ID]; ok {
				return Invalid("duplicate-question", "duplicate question id %q", q.ID)
			}
			seen[q.ID] = struct{}{}
		}
		if err := ValidateQuestion(q); err != nil {
			return err
		}
	}
	return nil
}

// ValidateQuestion checks a single question: known type, options present only
// on choice types, option values unique. A choice question with an empty
// option list passes; it is merely Incomplete.
func ValidateQuestion(q Question) error {
	if !q.Type.Valid() {
		return Invalid("bad-type", "unknown question type %q", q.Type)
	}
	if !q.Type.HasOptions() {
		if len(q.Options) > 0 {
			return Invalid("unexpected-options", "%s questions take no options", q.Type)
		}
		return nil
	}

	values := make(map[string]struct{}, len(q.Options))
	for _, opt := range q.Options {
		if opt.Value == "" {
			// blank options are freshly added and not yet edited
			continue
		}
		if _, ok := values[opt.Value]; ok {
			return Invalid("duplicate-option", "duplicate option value %q", opt.Value)
		}
		values[opt.Value] = struct{}{}
	}
	return nil
}

func IsValidTemplate(t Template) bool { return ValidateTemplate(t) == nil }

func IsValidQuestion(q Question) bool { return ValidateQuestion(q) == nil }
