// Package codec translates between a filler's raw input and the encoded,
// transport-safe answer stored with a response. Both directions dispatch on
// the question type.
package codec

import (
	"strconv"
	"strings"

	"github.com/ecalder/formlab/model"
)

// EncodeAnswer validates raw input against the question's constraints and
// returns the canonical encoded answer. Failures are ValidationErrors and
// never reach the network: one bad answer rejects the whole submission
// locally.
func EncodeAnswer(q model.Question, raw model.Answer) (model.Answer, error) {
	switch q.Type {
	case model.TypeText, model.TypeTextarea:
		if raw.Multi {
			return model.Answer{}, model.Invalid("bad-answer", "%s answers must be a single string", q.Type)
		}
		return model.TextAnswer(raw.Text), nil

	case model.TypeNumber:
		if raw.Multi {
			return model.Answer{}, model.Invalid("not-a-number", "number answers must be a single value")
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw.Text))
		if err != nil || n < 0 {
			return model.Answer{}, model.Invalid("not-a-number", "%q is not a non-negative integer", raw.Text)
		}
		return model.TextAnswer(strconv.Itoa(n)), nil

	case model.TypeRadio:
		if raw.Multi {
			return model.Answer{}, model.Invalid("unknown-option", "radio answers select exactly one option")
		}
		if _, ok := q.Option(raw.Text); !ok {
			return model.Answer{}, model.Invalid("unknown-option", "%q is not an option of this question", raw.Text)
		}
		return model.TextAnswer(raw.Text), nil

	case model.TypeCheckbox:
		values := raw.Values
		if !raw.Multi {
			if raw.Text == "" {
				values = nil
			} else {
				values = []string{raw.Text}
			}
		}
		// deduplicate, preserving first-seen order; an empty set is a
		// valid answer (no selection)
		seen := make(map[string]struct{}, len(values))
		encoded := make([]string, 0, len(values))
		for _, v := range values {
			if _, ok := q.Option(v); !ok {
				return model.Answer{}, model.Invalid("unknown-option", "%q is not an option of this question", v)
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			encoded = append(encoded, v)
		}
		return model.MultiAnswer(encoded...), nil
	}

	return model.Answer{}, model.Invalid("bad-type", "unknown question type %q", q.Type)
}

// DecodeAnswer maps an encoded answer back to its displayable value. For
// radio/checkbox answers each stored token is replaced with its option's
// label; a token with no matching option is rendered as-is, covering answers
// recorded before the template's options changed.
func DecodeAnswer(q model.Question, encoded model.Answer) model.Answer {
	switch q.Type {
	case model.TypeRadio:
		return model.TextAnswer(label(q, encoded.Text))

	case model.TypeCheckbox:
		labels := make([]string, len(encoded.Values))
		for i, v := range encoded.Values {
			labels[i] = label(q, v)
		}
		return model.MultiAnswer(labels...)
	}

	return encoded
}

func label(q model.Question, value string) string {
	if opt, ok := q.Option(value); ok {
		return opt.Label
	}
	return value
}
