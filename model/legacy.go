package model

import (
	"encoding/json"
	"strings"
)

// TagList and OptionList absorb the two legacy encodings still found in
// stored templates: a structured JSON list, or a string holding either JSON
// list text or a raw comma-separated enumeration. The decision is made once
// here, at the parse boundary; downstream code only ever sees the structured
// form.

type TagList []string

func (t *TagList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = NormalizeTags(list)
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var nested []string
	if err := json.Unmarshal([]byte(raw), &nested); err == nil {
		*t = NormalizeTags(nested)
		return nil
	}
	*t = NormalizeTags(strings.Split(raw, ","))
	return nil
}

// NormalizeTags trims every tag, drops empty ones and deduplicates,
// preserving case and first-seen order.
func NormalizeTags(tags []string) TagList {
	out := make(TagList, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

type OptionList []Option

func (o *OptionList) UnmarshalJSON(data []byte) error {
	var list []Option
	if err := json.Unmarshal(data, &list); err == nil {
		*o = list
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		*o = nil
		return nil
	}
	var nested []Option
	if err := json.Unmarshal([]byte(raw), &nested); err == nil {
		*o = nested
		return nil
	}
	*o = ParseOptionString(raw)
	return nil
}

// ParseOptionString expands the flat legacy encoding "Red, Blue, Green":
// every comma-delimited, trimmed substring becomes an option whose label and
// value are identical.
func ParseOptionString(raw string) OptionList {
	parts := strings.Split(raw, ",")
	opts := make(OptionList, 0, len(parts))
	for _, part := range parts {
		label := strings.TrimSpace(part)
		opts = append(opts, Option{Label: label, Value: label})
	}
	return opts
}
