package model

import "time"

// Topic is one of the predefined template categories.
type Topic string

const (
	TopicEducation Topic = "Education"
	TopicQuiz      Topic = "Quiz"
	TopicOther     Topic = "Other"
)

func (t Topic) Valid() bool {
	switch t {
	case "", TopicEducation, TopicQuiz, TopicOther:
		return true
	}
	return false
}

// QuestionType selects the input widget, the legal option shape, the answer
// encoding and the aggregation applied to a question. It is a closed
// enumeration: every component that varies by type switches on it explicitly.
type QuestionType string

const (
	TypeText     QuestionType = "text"     // single-line text
	TypeTextarea QuestionType = "textarea" // multi-line text
	TypeNumber   QuestionType = "number"   // non-negative integer
	TypeCheckbox QuestionType = "checkbox" // multiple choice, many selections
	TypeRadio    QuestionType = "radio"    // multiple choice, one selection
)

func (t QuestionType) Valid() bool {
	switch t {
	case TypeText, TypeTextarea, TypeNumber, TypeCheckbox, TypeRadio:
		return true
	}
	return false
}

// HasOptions reports whether questions of this type carry an option list.
func (t QuestionType) HasOptions() bool {
	return t == TypeCheckbox || t == TypeRadio
}

// Option is one selectable choice of a radio/checkbox question. Value is the
// canonical token stored on selection, Label the display string.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Question struct {
	ID      string       `json:"id"`
	Type    QuestionType `json:"type"`
	Prompt  string       `json:"value"`
	Shown   bool         `json:"showQuestion"`
	Options OptionList   `json:"options,omitempty"`
}

// Incomplete reports a choice question that has no options yet. Such a
// question is still saveable, it just cannot be answered meaningfully.
func (q Question) Incomplete() bool {
	return q.Type.HasOptions() && len(q.Options) == 0
}

// Option returns the option with the given value.
func (q Question) Option(value string) (Option, bool) {
	for _, opt := range q.Options {
		if opt.Value == value {
			return opt, true
		}
	}
	return Option{}, false
}

// Template is a form definition. Question order is the slice order: it drives
// both the editor and the filling form, and carries no stored position field.
type Template struct {
	ID          string     `json:"id,omitempty"`
	Version     int        `json:"version,omitempty"`
	OwnerID     string     `json:"owner_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
	Tags        TagList    `json:"tags"`
	Topic       Topic      `json:"topic,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	Public      bool       `json:"public"`
}

// Question returns the question with the given id and its position.
func (t Template) Question(id string) (Question, int, bool) {
	for i, q := range t.Questions {
		if q.ID == id {
			return q, i, true
		}
	}
	return Question{}, -1, false
}

// Response is one filler's complete set of encoded answers to a template,
// immutable once submitted. Answers are keyed by question id; a key may
// outlive its question if the template is edited afterwards.
type Response struct {
	ID          string            `json:"id"`
	TemplateID  string            `json:"template_id"`
	UserID      string            `json:"user_id,omitempty"`
	SubmittedAt time.Time         `json:"submitted_at"`
	Answers     map[string]Answer `json:"response_data"`
}

// AccessEntry is an explicit allow/deny decision for one user on one
// template. Absence of an entry means no decision: denied unless the
// template is public.
type AccessEntry struct {
	TemplateID string `json:"template_id"`
	UserID     string `json:"user_id"`
	CanAccess  bool   `json:"can_access"`
}

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
