package editor

import (
	"encoding/json"

	"github.com/ecalder/formlab/model"
)

// Serialize converts a template to its transport form. Tags are normalized on
// the way out so the stored form always satisfies the tag invariants.
func Serialize(t model.Template) ([]byte, error) {
	out := clone(t)
	out.Tags = model.NormalizeTags(out.Tags)
	return json.Marshal(out)
}

// Parse reads a transport-form template back. Legacy encodings for tags and
// options (structured list, or comma-separated string) are both accepted; see
// model.TagList and model.OptionList. A malformed payload aborts loading with
// a ValidationError.
func Parse(raw []byte) (model.Template, error) {
	var t model.Template
	if err := json.Unmarshal(raw, &t); err != nil {
		return model.Template{}, model.Invalid("malformed-template", "%v", err)
	}
	t.Tags = model.NormalizeTags(t.Tags)
	return t, nil
}
