package editor

import (
	"reflect"
	"testing"

	"github.com/ecalder/formlab/model"
)

func TestSerializeParseRoundTrip(t *testing.T) {
	tpl := sampleTemplate()

	raw, err := Serialize(tpl)
	if err != nil {
		t.Fatal(err)
	}
	back, err := Parse(raw)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(back, tpl) {
		t.Errorf("round trip changed the template:\n got %+v\nwant %+v", back, tpl)
	}
}

func TestParseLegacyEncodings(t *testing.T) {
	raw := []byte(`{
		"title": "Legacy",
		"tags": "go, web , go,",
		"questions": [
			{"id": "q1", "type": "radio", "value": "Pick one", "showQuestion": true,
			 "options": "Red, Blue, Green"},
			{"id": "q2", "type": "checkbox", "value": "Pick many", "showQuestion": true,
			 "options": "[{\"label\":\"A\",\"value\":\"a\"}]"},
			{"id": "q3", "type": "text", "value": "Say something", "showQuestion": true}
		]
	}`)

	tpl, err := Parse(raw)
	if err != nil {
		t.Fatal(err)
	}

	if want := (model.TagList{"go", "web"}); !reflect.DeepEqual(tpl.Tags, want) {
		t.Errorf("tags = %v, want %v", tpl.Tags, want)
	}

	wantOpts := model.OptionList{
		{Label: "Red", Value: "Red"},
		{Label: "Blue", Value: "Blue"},
		{Label: "Green", Value: "Green"},
	}
	if !reflect.DeepEqual(tpl.Questions[0].Options, wantOpts) {
		t.Errorf("flat options = %v, want %v", tpl.Questions[0].Options, wantOpts)
	}

	wantNested := model.OptionList{{Label: "A", Value: "a"}}
	if !reflect.DeepEqual(tpl.Questions[1].Options, wantNested) {
		t.Errorf("nested options = %v, want %v", tpl.Questions[1].Options, wantNested)
	}

	if tpl.Questions[2].Options != nil {
		t.Errorf("text question grew options: %v", tpl.Questions[2].Options)
	}
}

func TestParseStructuredInput(t *testing.T) {
	raw := []byte(`{
		"title": "Structured",
		"tags": ["alpha", "beta"],
		"questions": [
			{"id": "q1", "type": "checkbox", "value": "Pick", "showQuestion": true,
			 "options": [{"label": "One", "value": "1"}, {"label": "Two", "value": "2"}]}
		]
	}`)

	tpl, err := Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	want := model.OptionList{{Label: "One", Value: "1"}, {Label: "Two", Value: "2"}}
	if !reflect.DeepEqual(tpl.Questions[0].Options, want) {
		t.Errorf("options = %v, want %v", tpl.Questions[0].Options, want)
	}
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte(`{"title": `))
	if model.ValidationCode(err) != "malformed-template" {
		t.Errorf("err = %v, want malformed-template", err)
	}
}
