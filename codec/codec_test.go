package codec

import (
	"reflect"
	"testing"

	"github.com/ecalder/formlab/model"
)

var checkboxQuestion = model.Question{
	ID:    "q1",
	Type:  model.TypeCheckbox,
	Shown: true,
	Options: model.OptionList{
		{Label: "Apples", Value: "A"},
		{Label: "Bananas", Value: "B"},
		{Label: "Cherries", Value: "C"},
	},
}

var radioQuestion = model.Question{
	ID:    "q2",
	Type:  model.TypeRadio,
	Shown: true,
	Options: model.OptionList{
		{Label: "Yes", Value: "y"},
		{Label: "No", Value: "n"},
	},
}

func TestEncodeText(t *testing.T) {
	q := model.Question{ID: "q", Type: model.TypeText}

	got, err := EncodeAnswer(q, model.TextAnswer("hello there"))
	if err != nil {
		t.Fatal(err)
	}
	if got.Text != "hello there" {
		t.Errorf("text answer = %q, want passthrough", got.Text)
	}

	_, err = EncodeAnswer(q, model.MultiAnswer("a", "b"))
	if !model.IsValidation(err) {
		t.Errorf("list input for a text question: err = %v, want ValidationError", err)
	}
}

func TestEncodeNumber(t *testing.T) {
	q := model.Question{ID: "q", Type: model.TypeNumber}

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"42", "42", false},
		{" 7 ", "7", false},
		{"0", "0", false},
		{"-3", "", true},
		{"3.5", "", true},
		{"abc", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := EncodeAnswer(q, model.TextAnswer(tt.in))
		if tt.wantErr {
			if model.ValidationCode(err) != "not-a-number" {
				t.Errorf("EncodeAnswer(%q): err = %v, want not-a-number", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("EncodeAnswer(%q): %v", tt.in, err)
			continue
		}
		if got.Text != tt.want {
			t.Errorf("EncodeAnswer(%q) = %q, want %q", tt.in, got.Text, tt.want)
		}
	}
}

func TestEncodeRadio(t *testing.T) {
	got, err := EncodeAnswer(radioQuestion, model.TextAnswer("y"))
	if err != nil {
		t.Fatal(err)
	}
	if got.Text != "y" {
		t.Errorf("radio answer = %q, want %q", got.Text, "y")
	}

	_, err = EncodeAnswer(radioQuestion, model.TextAnswer("maybe"))
	if model.ValidationCode(err) != "unknown-option" {
		t.Errorf("unknown value: err = %v, want unknown-option", err)
	}
}

func TestCheckboxRoundTrip(t *testing.T) {
	encoded, err := EncodeAnswer(checkboxQuestion, model.MultiAnswer("A", "C"))
	if err != nil {
		t.Fatal(err)
	}

	decoded := DecodeAnswer(checkboxQuestion, encoded)
	want := []string{"Apples", "Cherries"}
	if !reflect.DeepEqual(decoded.Values, want) {
		t.Errorf("decoded labels = %v, want %v", decoded.Values, want)
	}
}

func TestCheckboxUnknownOption(t *testing.T) {
	_, err := EncodeAnswer(checkboxQuestion, model.MultiAnswer("A", "D"))
	if model.ValidationCode(err) != "unknown-option" {
		t.Errorf("err = %v, want unknown-option", err)
	}
}

func TestCheckboxDeduplicatesAndAllowsEmpty(t *testing.T) {
	encoded, err := EncodeAnswer(checkboxQuestion, model.MultiAnswer("B", "A", "B"))
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"B", "A"}; !reflect.DeepEqual(encoded.Values, want) {
		t.Errorf("encoded set = %v, want %v", encoded.Values, want)
	}

	empty, err := EncodeAnswer(checkboxQuestion, model.MultiAnswer())
	if err != nil {
		t.Fatalf("empty selection should be valid: %v", err)
	}
	if len(empty.Values) != 0 || !empty.Multi {
		t.Errorf("empty selection encoded as %+v", empty)
	}
}

func TestDecodeStaleTokenFallsBack(t *testing.T) {
	// the option was removed after this answer was recorded
	stale := model.TextAnswer("gone")
	decoded := DecodeAnswer(radioQuestion, stale)
	if decoded.Text != "gone" {
		t.Errorf("stale radio token = %q, want raw fallback", decoded.Text)
	}

	decodedSet := DecodeAnswer(checkboxQuestion, model.MultiAnswer("A", "gone"))
	if want := []string{"Apples", "gone"}; !reflect.DeepEqual(decodedSet.Values, want) {
		t.Errorf("stale checkbox tokens = %v, want %v", decodedSet.Values, want)
	}
}

func TestDecodeTextPassthrough(t *testing.T) {
	q := model.Question{ID: "q", Type: model.TypeTextarea}
	decoded := DecodeAnswer(q, model.TextAnswer("some\nlines"))
	if decoded.Text != "some\nlines" {
		t.Errorf("textarea decode = %q, want passthrough", decoded.Text)
	}
}
