package model

import "encoding/json"

// Answer is one encoded answer: a plain string for text, number and radio
// questions, a set of option values for checkbox questions. On the wire it is
// either a bare JSON string or an array of strings, matching what filling
// clients have always produced.
type Answer struct {
	Text   string
	Values []string
	Multi  bool
}

func TextAnswer(text string) Answer {
	return Answer{Text: text}
}

func MultiAnswer(values ...string) Answer {
	return Answer{Values: values, Multi: true}
}

func (a Answer) MarshalJSON() ([]byte, error) {
	if a.Multi {
		if a.Values == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(a.Values)
	}
	return json.Marshal(a.Text)
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*a = Answer{Text: text}
		return nil
	}
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*a = Answer{Values: values, Multi: true}
	return nil
}
