// Package intro holds the introduction record and the rules that apply to it
// before it leaves or after it arrives: collection from a submitted form,
// required-field validation and ordering by submission time.
package intro

import (
	"encoding/json"
	"strings"
)

// Record is one self-introduction submission.
type Record struct {
	Name             string `json:"name"`
	Department       string `json:"department"`
	Responsibilities string `json:"responsibilities"`
	PreviousCompany  string `json:"previousCompany"`
	MBTI             string `json:"mbti"`
	Hobbies          string `json:"hobbies"`
	TMI              string `json:"tmi"`
	Greetings        string `json:"greetings"`
	Timestamp        string `json:"timestamp"`
}

// Get returns the value stored under a wire key, or "" for unknown keys.
func (r Record) Get(key string) string {
	if p := r.field(key); p != nil {
		return *p
	}
	return ""
}

// Set stores a value under a wire key. Unknown keys are ignored.
func (r *Record) Set(key, value string) {
	if p := r.field(key); p != nil {
		*p = value
	}
}

func (r *Record) field(key string) *string {
	switch key {
	case KeyName:
		return &r.Name
	case KeyDepartment:
		return &r.Department
	case KeyResponsibilities:
		return &r.Responsibilities
	case KeyPreviousCompany:
		return &r.PreviousCompany
	case KeyMBTI:
		return &r.MBTI
	case KeyHobbies:
		return &r.Hobbies
	case KeyTMI:
		return &r.TMI
	case KeyGreetings:
		return &r.Greetings
	case KeyTimestamp:
		return &r.Timestamp
	}
	return nil
}

// UnmarshalJSON reads string values only. Spreadsheet rows can carry numbers,
// nulls or dates serialized as objects; those become "".
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = Record{}
	for key, value := range raw {
		if !strings.HasPrefix(strings.TrimSpace(string(value)), `"`) {
			continue
		}
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			continue
		}
		r.Set(key, s)
	}
	return nil
}
