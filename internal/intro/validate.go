package intro

import (
	"net/url"
	"slices"
	"strings"
)

// CodeRequired marks a required field left blank.
const CodeRequired = "required"

// FieldError is the single inline error a field can carry.
type FieldError struct {
	Field string `json:"field"`
	Code  string `json:"code"`
}

// FieldErrors maps a field key to its error; a field has at most one.
type FieldErrors map[string]FieldError

type Validator struct {
	required []string
}

// NewValidator returns a validator for the given required keys. Keys that are
// not form fields are ignored; an empty list falls back to DefaultRequired.
func NewValidator(required []string) *Validator {
	if len(required) == 0 {
		required = DefaultRequired
	}
	v := &Validator{}
	for _, key := range required {
		if _, ok := LookupField(key); ok && !slices.Contains(v.required, key) {
			v.required = append(v.required, key)
		}
	}
	return v
}

func (v *Validator) Required(key string) bool {
	return slices.Contains(v.required, key)
}

// RequiredFields returns the required keys in configuration order.
func (v *Validator) RequiredFields() []string {
	return slices.Clone(v.required)
}

// Field validates one value. It returns nil when the value is acceptable.
func (v *Validator) Field(key, value string) *FieldError {
	if !v.Required(key) {
		return nil
	}
	if strings.TrimSpace(value) == "" {
		return &FieldError{Field: key, Code: CodeRequired}
	}
	return nil
}

// Form validates every required field and returns the failures, or nil.
func (v *Validator) Form(values url.Values) FieldErrors {
	var errs FieldErrors
	for _, key := range v.required {
		if fe := v.Field(key, values.Get(key)); fe != nil {
			if errs == nil {
				errs = FieldErrors{}
			}
			errs[key] = *fe
		}
	}
	return errs
}
