package handlers

import "introboard/internal/intro"

type CreateIntroductionRequest struct {
	Name             string `json:"name"`
	Department       string `json:"department"`
	Responsibilities string `json:"responsibilities"`
	PreviousCompany  string `json:"previousCompany"`
	MBTI             string `json:"mbti"`
	Hobbies          string `json:"hobbies"`
	TMI              string `json:"tmi"`
	Greetings        string `json:"greetings"`
}

func (r CreateIntroductionRequest) values() map[string]string {
	return map[string]string{
		intro.KeyName:             r.Name,
		intro.KeyDepartment:       r.Department,
		intro.KeyResponsibilities: r.Responsibilities,
		intro.KeyPreviousCompany:  r.PreviousCompany,
		intro.KeyMBTI:             r.MBTI,
		intro.KeyHobbies:          r.Hobbies,
		intro.KeyTMI:              r.TMI,
		intro.KeyGreetings:        r.Greetings,
	}
}

type IntroductionResponse struct {
	Data intro.Record `json:"data"`
}

type ListIntroductionsResponse struct {
	Data  []intro.Record `json:"data"`
	Total int            `json:"total"`
}

type ErrorResponse struct {
	Error  string            `json:"error"`
	Kind   string            `json:"kind,omitempty"`
	Fields intro.FieldErrors `json:"fields,omitempty"`
}
