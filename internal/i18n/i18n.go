// Package i18n holds the user-facing strings of the board. Message keys are the
// English text; Korean translations are registered in the default catalog.
package i18n

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys.
const (
	MsgTitle            = "Introductions from our experienced new hires"
	MsgFormHeading      = "Introduce yourself"
	MsgListHeading      = "Meet your cohort"
	MsgSubmit           = "Submit introduction"
	MsgSubmitting       = "Submitting..."
	MsgLoading          = "Loading introductions..."
	MsgEmpty            = "No introductions yet. Be the first!"
	MsgRetry            = "Try again"
	MsgRequired         = "This field is required."
	MsgSubmitSuccess    = "Your introduction has been submitted!"
	MsgSubmitFailed     = "Something went wrong while submitting your introduction."
	MsgSubmitInProgress = "Your introduction is already being submitted."
	MsgLoadFailed       = "Something went wrong while loading introductions."
	MsgCrossOrigin      = "There is a problem connecting to the server. Please try again shortly."
	MsgNetwork          = "Please check your network connection and try again."
	MsgHTTPStatus       = "Server responded with an error: %d %s"
)

var korean = map[string]string{
	MsgTitle:            "경력직 신입사원 자기소개",
	MsgFormHeading:      "자기소개 작성",
	MsgListHeading:      "동기들의 자기소개",
	MsgSubmit:           "자기소개 등록",
	MsgSubmitting:       "등록 중...",
	MsgLoading:          "자기소개를 불러오는 중...",
	MsgEmpty:            "아직 등록된 자기소개가 없습니다. 첫 번째로 등록해보세요!",
	MsgRetry:            "다시 시도",
	MsgRequired:         "이 필드는 필수입니다.",
	MsgSubmitSuccess:    "자기소개가 성공적으로 등록되었습니다!",
	MsgSubmitFailed:     "자기소개 등록 중 오류가 발생했습니다.",
	MsgSubmitInProgress: "자기소개를 등록하고 있습니다. 잠시만 기다려주세요.",
	MsgLoadFailed:       "데이터를 불러오는 중 오류가 발생했습니다.",
	MsgCrossOrigin:      "서버 연결에 문제가 있습니다. 잠시 후 다시 시도해주세요.",
	MsgNetwork:          "네트워크 연결을 확인하고 다시 시도해주세요.",
	MsgHTTPStatus:       "서버 응답 오류: %d %s",

	"Name":                "이름",
	"Department":          "소속 부서",
	"Responsibilities":    "담당 업무",
	"Previous company":    "이전 직장",
	"MBTI":                "MBTI",
	"Hobbies":             "취미",
	"My TMI":              "나의 TMI",
	"A word to my cohort": "동기들에게 한 마디",
}

func init() {
	for key, msg := range korean {
		if err := message.SetString(language.Korean, key, msg); err != nil {
			panic(fmt.Sprintf("i18n: register %q: %v", key, err))
		}
	}
}

// Supported lists the languages with a catalog, default first.
var Supported = []language.Tag{language.Korean, language.English}

var matcher = language.NewMatcher(Supported)

// Locale bundles a language with the printer and timezone used to render for it.
type Locale struct {
	Tag      language.Tag
	Location *time.Location
	printer  *message.Printer
}

// New builds a locale for tag. A nil location means UTC.
func New(tag language.Tag, loc *time.Location) Locale {
	if loc == nil {
		loc = time.UTC
	}
	return Locale{Tag: tag, Location: loc, printer: message.NewPrinter(tag)}
}

// Negotiate picks the best supported language for an Accept-Language header,
// falling back to def when the header is empty or unparsable.
func Negotiate(acceptLanguage string, def language.Tag, loc *time.Location) Locale {
	if acceptLanguage == "" {
		return New(def, loc)
	}
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return New(def, loc)
	}
	_, index, confidence := matcher.Match(prefs...)
	if confidence == language.No {
		return New(def, loc)
	}
	return New(Supported[index], loc)
}

// T translates a message key, formatting args into it.
func (l Locale) T(key string, args ...any) string {
	if l.printer == nil {
		return fmt.Sprintf(key, args...)
	}
	return l.printer.Sprintf(key, args...)
}

// Lang returns the BCP 47 code for the html lang attribute.
func (l Locale) Lang() string {
	base, _ := l.Tag.Base()
	return base.String()
}

// FormatDate renders a date in the long local form: "2025년 3월 5일" for
// Korean, "March 5, 2025" otherwise.
func (l Locale) FormatDate(t time.Time) string {
	if l.Location != nil {
		t = t.In(l.Location)
	}
	if base, _ := l.Tag.Base(); base.String() == "ko" {
		return fmt.Sprintf("%d년 %d월 %d일", t.Year(), int(t.Month()), t.Day())
	}
	return t.Format("January 2, 2006")
}
