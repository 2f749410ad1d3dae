package cuecard

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotConfigured is returned when no model credential is available.
	ErrNotConfigured = errors.New("model API key is not configured")

	// ErrMissingSection is wrapped by ParseError when a section heading is absent.
	ErrMissingSection = errors.New("response is missing a required section")

	// ErrBusy is returned when a session submits while its previous submission is pending.
	ErrBusy = errors.New("a card is already being generated for this session")
)

// ValidationError lists the required request fields that were left blank.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// Has reports whether field is among the missing fields.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// GenerationError wraps a failed call to the model provider.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string { return "generate card: " + e.Err.Error() }

func (e *GenerationError) Unwrap() error { return e.Err }

// ParseError is returned when model output cannot be turned into a card.
type ParseError struct {
	Section string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Section != "" {
		return fmt.Sprintf("parse card: %s section: %v", e.Section, e.Err)
	}
	return "parse card: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// UserMessage maps an error from the submission cycle to the text shown to the athlete.
func UserMessage(err error) string {
	var ve *ValidationError
	var ge *GenerationError
	var pe *ParseError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ve):
		return "모든 항목을 정확히 입력해주세요."
	case errors.Is(err, ErrNotConfigured):
		return "앱을 사용하려면 Google AI API 키를 입력해주세요."
	case errors.Is(err, ErrBusy):
		return "카드를 만들고 있습니다. 잠시만 기다려주세요."
	case errors.As(err, &ge):
		return "카드 생성 중 오류가 발생했습니다. API 키를 확인하거나 잠시 후 다시 시도해주세요."
	case errors.As(err, &pe):
		return "AI 응답을 처리하지 못했습니다. 다시 시도해주세요."
	default:
		return "알 수 없는 오류가 발생했습니다."
	}
}
