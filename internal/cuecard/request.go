// Package cuecard holds the cue card domain: the athlete's request, the parsed
// card returned by the model, and the submission cycle state machine.
package cuecard

import (
	"strings"
)

// Sports lists the sports offered by the input form. "기타" (other) is last.
var Sports = []string{
	"축구", "농구", "야구", "양궁", "골프", "테니스", "수영", "육상", "격투기", "e스포츠", "기타",
}

// Request is the athlete's submission. All fields except SuccessKey are required.
type Request struct {
	Sport        string `json:"sport"`
	Situation    string `json:"situation"`
	MentalState  string `json:"mental_state"`
	DesiredState string `json:"desired_state"`
	SuccessKey   string `json:"success_key,omitempty"`
}

// Normalize returns a copy of r with surrounding whitespace removed from every field.
func (r Request) Normalize() Request {
	return Request{
		Sport:        strings.TrimSpace(r.Sport),
		Situation:    strings.TrimSpace(r.Situation),
		MentalState:  strings.TrimSpace(r.MentalState),
		DesiredState: strings.TrimSpace(r.DesiredState),
		SuccessKey:   strings.TrimSpace(r.SuccessKey),
	}
}

// Validate reports every required field left blank, and a sport outside
// Sports, as a *ValidationError.
func (r Request) Validate() error {
	var missing []string
	if !KnownSport(strings.TrimSpace(r.Sport)) {
		missing = append(missing, "sport")
	}
	if strings.TrimSpace(r.Situation) == "" {
		missing = append(missing, "situation")
	}
	if strings.TrimSpace(r.MentalState) == "" {
		missing = append(missing, "mental_state")
	}
	if strings.TrimSpace(r.DesiredState) == "" {
		missing = append(missing, "desired_state")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// KnownSport reports whether sport is one of the form's choices.
func KnownSport(sport string) bool {
	for _, s := range Sports {
		if s == sport {
			return true
		}
	}
	return false
}
