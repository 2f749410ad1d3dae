package api

import (
	"time"

	"github.com/joestump/cuecard/internal/cuecard"
)

// CardRequest is the request body for POST /api/v1/cards and POST /api/v1/prompts.
type CardRequest struct {
	Sport        string `json:"sport" example:"축구"`
	Situation    string `json:"situation" example:"승부차기"`
	MentalState  string `json:"mental_state" example:"두려움"`
	DesiredState string `json:"desired_state" example:"자신감"`
	SuccessKey   string `json:"success_key,omitempty"`
}

func (c CardRequest) toDomain() cuecard.Request {
	return cuecard.Request(c)
}

// CueResponse is one process cue.
type CueResponse struct {
	Keyword string `json:"keyword" example:"호흡"`
	Action  string `json:"action" example:"코로 깊게 마시고 입으로 길게 내쉰다."`
}

// CardResponse is the JSON representation of a parsed card.
type CardResponse struct {
	Strategy string        `json:"strategy"`
	Cues     []CueResponse `json:"cues"`
	Skipped  int           `json:"skipped"`
}

func cardResponse(c *cuecard.Card) CardResponse {
	cues := make([]CueResponse, 0, len(c.Cues))
	for _, cue := range c.Cues {
		cues = append(cues, CueResponse{Keyword: cue.Keyword, Action: cue.Action})
	}
	return CardResponse{Strategy: c.Strategy, Cues: cues, Skipped: c.Skipped}
}

// ParseRequest is the request body for POST /api/v1/cards/parse.
type ParseRequest struct {
	Raw string `json:"raw"`
}

// PromptResponse is the response body for POST /api/v1/prompts.
type PromptResponse struct {
	Prompt string `json:"prompt"`
}

// OutcomeCountResponse is the number of generations with one outcome.
type OutcomeCountResponse struct {
	Outcome string `json:"outcome" example:"parsed"`
	Count   int64  `json:"count"`
}

// StatsResponse is the response body for GET /api/v1/stats.
type StatsResponse struct {
	Total        int64                  `json:"total"`
	Last7d       int64                  `json:"last_7d"`
	ByOutcome    []OutcomeCountResponse `json:"by_outcome"`
	AvgCueCount  float64                `json:"avg_cue_count"`
	SkippedLines int64                  `json:"skipped_lines"`
	Recent       []EventResponse        `json:"recent"`
}

// EventResponse is one recorded submission.
type EventResponse struct {
	ID           string    `json:"id"`
	Sport        string    `json:"sport"`
	Outcome      string    `json:"outcome"`
	CueCount     int       `json:"cue_count"`
	SkippedLines int       `json:"skipped_lines"`
	DurationMS   int64     `json:"duration_ms"`
	CreatedAt    time.Time `json:"created_at"`
}

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Error  string   `json:"error"`
	Code   string   `json:"code"`
	Fields []string `json:"fields,omitempty"`
}
