package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Outcome values recorded for a submission.
const (
	OutcomeParsed           = "parsed"
	OutcomeParseFailed      = "parse_failed"
	OutcomeGenerationFailed = "generation_failed"
	OutcomeInvalid          = "invalid"
	OutcomeNotConfigured    = "not_configured"
)

// GenerationEvent describes one submission. The athlete's free-text answers
// are never stored.
type GenerationEvent struct {
	ID           string    `db:"id"`
	Sport        string    `db:"sport"`
	Outcome      string    `db:"outcome"`
	CueCount     int       `db:"cue_count"`
	SkippedLines int       `db:"skipped_lines"`
	DurationMS   int64     `db:"duration_ms"`
	CreatedAt    time.Time `db:"created_at"`
}

// OutcomeCount is the number of events with a given outcome.
type OutcomeCount struct {
	Outcome string `db:"outcome" json:"outcome"`
	Count   int64  `db:"count" json:"count"`
}

// Stats aggregates generation events.
type Stats struct {
	Total        int64          `json:"total"`
	Last7d       int64          `json:"last_7d"`
	ByOutcome    []OutcomeCount `json:"by_outcome"`
	AvgCueCount  float64        `json:"avg_cue_count"`
	SkippedLines int64          `json:"skipped_lines"`
}

// EventStore is the sqlx-backed store for generation events.
type EventStore struct {
	db *sqlx.DB
}

// NewEventStore creates a new EventStore.
func NewEventStore(db *sqlx.DB) *EventStore {
	return &EventStore{db: db}
}

// maxSportRunes matches the VARCHAR(64) sport column, which counts characters.
const maxSportRunes = 64

// truncateRunes cuts s to at most n characters without splitting a multi-byte rune.
func truncateRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// q rebinds ? placeholders to the driver's native format.
func (s *EventStore) q(query string) string { return s.db.Rebind(query) }

// Record inserts an event. ID and CreatedAt are filled in when empty.
func (s *EventStore) Record(ctx context.Context, e GenerationEvent) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	e.Sport = truncateRunes(e.Sport, maxSportRunes)

	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO generation_events (id, sport, outcome, cue_count, skipped_lines, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`), e.ID, e.Sport, e.Outcome, e.CueCount, e.SkippedLines, e.DurationMS, e.CreatedAt)
	return err
}

// Stats returns totals across all recorded events.
func (s *EventStore) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	since7d := time.Now().UTC().AddDate(0, 0, -7)

	if err := s.db.GetContext(ctx, &st.Total, `SELECT COUNT(*) FROM generation_events`); err != nil {
		return st, err
	}
	if err := s.db.GetContext(ctx, &st.Last7d,
		s.q(`SELECT COUNT(*) FROM generation_events WHERE created_at >= ?`), since7d); err != nil {
		return st, err
	}
	if err := s.db.SelectContext(ctx, &st.ByOutcome, `
		SELECT outcome, COUNT(*) AS count
		FROM generation_events
		GROUP BY outcome
		ORDER BY outcome
	`); err != nil {
		return st, err
	}
	if st.ByOutcome == nil {
		st.ByOutcome = []OutcomeCount{}
	}
	if err := s.db.GetContext(ctx, &st.SkippedLines,
		`SELECT COALESCE(SUM(skipped_lines), 0) FROM generation_events`); err != nil {
		return st, err
	}
	if err := s.db.GetContext(ctx, &st.AvgCueCount, s.q(
		`SELECT COALESCE(AVG(cue_count), 0) FROM generation_events WHERE outcome = ?`), OutcomeParsed); err != nil {
		return st, err
	}
	return st, nil
}

// ListRecent returns the most recent events, newest first.
func (s *EventStore) ListRecent(ctx context.Context, limit int) ([]GenerationEvent, error) {
	switch {
	case limit <= 0:
		limit = 20
	case limit > 100:
		limit = 100
	}
	events := []GenerationEvent{}
	err := s.db.SelectContext(ctx, &events, s.q(`
		SELECT id, sport, outcome, cue_count, skipped_lines, duration_ms, created_at
		FROM generation_events
		ORDER BY created_at DESC
		LIMIT ?
	`), limit)
	return events, err
}
