// Package coach runs one cue card submission cycle: validate, build the
// prompt, call the model, parse the reply.
package coach

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/joestump/cuecard/internal/config"
	"github.com/joestump/cuecard/internal/cuecard"
	"github.com/joestump/cuecard/internal/llm"
	"github.com/joestump/cuecard/internal/metrics"
	"github.com/joestump/cuecard/internal/session"
	"github.com/joestump/cuecard/internal/store"
)

// Service generates cue cards.
type Service struct {
	cfg       config.LLM
	log       *zap.Logger
	generator llm.Generator
	newGen    func(config.LLM) (llm.Generator, error)
	parser    cuecard.Parser
	events    chan<- store.GenerationEvent
}

// Option configures a Service.
type Option func(*Service)

// WithGenerator uses g for every submission regardless of API keys.
func WithGenerator(g llm.Generator) Option {
	return func(s *Service) { s.generator = g }
}

// WithEvents sends a GenerationEvent per submission to ch without blocking.
func WithEvents(ch chan<- store.GenerationEvent) Option {
	return func(s *Service) { s.events = ch }
}

// WithParser replaces cuecard.DefaultParser.
func WithParser(p cuecard.Parser) Option {
	return func(s *Service) { s.parser = p }
}

// New creates a Service. When cfg carries an API key the server-wide
// generator is built up front so configuration errors surface at startup.
func New(cfg config.LLM, log *zap.Logger, opts ...Option) (*Service, error) {
	s := &Service{
		cfg:    cfg,
		log:    log,
		newGen: llm.New,
		parser: cuecard.DefaultParser,
	}
	for _, o := range opts {
		o(s)
	}
	if s.generator == nil && cfg.APIKey != "" {
		g, err := s.newGen(cfg)
		if err != nil {
			return nil, err
		}
		s.generator = g
	}
	return s, nil
}

// Configured reports whether the server has its own credential. When false,
// callers must supply a per-session API key.
func (s *Service) Configured() bool { return s.generator != nil }

// Result is the outcome of one submission.
type Result struct {
	Request  cuecard.Request
	Cycle    *cuecard.Cycle
	Card     *cuecard.Card
	Prompt   string
	Raw      string
	Err      error
	Duration time.Duration
}

// Submit runs the full cycle for req. apiKey is used only when the server has
// no credential of its own. The returned Result always has a Cycle in a
// terminal or idle state; Err carries a *cuecard.ValidationError,
// cuecard.ErrNotConfigured, *cuecard.GenerationError or *cuecard.ParseError.
func (s *Service) Submit(ctx context.Context, req cuecard.Request, apiKey string) *Result {
	res := &Result{Request: req.Normalize(), Cycle: cuecard.NewCycle()}
	_ = res.Cycle.Advance(cuecard.StateSubmitted)

	if err := res.Request.Validate(); err != nil {
		return s.abort(res, err, store.OutcomeInvalid)
	}

	gen, err := s.generatorFor(apiKey)
	if err != nil {
		if errors.Is(err, cuecard.ErrNotConfigured) {
			return s.abort(res, err, store.OutcomeNotConfigured)
		}
		return s.abort(res, &cuecard.GenerationError{Err: err}, store.OutcomeGenerationFailed)
	}

	prompt, err := llm.BuildPrompt(s.cfg.Prompt, res.Request)
	if err != nil {
		return s.abort(res, &cuecard.GenerationError{Err: err}, store.OutcomeGenerationFailed)
	}
	res.Prompt = prompt

	_ = res.Cycle.Advance(cuecard.StateAwaitingModel)
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}
	start := time.Now()
	raw, err := gen.Generate(ctx, prompt)
	res.Duration = time.Since(start)
	metrics.GenerationDuration.Observe(res.Duration.Seconds())
	if err != nil {
		s.log.Warn("model call failed", zap.Error(err), zap.Duration("duration", res.Duration))
		return s.abort(res, &cuecard.GenerationError{Err: err}, store.OutcomeGenerationFailed)
	}
	res.Raw = raw

	card, err := s.parser.Parse(raw)
	if err != nil {
		_ = res.Cycle.Advance(cuecard.StateParseFailed)
		res.Err = err
		s.log.Warn("model reply could not be parsed", zap.Error(err), zap.Int("reply_bytes", len(raw)))
		s.finish(res, store.OutcomeParseFailed)
		return res
	}

	_ = res.Cycle.Advance(cuecard.StateParsed)
	res.Card = card
	if card.Skipped > 0 {
		metrics.CueLinesDroppedTotal.Add(float64(card.Skipped))
		s.log.Info("dropped malformed cue lines", zap.Int("skipped", card.Skipped))
	}
	s.finish(res, store.OutcomeParsed)
	return res
}

// Prompt validates req and returns the prompt Submit would send for it.
func (s *Service) Prompt(req cuecard.Request) (string, error) {
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return "", err
	}
	return llm.BuildPrompt(s.cfg.Prompt, req)
}

// Parse runs the service's parser over raw model output.
func (s *Service) Parse(raw string) (*cuecard.Card, error) {
	card, err := s.parser.Parse(raw)
	if err == nil && card.Skipped > 0 {
		metrics.CueLinesDroppedTotal.Add(float64(card.Skipped))
	}
	return card, err
}

func (s *Service) generatorFor(apiKey string) (llm.Generator, error) {
	if s.generator != nil {
		return s.generator, nil
	}
	cfg := s.cfg
	cfg.APIKey = apiKey
	return s.newGen(cfg)
}

// abort ends a cycle that never produced model output worth parsing.
func (s *Service) abort(res *Result, err error, outcome string) *Result {
	_ = res.Cycle.Advance(cuecard.StateIdle)
	res.Err = err
	s.finish(res, outcome)
	return res
}

func (s *Service) finish(res *Result, outcome string) {
	metrics.GenerationsTotal.WithLabelValues(outcome).Inc()
	if s.events == nil {
		return
	}
	e := store.GenerationEvent{
		Sport:      res.Request.Sport,
		Outcome:    outcome,
		DurationMS: res.Duration.Milliseconds(),
	}
	if res.Card != nil {
		e.CueCount = len(res.Card.Cues)
		e.SkippedLines = res.Card.Skipped
	}
	select {
	case s.events <- e:
	default:
		s.log.Warn("event buffer full, dropping generation event", zap.String("outcome", outcome))
	}
}

// Apply folds res into the session's previous snapshot. A parsed card
// replaces the previous one wholesale. A parse failure shows an error and no
// card. Any other failure keeps the previous card on screen and only sets the
// error message.
func Apply(prev session.Snapshot, res *Result) session.Snapshot {
	if !res.Cycle.Terminal() {
		next := prev
		next.Request = res.Request
		next.Error = cuecard.UserMessage(res.Err)
		return next
	}
	if res.Cycle.State == cuecard.StateParseFailed {
		return session.Snapshot{
			State:   cuecard.StateParseFailed,
			Request: res.Request,
			Card:    prev.Card,
			Error:   cuecard.UserMessage(res.Err),
		}
	}
	return session.Snapshot{State: cuecard.StateParsed, Request: res.Request, Card: res.Card}
}
