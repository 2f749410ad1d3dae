package coach

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/joestump/cuecard/internal/config"
	"github.com/joestump/cuecard/internal/cuecard"
	"github.com/joestump/cuecard/internal/llm"
	"github.com/joestump/cuecard/internal/session"
	"github.com/joestump/cuecard/internal/store"
)

const exampleReply = "### Strategy\nBelieve in the process.\n### Cues\n1. (Breath) Inhale deep.\n2. (Focus) Pick one spot."

var exampleRequest = cuecard.Request{
	Sport:        "축구",
	Situation:    "승부차기",
	MentalState:  "두려움",
	DesiredState: "자신감",
	SuccessKey:   "",
}

// fakeGenerator records prompts and replies with a canned answer.
type fakeGenerator struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func newTestService(t *testing.T, gen llm.Generator, opts ...Option) *Service {
	t.Helper()
	opts = append([]Option{WithGenerator(gen)}, opts...)
	s, err := New(config.LLM{Provider: "gemini"}, zap.NewNop(), opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestSubmit_EndToEndExample(t *testing.T) {
	gen := &fakeGenerator{reply: exampleReply}
	s := newTestService(t, gen)

	res := s.Submit(context.Background(), exampleRequest, "")
	if res.Err != nil {
		t.Fatalf("Err = %v", res.Err)
	}
	if res.Cycle.State != cuecard.StateParsed {
		t.Errorf("State = %s, want parsed", res.Cycle.State)
	}
	if len(gen.prompts) != 1 {
		t.Fatalf("generator called %d times, want 1", len(gen.prompts))
	}
	for _, v := range []string{"축구", "승부차기", "두려움", "자신감"} {
		if !strings.Contains(gen.prompts[0], v) {
			t.Errorf("prompt missing %q", v)
		}
	}
	if res.Card.Strategy != "Believe in the process." {
		t.Errorf("Strategy = %q", res.Card.Strategy)
	}
	want := []cuecard.Cue{{Keyword: "Breath", Action: "Inhale deep."}, {Keyword: "Focus", Action: "Pick one spot."}}
	if !reflect.DeepEqual(res.Card.Cues, want) {
		t.Errorf("Cues = %+v, want %+v", res.Card.Cues, want)
	}

	snap := Apply(session.Snapshot{}, res)
	if snap.State != cuecard.StateParsed || snap.Card != res.Card || snap.Error != "" {
		t.Errorf("Apply = %+v", snap)
	}
}

func TestSubmit_ValidationSkipsModel(t *testing.T) {
	gen := &fakeGenerator{reply: exampleReply}
	s := newTestService(t, gen)

	req := exampleRequest
	req.MentalState = "   "
	res := s.Submit(context.Background(), req, "")

	var ve *cuecard.ValidationError
	if !errors.As(res.Err, &ve) || !ve.Has("mental_state") {
		t.Fatalf("Err = %v, want ValidationError for mental_state", res.Err)
	}
	if len(gen.prompts) != 0 {
		t.Errorf("generator called %d times, want 0", len(gen.prompts))
	}
	if res.Cycle.State != cuecard.StateIdle {
		t.Errorf("State = %s, want idle", res.Cycle.State)
	}
}

func TestSubmit_NotConfigured(t *testing.T) {
	s, err := New(config.LLM{Provider: "gemini"}, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s.Configured() {
		t.Fatal("Configured() = true without API key")
	}

	res := s.Submit(context.Background(), exampleRequest, "")
	if !errors.Is(res.Err, cuecard.ErrNotConfigured) {
		t.Errorf("Err = %v, want ErrNotConfigured", res.Err)
	}
}

func TestSubmit_SessionAPIKey(t *testing.T) {
	s, err := New(config.LLM{Provider: "gemini", Model: "m"}, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var gotCfg config.LLM
	s.newGen = func(cfg config.LLM) (llm.Generator, error) {
		gotCfg = cfg
		return &fakeGenerator{reply: exampleReply}, nil
	}

	res := s.Submit(context.Background(), exampleRequest, "user-key")
	if res.Err != nil {
		t.Fatalf("Err = %v", res.Err)
	}
	if gotCfg.APIKey != "user-key" || gotCfg.Model != "m" {
		t.Errorf("generator built with %+v", gotCfg)
	}
}

func TestSubmit_GenerationErrorKeepsPreviousCard(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	s := newTestService(t, gen)

	res := s.Submit(context.Background(), exampleRequest, "")
	var ge *cuecard.GenerationError
	if !errors.As(res.Err, &ge) {
		t.Fatalf("Err = %v, want GenerationError", res.Err)
	}
	if res.Card != nil {
		t.Error("Card set after generation failure")
	}

	prevCard := &cuecard.Card{Strategy: "old"}
	prev := session.Snapshot{State: cuecard.StateParsed, Card: prevCard}
	snap := Apply(prev, res)
	if snap.Card != prevCard || snap.State != cuecard.StateParsed {
		t.Errorf("Apply replaced previous card: %+v", snap)
	}
	if snap.Error == "" {
		t.Error("Apply did not set an error message")
	}
}

func TestSubmit_ParseError(t *testing.T) {
	gen := &fakeGenerator{reply: "### Strategy\nOnly a strategy."}
	s := newTestService(t, gen)

	res := s.Submit(context.Background(), exampleRequest, "")
	var pe *cuecard.ParseError
	if !errors.As(res.Err, &pe) {
		t.Fatalf("Err = %v, want ParseError", res.Err)
	}
	if res.Cycle.State != cuecard.StateParseFailed {
		t.Errorf("State = %s, want parse_failed", res.Cycle.State)
	}
	if res.Card != nil {
		t.Error("partial card returned")
	}

	snap := Apply(session.Snapshot{State: cuecard.StateParsed, Card: &cuecard.Card{Strategy: "old"}}, res)
	if snap.State != cuecard.StateParseFailed || snap.Error != cuecard.UserMessage(res.Err) {
		t.Errorf("Apply = %+v", snap)
	}
}

func TestSubmit_Timeout(t *testing.T) {
	gen := llm.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	s, err := New(config.LLM{Timeout: 10 * time.Millisecond}, zap.NewNop(), WithGenerator(gen))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	res := s.Submit(context.Background(), exampleRequest, "")
	if !errors.Is(res.Err, context.DeadlineExceeded) {
		t.Errorf("Err = %v, want DeadlineExceeded", res.Err)
	}
}

func TestSubmit_EmitsEvents(t *testing.T) {
	ch := make(chan store.GenerationEvent, 4)
	gen := &fakeGenerator{reply: exampleReply + "\n- (Bad) line"}
	s := newTestService(t, gen, WithEvents(ch))

	s.Submit(context.Background(), exampleRequest, "")
	s.Submit(context.Background(), cuecard.Request{}, "")

	if len(ch) != 2 {
		t.Fatalf("got %d events, want 2", len(ch))
	}
	first := <-ch
	if first.Outcome != store.OutcomeParsed || first.Sport != "축구" || first.CueCount != 2 || first.SkippedLines != 1 {
		t.Errorf("first event = %+v", first)
	}
	if second := <-ch; second.Outcome != store.OutcomeInvalid {
		t.Errorf("second event outcome = %s, want invalid", second.Outcome)
	}
}

func TestSubmit_FullEventBufferDoesNotBlock(t *testing.T) {
	ch := make(chan store.GenerationEvent) // unbuffered, nobody reading
	s := newTestService(t, &fakeGenerator{reply: exampleReply}, WithEvents(ch))

	done := make(chan struct{})
	go func() {
		s.Submit(context.Background(), exampleRequest, "")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Submit blocked on the event channel")
	}
}

func TestPrompt(t *testing.T) {
	s := newTestService(t, &fakeGenerator{})

	prompt, err := s.Prompt(exampleRequest)
	if err != nil {
		t.Fatalf("Prompt: %v", err)
	}
	if !strings.Contains(prompt, "승부차기") {
		t.Errorf("prompt missing situation: %q", prompt)
	}

	if _, err := s.Prompt(cuecard.Request{Sport: "축구"}); err == nil {
		t.Error("expected validation error for incomplete request")
	}
}
