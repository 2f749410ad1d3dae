package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/joestump/cuecard/internal/config"
	"github.com/joestump/cuecard/internal/cuecard"
)

func TestNew(t *testing.T) {
	if _, err := New(config.LLM{Provider: "gemini"}); !errors.Is(err, cuecard.ErrNotConfigured) {
		t.Errorf("New without key = %v, want ErrNotConfigured", err)
	}
	if _, err := New(config.LLM{Provider: "cohere", APIKey: "k"}); err == nil {
		t.Error("New with unknown provider succeeded")
	}
	for _, p := range []string{"anthropic", "openai", "openai-compatible"} {
		g, err := New(config.LLM{Provider: p, APIKey: "k"})
		if err != nil || g == nil {
			t.Errorf("New(%s) = %v, %v", p, g, err)
		}
	}
}

func TestAnthropicGenerator(t *testing.T) {
	var gotPrompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "sk-ant" {
			t.Errorf("x-api-key = %q", r.Header.Get("x-api-key"))
		}
		var req anthropicRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
			return
		}
		gotPrompt = req.Messages[0].Content
		_, _ = io.WriteString(w, `{"content":[{"type":"text","text":"### Strategy\nGo."}]}`)
	}))
	defer srv.Close()

	g, err := New(config.LLM{Provider: "anthropic", APIKey: "sk-ant", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	out, err := g.Generate(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "### Strategy\nGo." {
		t.Errorf("out = %q", out)
	}
	if gotPrompt != "hello" {
		t.Errorf("prompt = %q", gotPrompt)
	}
}

func TestAnthropicGenerator_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g := newAnthropicGenerator(config.LLM{APIKey: "k", BaseURL: srv.URL})
	_, err := g.Generate(context.Background(), "p")
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Errorf("err = %v, want 429 error", err)
	}
}

func TestOpenAIGenerator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sk-oa" {
			t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"x","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"card text"},"finish_reason":"stop"}]}`)
	}))
	defer srv.Close()

	g, err := New(config.LLM{Provider: "openai-compatible", APIKey: "sk-oa", BaseURL: srv.URL + "/"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	out, err := g.Generate(context.Background(), "p")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "card text" {
		t.Errorf("out = %q", out)
	}
}

func TestOpenAIGenerator_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"choices":[]}`)
	}))
	defer srv.Close()

	g := newOpenAIGenerator(config.LLM{APIKey: "k", BaseURL: srv.URL})
	if _, err := g.Generate(context.Background(), "p"); err == nil {
		t.Error("expected error for empty choices")
	}
}

func TestGeminiGenerator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/models/gemini-2.5-flash:generateContent") {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"### Strategy\n"},{"text":"Go."}]}}]}`)
	}))
	defer srv.Close()

	g, err := New(config.LLM{Provider: "gemini", APIKey: "g-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	out, err := g.Generate(context.Background(), "p")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "### Strategy\nGo." {
		t.Errorf("out = %q", out)
	}
}

func TestGeneratorFunc(t *testing.T) {
	g := GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		return strings.ToUpper(prompt), nil
	})
	out, err := g.Generate(context.Background(), "abc")
	if err != nil || out != "ABC" {
		t.Errorf("Generate = %q, %v", out, err)
	}
}
