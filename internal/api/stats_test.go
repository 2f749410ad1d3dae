package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/joestump/cuecard/internal/api"
	"github.com/joestump/cuecard/internal/store"
)

func TestStats(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	for _, e := range []store.GenerationEvent{
		{Sport: "축구", Outcome: store.OutcomeParsed, CueCount: 4},
		{Sport: "양궁", Outcome: store.OutcomeParsed, CueCount: 2, SkippedLines: 1},
		{Sport: "골프", Outcome: store.OutcomeParseFailed},
	} {
		if err := env.Events.Record(ctx, e); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/stats?recent=2", nil)
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", rec.Code, rec.Body.String())
	}

	var resp api.StatsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 3 || resp.Last7d != 3 {
		t.Errorf("total = %d, last_7d = %d, want 3, 3", resp.Total, resp.Last7d)
	}
	if resp.AvgCueCount != 3 {
		t.Errorf("avg_cue_count = %v, want 3", resp.AvgCueCount)
	}
	if resp.SkippedLines != 1 {
		t.Errorf("skipped_lines = %d, want 1", resp.SkippedLines)
	}
	if len(resp.ByOutcome) != 2 {
		t.Errorf("by_outcome = %+v", resp.ByOutcome)
	}
	if len(resp.Recent) != 2 {
		t.Errorf("len(recent) = %d, want 2", len(resp.Recent))
	}
}
