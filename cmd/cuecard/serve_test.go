package main

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/joestump/cuecard/internal/store"
	"github.com/joestump/cuecard/internal/testutil"
)

func TestRunEventWriter_DrainsOnCancel(t *testing.T) {
	es := store.NewEventStore(testutil.NewTestDB(t))
	ch := make(chan store.GenerationEvent, 8)
	for i := 0; i < 5; i++ {
		ch <- store.GenerationEvent{Sport: "축구", Outcome: store.OutcomeParsed, CueCount: 4}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	runEventWriter(ctx, ch, es, zap.NewNop())

	st, err := es.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.Total != 5 {
		t.Errorf("Total = %d, want 5", st.Total)
	}
}

func TestRunEventWriter_StopsOnClose(t *testing.T) {
	es := store.NewEventStore(testutil.NewTestDB(t))
	ch := make(chan store.GenerationEvent, 1)
	ch <- store.GenerationEvent{Outcome: store.OutcomeInvalid}
	close(ch)

	runEventWriter(context.Background(), ch, es, zap.NewNop())

	st, err := es.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.Total != 1 {
		t.Errorf("Total = %d, want 1", st.Total)
	}
}
