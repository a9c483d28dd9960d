package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"CryptoDigest/internal/domain"
)

type stubSource struct {
	items []domain.ContentItem
	err   error
}

func (s stubSource) Fetch(ctx context.Context) ([]domain.ContentItem, error) {
	return s.items, s.err
}

type stubPredictor struct {
	scores map[string]float64
	errFor string
}

func (s stubPredictor) Predict(ctx context.Context, item domain.ContentItem) (float64, error) {
	if item.ID == s.errFor {
		return 0, errors.New("predictor exploded")
	}
	if score, ok := s.scores[item.ID]; ok {
		return score, nil
	}
	return 10, nil
}

type memStore struct {
	ids   map[string]struct{}
	saves int
}

func newMemStore(ids ...string) *memStore {
	s := &memStore{ids: map[string]struct{}{}}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

func (m *memStore) Load(ctx context.Context) (map[string]struct{}, error) {
	out := make(map[string]struct{}, len(m.ids))
	for id := range m.ids {
		out[id] = struct{}{}
	}
	return out, nil
}

func (m *memStore) Save(ctx context.Context, ids map[string]struct{}) error {
	m.saves++
	m.ids = ids
	return nil
}

func item(id, title string, likes float64) domain.ContentItem {
	return domain.ContentItem{
		ID:      id,
		Source:  domain.SourceTwitter,
		Title:   title,
		Metrics: domain.Metrics{Likes: likes},
	}
}

func TestRunProducesDigest(t *testing.T) {
	t.Parallel()

	src := stubSource{items: []domain.ContentItem{
		item("a", "bitcoin etf news", 50),
		item("b", "solana airdrop live", 40),
		item("c", "whale moved funds", 30),
	}}
	store := newMemStore()

	p := NewPipeline(PipelineDeps{Source: src, Store: store, Predictor: stubPredictor{}})

	doc, err := p.Run(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if doc == nil {
		t.Fatalf("expected a digest document")
	}
	if len(doc.Sections) == 0 {
		t.Fatalf("digest has no sections")
	}
	if store.saves != 1 {
		t.Fatalf("expected one store save, got %d", store.saves)
	}
	for _, id := range []string{"a", "b", "c"} {
		if _, ok := store.ids[id]; !ok {
			t.Fatalf("surfaced id %s not persisted", id)
		}
	}
}

func TestRunExcludesSeenItems(t *testing.T) {
	t.Parallel()

	src := stubSource{items: []domain.ContentItem{
		item("abc123", "previously seen", 100),
		item("new-1", "fresh story", 10),
	}}
	store := newMemStore("abc123")

	p := NewPipeline(PipelineDeps{Source: src, Store: store, Predictor: stubPredictor{}})

	doc, err := p.Run(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if doc == nil {
		t.Fatalf("expected a digest document")
	}

	for _, section := range doc.Sections {
		for _, entry := range section.Entries {
			if entry.Title == "previously seen" {
				t.Fatalf("seen item leaked into the digest")
			}
		}
	}
}

func TestRunDedupIdempotence(t *testing.T) {
	t.Parallel()

	src := stubSource{items: []domain.ContentItem{
		item("a", "story one", 10),
		item("b", "story two", 20),
	}}
	store := newMemStore()

	p := NewPipeline(PipelineDeps{Source: src, Store: store, Predictor: stubPredictor{}})

	if doc, err := p.Run(context.Background(), time.Now()); err != nil || doc == nil {
		t.Fatalf("first run: doc=%v err=%v", doc, err)
	}

	// Same raw input against the persisted store selects nothing.
	doc, err := p.Run(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if doc != nil {
		t.Fatalf("expected nil document when every item was already seen")
	}
	if store.saves != 1 {
		t.Fatalf("second run must not rewrite the store, saves=%d", store.saves)
	}
}

func TestRunPredictorFailureFallsBack(t *testing.T) {
	t.Parallel()

	src := stubSource{items: []domain.ContentItem{
		item("x", "prediction fails here", 30),
		item("y", "prediction works here", 20),
	}}
	store := newMemStore()

	p := NewPipeline(PipelineDeps{
		Source:    src,
		Store:     store,
		Predictor: stubPredictor{errFor: "x", scores: map[string]float64{"y": 70}},
	})

	doc, err := p.Run(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if doc == nil {
		t.Fatalf("expected a digest document despite predictor failure")
	}

	if _, ok := store.ids["x"]; !ok {
		t.Fatalf("item with failed prediction must still be selected")
	}
}

func TestRunPredictorFailureKeepsEngagement(t *testing.T) {
	t.Parallel()

	// Ranking proves the fallback: x keeps its engagement score despite
	// the failed prediction, so it still leads its story section.
	src := stubSource{items: []domain.ContentItem{
		item("y", "low engagement", 1),
		item("x", "high engagement", 100),
	}}

	p := NewPipeline(PipelineDeps{
		Source:    src,
		Predictor: stubPredictor{errFor: "x"},
	})

	doc, err := p.Run(context.Background(), time.Now())
	if err != nil || doc == nil {
		t.Fatalf("run: doc=%v err=%v", doc, err)
	}

	var found bool
	for _, section := range doc.Sections {
		for _, entry := range section.Entries {
			if entry.Ordinal == 1 && entry.Title == "high engagement" {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("item with fallback virality lost its engagement ranking")
	}
}

func TestRunEmptyInput(t *testing.T) {
	t.Parallel()

	store := newMemStore("existing")
	p := NewPipeline(PipelineDeps{Source: stubSource{}, Store: store, Predictor: stubPredictor{}})

	doc, err := p.Run(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("empty input must not error: %v", err)
	}
	if doc != nil {
		t.Fatalf("expected nil document for empty input")
	}
	if store.saves != 0 {
		t.Fatalf("store must stay untouched on empty input, saves=%d", store.saves)
	}
}

func TestRunSourceErrorPropagates(t *testing.T) {
	t.Parallel()

	p := NewPipeline(PipelineDeps{Source: stubSource{err: errors.New("feed dir missing")}})

	if _, err := p.Run(context.Background(), time.Now()); err == nil {
		t.Fatalf("expected source error to propagate")
	}
}
