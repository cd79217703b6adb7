package metrics

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"autosuggest/internal/models"
)

type staticSource struct {
	terms []models.Term
	err   error
}

func (s staticSource) TopTerms(context.Context, int) ([]models.Term, error) {
	return s.terms, s.err
}

func TestPopularityCollector(t *testing.T) {
	c := &PopularityCollector{source: staticSource{terms: []models.Term{
		{Term: "javascript", Popularity: 80},
		{Term: "java", Popularity: 50},
	}}}

	expected := `
# HELP autosuggest_term_popularity Current popularity counter of the most popular terms
# TYPE autosuggest_term_popularity gauge
autosuggest_term_popularity{term="java"} 50
autosuggest_term_popularity{term="javascript"} 80
`
	if err := testutil.CollectAndCompare(c, strings.NewReader(expected)); err != nil {
		t.Errorf("CollectAndCompare() error = %v", err)
	}
}

func TestPopularityCollector_SourceError(t *testing.T) {
	c := &PopularityCollector{source: staticSource{err: errors.New("down")}}

	if n := testutil.CollectAndCount(c); n != 0 {
		t.Errorf("CollectAndCount() = %d, want 0", n)
	}
}

func TestObserveSearch(t *testing.T) {
	before := testutil.ToFloat64(searchRequests.WithLabelValues("random", "ok"))
	ObserveSearch("", 10, time.Millisecond, nil)
	after := testutil.ToFloat64(searchRequests.WithLabelValues("random", "ok"))
	if after-before != 1 {
		t.Errorf("random/ok delta = %v, want 1", after-before)
	}

	before = testutil.ToFloat64(searchRequests.WithLabelValues("match", "error"))
	ObserveSearch("java", 0, time.Millisecond, errors.New("boom"))
	after = testutil.ToFloat64(searchRequests.WithLabelValues("match", "error"))
	if after-before != 1 {
		t.Errorf("match/error delta = %v, want 1", after-before)
	}
}

func TestObserveSelection(t *testing.T) {
	before := testutil.ToFloat64(selections.WithLabelValues("recorded"))
	ObserveSelection("recorded")
	if got := testutil.ToFloat64(selections.WithLabelValues("recorded")) - before; got != 1 {
		t.Errorf("recorded delta = %v, want 1", got)
	}
}

func TestInit_Idempotent(t *testing.T) {
	src := staticSource{}
	Init(src)
	Init(src)

	mfs, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	found := false
	for _, mf := range mfs {
		if mf.GetName() == "autosuggest_selections_total" {
			found = true
		}
	}
	if !found {
		t.Error("autosuggest_selections_total not registered")
	}
}
