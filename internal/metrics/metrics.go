package metrics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"lexipedia/internal/db"
)

var (
	searchLookupDesc = prometheus.NewDesc(
		"lexipedia_search_lookups_total",
		"Total search lookup count by outcome",
		[]string{"term", "outcome"},
		nil,
	)

	submissionStatusDesc = prometheus.NewDesc(
		"lexipedia_word_submissions",
		"Word submission count by status",
		[]string{"status"},
		nil,
	)
)

// DictionaryCollector is a custom Prometheus collector that reads search
// lookup counters and submission status counts from the database on each
// scrape.
type DictionaryCollector struct {
	db *db.DB
}

// Describe sends the metric descriptors to the channel.
func (c *DictionaryCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- searchLookupDesc
	ch <- submissionStatusDesc
}

// Collect queries the database and emits the current counters.
func (c *DictionaryCollector) Collect(ch chan<- prometheus.Metric) {
	lookups, err := c.db.GetAllSearchLookups(context.Background())
	if err != nil {
		slog.Error("failed to collect search lookup metrics", "error", err)
	} else {
		for _, l := range lookups {
			ch <- prometheus.MustNewConstMetric(
				searchLookupDesc,
				prometheus.CounterValue,
				float64(l.Count),
				l.Term,
				l.Outcome,
			)
		}
	}

	counts, err := c.db.GetSubmissionStatusCounts(context.Background())
	if err != nil {
		slog.Error("failed to collect submission status metrics", "error", err)
		return
	}
	for status, count := range counts {
		ch <- prometheus.MustNewConstMetric(
			submissionStatusDesc,
			prometheus.GaugeValue,
			float64(count),
			status,
		)
	}
}

// Recorder provides async search lookup recording.
type Recorder struct {
	db *db.DB
}

var (
	recorder     *Recorder
	recorderOnce sync.Once
)

// Init registers the custom collector and initializes the recorder.
// Must be called once at startup.
func Init(database *db.DB) {
	recorderOnce.Do(func() {
		recorder = &Recorder{db: database}
		prometheus.MustRegister(&DictionaryCollector{db: database})
	})
}

// RecordSearchLookup asynchronously records a search term and its outcome.
func RecordSearchLookup(term, outcome string) {
	if recorder == nil {
		return
	}
	go func() {
		if err := recorder.db.IncrementSearchLookup(context.Background(), term, outcome); err != nil {
			slog.Error("failed to record search lookup", "term", term, "outcome", outcome, "error", err)
		}
	}()
}
