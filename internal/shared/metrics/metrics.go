// Package metrics keeps in-process counters and histograms for the scoring service and
// renders them in the Prometheus text exposition format.
package metrics

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

type counter struct {
	name  string
	help  string
	value atomic.Uint64
}

func (c *counter) inc() { c.value.Add(1) }

func (c *counter) writeTo(w io.Writer) {
	fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s counter\n%s %d\n", c.name, c.help, c.name, c.name, c.value.Load())
}

var (
	analysisStarted   = &counter{name: "analysis_started_total", help: "Analyses started"}
	analysisCompleted = &counter{name: "analysis_completed_total", help: "Analyses completed"}
	analysisRejected  = &counter{name: "analysis_rejected_total", help: "Analyses rejected for invalid input"}
	analysisFailed    = &counter{name: "analysis_failed_total", help: "Analyses that failed an integrity check"}
	suggestionsFailed = &counter{name: "suggestions_failed_total", help: "Suggestion requests answered with the fallback record"}
	fileParseFailed   = &counter{name: "file_parse_failed_total", help: "Uploads that could not be converted to text"}
	historySaved      = &counter{name: "history_saved_total", help: "Analyses recorded in history"}
	rateLimited       = &counter{name: "rate_limited_total", help: "Requests refused by the rate limiter"}

	analysisDuration = newHistogram("analysis_duration_ms", "Analysis duration in milliseconds",
		[]float64{1, 5, 10, 25, 50, 100, 250, 500, 1000})
	overallScore = newHistogram("analysis_overall_score", "Overall ATS score of completed analyses",
		[]float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100})

	counters = []*counter{
		analysisStarted, analysisCompleted, analysisRejected, analysisFailed,
		suggestionsFailed, fileParseFailed, historySaved, rateLimited,
	}
	histograms = []*histogram{analysisDuration, overallScore}
)

// IncAnalysisStarted counts an analysis request that reached the engine.
func IncAnalysisStarted() { analysisStarted.inc() }

// IncAnalysisCompleted counts a scored résumé and records its overall score.
func IncAnalysisCompleted(score int) {
	analysisCompleted.inc()
	overallScore.Observe(float64(score))
}

// IncAnalysisRejected counts analyses refused because of invalid input.
func IncAnalysisRejected() { analysisRejected.inc() }

// IncAnalysisFailed counts analyses that produced an inconsistent result.
func IncAnalysisFailed() { analysisFailed.inc() }

// IncSuggestionsFailed counts suggestion requests answered with the fallback record.
func IncSuggestionsFailed() { suggestionsFailed.inc() }

// IncFileParseFailed counts uploads whose text could not be extracted.
func IncFileParseFailed() { fileParseFailed.inc() }

// IncHistorySaved counts analyses stored in an owner's history.
func IncHistorySaved() { historySaved.inc() }

// IncRateLimited counts requests answered with 429.
func IncRateLimited() { rateLimited.inc() }

// ObserveAnalysisDurationMs records an analysis duration in milliseconds.
func ObserveAnalysisDurationMs(value float64) {
	analysisDuration.Observe(max(value, 0))
}

// Handler serves Render as text/plain.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render returns every metric in Prometheus text format.
func Render() string {
	var b strings.Builder
	for _, c := range counters {
		c.writeTo(&b)
	}
	for _, h := range histograms {
		h.writeTo(&b)
	}
	return b.String()
}

type histogram struct {
	name   string
	help   string
	bounds []float64

	mu     sync.Mutex
	counts []uint64 // per bound, not cumulative
	sum    float64
	total  uint64
}

func newHistogram(name, help string, bounds []float64) *histogram {
	return &histogram{name: name, help: help, bounds: bounds, counts: make([]uint64, len(bounds))}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.total++
	h.sum += value
	for i, bound := range h.bounds {
		if value <= bound {
			h.counts[i]++
			return
		}
	}
}

func (h *histogram) writeTo(w io.Writer) {
	h.mu.Lock()
	counts := append([]uint64(nil), h.counts...)
	sum, total := h.sum, h.total
	h.mu.Unlock()

	fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s histogram\n", h.name, h.help, h.name)
	var cumulative uint64
	for i, bound := range h.bounds {
		cumulative += counts[i]
		fmt.Fprintf(w, "%s_bucket{le=%q} %d\n", h.name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(w, "%s_bucket{le=\"+Inf\"} %d\n", h.name, total)
	fmt.Fprintf(w, "%s_sum %s\n%s_count %d\n", h.name, formatFloat(sum), h.name, total)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
