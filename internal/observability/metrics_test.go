package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_CountsRequestsAndErrors(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/api/members", "GET", 200, 5*time.Millisecond)
	m.RecordRequest("/api/members", "GET", 200, 7*time.Millisecond)
	m.RecordError("/api/members", "POST", "VALIDATION")

	assert.Equal(t, int64(2), m.RequestCounts()["/api/members|GET|200"])
	assert.Equal(t, int64(1), m.ErrorCounts()["/api/members|POST|VALIDATION"])
}

func TestMetrics_NilReceiverIsSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordRequest("/x", "GET", 200, 0)
		m.RecordError("/x", "GET", "STORE_FAILURE")
	})
}
