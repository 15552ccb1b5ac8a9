package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNilRegistryMethodsAreNoOps(t *testing.T) {
	var r *Registry
	assert.NotPanics(t, func() {
		r.ObserveBlock(3.5)
		r.ObserveBlockDuration(0)
		r.ObserveHealthTests(true, true, true)
	})
}

func TestRegistryExposesRecordedMetrics(t *testing.T) {
	r := New()
	r.ObserveBlock(6.25)
	r.ObserveHealthTests(true, false, false)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	r.Handler().ServeHTTP(rec, req)

	body := rec.Body.String()
	assert.Contains(t, body, "minentropy_blocks_processed_total 1")
	assert.Contains(t, body, "minentropy_last_block_min_entropy_bits 6.25")
	assert.Contains(t, body, `minentropy_health_test_failures_total{test="rct"} 1`)
}
