package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	t.Run("should register only once", func(t *testing.T) {
		assert.NotPanics(t, func() {
			EnsureRegistered()
			EnsureRegistered()
		})
	})

	t.Run("should expose recorded invocations via scrape endpoint", func(t *testing.T) {
		RecordToolInvocation("text_to_image", 1500*time.Millisecond, true)
		RecordToolInvocation("text_to_video", 2*time.Second, false)
		RecordBackendError("timeout")

		rec := httptest.NewRecorder()
		MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, `tool_invocation_total{status="success",tool="text_to_image"}`)
		assert.Contains(t, body, `tool_invocation_total{status="error",tool="text_to_video"}`)
		assert.Contains(t, body, `backend_errors_total{kind="timeout"}`)
		assert.Contains(t, body, "tool_invocation_duration_seconds_bucket")
	})
}
