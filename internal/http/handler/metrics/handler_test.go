package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/InterNutter/instants/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler(t *testing.T) {
	metrics.StoryUpserts.WithLabelValues(metrics.StatusCreated).Inc()

	rec := httptest.NewRecorder()
	NewHandler(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "instants_story_upserts_total")
}
