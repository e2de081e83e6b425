package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservePass(t *testing.T) {
	m := New()

	m.ObservePass("cat", 3, nil)
	m.ObservePass("cat", 2, nil)
	m.ObservePass("dog", 0, errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.PassesTotal.WithLabelValues("cat", statusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PassesTotal.WithLabelValues("dog", statusError)))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.MarkersTotal.WithLabelValues("cat")))
}

func TestObserveApply(t *testing.T) {
	m := New()

	m.ObserveApply(4, 7, 10*time.Millisecond)
	m.ObserveApply(7, 2, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AppliesTotal))
	assert.Equal(t, 11.0, testutil.ToFloat64(m.ClearedTotal))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CurrentMarkers))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	m := New()
	m.ObservePass("cat", 1, nil)
	m.ObserveApply(0, 1, time.Millisecond)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `hilite_keyword_passes_total{keyword="cat",status="ok"} 1`)
	assert.Contains(t, string(body), "hilite_markers 1")
}
