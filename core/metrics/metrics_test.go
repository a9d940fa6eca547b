package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorders(t *testing.T) {
	before := testutil.ToFloat64(RunsTotal.WithLabelValues(StatusConflict))
	RecordRun(StatusConflict, 2*time.Second)
	assert.Equal(t, before+1, testutil.ToFloat64(RunsTotal.WithLabelValues(StatusConflict)))

	keptBefore := testutil.ToFloat64(ItemsTotal.WithLabelValues("kept"))
	RecordItems(3, 1, 0)
	assert.Equal(t, keptBefore+3, testutil.ToFloat64(ItemsTotal.WithLabelValues("kept")))

	errBefore := testutil.ToFloat64(DetailFetchAttempts.WithLabelValues("error"))
	ObserveFetchAttempt("10", 1, errors.New("boom"))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(DetailFetchAttempts.WithLabelValues("error")))

	hitBefore := testutil.ToFloat64(CacheLookups.WithLabelValues("hit"))
	ObserveCacheLookup(true)
	assert.Equal(t, hitBefore+1, testutil.ToFloat64(CacheLookups.WithLabelValues("hit")))

	RecordSnapshot(4, 5, 6)
	assert.Equal(t, float64(5), testutil.ToFloat64(SnapshotEntities.WithLabelValues("entities")))
}

func TestHandler(t *testing.T) {
	RecordRun(StatusSucceeded, time.Second)

	app := fiber.New()
	app.Get("/metrics", Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "collection_prep_pipeline_runs_total")
}
