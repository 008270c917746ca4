package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(RecommendationsServed)
	RecommendationsServed.Add(3)
	assert.Equal(t, before+3, testutil.ToFloat64(RecommendationsServed))

	added := CartOperations.WithLabelValues("add", "ok")
	before = testutil.ToFloat64(added)
	added.Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(added))

	CatalogCourses.Set(12)
	assert.Equal(t, 12.0, testutil.ToFloat64(CatalogCourses))
}
