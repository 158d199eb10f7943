package metrics

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordSearchLookup(t *testing.T) {
	before := testutil.ToFloat64(SearchLookupsTotal.WithLabelValues("web", OutcomeError))
	RecordSearchLookup("web", errors.New("boom"))
	after := testutil.ToFloat64(SearchLookupsTotal.WithLabelValues("web", OutcomeError))
	assert.Equal(t, before+1, after)
}

func TestRecordFallback(t *testing.T) {
	before := testutil.ToFloat64(FallbackServedTotal.WithLabelValues("news"))
	RecordFallback("news")
	assert.Equal(t, before+1, testutil.ToFloat64(FallbackServedTotal.WithLabelValues("news")))
}

func TestRegisterDBStats(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	assert.NoError(t, RegisterDBStats(db))
	assert.NoError(t, RegisterDBStats(db), "second registration is ignored")

	n, err := testutil.GatherAndCount(prometheus.DefaultGatherer, "go_sql_open_connections")
	assert.NoError(t, err)
	assert.Equal(t, 1, n)
}
