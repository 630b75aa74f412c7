package prometheus

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func TestCollector_RecordRequest(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.RecordRequest("/generos", 200)
	c.RecordRequest("/generos", 200)
	c.RecordRequest("/juegos", 500)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.httpRequests.WithLabelValues("/generos", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.httpRequests.WithLabelValues("/juegos", "500")))
}

func TestCollector_QueryMetrics(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.ObserveQueryDuration("/plataformas", 20*time.Millisecond)
	c.IncQueryErrors("/plataformas", "connection")

	assert.Equal(t, 1, testutil.CollectAndCount(c.queryDuration))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.queryErrors.WithLabelValues("/plataformas", "connection")))
}

func TestCollector_SetDatabaseUp(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.SetDatabaseUp(true)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.databaseUp))

	c.SetDatabaseUp(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(c.databaseUp))
}

func TestCollector_RegisterDatabase(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "stats.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, c.RegisterDatabase(db, "catalogo"))

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, mf := range families {
		if mf.GetName() == "go_sql_max_open_connections" {
			found = true
		}
	}
	assert.True(t, found)
}
