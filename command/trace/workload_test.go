package trace

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/objtrace/objtrace/host"
	"github.com/objtrace/objtrace/reportdb"
)

func TestGenerateSites(t *testing.T) {
	t.Parallel()

	sites := generateSites(uint64(len(siteFiles)) + 2)

	// locations and shapes cycle through the fixed pools
	assert.Equal(t, siteFiles[0], sites[0].path)
	assert.Equal(t, siteFiles[0], sites[len(siteFiles)].path)
	assert.Equal(t, siteShapes[1].tag, sites[1].tag)
	assert.Equal(t, siteShapes[1].classPath, sites[1].classPath)

	// wrapped sites stay distinguishable by line
	assert.NotEqual(t, sites[0].line, sites[len(siteFiles)].line)
}

func TestWorkload_RunCycle(t *testing.T) {
	t.Parallel()

	p := &traceParams{
		sites:         4,
		objects:       100,
		survivorRatio: 30,
	}

	load := newWorkload(host.NewSimRuntime(), 7, p)
	load.runCycle()

	assert.Equal(t, uint64(100), load.allocated)
	assert.Equal(t, uint64(70), load.reclaimed)
	assert.Len(t, load.live, 30)
	assert.Equal(t, 30, load.runtime.Live())
	assert.Equal(t, uint64(1), load.runtime.Cycles())
}

func TestWorkload_SurvivorsAccumulate(t *testing.T) {
	t.Parallel()

	p := &traceParams{
		sites:         2,
		objects:       10,
		survivorRatio: 50,
	}

	load := newWorkload(host.NewSimRuntime(), 7, p)

	load.runCycle()
	assert.Len(t, load.live, 5)

	// the next batch joins the previous survivors before reclaim
	load.runCycle()
	assert.Len(t, load.live, 7)
}

func TestRunTrace(t *testing.T) {
	t.Parallel()

	newParams := func() *traceParams {
		return &traceParams{
			sites:         4,
			objects:       32,
			cycles:        3,
			survivorRatio: 25,
			seed:          42,
			logLevel:      hclog.Off,
		}
	}

	result, err := runTrace(newParams())
	require.NoError(t, err)

	assert.Equal(t, int64(42), result.Seed)
	assert.Equal(t, uint64(3), result.Cycles)
	assert.Equal(t, uint64(96), result.Allocated)

	// every allocation of the session is accounted for, reclaimed or
	// still live at the stop
	assert.Equal(t, uint64(96), result.TotalObjects)

	assert.NotEmpty(t, result.Rows)
	assert.GreaterOrEqual(t, result.Drains, 1)
	assert.Equal(t, []string{"path", "line"}, result.Attributes)

	// a fixed seed reproduces the exact report
	again, err := runTrace(newParams())
	require.NoError(t, err)
	assert.Equal(t, result.Rows, again.Rows)
}

func TestRunTrace_PersistsReport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	p := &traceParams{
		sites:         2,
		objects:       16,
		cycles:        2,
		survivorRatio: 50,
		seed:          7,
		label:         "smoke",
		dbPath:        dir + "/reports.db",
		logLevel:      hclog.Off,
	}

	result, err := runTrace(p)
	require.NoError(t, err)

	assert.Equal(t, uint64(1), result.SavedID)
	assert.Equal(t, p.dbPath, result.DBPath)

	store, err := reportdb.New(p.dbPath, hclog.NewNullLogger())
	require.NoError(t, err)

	defer store.Close()

	saved, err := store.GetByLabel("smoke")
	require.NoError(t, err)
	assert.Equal(t, result.Rows, saved.Report.Rows)
}
