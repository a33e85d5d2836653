package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTraceParams_ValidateFlags(t *testing.T) {
	t.Parallel()

	validParams := func() traceParams {
		return traceParams{
			sites:         4,
			objects:       32,
			cycles:        2,
			survivorRatio: 25,
		}
	}

	testTable := []struct {
		name        string
		mutate      func(*traceParams)
		expectedErr error
	}{
		{
			"valid params",
			func(*traceParams) {},
			nil,
		},
		{
			"no cycles",
			func(p *traceParams) { p.cycles = 0 },
			errNoCycles,
		},
		{
			"no objects",
			func(p *traceParams) { p.objects = 0 },
			errNoObjects,
		},
		{
			"no sites",
			func(p *traceParams) { p.sites = 0 },
			errNoSites,
		},
		{
			"survivor ratio above 100",
			func(p *traceParams) { p.survivorRatio = 101 },
			errInvalidSurvivorRatio,
		},
	}

	for _, testCase := range testTable {
		testCase := testCase

		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			p := validParams()
			testCase.mutate(&p)

			assert.ErrorIs(t, p.validateFlags(), testCase.expectedErr)
		})
	}
}

func TestTraceParams_InitLogLevel(t *testing.T) {
	t.Parallel()

	p := traceParams{logLevelRaw: "DEBUG"}
	assert.NoError(t, p.initLogLevel())

	p = traceParams{logLevelRaw: "bogus"}
	assert.ErrorIs(t, p.initLogLevel(), errInvalidLogLevel)
}
