package instance

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridops/switchsched/core/model"
)

const sampleInstance = `3 2 0.333
1 R 1
2 M 2
3 M 3
1 0
2 1 1
3 0
0 5 6 7
5 0 8 9
6 8 0 5
7 9 5 0
0 2 3 4
2 0 2 3
3 2 0 2
4 3 2 0
`

func TestLoadSample(t *testing.T) {
	p, err := Load(strings.NewReader(sampleInstance))
	require.NoError(t, err)

	assert.Equal(t, 3, p.N)
	assert.Equal(t, 2, p.M)
	assert.Equal(t, model.TechRemote, p.Technology[1])
	assert.Equal(t, model.TechManual, p.Technology[2])
	assert.Equal(t, 3.0, p.Processing[3])
	assert.Equal(t, []int{1}, p.Predecessors[2])
	assert.True(t, p.Precedes(1, 2))
	assert.False(t, p.Precedes(2, 1))

	// Matrix 1 feeds team 1, matrix 2 feeds team 2.
	assert.Equal(t, 5.0, p.Setup[0][1][1])
	assert.Equal(t, 2.0, p.Setup[0][1][2])
	assert.Equal(t, 9.0, p.Setup[1][3][1])
}

func TestLoadErrors(t *testing.T) {
	cases := map[string]string{
		"empty":              "",
		"truncated header":   "3 2",
		"bad technology":     "1 1 0\n1 X 1\n",
		"missing matrix row": "1 1 0\n1 M 1\n1 0\n0 5\n",
		"non-numeric time":   "1 1 0\n1 M abc\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(strings.NewReader(in))
			assert.Error(t, err)
		})
	}
}

func TestWriteLoadRoundTrip(t *testing.T) {
	p, err := Load(strings.NewReader(sampleInstance))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, p))

	q, err := Load(&buf)
	require.NoError(t, err)

	assert.Equal(t, p.N, q.N)
	assert.Equal(t, p.M, q.M)
	assert.Equal(t, p.Technology, q.Technology)
	assert.Equal(t, p.Processing, q.Processing)
	assert.Equal(t, p.Setup, q.Setup)
	assert.Equal(t, p.Predecessors, q.Predecessors)
}

func TestDensity(t *testing.T) {
	p, err := Load(strings.NewReader(sampleInstance))
	require.NoError(t, err)

	// One relation out of 3*2/2 possible.
	assert.InDelta(t, 1.0/3.0, Density(p), 1e-9)
}

func TestGenerateIsDeterministic(t *testing.T) {
	params := DefaultParams(20, 3)

	a, err := Generate(params, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	b, err := Generate(params, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	assert.Equal(t, a.Technology, b.Technology)
	assert.Equal(t, a.Processing, b.Processing)
	assert.Equal(t, a.Setup, b.Setup)
	assert.Equal(t, a.Predecessors, b.Predecessors)
}

func TestGenerateRespectsParams(t *testing.T) {
	params := DefaultParams(30, 2)
	params.RemoteShare = 0.2

	p, err := Generate(params, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	remotes := 0
	for i := 1; i <= p.N; i++ {
		switch p.Technology[i] {
		case model.TechRemote:
			remotes++
			assert.Equal(t, 1.0, p.Processing[i])
		case model.TechManual:
			assert.GreaterOrEqual(t, p.Processing[i], params.ProcessingMin)
			assert.LessOrEqual(t, p.Processing[i], params.ProcessingMax)
		}
	}
	assert.Equal(t, 6, remotes)

	// Precedence arcs are acyclic by construction.
	for i := 1; i <= p.N; i++ {
		assert.False(t, p.Precedes(i, i))
	}
}

func TestGenerateTriangularInequality(t *testing.T) {
	params := DefaultParams(10, 2)

	p, err := Generate(params, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	for k := 1; k <= p.M; k++ {
		for i := 0; i <= p.N; i++ {
			for j := 0; j <= p.N; j++ {
				for l := 0; l <= p.N; l++ {
					via := p.Setup[i][l][k] + p.Setup[l][j][k]
					if l != 0 {
						via += p.Processing[l]
					}
					assert.LessOrEqual(t, p.Setup[i][j][k], via+1e-9)
				}
			}
		}
	}
}

func TestGenerateRejectsBadParams(t *testing.T) {
	params := DefaultParams(10, 2)
	params.RemoteShare = 1.5
	_, err := Generate(params, rand.New(rand.NewSource(0)))
	assert.Error(t, err)

	params = DefaultParams(0, 2)
	_, err = Generate(params, rand.New(rand.NewSource(0)))
	assert.Error(t, err)
}
