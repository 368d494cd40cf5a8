package debug

import (
	"bytes"
	"math"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kirchhoff/graph"
	"kirchhoff/types"
)

func ladder(t *testing.T) (*graph.Graph, []graph.Loop) {
	t.Helper()
	desc := &types.Description{
		Name:  "ladder",
		Nodes: []types.Node{{ID: "n0", Reference: true}, {ID: "n1"}, {ID: "n2"}, {ID: "n3"}},
		Components: []types.Component{
			{ID: 0, Type: types.TypeVoltageSource, Voltage: 10, First: "n1", Second: "n0"},
			{ID: 1, Type: types.TypeResistor, Value: "100k", First: "n1", Second: "n2"},
			{ID: 2, Type: types.TypeResistor, Value: "100k", First: "n2", Second: "n0"},
			{ID: 3, Type: types.TypeResistor, Value: "100k", First: "n1", Second: "n3"},
			{ID: 4, Type: types.TypeResistor, Value: "100k", First: "n3", Second: "n0"},
		},
	}
	g, err := graph.NewGraph(desc)
	require.NoError(t, err)
	loops, err := graph.FindLoops(g, graph.LoopsDFS)
	require.NoError(t, err)
	return g, loops
}

func TestChartsRender(t *testing.T) {
	g, loops := ladder(t)
	var buf bytes.Buffer
	require.NoError(t, NewCharts(g, loops).Render(&buf))
	html := buf.String()
	assert.Contains(t, html, "<html")
	for _, name := range []string{"n0", "n1", "n2", "n3", "n0-n1-n2-n0", "n0-n1-n3-n0"} {
		assert.Contains(t, html, name)
	}
}

func TestChartsHandler(t *testing.T) {
	g, loops := ladder(t)
	rec := httptest.NewRecorder()
	NewCharts(g, loops).Handler(rec, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "ladder"))
}

func TestLayout(t *testing.T) {
	g, _ := ladder(t)
	pos := Layout(g)
	require.Len(t, pos, 4)
	for id, xy := range pos {
		assert.InDelta(t, 1, math.Hypot(xy.X, xy.Y), 1e-12, id)
	}
	assert.InDelta(t, 1, pos["n0"].Y, 1e-12)
}

func TestWritePlot(t *testing.T) {
	g, loops := ladder(t)
	var png bytes.Buffer
	require.NoError(t, WritePlot(&png, g, loops, "png"))
	assert.True(t, bytes.HasPrefix(png.Bytes(), []byte("\x89PNG")))

	var svg bytes.Buffer
	require.NoError(t, WritePlot(&svg, g, nil, "svg"))
	assert.Contains(t, svg.String(), "<svg")

	assert.Error(t, WritePlot(&bytes.Buffer{}, g, loops, "bmp"))
}
