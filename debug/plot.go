package debug

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"kirchhoff/graph"
	"kirchhoff/types"
)

// 图片尺寸
var (
	PlotWidth  = 6 * vg.Inch
	PlotHeight = 6 * vg.Inch
)

// Layout 节点按声明顺序均匀排在单位圆上
func Layout(g *graph.Graph) map[types.NodeID]plotter.XY {
	nodes := g.Nodes()
	pos := make(map[types.NodeID]plotter.XY, len(nodes))
	for i, n := range nodes {
		angle := math.Pi/2 - 2*math.Pi*float64(i)/float64(len(nodes))
		pos[n.ID] = plotter.XY{X: math.Cos(angle), Y: math.Sin(angle)}
	}
	return pos
}

// Plot 电路拓扑图, 回路用不同颜色标出
func Plot(g *graph.Graph, loops []graph.Loop) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = g.Name()
	p.HideAxes()
	pos := Layout(g)
	// 支路, 电压源用虚线
	for _, pair := range g.Pairs() {
		line, err := plotter.NewLine(plotter.XYs{pos[pair.Branch.From], pos[pair.Branch.To]})
		if err != nil {
			return nil, err
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = color.Gray{Y: 120}
		if pair.Branch.ElementType == types.TypeVoltageSource {
			line.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
		}
		p.Add(line)
	}
	// 回路向圆心收缩, 避免与支路重叠
	for i, loop := range loops {
		shrink := 0.9 - 0.05*float64(i%8)
		xys := make(plotter.XYs, len(loop))
		for j, id := range loop {
			xys[j] = plotter.XY{X: pos[id].X * shrink, Y: pos[id].Y * shrink}
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, err
		}
		line.LineStyle.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("loop %d", i+1), line)
	}
	// 节点
	xys := make(plotter.XYs, 0)
	labels := make([]string, 0)
	for _, n := range g.Nodes() {
		xys = append(xys, pos[n.ID])
		name := n.ID
		if n.Reference {
			name += " (0V)"
		}
		labels = append(labels, name)
	}
	if len(xys) > 0 {
		scatter, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, err
		}
		scatter.GlyphStyle.Radius = vg.Points(4)
		p.Add(scatter)
		names, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
		if err != nil {
			return nil, err
		}
		p.Add(names)
	}
	p.X.Min, p.X.Max = -1.3, 1.3
	p.Y.Min, p.Y.Max = -1.3, 1.3
	return p, nil
}

// WritePlot 按格式输出图片, format 为 png/svg/pdf 等
func WritePlot(w io.Writer, g *graph.Graph, loops []graph.Loop, format string) error {
	p, err := Plot(g, loops)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(PlotWidth, PlotHeight, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
