package debug

import (
	"io"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"kirchhoff/graph"
	ctypes "kirchhoff/types"
)

// 节点分类
const (
	categoryReference = 0 // 参考节点
	categoryNode      = 1 // 普通节点
)

// Charts 电路拓扑网页
type Charts struct {
	Graph *graph.Graph // 电路图
	Loops []graph.Loop // 回路
}

// NewCharts 创建拓扑网页
func NewCharts(g *graph.Graph, loops []graph.Loop) *Charts {
	return &Charts{Graph: g, Loops: loops}
}

// Render 输出 HTML
func (c *Charts) Render(w io.Writer) error {
	page := components.NewPage()
	page.PageTitle = c.Graph.Name()
	page.AddCharts(c.topology(), c.degree(), c.loopLength())
	return page.Render(w)
}

// Handler 发布到网页面
func (c *Charts) Handler(w http.ResponseWriter, _ *http.Request) {
	if err := c.Render(w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// topology 节点与支路网络图
func (c *Charts) topology() *charts.Graph {
	chart := charts.NewGraph()
	chart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:     types.ThemeWesteros,
			PageTitle: c.Graph.Name(),
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    c.Graph.Name(),
			Subtitle: "电路连接节点网络图",
		}),
		charts.WithLegendOpts(opts.Legend{
			Type:   "scroll",
			Orient: "vertical",
			Right:  "10",
			Top:    "20",
			Bottom: "20",
		}),
	)
	nodes := make([]opts.GraphNode, 0)
	for _, n := range c.Graph.Nodes() {
		category := categoryNode
		if n.Reference {
			category = categoryReference
		}
		nodes = append(nodes, opts.GraphNode{
			Name:     n.ID,
			Category: category,
			Tooltip:  &opts.Tooltip{Show: opts.Bool(true)},
		})
	}
	links := make([]opts.GraphLink, 0)
	for _, pair := range c.Graph.Pairs() {
		value := pair.Branch.Resistance
		if pair.Branch.ElementType == ctypes.TypeVoltageSource {
			value = pair.Branch.Voltage
		}
		links = append(links, opts.GraphLink{
			Source: pair.Branch.From,
			Target: pair.Branch.To,
			Value:  float32(value),
		})
	}
	chart.AddSeries("支路", nodes, links,
		charts.WithGraphChartOpts(opts.GraphChart{
			Categories: []*opts.GraphCategory{
				{Name: "参考节点", ItemStyle: &opts.ItemStyle{Color: "#000000de"}},
				{Name: "节点", ItemStyle: &opts.ItemStyle{Color: "#1987c7b7"}},
			},
			Roam:               opts.Bool(true),
			Force:              &opts.GraphForce{Repulsion: 120},
			EdgeLabel:          &opts.EdgeLabel{Show: opts.Bool(true)},
			FocusNodeAdjacency: opts.Bool(true),
		}),
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "right"}),
	)
	return chart
}

// degree 节点关联支路数
func (c *Charts) degree() *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		charts.WithTitleOpts(opts.Title{Title: "节点支路数", Subtitle: "每个节点关联的支路数量"}),
	)
	names := make([]string, 0)
	items := make([]opts.BarData, 0)
	for _, n := range c.Graph.Nodes() {
		names = append(names, n.ID)
		items = append(items, opts.BarData{Value: len(c.Graph.Neighbors(n.ID))})
	}
	bar.SetXAxis(names).AddSeries("支路数", items)
	return bar
}

// loopLength 回路长度
func (c *Charts) loopLength() *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		charts.WithTitleOpts(opts.Title{Title: "回路", Subtitle: "每个回路经过的支路数量"}),
	)
	names := make([]string, 0)
	items := make([]opts.BarData, 0)
	for _, loop := range c.Loops {
		names = append(names, loop.String())
		items = append(items, opts.BarData{Value: len(loop.Edges())})
	}
	bar.SetXAxis(names).AddSeries("支路数", items)
	return bar
}
