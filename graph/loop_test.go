package graph

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"kirchhoff/types"
)

func TestFindLoopsLadder(t *testing.T) {
	g := mustGraph(t, ladder())
	loops, err := FindLoops(g, LoopsDFS)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"n0-n1-n2-n0", "n0-n1-n3-n0"}
	if len(loops) != len(want) {
		t.Fatalf("回路数量 %d (%v), 期望 %d", len(loops), loops, len(want))
	}
	for i, loop := range loops {
		if loop.String() != want[i] {
			t.Errorf("第 %d 个回路 %s, 期望 %s", i, loop, want[i])
		}
	}
}

func TestFindLoopsExhaustive(t *testing.T) {
	g := mustGraph(t, ladder())
	loops, err := FindLoops(g, LoopsExhaustive)
	if err != nil {
		t.Fatal(err)
	}
	// 两个内回路与一个外回路
	if len(loops) != 3 {
		t.Fatalf("回路数量 %d (%v), 期望 3", len(loops), loops)
	}
	seen := map[string]bool{}
	for _, loop := range loops {
		if seen[loop.Key()] {
			t.Errorf("重复回路 %s", loop)
		}
		seen[loop.Key()] = true
	}
}

func TestFindLoopsIndependent(t *testing.T) {
	// 完全图 K4, 独立回路数 6 - 4 + 1 = 3
	desc := circuit(nodes("a", "b", "c", "d"),
		resistor("a", "b"), resistor("a", "c"), resistor("a", "d"),
		resistor("b", "c"), resistor("b", "d"), resistor("c", "d"),
	)
	g := mustGraph(t, desc)
	all, err := FindLoops(g, LoopsExhaustive)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 7 {
		t.Fatalf("K4 简单回路数量 %d, 期望 7", len(all))
	}
	basis, err := FindLoops(g, LoopsIndependent)
	if err != nil {
		t.Fatal(err)
	}
	if len(basis) != g.CycleRank() || len(basis) != 3 {
		t.Fatalf("独立回路数量 %d, 期望 %d", len(basis), g.CycleRank())
	}
	if r := rank(Incidence(g, basis)); r != 3 {
		t.Errorf("关联矩阵秩 %d, 期望 3", r)
	}
}

func TestFindLoopsNone(t *testing.T) {
	g := mustGraph(t, circuit(nodes("n0", "n1", "n2"), resistor("n0", "n1"), resistor("n1", "n2")))
	for _, mode := range []LoopMode{LoopsDFS, LoopsExhaustive, LoopsIndependent} {
		loops, err := FindLoops(g, mode)
		if err != nil {
			t.Fatal(err)
		}
		if len(loops) != 0 {
			t.Errorf("%s: 无回路电路得到 %v", mode, loops)
		}
	}
}

func TestFindLoopsUnknownMode(t *testing.T) {
	g := mustGraph(t, ladder())
	if _, err := FindLoops(g, LoopMode("bfs")); err == nil {
		t.Error("未知模式应当报错")
	}
	if LoopMode("bfs").Valid() || !LoopsIndependent.Valid() {
		t.Error("模式校验错误")
	}
}

func TestFundamentalLoops(t *testing.T) {
	g := mustGraph(t, ladder())
	loops := FundamentalLoops(g)
	if len(loops) != g.CycleRank() {
		t.Fatalf("基本回路数量 %d, 期望 %d", len(loops), g.CycleRank())
	}
	for _, loop := range loops {
		if loop[0] != loop[len(loop)-1] {
			t.Errorf("回路未闭合: %s", loop)
		}
		for _, e := range loop.Edges() {
			if _, ok := g.Pair(e); !ok {
				t.Errorf("回路 %s 经过不存在的支路 %s", loop, e)
			}
		}
	}
}

func TestLoopKey(t *testing.T) {
	a := Loop{"n0", "n1", "n2", "n0"}
	b := Loop{"n2", "n1", "n0", "n2"}
	c := Loop{"n1", "n0", "n2", "n1"}
	if a.Key() != b.Key() || a.Key() != c.Key() {
		t.Error("去重键应与起点和方向无关")
	}
	if a.Key() == (Loop{"n0", "n1", "n3", "n0"}).Key() {
		t.Error("不同回路的去重键相同")
	}
}

// triangleOrders 三角形节点的全部声明顺序
var triangleOrders = [][]types.NodeID{
	{"a", "b", "c"}, {"a", "c", "b"}, {"b", "a", "c"},
	{"b", "c", "a"}, {"c", "a", "b"}, {"c", "b", "a"},
}

func TestTriangleSingleLoop(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("single triangle yields exactly one loop from any start", prop.ForAll(
		func(order int, flips []bool, tail bool) bool {
			ids := triangleOrders[order]
			list := make([]types.Node, 0, 4)
			for i, id := range ids {
				list = append(list, types.Node{ID: id, Reference: i == 0})
			}
			edges := [][2]types.NodeID{{"a", "b"}, {"b", "c"}, {"c", "a"}}
			comps := make([]types.Component, 0, 4)
			for i, e := range edges {
				if flips[i] {
					e[0], e[1] = e[1], e[0]
				}
				comps = append(comps, resistor(e[0], e[1]))
			}
			if tail {
				list = append(list, types.Node{ID: "d"})
				comps = append(comps, resistor("c", "d"))
			}
			g, err := NewGraph(circuit(list, comps...))
			if err != nil {
				return false
			}
			for _, mode := range []LoopMode{LoopsDFS, LoopsExhaustive, LoopsIndependent} {
				loops, err := FindLoops(g, mode)
				if err != nil || len(loops) != 1 || len(loops[0].Edges()) != 3 {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, len(triangleOrders)-1),
		gen.SliceOfN(3, gen.Bool()),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
