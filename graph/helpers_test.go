package graph

import (
	"testing"

	"kirchhoff/types"
)

// circuit 构造测试电路描述
func circuit(nodes []types.Node, comps ...types.Component) *types.Description {
	for i := range comps {
		comps[i].ID = i
		if comps[i].Type == types.TypeResistor && comps[i].Value == "" {
			comps[i].Value = "100k"
		}
	}
	return &types.Description{Name: "test", Nodes: nodes, Components: comps}
}

// resistor 电阻
func resistor(from, to types.NodeID) types.Component {
	return types.Component{Type: types.TypeResistor, Name: "resistor", First: from, Second: to}
}

// source 电压源
func source(pos, neg types.NodeID, v float64) types.Component {
	return types.Component{Type: types.TypeVoltageSource, Name: "dc_voltage_source", Voltage: v, First: pos, Second: neg}
}

// nodes 第一个节点为参考节点
func nodes(ids ...types.NodeID) []types.Node {
	list := make([]types.Node, len(ids))
	for i, id := range ids {
		list[i] = types.Node{ID: id, Reference: i == 0}
	}
	return list
}

// ladder 两级梯形电路
func ladder() *types.Description {
	return circuit(nodes("n0", "n1", "n2", "n3"),
		source("n1", "n0", 10),
		resistor("n1", "n2"),
		resistor("n2", "n0"),
		resistor("n1", "n3"),
		resistor("n3", "n0"),
	)
}

func mustGraph(t *testing.T, desc *types.Description) *Graph {
	t.Helper()
	g, err := NewGraph(desc)
	if err != nil {
		t.Fatalf("建图失败: %v", err)
	}
	return g
}
