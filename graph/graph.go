package graph

import (
	"fmt"
	"log/slog"
	"slices"

	"kirchhoff/load"
	"kirchhoff/types"
)

// Pair 支路表项, 同一无序节点对上的元件合并为一条支路
type Pair struct {
	Key       types.PairKey // 无序节点对
	Branch    types.Branch  // 代表元件, 后出现的覆盖先出现的
	Collapsed int           // 被覆盖的元件数量
}

// Options 建图参数
type Options struct {
	Suffix load.SuffixMode // 阻值后缀约定
	Logger *slog.Logger    // 日志
}

// Graph 电路图, 创建后只读
type Graph struct {
	name     string
	nodes    []types.Node
	index    map[types.NodeID]int
	branches []types.Branch
	pairs    []*Pair
	table    map[types.PairKey]*Pair
	adj      map[types.NodeID][]types.NodeID
}

// NewGraph 创建图
func NewGraph(desc *types.Description, options ...func(*Options)) (graph *Graph, err error) {
	opts := Options{Suffix: load.SuffixSource, Logger: slog.Default()}
	for _, opt := range options {
		opt(&opts)
	}
	if desc.Err != nil {
		return nil, desc.Err
	}
	if len(desc.Nodes) == 0 {
		return nil, &types.MalformedCircuitError{Component: -1, Reason: "empty node map"}
	}
	graph = &Graph{
		name:     desc.Name,
		nodes:    slices.Clone(desc.Nodes),
		index:    make(map[types.NodeID]int, len(desc.Nodes)),
		branches: make([]types.Branch, 0, len(desc.Components)),
		table:    map[types.PairKey]*Pair{},
		adj:      map[types.NodeID][]types.NodeID{},
	}
	for i, node := range graph.nodes {
		graph.index[node.ID] = i
	}
	for _, comp := range desc.Components {
		branch, err := graph.newBranch(comp, opts.Suffix)
		if err != nil {
			return nil, err
		}
		if err := graph.addBranch(branch, opts.Logger); err != nil {
			return nil, err
		}
	}
	return graph, nil
}

// newBranch 校验节点并解析元件值
func (graph *Graph) newBranch(comp types.Component, suffix load.SuffixMode) (branch types.Branch, err error) {
	for _, id := range []types.NodeID{comp.First, comp.Second} {
		if _, ok := graph.index[id]; !ok {
			return branch, &types.MalformedCircuitError{Component: comp.ID, Type: comp.Type.String(), Node: id, Reason: "node not declared"}
		}
	}
	branch = types.Branch{ElementType: comp.Type, ID: comp.ID, From: comp.First, To: comp.Second}
	switch comp.Type {
	case types.TypeResistor:
		if branch.Resistance, err = suffix.Parse(comp.Value); err != nil {
			return branch, fmt.Errorf("component %d (%s): %w", comp.ID, comp.Type, err)
		}
	case types.TypeVoltageSource:
		branch.Voltage = comp.Voltage
	default:
		return branch, &types.MalformedCircuitError{Component: comp.ID, Type: comp.Name, Reason: "unknown component type"}
	}
	return branch, nil
}

// addBranch 添加支路并更新支路表
func (graph *Graph) addBranch(branch types.Branch, logger *slog.Logger) error {
	graph.branches = append(graph.branches, branch)
	key := branch.Pair()
	if key.SelfLoop() {
		logger.Debug("自环元件不参与回路", "circuit", graph.name, "branch", branch.String())
		return nil
	}
	if pair, ok := graph.table[key]; ok {
		logger.Debug("并联元件合并", "circuit", graph.name, "pair", key.String(), "replaced", pair.Branch.String(), "by", branch.String())
		pair.Branch = branch
		pair.Collapsed++
		return nil
	}
	pair := &Pair{Key: key, Branch: branch}
	graph.pairs = append(graph.pairs, pair)
	graph.table[key] = pair
	graph.adj[branch.From] = append(graph.adj[branch.From], branch.To)
	graph.adj[branch.To] = append(graph.adj[branch.To], branch.From)
	return nil
}

// Name 电路名称
func (graph *Graph) Name() string { return graph.name }

// Nodes 节点列表, 声明顺序
func (graph *Graph) Nodes() []types.Node { return slices.Clone(graph.nodes) }

// Node 查找节点
func (graph *Graph) Node(id types.NodeID) (types.Node, bool) {
	i, ok := graph.index[id]
	if !ok {
		return types.Node{}, false
	}
	return graph.nodes[i], true
}

// Branches 全部元件支路, 元件顺序
func (graph *Graph) Branches() []types.Branch { return slices.Clone(graph.branches) }

// Pairs 支路表, 首次出现顺序
func (graph *Graph) Pairs() []Pair {
	list := make([]Pair, len(graph.pairs))
	for i, pair := range graph.pairs {
		list[i] = *pair
	}
	return list
}

// Pair 按无序节点对查找支路
func (graph *Graph) Pair(key types.PairKey) (Pair, bool) {
	pair, ok := graph.table[key]
	if !ok {
		return Pair{}, false
	}
	return *pair, true
}

// Neighbors 相邻节点
func (graph *Graph) Neighbors(id types.NodeID) []types.NodeID {
	return slices.Clone(graph.adj[id])
}

// Voltage 节点电压项, 参考节点返回空符号表示常量 0
func (graph *Graph) Voltage(id types.NodeID) (symbol string, err error) {
	node, ok := graph.Node(id)
	if !ok {
		return "", &types.MalformedCircuitError{Component: -1, Node: id, Reason: "node not declared"}
	}
	if node.Reference {
		return "", nil
	}
	return node.VoltageSymbol(), nil
}

// ReferenceCount 参考节点数量
func (graph *Graph) ReferenceCount() (n int) {
	for _, node := range graph.nodes {
		if node.Reference {
			n++
		}
	}
	return n
}

// Components 连通分量数量
func (graph *Graph) Components() (count int) {
	seen := make(map[types.NodeID]bool, len(graph.nodes))
	for _, node := range graph.nodes {
		if seen[node.ID] {
			continue
		}
		count++
		stack := []types.NodeID{node.ID}
		seen[node.ID] = true
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, next := range graph.adj[id] {
				if !seen[next] {
					seen[next] = true
					stack = append(stack, next)
				}
			}
		}
	}
	return count
}

// CycleRank 独立回路数 E - N + C
func (graph *Graph) CycleRank() int {
	return len(graph.pairs) - len(graph.nodes) + graph.Components()
}
