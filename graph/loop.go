package graph

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"kirchhoff/types"
)

// LoopMode 回路搜索方式
type LoopMode string

// 回路搜索方式常量定义
const (
	LoopsDFS         LoopMode = "dfs"         // 每个起点的深度优先搜索, 边在同一次搜索中只走一次
	LoopsExhaustive  LoopMode = "exhaustive"  // 回溯时释放边, 枚举全部简单回路
	LoopsIndependent LoopMode = "independent" // 仅保留线性无关的回路
)

// Valid 模式是否可识别
func (mode LoopMode) Valid() bool {
	switch mode {
	case LoopsDFS, LoopsExhaustive, LoopsIndependent:
		return true
	}
	return false
}

// Loop 闭合回路, 首尾节点相同
type Loop []types.NodeID

// Edges 回路经过的无序边
func (loop Loop) Edges() []types.PairKey {
	if len(loop) < 2 {
		return nil
	}
	edges := make([]types.PairKey, 0, len(loop)-1)
	for i := 1; i < len(loop); i++ {
		edges = append(edges, types.NewPairKey(loop[i-1], loop[i]))
	}
	return edges
}

// Key 去重键, 与起点和方向无关
func (loop Loop) Key() string {
	edges := loop.Edges()
	slices.SortFunc(edges, func(a, b types.PairKey) int {
		if c := cmp.Compare(a.A, b.A); c != 0 {
			return c
		}
		return cmp.Compare(a.B, b.B)
	})
	var sb strings.Builder
	for _, e := range edges {
		sb.WriteString(e.A)
		sb.WriteByte(0)
		sb.WriteString(e.B)
		sb.WriteByte(0)
	}
	return sb.String()
}

// String 打印
func (loop Loop) String() string { return strings.Join(loop, "-") }

// loopFinder 单次搜索状态
type loopFinder struct {
	graph   *Graph
	release bool            // 回溯时释放边
	seen    map[string]bool // 已报告的回路
	loops   []Loop
}

// FindLoops 搜索电路中的回路
func FindLoops(graph *Graph, mode LoopMode) ([]Loop, error) {
	switch mode {
	case LoopsDFS, "":
		return newLoopFinder(graph, false).run(), nil
	case LoopsExhaustive:
		return newLoopFinder(graph, true).run(), nil
	case LoopsIndependent:
		candidates := newLoopFinder(graph, false).run()
		return Independent(graph, append(candidates, FundamentalLoops(graph)...)), nil
	}
	return nil, fmt.Errorf("unknown loop mode %q", mode)
}

func newLoopFinder(graph *Graph, release bool) *loopFinder {
	return &loopFinder{graph: graph, release: release, seen: map[string]bool{}}
}

// run 从每个节点开始搜索
func (f *loopFinder) run() []Loop {
	for _, node := range f.graph.nodes {
		pos := map[types.NodeID]int{node.ID: 0}
		f.walk(node.ID, []types.NodeID{node.ID}, pos, map[types.PairKey]bool{})
	}
	return f.loops
}

// walk 深度优先, 到达路径上已有节点即得到回路
func (f *loopFinder) walk(id types.NodeID, path []types.NodeID, pos map[types.NodeID]int, used map[types.PairKey]bool) {
	for _, next := range f.graph.adj[id] {
		key := types.NewPairKey(id, next)
		if used[key] {
			continue
		}
		used[key] = true
		if at, ok := pos[next]; ok {
			f.add(append(slices.Clone(path[at:]), next))
		} else {
			pos[next] = len(path)
			f.walk(next, append(path, next), pos, used)
			delete(pos, next)
		}
		if f.release {
			delete(used, key)
		}
	}
}

// add 去重后记录
func (f *loopFinder) add(loop Loop) {
	key := loop.Key()
	if f.seen[key] {
		return
	}
	f.seen[key] = true
	f.loops = append(f.loops, loop)
}

// FundamentalLoops 生成树上每条非树边对应的基本回路
func FundamentalLoops(graph *Graph) []Loop {
	parent := map[types.NodeID]types.NodeID{}
	depth := map[types.NodeID]int{}
	tree := map[types.PairKey]bool{}
	for _, node := range graph.nodes {
		if _, ok := depth[node.ID]; ok {
			continue
		}
		depth[node.ID] = 0
		queue := []types.NodeID{node.ID}
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			for _, next := range graph.adj[id] {
				if _, ok := depth[next]; ok {
					continue
				}
				depth[next] = depth[id] + 1
				parent[next] = id
				tree[types.NewPairKey(id, next)] = true
				queue = append(queue, next)
			}
		}
	}
	var loops []Loop
	for _, pair := range graph.pairs {
		if tree[pair.Key] {
			continue
		}
		u, v := pair.Branch.From, pair.Branch.To
		up, down := []types.NodeID{u}, []types.NodeID{v}
		for u != v {
			if depth[u] >= depth[v] {
				u = parent[u]
				up = append(up, u)
			} else {
				v = parent[v]
				down = append(down, v)
			}
		}
		// up 与 down 末尾都是公共祖先
		loop := Loop(up)
		for i := len(down) - 2; i >= 0; i-- {
			loop = append(loop, down[i])
		}
		loops = append(loops, append(loop, pair.Branch.From))
	}
	return loops
}
