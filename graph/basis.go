package graph

import (
	"gonum.org/v1/gonum/mat"

	"kirchhoff/types"
)

// Incidence 回路-边有向关联矩阵
// 行对应回路, 列对应支路表中的节点对, 沿存储方向 +1, 反向 -1.
func Incidence(graph *Graph, loops []Loop) *mat.Dense {
	if len(loops) == 0 || len(graph.pairs) == 0 {
		return nil
	}
	col := make(map[types.PairKey]int, len(graph.pairs))
	for i, pair := range graph.pairs {
		col[pair.Key] = i
	}
	m := mat.NewDense(len(loops), len(graph.pairs), nil)
	for r, loop := range loops {
		for i := 1; i < len(loop); i++ {
			key := types.NewPairKey(loop[i-1], loop[i])
			c, ok := col[key]
			if !ok {
				continue
			}
			dir := 1.0
			if loop[i-1] != key.A {
				dir = -1
			}
			m.Set(r, c, m.At(r, c)+dir)
		}
	}
	return m
}

// rank 矩阵秩
func rank(m mat.Matrix) int {
	var svd mat.SVD
	if !svd.Factorize(m, mat.SVDNone) {
		return 0
	}
	return svd.Rank(types.RankTolerance)
}

// Independent 依次保留使关联矩阵秩增加的回路
func Independent(graph *Graph, loops []Loop) []Loop {
	want := graph.CycleRank()
	if want <= 0 || len(loops) == 0 {
		return nil
	}
	m := Incidence(graph, loops)
	_, cols := m.Dims()
	kept := make([]Loop, 0, want)
	rows := make([]float64, 0, want*cols)
	for r, loop := range loops {
		next := append(rows, m.RawRowView(r)...)
		if rank(mat.NewDense(len(kept)+1, cols, next)) <= len(kept) {
			continue
		}
		rows = next
		kept = append(kept, loop)
		if len(kept) == want {
			break
		}
	}
	return kept
}
