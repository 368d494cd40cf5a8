package equation

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"kirchhoff/types"
)

func TestAllocatorOrder(t *testing.T) {
	a := NewAllocator()
	p1 := types.NewPairKey("n1", "n2")
	p2 := types.NewPairKey("n0", "n2")
	if sym := a.GetOrCreate(p1); sym != "I_1" {
		t.Fatalf("第一个符号 %s", sym)
	}
	if sym := a.GetOrCreate(p2); sym != "I_2" {
		t.Fatalf("第二个符号 %s", sym)
	}
	if sym := a.GetOrCreate(types.NewPairKey("n2", "n1")); sym != "I_1" {
		t.Errorf("反向节点对应返回 I_1, 得到 %s", sym)
	}
	cur := a.Currents()
	if a.Len() != 2 || cur[0].Pair != p1 || cur[1].Symbol != "I_2" {
		t.Errorf("分配结果 %v", cur)
	}
}

func TestAllocatorIndependent(t *testing.T) {
	a, b := NewAllocator(), NewAllocator()
	a.GetOrCreate(types.NewPairKey("x", "y"))
	a.GetOrCreate(types.NewPairKey("y", "z"))
	if sym := b.GetOrCreate(types.NewPairKey("y", "z")); sym != "I_1" {
		t.Errorf("新分配器应从 I_1 开始, 得到 %s", sym)
	}
}

func TestAllocatorProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	pairs := gen.SliceOf(gen.SliceOfN(2, gen.IntRange(0, 6)))

	properties.Property("same pair always maps to the same symbol", prop.ForAll(
		func(list [][]int) bool {
			a := NewAllocator()
			first := map[types.PairKey]string{}
			for _, p := range list {
				key := types.NewPairKey(fmt.Sprint("n", p[0]), fmt.Sprint("n", p[1]))
				sym := a.GetOrCreate(key)
				if prev, ok := first[key]; ok && prev != sym {
					return false
				}
				first[key] = sym
				if again := a.GetOrCreate(types.NewPairKey(key.B, key.A)); again != sym {
					return false
				}
			}
			return a.Len() == len(first)
		},
		pairs,
	))

	properties.Property("symbols are numbered by first appearance", prop.ForAll(
		func(list [][]int) bool {
			a := NewAllocator()
			for _, p := range list {
				a.GetOrCreate(types.NewPairKey(fmt.Sprint("n", p[0]), fmt.Sprint("n", p[1])))
			}
			for i, cur := range a.Currents() {
				if cur.Symbol != fmt.Sprintf("I_%d", i+1) {
					return false
				}
			}
			return true
		},
		pairs,
	))

	properties.TestingRun(t)
}
