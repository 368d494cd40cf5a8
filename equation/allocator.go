package equation

import (
	"strconv"

	"kirchhoff/types"
)

// Current 支路电流未知量
type Current struct {
	Pair   types.PairKey // 无序节点对
	Symbol string        // 符号名
}

// Allocator 支路电流符号分配, 只在一次生成过程中使用
type Allocator struct {
	symbols map[types.PairKey]string
	order   []Current
}

// NewAllocator 创建分配器
func NewAllocator() *Allocator {
	return &Allocator{symbols: map[types.PairKey]string{}}
}

// GetOrCreate 同一节点对返回同一符号, 新节点对按首次出现顺序编号
func (a *Allocator) GetOrCreate(pair types.PairKey) string {
	if sym, ok := a.symbols[pair]; ok {
		return sym
	}
	sym := types.CurrentPrefix + strconv.Itoa(len(a.order)+1)
	a.symbols[pair] = sym
	a.order = append(a.order, Current{Pair: pair, Symbol: sym})
	return sym
}

// Len 已分配数量
func (a *Allocator) Len() int { return len(a.order) }

// Currents 已分配符号, 分配顺序
func (a *Allocator) Currents() []Current {
	return append([]Current(nil), a.order...)
}
