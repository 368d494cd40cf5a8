package types

import (
	"cmp"
	"fmt"
)

// NodeID 节点标识
type NodeID = string

// ComponentID 元件序号(描述文件中的位置)
type ComponentID = int

// ElementType 元件类型
type ElementType uint

// Node 电路节点
type Node struct {
	ID        NodeID // 节点标识
	Reference bool   // 是否为参考节点(电压恒为0)
}

// VoltageSymbol 节点电压符号名
func (n Node) VoltageSymbol() string { return VoltagePrefix + n.ID }

// PairKey 无序节点对,A <= B
type PairKey struct {
	A, B NodeID
}

// NewPairKey 创建无序节点对
func NewPairKey(a, b NodeID) PairKey {
	if cmp.Less(b, a) {
		a, b = b, a
	}
	return PairKey{A: a, B: b}
}

// SelfLoop 两端相同
func (p PairKey) SelfLoop() bool { return p.A == p.B }

// String 打印
func (p PairKey) String() string { return fmt.Sprintf("%s-%s", p.A, p.B) }

// Branch 支路
// From/To 对电阻为 from/to, 对电压源为 positive/negative.
type Branch struct {
	ElementType             // 元件类型
	ID          ComponentID // 元件序号
	From        NodeID      // 第一端
	To          NodeID      // 第二端
	Resistance  float64     // 电阻值
	Voltage     float64     // 电压值
}

// Pair 无序节点对
func (b Branch) Pair() PairKey { return NewPairKey(b.From, b.To) }

// Direction 按 from->to 的遍历方向, 与存储方向一致为 +1 否则 -1
func (b Branch) Direction(from, to NodeID) float64 {
	if b.From == from && b.To == to {
		return 1
	}
	return -1
}

// String 打印
func (b Branch) String() string {
	return fmt.Sprintf("%s#%d(%s,%s)", b.ElementType, b.ID, b.From, b.To)
}
