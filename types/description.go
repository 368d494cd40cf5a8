package types

// Component 元件描述, 值尚未解析
type Component struct {
	ID      ComponentID // 元件序号
	Type    ElementType // 元件类型
	Name    string      // 类型原始名称
	Value   string      // 电阻值文本
	Voltage float64     // 电压值
	First   NodeID      // from/positive
	Second  NodeID      // to/negative
}

// Description 单个电路的描述
// Err 不为空时表示描述在加载阶段已判定无效, 分析时直接报告.
type Description struct {
	Name       string      // 电路名称
	Nodes      []Node      // 节点, 保持声明顺序
	Components []Component // 元件, 保持声明顺序
	Err        error       // 加载错误
}
