package types

import (
	"errors"
	"fmt"
)

// ErrInvalidCircuit 电路描述缺少 nodes 或 components
var ErrInvalidCircuit = errors.New("invalid/empty circuit")

// MalformedCircuitError 电路内容错误
// Component 为 -1 时表示错误与具体元件无关.
type MalformedCircuitError struct {
	Component ComponentID // 元件序号
	Type      string      // 元件类型
	Node      NodeID      // 出错节点
	Reason    string      // 原因
}

// Error 错误描述
func (e *MalformedCircuitError) Error() string {
	switch {
	case e.Component < 0 && e.Node != "":
		return fmt.Sprintf("malformed circuit: node %q: %s", e.Node, e.Reason)
	case e.Component < 0:
		return fmt.Sprintf("malformed circuit: %s", e.Reason)
	case e.Node != "":
		return fmt.Sprintf("malformed circuit: component %d (%s) references node %q: %s", e.Component, e.Type, e.Node, e.Reason)
	}
	return fmt.Sprintf("malformed circuit: component %d (%s): %s", e.Component, e.Type, e.Reason)
}

// ParseError 阻值解析错误
type ParseError struct {
	Value string // 原始文本
	Err   error  // 底层错误
}

// Error 错误描述
func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse resistance %q: %v", e.Value, e.Err)
}

// Unwrap 底层错误
func (e *ParseError) Unwrap() error { return e.Err }
