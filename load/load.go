package load

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"kirchhoff/types"
)

// LoadString 加载电路描述文档
func LoadString(s string) ([]*types.Description, error) {
	return LoadReader(strings.NewReader(s))
}

// LoadFile 加载电路描述文件
func LoadFile(filename string) ([]*types.Description, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return LoadReader(bytes.NewReader(data))
}

// LoadReader 加载电路描述文档, JSON 作为 YAML 解析.
// 每个文档顶层是 电路名 -> 电路 的映射, 保持声明顺序, 多个 YAML 文档依次合并.
// 单个电路的内容错误记录在 Description.Err 中, 不影响其他电路.
func LoadReader(r io.Reader) ([]*types.Description, error) {
	dec := yaml.NewDecoder(r)
	var descs []*types.Description
	for {
		var doc yaml.Node
		if err := dec.Decode(&doc); err != nil {
			if err == io.EOF {
				return descs, nil
			}
			return nil, fmt.Errorf("parse circuit document: %w", err)
		}
		root := &doc
		if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
			root = root.Content[0]
		}
		if root.Kind == yaml.DocumentNode || isNull(root) {
			continue
		}
		if root.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("line %d: circuit document must be a mapping", root.Line)
		}
		for i := 0; i+1 < len(root.Content); i += 2 {
			descs = append(descs, loadCircuit(root.Content[i].Value, root.Content[i+1]))
		}
	}
}

// loadCircuit 解析单个电路
func loadCircuit(name string, node *yaml.Node) *types.Description {
	desc := &types.Description{Name: name}
	if node.Kind != yaml.MappingNode {
		desc.Err = types.ErrInvalidCircuit
		return desc
	}
	nodes, components := mappingValue(node, types.KeyNodes), mappingValue(node, types.KeyComponents)
	if nodes == nil || components == nil {
		desc.Err = types.ErrInvalidCircuit
		return desc
	}
	if desc.Nodes, desc.Err = loadNodes(nodes); desc.Err != nil {
		return desc
	}
	desc.Components, desc.Err = loadComponents(components)
	return desc
}

// mappingValue 查找映射中的键
func mappingValue(node *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// loadNodes 解析节点表
func loadNodes(node *yaml.Node) ([]types.Node, error) {
	if isNull(node) {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, &types.MalformedCircuitError{Component: -1, Reason: fmt.Sprintf("line %d: nodes must be a mapping", node.Line)}
	}
	list := make([]types.Node, 0, len(node.Content)/2)
	seen := map[types.NodeID]bool{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		id := node.Content[i].Value
		if seen[id] {
			return nil, &types.MalformedCircuitError{Component: -1, Node: id, Reason: "duplicate node"}
		}
		seen[id] = true
		var spec struct {
			Voltage any `yaml:"voltage_at_node"`
		}
		if err := node.Content[i+1].Decode(&spec); err != nil {
			return nil, &types.MalformedCircuitError{Component: -1, Node: id, Reason: err.Error()}
		}
		ref, err := isReference(spec.Voltage)
		if err != nil {
			return nil, &types.MalformedCircuitError{Component: -1, Node: id, Reason: err.Error()}
		}
		list = append(list, types.Node{ID: id, Reference: ref})
	}
	return list, nil
}

// isReference 判断 voltage_at_node 标记
func isReference(v any) (bool, error) {
	switch val := v.(type) {
	case int:
		if val == 0 {
			return true, nil
		}
	case float64:
		if val == 0 {
			return true, nil
		}
	case string:
		if strings.EqualFold(strings.TrimSpace(val), types.UnknownVoltage) {
			return false, nil
		}
	case nil:
		return false, fmt.Errorf("missing %s", types.KeyVoltageAtNode)
	}
	return false, fmt.Errorf("%s must be 0 or %q, got %v", types.KeyVoltageAtNode, types.UnknownVoltage, v)
}

// loadComponent 按注册的端点字段名解析单个元件
func loadComponent(id int, node *yaml.Node) (comp types.Component, err error) {
	comp.ID = id
	malformed := func(reason string) error {
		return &types.MalformedCircuitError{Component: id, Type: comp.Name, Reason: reason}
	}
	var head componentHead
	if err := node.Decode(&head); err != nil {
		return comp, malformed(err.Error())
	}
	if err := validate.Struct(&head); err != nil {
		return comp, malformed(formatValidationError(err))
	}
	comp.Name = head.Type
	comp.Type = types.GetNameType(strings.ToLower(head.Type))
	if comp.Type == types.TypeUnknown {
		return comp, malformed("unknown component type")
	}
	cfg := comp.Type.Config()
	if err := field(node, cfg.First, &comp.First); err != nil {
		return comp, malformed(err.Error())
	}
	if err := field(node, cfg.Second, &comp.Second); err != nil {
		return comp, malformed(err.Error())
	}
	switch comp.Type {
	case types.TypeResistor:
		err = field(node, cfg.Value, &comp.Value)
	case types.TypeVoltageSource:
		err = field(node, cfg.Value, &comp.Voltage)
	}
	if err != nil {
		return comp, malformed(err.Error())
	}
	return comp, nil
}

// isNull 空值节点
func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Tag == "!!null"
}
