package types

import "fmt"

// 电路元件类型常量定义
const (
	TypeUnknown       ElementType = iota // 未知类型
	TypeResistor                         // 电阻
	TypeVoltageSource                    // 直流电压源
)

// ElementConfig 元件端点配置
type ElementConfig struct {
	First  string // 第一端字段名, 电流参考方向的起点
	Second string // 第二端字段名
	Value  string // 元件值字段名
}

// slementTypeString 元件映射
var slementTypeString = map[ElementType]struct {
	Name          string
	ElementConfig ElementConfig
}{
	TypeUnknown: {Name: "unknown"},
}

var mapName = map[string]ElementType{}

func init() {
	ElementRegister(TypeResistor, "resistor", ElementConfig{First: "from", Second: "to", Value: "value"})
	ElementRegister(TypeVoltageSource, "dc_voltage_source", ElementConfig{First: "positive", Second: "negative", Value: "voltage"})
}

// String 返回元件类型的字符串表示
func (t ElementType) String() string {
	if et, ok := slementTypeString[t]; ok {
		return et.Name
	}
	return "unknown"
}

// Config 获取端点配置
func (t ElementType) Config() ElementConfig {
	return slementTypeString[t].ElementConfig
}

// GetNameType 通过名称获取类型
func GetNameType(name string) ElementType {
	return mapName[name]
}

// ElementRegister 注册元件类型
func ElementRegister(et ElementType, name string, config ElementConfig) {
	if _, ok := slementTypeString[et]; ok {
		panic(fmt.Errorf("element type already registered: %s:%d", name, et))
	}
	mapName[name] = et
	slementTypeString[et] = struct {
		Name          string
		ElementConfig ElementConfig
	}{
		Name:          name,
		ElementConfig: config,
	}
}
