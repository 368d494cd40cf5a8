package types

// 符号命名常量定义
const (
	VoltagePrefix = "V_" // 节点电压符号前缀
	CurrentPrefix = "I_" // 支路电流符号前缀
)

// 描述文件键名常量定义
const (
	KeyNodes         = "nodes"           // 节点表
	KeyComponents    = "components"      // 元件列表
	KeyVoltageAtNode = "voltage_at_node" // 节点电压标记
	KeyType          = "type"            // 元件类型
	UnknownVoltage   = "unknown"         // 未知节点电压
)

// 输出格式常量定义
const (
	FracDigits  = 8        // 数值小数位数
	SectionKVL  = "KVL"    // 电压定律分段
	SectionKCL  = "KCL"    // 电流定律分段
	SectionNone = "(none)" // 无方程标记
)

// 默认参数常量定义
var (
	RankTolerance = 1e-9 // 回路独立性判定容差
)
