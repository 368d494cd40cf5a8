package load

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	"kirchhoff/types"
)

// SuffixMode 阻值后缀解释方式
type SuffixMode string

// 后缀模式常量定义
const (
	SuffixSource SuffixMode = "source" // k=1e3, m=1e6 (沿用原有约定)
	SuffixSI     SuffixMode = "si"     // SPICE 约定, m=1e-3, meg=1e6
)

// sourceUnits 原有约定
var sourceUnits = map[string]float64{
	"k": 1e3,
	"m": 1e6,
}

// siUnits SPICE 约定, 文本已转为小写
var siUnits = map[string]float64{
	"t": 1e12,  // tera
	"g": 1e9,   // giga
	"k": 1e3,   // kilo
	"m": 1e-3,  // milli
	"u": 1e-6,  // micro
	"n": 1e-9,  // nano
	"p": 1e-12, // pico
	"f": 1e-15, // femto
}

// megSuffix SI 模式下的兆后缀
const megSuffix = "meg"

// ParseResistance 按默认约定解析阻值
func ParseResistance(s string) (float64, error) {
	return SuffixSource.Parse(s)
}

// Parse 解析带后缀的阻值, 忽略大小写与空白
func (mode SuffixMode) Parse(s string) (float64, error) {
	text := strings.ToLower(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s))
	if text == "" {
		return 0, &types.ParseError{Value: s, Err: errors.New("empty value")}
	}
	scale := 1.0
	switch mode {
	case SuffixSI:
		if strings.HasSuffix(text, megSuffix) {
			scale, text = 1e6, strings.TrimSuffix(text, megSuffix)
			break
		}
		if m, ok := siUnits[text[len(text)-1:]]; ok {
			scale, text = m, text[:len(text)-1]
		}
	default:
		if m, ok := sourceUnits[text[len(text)-1:]]; ok {
			scale, text = m, text[:len(text)-1]
		}
	}
	val, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, &types.ParseError{Value: s, Err: err}
	}
	return val * scale, nil
}

// Valid 模式是否可识别
func (mode SuffixMode) Valid() bool {
	return mode == SuffixSource || mode == SuffixSI
}
