package equation

import (
	"math"
	"strconv"
	"strings"

	"kirchhoff/types"
)

// negZero 舍入后的负零
var negZero = "-" + strconv.FormatFloat(0, 'f', types.FracDigits, 64)

// FormatNumber 固定小数位, 不使用科学计数法
func FormatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', types.FracDigits, 64)
	if s == negZero {
		return s[1:]
	}
	return s
}

// FormatExpr 常数表达式输出数值, 否则输出符号表达式
func FormatExpr(e Expr) string {
	terms := e.Terms()
	if len(terms) == 0 {
		return FormatNumber(e.Const)
	}
	var sb strings.Builder
	for i, t := range terms {
		writeSigned(&sb, i == 0, t.Coeff < 0, termBody(t))
	}
	if c := FormatNumber(math.Abs(e.Const)); c != FormatNumber(0) {
		writeSigned(&sb, false, e.Const < 0, c)
	}
	return sb.String()
}

// termBody 系数为 ±1 时省略
func termBody(t Term) string {
	mag := math.Abs(t.Coeff)
	if mag == 1 {
		return t.Symbol
	}
	return formatCoeff(mag) + "*" + t.Symbol
}

// formatCoeff 系数固定小数位, 舍入为 0 时改用最短精确表示
func formatCoeff(mag float64) string {
	if s := FormatNumber(mag); s != FormatNumber(0) {
		return s
	}
	return strconv.FormatFloat(mag, 'f', -1, 64)
}

// writeSigned 写入带符号的项
func writeSigned(sb *strings.Builder, first, negative bool, body string) {
	switch {
	case first && negative:
		sb.WriteString("-")
	case negative:
		sb.WriteString(" - ")
	case !first:
		sb.WriteString(" + ")
	}
	sb.WriteString(body)
}

// Format 方程输出 "<left> = <right>"
func Format(eq Equation) string {
	return FormatExpr(eq.Left) + " = " + FormatExpr(eq.Right)
}
