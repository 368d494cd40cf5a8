package kirchhoff

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"kirchhoff/equation"
	"kirchhoff/types"
)

// WriteText 输出单个电路的文本报告
func (res *Result) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "=== %s ===\n", strings.ToUpper(res.Name))
	switch {
	case errors.Is(res.Err, types.ErrInvalidCircuit):
		fmt.Fprintln(bw, res.Err)
	case res.Err != nil:
		fmt.Fprintf(bw, "error: %v\n", res.Err)
	default:
		writeSection(bw, types.SectionKVL, res.System.KVL)
		writeSection(bw, types.SectionKCL, res.System.KCL)
	}
	return bw.Flush()
}

// writeSection 输出方程分段
func writeSection(w io.Writer, title string, eqs []equation.Equation) {
	fmt.Fprintln(w, title)
	if len(eqs) == 0 {
		fmt.Fprintln(w, types.SectionNone)
		return
	}
	for _, eq := range eqs {
		fmt.Fprintln(w, eq.String())
	}
}

// WriteReport 输出全部电路的文本报告, 电路之间空一行
func WriteReport(w io.Writer, results []*Result) error {
	for i, res := range results {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := res.WriteText(w); err != nil {
			return err
		}
	}
	return nil
}

// jsonCurrent JSON 报告中的电流未知量
type jsonCurrent struct {
	Symbol string `json:"symbol"`
	From   string `json:"from"`
	To     string `json:"to"`
}

// jsonResult JSON 报告, 与文本报告内容相同
type jsonResult struct {
	Name     string        `json:"name"`
	KVL      []string      `json:"kvl,omitempty"`
	KCL      []string      `json:"kcl,omitempty"`
	Loops    []string      `json:"loops,omitempty"`
	Currents []jsonCurrent `json:"currents,omitempty"`
	Unknowns []string      `json:"unknowns,omitempty"`
	Matrix   [][]float64   `json:"matrix,omitempty"`
	RHS      []float64     `json:"rhs,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// setMatrix 系数矩阵与右端项, 方程组没有未知量时省略
func (item *jsonResult) setMatrix(sys *equation.System) error {
	a, rhs, unknowns, err := sys.Matrix()
	if errors.Is(err, equation.ErrEmptySystem) {
		return nil
	}
	if err != nil {
		return err
	}
	item.Unknowns = unknowns
	rows, _ := a.Dims()
	for r := range rows {
		item.Matrix = append(item.Matrix, append([]float64(nil), a.RawRowView(r)...))
	}
	item.RHS = append([]float64(nil), rhs.RawVector().Data...)
	return nil
}

// WriteJSON 输出 JSON 报告
func WriteJSON(w io.Writer, results []*Result) error {
	list := make([]jsonResult, 0, len(results))
	for _, res := range results {
		item := jsonResult{Name: res.Name}
		if res.Err != nil {
			item.Error = res.Err.Error()
			list = append(list, item)
			continue
		}
		for _, eq := range res.System.KVL {
			item.KVL = append(item.KVL, eq.String())
		}
		for _, eq := range res.System.KCL {
			item.KCL = append(item.KCL, eq.String())
		}
		for _, loop := range res.System.Loops {
			item.Loops = append(item.Loops, loop.String())
		}
		for _, cur := range res.System.Currents {
			item.Currents = append(item.Currents, jsonCurrent{Symbol: cur.Symbol, From: cur.Pair.A, To: cur.Pair.B})
		}
		if err := item.setMatrix(res.System); err != nil {
			return err
		}
		list = append(list, item)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(list)
}
