package equation

import (
	"errors"
	"log/slog"

	"gonum.org/v1/gonum/mat"

	"kirchhoff/graph"
	"kirchhoff/types"
)

// ErrEmptySystem 方程组没有未知量
var ErrEmptySystem = errors.New("equation system has no unknowns")

// Options 方程生成参数
type Options struct {
	ExcludeReference  bool         // KCL 不包含参考节点
	SourceConstraints bool         // KVL 头部加入电压源约束 V+ - V- - V = 0
	SourceCurrents    bool         // 电压源支路也分配电流未知量
	NodalKCL          bool         // 节点电压形式的 KCL, 不使用回路与电流未知量
	Logger            *slog.Logger // 日志
}

// DefaultOptions 默认参数
func DefaultOptions() Options {
	return Options{SourceConstraints: true, Logger: slog.Default()}
}

// System 一次生成过程的结果
type System struct {
	KVL      []Equation   // 电压定律方程
	KCL      []Equation   // 电流定律方程
	Loops    []graph.Loop // 参与 KVL 的回路
	Skipped  []graph.Loop // 各项相消为 0 的回路
	Currents []Current    // 电流未知量, 分配顺序
}

// Builder 方程生成
type Builder struct {
	graph *graph.Graph
	alloc *Allocator
	opts  Options
}

// NewBuilder 创建生成器, 每次生成使用新的电流分配器
func NewBuilder(g *graph.Graph, opts Options) *Builder {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Builder{graph: g, alloc: NewAllocator(), opts: opts}
}

// Build 生成 KVL 与 KCL 方程
func Build(g *graph.Graph, loops []graph.Loop, opts Options) (*System, error) {
	return NewBuilder(g, opts).Build(loops)
}

// Build 生成 KVL 与 KCL 方程
func (b *Builder) Build(loops []graph.Loop) (*System, error) {
	sys := &System{}
	if b.opts.SourceConstraints {
		for _, branch := range b.graph.Branches() {
			if branch.ElementType != types.TypeVoltageSource {
				continue
			}
			expr, err := b.sourceConstraint(branch)
			if err != nil {
				return nil, err
			}
			if !expr.IsZero() {
				sys.KVL = append(sys.KVL, Equation{Left: expr})
			}
		}
	}
	if b.opts.NodalKCL {
		return b.nodal(sys)
	}
	for _, loop := range loops {
		expr := b.KVL(loop)
		if expr.IsZero() {
			b.opts.Logger.Debug("回路各项相消, 跳过", "circuit", b.graph.Name(), "loop", loop.String())
			sys.Skipped = append(sys.Skipped, loop)
			continue
		}
		sys.Loops = append(sys.Loops, loop)
		sys.KVL = append(sys.KVL, Equation{Left: expr})
	}
	for _, node := range b.graph.Nodes() {
		if b.opts.ExcludeReference && node.Reference {
			continue
		}
		sys.KCL = append(sys.KCL, Equation{Left: b.KCL(node.ID)})
	}
	sys.Currents = b.alloc.Currents()
	b.opts.Logger.Debug("方程生成完成", "circuit", b.graph.Name(),
		"kvl", len(sys.KVL), "kcl", len(sys.KCL), "currents", b.alloc.Len())
	return sys, nil
}

// nodal 节点电压形式的 KCL, 参考节点不列方程
func (b *Builder) nodal(sys *System) (*System, error) {
	for _, node := range b.graph.Nodes() {
		if node.Reference {
			continue
		}
		expr, err := b.NodalKCL(node.ID)
		if err != nil {
			return nil, err
		}
		sys.KCL = append(sys.KCL, Equation{Left: expr})
	}
	b.opts.Logger.Debug("节点方程生成完成", "circuit", b.graph.Name(),
		"kvl", len(sys.KVL), "kcl", len(sys.KCL))
	return sys, nil
}

// sourceConstraint 电压源约束 V+ - V- - V
func (b *Builder) sourceConstraint(branch types.Branch) (expr Expr, err error) {
	pos, err := b.graph.Voltage(branch.From)
	if err != nil {
		return expr, err
	}
	neg, err := b.graph.Voltage(branch.To)
	if err != nil {
		return expr, err
	}
	expr.AddTerm(pos, 1)
	expr.AddTerm(neg, -1)
	expr.AddConst(-branch.Voltage)
	return expr, nil
}

// current 支路电流符号, 无电流未知量时返回空
func (b *Builder) current(pair graph.Pair) string {
	switch pair.Branch.ElementType {
	case types.TypeResistor:
		return b.alloc.GetOrCreate(pair.Key)
	case types.TypeVoltageSource:
		if b.opts.SourceCurrents {
			return b.alloc.GetOrCreate(pair.Key)
		}
	}
	return ""
}

// KVL 沿回路累加电压降
func (b *Builder) KVL(loop graph.Loop) (expr Expr) {
	for i := 1; i < len(loop); i++ {
		from, to := loop[i-1], loop[i]
		pair, ok := b.graph.Pair(types.NewPairKey(from, to))
		if !ok {
			continue
		}
		dir := pair.Branch.Direction(from, to)
		switch pair.Branch.ElementType {
		case types.TypeResistor:
			expr.AddTerm(b.current(pair), dir*pair.Branch.Resistance)
		case types.TypeVoltageSource:
			b.current(pair)
			expr.AddConst(-dir * pair.Branch.Voltage)
		}
	}
	return expr
}

// KCL 节点电流代数和, 流出为负, 流入为正
func (b *Builder) KCL(id types.NodeID) (expr Expr) {
	for _, pair := range b.graph.Pairs() {
		if pair.Key.A != id && pair.Key.B != id {
			continue
		}
		sym := b.current(pair)
		if sym == "" {
			continue
		}
		if pair.Branch.From == id {
			expr.AddTerm(sym, -1)
		} else {
			expr.AddTerm(sym, 1)
		}
	}
	return expr
}

// NodalKCL 节点上全部电阻支路电流 (V_from - V_to)/R 之和
// 并联元件逐个计入, 节点为 from 端取正, 为 to 端取负.
func (b *Builder) NodalKCL(id types.NodeID) (expr Expr, err error) {
	for _, branch := range b.graph.Branches() {
		if branch.ElementType != types.TypeResistor || (branch.From != id && branch.To != id) {
			continue
		}
		cur, err := b.branchCurrent(branch)
		if err != nil {
			return expr, err
		}
		if branch.From == id {
			expr.Add(cur)
		}
		if branch.To == id {
			cur.Scale(-1)
			expr.Add(cur)
		}
	}
	return expr, nil
}

// branchCurrent 电阻支路电流 (V_from - V_to)/R
func (b *Builder) branchCurrent(branch types.Branch) (expr Expr, err error) {
	if branch.Resistance == 0 {
		return expr, &types.MalformedCircuitError{Component: branch.ID, Type: branch.ElementType.String(), Reason: "zero resistance in nodal analysis"}
	}
	from, err := b.graph.Voltage(branch.From)
	if err != nil {
		return expr, err
	}
	to, err := b.graph.Voltage(branch.To)
	if err != nil {
		return expr, err
	}
	expr.AddTerm(from, 1)
	expr.AddTerm(to, -1)
	expr.Scale(1 / branch.Resistance)
	return expr, nil
}

// Equations KVL 与 KCL 方程, 按输出顺序
func (sys *System) Equations() []Equation {
	return append(append([]Equation(nil), sys.KVL...), sys.KCL...)
}

// Unknowns 方程中出现的未知量, 首次出现顺序
func (sys *System) Unknowns() []string {
	var list []string
	seen := map[string]bool{}
	for _, eq := range sys.Equations() {
		for _, side := range []Expr{eq.Left, eq.Right} {
			for _, t := range side.Terms() {
				if !seen[t.Symbol] {
					seen[t.Symbol] = true
					list = append(list, t.Symbol)
				}
			}
		}
	}
	return list
}

// Matrix 系数矩阵 A 与右端项 rhs, 使 A*x = rhs, x 的顺序为 Unknowns
func (sys *System) Matrix() (a *mat.Dense, rhs *mat.VecDense, unknowns []string, err error) {
	eqs := sys.Equations()
	unknowns = sys.Unknowns()
	if len(eqs) == 0 || len(unknowns) == 0 {
		return nil, nil, nil, ErrEmptySystem
	}
	a = mat.NewDense(len(eqs), len(unknowns), nil)
	rhs = mat.NewVecDense(len(eqs), nil)
	for r, eq := range eqs {
		for c, sym := range unknowns {
			a.Set(r, c, eq.Left.Coeff(sym)-eq.Right.Coeff(sym))
		}
		rhs.SetVec(r, eq.Right.Const-eq.Left.Const)
	}
	return a, rhs, unknowns, nil
}
