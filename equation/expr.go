package equation

// Term 线性项 Coeff*Symbol
type Term struct {
	Symbol string  // 未知量
	Coeff  float64 // 系数
}

// Expr 线性表达式, 项保持首次加入顺序
type Expr struct {
	terms []Term
	Const float64 // 常数项
}

// Literal 常数表达式
func Literal(v float64) Expr { return Expr{Const: v} }

// AddTerm 累加 coeff*symbol, 空符号视为常量 0
func (e *Expr) AddTerm(symbol string, coeff float64) {
	if symbol == "" {
		return
	}
	for i := range e.terms {
		if e.terms[i].Symbol == symbol {
			e.terms[i].Coeff += coeff
			return
		}
	}
	e.terms = append(e.terms, Term{Symbol: symbol, Coeff: coeff})
}

// AddConst 累加常数
func (e *Expr) AddConst(v float64) { e.Const += v }

// Add 累加另一个表达式
func (e *Expr) Add(other Expr) {
	for _, t := range other.terms {
		e.AddTerm(t.Symbol, t.Coeff)
	}
	e.Const += other.Const
}

// Scale 乘以标量
func (e *Expr) Scale(k float64) {
	for i := range e.terms {
		e.terms[i].Coeff *= k
	}
	e.Const *= k
}

// Terms 非零项
func (e Expr) Terms() []Term {
	list := make([]Term, 0, len(e.terms))
	for _, t := range e.terms {
		if t.Coeff != 0 {
			list = append(list, t)
		}
	}
	return list
}

// Coeff 符号系数
func (e Expr) Coeff(symbol string) float64 {
	for _, t := range e.terms {
		if t.Symbol == symbol {
			return t.Coeff
		}
	}
	return 0
}

// IsLiteral 不含未知量
func (e Expr) IsLiteral() bool { return len(e.Terms()) == 0 }

// IsZero 恒为常数 0
func (e Expr) IsZero() bool { return e.IsLiteral() && e.Const == 0 }

// Equation 方程 Left = Right
type Equation struct {
	Left  Expr
	Right Expr
}

// String 格式化
func (eq Equation) String() string { return Format(eq) }
