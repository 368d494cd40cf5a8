package equation

import "testing"

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00000000"},
		{10, "10.00000000"},
		{-2.5, "-2.50000000"},
		{100000, "100000.00000000"},
		{1e12, "1000000000000.00000000"},
		{-1e-12, "0.00000000"},
		{1.234567891, "1.23456789"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %s, 期望 %s", tt.in, got, tt.want)
		}
	}
}

func TestFormatExpr(t *testing.T) {
	var unit Expr
	unit.AddTerm("I_1", 1)
	unit.AddTerm("I_2", -1)

	var mixed Expr
	mixed.AddTerm("I_1", -100)
	mixed.AddTerm("V_n1", 1)
	mixed.AddConst(-10)

	var cancelled Expr
	cancelled.AddTerm("I_1", 2)
	cancelled.AddTerm("I_1", -2)
	cancelled.AddConst(3)

	// 1p 电阻的系数不能舍入成 0
	var tiny Expr
	tiny.AddTerm("I_1", 1e-12)
	tiny.AddConst(-1e-12)

	var small Expr
	small.AddTerm("V_n1", 1e-5)

	tests := []struct {
		name string
		in   Expr
		want string
	}{
		{"literal", Literal(5), "5.00000000"},
		{"zero", Expr{}, "0.00000000"},
		{"unit", unit, "I_1 - I_2"},
		{"mixed", mixed, "-100.00000000*I_1 + V_n1 - 10.00000000"},
		{"cancelled", cancelled, "3.00000000"},
		{"tiny", tiny, "0.000000000001*I_1"},
		{"small", small, "0.00001000*V_n1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatExpr(tt.in); got != tt.want {
				t.Errorf("FormatExpr = %q, 期望 %q", got, tt.want)
			}
		})
	}
}

func TestFormatEquation(t *testing.T) {
	var left Expr
	left.AddTerm("I_1", -1)
	eq := Equation{Left: left}
	if got := eq.String(); got != "-I_1 = 0.00000000" {
		t.Errorf("Equation.String = %q", got)
	}
	var right Expr
	right.AddTerm("V_n2", 0.5)
	eq = Equation{Left: Literal(1), Right: right}
	if got := eq.String(); got != "1.00000000 = 0.50000000*V_n2" {
		t.Errorf("Equation.String = %q", got)
	}
}

func TestExprArithmetic(t *testing.T) {
	var a, b Expr
	a.AddTerm("I_1", 2)
	a.AddConst(1)
	b.AddTerm("I_2", 3)
	b.AddTerm("I_1", -2)
	b.AddTerm("", 7)
	a.Add(b)
	a.Scale(-1)
	if c := a.Coeff("I_1"); c != 0 {
		t.Errorf("I_1 系数 %v, 期望 0", c)
	}
	if c := a.Coeff("I_2"); c != -3 {
		t.Errorf("I_2 系数 %v, 期望 -3", c)
	}
	if a.Const != -1 {
		t.Errorf("常数项 %v, 期望 -1", a.Const)
	}
	if len(a.Terms()) != 1 || a.IsLiteral() || a.IsZero() {
		t.Errorf("非零项 %v", a.Terms())
	}
}
