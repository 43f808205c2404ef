package ast

import (
	"bytes"
	"newt/internal/token"
	"strings"
)

// The base Node interface
type Node interface {
	TokenLiteral() string
	String() string
}

// Expression is implemented by every instruction variant. The language has
// no statement/expression split: declarations, returns and conditionals are
// expressions that happen to yield undefined.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root of a parsed source file: one top-level block evaluated
// in the global environment.
type Program struct {
	Body *Block
}

func (p *Program) TokenLiteral() string {
	if p.Body != nil {
		return p.Body.TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	if p.Body == nil {
		return ""
	}
	instrs := []string{}
	for _, ins := range p.Body.Instructions {
		instrs = append(instrs, ins.String())
	}
	return strings.Join(instrs, "; ")
}

type Block struct {
	Token        token.Token // the { token; first token of the file for the top block
	Instructions []Expression
}

func (b *Block) expressionNode()      {}
func (b *Block) TokenLiteral() string { return b.Token.Literal }
func (b *Block) String() string {
	var out bytes.Buffer

	instrs := []string{}
	for _, ins := range b.Instructions {
		instrs = append(instrs, ins.String())
	}

	out.WriteString("{ ")
	out.WriteString(strings.Join(instrs, "; "))
	out.WriteString(" }")

	return out.String()
}

// Literals

type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) expressionNode()      {}
func (il *IntegerLiteral) TokenLiteral() string { return il.Token.Literal }
func (il *IntegerLiteral) String() string       { return il.Token.Literal }

type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Literal }
func (sl *StringLiteral) String() string       { return sl.Token.Literal }

// Variables

type LocalVarAccess struct {
	Token token.Token // the token.IDENT token (or an operator token used as a value)
	Name  string
}

func (va *LocalVarAccess) expressionNode()      {}
func (va *LocalVarAccess) TokenLiteral() string { return va.Token.Literal }
func (va *LocalVarAccess) String() string       { return va.Name }

type LocalVarAssignment struct {
	Token       token.Token // the token.VAR token, or the target IDENT for plain assignment
	Name        string
	Declaration bool // true for `var x = e`, false for `x = e`
	Value       Expression
}

func (va *LocalVarAssignment) expressionNode()      {}
func (va *LocalVarAssignment) TokenLiteral() string { return va.Token.Literal }
func (va *LocalVarAssignment) String() string {
	var out bytes.Buffer

	if va.Declaration {
		out.WriteString("var ")
	}
	out.WriteString(va.Name)
	out.WriteString(" = ")
	if va.Value != nil {
		out.WriteString(va.Value.String())
	}

	return out.String()
}

// Functions

type Fun struct {
	Token      token.Token // the token.FUNCTION token
	Name       string      // empty for anonymous functions
	Parameters []string
	Body       *Block
}

func (f *Fun) expressionNode()      {}
func (f *Fun) TokenLiteral() string { return f.Token.Literal }
func (f *Fun) String() string {
	var out bytes.Buffer

	out.WriteString("function")
	if f.Name != "" {
		out.WriteString(" " + f.Name)
	}
	out.WriteString("(")
	out.WriteString(strings.Join(f.Parameters, ", "))
	out.WriteString(") ")
	out.WriteString(f.Body.String())

	return out.String()
}

type FunCall struct {
	Token  token.Token // the ( token
	Callee Expression
	Args   []Expression
}

func (fc *FunCall) expressionNode()      {}
func (fc *FunCall) TokenLiteral() string { return fc.Token.Literal }
func (fc *FunCall) String() string {
	var out bytes.Buffer

	args := []string{}
	for _, a := range fc.Args {
		args = append(args, a.String())
	}

	out.WriteString(fc.Callee.String())
	out.WriteString("(")
	out.WriteString(strings.Join(args, ", "))
	out.WriteString(")")

	return out.String()
}

type Return struct {
	Token token.Token // the token.RETURN token
	Value Expression
}

func (r *Return) expressionNode()      {}
func (r *Return) TokenLiteral() string { return r.Token.Literal }
func (r *Return) String() string {
	var out bytes.Buffer

	out.WriteString("return")
	if r.Value != nil {
		out.WriteString(" ")
		out.WriteString(r.Value.String())
	}

	return out.String()
}

// Control flow

type If struct {
	Token       token.Token // the token.IF token
	Condition   Expression
	Consequence *Block
	Alternative *Block // never nil; empty when no else clause was written
}

func (i *If) expressionNode()      {}
func (i *If) TokenLiteral() string { return i.Token.Literal }
func (i *If) String() string {
	var out bytes.Buffer

	out.WriteString("if (")
	out.WriteString(i.Condition.String())
	out.WriteString(") ")
	out.WriteString(i.Consequence.String())

	if i.Alternative != nil && len(i.Alternative.Instructions) > 0 {
		out.WriteString(" else ")
		out.WriteString(i.Alternative.String())
	}

	return out.String()
}

// Objects

// ObjectField is one `name: value` initializer in an object literal. Fields
// are kept in source order so initializer side effects stay deterministic.
type ObjectField struct {
	Name  string
	Value Expression
}

type New struct {
	Token  token.Token // the { token
	Fields []ObjectField
}

func (n *New) expressionNode()      {}
func (n *New) TokenLiteral() string { return n.Token.Literal }
func (n *New) String() string {
	var out bytes.Buffer

	fields := []string{}
	for _, f := range n.Fields {
		fields = append(fields, f.Name+": "+f.Value.String())
	}

	out.WriteString("{")
	out.WriteString(strings.Join(fields, ", "))
	out.WriteString("}")

	return out.String()
}

type FieldAccess struct {
	Token    token.Token // the . token
	Receiver Expression
	Name     string
}

func (fa *FieldAccess) expressionNode()      {}
func (fa *FieldAccess) TokenLiteral() string { return fa.Token.Literal }
func (fa *FieldAccess) String() string {
	return fa.Receiver.String() + "." + fa.Name
}

type FieldAssignment struct {
	Token    token.Token // the . token
	Receiver Expression
	Name     string
	Value    Expression
}

func (fa *FieldAssignment) expressionNode()      {}
func (fa *FieldAssignment) TokenLiteral() string { return fa.Token.Literal }
func (fa *FieldAssignment) String() string {
	var out bytes.Buffer

	out.WriteString(fa.Receiver.String())
	out.WriteString(".")
	out.WriteString(fa.Name)
	out.WriteString(" = ")
	if fa.Value != nil {
		out.WriteString(fa.Value.String())
	}

	return out.String()
}

type MethodCall struct {
	Token    token.Token // the . token
	Receiver Expression
	Name     string
	Args     []Expression
}

func (mc *MethodCall) expressionNode()      {}
func (mc *MethodCall) TokenLiteral() string { return mc.Token.Literal }
func (mc *MethodCall) String() string {
	var out bytes.Buffer

	args := []string{}
	for _, a := range mc.Args {
		args = append(args, a.String())
	}

	out.WriteString(mc.Receiver.String())
	out.WriteString(".")
	out.WriteString(mc.Name)
	out.WriteString("(")
	out.WriteString(strings.Join(args, ", "))
	out.WriteString(")")

	return out.String()
}
