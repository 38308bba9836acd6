/* Copyright 2013 Google Inc. All Rights Reserved.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package unwind

import (
	"fmt"

	"github.com/go-breakpad/symbolic/common"
)

// BinOp is a binary operator an RPN program can apply to two values.
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	// OpAlign rounds its left operand down to the nearest multiple of
	// its right operand.
	OpAlign
)

func (op BinOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpAlign:
		return "@"
	default:
		return "?"
	}
}

// parseBinOp recognizes the single-character operator tokens the
// program-string grammar accepts.
func parseBinOp(token string) (BinOp, bool) {
	switch token {
	case "+":
		return OpAdd, true
	case "-":
		return OpSub, true
	case "*":
		return OpMul, true
	case "/":
		return OpDiv, true
	case "%":
		return OpMod, true
	case "@":
		return OpAlign, true
	default:
		return 0, false
	}
}

// ExprKind discriminates the shape of an Expr node.
type ExprKind int

const (
	ExprValue ExprKind = iota
	ExprReg
	ExprOp
	ExprDeref
)

// Expr is an RPN expression tree over values of type T: a literal, a
// register reference, a binary operation on two sub-expressions, or a
// memory dereference of a sub-expression.
type Expr[T common.Unsigned] struct {
	Kind  ExprKind
	Value T
	Reg   Register
	Op    BinOp
	Left  *Expr[T]
	Right *Expr[T]
	Inner *Expr[T]
}

// ValueExpr builds a literal expression.
func ValueExpr[T common.Unsigned](v T) Expr[T] {
	return Expr[T]{Kind: ExprValue, Value: v}
}

// RegExpr builds a register-reference expression.
func RegExpr[T common.Unsigned](r Register) Expr[T] {
	return Expr[T]{Kind: ExprReg, Reg: r}
}

// OpExpr builds a binary operation expression.
func OpExpr[T common.Unsigned](op BinOp, left, right Expr[T]) Expr[T] {
	return Expr[T]{Kind: ExprOp, Op: op, Left: &left, Right: &right}
}

// DerefExpr builds a memory-dereference expression.
func DerefExpr[T common.Unsigned](inner Expr[T]) Expr[T] {
	return Expr[T]{Kind: ExprDeref, Inner: &inner}
}

// ContainsCfa reports whether e references the CFA register anywhere
// in its tree, directly or through a sub-expression.
func (e Expr[T]) ContainsCfa() bool {
	switch e.Kind {
	case ExprReg:
		return e.Reg.IsCfa()
	case ExprOp:
		return e.Left.ContainsCfa() || e.Right.ContainsCfa()
	case ExprDeref:
		return e.Inner.ContainsCfa()
	default:
		return false
	}
}

func (e Expr[T]) String() string {
	switch e.Kind {
	case ExprValue:
		return fmt.Sprintf("%x", e.Value)
	case ExprReg:
		return e.Reg.String()
	case ExprOp:
		return fmt.Sprintf("%s %s %s", e.Left, e.Right, e.Op)
	case ExprDeref:
		return fmt.Sprintf("%s ^", e.Inner)
	default:
		return "?"
	}
}

// Assignment binds an expression's value to a destination register.
type Assignment[T common.Unsigned] struct {
	Dest Register
	Expr Expr[T]
}

// Rule is the full left-hand-side/right-hand-side pairing an RPN
// program line compiles to: "assign this expression to that register".
//
// Assignment[T] itself serves as the Rule type; Go does not support
// generic type aliases, so callers use Assignment[T] directly.
