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
	"strconv"
	"strings"

	"github.com/go-breakpad/symbolic/common"
)

// derefToken is Breakpad's postfix dereference operator: it pops one
// value and pushes the value read from memory at that address.
const derefToken = "^"

// exprStack is a small LIFO of partially-built expressions, used while
// folding an RPN token stream left to right.
type exprStack[T common.Unsigned] struct {
	values []Expr[T]
}

func (s *exprStack[T]) push(e Expr[T]) {
	s.values = append(s.values, e)
}

// pop removes and returns the top of the stack, reporting false if the
// stack was empty.
func (s *exprStack[T]) pop() (Expr[T], bool) {
	if len(s.values) == 0 {
		return Expr[T]{}, false
	}
	last := s.values[len(s.values)-1]
	s.values = s.values[:len(s.values)-1]
	return last, true
}

// parseExpr parses a complete RPN expression from program, requiring
// the operand stack to hold exactly one value once every token is
// consumed.
func parseExpr[T common.Unsigned](program string) (Expr[T], error) {
	stack, err := foldExprTokens[T](program)
	if err != nil {
		return Expr[T]{}, err
	}

	if len(stack.values) == 0 {
		return Expr[T]{}, &ParseExprError{Kind: ParseInputExhausted}
	}
	if len(stack.values) > 1 {
		return Expr[T]{}, &ParseExprError{Kind: ParseInputNotFullyConsumed}
	}
	return stack.values[0], nil
}

func foldExprTokens[T common.Unsigned](program string) (*exprStack[T], error) {
	stack := &exprStack[T]{}

	for _, token := range strings.Fields(program) {
		switch {
		case token == derefToken:
			inner, ok := stack.pop()
			if !ok {
				return nil, &ParseExprError{Kind: ParseInputExhausted, Token: token}
			}
			stack.push(DerefExpr(inner))

		case isBinOpToken(token):
			op, _ := parseBinOp(token)
			right, rightOk := stack.pop()
			left, leftOk := stack.pop()
			if !rightOk || !leftOk {
				return nil, &ParseExprError{Kind: ParseInputExhausted, Token: token}
			}
			stack.push(OpExpr(op, left, right))

		default:
			if reg, ok := parseRegister(token); ok && !isBareLiteral(token) {
				stack.push(RegExpr[T](reg))
				continue
			}
			if v, ok := parseLiteral[T](token); ok {
				stack.push(ValueExpr(v))
				continue
			}
			return nil, &ParseExprError{Kind: ParseUnknownToken, Token: token}
		}
	}

	return stack, nil
}

func isBinOpToken(token string) bool {
	_, ok := parseBinOp(token)
	return ok
}

// isBareLiteral reports whether token is a plain hexadecimal integer, so
// foldExprTokens prefers parseLiteral's typed width over parseRegister's
// RegisterConstant fallback when building an Expr[T]. CFI program
// strings write numeric literals in hex with no "0x" prefix, the same
// way the rest of this module's numeric tokens are written.
func isBareLiteral(token string) bool {
	_, err := strconv.ParseUint(token, 16, 64)
	return err == nil
}

func parseLiteral[T common.Unsigned](token string) (T, bool) {
	width := common.Width[T]() * 8
	v, err := strconv.ParseUint(token, 16, width)
	if err != nil {
		return 0, false
	}
	return T(v), true
}

// parseAssignment parses one "register: expression" program line.
func parseAssignment[T common.Unsigned](line string) (Assignment[T], error) {
	parts := strings.SplitN(line, ":", 2)
	if len(parts) != 2 {
		return Assignment[T]{}, &ParseExprError{Kind: ParseUnknownToken, Token: line}
	}

	destToken := strings.TrimSpace(parts[0])
	dest, ok := parseRegister(destToken)
	if !ok {
		return Assignment[T]{}, &ParseExprError{Kind: ParseUnknownToken, Token: destToken}
	}

	expr, err := parseExpr[T](parts[1])
	if err != nil {
		return Assignment[T]{}, err
	}

	return Assignment[T]{Dest: dest, Expr: expr}, nil
}

// ParseRules parses a whitespace-and-newline-separated sequence of
// "register: expression" rules, as found in a STACK CFI record's rule
// list. STACK WIN program strings, whose assignments take the postfix
// "$var expression =" form, are not accepted.
func ParseRules[T common.Unsigned](program string) ([]Assignment[T], error) {
	var rules []Assignment[T]
	for _, clause := range splitRuleClauses(program) {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}
		rule, err := parseAssignment[T](clause)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// splitRuleClauses splits a rule program on whichever boundary precedes
// the next register-name/colon pair, since individual rules are only
// separated by whitespace, not an explicit delimiter.
func splitRuleClauses(program string) []string {
	var clauses []string
	var current strings.Builder

	fields := strings.Fields(program)
	for i := 0; i < len(fields); i++ {
		field := fields[i]
		if strings.HasSuffix(field, ":") && current.Len() > 0 {
			clauses = append(clauses, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(field)
	}
	if current.Len() > 0 {
		clauses = append(clauses, current.String())
	}
	return clauses
}
