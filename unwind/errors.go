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

	"github.com/pkg/errors"
)

// ParseExprErrorKind names why an RPN program string failed to parse
// into an expression tree.
type ParseExprErrorKind int

const (
	// ParseInputExhausted means the operand stack ran dry before a
	// binary operator or assignment could consume its operands.
	ParseInputExhausted ParseExprErrorKind = iota
	// ParseInputNotFullyConsumed means the stack still held more than
	// one value once the program string ran out of tokens.
	ParseInputNotFullyConsumed
	// ParseUnknownToken means a token was neither a register, a
	// literal, nor a recognized operator.
	ParseUnknownToken
)

func (k ParseExprErrorKind) String() string {
	switch k {
	case ParseInputExhausted:
		return "not enough operands on the stack"
	case ParseInputNotFullyConsumed:
		return "leftover operands on the stack"
	case ParseUnknownToken:
		return "unrecognized token"
	default:
		return "unknown parse error"
	}
}

// ParseExprError reports a failure to parse an RPN expression,
// assignment, or rule, together with the offending token if any.
type ParseExprError struct {
	Kind  ParseExprErrorKind
	Token string
}

func (e *ParseExprError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("%s: %q", e.Kind, e.Token)
	}
	return e.Kind.String()
}

func newParseExprError(kind ParseExprErrorKind, token string) *ParseExprError {
	return &ParseExprError{Kind: kind, Token: token}
}

// EvaluationErrorKind names why a well-formed expression failed to
// evaluate against a particular register/memory state.
type EvaluationErrorKind int

const (
	// EvalUndefinedRegister means an expression referenced a register
	// that has never been assigned a value.
	EvalUndefinedRegister EvaluationErrorKind = iota
	// EvalNoRuleForRegister means EvaluateRegister was asked for a
	// register no rule in the active set assigns.
	EvalNoRuleForRegister
	// EvalMemoryUnavailable means a Deref was evaluated but the evaluator
	// was given no memory region at all.
	EvalMemoryUnavailable
	// EvalIllegalMemoryAccess means a Deref's read does not fit entirely
	// inside the configured memory region.
	EvalIllegalMemoryAccess
	// EvalDivisionByZero means an Op evaluated a divide or modulo whose
	// right-hand side was zero.
	EvalDivisionByZero
)

func (k EvaluationErrorKind) String() string {
	switch k {
	case EvalUndefinedRegister:
		return "undefined register"
	case EvalNoRuleForRegister:
		return "no rule for register"
	case EvalMemoryUnavailable:
		return "memory unavailable"
	case EvalIllegalMemoryAccess:
		return "illegal memory access"
	case EvalDivisionByZero:
		return "division by zero"
	default:
		return "unknown evaluation error"
	}
}

// AddressRange is the inclusive-start, exclusive-end bounds of the
// memory region an EvalIllegalMemoryAccess error read past.
type AddressRange struct {
	Start uint64
	End   uint64
}

// EvaluationError reports a failure while evaluating an expression or
// resolving a register's value.
type EvaluationError struct {
	Kind     EvaluationErrorKind
	Register Register
	Address  uint64
	Bytes    int
	Range    AddressRange
	hasAddr  bool
	hasReg   bool
	hasRange bool
}

func (e *EvaluationError) Error() string {
	switch {
	case e.hasReg:
		return fmt.Sprintf("%s: %s", e.Kind, e.Register)
	case e.hasRange:
		return fmt.Sprintf("%s: %d bytes at 0x%x outside [0x%x, 0x%x)", e.Kind, e.Bytes, e.Address, e.Range.Start, e.Range.End)
	case e.hasAddr:
		return fmt.Sprintf("%s: 0x%x", e.Kind, e.Address)
	default:
		return e.Kind.String()
	}
}

func undefinedRegister(r Register) *EvaluationError {
	return &EvaluationError{Kind: EvalUndefinedRegister, Register: r, hasReg: true}
}

func noRuleForRegister(r Register) *EvaluationError {
	return &EvaluationError{Kind: EvalNoRuleForRegister, Register: r, hasReg: true}
}

// memoryUnavailable reports that no memory region was configured at
// all, so there was nowhere to even attempt the read.
func memoryUnavailable(address uint64) *EvaluationError {
	return &EvaluationError{Kind: EvalMemoryUnavailable, Address: address, hasAddr: true}
}

// illegalMemoryAccess reports that a region was configured but the
// read of width bytes at address falls outside it.
func illegalMemoryAccess(address uint64, bytes int, addrRange AddressRange) *EvaluationError {
	return &EvaluationError{
		Kind:     EvalIllegalMemoryAccess,
		Address:  address,
		Bytes:    bytes,
		Range:    addrRange,
		hasAddr:  true,
		hasRange: true,
	}
}

func divisionByZero() *EvaluationError {
	return &EvaluationError{Kind: EvalDivisionByZero}
}

// ExpressionError is the union of ParseExprError and EvaluationError
// that every public Evaluator method returns, wrapped with a stack
// trace at the point of origin.
type ExpressionError struct {
	Parse *ParseExprError
	Eval  *EvaluationError
	cause error
}

func (e *ExpressionError) Error() string {
	if e.Parse != nil {
		return e.Parse.Error()
	}
	return e.Eval.Error()
}

func (e *ExpressionError) Unwrap() error {
	return e.cause
}

func wrapParseError(err *ParseExprError) *ExpressionError {
	return &ExpressionError{Parse: err, cause: errors.WithStack(err)}
}

func wrapEvalError(err *EvaluationError) *ExpressionError {
	return &ExpressionError{Eval: err, cause: errors.WithStack(err)}
}
