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

import "github.com/go-breakpad/symbolic/common"

// Evaluator holds the live state needed to evaluate RPN expressions
// against a stack frame: the registers known so far, the one memory
// region available for Deref, and the active set of CFI rules.
//
// T is the machine word width (uint32 on a 32-bit target, uint64 on a
// 64-bit one); every register, literal, and memory read is evaluated
// at this width, and arithmetic wraps exactly the way the target's own
// registers would.
type Evaluator[T common.Unsigned] struct {
	endian    common.Endianness
	memory    common.MemoryRegion
	hasMemory bool
	registers map[string]T
	cache     map[string]T
	cfiRules  map[string]Expr[T]
}

// NewEvaluator creates an Evaluator with no known registers, no memory,
// and no active rules.
func NewEvaluator[T common.Unsigned](endian common.Endianness) *Evaluator[T] {
	return &Evaluator[T]{
		endian:    endian,
		registers: map[string]T{},
		cache:     map[string]T{},
		cfiRules:  map[string]Expr[T]{},
	}
}

// WithMemory sets the one memory region the evaluator's Deref can read
// from, and returns the receiver for chaining. A later call replaces
// the previous region rather than adding to it.
func (e *Evaluator[T]) WithMemory(region common.MemoryRegion) *Evaluator[T] {
	e.memory = region
	e.hasMemory = true
	return e
}

// WithRegister seeds a known register value, and returns the receiver
// for chaining.
func (e *Evaluator[T]) WithRegister(reg Register, value T) *Evaluator[T] {
	e.registers[reg.String()] = value
	return e
}

// AddCfiRule adds a rule to the active set that EvaluateRegister and
// EvaluateAllRegisters draw from.
func (e *Evaluator[T]) AddCfiRule(rule Assignment[T]) {
	e.cfiRules[rule.Dest.String()] = rule.Expr
}

// ProcessRules adds the parsed rules of program to the active rule set,
// replacing any existing rule for the same register, and clears any
// cached evaluation results.
func (e *Evaluator[T]) ProcessRules(program string) error {
	rules, err := ParseRules[T](program)
	if err != nil {
		return wrapParseError(err.(*ParseExprError))
	}

	e.cache = map[string]T{}
	for _, rule := range rules {
		e.cfiRules[rule.Dest.String()] = rule.Expr
	}
	return nil
}

// Evaluate resolves expr against the evaluator's current register and
// memory state. It does not consult the active rule set; see
// EvaluateRegister for that.
func (e *Evaluator[T]) Evaluate(expr Expr[T]) (T, error) {
	return e.eval(expr)
}

func (e *Evaluator[T]) eval(expr Expr[T]) (T, error) {
	switch expr.Kind {
	case ExprValue:
		return expr.Value, nil

	case ExprReg:
		return e.resolveRegister(expr.Reg)

	case ExprOp:
		left, err := e.eval(*expr.Left)
		if err != nil {
			return 0, err
		}
		right, err := e.eval(*expr.Right)
		if err != nil {
			return 0, err
		}
		return applyBinOp(expr.Op, left, right)

	case ExprDeref:
		addr, err := e.eval(*expr.Inner)
		if err != nil {
			return 0, err
		}
		return e.derefAt(uint64(addr))

	default:
		return 0, wrapEvalError(undefinedRegister(Register{}))
	}
}

func applyBinOp[T common.Unsigned](op BinOp, left, right T) (T, error) {
	switch op {
	case OpAdd:
		return left + right, nil
	case OpSub:
		return left - right, nil
	case OpMul:
		return left * right, nil
	case OpDiv:
		if right == 0 {
			return 0, wrapEvalError(divisionByZero())
		}
		return left / right, nil
	case OpMod:
		if right == 0 {
			return 0, wrapEvalError(divisionByZero())
		}
		return left % right, nil
	case OpAlign:
		if right == 0 {
			return 0, wrapEvalError(divisionByZero())
		}
		return (left / right) * right, nil
	default:
		return 0, wrapEvalError(divisionByZero())
	}
}

func (e *Evaluator[T]) resolveRegister(reg Register) (T, error) {
	if reg.IsConstant() {
		return T(reg.Value), nil
	}

	if v, ok := e.registers[reg.String()]; ok {
		return v, nil
	}

	return 0, wrapEvalError(undefinedRegister(reg))
}

// derefAt reads a T-wide value at address from the configured memory
// region. No region at all means there was nowhere to even attempt the
// read (MemoryUnavailable); a region that doesn't cover the read means
// the read ran past it (IllegalMemoryAccess).
func (e *Evaluator[T]) derefAt(address uint64) (T, error) {
	if !e.hasMemory {
		return 0, wrapEvalError(memoryUnavailable(address))
	}

	v, ok := common.Get[T](e.memory, address, e.endian)
	if !ok {
		addrRange := AddressRange{Start: e.memory.BaseAddr, End: e.memory.End()}
		return 0, wrapEvalError(illegalMemoryAccess(address, common.Width[T](), addrRange))
	}
	return v, nil
}

// EvaluateRegister resolves the value of reg using the active rule
// set, memoizing the result. If reg is not the CFA register, reg's own
// rule references the CFA, and the CFA is not already a known live
// register, the CFA's own rule is evaluated first and its result is
// promoted into the live register map (not merely cached) so that
// reg's rule sees the frame's new CFA, while every other register
// still sees the caller's old values. A rule that never mentions the
// CFA never pays for resolving it, even if an unrelated (and possibly
// broken) CFA rule exists in the active set.
func (e *Evaluator[T]) EvaluateRegister(reg Register) (T, error) {
	key := reg.String()

	if v, ok := e.cache[key]; ok {
		return v, nil
	}

	expr, ok := e.cfiRules[key]
	if !ok {
		return 0, wrapEvalError(noRuleForRegister(reg))
	}

	if !reg.IsCfa() && expr.ContainsCfa() {
		if _, known := e.registers[cfaName]; !known {
			if cfaExpr, hasCfaRule := e.cfiRules[cfaName]; hasCfaRule {
				cfaValue, err := e.eval(cfaExpr)
				if err != nil {
					return 0, err
				}
				e.cache[cfaName] = cfaValue
				e.registers[cfaName] = cfaValue
			}
		}
	}

	value, err := e.eval(expr)
	if err != nil {
		return 0, err
	}

	e.cache[key] = value
	return value, nil
}

// EvaluateAllRegisters evaluates every register the active rule set
// assigns, returning the resulting register map keyed by register
// name. The CFA, if a rule assigns it, is evaluated and promoted first
// per EvaluateRegister's rule.
func (e *Evaluator[T]) EvaluateAllRegisters() (map[string]T, error) {
	result := map[string]T{}
	for name := range e.cfiRules {
		v, err := e.EvaluateRegister(registerFromKey(name))
		if err != nil {
			return nil, err
		}
		result[name] = v
	}
	return result, nil
}

func registerFromKey(key string) Register {
	if reg, ok := parseRegister(key); ok {
		return reg
	}
	return Variable(key)
}
