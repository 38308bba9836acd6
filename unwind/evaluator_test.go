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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-breakpad/symbolic/common"
)

func TestEvaluateSimpleArithmetic(t *testing.T) {
	e := NewEvaluator[uint64](common.LittleEndian)
	expr, err := parseExpr[uint64]("$rsp 8 +")
	require.NoError(t, err)

	e.WithRegister(Variable("$rsp"), 0x1000)
	v, err := e.Evaluate(expr)
	require.NoError(t, err)
	require.Equal(t, uint64(0x1008), v)
}

func TestEvaluateUndefinedRegister(t *testing.T) {
	e := NewEvaluator[uint64](common.LittleEndian)
	expr, err := parseExpr[uint64]("$rbx")
	require.NoError(t, err)

	_, err = e.Evaluate(expr)
	require.Error(t, err)

	var exprErr *ExpressionError
	require.ErrorAs(t, err, &exprErr)
	require.Equal(t, EvalUndefinedRegister, exprErr.Eval.Kind)
}

func TestEvaluateDerefReadsMemory(t *testing.T) {
	e := NewEvaluator[uint32](common.LittleEndian)
	e.WithMemory(common.MemoryRegion{BaseAddr: 0x2000, Contents: []byte{0x78, 0x56, 0x34, 0x12}})
	e.WithRegister(Variable("$esp"), 0x2000)

	expr, err := parseExpr[uint32]("$esp ^")
	require.NoError(t, err)

	v, err := e.Evaluate(expr)
	require.NoError(t, err)
	require.Equal(t, uint32(0x12345678), v)
}

func TestEvaluateDerefOutOfRange(t *testing.T) {
	e := NewEvaluator[uint32](common.LittleEndian)
	e.WithMemory(common.MemoryRegion{BaseAddr: 0x2000, Contents: []byte{0, 0}})

	expr, err := parseExpr[uint32]("40000 ^")
	require.NoError(t, err)

	_, err = e.Evaluate(expr)
	require.Error(t, err)

	var exprErr *ExpressionError
	require.ErrorAs(t, err, &exprErr)
	require.Equal(t, EvalIllegalMemoryAccess, exprErr.Eval.Kind)
}

func TestEvaluateDerefWithNoMemoryConfigured(t *testing.T) {
	e := NewEvaluator[uint32](common.LittleEndian)

	expr, err := parseExpr[uint32]("2000 ^")
	require.NoError(t, err)

	_, err = e.Evaluate(expr)
	require.Error(t, err)

	var exprErr *ExpressionError
	require.ErrorAs(t, err, &exprErr)
	require.Equal(t, EvalMemoryUnavailable, exprErr.Eval.Kind)
}

func TestEvaluateDivisionByZero(t *testing.T) {
	e := NewEvaluator[uint64](common.LittleEndian)
	expr, err := parseExpr[uint64]("10 0 /")
	require.NoError(t, err)

	_, err = e.Evaluate(expr)
	require.Error(t, err)

	var exprErr *ExpressionError
	require.ErrorAs(t, err, &exprErr)
	require.Equal(t, EvalDivisionByZero, exprErr.Eval.Kind)
}

func TestProcessRulesPromotesCfaBeforePeers(t *testing.T) {
	e := NewEvaluator[uint64](common.LittleEndian)
	e.WithRegister(Variable("$rsp"), 0x1000)

	err := e.ProcessRules(".cfa: $rsp 16 + .ra: .cfa 8 -")
	require.NoError(t, err)

	// .ra's rule references the CFA and the CFA isn't yet a known
	// register, so evaluating .ra promotes .cfa's own rule first.
	ra, err := e.EvaluateRegister(Variable(".ra"))
	require.NoError(t, err)
	require.Equal(t, uint64(0x100e), ra)

	cfa, err := e.EvaluateRegister(Cfa())
	require.NoError(t, err)
	require.Equal(t, uint64(0x1016), cfa)
}

func TestProcessRulesDoesNotPromoteAlreadyKnownCfa(t *testing.T) {
	e := NewEvaluator[uint64](common.LittleEndian)
	e.WithRegister(Variable("$rsp"), 0x1000)
	e.WithRegister(Cfa(), 0x2000)

	err := e.ProcessRules(".cfa: $rsp 16 + .ra: .cfa 8 -")
	require.NoError(t, err)

	// The CFA is already a known live register, so .ra's rule must use
	// the seeded value rather than recomputing it from .cfa's own rule.
	ra, err := e.EvaluateRegister(Variable(".ra"))
	require.NoError(t, err)
	require.Equal(t, uint64(0x1ff8), ra)
}

func TestEvaluateAllRegisters(t *testing.T) {
	e := NewEvaluator[uint64](common.LittleEndian)
	e.WithRegister(Variable("$rsp"), 0x1000)

	err := e.ProcessRules(".cfa: $rsp 16 + $rbx: $rsp 8 +")
	require.NoError(t, err)

	all, err := e.EvaluateAllRegisters()
	require.NoError(t, err)
	require.Equal(t, uint64(0x1016), all[cfaName])
	require.Equal(t, uint64(0x1008), all["$rbx"])
}

func TestEvaluateRegisterSkipsUnrelatedBrokenCfaRule(t *testing.T) {
	e := NewEvaluator[uint64](common.LittleEndian)
	e.WithRegister(Variable("$rsp"), 0x1000)

	err := e.ProcessRules(".cfa: $undef 0 + $rbx: $rsp 8 +")
	require.NoError(t, err)

	// $rbx's rule never mentions the CFA, so it must resolve even
	// though the active set's .cfa rule references an undefined
	// register and would fail if it were ever evaluated.
	rbx, err := e.EvaluateRegister(Variable("$rbx"))
	require.NoError(t, err)
	require.Equal(t, uint64(0x1008), rbx)
}

func TestEvaluateHexLiteralToken(t *testing.T) {
	e := NewEvaluator[uint64](common.LittleEndian)
	e.WithRegister(Cfa(), 0xd)

	err := e.ProcessRules("$sp: .cfa a %")
	require.NoError(t, err)

	sp, err := e.EvaluateRegister(Variable("$sp"))
	require.NoError(t, err)
	require.Equal(t, uint64(3), sp)
}

func TestEvaluateRegisterWithNoRule(t *testing.T) {
	e := NewEvaluator[uint64](common.LittleEndian)
	require.NoError(t, e.ProcessRules(".cfa: 16"))

	_, err := e.EvaluateRegister(Variable("$rbx"))
	require.Error(t, err)

	var exprErr *ExpressionError
	require.ErrorAs(t, err, &exprErr)
	require.Equal(t, EvalNoRuleForRegister, exprErr.Eval.Kind)
}
