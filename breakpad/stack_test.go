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

package breakpad

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStackCfiDeltaIteratorStopsBeforeNextInit(t *testing.T) {
	body := "STACK CFI INIT 1000 10 .cfa: $rsp 8 +\n" +
		"STACK CFI 1004 .cfa: $rsp 10 +\n" +
		"STACK CFI 1008 .cfa: $rsp 18 +\n" +
		"STACK CFI INIT 2000 10 .cfa: $rsp 8 +\n"

	records := newStackRecords(newLines([]byte(body)))

	first, ok := records.Next()
	require.True(t, ok)
	require.NotNil(t, first.CfiInit)
	require.Equal(t, uint64(0x1000), first.CfiInit.Address)

	deltas := first.CfiInit.Deltas()
	var seen []uint64
	for {
		d, ok := deltas.Next()
		if !ok {
			break
		}
		seen = append(seen, d.Address)
	}
	require.NoError(t, deltas.Err())
	require.Equal(t, []uint64{0x1004, 0x1008}, seen)

	second, ok := records.Next()
	require.True(t, ok)
	require.NotNil(t, second.CfiInit)
	require.Equal(t, uint64(0x2000), second.CfiInit.Address)

	_, ok = records.Next()
	require.False(t, ok)
	require.NoError(t, records.Err())
}

func TestStackWinRecordWithProgramString(t *testing.T) {
	rec, err := parseStackWinRecord("4 1000 50 0 0 0 0 0 0 1 $T0 .raSearch =")
	require.NoError(t, err)
	require.Equal(t, StackWinFrameData, rec.Type)
	require.True(t, rec.HasProgram)
	require.Equal(t, "$T0 .raSearch =", rec.ProgramString)
}

func TestStackWinRecordWithUsesBasePointerFlag(t *testing.T) {
	rec, err := parseStackWinRecord("0 1000 50 0 0 0 0 0 0 0 1")
	require.NoError(t, err)
	require.Equal(t, StackWinFpo, rec.Type)
	require.False(t, rec.HasProgram)
	require.True(t, rec.UsesBasePointer)
}
