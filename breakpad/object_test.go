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

const sampleSym = `MODULE Linux x86_64 000000000000000000000000000000000 firefox
INFO CODE_ID deadbeef firefox.so
FILE 0 /src/main.cpp
FILE 1 /src/util.cpp
PUBLIC 1000 0 _start
FUNC 2000 a0 0 main
2000 10 10 0
2010 20 11 1
STACK CFI INIT 2000 a0 .cfa: $rsp 8 +
STACK CFI 2010 .cfa: $rsp 10 +
STACK WIN 4 3000 50 0 0 0 0 0 0 1 $T0 .raSearch =
`

func TestTestDetectsModuleHeader(t *testing.T) {
	require.True(t, Test([]byte(sampleSym)))
	require.False(t, Test([]byte("not a symbol file")))
}

func TestParseExposesHeaderAndRecordKinds(t *testing.T) {
	obj, err := Parse([]byte(sampleSym))
	require.NoError(t, err)
	require.Equal(t, "firefox", obj.Name())

	codeId, err := obj.CodeId()
	require.NoError(t, err)
	require.Equal(t, "deadbeef", codeId.String())

	require.True(t, obj.HasSymbols())
	require.True(t, obj.HasDebugInfo())
	require.True(t, obj.HasUnwindInfo())
	require.False(t, obj.HasSources())
}

func TestParseRejectsMissingModuleLine(t *testing.T) {
	_, err := Parse([]byte("INFO CODE_ID deadbeef\n"))
	require.Error(t, err)

	var pe *Error
	require.ErrorAs(t, err, &pe)
	require.Equal(t, KindInvalidMagic, pe.Kind())
}

func TestFunctionsJoinLinesAndFiles(t *testing.T) {
	obj, err := Parse([]byte(sampleSym))
	require.NoError(t, err)

	session, err := obj.DebugSession()
	require.NoError(t, err)

	it := session.Functions()
	fn, ok := it.Next()
	require.True(t, ok)
	require.NoError(t, it.Err())

	require.Equal(t, "main", fn.Name.Value)
	require.Len(t, fn.Lines, 2)
	require.Equal(t, "/src/main.cpp", fn.Lines[0].File.Path)
	require.Equal(t, "/src/util.cpp", fn.Lines[1].File.Path)

	_, ok = it.Next()
	require.False(t, ok)
}

func TestDebugSessionFilesAscendingAndSourceUnavailable(t *testing.T) {
	obj, err := Parse([]byte(sampleSym))
	require.NoError(t, err)

	session, err := obj.DebugSession()
	require.NoError(t, err)

	files := session.Files()
	require.Len(t, files, 2)
	require.Equal(t, "/src/main.cpp", files[0].Info.Path)
	require.Equal(t, "/src/util.cpp", files[1].Info.Path)

	_, ok := session.SourceByPath("/src/main.cpp")
	require.False(t, ok)
}

func TestSymbolMapIsAddressSorted(t *testing.T) {
	obj, err := Parse([]byte(sampleSym + "PUBLIC 10 0 early\n"))
	require.NoError(t, err)

	sm, err := obj.SymbolMap()
	require.NoError(t, err)
	require.Equal(t, 2, sm.Len())
	require.Equal(t, uint64(0x10), sm.All()[0].Address)
	require.Equal(t, uint64(0x1000), sm.All()[1].Address)
}
