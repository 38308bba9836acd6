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

	"github.com/go-breakpad/symbolic/common"
)

func TestParseModuleRecord(t *testing.T) {
	rec, err := parseModuleRecord("Linux x86_64 000000000000000000000000000000000 firefox")
	require.NoError(t, err)
	require.Equal(t, "Linux", rec.OS)
	require.Equal(t, common.ArchAmd64, rec.Arch)
	require.Equal(t, "000000000000000000000000000000000", rec.ID)
	require.Equal(t, "firefox", rec.Name)
}

func TestParseModuleRecordDefaultsName(t *testing.T) {
	rec, err := parseModuleRecord("mac x86_64 00000000000000000000000000000000")
	require.NoError(t, err)
	require.Equal(t, unknownName, rec.Name)
}

func TestParseModuleRecordRejectsUnknownOS(t *testing.T) {
	_, err := parseModuleRecord("plan9 x86_64 00000000000000000000000000000000 foo")
	require.Error(t, err)

	var pe *Error
	require.ErrorAs(t, err, &pe)
	kind, ok := pe.ParseKind()
	require.True(t, ok)
	require.Equal(t, KindOs, kind)
}

func TestParseModuleRecordRejectsShortId(t *testing.T) {
	_, err := parseModuleRecord("Linux x86_64 deadbeef foo")
	require.Error(t, err)
}

func TestParseModuleRecordTooFewFields(t *testing.T) {
	_, err := parseModuleRecord("Linux x86_64")
	require.Error(t, err)
}
