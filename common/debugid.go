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

package common

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// DebugID uniquely identifies a debug file across builds. Breakpad encodes
// it as 32 to 40 ASCII hex digits: the first 32 are a Windows-style GUID
// (stored byte-swapped relative to the textual UUID convention), and the
// remaining 0 to 8 digits are an "age" — how many times the file was
// rebuilt without changing its GUID.
type DebugID struct {
	UUID     uuid.UUID
	Appendix uint32
}

// ParseDebugID parses a Breakpad module id. It tolerates the 32-character
// no-age form (age defaults to 0), matching the spec's "short id" boundary
// scenario.
func ParseDebugID(s string) (DebugID, error) {
	if len(s) < 32 || len(s) > 40 {
		return DebugID{}, fmt.Errorf("debug id must be 32-40 hex digits, got %d", len(s))
	}

	raw, err := hex.DecodeString(s[:32])
	if err != nil {
		return DebugID{}, fmt.Errorf("debug id is not valid hex: %w", err)
	}

	var age uint32
	if rest := s[32:]; rest != "" {
		// Age is a plain hex number, the same form String writes it in.
		v, err := strconv.ParseUint(rest, 16, 32)
		if err != nil {
			return DebugID{}, fmt.Errorf("debug id age is not valid hex: %w", err)
		}
		age = uint32(v)
	}

	id, err := uuid.FromBytes(swapGUID(raw))
	if err != nil {
		return DebugID{}, fmt.Errorf("debug id is not a valid guid: %w", err)
	}

	return DebugID{UUID: id, Appendix: age}, nil
}

// swapGUID reorders the first three fields of a 16-byte Windows GUID
// (stored little-endian in memory) into the big-endian order the textual
// UUID convention expects. The trailing 8-byte node/clock-seq field is
// already byte-for-byte identical between the two conventions.
func swapGUID(guid []byte) []byte {
	out := make([]byte, 16)
	copy(out, guid)
	reverse(out[0:4])
	reverse(out[4:6])
	reverse(out[6:8])
	return out
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

// String renders the DebugID back into Breakpad's 32-to-40-character form;
// the age is omitted when it is zero.
func (d DebugID) String() string {
	raw := swapGUID(d.UUID[:])
	s := hex.EncodeToString(raw)
	if d.Appendix == 0 {
		return s
	}
	return fmt.Sprintf("%s%x", s, d.Appendix)
}
