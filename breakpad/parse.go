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
	"strconv"
	"strings"

	"github.com/go-breakpad/symbolic/common"
)

// unknownName is substituted for any missing trailing name field, per the
// spec's policy for MODULE/FILE/FUNC/PUBLIC records.
const unknownName = "<unknown>"

func numHex64(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, newParseErrorWithCause(KindNumHex, err)
	}
	return v, nil
}

func numHex32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, newParseErrorWithCause(KindNumHex, err)
	}
	return uint32(v), nil
}

func numHex16(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, newParseErrorWithCause(KindNumHex, err)
	}
	return uint16(v), nil
}

// numDec64 parses an unsigned decimal integer. It does not accept a
// leading '-': the spec's open question about reinterpreting negative
// line numbers as unsigned is explicitly left undecided, and this
// implementation takes the conservative branch of rejecting them.
func numDec64(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, newParseErrorWithCause(KindNumDec, err)
	}
	return v, nil
}

// os validates the MODULE record's operating system token against
// Breakpad's closed set.
func os(s string) (string, error) {
	switch s {
	case "Linux", "mac", "windows":
		return s, nil
	default:
		return "", newParseError(KindOs)
	}
}

// arch validates the MODULE record's architecture token against
// Breakpad's closed set.
func arch(s string) (common.Arch, error) {
	a, err := common.ParseArch(s)
	if err != nil {
		return "", newParseError(KindArch)
	}
	return a, nil
}

// moduleId validates a MODULE record's id field: 32 to 40 ASCII hex
// digits.
func moduleId(s string) (string, error) {
	if len(s) < 32 || len(s) > 40 || !isAllHex(s) {
		return "", newParseError(KindId)
	}
	return s, nil
}

// infoId validates an INFO record's code_id/scope field: any number of
// ASCII hex digits.
func infoId(s string) (string, error) {
	if !isAllHex(s) {
		return "", newParseError(KindId)
	}
	return s, nil
}

func isAllHex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !isHexDigit(c) {
			return false
		}
	}
	return true
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// stackWinRecordType validates the first token of a STACK WIN record.
func stackWinRecordType(s string) (StackWinRecordType, error) {
	switch s {
	case "0":
		return StackWinFpo, nil
	case "4":
		return StackWinFrameData, nil
	default:
		return 0, newParseError(KindStackWinRecordType)
	}
}

// splitWhitespaceN splits s on runs of spaces and tabs into at most n
// fields, mirroring the Rust source's `splitn(n, char::is_whitespace)`:
// runs of whitespace collapse, but the final field retains any internal
// whitespace verbatim.
func splitWhitespaceN(s string, n int) []string {
	fields := make([]string, 0, n)
	rest := s
	for len(fields) < n-1 {
		rest = strings.TrimLeft(rest, " \t")
		if rest == "" {
			break
		}
		idx := strings.IndexAny(rest, " \t")
		if idx < 0 {
			fields = append(fields, rest)
			rest = ""
			break
		}
		fields = append(fields, rest[:idx])
		rest = rest[idx+1:]
	}
	rest = strings.TrimLeft(rest, " \t")
	if rest != "" || len(fields) > 0 {
		if rest != "" {
			fields = append(fields, rest)
		}
	}
	return fields
}
