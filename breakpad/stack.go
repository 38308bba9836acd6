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

import "strings"

// StackRecord is the union of the two kinds of STACK line that open a
// new unwind record: STACK WIN and STACK CFI INIT. Exactly one of Win
// or CfiInit is set.
type StackRecord struct {
	Win     *StackWinRecord
	CfiInit *StackCfiInitRecord
}

// StackRecords iterates every top-level STACK record in the symbol
// file: each STACK WIN line, and each STACK CFI INIT line (its nested
// STACK CFI deltas are reached via StackCfiInitRecord.Deltas, not
// surfaced here).
type StackRecords struct {
	lines lines
	err   error
}

func newStackRecords(l lines) StackRecords {
	return StackRecords{lines: l}
}

func (r *StackRecords) Err() error {
	return r.err
}

func (r *StackRecords) Next() (StackRecord, bool) {
	if r.err != nil {
		return StackRecord{}, false
	}

	for {
		line, ok := r.lines.next()
		if !ok {
			return StackRecord{}, false
		}

		trimmed := strings.TrimSpace(string(line))

		if rest, found := strings.CutPrefix(trimmed, "STACK WIN "); found {
			win, err := parseStackWinRecord(rest)
			if err != nil {
				r.err = err
				return StackRecord{}, false
			}
			return StackRecord{Win: &win}, true
		}

		if rest, found := strings.CutPrefix(trimmed, "STACK CFI INIT "); found {
			init, err := parseStackCfiInitRecord(rest, r.lines.fork())
			if err != nil {
				r.err = err
				return StackRecord{}, false
			}

			// Skip past this INIT record's nested deltas so the next
			// Next() call resumes after them, mirroring FuncRecords'
			// treatment of LINE children.
			deltas := newStackCfiDeltaRecords(r.lines.fork())
			for {
				if _, ok := deltas.Next(); !ok {
					break
				}
			}
			r.lines = deltas.tail()

			return StackRecord{CfiInit: &init}, true
		}

		if strings.HasPrefix(trimmed, "STACK CFI ") {
			// A bare STACK CFI delta with no preceding INIT on this
			// cursor: the grammar requires deltas to be nested, so this
			// is malformed input.
			r.err = newParseError(KindStackRecord)
			return StackRecord{}, false
		}
	}
}
