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

// FuncRecord is a "FUNC [m] <address> <size> <param_size> <name>" line.
// Its LINE children are returned lazily via Lines; FuncRecords still
// parses them once to find where the function's line table ends.
type FuncRecord struct {
	Multiple  bool
	Address   uint64
	Size      uint64
	ParamSize uint64
	Name      string

	lines lines
}

func parseFuncRecord(line string, tail lines) (FuncRecord, error) {
	rest := line
	multiple := false
	if trimmed, ok := strings.CutPrefix(rest, "m "); ok {
		multiple = true
		rest = trimmed
	}

	fields := splitWhitespaceN(rest, 4)
	if len(fields) < 3 {
		return FuncRecord{}, newParseError(KindFuncRecord)
	}

	address, err := numHex64(fields[0])
	if err != nil {
		return FuncRecord{}, err
	}

	size, err := numHex64(fields[1])
	if err != nil {
		return FuncRecord{}, err
	}

	paramSize, err := numHex64(fields[2])
	if err != nil {
		return FuncRecord{}, err
	}

	name := unknownName
	if len(fields) == 4 {
		if trimmed := strings.TrimSpace(fields[3]); trimmed != "" {
			name = trimmed
		}
	}

	return FuncRecord{
		Multiple:  multiple,
		Address:   address,
		Size:      size,
		ParamSize: paramSize,
		Name:      name,
		lines:     tail,
	}, nil
}

// Lines returns a fresh, independent iterator over this function's LINE
// records. Calling Lines more than once, or interleaving it with the
// enclosing FuncRecords iterator, is safe: each LineRecords gets its own
// forked cursor.
func (f FuncRecord) Lines() LineRecords {
	return newLineRecords(f.lines.fork())
}

// FuncRecords iterates every FUNC record anywhere in the symbol file,
// skipping each one's nested LINE records. The skipped records are
// parsed to find their end but not returned; FuncRecord.Lines() yields
// them.
type FuncRecords struct {
	lines lines
	err   error
}

func newFuncRecords(l lines) FuncRecords {
	return FuncRecords{lines: l}
}

func (r *FuncRecords) Err() error {
	return r.err
}

func (r *FuncRecords) Next() (FuncRecord, bool) {
	if r.err != nil {
		return FuncRecord{}, false
	}

	for {
		line, ok := r.lines.next()
		if !ok {
			return FuncRecord{}, false
		}

		rest, found := strings.CutPrefix(string(line), "FUNC ")
		if !found {
			continue
		}

		rec, err := parseFuncRecord(rest, r.lines.fork())
		if err != nil {
			r.err = err
			return FuncRecord{}, false
		}

		// Advance past this FUNC's LINE children so the next call to
		// Next starts looking from the following record. The children
		// are parsed here only to find where they end.
		skip := newLineRecords(r.lines.fork())
		for {
			if _, ok := skip.Next(); !ok {
				break
			}
		}
		r.lines = skip.tail()

		return rec, true
	}
}
