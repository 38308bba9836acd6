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
)

// FileRecord is a "FILE <id> <name>" line, mapping a small integer id to
// a source file path for later LINE records to reference.
type FileRecord struct {
	ID   uint64
	Name string
}

func parseFileRecord(line string) (FileRecord, error) {
	fields := splitWhitespaceN(line, 2)
	if len(fields) == 0 {
		return FileRecord{}, newParseError(KindFileRecord)
	}

	id, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return FileRecord{}, newParseErrorWithCause(KindFileRecord, err)
	}

	name := unknownName
	if len(fields) == 2 {
		if trimmed := strings.TrimSpace(fields[1]); trimmed != "" {
			name = trimmed
		}
	}

	return FileRecord{ID: id, Name: name}, nil
}

// FileRecords iterates every FILE line anywhere in the symbol file,
// skipping lines with any other tag.
type FileRecords struct {
	lines lines
	err   error
}

func newFileRecords(l lines) FileRecords {
	return FileRecords{lines: l}
}

func (r *FileRecords) Err() error {
	return r.err
}

// Next returns the next FILE record found in the stream, or false at
// end of input or on a parse error.
func (r *FileRecords) Next() (FileRecord, bool) {
	if r.err != nil {
		return FileRecord{}, false
	}

	for {
		line, ok := r.lines.next()
		if !ok {
			return FileRecord{}, false
		}

		rest, found := strings.CutPrefix(string(line), "FILE ")
		if !found {
			continue
		}

		rec, err := parseFileRecord(rest)
		if err != nil {
			r.err = err
			return FileRecord{}, false
		}
		return rec, true
	}
}

// FileMap folds a symbol file's FILE records into a lookup table from id
// to path. A later FILE record with a repeated id overwrites the
// earlier one, matching a last-write-wins map assignment. Unlike
// FileRecords, the fold is lenient: a line that fails to parse as a
// FILE record is skipped rather than aborting the whole map.
type FileMap map[uint64]string

func newFileMap(l lines) (FileMap, error) {
	m := FileMap{}
	for {
		line, ok := l.next()
		if !ok {
			break
		}

		rest, found := strings.CutPrefix(string(line), "FILE ")
		if !found {
			continue
		}

		rec, err := parseFileRecord(rest)
		if err != nil {
			continue
		}
		m[rec.ID] = rec.Name
	}
	return m, nil
}

// Get looks up a file id, returning "" if it was never defined.
func (m FileMap) Get(id uint64) string {
	return m[id]
}
