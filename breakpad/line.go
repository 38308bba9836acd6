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

// LineRecord is an untagged "<address> <size> <line> <file_id>" line
// nested under a FUNC record.
type LineRecord struct {
	Address uint64
	Size    uint64
	Line    uint64
	FileID  uint64
}

func parseLineRecord(line string) (LineRecord, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return LineRecord{}, newParseError(KindLineRecord)
	}

	address, err := numHex64(fields[0])
	if err != nil {
		return LineRecord{}, err
	}

	size, err := numHex64(fields[1])
	if err != nil {
		return LineRecord{}, err
	}

	lineNo, err := numDec64(fields[2])
	if err != nil {
		return LineRecord{}, err
	}

	fileID, err := numDec64(fields[3])
	if err != nil {
		return LineRecord{}, err
	}

	return LineRecord{Address: address, Size: size, Line: lineNo, FileID: fileID}, nil
}

// LineRecords iterates the LINE records belonging to a single FUNC
// record. It stops as soon as it sees a line starting with one of the
// record tags MODULE, INFO, FILE, FUNC, PUBLIC or STACK, or at end of
// input. An untagged line that fails to parse as a LINE record also
// stops it, and that error is reported through Err.
type LineRecords struct {
	lines lines
	err   error
	done  bool
}

func newLineRecords(l lines) LineRecords {
	return LineRecords{lines: l}
}

func (r *LineRecords) Err() error {
	return r.err
}

// Next returns the next LINE record nested under the enclosing FUNC, or
// false once the FUNC's lines are exhausted. A blank line is skipped
// rather than treated as the end of the table; a zero-size record is
// skipped too, since it covers no address range. A malformed line
// stops the iterator and is reported through Err.
func (r *LineRecords) Next() (LineRecord, bool) {
	if r.err != nil || r.done {
		return LineRecord{}, false
	}

	for {
		fork := r.lines.fork()
		line, ok := fork.next()
		if !ok {
			r.done = true
			return LineRecord{}, false
		}

		trimmed := strings.TrimSpace(string(line))
		if trimmed == "" {
			r.lines = fork
			continue
		}
		if isRecordTag(trimmed) {
			r.done = true
			return LineRecord{}, false
		}

		rec, err := parseLineRecord(trimmed)
		if err != nil {
			r.err = err
			r.done = true
			return LineRecord{}, false
		}

		r.lines = fork
		if rec.Size == 0 {
			continue
		}
		return rec, true
	}
}

// tail exposes the cursor position immediately after the last LINE
// record consumed, so the enclosing FuncRecords iterator can resume
// from exactly where the nested LineRecords left off.
func (r LineRecords) tail() lines {
	return r.lines
}

func isRecordTag(line string) bool {
	for _, prefix := range []string{"MODULE", "INFO", "FILE", "FUNC", "PUBLIC", "STACK"} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}
