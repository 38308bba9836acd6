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

// StackCfiInitRecord is a "STACK CFI INIT <address> <size> <rules...>"
// line: the first CFI record of a function, giving the unwind rules
// that apply at the function's entry point.
type StackCfiInitRecord struct {
	Address uint64
	Size    uint64
	Rules   string

	lines lines
}

func parseStackCfiInitRecord(line string, tail lines) (StackCfiInitRecord, error) {
	fields := splitWhitespaceN(line, 3)
	if len(fields) < 2 {
		return StackCfiInitRecord{}, newParseError(KindStackCfiInitRecord)
	}

	address, err := numHex64(fields[0])
	if err != nil {
		return StackCfiInitRecord{}, err
	}

	size, err := numHex64(fields[1])
	if err != nil {
		return StackCfiInitRecord{}, err
	}

	rules := ""
	if len(fields) > 2 {
		rules = strings.TrimSpace(fields[2])
	}

	return StackCfiInitRecord{Address: address, Size: size, Rules: rules, lines: tail}, nil
}

// Deltas returns an iterator over the STACK CFI delta records that
// refine this INIT record's rules at later addresses within the same
// function.
func (r StackCfiInitRecord) Deltas() StackCfiDeltaRecords {
	return newStackCfiDeltaRecords(r.lines.fork())
}

// StackCfiDeltaRecord is a "STACK CFI <address> <rules...>" line: an
// update to the unwind rules in effect at a later address within the
// function opened by the preceding STACK CFI INIT record.
type StackCfiDeltaRecord struct {
	Address uint64
	Rules   string
}

func parseStackCfiDeltaRecord(line string) (StackCfiDeltaRecord, error) {
	fields := splitWhitespaceN(line, 2)
	if len(fields) == 0 {
		return StackCfiDeltaRecord{}, newParseError(KindStackCfiDeltaRecord)
	}

	address, err := numHex64(fields[0])
	if err != nil {
		return StackCfiDeltaRecord{}, err
	}

	rules := ""
	if len(fields) > 1 {
		rules = strings.TrimSpace(fields[1])
	}

	return StackCfiDeltaRecord{Address: address, Rules: rules}, nil
}

// StackCfiDeltaRecords iterates the STACK CFI delta lines nested under
// a single STACK CFI INIT record. It stops, without consuming the
// line, as soon as it sees anything other than a "STACK CFI " line
// that is not itself another INIT record.
type StackCfiDeltaRecords struct {
	lines lines
	err   error
	done  bool
}

func newStackCfiDeltaRecords(l lines) StackCfiDeltaRecords {
	return StackCfiDeltaRecords{lines: l}
}

func (r *StackCfiDeltaRecords) Err() error {
	return r.err
}

func (r *StackCfiDeltaRecords) Next() (StackCfiDeltaRecord, bool) {
	if r.err != nil || r.done {
		return StackCfiDeltaRecord{}, false
	}

	fork := r.lines.fork()
	line, ok := fork.next()
	if !ok {
		r.done = true
		return StackCfiDeltaRecord{}, false
	}

	trimmed := strings.TrimSpace(string(line))
	rest, found := strings.CutPrefix(trimmed, "STACK CFI ")
	if !found || strings.HasPrefix(rest, "INIT ") {
		r.done = true
		return StackCfiDeltaRecord{}, false
	}

	rec, err := parseStackCfiDeltaRecord(rest)
	if err != nil {
		r.err = err
		r.done = true
		return StackCfiDeltaRecord{}, false
	}

	r.lines = fork
	return rec, true
}

func (r StackCfiDeltaRecords) tail() lines {
	return r.lines
}
