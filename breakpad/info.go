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

// InfoRecord is an INFO line. Breakpad only defines one scoped form,
// "INFO CODE_ID <id> [<name>]"; every other scope is carried verbatim as
// InfoOther so callers can still see it.
type InfoRecord struct {
	// CodeID holds the hex code identifier when Scope == "CODE_ID".
	CodeID string
	// CodeFile holds the optional trailing name for CODE_ID records.
	CodeFile string
	// Scope is the record's first token, e.g. "CODE_ID".
	Scope string
	// Other holds the remainder of the line for any scope other than
	// CODE_ID, verbatim.
	Other string
	// IsCodeID reports whether this record parsed as the CODE_ID form.
	IsCodeID bool
}

func parseInfoRecord(line string) (InfoRecord, error) {
	fields := splitWhitespaceN(line, 2)
	if len(fields) == 0 {
		return InfoRecord{}, newParseError(KindInfoRecord)
	}

	scope := fields[0]
	rest := ""
	if len(fields) > 1 {
		rest = fields[1]
	}

	if scope != "CODE_ID" {
		return InfoRecord{Scope: scope, Other: rest}, nil
	}

	idFields := splitWhitespaceN(rest, 2)
	if len(idFields) == 0 {
		return InfoRecord{}, newParseError(KindInfoRecord)
	}

	id, err := infoId(idFields[0])
	if err != nil {
		return InfoRecord{}, err
	}

	codeFile := ""
	if len(idFields) > 1 {
		codeFile = strings.TrimSpace(idFields[1])
	}

	return InfoRecord{Scope: scope, CodeID: id, CodeFile: codeFile, IsCodeID: true}, nil
}

// InfoRecords iterates the INFO records at the head of a symbol file,
// stopping as soon as a non-INFO, non-blank line is encountered.
type InfoRecords struct {
	lines lines
	err   error
}

func newInfoRecords(l lines) InfoRecords {
	return InfoRecords{lines: l}
}

// Err returns the first parse error encountered, if any.
func (r *InfoRecords) Err() error {
	return r.err
}

// Next returns the next INFO record, or false when the INFO block ends
// or an error occurred.
func (r *InfoRecords) Next() (InfoRecord, bool) {
	if r.err != nil {
		return InfoRecord{}, false
	}

	for {
		fork := r.lines.fork()
		line, ok := fork.next()
		if !ok {
			return InfoRecord{}, false
		}

		trimmed := strings.TrimSpace(string(line))
		if trimmed == "" {
			r.lines = fork
			continue
		}

		rest, found := strings.CutPrefix(trimmed, "INFO ")
		if !found {
			if trimmed == "INFO" {
				r.lines = fork
				continue
			}
			return InfoRecord{}, false
		}

		r.lines = fork
		rec, err := parseInfoRecord(rest)
		if err != nil {
			r.err = err
			return InfoRecord{}, false
		}
		return rec, true
	}
}
