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

// PublicRecord is a "PUBLIC [m] <address> <param_size> <name>" line
// describing an exported symbol with no associated line table.
type PublicRecord struct {
	Multiple  bool
	Address   uint64
	ParamSize uint64
	Name      string
}

func parsePublicRecord(line string) (PublicRecord, error) {
	rest := line
	multiple := false
	if trimmed, ok := strings.CutPrefix(rest, "m "); ok {
		multiple = true
		rest = trimmed
	}

	fields := splitWhitespaceN(rest, 3)
	if len(fields) < 2 {
		return PublicRecord{}, newParseError(KindPublicRecord)
	}

	address, err := numHex64(fields[0])
	if err != nil {
		return PublicRecord{}, err
	}

	paramSize, err := numHex64(fields[1])
	if err != nil {
		return PublicRecord{}, err
	}

	name := unknownName
	if len(fields) == 3 {
		if trimmed := strings.TrimSpace(fields[2]); trimmed != "" {
			name = trimmed
		}
	}

	return PublicRecord{Multiple: multiple, Address: address, ParamSize: paramSize, Name: name}, nil
}

// PublicRecords iterates every PUBLIC line anywhere in the symbol file.
type PublicRecords struct {
	lines lines
	err   error
}

func newPublicRecords(l lines) PublicRecords {
	return PublicRecords{lines: l}
}

func (r *PublicRecords) Err() error {
	return r.err
}

func (r *PublicRecords) Next() (PublicRecord, bool) {
	if r.err != nil {
		return PublicRecord{}, false
	}

	for {
		line, ok := r.lines.next()
		if !ok {
			return PublicRecord{}, false
		}

		rest, found := strings.CutPrefix(string(line), "PUBLIC ")
		if !found {
			continue
		}

		rec, err := parsePublicRecord(rest)
		if err != nil {
			r.err = err
			return PublicRecord{}, false
		}
		return rec, true
	}
}
