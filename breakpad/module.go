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
	"strings"

	"github.com/go-breakpad/symbolic/common"
)

// ModuleRecord is the mandatory first line of a breakpad symbol file:
//
//	MODULE <os> <arch> <id> [<name>]
type ModuleRecord struct {
	OS   string
	Arch common.Arch
	ID   string
	Name string
}

// parseModuleRecord decodes a single MODULE line. line must already have
// the leading "MODULE" token and any surrounding whitespace stripped by
// the caller.
func parseModuleRecord(line string) (ModuleRecord, error) {
	fields := splitWhitespaceN(line, 4)
	if len(fields) < 3 {
		return ModuleRecord{}, newParseError(KindModuleRecord)
	}

	osVal, err := os(fields[0])
	if err != nil {
		return ModuleRecord{}, err
	}

	archVal, err := arch(fields[1])
	if err != nil {
		return ModuleRecord{}, err
	}

	id, err := moduleId(fields[2])
	if err != nil {
		return ModuleRecord{}, err
	}

	name := unknownName
	if len(fields) > 3 {
		trimmed := strings.TrimSpace(fields[3])
		if trimmed != "" {
			name = trimmed
		}
	}

	return ModuleRecord{OS: osVal, Arch: archVal, ID: id, Name: name}, nil
}
