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

// StackWinRecordType distinguishes the two STACK WIN record shapes
// Breakpad emits; FPO is legacy x86 frame-pointer-omission data, while
// FrameData is the modern, richer form.
type StackWinRecordType int

const (
	StackWinFpo StackWinRecordType = iota
	StackWinFrameData
)

func (t StackWinRecordType) String() string {
	if t == StackWinFpo {
		return "FPO"
	}
	return "FrameData"
}

// StackWinRecord is a "STACK WIN <type> <address> <size> <prolog_size>
// <epilog_size> <params_size> <saved_regs_size> <locals_size>
// <max_stack_size> <has_program_string> <program_string_or_uses_fp>"
// line.
type StackWinRecord struct {
	Type            StackWinRecordType
	Address         uint64
	Size            uint64
	PrologSize      uint32
	EpilogSize      uint32
	ParamsSize      uint32
	SavedRegsSize   uint32
	LocalsSize      uint32
	MaxStackSize    uint32
	ProgramString   string
	UsesBasePointer bool
	HasProgram      bool
}

func parseStackWinRecord(line string) (StackWinRecord, error) {
	fields := splitWhitespaceN(line, 11)
	if len(fields) != 11 {
		return StackWinRecord{}, newParseError(KindStackWinRecord)
	}

	typ, err := stackWinRecordType(fields[0])
	if err != nil {
		return StackWinRecord{}, err
	}

	address, err := numHex64(fields[1])
	if err != nil {
		return StackWinRecord{}, err
	}

	size, err := numHex64(fields[2])
	if err != nil {
		return StackWinRecord{}, err
	}

	prologSize, err := numHex32(fields[3])
	if err != nil {
		return StackWinRecord{}, err
	}

	epilogSize, err := numHex32(fields[4])
	if err != nil {
		return StackWinRecord{}, err
	}

	paramsSize, err := numHex32(fields[5])
	if err != nil {
		return StackWinRecord{}, err
	}

	savedRegsSize, err := numHex32(fields[6])
	if err != nil {
		return StackWinRecord{}, err
	}

	localsSize, err := numHex32(fields[7])
	if err != nil {
		return StackWinRecord{}, err
	}

	maxStackSize, err := numHex32(fields[8])
	if err != nil {
		return StackWinRecord{}, err
	}

	hasProgram, err := numHex16(fields[9])
	if err != nil {
		return StackWinRecord{}, err
	}

	rec := StackWinRecord{
		Type:          typ,
		Address:       address,
		Size:          size,
		PrologSize:    prologSize,
		EpilogSize:    epilogSize,
		ParamsSize:    paramsSize,
		SavedRegsSize: savedRegsSize,
		LocalsSize:    localsSize,
		MaxStackSize:  maxStackSize,
		HasProgram:    hasProgram != 0,
	}

	if rec.HasProgram {
		rec.ProgramString = strings.TrimSpace(fields[10])
	} else {
		flag, err := numHex16(fields[10])
		if err != nil {
			return StackWinRecord{}, err
		}
		rec.UsesBasePointer = flag != 0
	}

	return rec, nil
}
