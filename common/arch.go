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

// Package common holds the small set of types that the Breakpad symbol
// parser and the RPN unwind evaluator both need, and that a sibling
// ELF/Mach-O object reader would need too. Nothing here knows how to read
// an actual object file; it only describes the shapes those readers and
// the Breakpad text parser agree on.
package common

import (
	"debug/elf"
	"debug/macho"
	"strings"
)

// Arch identifies a CPU architecture.
type Arch string

// The architecture constants Breakpad's MODULE record can carry, plus a
// handful more that the object multiplexer would need to identify from
// ELF/Mach-O headers.
const (
	ArchX86     Arch = "x86"
	ArchAmd64   Arch = "x86_64"
	ArchPpc     Arch = "ppc"
	ArchPpc64   Arch = "ppc_64"
	ArchArm64   Arch = "arm64"
	ArchUnknown Arch = "unknown"
)

// ParseArch validates and normalizes an architecture token. Only the five
// values Breakpad's MODULE record allows are accepted; anything else is an
// error, matching the spec's closed `arch()` token parser.
func ParseArch(s string) (Arch, error) {
	switch Arch(s) {
	case ArchX86, ArchAmd64, ArchPpc, ArchPpc64, ArchUnknown:
		return Arch(s), nil
	default:
		return "", &UnknownArchError{Value: s}
	}
}

// UnknownArchError reports an architecture token outside the set Breakpad
// module records are allowed to carry.
type UnknownArchError struct {
	Value string
}

func (e *UnknownArchError) Error() string {
	return "unrecognized architecture: " + e.Value
}

// String renders the architecture using the same spelling Breakpad uses on
// the wire.
func (a Arch) String() string {
	return string(a)
}

// FromELFMachine maps an ELF e_machine value to an Arch. This exists for
// the sibling object multiplexer; the Breakpad text parser never calls it
// since module records already spell out the architecture as a string.
func FromELFMachine(machine elf.Machine) Arch {
	switch machine {
	case elf.EM_386:
		return ArchX86
	case elf.EM_X86_64:
		return ArchAmd64
	case elf.EM_PPC:
		return ArchPpc
	case elf.EM_PPC64:
		return ArchPpc64
	case elf.EM_AARCH64:
		return ArchArm64
	default:
		return ArchUnknown
	}
}

// FromMachOCPU maps a Mach-O cpu type to an Arch, for the same reason as
// FromELFMachine.
func FromMachOCPU(cpu macho.Cpu) Arch {
	switch cpu {
	case macho.Cpu386:
		return ArchX86
	case macho.CpuAmd64:
		return ArchAmd64
	case macho.CpuPpc:
		return ArchPpc
	case macho.CpuPpc64:
		return ArchPpc64
	case macho.CpuArm64:
		return ArchArm64
	default:
		return ArchUnknown
	}
}

// IsKnown reports whether a is one of the named architectures, i.e. not
// ArchUnknown and not the empty string.
func (a Arch) IsKnown() bool {
	return a != "" && a != ArchUnknown
}

// PointerSize returns the width, in bytes, of a pointer on this
// architecture, or 0 if unknown.
func (a Arch) PointerSize() int {
	switch a {
	case ArchX86, ArchPpc:
		return 4
	case ArchAmd64, ArchPpc64, ArchArm64:
		return 8
	default:
		return 0
	}
}

// IsBreakpadOS reports whether os is one of the operating system names
// Breakpad's MODULE record allows: "Linux", "mac" or "windows".
func IsBreakpadOS(os string) bool {
	switch os {
	case "Linux", "mac", "windows":
		return true
	default:
		return false
	}
}

// NormalizeOS lowercases an OS token for display purposes without altering
// Breakpad's canonical, case-sensitive spelling used in comparisons
// elsewhere.
func NormalizeOS(os string) string {
	return strings.ToLower(os)
}
