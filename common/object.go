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

package common

// FileFormat identifies the container format an object was read from.
type FileFormat int

const (
	FileFormatUnknown FileFormat = iota
	// FileFormatBreakpad is the only format this module ever produces.
	FileFormatBreakpad
	FileFormatElf
	FileFormatMachO
	FileFormatPdb
	FileFormatPe
	FileFormatSourceBundle
)

func (f FileFormat) String() string {
	switch f {
	case FileFormatBreakpad:
		return "breakpad"
	case FileFormatElf:
		return "elf"
	case FileFormatMachO:
		return "macho"
	case FileFormatPdb:
		return "pdb"
	case FileFormatPe:
		return "pe"
	case FileFormatSourceBundle:
		return "sourcebundle"
	default:
		return "unknown"
	}
}

// ObjectKind classifies the purpose of an object file.
type ObjectKind int

const (
	ObjectKindUnknown ObjectKind = iota
	// ObjectKindDebug is the only kind this module ever produces: Breakpad
	// symbol files are pure debug information, never executable images.
	ObjectKindDebug
	ObjectKindExecutable
	ObjectKindLibrary
	ObjectKindRelocatable
)

func (k ObjectKind) String() string {
	switch k {
	case ObjectKindDebug:
		return "debug"
	case ObjectKindExecutable:
		return "executable"
	case ObjectKindLibrary:
		return "library"
	case ObjectKindRelocatable:
		return "relocatable"
	default:
		return "unknown"
	}
}
