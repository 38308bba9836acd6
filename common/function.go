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

// NameMangling describes whether a Name has been run through a compiler's
// name-mangling scheme.
type NameMangling int

const (
	MangledUnknown NameMangling = iota
	Mangled
	Unmangled
)

// Language identifies the source language a Name originated from.
type Language int

const (
	LanguageUnknown Language = iota
	LanguageC
	LanguageCpp
	LanguageRust
	LanguageSwift
)

// Name is a (possibly mangled) symbol name together with enough metadata
// to demangle it correctly, were a demangler wired in. Breakpad symbol
// files only ever carry already-unmangled names, so NameMangling is
// always Unmangled and Language is always LanguageUnknown for records this
// module produces.
type Name struct {
	Value    string
	Mangling NameMangling
	Language Language
}

// NewName builds a Name with the given mangling state and language.
func NewName(value string, mangling NameMangling, language Language) Name {
	return Name{Value: value, Mangling: mangling, Language: language}
}

func (n Name) String() string {
	return n.Value
}

// FileInfo describes a source file by its full path.
type FileInfo struct {
	Path string
}

// FileInfoFromPath builds a FileInfo from a raw path string. An empty path yields
// a zero-value FileInfo.
func FileInfoFromPath(path string) FileInfo {
	return FileInfo{Path: path}
}

// LineInfo associates a range of code addresses with a source line.
type LineInfo struct {
	Address uint64
	Size    *uint64
	File    FileInfo
	Line    uint64
}

// FileEntry is a single source file referenced by a debug session.
type FileEntry struct {
	CompilationDir string
	Info           FileInfo
}

// Function is a joined view of a debug record: an address range, a name,
// and the line table covering it.
type Function struct {
	Address        uint64
	Size           uint64
	Name           Name
	CompilationDir string
	Lines          []LineInfo
	Inlinees       []Function
	Inline         bool
}
