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
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/go-breakpad/symbolic/common"
)

// headerCap bounds how much of a symbol file Test/Parse will read just to
// find the MODULE line, so that probing a multi-gigabyte .sym file for its
// format doesn't require reading the whole thing into memory first.
const headerCap = 320

// Test reports whether data looks like the start of a breakpad symbol
// file, without fully parsing it.
func Test(data []byte) bool {
	head := capHeader(data)
	return strings.HasPrefix(string(head), "MODULE ")
}

// capHeader returns a prefix of data no longer than headerCap bytes,
// backing off to the previous UTF-8 boundary if the cap would otherwise
// split a multi-byte rune.
func capHeader(data []byte) []byte {
	n := len(data)
	if n > headerCap {
		n = headerCap
	}
	head := data[:n]
	// A rune split by the cap leaves at most UTFMax-1 dangling bytes; any
	// invalid sequence before that is left in place for Parse to reject.
	for i := 0; i < utf8.UTFMax-1 && len(head) > 0 && !utf8.Valid(head); i++ {
		head = head[:len(head)-1]
	}
	return head
}

// Object is a parsed breakpad symbol file: the MODULE record plus a
// reference to the full buffer, from which every other record family is
// decoded lazily on demand.
type Object struct {
	data   []byte
	module ModuleRecord
}

// Parse decodes the MODULE line and wraps data for lazy access to the
// rest of the file's records. Parse does not scan past the MODULE line:
// malformed FUNC/STACK/etc. records only surface as errors when a
// caller actually asks for the iterator that reaches them.
func Parse(data []byte) (*Object, error) {
	if !utf8.Valid(capHeader(data)) {
		return nil, badEncoding(errInvalidHeaderEncoding)
	}

	l := newLines(data)
	line, ok := l.next()
	if !ok {
		return nil, newError(KindInvalidMagic, nil)
	}

	trimmed := strings.TrimSpace(string(line))
	rest, found := strings.CutPrefix(trimmed, "MODULE ")
	if !found {
		return nil, newError(KindInvalidMagic, nil)
	}

	module, err := parseModuleRecord(rest)
	if err != nil {
		return nil, err
	}

	return &Object{data: data, module: module}, nil
}

var errInvalidHeaderEncoding = &utf8Error{}

type utf8Error struct{}

func (*utf8Error) Error() string { return "invalid utf-8 sequence in symbol file header" }

// FileFormat always reports FileFormatBreakpad: this package only ever
// produces Breakpad-format objects.
func (o *Object) FileFormat() common.FileFormat {
	return common.FileFormatBreakpad
}

// Kind always reports ObjectKindDebug: Breakpad symbol files are pure
// debug information, never an executable image.
func (o *Object) Kind() common.ObjectKind {
	return common.ObjectKindDebug
}

// Arch returns the module's target architecture.
func (o *Object) Arch() common.Arch {
	return o.module.Arch
}

// Name returns the module's file name, or "<unknown>" if the MODULE
// line omitted it.
func (o *Object) Name() string {
	return o.module.Name
}

// LoadAddress is always 0: Breakpad symbol files carry addresses
// relative to the module's load bias, not an absolute load address.
func (o *Object) LoadAddress() uint64 {
	return 0
}

// CodeId returns the module's code identifier from its INFO CODE_ID
// record, or an empty CodeId if none is present.
func (o *Object) CodeId() (common.CodeId, error) {
	records := newInfoRecords(o.bodyLines())
	for {
		rec, ok := records.Next()
		if !ok {
			break
		}
		if rec.IsCodeID {
			return common.NewCodeId(rec.CodeID), nil
		}
	}
	if records.Err() != nil {
		return "", records.Err()
	}
	return "", nil
}

// DebugId parses the MODULE record's id field into a structured
// DebugID.
func (o *Object) DebugId() (common.DebugID, error) {
	id, err := common.ParseDebugID(o.module.ID)
	if err != nil {
		return common.DebugID{}, newParseErrorWithCause(KindId, err)
	}
	return id, nil
}

// bodyLines returns a fresh cursor starting just after the MODULE line.
func (o *Object) bodyLines() lines {
	l := newLines(o.data)
	l.next()
	return l
}

// HasSymbols reports whether the file contains any PUBLIC records.
func (o *Object) HasSymbols() bool {
	it := o.Symbols()
	_, ok := it.Next()
	return ok
}

// Symbols returns an iterator over the file's PUBLIC records.
func (o *Object) Symbols() PublicRecords {
	records := newPublicRecords(o.bodyLines())
	return records
}

// SymbolMap collects every PUBLIC record into an address-sorted
// common.SymbolMap. Each symbol's Size is 0, since a PUBLIC record
// carries no code size. A PUBLIC line that fails to parse is not
// skipped: SymbolMap stops there and returns that line's error.
func (o *Object) SymbolMap() (common.SymbolMap, error) {
	it := o.Symbols()
	var symbols []common.Symbol
	for {
		rec, ok := it.Next()
		if !ok {
			break
		}
		symbols = append(symbols, common.Symbol{Name: rec.Name, Address: rec.Address})
	}
	if it.Err() != nil {
		return common.SymbolMap{}, it.Err()
	}
	return common.NewSymbolMap(symbols), nil
}

// HasDebugInfo reports whether the file contains any FUNC records.
func (o *Object) HasDebugInfo() bool {
	it := newFuncRecords(o.bodyLines())
	_, ok := it.Next()
	return ok
}

// HasUnwindInfo reports whether the file contains any STACK records.
func (o *Object) HasUnwindInfo() bool {
	it := newStackRecords(o.bodyLines())
	_, ok := it.Next()
	return ok
}

// HasSources always reports false: a FILE record only maps an id to a
// path string, it never carries the source text itself, so a symbol
// file can never actually supply source.
func (o *Object) HasSources() bool {
	return false
}

// Stacks returns an iterator over the file's top-level STACK records.
func (o *Object) Stacks() StackRecords {
	return newStackRecords(o.bodyLines())
}

// Files returns an iterator over the file's FILE records.
func (o *Object) Files() FileRecords {
	return newFileRecords(o.bodyLines())
}

// FileMap folds every FILE record into an id-to-path lookup table.
func (o *Object) FileMap() (FileMap, error) {
	return newFileMap(o.bodyLines())
}

// Functions returns an iterator over the file's FUNC records.
func (o *Object) Functions() FuncRecords {
	return newFuncRecords(o.bodyLines())
}

// Data returns the raw buffer Object was parsed from.
func (o *Object) Data() []byte {
	return o.data
}

// DebugSession opens a joined, higher-level view over the file's FUNC,
// LINE and FILE records.
func (o *Object) DebugSession() (*DebugSession, error) {
	fileMap, err := o.FileMap()
	if err != nil {
		return nil, err
	}
	return &DebugSession{object: o, files: fileMap}, nil
}

// DebugSession joins FUNC/LINE records with their FILE paths into
// common.Function values.
type DebugSession struct {
	object *Object
	files  FileMap
}

// Functions returns an iterator yielding every function in the symbol
// file, with its line table resolved against the session's file map.
func (s *DebugSession) Functions() *FunctionIterator {
	return &FunctionIterator{records: s.object.Functions(), files: s.files}
}

// Files returns every file the session's FILE records named, in
// ascending id order.
func (s *DebugSession) Files() []common.FileEntry {
	ids := make([]uint64, 0, len(s.files))
	for id := range s.files {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	entries := make([]common.FileEntry, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, common.FileEntry{Info: common.FileInfoFromPath(s.files[id])})
	}
	return entries
}

// SourceByPath always reports that no source text is available: actual
// source retrieval is a sibling capability this module never performs.
func (s *DebugSession) SourceByPath(path string) (string, bool) {
	return "", false
}

// FunctionIterator adapts a FuncRecords iterator into common.Function
// values, eagerly resolving each function's line table.
type FunctionIterator struct {
	records FuncRecords
	files   FileMap
}

// Err returns the first error encountered while decoding FUNC records.
// A malformed LINE record ends that function's line table early and is
// not reported here.
func (it *FunctionIterator) Err() error {
	return it.records.Err()
}

// Next returns the next function, or false at end of input or on
// error.
func (it *FunctionIterator) Next() (common.Function, bool) {
	rec, ok := it.records.Next()
	if !ok {
		return common.Function{}, false
	}

	lineIt := rec.Lines()
	var lines []common.LineInfo
	for {
		line, ok := lineIt.Next()
		if !ok {
			break
		}
		size := line.Size
		lines = append(lines, common.LineInfo{
			Address: line.Address,
			Size:    &size,
			File:    common.FileInfoFromPath(it.files.Get(line.FileID)),
			Line:    line.Line,
		})
	}

	return common.Function{
		Address: rec.Address,
		Size:    rec.Size,
		Name:    common.NewName(rec.Name, common.Unmangled, common.LanguageUnknown),
		Lines:   lines,
	}, true
}
