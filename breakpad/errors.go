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
	"fmt"

	"github.com/pkg/errors"
)

// ParseErrorKind names the record grammar that failed to parse.
type ParseErrorKind int

const (
	KindArch ParseErrorKind = iota
	KindFileRecord
	KindFuncRecord
	KindId
	KindInfoRecord
	KindLineRecord
	KindModuleRecord
	KindNumDec
	KindNumHex
	KindOs
	KindPublicRecord
	KindStackCfiDeltaRecord
	KindStackCfiInitRecord
	KindStackRecord
	KindStackWinRecord
	KindStackWinRecordType
)

func (k ParseErrorKind) String() string {
	switch k {
	case KindArch:
		return "invalid architecture"
	case KindFileRecord:
		return "invalid file record"
	case KindFuncRecord:
		return "invalid func record"
	case KindId:
		return "invalid id"
	case KindInfoRecord:
		return "invalid info record"
	case KindLineRecord:
		return "invalid line record"
	case KindModuleRecord:
		return "invalid module record"
	case KindNumDec:
		return "expected decimal number"
	case KindNumHex:
		return "expected hex number"
	case KindOs:
		return "invalid os"
	case KindPublicRecord:
		return "invalid public record"
	case KindStackCfiDeltaRecord:
		return "invalid stack cfi delta record"
	case KindStackCfiInitRecord:
		return "invalid stack cfi init record"
	case KindStackRecord:
		return "invalid stack record"
	case KindStackWinRecord:
		return "invalid stack win record"
	case KindStackWinRecordType:
		return "invalid stack win record type"
	default:
		return "unknown parse error"
	}
}

// ErrorKind classifies a BreakpadError at the top level, before drilling
// into a ParseErrorKind for the Parse case.
type ErrorKind int

const (
	// KindInvalidMagic means the buffer did not start with "MODULE ".
	KindInvalidMagic ErrorKind = iota
	// KindBadEncoding means a line was not valid UTF-8.
	KindBadEncoding
	// KindParse means a specific record failed to parse; see Kind().
	KindParse
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidMagic:
		return "missing breakpad symbol header"
	case KindBadEncoding:
		return "bad utf-8 sequence"
	case KindParse:
		return "parse error"
	default:
		return "unknown error"
	}
}

// Error is the error type returned by every parsing operation in this
// package. It always carries an ErrorKind, and for KindParse also a
// ParseErrorKind describing exactly which record grammar failed.
type Error struct {
	kind     ErrorKind
	parse    ParseErrorKind
	hasParse bool
	cause    error
}

func newError(kind ErrorKind, cause error) *Error {
	return &Error{kind: kind, cause: cause}
}

func newParseError(kind ParseErrorKind) *Error {
	return &Error{kind: KindParse, parse: kind, hasParse: true}
}

func newParseErrorWithCause(kind ParseErrorKind, cause error) *Error {
	return &Error{kind: KindParse, parse: kind, hasParse: true, cause: cause}
}

// Kind returns the top-level classification of the error.
func (e *Error) Kind() ErrorKind {
	return e.kind
}

// ParseKind returns the specific record grammar that failed, and whether
// this error is a KindParse error at all.
func (e *Error) ParseKind() (ParseErrorKind, bool) {
	return e.parse, e.hasParse
}

func (e *Error) Error() string {
	if e.hasParse {
		return fmt.Sprintf("parse error: %s", e.parse)
	}
	return e.kind.String()
}

// Unwrap exposes the underlying cause, if any, so callers can use
// errors.Is/errors.As to inspect e.g. a wrapped UTF-8 or strconv error.
func (e *Error) Unwrap() error {
	return e.cause
}

func badEncoding(cause error) *Error {
	return newError(KindBadEncoding, errors.WithStack(cause))
}
