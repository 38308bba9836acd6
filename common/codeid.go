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

// CodeId identifies the original code file (executable or shared library)
// that a debug file was produced from. Its exact shape is platform
// dependent (a GUID+age on Windows, a build id on ELF, a UUID on Mach-O);
// Breakpad's INFO CODE_ID record already hands us the hex string, so this
// type is a thin, comparable wrapper rather than a parsed structure.
type CodeId string

// NewCodeId wraps a hex string as a CodeId.
func NewCodeId(s string) CodeId {
	return CodeId(s)
}

// String returns the code id's hex representation.
func (c CodeId) String() string {
	return string(c)
}

// IsEmpty reports whether no code id is known.
func (c CodeId) IsEmpty() bool {
	return c == ""
}
