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

// MemoryRegion is a random-access window into a captured region of target
// memory, addressed by absolute address rather than by offset.
type MemoryRegion struct {
	// BaseAddr is the address of Contents[0].
	BaseAddr uint64
	// Contents holds the captured bytes.
	Contents []byte
}

// Len returns the number of bytes available in the region.
func (m MemoryRegion) Len() int {
	return len(m.Contents)
}

// End returns the address one past the last byte in the region.
func (m MemoryRegion) End() uint64 {
	return m.BaseAddr + uint64(m.Len())
}

// Get reads a T-wide unsigned integer at address using endian, returning
// false if any byte of [address, address+width(T)) falls outside the
// region.
func Get[T Unsigned](m MemoryRegion, address uint64, endian Endianness) (T, bool) {
	width := uint64(Width[T]())
	if address < m.BaseAddr {
		return 0, false
	}
	offset := address - m.BaseAddr
	if offset > uint64(len(m.Contents)) || uint64(len(m.Contents))-offset < width {
		return 0, false
	}
	return DecodeUint[T](m.Contents[offset:offset+width], endian), true
}
