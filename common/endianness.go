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

import "encoding/binary"

// Endianness selects how multi-byte integers are decoded from a
// MemoryRegion.
type Endianness int

const (
	// BigEndian decodes the most significant byte first.
	BigEndian Endianness = iota
	// LittleEndian decodes the least significant byte first.
	LittleEndian
)

// ByteOrder returns the standard library ByteOrder matching e.
func (e Endianness) ByteOrder() binary.ByteOrder {
	if e == LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

func (e Endianness) String() string {
	if e == LittleEndian {
		return "little-endian"
	}
	return "big-endian"
}

// Unsigned is the set of register value types the RPN evaluator and
// MemoryRegion can operate on. Go's unsigned integer arithmetic already
// wraps on overflow, matching the spec's wrapping-arithmetic requirement.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Width returns the size, in bytes, of the Unsigned type T.
func Width[T Unsigned]() int {
	switch any(T(0)).(type) {
	case uint8:
		return 1
	case uint16:
		return 2
	case uint32:
		return 4
	default:
		return 8
	}
}

// DecodeUint decodes a T-wide unsigned integer from the front of b using
// the given endianness. The caller must ensure len(b) >= Width[T]().
func DecodeUint[T Unsigned](b []byte, endian Endianness) T {
	order := endian.ByteOrder()
	switch any(T(0)).(type) {
	case uint8:
		return T(b[0])
	case uint16:
		return T(order.Uint16(b))
	case uint32:
		return T(order.Uint32(b))
	default:
		return T(order.Uint64(b))
	}
}
