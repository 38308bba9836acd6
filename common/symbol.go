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

import (
	"sort"

	"github.com/samber/lo"
)

// Symbol is a single entry of a public symbol table.
type Symbol struct {
	Name    string
	Address uint64
	Size    uint64
}

// SymbolMap is an address-ordered collection of Symbols.
type SymbolMap struct {
	entries []Symbol
}

// NewSymbolMap folds a slice of Symbols into a SymbolMap, sorted by
// ascending address as required by the spec's ordering guarantee.
func NewSymbolMap(symbols []Symbol) SymbolMap {
	entries := lo.Map(symbols, func(s Symbol, _ int) Symbol { return s })
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Address < entries[j].Address
	})
	return SymbolMap{entries: entries}
}

// Len returns the number of symbols in the map.
func (m SymbolMap) Len() int {
	return len(m.entries)
}

// All returns the symbols in ascending-address order.
func (m SymbolMap) All() []Symbol {
	return m.entries
}

// Lookup returns the symbol whose range contains address, i.e. the last
// symbol at or before address, or false if the map is empty or address
// precedes the first symbol.
func (m SymbolMap) Lookup(address uint64) (Symbol, bool) {
	i := sort.Search(len(m.entries), func(i int) bool {
		return m.entries[i].Address > address
	})
	if i == 0 {
		return Symbol{}, false
	}
	return m.entries[i-1], true
}
