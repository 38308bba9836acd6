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

// breakpaddump is a small inspection tool for breakpad symbol files: it
// prints a file's module/debug-id/architecture header, each function with
// its address range, name and number of line records, and, given -cfi,
// the register values the STACK CFI rules covering that address resolve
// to.
package main

import (
	"flag"
	"os"

	log "github.com/golang/glog"

	"github.com/go-breakpad/symbolic/breakpad"
	"github.com/go-breakpad/symbolic/common"
	"github.com/go-breakpad/symbolic/unwind"
)

var (
	symbolFile = flag.String("sym", "", "path to the breakpad symbol file to dump")
	cfiAddr    = flag.Uint64("cfi", 0, "if set, evaluate the STACK CFI rules covering this address and print the resulting registers")
)

func main() {
	flag.Parse()
	defer log.Flush()

	if *symbolFile == "" {
		log.Exit("-sym is required")
	}

	data, err := os.ReadFile(*symbolFile)
	if err != nil {
		log.Exitf("reading %s: %v", *symbolFile, err)
	}

	obj, err := breakpad.Parse(data)
	if err != nil {
		log.Exitf("parsing %s: %v", *symbolFile, err)
	}

	dumpHeader(obj)
	dumpFunctions(obj)

	if *cfiAddr != 0 {
		dumpCfi(obj, *cfiAddr)
	}
}

func dumpHeader(obj *breakpad.Object) {
	log.Infof("module %s (%s)", obj.Name(), obj.Arch())

	if debugID, err := obj.DebugId(); err != nil {
		log.Warningf("debug id: %v", err)
	} else {
		log.Infof("debug id %s", debugID.String())
	}

	if codeID, err := obj.CodeId(); err != nil {
		log.Warningf("code id: %v", err)
	} else if !codeID.IsEmpty() {
		log.Infof("code id %s", codeID.String())
	}
}

func dumpFunctions(obj *breakpad.Object) {
	session, err := obj.DebugSession()
	if err != nil {
		log.Warningf("opening debug session: %v", err)
		return
	}

	it := session.Functions()
	for {
		fn, ok := it.Next()
		if !ok {
			break
		}
		log.Infof("func %#x+%#x %s (%d lines)", fn.Address, fn.Size, fn.Name.String(), len(fn.Lines))
	}
	if it.Err() != nil {
		log.Warningf("function table truncated: %v", it.Err())
	}
}

func dumpCfi(obj *breakpad.Object, address uint64) {
	stacks := obj.Stacks()
	for {
		rec, ok := stacks.Next()
		if !ok {
			break
		}
		if rec.CfiInit == nil {
			continue
		}
		if address < rec.CfiInit.Address || address >= rec.CfiInit.Address+rec.CfiInit.Size {
			continue
		}

		eval := unwind.NewEvaluator[uint64](common.LittleEndian)
		if err := eval.ProcessRules(rec.CfiInit.Rules); err != nil {
			log.Warningf("processing cfi rules at %#x: %v", rec.CfiInit.Address, err)
			return
		}

		deltas := rec.CfiInit.Deltas()
		for {
			delta, ok := deltas.Next()
			if !ok {
				break
			}
			if delta.Address > address {
				break
			}
			if err := eval.ProcessRules(delta.Rules); err != nil {
				log.Warningf("processing cfi delta at %#x: %v", delta.Address, err)
				return
			}
		}

		registers, err := eval.EvaluateAllRegisters()
		if err != nil {
			log.Warningf("evaluating registers at %#x: %v", address, err)
			return
		}
		for name, value := range registers {
			log.Infof("%s = %#x", name, value)
		}
		return
	}
	if stacks.Err() != nil {
		log.Warningf("stack table truncated: %v", stacks.Err())
	}
}
