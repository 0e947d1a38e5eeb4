// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spvlayout_test

import (
	"encoding/binary"
	"testing"

	"github.com/gogpu/spvlayout"
	"github.com/gogpu/spvlayout/spv"
)

// FuzzFromBytes feeds arbitrary bytes to the reflection entry point.
// Any input must either reflect cleanly or fail with an error; the
// returned module, when there is one, must be safe to query.
func FuzzFromBytes(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{0x03, 0x02, 0x23, 0x07})
	f.Add(buildFragmentModule().Build())

	// A header followed by a truncated instruction.
	truncated := make([]byte, 0, 24)
	for _, word := range []uint32{spv.MagicNumber, 0x00010300, 0, 10, 0, 5<<16 | uint32(spv.OpName)} {
		truncated = binary.LittleEndian.AppendUint32(truncated, word)
	}
	f.Add(truncated)

	f.Fuzz(func(t *testing.T, data []byte) {
		module, err := spvlayout.FromBytes(data)
		if err != nil {
			if module != nil {
				t.Error("Module returned alongside an error")
			}
			return
		}

		for _, ep := range module.GetEntryPoints() {
			for _, v := range ep.Uniforms {
				module.GetVarSize(v)
				module.GetType(v.TypeID)
			}
			for _, v := range ep.PushConstants {
				module.GetVarSize(v)
			}
			for _, v := range ep.Inputs {
				module.GetVarSize(v)
			}
			for _, v := range ep.Outputs {
				module.GetVarSize(v)
			}
		}
	})
}
