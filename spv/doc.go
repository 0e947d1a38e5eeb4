// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package spv provides word-level access to SPIR-V module binaries.
//
// SPIR-V is the standard intermediate language for GPU shaders,
// used by Vulkan, OpenCL, and other APIs. A module is a flat stream
// of 32-bit words: a five-word header followed by length-framed
// instructions.
//
// # Instruction Reader
//
// Reader decodes one instruction at a time from a word stream.
// Instructions relevant to resource reflection (type declarations,
// variables, entry points, names, decorations) decode to concrete
// structs; everything else decodes to Unknown with its framing
// validated, so a stream can always be walked to the end:
//
//	r := spv.NewReader(words)
//	for !r.Empty() {
//		inst, err := r.Decode()
//		if err != nil {
//			log.Fatal(err)
//		}
//		switch inst := inst.(type) {
//		case spv.TypeStruct:
//			// ...
//		}
//	}
//
// # Module Builder
//
// ModuleBuilder constructs SPIR-V modules programmatically, keeping
// the section order the SPIR-V specification requires (debug names
// and annotations before types, types before variables, variables
// before functions). It is used to author test binaries without an
// external shader compiler:
//
//	b := spv.NewModuleBuilder(spv.Version1_3)
//	f32 := b.AddTypeFloat(32)
//	vec4 := b.AddTypeVector(f32, 4)
//	words := b.Words()
package spv
