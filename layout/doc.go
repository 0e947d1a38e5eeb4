// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package layout reflects the resource interface of compiled SPIR-V
// shader modules.
//
// A Module describes the types, uniform buffers, push constants, and
// stage inputs/outputs a shader declares, so pipeline builders can
// derive descriptor set layouts and vertex layouts without
// hand-written metadata:
//
//	module, err := layout.FromWords(words)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, ep := range module.GetEntryPoints() {
//		for _, u := range ep.Uniforms {
//			size, _ := module.GetVarSize(u)
//			// set up a descriptor for (u.Set, u.Binding) of that size
//		}
//	}
//
// Construction is fail-fast: malformed input yields an error and no
// module. Recognized-but-unmodeled shader features (unusual bit
// widths, image dimensions, decorations) are not errors; they degrade
// to the Unknown type or are ignored, so unaffected entry points stay
// fully queryable.
//
// A Module is immutable once built and safe for concurrent readers.
package layout
