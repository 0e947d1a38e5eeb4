// Package spvlayout reflects the resource interface of compiled
// SPIR-V shader binaries.
//
// spvlayout turns a shader binary into a structured description of
// its declared types, uniform buffers, push constants, and stage
// inputs/outputs, per entry point, so pipeline builders can generate
// descriptor set and vertex layouts without hand-written metadata.
//
// Example usage:
//
//	data, _ := os.ReadFile("shader.frag.spv")
//	module, err := spvlayout.FromBytes(data)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, ep := range module.GetEntryPoints() {
//		fmt.Println(ep.Name, ep.ExecutionModel)
//	}
//
// The layout package holds the reflection data model and queries; the
// spv package provides word-level instruction decoding and a module
// builder for constructing SPIR-V binaries programmatically.
package spvlayout

import (
	"encoding/binary"

	"github.com/gogpu/spvlayout/layout"
)

// FromWords generates reflection info from a SPIR-V word stream.
//
// The stream starts at the module header; endianness and alignment
// are the caller's concern. Construction is fail-fast: the result is
// either a complete, immutable module or an error of one of the spv
// error kinds.
func FromWords(words []uint32) (*layout.Module, error) {
	return layout.FromWords(words)
}

// FromBytes generates reflection info from SPIR-V binary data as read
// from a .spv file, decoding words little-endian. Trailing bytes
// beyond the last whole word are ignored.
func FromBytes(data []byte) (*layout.Module, error) {
	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	return layout.FromWords(words)
}
