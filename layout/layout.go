// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package layout

// Module stores the reflection info of a single SPIR-V module.
//
// It is immutable after construction and may be shared across
// goroutines without synchronization.
type Module struct {
	types       map[uint32]Type
	entryPoints []EntryPoint
}

// GetType returns the type declared under the given id.
func (m *Module) GetType(id uint32) (Type, bool) {
	t, ok := m.types[id]
	return t, ok
}

// GetEntryPoints returns the module's entry points in declaration order.
//
// The returned slice is owned by the module; callers must not modify it.
func (m *Module) GetEntryPoints() []EntryPoint {
	return m.entryPoints
}

// Type represents a type declared in a SPIR-V module.
//
// Types form a DAG over ids: composite types reference their element
// types by id, never by embedding. The variant set is closed; dispatch
// by type switch.
type Type interface {
	isType()
}

// Unknown is a recognized type declaration outside the modeled set
// (unusual bit width, vector arity, image dimension, and so on).
type Unknown struct{}

// Void is the void type.
type Void struct{}

// Bool is the boolean type.
type Bool struct{}

// Int32 is a signed 32-bit integer.
type Int32 struct{}

// UInt32 is an unsigned 32-bit integer.
type UInt32 struct{}

// Float32 is a 32-bit float.
type Float32 struct{}

// Vec2 is a 2-component 32-bit float vector.
type Vec2 struct{}

// Vec3 is a 3-component 32-bit float vector.
type Vec3 struct{}

// Vec4 is a 4-component 32-bit float vector.
type Vec4 struct{}

// Mat3 is a 3x3 32-bit float matrix.
type Mat3 struct{}

// Mat4 is a 4x4 32-bit float matrix.
type Mat4 struct{}

// Image2D is a 2-D float-sampled image.
type Image2D struct {
	// Depth reports whether this is a depth image.
	Depth bool

	// Sampled reports whether the image can be sampled from.
	Sampled bool

	// Format is the raw SPIR-V image format code (0 under Vulkan).
	Format uint32
}

// Sampler is an opaque sampler object.
type Sampler struct{}

// SampledImage is a combined image and sampler
// (a CombinedImageSampler descriptor under Vulkan).
type SampledImage struct {
	// ImageTypeID is the type id of the contained image.
	ImageTypeID uint32
}

// Array is a sized or runtime array.
type Array struct {
	// ElementTypeID is the type id of the contained type.
	ElementTypeID uint32

	// Length is the element count; nil for runtime arrays.
	Length *uint32
}

// Struct is a composite of named, offset members.
type Struct struct {
	// Name is the struct's debug name, or "" if the module carries none.
	Name string

	// Members are in declaration order, which need not match
	// ascending offsets.
	Members []StructMember
}

// Pointer points to another type within a storage class.
type Pointer struct {
	StorageClass StorageClass

	// PointedTypeID is the type id of the pointed-to type.
	PointedTypeID uint32
}

func (Unknown) isType()      {}
func (Void) isType()         {}
func (Bool) isType()         {}
func (Int32) isType()        {}
func (UInt32) isType()       {}
func (Float32) isType()      {}
func (Vec2) isType()         {}
func (Vec3) isType()         {}
func (Vec4) isType()         {}
func (Mat3) isType()         {}
func (Mat4) isType()         {}
func (Image2D) isType()      {}
func (Sampler) isType()      {}
func (SampledImage) isType() {}
func (Array) isType()        {}
func (Struct) isType()       {}
func (Pointer) isType()      {}

// StructMember describes a single member of a Struct type.
type StructMember struct {
	// Name is the member's debug name, or "" if unknown.
	Name string

	// TypeID is the type id of the member's type.
	TypeID uint32

	// Offset is the member's byte offset within the struct, if decorated.
	Offset *uint32

	// RowMajor reports whether a matrix member is stored row-major.
	// Defaults to true when the module carries no layout decoration.
	RowMajor bool

	// Stride is the byte stride between a matrix member's rows or
	// columns. Defaults to 16 when the module carries no decoration.
	Stride uint32
}

// StorageClass describes what kind of storage a pointer points to.
//
// This is the reflection-level classification: the wire-level Uniform
// and UniformConstant classes both map to StorageUniform.
type StorageClass uint8

const (
	// StorageUnknown is any storage class outside the modeled set.
	StorageUnknown StorageClass = iota

	// StorageUniform covers uniform blocks and uniform-constant
	// resources (images, samplers).
	StorageUniform

	// StorageUniformConstant is kept for API completeness; the pointer
	// mapping folds it into StorageUniform.
	StorageUniformConstant

	// StoragePushConstant is the binding-less push constant block.
	StoragePushConstant

	// StorageInput is a stage input.
	StorageInput

	// StorageOutput is a stage output.
	StorageOutput
)

// String returns a human-readable storage class name.
func (c StorageClass) String() string {
	switch c {
	case StorageUniform:
		return "Uniform"
	case StorageUniformConstant:
		return "UniformConstant"
	case StoragePushConstant:
		return "PushConstant"
	case StorageInput:
		return "Input"
	case StorageOutput:
		return "Output"
	default:
		return "Unknown"
	}
}

// ExecutionModel selects which kind of shader an entry point defines.
type ExecutionModel uint8

const (
	// Vertex is a vertex shader entry point.
	Vertex ExecutionModel = iota

	// Fragment is a fragment shader entry point.
	Fragment
)

// String returns a human-readable execution model name.
func (m ExecutionModel) String() string {
	switch m {
	case Vertex:
		return "Vertex"
	case Fragment:
		return "Fragment"
	default:
		return "Unknown"
	}
}

// UniformVariable describes a descriptor-bound uniform resource.
type UniformVariable struct {
	// Set is the descriptor set the variable belongs to.
	Set uint32

	// Binding is the binding index within the set.
	Binding uint32

	// TypeID is the pointed-to type, not the pointer: every uniform is
	// declared through a pointer, so the pointer layer is peeled here.
	TypeID uint32

	// Name is the variable's debug name, or "" if unknown.
	Name string
}

// PushConstantVariable describes a push constant block.
type PushConstantVariable struct {
	// TypeID is the pointed-to type, not the pointer.
	TypeID uint32

	// Name is the variable's debug name, or "" if unknown.
	Name string
}

// LocationVariable describes a stage input or output.
type LocationVariable struct {
	// Location is the variable's location slot
	// (GLSL: layout(location=N)).
	Location uint32

	// TypeID is the pointed-to type, not the pointer.
	TypeID uint32

	// Name is the variable's debug name, or "" if unknown.
	Name string
}

// EntryPoint describes a single entry point in a SPIR-V module.
//
// A module can declare multiple entry points with different names,
// each defining a single shader. Every list is scoped to the
// variables the entry point's interface actually references, in
// interface-list order.
type EntryPoint struct {
	// Name identifies the entry point at pipeline creation.
	Name string

	// ExecutionModel selects the shader stage.
	ExecutionModel ExecutionModel

	// Uniforms are the descriptor-bound resources the shader uses.
	Uniforms []UniformVariable

	// PushConstants are the push constant blocks the shader uses.
	PushConstants []PushConstantVariable

	// Inputs are the shader's stage inputs.
	Inputs []LocationVariable

	// Outputs are the shader's stage outputs.
	Outputs []LocationVariable
}

// Variable is implemented by every reflected variable kind
// (UniformVariable, PushConstantVariable, LocationVariable). The
// interface is sealed; it exists so size queries accept any of them.
type Variable interface {
	variableTypeID() uint32
}

func (v UniformVariable) variableTypeID() uint32      { return v.TypeID }
func (v PushConstantVariable) variableTypeID() uint32 { return v.TypeID }
func (v LocationVariable) variableTypeID() uint32     { return v.TypeID }
