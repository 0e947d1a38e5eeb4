// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spv

import "fmt"

// MagicNumber is the first word of every SPIR-V module.
const MagicNumber = 0x07230203

// HeaderWords is the number of words in the module header
// (magic, version, generator, bound, schema).
const HeaderWords = 5

// GeneratorID is the generator word written by ModuleBuilder
// (unregistered generator).
const GeneratorID = 0x00000000

// Version represents a SPIR-V version.
type Version struct {
	Major uint8
	Minor uint8
}

// Common SPIR-V versions
var (
	Version1_0 = Version{1, 0}
	Version1_3 = Version{1, 3}
	Version1_5 = Version{1, 5}
	Version1_6 = Version{1, 6}
)

// Word returns the version encoded in SPIR-V header form.
func (v Version) Word() uint32 {
	return (uint32(v.Major) << 16) | (uint32(v.Minor) << 8)
}

// ID is a producer-assigned result identifier. IDs are sparse and
// producer-controlled; they are map keys, never dense indices.
type ID uint32

// OpCode represents a SPIR-V opcode.
type OpCode uint16

// Opcodes decoded by Reader. Any opcode outside this set is framed,
// validated, and skipped as Unknown.
const (
	OpName             OpCode = 5
	OpMemberName       OpCode = 6
	OpEntryPoint       OpCode = 15
	OpTypeVoid         OpCode = 19
	OpTypeBool         OpCode = 20
	OpTypeInt          OpCode = 21
	OpTypeFloat        OpCode = 22
	OpTypeVector       OpCode = 23
	OpTypeMatrix       OpCode = 24
	OpTypeImage        OpCode = 25
	OpTypeSampler      OpCode = 26
	OpTypeSampledImage OpCode = 27
	OpTypeArray        OpCode = 28
	OpTypeRuntimeArray OpCode = 29
	OpTypeStruct       OpCode = 30
	OpTypePointer      OpCode = 32
	OpConstant         OpCode = 43
	OpVariable         OpCode = 59
	OpDecorate         OpCode = 71
	OpMemberDecorate   OpCode = 72
)

// Additional opcodes emitted by ModuleBuilder. The reflection decoder
// skips them.
const (
	OpExtension     OpCode = 10
	OpExtInstImport OpCode = 11
	OpMemoryModel   OpCode = 14
	OpExecutionMode OpCode = 16
	OpCapability    OpCode = 17
	OpTypeFunction  OpCode = 33
	OpFunction      OpCode = 54
	OpFunctionEnd   OpCode = 56
	OpLabel         OpCode = 248
	OpReturn        OpCode = 253
)

// Decoration represents a SPIR-V decoration code.
//
// Only the codes below are modeled; Reader normalizes every other
// code to DecorationUnknown so unmodeled decorations degrade softly.
type Decoration uint32

const (
	DecorationRowMajor      Decoration = 4
	DecorationColMajor      Decoration = 5
	DecorationMatrixStride  Decoration = 7
	DecorationLocation      Decoration = 30
	DecorationBinding       Decoration = 33
	DecorationDescriptorSet Decoration = 34
	DecorationOffset        Decoration = 35

	// DecorationUnknown stands in for any unmodeled decoration code.
	DecorationUnknown Decoration = 0xFFFFFFFF
)

// String returns the SPIR-V enumerant name.
func (d Decoration) String() string {
	switch d {
	case DecorationRowMajor:
		return "RowMajor"
	case DecorationColMajor:
		return "ColMajor"
	case DecorationMatrixStride:
		return "MatrixStride"
	case DecorationLocation:
		return "Location"
	case DecorationBinding:
		return "Binding"
	case DecorationDescriptorSet:
		return "DescriptorSet"
	case DecorationOffset:
		return "Offset"
	case DecorationUnknown:
		return "Unknown"
	default:
		return fmt.Sprintf("Decoration(%d)", uint32(d))
	}
}

// Dim represents a SPIR-V image dimensionality code.
type Dim uint32

const (
	Dim1D          Dim = 0
	Dim2D          Dim = 1
	Dim3D          Dim = 2
	DimCube        Dim = 3
	DimRect        Dim = 4
	DimBuffer      Dim = 5
	DimSubpassData Dim = 6

	// DimUnknown stands in for any unmodeled dimensionality code.
	DimUnknown Dim = 0xFFFFFFFF
)

// String returns the SPIR-V enumerant name.
func (d Dim) String() string {
	switch d {
	case Dim1D:
		return "1D"
	case Dim2D:
		return "2D"
	case Dim3D:
		return "3D"
	case DimCube:
		return "Cube"
	case DimRect:
		return "Rect"
	case DimBuffer:
		return "Buffer"
	case DimSubpassData:
		return "SubpassData"
	case DimUnknown:
		return "Unknown"
	default:
		return fmt.Sprintf("Dim(%d)", uint32(d))
	}
}

// StorageClass represents a wire-level SPIR-V storage class code.
type StorageClass uint32

const (
	StorageClassUniformConstant StorageClass = 0
	StorageClassInput           StorageClass = 1
	StorageClassUniform         StorageClass = 2
	StorageClassOutput          StorageClass = 3
	StorageClassPushConstant    StorageClass = 9

	// StorageClassUnknown stands in for any unmodeled storage class code.
	StorageClassUnknown StorageClass = 0xFFFFFFFF
)

// String returns the SPIR-V enumerant name.
func (c StorageClass) String() string {
	switch c {
	case StorageClassUniformConstant:
		return "UniformConstant"
	case StorageClassInput:
		return "Input"
	case StorageClassUniform:
		return "Uniform"
	case StorageClassOutput:
		return "Output"
	case StorageClassPushConstant:
		return "PushConstant"
	case StorageClassUnknown:
		return "Unknown"
	default:
		return fmt.Sprintf("StorageClass(%d)", uint32(c))
	}
}

// ExecutionModel represents a wire-level SPIR-V execution model code.
type ExecutionModel uint32

const (
	ExecutionModelVertex   ExecutionModel = 0
	ExecutionModelFragment ExecutionModel = 4

	// ExecutionModelUnknown stands in for any unmodeled execution model code.
	ExecutionModelUnknown ExecutionModel = 0xFFFFFFFF
)

// String returns the SPIR-V enumerant name.
func (m ExecutionModel) String() string {
	switch m {
	case ExecutionModelVertex:
		return "Vertex"
	case ExecutionModelFragment:
		return "Fragment"
	case ExecutionModelUnknown:
		return "Unknown"
	default:
		return fmt.Sprintf("ExecutionModel(%d)", uint32(m))
	}
}

// Capability represents a SPIR-V capability.
type Capability uint32

// CapabilityShader is the baseline capability for graphics shaders.
const CapabilityShader Capability = 1

// AddressingModel represents a SPIR-V addressing model.
type AddressingModel uint32

// AddressingModelLogical is the addressing model used by Vulkan shaders.
const AddressingModelLogical AddressingModel = 0

// MemoryModel represents a SPIR-V memory model.
type MemoryModel uint32

// MemoryModelGLSL450 is the memory model used by Vulkan shaders.
const MemoryModelGLSL450 MemoryModel = 1

// ExecutionMode represents a SPIR-V execution mode.
type ExecutionMode uint32

// ExecutionModeOriginUpperLeft is required for fragment entry points.
const ExecutionModeOriginUpperLeft ExecutionMode = 7

// FunctionControl represents SPIR-V function control flags.
type FunctionControl uint32

// FunctionControlNone declares no function control flags.
const FunctionControlNone FunctionControl = 0
