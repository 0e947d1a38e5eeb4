// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spv

import "encoding/binary"

// EncodedInstruction is a single SPIR-V instruction awaiting emission.
type EncodedInstruction struct {
	Opcode OpCode
	Words  []uint32 // result type id, result id, operands
}

// Encode returns the instruction in wire form, including the packed
// word-count/opcode word.
func (i EncodedInstruction) Encode() []uint32 {
	wordCount := uint32(len(i.Words) + 1)
	result := make([]uint32, 0, wordCount)
	result = append(result, (wordCount<<16)|uint32(i.Opcode))
	result = append(result, i.Words...)
	return result
}

// InstructionBuilder builds SPIR-V instructions.
type InstructionBuilder struct {
	words []uint32
}

// NewInstructionBuilder creates a new instruction builder.
func NewInstructionBuilder() *InstructionBuilder {
	return &InstructionBuilder{
		words: make([]uint32, 0, 8),
	}
}

// AddWord adds a word to the instruction.
func (b *InstructionBuilder) AddWord(word uint32) {
	b.words = append(b.words, word)
}

// AddID adds an id operand to the instruction.
func (b *InstructionBuilder) AddID(id ID) {
	b.words = append(b.words, uint32(id))
}

// AddString adds a zero-terminated UTF-8 string, padded to a word boundary.
func (b *InstructionBuilder) AddString(s string) {
	bytes := []byte(s)
	bytes = append(bytes, 0)

	for len(bytes)%4 != 0 {
		bytes = append(bytes, 0)
	}

	for i := 0; i < len(bytes); i += 4 {
		word := uint32(bytes[i]) |
			uint32(bytes[i+1])<<8 |
			uint32(bytes[i+2])<<16 |
			uint32(bytes[i+3])<<24
		b.words = append(b.words, word)
	}
}

// Build builds the instruction with the given opcode.
func (b *InstructionBuilder) Build(opcode OpCode) EncodedInstruction {
	return EncodedInstruction{
		Opcode: opcode,
		Words:  b.words,
	}
}

// ModuleBuilder builds complete SPIR-V modules.
//
// Sections are kept in the order the SPIR-V specification requires, so
// callers may interleave type, decoration, and debug-name calls freely.
type ModuleBuilder struct {
	// Header
	version   Version
	generator uint32
	bound     uint32 // max id + 1
	schema    uint32

	// Sections (ordered per SPIR-V spec)
	capabilities   []EncodedInstruction
	extensions     []EncodedInstruction
	extInstImports []EncodedInstruction
	memoryModel    *EncodedInstruction
	entryPoints    []EncodedInstruction
	executionModes []EncodedInstruction
	debugNames     []EncodedInstruction // OpName, OpMemberName
	annotations    []EncodedInstruction // OpDecorate, OpMemberDecorate
	types          []EncodedInstruction // OpType*, OpConstant*
	globalVars     []EncodedInstruction // OpVariable (module scope)
	functions      []EncodedInstruction // OpFunction...OpFunctionEnd

	// ID allocation
	nextID uint32
}

// NewModuleBuilder creates a new SPIR-V module builder.
func NewModuleBuilder(version Version) *ModuleBuilder {
	return &ModuleBuilder{
		version:   version,
		generator: GeneratorID,
		schema:    0,
		nextID:    1,
	}
}

// AllocID allocates a new SPIR-V id.
func (b *ModuleBuilder) AllocID() ID {
	id := ID(b.nextID)
	b.nextID++
	return id
}

// AddCapability adds a capability.
func (b *ModuleBuilder) AddCapability(capability Capability) {
	builder := NewInstructionBuilder()
	builder.AddWord(uint32(capability))
	b.capabilities = append(b.capabilities, builder.Build(OpCapability))
}

// AddExtension adds an extension.
func (b *ModuleBuilder) AddExtension(name string) {
	builder := NewInstructionBuilder()
	builder.AddString(name)
	b.extensions = append(b.extensions, builder.Build(OpExtension))
}

// AddExtInstImport imports an extended instruction set.
func (b *ModuleBuilder) AddExtInstImport(name string) ID {
	id := b.AllocID()
	builder := NewInstructionBuilder()
	builder.AddID(id)
	builder.AddString(name)
	b.extInstImports = append(b.extInstImports, builder.Build(OpExtInstImport))
	return id
}

// SetMemoryModel sets the memory model.
func (b *ModuleBuilder) SetMemoryModel(addressing AddressingModel, memory MemoryModel) {
	builder := NewInstructionBuilder()
	builder.AddWord(uint32(addressing))
	builder.AddWord(uint32(memory))
	inst := builder.Build(OpMemoryModel)
	b.memoryModel = &inst
}

// AddEntryPoint adds an entry point with its interface variable list.
func (b *ModuleBuilder) AddEntryPoint(model ExecutionModel, fn ID, name string, interfaces ...ID) {
	builder := NewInstructionBuilder()
	builder.AddWord(uint32(model))
	builder.AddID(fn)
	builder.AddString(name)
	for _, iface := range interfaces {
		builder.AddID(iface)
	}
	b.entryPoints = append(b.entryPoints, builder.Build(OpEntryPoint))
}

// AddExecutionMode adds an execution mode.
func (b *ModuleBuilder) AddExecutionMode(entryPoint ID, mode ExecutionMode, params ...uint32) {
	builder := NewInstructionBuilder()
	builder.AddID(entryPoint)
	builder.AddWord(uint32(mode))
	for _, param := range params {
		builder.AddWord(param)
	}
	b.executionModes = append(b.executionModes, builder.Build(OpExecutionMode))
}

// AddName adds a debug name.
func (b *ModuleBuilder) AddName(id ID, name string) {
	builder := NewInstructionBuilder()
	builder.AddID(id)
	builder.AddString(name)
	b.debugNames = append(b.debugNames, builder.Build(OpName))
}

// AddMemberName adds a debug name for a struct member.
func (b *ModuleBuilder) AddMemberName(structID ID, member uint32, name string) {
	builder := NewInstructionBuilder()
	builder.AddID(structID)
	builder.AddWord(member)
	builder.AddString(name)
	b.debugNames = append(b.debugNames, builder.Build(OpMemberName))
}

// AddDecorate adds a decoration.
func (b *ModuleBuilder) AddDecorate(id ID, decoration Decoration, params ...uint32) {
	builder := NewInstructionBuilder()
	builder.AddID(id)
	builder.AddWord(uint32(decoration))
	for _, param := range params {
		builder.AddWord(param)
	}
	b.annotations = append(b.annotations, builder.Build(OpDecorate))
}

// AddMemberDecorate adds a member decoration.
func (b *ModuleBuilder) AddMemberDecorate(structID ID, member uint32, decoration Decoration, params ...uint32) {
	builder := NewInstructionBuilder()
	builder.AddID(structID)
	builder.AddWord(member)
	builder.AddWord(uint32(decoration))
	for _, param := range params {
		builder.AddWord(param)
	}
	b.annotations = append(b.annotations, builder.Build(OpMemberDecorate))
}

// AddTypeVoid adds OpTypeVoid.
func (b *ModuleBuilder) AddTypeVoid() ID {
	id := b.AllocID()
	builder := NewInstructionBuilder()
	builder.AddID(id)
	b.types = append(b.types, builder.Build(OpTypeVoid))
	return id
}

// AddTypeBool adds OpTypeBool.
func (b *ModuleBuilder) AddTypeBool() ID {
	id := b.AllocID()
	builder := NewInstructionBuilder()
	builder.AddID(id)
	b.types = append(b.types, builder.Build(OpTypeBool))
	return id
}

// AddTypeInt adds OpTypeInt.
func (b *ModuleBuilder) AddTypeInt(width uint32, signed bool) ID {
	id := b.AllocID()
	builder := NewInstructionBuilder()
	builder.AddID(id)
	builder.AddWord(width)
	if signed {
		builder.AddWord(1)
	} else {
		builder.AddWord(0)
	}
	b.types = append(b.types, builder.Build(OpTypeInt))
	return id
}

// AddTypeFloat adds OpTypeFloat.
func (b *ModuleBuilder) AddTypeFloat(width uint32) ID {
	id := b.AllocID()
	builder := NewInstructionBuilder()
	builder.AddID(id)
	builder.AddWord(width)
	b.types = append(b.types, builder.Build(OpTypeFloat))
	return id
}

// AddTypeVector adds OpTypeVector.
func (b *ModuleBuilder) AddTypeVector(component ID, count uint32) ID {
	id := b.AllocID()
	builder := NewInstructionBuilder()
	builder.AddID(id)
	builder.AddID(component)
	builder.AddWord(count)
	b.types = append(b.types, builder.Build(OpTypeVector))
	return id
}

// AddTypeMatrix adds OpTypeMatrix.
func (b *ModuleBuilder) AddTypeMatrix(column ID, count uint32) ID {
	id := b.AllocID()
	builder := NewInstructionBuilder()
	builder.AddID(id)
	builder.AddID(column)
	builder.AddWord(count)
	b.types = append(b.types, builder.Build(OpTypeMatrix))
	return id
}

// AddTypeImage adds OpTypeImage. The access qualifier is a trailing
// optional operand; pass at most one value.
func (b *ModuleBuilder) AddTypeImage(sampledType ID, dim Dim, depth, arrayed, ms, sampled, format uint32, access ...uint32) ID {
	id := b.AllocID()
	builder := NewInstructionBuilder()
	builder.AddID(id)
	builder.AddID(sampledType)
	builder.AddWord(uint32(dim))
	builder.AddWord(depth)
	builder.AddWord(arrayed)
	builder.AddWord(ms)
	builder.AddWord(sampled)
	builder.AddWord(format)
	for _, a := range access {
		builder.AddWord(a)
	}
	b.types = append(b.types, builder.Build(OpTypeImage))
	return id
}

// AddTypeSampler adds OpTypeSampler.
func (b *ModuleBuilder) AddTypeSampler() ID {
	id := b.AllocID()
	builder := NewInstructionBuilder()
	builder.AddID(id)
	b.types = append(b.types, builder.Build(OpTypeSampler))
	return id
}

// AddTypeSampledImage adds OpTypeSampledImage.
func (b *ModuleBuilder) AddTypeSampledImage(image ID) ID {
	id := b.AllocID()
	builder := NewInstructionBuilder()
	builder.AddID(id)
	builder.AddID(image)
	b.types = append(b.types, builder.Build(OpTypeSampledImage))
	return id
}

// AddTypeArray adds OpTypeArray. The length operand references a
// constant id.
func (b *ModuleBuilder) AddTypeArray(element ID, length ID) ID {
	id := b.AllocID()
	builder := NewInstructionBuilder()
	builder.AddID(id)
	builder.AddID(element)
	builder.AddID(length)
	b.types = append(b.types, builder.Build(OpTypeArray))
	return id
}

// AddTypeRuntimeArray adds OpTypeRuntimeArray.
func (b *ModuleBuilder) AddTypeRuntimeArray(element ID) ID {
	id := b.AllocID()
	builder := NewInstructionBuilder()
	builder.AddID(id)
	builder.AddID(element)
	b.types = append(b.types, builder.Build(OpTypeRuntimeArray))
	return id
}

// AddTypeStruct adds OpTypeStruct.
func (b *ModuleBuilder) AddTypeStruct(members ...ID) ID {
	id := b.AllocID()
	builder := NewInstructionBuilder()
	builder.AddID(id)
	for _, member := range members {
		builder.AddID(member)
	}
	b.types = append(b.types, builder.Build(OpTypeStruct))
	return id
}

// AddTypePointer adds OpTypePointer.
func (b *ModuleBuilder) AddTypePointer(class StorageClass, pointed ID) ID {
	id := b.AllocID()
	builder := NewInstructionBuilder()
	builder.AddID(id)
	builder.AddWord(uint32(class))
	builder.AddID(pointed)
	b.types = append(b.types, builder.Build(OpTypePointer))
	return id
}

// AddTypeFunction adds OpTypeFunction.
func (b *ModuleBuilder) AddTypeFunction(returnType ID, paramTypes ...ID) ID {
	id := b.AllocID()
	builder := NewInstructionBuilder()
	builder.AddID(id)
	builder.AddID(returnType)
	for _, paramType := range paramTypes {
		builder.AddID(paramType)
	}
	b.types = append(b.types, builder.Build(OpTypeFunction))
	return id
}

// AddConstant adds OpConstant.
func (b *ModuleBuilder) AddConstant(typeID ID, values ...uint32) ID {
	id := b.AllocID()
	builder := NewInstructionBuilder()
	builder.AddID(typeID)
	builder.AddID(id)
	for _, value := range values {
		builder.AddWord(value)
	}
	b.types = append(b.types, builder.Build(OpConstant))
	return id
}

// AddVariable adds a module-scope OpVariable.
func (b *ModuleBuilder) AddVariable(pointerType ID, class StorageClass) ID {
	id := b.AllocID()
	builder := NewInstructionBuilder()
	builder.AddID(pointerType)
	builder.AddID(id)
	builder.AddWord(uint32(class))
	b.globalVars = append(b.globalVars, builder.Build(OpVariable))
	return id
}

// AddVariableWithInit adds a module-scope OpVariable with an initializer.
func (b *ModuleBuilder) AddVariableWithInit(pointerType ID, class StorageClass, init ID) ID {
	id := b.AllocID()
	builder := NewInstructionBuilder()
	builder.AddID(pointerType)
	builder.AddID(id)
	builder.AddWord(uint32(class))
	builder.AddID(init)
	b.globalVars = append(b.globalVars, builder.Build(OpVariable))
	return id
}

// AddFunction adds a function definition.
func (b *ModuleBuilder) AddFunction(funcType ID, returnType ID, control FunctionControl) ID {
	id := b.AllocID()
	builder := NewInstructionBuilder()
	builder.AddID(returnType)
	builder.AddID(id)
	builder.AddWord(uint32(control))
	builder.AddID(funcType)
	b.functions = append(b.functions, builder.Build(OpFunction))
	return id
}

// AddLabel adds a label.
func (b *ModuleBuilder) AddLabel() ID {
	id := b.AllocID()
	builder := NewInstructionBuilder()
	builder.AddID(id)
	b.functions = append(b.functions, builder.Build(OpLabel))
	return id
}

// AddReturn adds OpReturn.
func (b *ModuleBuilder) AddReturn() {
	builder := NewInstructionBuilder()
	b.functions = append(b.functions, builder.Build(OpReturn))
}

// AddFunctionEnd adds OpFunctionEnd.
func (b *ModuleBuilder) AddFunctionEnd() {
	builder := NewInstructionBuilder()
	b.functions = append(b.functions, builder.Build(OpFunctionEnd))
}

// Words generates the final SPIR-V module as a word stream,
// header included.
func (b *ModuleBuilder) Words() []uint32 {
	b.bound = b.nextID

	words := make([]uint32, 0, HeaderWords+16)
	words = append(words, MagicNumber, b.version.Word(), b.generator, b.bound, b.schema)

	words = appendInstructions(words, b.capabilities)
	words = appendInstructions(words, b.extensions)
	words = appendInstructions(words, b.extInstImports)
	if b.memoryModel != nil {
		words = append(words, b.memoryModel.Encode()...)
	}
	words = appendInstructions(words, b.entryPoints)
	words = appendInstructions(words, b.executionModes)
	words = appendInstructions(words, b.debugNames)
	words = appendInstructions(words, b.annotations)
	words = appendInstructions(words, b.types)
	words = appendInstructions(words, b.globalVars)
	words = appendInstructions(words, b.functions)

	return words
}

// Build generates the final SPIR-V module as little-endian bytes.
func (b *ModuleBuilder) Build() []byte {
	words := b.Words()
	buffer := make([]byte, len(words)*4)
	for i, word := range words {
		binary.LittleEndian.PutUint32(buffer[i*4:], word)
	}
	return buffer
}

func appendInstructions(words []uint32, instructions []EncodedInstruction) []uint32 {
	for _, inst := range instructions {
		words = append(words, inst.Encode()...)
	}
	return words
}
