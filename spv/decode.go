// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spv

import "unicode/utf8"

// Instruction is a decoded SPIR-V instruction.
//
// The set of concrete instruction types is closed: one struct per
// opcode the reflection engine consumes, plus Unknown for everything
// else. Dispatch by type switch.
type Instruction interface {
	instruction()
}

// Unknown is any instruction outside the recognized opcode set.
// Its framing was validated; its operands were skipped.
type Unknown struct {
	Opcode OpCode
}

// Name names a result id (OpName).
type Name struct {
	Target ID
	Name   string
}

// MemberName names a struct member by index (OpMemberName).
type MemberName struct {
	Target ID
	Member uint32
	Name   string
}

// EntryPoint declares a shader entry point (OpEntryPoint).
type EntryPoint struct {
	Model ExecutionModel
	Func  ID
	Name  string

	// Interface lists the variable ids the entry point uses,
	// in declaration order.
	Interface []ID
}

// Decorate attaches a decoration to a result id (OpDecorate).
// Operand carries the decoration's literal, if its kind has one.
type Decorate struct {
	Target     ID
	Decoration Decoration
	Operand    uint32
}

// MemberDecorate attaches a decoration to a struct member (OpMemberDecorate).
type MemberDecorate struct {
	Target     ID
	Member     uint32
	Decoration Decoration
	Operand    uint32
}

// TypeVoid declares the void type (OpTypeVoid).
type TypeVoid struct {
	Result ID
}

// TypeBool declares the boolean type (OpTypeBool).
type TypeBool struct {
	Result ID
}

// TypeInt declares an integer type (OpTypeInt).
type TypeInt struct {
	Result     ID
	Width      uint32
	Signedness uint32
}

// TypeFloat declares a floating-point type (OpTypeFloat).
type TypeFloat struct {
	Result ID
	Width  uint32
}

// TypeVector declares a vector type (OpTypeVector).
type TypeVector struct {
	Result    ID
	Component ID
	Count     uint32
}

// TypeMatrix declares a matrix type (OpTypeMatrix).
type TypeMatrix struct {
	Result ID
	Column ID
	Count  uint32
}

// TypeImage declares an image type (OpTypeImage).
type TypeImage struct {
	Result      ID
	SampledType ID
	Dim         Dim
	Depth       uint32
	Arrayed     uint32
	MS          uint32
	Sampled     uint32
	Format      uint32

	// Access is the trailing optional access qualifier.
	Access *uint32
}

// TypeSampler declares the opaque sampler type (OpTypeSampler).
type TypeSampler struct {
	Result ID
}

// TypeSampledImage declares a combined image-sampler type (OpTypeSampledImage).
type TypeSampledImage struct {
	Result ID
	Image  ID
}

// TypeArray declares a sized array type (OpTypeArray).
// Length references a constant id, not a literal.
type TypeArray struct {
	Result  ID
	Element ID
	Length  ID
}

// TypeRuntimeArray declares an array type without a compile-time
// length (OpTypeRuntimeArray).
type TypeRuntimeArray struct {
	Result  ID
	Element ID
}

// TypeStruct declares a struct type (OpTypeStruct). Elements lists
// member type ids in declaration order.
type TypeStruct struct {
	Result   ID
	Elements []ID
}

// TypePointer declares a pointer type (OpTypePointer).
type TypePointer struct {
	Result       ID
	StorageClass StorageClass
	Pointed      ID
}

// Constant declares a scalar constant (OpConstant). Value holds the
// literal words; wider-than-word types use more than one.
type Constant struct {
	ResultType ID
	Result     ID
	Value      []uint32
}

// Variable declares a variable (OpVariable).
type Variable struct {
	ResultType   ID
	Result       ID
	StorageClass StorageClass

	// Initializer is the trailing optional initializer id.
	Initializer *ID
}

func (Unknown) instruction()          {}
func (Name) instruction()             {}
func (MemberName) instruction()       {}
func (EntryPoint) instruction()       {}
func (Decorate) instruction()         {}
func (MemberDecorate) instruction()   {}
func (TypeVoid) instruction()         {}
func (TypeBool) instruction()         {}
func (TypeInt) instruction()          {}
func (TypeFloat) instruction()        {}
func (TypeVector) instruction()       {}
func (TypeMatrix) instruction()       {}
func (TypeImage) instruction()        {}
func (TypeSampler) instruction()      {}
func (TypeSampledImage) instruction() {}
func (TypeArray) instruction()        {}
func (TypeRuntimeArray) instruction() {}
func (TypeStruct) instruction()       {}
func (TypePointer) instruction()      {}
func (Constant) instruction()         {}
func (Variable) instruction()         {}

// Reader decodes SPIR-V instructions from a word stream.
//
// The stream must not include the five-word module header.
type Reader struct {
	words []uint32
}

// NewReader creates a reader over the given word stream.
func NewReader(words []uint32) *Reader {
	return &Reader{words: words}
}

// Empty reports whether the stream is exhausted.
func (r *Reader) Empty() bool {
	return len(r.words) == 0
}

// Decode reads the next instruction and advances the reader.
//
// The first word of an instruction packs the opcode in its low 16 bits
// and the total word count in its high 16 bits. A word count of zero
// or one that overruns the remaining stream is ErrInvalidOp. Operand
// words left over after an instruction's declared arguments are
// ignored.
func (r *Reader) Decode() (Instruction, error) {
	if len(r.words) == 0 {
		return nil, NewError(ErrOther, "unexpected end of stream")
	}

	first := r.words[0]
	opcode := OpCode(first & 0xFFFF)
	count := int(first >> 16)

	if count == 0 || count > len(r.words) {
		return nil, NewErrorf(ErrInvalidOp, "word count %d exceeds remaining stream (%d words)", count, len(r.words))
	}

	ops := operands{words: r.words[1:count]}
	inst, err := decodeInstruction(opcode, &ops)
	if err != nil {
		return nil, err
	}

	r.words = r.words[count:]
	return inst, nil
}

//nolint:gocyclo,cyclop,funlen // one case per recognized opcode
func decodeInstruction(opcode OpCode, ops *operands) (Instruction, error) {
	switch opcode {
	case OpName:
		target, err := ops.id()
		if err != nil {
			return nil, err
		}
		name, err := ops.str()
		if err != nil {
			return nil, err
		}
		return Name{Target: target, Name: name}, nil

	case OpMemberName:
		target, err := ops.id()
		if err != nil {
			return nil, err
		}
		member, err := ops.word()
		if err != nil {
			return nil, err
		}
		name, err := ops.str()
		if err != nil {
			return nil, err
		}
		return MemberName{Target: target, Member: member, Name: name}, nil

	case OpEntryPoint:
		model, err := ops.executionModel()
		if err != nil {
			return nil, err
		}
		fn, err := ops.id()
		if err != nil {
			return nil, err
		}
		name, err := ops.str()
		if err != nil {
			return nil, err
		}
		return EntryPoint{Model: model, Func: fn, Name: name, Interface: ops.idList()}, nil

	case OpDecorate:
		target, err := ops.id()
		if err != nil {
			return nil, err
		}
		dec, operand, err := ops.decoration()
		if err != nil {
			return nil, err
		}
		return Decorate{Target: target, Decoration: dec, Operand: operand}, nil

	case OpMemberDecorate:
		target, err := ops.id()
		if err != nil {
			return nil, err
		}
		member, err := ops.word()
		if err != nil {
			return nil, err
		}
		dec, operand, err := ops.decoration()
		if err != nil {
			return nil, err
		}
		return MemberDecorate{Target: target, Member: member, Decoration: dec, Operand: operand}, nil

	case OpTypeVoid:
		result, err := ops.id()
		if err != nil {
			return nil, err
		}
		return TypeVoid{Result: result}, nil

	case OpTypeBool:
		result, err := ops.id()
		if err != nil {
			return nil, err
		}
		return TypeBool{Result: result}, nil

	case OpTypeInt:
		result, err := ops.id()
		if err != nil {
			return nil, err
		}
		width, err := ops.word()
		if err != nil {
			return nil, err
		}
		signedness, err := ops.word()
		if err != nil {
			return nil, err
		}
		return TypeInt{Result: result, Width: width, Signedness: signedness}, nil

	case OpTypeFloat:
		result, err := ops.id()
		if err != nil {
			return nil, err
		}
		width, err := ops.word()
		if err != nil {
			return nil, err
		}
		return TypeFloat{Result: result, Width: width}, nil

	case OpTypeVector:
		result, err := ops.id()
		if err != nil {
			return nil, err
		}
		component, err := ops.id()
		if err != nil {
			return nil, err
		}
		count, err := ops.word()
		if err != nil {
			return nil, err
		}
		return TypeVector{Result: result, Component: component, Count: count}, nil

	case OpTypeMatrix:
		result, err := ops.id()
		if err != nil {
			return nil, err
		}
		column, err := ops.id()
		if err != nil {
			return nil, err
		}
		count, err := ops.word()
		if err != nil {
			return nil, err
		}
		return TypeMatrix{Result: result, Column: column, Count: count}, nil

	case OpTypeImage:
		return decodeTypeImage(ops)

	case OpTypeSampler:
		result, err := ops.id()
		if err != nil {
			return nil, err
		}
		return TypeSampler{Result: result}, nil

	case OpTypeSampledImage:
		result, err := ops.id()
		if err != nil {
			return nil, err
		}
		image, err := ops.id()
		if err != nil {
			return nil, err
		}
		return TypeSampledImage{Result: result, Image: image}, nil

	case OpTypeArray:
		result, err := ops.id()
		if err != nil {
			return nil, err
		}
		element, err := ops.id()
		if err != nil {
			return nil, err
		}
		length, err := ops.id()
		if err != nil {
			return nil, err
		}
		return TypeArray{Result: result, Element: element, Length: length}, nil

	case OpTypeRuntimeArray:
		result, err := ops.id()
		if err != nil {
			return nil, err
		}
		element, err := ops.id()
		if err != nil {
			return nil, err
		}
		return TypeRuntimeArray{Result: result, Element: element}, nil

	case OpTypeStruct:
		result, err := ops.id()
		if err != nil {
			return nil, err
		}
		return TypeStruct{Result: result, Elements: ops.idList()}, nil

	case OpTypePointer:
		result, err := ops.id()
		if err != nil {
			return nil, err
		}
		class, err := ops.storageClass()
		if err != nil {
			return nil, err
		}
		pointed, err := ops.id()
		if err != nil {
			return nil, err
		}
		return TypePointer{Result: result, StorageClass: class, Pointed: pointed}, nil

	case OpConstant:
		resultType, err := ops.id()
		if err != nil {
			return nil, err
		}
		result, err := ops.id()
		if err != nil {
			return nil, err
		}
		return Constant{ResultType: resultType, Result: result, Value: ops.wordList()}, nil

	case OpVariable:
		resultType, err := ops.id()
		if err != nil {
			return nil, err
		}
		result, err := ops.id()
		if err != nil {
			return nil, err
		}
		class, err := ops.storageClass()
		if err != nil {
			return nil, err
		}
		init, err := ops.optionalID()
		if err != nil {
			return nil, err
		}
		return Variable{ResultType: resultType, Result: result, StorageClass: class, Initializer: init}, nil

	default:
		return Unknown{Opcode: opcode}, nil
	}
}

func decodeTypeImage(ops *operands) (Instruction, error) {
	result, err := ops.id()
	if err != nil {
		return nil, err
	}
	sampledType, err := ops.id()
	if err != nil {
		return nil, err
	}
	dim, err := ops.dim()
	if err != nil {
		return nil, err
	}

	var rest [5]uint32 // depth, arrayed, ms, sampled, format
	for i := range rest {
		rest[i], err = ops.word()
		if err != nil {
			return nil, err
		}
	}

	access, err := ops.optionalWord()
	if err != nil {
		return nil, err
	}

	return TypeImage{
		Result:      result,
		SampledType: sampledType,
		Dim:         dim,
		Depth:       rest[0],
		Arrayed:     rest[1],
		MS:          rest[2],
		Sampled:     rest[3],
		Format:      rest[4],
		Access:      access,
	}, nil
}

// operands is a cursor over one instruction's operand words.
type operands struct {
	words []uint32
}

func (o *operands) empty() bool {
	return len(o.words) == 0
}

// word consumes exactly one operand word.
func (o *operands) word() (uint32, error) {
	if len(o.words) == 0 {
		return 0, NewError(ErrInvalidOp, "missing operand")
	}
	w := o.words[0]
	o.words = o.words[1:]
	return w, nil
}

func (o *operands) id() (ID, error) {
	w, err := o.word()
	return ID(w), err
}

// str consumes a zero-terminated UTF-8 string. The terminator's whole
// word is consumed; padding bytes after the terminator are ignored.
func (o *operands) str() (string, error) {
	var buf []byte
	for i, w := range o.words {
		for shift := 0; shift < 32; shift += 8 {
			c := byte(w >> shift)
			if c == 0 {
				if !utf8.Valid(buf) {
					return "", NewError(ErrStringFormat, "string literal is not valid UTF-8")
				}
				o.words = o.words[i+1:]
				return string(buf), nil
			}
			buf = append(buf, c)
		}
	}
	return "", NewError(ErrInvalidOp, "string literal has no zero terminator")
}

// optionalWord consumes one word if any operands remain.
func (o *operands) optionalWord() (*uint32, error) {
	if o.empty() {
		return nil, nil
	}
	w, err := o.word()
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// optionalID consumes one id if any operands remain.
func (o *operands) optionalID() (*ID, error) {
	if o.empty() {
		return nil, nil
	}
	id, err := o.id()
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// idList consumes all remaining operand words as ids.
func (o *operands) idList() []ID {
	ids := make([]ID, len(o.words))
	for i, w := range o.words {
		ids[i] = ID(w)
	}
	o.words = nil
	return ids
}

// wordList consumes all remaining operand words.
func (o *operands) wordList() []uint32 {
	words := make([]uint32, len(o.words))
	copy(words, o.words)
	o.words = nil
	return words
}

// decoration consumes a decoration code and its literal, if the code
// carries one. Unmodeled codes yield DecorationUnknown with their
// literals left unread.
func (o *operands) decoration() (Decoration, uint32, error) {
	code, err := o.word()
	if err != nil {
		return DecorationUnknown, 0, err
	}

	switch Decoration(code) {
	case DecorationRowMajor, DecorationColMajor:
		return Decoration(code), 0, nil
	case DecorationMatrixStride, DecorationLocation, DecorationBinding,
		DecorationDescriptorSet, DecorationOffset:
		operand, err := o.word()
		if err != nil {
			return DecorationUnknown, 0, err
		}
		return Decoration(code), operand, nil
	default:
		return DecorationUnknown, 0, nil
	}
}

// dim consumes an image dimensionality code.
func (o *operands) dim() (Dim, error) {
	code, err := o.word()
	if err != nil {
		return DimUnknown, err
	}
	switch Dim(code) {
	case Dim1D, Dim2D, Dim3D, DimCube, DimRect, DimBuffer, DimSubpassData:
		return Dim(code), nil
	default:
		return DimUnknown, nil
	}
}

// storageClass consumes a storage class code.
func (o *operands) storageClass() (StorageClass, error) {
	code, err := o.word()
	if err != nil {
		return StorageClassUnknown, err
	}
	switch StorageClass(code) {
	case StorageClassUniformConstant, StorageClassInput, StorageClassUniform,
		StorageClassOutput, StorageClassPushConstant:
		return StorageClass(code), nil
	default:
		return StorageClassUnknown, nil
	}
}

// executionModel consumes an execution model code.
func (o *operands) executionModel() (ExecutionModel, error) {
	code, err := o.word()
	if err != nil {
		return ExecutionModelUnknown, err
	}
	switch ExecutionModel(code) {
	case ExecutionModelVertex, ExecutionModelFragment:
		return ExecutionModel(code), nil
	default:
		return ExecutionModelUnknown, nil
	}
}
