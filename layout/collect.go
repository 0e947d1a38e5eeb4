// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package layout

import (
	"github.com/gogpu/spvlayout/spv"
)

// FromWords generates reflection info from a SPIR-V word stream.
//
// The input is treated as untrusted: construction either returns a
// complete Module or fails with one of the spv error kinds
// (InvalidHeader, InvalidOp, InvalidId, StringFormat, Other). No
// partial module is ever returned.
func FromWords(words []uint32) (*Module, error) {
	if len(words) < spv.HeaderWords+1 || words[0] != spv.MagicNumber {
		return nil, spv.NewError(spv.ErrInvalidHeader, "missing SPIR-V magic number")
	}

	// The remaining header words (version, generator, bound, schema)
	// are accepted without interpretation.
	r := spv.NewReader(words[spv.HeaderWords:])

	var instructions []spv.Instruction
	for !r.Empty() {
		inst, err := r.Decode()
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, inst)
	}

	c := newCollector()
	if err := c.collectTypesAndVars(instructions); err != nil {
		return nil, err
	}
	c.collectDecorationsAndNames(instructions)

	return c.assemble(), nil
}

// collector accumulates the intermediate state of one construction.
type collector struct {
	types     map[uint32]Type
	constants map[uint32]uint32 // u32-typed OpConstant values, used as array lengths
	vars      map[uint32]*rawVariable
	entries   []rawEntryPoint
}

type rawVariable struct {
	set      *uint32
	binding  *uint32
	location *uint32
	typeID   uint32 // the declared pointer type
	name     string
}

type rawEntryPoint struct {
	name  string
	model ExecutionModel
	iface []spv.ID
}

func newCollector() *collector {
	return &collector{
		types:     make(map[uint32]Type),
		constants: make(map[uint32]uint32),
		vars:      make(map[uint32]*rawVariable),
	}
}

// collectTypesAndVars is the first, order-sensitive pass. It relies on
// the SPIR-V guarantee that type and constant ids are declared before
// use; where a forward reference would be nonsensical (vector
// component types, array lengths) a missing id is a hard InvalidId.
// Recognized-but-unmodeled shapes degrade to Unknown instead.
//
//nolint:gocyclo,cyclop,funlen // one case per collected instruction
func (c *collector) collectTypesAndVars(instructions []spv.Instruction) error {
	for _, inst := range instructions {
		switch inst := inst.(type) {
		case spv.TypeVoid:
			c.types[uint32(inst.Result)] = Void{}

		case spv.TypeBool:
			c.types[uint32(inst.Result)] = Bool{}

		case spv.TypeInt:
			switch {
			case inst.Width != 32:
				c.types[uint32(inst.Result)] = Unknown{}
			case inst.Signedness == 0:
				c.types[uint32(inst.Result)] = UInt32{}
			default:
				c.types[uint32(inst.Result)] = Int32{}
			}

		case spv.TypeFloat:
			if inst.Width == 32 {
				c.types[uint32(inst.Result)] = Float32{}
			} else {
				c.types[uint32(inst.Result)] = Unknown{}
			}

		case spv.TypeVector:
			component, ok := c.types[uint32(inst.Component)]
			if !ok {
				return spv.NewErrorf(spv.ErrInvalidID, "vector component type %d is not declared", inst.Component)
			}
			var t Type = Unknown{}
			if _, isFloat := component.(Float32); isFloat {
				switch inst.Count {
				case 2:
					t = Vec2{}
				case 3:
					t = Vec3{}
				case 4:
					t = Vec4{}
				}
			}
			c.types[uint32(inst.Result)] = t

		case spv.TypeMatrix:
			// An undeclared column id degrades softly here, unlike vectors.
			var t Type = Unknown{}
			switch c.types[uint32(inst.Column)].(type) {
			case Vec3:
				if inst.Count == 3 {
					t = Mat3{}
				}
			case Vec4:
				if inst.Count == 4 {
					t = Mat4{}
				}
			}
			c.types[uint32(inst.Result)] = t

		case spv.TypeImage:
			var t Type = Unknown{}
			if _, isFloat := c.types[uint32(inst.SampledType)].(Float32); isFloat && inst.Dim == spv.Dim2D {
				t = Image2D{
					Depth:   inst.Depth != 0,
					Sampled: inst.Sampled != 0,
					Format:  inst.Format,
				}
			}
			c.types[uint32(inst.Result)] = t

		case spv.TypeSampler:
			c.types[uint32(inst.Result)] = Sampler{}

		case spv.TypeSampledImage:
			var t Type = Unknown{}
			if _, isImage := c.types[uint32(inst.Image)].(Image2D); isImage {
				t = SampledImage{ImageTypeID: uint32(inst.Image)}
			}
			c.types[uint32(inst.Result)] = t

		case spv.TypeArray:
			length, ok := c.constants[uint32(inst.Length)]
			if !ok {
				return spv.NewErrorf(spv.ErrInvalidID, "array length %d is not a declared u32 constant", inst.Length)
			}
			c.types[uint32(inst.Result)] = Array{
				ElementTypeID: uint32(inst.Element),
				Length:        &length,
			}

		case spv.TypeRuntimeArray:
			c.types[uint32(inst.Result)] = Array{
				ElementTypeID: uint32(inst.Element),
				Length:        nil,
			}

		case spv.TypeStruct:
			members := make([]StructMember, len(inst.Elements))
			for i, element := range inst.Elements {
				members[i] = StructMember{
					TypeID:   uint32(element),
					RowMajor: true,
					Stride:   16,
				}
			}
			c.types[uint32(inst.Result)] = Struct{Members: members}

		case spv.TypePointer:
			c.types[uint32(inst.Result)] = Pointer{
				StorageClass:  reflectStorageClass(inst.StorageClass),
				PointedTypeID: uint32(inst.Pointed),
			}

		case spv.Constant:
			// Only single-word u32 constants matter: they are the only
			// legal array lengths.
			if _, isUint := c.types[uint32(inst.ResultType)].(UInt32); isUint && len(inst.Value) == 1 {
				c.constants[uint32(inst.Result)] = inst.Value[0]
			}

		case spv.Variable:
			c.vars[uint32(inst.Result)] = &rawVariable{
				typeID: uint32(inst.ResultType),
			}

		case spv.EntryPoint:
			var model ExecutionModel
			switch inst.Model {
			case spv.ExecutionModelVertex:
				model = Vertex
			case spv.ExecutionModelFragment:
				model = Fragment
			default:
				return spv.NewErrorf(spv.ErrOther, "unsupported execution model in entry point %q", inst.Name)
			}
			c.entries = append(c.entries, rawEntryPoint{
				name:  inst.Name,
				model: model,
				iface: inst.Interface,
			})
		}
	}

	return nil
}

// collectDecorationsAndNames is the second pass. It overlays names and
// decorations onto the tables built by the first pass and has no
// ordering requirements of its own: decorations routinely precede the
// declarations they target. Targets that do not exist, member indices
// out of range, and unmodeled decoration kinds are all ignored.
func (c *collector) collectDecorationsAndNames(instructions []spv.Instruction) {
	for _, inst := range instructions {
		switch inst := inst.(type) {
		case spv.Name:
			if v, ok := c.vars[uint32(inst.Target)]; ok {
				v.name = inst.Name
			} else if s, ok := c.types[uint32(inst.Target)].(Struct); ok {
				s.Name = inst.Name
				c.types[uint32(inst.Target)] = s
			}

		case spv.MemberName:
			if s, ok := c.types[uint32(inst.Target)].(Struct); ok {
				if int(inst.Member) < len(s.Members) {
					s.Members[inst.Member].Name = inst.Name
				}
			}

		case spv.Decorate:
			v, ok := c.vars[uint32(inst.Target)]
			if !ok {
				continue
			}
			operand := inst.Operand
			switch inst.Decoration {
			case spv.DecorationBinding:
				v.binding = &operand
			case spv.DecorationDescriptorSet:
				v.set = &operand
			case spv.DecorationLocation:
				v.location = &operand
			}

		case spv.MemberDecorate:
			s, ok := c.types[uint32(inst.Target)].(Struct)
			if !ok || int(inst.Member) >= len(s.Members) {
				continue
			}
			member := &s.Members[inst.Member]
			switch inst.Decoration {
			case spv.DecorationRowMajor:
				member.RowMajor = true
			case spv.DecorationColMajor:
				member.RowMajor = false
			case spv.DecorationMatrixStride:
				member.Stride = inst.Operand
			case spv.DecorationOffset:
				offset := inst.Operand
				member.Offset = &offset
			}
		}
	}
}

// assemble classifies the raw variables by storage class and scopes
// them per entry point through each interface list.
func (c *collector) assemble() *Module {
	uniforms := make(map[uint32]UniformVariable)
	pushConstants := make(map[uint32]PushConstantVariable)
	inputs := make(map[uint32]LocationVariable)
	outputs := make(map[uint32]LocationVariable)

	for id, v := range c.vars {
		ptr, ok := c.types[v.typeID].(Pointer)
		if !ok {
			continue
		}

		switch ptr.StorageClass {
		case StorageUniform, StorageUniformConstant:
			// A uniform without both set and binding cannot be bound to
			// a descriptor; it is dropped from reflection output.
			if v.set == nil || v.binding == nil {
				continue
			}
			uniforms[id] = UniformVariable{
				Set:     *v.set,
				Binding: *v.binding,
				TypeID:  ptr.PointedTypeID,
				Name:    v.name,
			}

		case StoragePushConstant:
			pushConstants[id] = PushConstantVariable{
				TypeID: ptr.PointedTypeID,
				Name:   v.name,
			}

		case StorageInput:
			if v.location == nil {
				continue
			}
			inputs[id] = LocationVariable{
				Location: *v.location,
				TypeID:   ptr.PointedTypeID,
				Name:     v.name,
			}

		case StorageOutput:
			if v.location == nil {
				continue
			}
			outputs[id] = LocationVariable{
				Location: *v.location,
				TypeID:   ptr.PointedTypeID,
				Name:     v.name,
			}
		}
	}

	entryPoints := make([]EntryPoint, 0, len(c.entries))
	for _, e := range c.entries {
		ep := EntryPoint{
			Name:           e.name,
			ExecutionModel: e.model,
		}

		// The four categories are disjoint by storage class, so each
		// interface id lands in at most one list. Ids that classified
		// into none of them (built-ins, undecorated uniforms) are
		// dropped silently.
		for _, id := range e.iface {
			if u, ok := uniforms[uint32(id)]; ok {
				ep.Uniforms = append(ep.Uniforms, u)
			}
			if p, ok := pushConstants[uint32(id)]; ok {
				ep.PushConstants = append(ep.PushConstants, p)
			}
			if in, ok := inputs[uint32(id)]; ok {
				ep.Inputs = append(ep.Inputs, in)
			}
			if out, ok := outputs[uint32(id)]; ok {
				ep.Outputs = append(ep.Outputs, out)
			}
		}

		entryPoints = append(entryPoints, ep)
	}

	return &Module{
		types:       c.types,
		entryPoints: entryPoints,
	}
}

// reflectStorageClass maps a wire-level storage class to the
// reflection-level classification. Uniform and UniformConstant
// collapse into one category.
func reflectStorageClass(class spv.StorageClass) StorageClass {
	switch class {
	case spv.StorageClassUniform, spv.StorageClassUniformConstant:
		return StorageUniform
	case spv.StorageClassPushConstant:
		return StoragePushConstant
	case spv.StorageClassInput:
		return StorageInput
	case spv.StorageClassOutput:
		return StorageOutput
	default:
		return StorageUnknown
	}
}
