// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package layout

// maxSizeDepth bounds the recursion of size queries. Well-formed
// modules declare types as a DAG, but input is untrusted and struct
// member type ids are not validated during collection, so a
// self-referential struct must not recurse forever.
const maxSizeDepth = 256

// GetVarSize returns the byte size of a reflected variable's type,
// if known. No stride hint applies at the variable level, so a
// top-level matrix variable has unknown size.
func (m *Module) GetVarSize(v Variable) (uint32, bool) {
	return m.typeSize(v.variableTypeID(), nil, 0)
}

// GetMemberSize returns the byte size of a struct member, if known.
// The member's matrix stride serves as the stride hint.
func (m *Module) GetMemberSize(member StructMember) (uint32, bool) {
	stride := member.Stride
	return m.typeSize(member.TypeID, &stride, 0)
}

// typeSize computes sizes from the resolved type graph:
//
//   - scalars are 4 bytes, vectors 4 bytes per component
//   - matrices span stride*(n-1) + column size, so they depend on a
//     stride hint and are unknown without one
//   - a struct spans up to the end of its farthest member: the member
//     with the maximum known offset, not the last-declared one
//
// Everything else (arrays, images, samplers, pointers, void, bool,
// Unknown) has no well-defined byte size here.
func (m *Module) typeSize(id uint32, stride *uint32, depth int) (uint32, bool) {
	if depth > maxSizeDepth {
		return 0, false
	}

	t, ok := m.types[id]
	if !ok {
		return 0, false
	}

	switch t := t.(type) {
	case Int32, UInt32, Float32:
		return 4, true
	case Vec2:
		return 8, true
	case Vec3:
		return 12, true
	case Vec4:
		return 16, true
	case Mat3:
		if stride == nil {
			return 0, false
		}
		return *stride*2 + 12, true // two strides plus one vec3 column
	case Mat4:
		if stride == nil {
			return 0, false
		}
		return *stride*3 + 16, true // three strides plus one vec4 column
	case Struct:
		return m.structSize(t, depth)
	default:
		return 0, false
	}
}

// structSize applies the maximum-offset rule. SPIR-V carries no size
// decoration, so the span is reconstructed from the farthest member's
// offset plus that member's own size. Members without an Offset
// decoration cannot be the farthest member; if no member has one, the
// size is unknown.
func (m *Module) structSize(s Struct, depth int) (uint32, bool) {
	var last *StructMember
	for i := range s.Members {
		member := &s.Members[i]
		if member.Offset == nil {
			continue
		}
		if last == nil || *member.Offset >= *last.Offset {
			last = member
		}
	}
	if last == nil {
		return 0, false
	}

	stride := last.Stride
	size, ok := m.typeSize(last.TypeID, &stride, depth+1)
	if !ok {
		return 0, false
	}
	return *last.Offset + size, true
}
