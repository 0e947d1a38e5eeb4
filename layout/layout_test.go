// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package layout

import (
	"testing"

	"github.com/gogpu/spvlayout/spv"
)

// addMinimalFunction appends a void entry function and returns its id.
func addMinimalFunction(b *spv.ModuleBuilder) spv.ID {
	voidType := b.AddTypeVoid()
	fnType := b.AddTypeFunction(voidType)
	fn := b.AddFunction(fnType, voidType, spv.FunctionControlNone)
	b.AddLabel()
	b.AddReturn()
	b.AddFunctionEnd()
	return fn
}

func TestFragmentShaderReflection(t *testing.T) {
	// A fragment shader with one location-decorated vec4 output.
	b := spv.NewModuleBuilder(spv.Version1_3)
	b.AddCapability(spv.CapabilityShader)
	b.SetMemoryModel(spv.AddressingModelLogical, spv.MemoryModelGLSL450)

	f32 := b.AddTypeFloat(32)
	vec4 := b.AddTypeVector(f32, 4)
	ptr := b.AddTypePointer(spv.StorageClassOutput, vec4)
	outVar := b.AddVariable(ptr, spv.StorageClassOutput)
	b.AddDecorate(outVar, spv.DecorationLocation, 0)

	fn := addMinimalFunction(b)
	b.AddEntryPoint(spv.ExecutionModelFragment, fn, "main", outVar)
	b.AddExecutionMode(fn, spv.ExecutionModeOriginUpperLeft)

	m := build(t, b)

	eps := m.GetEntryPoints()
	if len(eps) != 1 {
		t.Fatalf("Entry points: got %d, want 1", len(eps))
	}
	ep := eps[0]
	if ep.Name != "main" {
		t.Errorf("Name: got %q, want main", ep.Name)
	}
	if ep.ExecutionModel != Fragment {
		t.Errorf("Execution model: got %s, want Fragment", ep.ExecutionModel)
	}
	if len(ep.Uniforms) != 0 || len(ep.PushConstants) != 0 || len(ep.Inputs) != 0 {
		t.Errorf("Unexpected variables: %#v", ep)
	}
	if len(ep.Outputs) != 1 {
		t.Fatalf("Outputs: got %d, want 1", len(ep.Outputs))
	}

	out := ep.Outputs[0]
	if out.Location != 0 {
		t.Errorf("Location: got %d, want 0", out.Location)
	}
	if out.TypeID != uint32(vec4) {
		t.Errorf("TypeID: got %d, want %d (the pointed-to type)", out.TypeID, vec4)
	}
	if out.Name != "" {
		t.Errorf("Name: got %q, want empty", out.Name)
	}
	if size, ok := m.GetVarSize(out); !ok || size != 16 {
		t.Errorf("Size: got %d/%v, want 16/true", size, ok)
	}
}

func TestUniformReflection(t *testing.T) {
	b := spv.NewModuleBuilder(spv.Version1_3)
	f32 := b.AddTypeFloat(32)
	vec4 := b.AddTypeVector(f32, 4)
	st := b.AddTypeStruct(vec4, f32)
	ptr := b.AddTypePointer(spv.StorageClassUniform, st)
	v := b.AddVariable(ptr, spv.StorageClassUniform)
	b.AddName(v, "ubo")
	b.AddDecorate(v, spv.DecorationDescriptorSet, 2)
	b.AddDecorate(v, spv.DecorationBinding, 5)
	b.AddMemberDecorate(st, 0, spv.DecorationOffset, 0)
	b.AddMemberDecorate(st, 1, spv.DecorationOffset, 16)

	fn := addMinimalFunction(b)
	b.AddEntryPoint(spv.ExecutionModelVertex, fn, "main", v)

	m := build(t, b)
	ep := m.GetEntryPoints()[0]
	if len(ep.Uniforms) != 1 {
		t.Fatalf("Uniforms: got %d, want 1", len(ep.Uniforms))
	}

	u := ep.Uniforms[0]
	if u.Set != 2 || u.Binding != 5 {
		t.Errorf("Set/binding: got %d/%d, want 2/5", u.Set, u.Binding)
	}
	if u.Name != "ubo" {
		t.Errorf("Name: got %q, want ubo", u.Name)
	}
	if u.TypeID != uint32(st) {
		t.Errorf("TypeID: got %d, want %d", u.TypeID, st)
	}
	if size, ok := m.GetVarSize(u); !ok || size != 20 {
		t.Errorf("Size: got %d/%v, want 20/true", size, ok)
	}
}

func TestUndecoratedUniformIsDropped(t *testing.T) {
	// set without binding, binding without set, neither
	tests := []struct {
		name       string
		setOnly    bool
		bindOnly   bool
	}{
		{"no decorations", false, false},
		{"set only", true, false},
		{"binding only", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := spv.NewModuleBuilder(spv.Version1_3)
			f32 := b.AddTypeFloat(32)
			ptr := b.AddTypePointer(spv.StorageClassUniform, f32)
			v := b.AddVariable(ptr, spv.StorageClassUniform)
			if tt.setOnly {
				b.AddDecorate(v, spv.DecorationDescriptorSet, 0)
			}
			if tt.bindOnly {
				b.AddDecorate(v, spv.DecorationBinding, 0)
			}
			fn := addMinimalFunction(b)
			b.AddEntryPoint(spv.ExecutionModelVertex, fn, "main", v)

			m := build(t, b)
			if got := len(m.GetEntryPoints()[0].Uniforms); got != 0 {
				t.Errorf("Uniforms: got %d, want 0", got)
			}
		})
	}
}

func TestUndecoratedLocationVarIsDropped(t *testing.T) {
	b := spv.NewModuleBuilder(spv.Version1_3)
	f32 := b.AddTypeFloat(32)
	vec3 := b.AddTypeVector(f32, 3)
	inPtr := b.AddTypePointer(spv.StorageClassInput, vec3)
	outPtr := b.AddTypePointer(spv.StorageClassOutput, vec3)
	inVar := b.AddVariable(inPtr, spv.StorageClassInput)   // no Location
	outVar := b.AddVariable(outPtr, spv.StorageClassOutput) // no Location

	fn := addMinimalFunction(b)
	b.AddEntryPoint(spv.ExecutionModelVertex, fn, "main", inVar, outVar)

	m := build(t, b)
	ep := m.GetEntryPoints()[0]
	if len(ep.Inputs) != 0 || len(ep.Outputs) != 0 {
		t.Errorf("Inputs/outputs: got %d/%d, want 0/0", len(ep.Inputs), len(ep.Outputs))
	}
}

func TestPushConstantNeedsNoDecorations(t *testing.T) {
	b := spv.NewModuleBuilder(spv.Version1_3)
	f32 := b.AddTypeFloat(32)
	vec4 := b.AddTypeVector(f32, 4)
	st := b.AddTypeStruct(vec4)
	ptr := b.AddTypePointer(spv.StorageClassPushConstant, st)
	v := b.AddVariable(ptr, spv.StorageClassPushConstant)

	fn := addMinimalFunction(b)
	b.AddEntryPoint(spv.ExecutionModelFragment, fn, "main", v)
	b.AddExecutionMode(fn, spv.ExecutionModeOriginUpperLeft)

	m := build(t, b)
	ep := m.GetEntryPoints()[0]
	if len(ep.PushConstants) != 1 {
		t.Fatalf("Push constants: got %d, want 1", len(ep.PushConstants))
	}
	if ep.PushConstants[0].TypeID != uint32(st) {
		t.Errorf("TypeID: got %d, want %d", ep.PushConstants[0].TypeID, st)
	}
}

func TestInterfaceOrderPreserved(t *testing.T) {
	b := spv.NewModuleBuilder(spv.Version1_3)
	f32 := b.AddTypeFloat(32)
	vec2 := b.AddTypeVector(f32, 2)
	vec3 := b.AddTypeVector(f32, 3)
	ptr2 := b.AddTypePointer(spv.StorageClassInput, vec2)
	ptr3 := b.AddTypePointer(spv.StorageClassInput, vec3)

	uv := b.AddVariable(ptr2, spv.StorageClassInput)
	pos := b.AddVariable(ptr3, spv.StorageClassInput)
	b.AddDecorate(uv, spv.DecorationLocation, 1)
	b.AddDecorate(pos, spv.DecorationLocation, 0)

	fn := addMinimalFunction(b)
	// Interface lists pos before uv; reflection must keep that order,
	// not sort by location or declaration.
	b.AddEntryPoint(spv.ExecutionModelVertex, fn, "main", pos, uv)

	m := build(t, b)
	inputs := m.GetEntryPoints()[0].Inputs
	if len(inputs) != 2 {
		t.Fatalf("Inputs: got %d, want 2", len(inputs))
	}
	if inputs[0].Location != 0 || inputs[1].Location != 1 {
		t.Errorf("Interface order: got locations %d, %d; want 0, 1", inputs[0].Location, inputs[1].Location)
	}
}

func TestMultipleEntryPoints(t *testing.T) {
	// Vertex and fragment stages in one module, with partially
	// overlapping interfaces.
	b := spv.NewModuleBuilder(spv.Version1_3)
	f32 := b.AddTypeFloat(32)
	vec4 := b.AddTypeVector(f32, 4)
	outPtr := b.AddTypePointer(spv.StorageClassOutput, vec4)
	pcPtr := b.AddTypePointer(spv.StorageClassPushConstant, b.AddTypeStruct(vec4))

	vsOut := b.AddVariable(outPtr, spv.StorageClassOutput)
	fsOut := b.AddVariable(outPtr, spv.StorageClassOutput)
	pc := b.AddVariable(pcPtr, spv.StorageClassPushConstant)
	b.AddDecorate(vsOut, spv.DecorationLocation, 0)
	b.AddDecorate(fsOut, spv.DecorationLocation, 0)

	vsFn := addMinimalFunction(b)
	fsFn := addMinimalFunction(b)
	b.AddEntryPoint(spv.ExecutionModelVertex, vsFn, "vs_main", vsOut, pc)
	b.AddEntryPoint(spv.ExecutionModelFragment, fsFn, "fs_main", fsOut, pc)

	m := build(t, b)
	eps := m.GetEntryPoints()
	if len(eps) != 2 {
		t.Fatalf("Entry points: got %d, want 2", len(eps))
	}
	if eps[0].Name != "vs_main" || eps[0].ExecutionModel != Vertex {
		t.Errorf("First entry point: got %q %s", eps[0].Name, eps[0].ExecutionModel)
	}
	if eps[1].Name != "fs_main" || eps[1].ExecutionModel != Fragment {
		t.Errorf("Second entry point: got %q %s", eps[1].Name, eps[1].ExecutionModel)
	}
	for i, ep := range eps {
		if len(ep.Outputs) != 1 {
			t.Errorf("Entry point %d outputs: got %d, want 1", i, len(ep.Outputs))
		}
		if len(ep.PushConstants) != 1 {
			t.Errorf("Entry point %d push constants: got %d, want 1", i, len(ep.PushConstants))
		}
	}
}

func TestEntryPointWithEmptyInterface(t *testing.T) {
	b := spv.NewModuleBuilder(spv.Version1_3)
	fn := addMinimalFunction(b)
	b.AddEntryPoint(spv.ExecutionModelVertex, fn, "main")

	m := build(t, b)
	eps := m.GetEntryPoints()
	if len(eps) != 1 {
		t.Fatalf("Entry points: got %d, want 1", len(eps))
	}
	ep := eps[0]
	if len(ep.Uniforms)+len(ep.PushConstants)+len(ep.Inputs)+len(ep.Outputs) != 0 {
		t.Errorf("Expected empty interface, got %#v", ep)
	}
}

func TestVariableWithNonPointerTypeIsIgnored(t *testing.T) {
	// A variable whose declared type is not a pointer cannot be
	// classified and silently drops out.
	b := spv.NewModuleBuilder(spv.Version1_3)
	f32 := b.AddTypeFloat(32)
	v := b.AddVariable(f32, spv.StorageClassOutput)
	b.AddDecorate(v, spv.DecorationLocation, 0)

	fn := addMinimalFunction(b)
	b.AddEntryPoint(spv.ExecutionModelFragment, fn, "main", v)
	b.AddExecutionMode(fn, spv.ExecutionModeOriginUpperLeft)

	m := build(t, b)
	if got := len(m.GetEntryPoints()[0].Outputs); got != 0 {
		t.Errorf("Outputs: got %d, want 0", got)
	}
}

func TestSampledImageUniform(t *testing.T) {
	b := spv.NewModuleBuilder(spv.Version1_3)
	f32 := b.AddTypeFloat(32)
	img := b.AddTypeImage(f32, spv.Dim2D, 0, 0, 0, 1, 0)
	combined := b.AddTypeSampledImage(img)
	ptr := b.AddTypePointer(spv.StorageClassUniformConstant, combined)
	tex := b.AddVariable(ptr, spv.StorageClassUniformConstant)
	b.AddName(tex, "albedo")
	b.AddDecorate(tex, spv.DecorationDescriptorSet, 0)
	b.AddDecorate(tex, spv.DecorationBinding, 1)

	fn := addMinimalFunction(b)
	b.AddEntryPoint(spv.ExecutionModelFragment, fn, "main", tex)
	b.AddExecutionMode(fn, spv.ExecutionModeOriginUpperLeft)

	m := build(t, b)
	uniforms := m.GetEntryPoints()[0].Uniforms
	if len(uniforms) != 1 {
		t.Fatalf("Uniforms: got %d, want 1", len(uniforms))
	}
	u := uniforms[0]
	if u.Name != "albedo" || u.Set != 0 || u.Binding != 1 {
		t.Errorf("Got %#v", u)
	}
	typ, ok := m.GetType(u.TypeID)
	if !ok {
		t.Fatal("Uniform type not found")
	}
	si, ok := typ.(SampledImage)
	if !ok {
		t.Fatalf("Expected SampledImage, got %#v", typ)
	}
	if si.ImageTypeID != uint32(img) {
		t.Errorf("ImageTypeID: got %d, want %d", si.ImageTypeID, img)
	}
	// Opaque types have no byte size.
	if _, ok := m.GetVarSize(u); ok {
		t.Error("Sampled image should have unknown size")
	}
}

func TestGetTypeMissingID(t *testing.T) {
	b := spv.NewModuleBuilder(spv.Version1_3)
	b.AddTypeFloat(32)

	m := build(t, b)
	if _, ok := m.GetType(12345); ok {
		t.Error("GetType on an undeclared id should report not found")
	}
}

func TestDuplicateIDLastWins(t *testing.T) {
	// Ill-formed but accepted: a redefined result id keeps the later
	// definition.
	words := []uint32{spv.MagicNumber, 0x00010300, 0, 10, 0}
	words = append(words, 2<<16|uint32(spv.OpTypeVoid), 7)
	words = append(words, 3<<16|uint32(spv.OpTypeFloat), 7, 32)

	m, err := FromWords(words)
	if err != nil {
		t.Fatalf("FromWords failed: %v", err)
	}
	wantType(t, m, 7, Float32{})
}

func TestStorageClassStrings(t *testing.T) {
	tests := []struct {
		class StorageClass
		want  string
	}{
		{StorageUniform, "Uniform"},
		{StorageUniformConstant, "UniformConstant"},
		{StoragePushConstant, "PushConstant"},
		{StorageInput, "Input"},
		{StorageOutput, "Output"},
		{StorageUnknown, "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.class.String(); got != tt.want {
			t.Errorf("String(): got %q, want %q", got, tt.want)
		}
	}

	if got := Vertex.String(); got != "Vertex" {
		t.Errorf("Vertex.String(): got %q", got)
	}
	if got := Fragment.String(); got != "Fragment" {
		t.Errorf("Fragment.String(): got %q", got)
	}
}
