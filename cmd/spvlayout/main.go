// spvlayout - dump the resource interface of a SPIR-V module
// Prints a GLSL-flavoured layout description per entry point.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/gogpu/spvlayout"
	"github.com/gogpu/spvlayout/layout"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: spvlayout <file.spv>")
		return
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	module, err := spvlayout.FromBytes(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, ep := range module.GetEntryPoints() {
		fmt.Printf("ENTRYPOINT %s %s\n", ep.Name, ep.ExecutionModel)

		fmt.Println("=== INPUTS ===")
		for _, v := range ep.Inputs {
			printLocationVar(module, v)
		}

		fmt.Println("=== OUTPUTS ===")
		for _, v := range ep.Outputs {
			printLocationVar(module, v)
		}

		fmt.Println("=== UNIFORMS ===")
		for _, v := range ep.Uniforms {
			printUniformVar(module, v)
		}

		fmt.Println("=== PUSH CONSTANTS ===")
		for _, v := range ep.PushConstants {
			printPushConstantVar(module, v)
		}
	}
}

func printUniformVar(module *layout.Module, v layout.UniformVariable) {
	fmt.Printf("layout (set=%d, binding=%d) ", v.Set, v.Binding)
	printTypeRef(module, v.TypeID, 0)
	fmt.Printf("%s; // size=%s\n", orNoName(v.Name), sizeString(module.GetVarSize(v)))
}

func printPushConstantVar(module *layout.Module, v layout.PushConstantVariable) {
	printTypeRef(module, v.TypeID, 0)
	fmt.Printf("%s; // size=%s\n", orNoName(v.Name), sizeString(module.GetVarSize(v)))
}

func printLocationVar(module *layout.Module, v layout.LocationVariable) {
	fmt.Printf("layout (location=%d) ", v.Location)
	printTypeRef(module, v.TypeID, 0)
	fmt.Printf("%s; // size=%s\n", orNoName(v.Name), sizeString(module.GetVarSize(v)))
}

func printTypeRef(module *layout.Module, id uint32, depth int) {
	t, ok := module.GetType(id)
	if !ok {
		fmt.Print("<undeclared> ")
		return
	}
	printType(module, t, depth)
}

//nolint:gocyclo,cyclop // one case per reflected type
func printType(module *layout.Module, t layout.Type, depth int) {
	switch t := t.(type) {
	case layout.Void:
		fmt.Print("void ")
	case layout.Bool:
		fmt.Print("bool ")
	case layout.Int32:
		fmt.Print("int ")
	case layout.UInt32:
		fmt.Print("uint ")
	case layout.Float32:
		fmt.Print("float ")
	case layout.Vec2:
		fmt.Print("vec2 ")
	case layout.Vec3:
		fmt.Print("vec3 ")
	case layout.Vec4:
		fmt.Print("vec4 ")
	case layout.Mat3:
		fmt.Print("mat3 ")
	case layout.Mat4:
		fmt.Print("mat4 ")
	case layout.Image2D:
		fmt.Print("image2D ")
	case layout.Sampler:
		fmt.Print("sampler ")
	case layout.SampledImage:
		fmt.Print("sampler2D ")
	case layout.Array:
		printTypeRef(module, t.ElementTypeID, depth)
		if t.Length != nil {
			fmt.Printf("[%d] ", *t.Length)
		} else {
			fmt.Print("[] ")
		}
	case layout.Struct:
		printStruct(module, t, depth)
	case layout.Pointer:
		printTypeRef(module, t.PointedTypeID, depth)
		fmt.Print("* ")
	default:
		fmt.Print("<unknown> ")
	}
}

func printStruct(module *layout.Module, s layout.Struct, depth int) {
	indent := strings.Repeat("    ", depth)
	fmt.Printf("struct %s {\n", orNoName(s.Name))

	for _, member := range s.Members {
		fmt.Printf("%s    layout(", indent)
		if member.Offset != nil {
			fmt.Printf("offset=%d", *member.Offset)
		}
		if memberType, ok := module.GetType(member.TypeID); ok && isMatrix(memberType) {
			order := "col_major"
			if member.RowMajor {
				order = "row_major"
			}
			fmt.Printf(", %s, stride=%d", order, member.Stride)
		}
		fmt.Print(") ")

		printTypeRef(module, member.TypeID, depth+1)
		fmt.Printf("%s; // size=%s\n", orNoName(member.Name), sizeString(module.GetMemberSize(member)))
	}

	fmt.Printf("%s} ", indent)
}

func isMatrix(t layout.Type) bool {
	switch t.(type) {
	case layout.Mat3, layout.Mat4:
		return true
	default:
		return false
	}
}

func orNoName(name string) string {
	if name == "" {
		return "<no-name>"
	}
	return name
}

func sizeString(size uint32, ok bool) string {
	if !ok {
		return "?"
	}
	return fmt.Sprintf("%d", size)
}
