package analyze

import (
	"go/types"

	"converter-kit/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "converter-kit/temporal"
	Name    string // e.g., "LocalDate"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// TypeKind represents the kind of a named type's underlying type.
type TypeKind int

const (
	TypeKindUnknown   TypeKind = iota
	TypeKindBasic              // int, string, bool, etc.
	TypeKindStruct             // struct type
	TypeKindPointer            // pointer to another type
	TypeKindSlice              // slice or array
	TypeKindMap                // map
	TypeKindFunc               // function
	TypeKindInterface          // interface, skipped by generators
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindBasic:
		return "basic"
	case TypeKindStruct:
		return "struct"
	case TypeKindPointer:
		return "pointer"
	case TypeKindSlice:
		return "slice"
	case TypeKindMap:
		return "map"
	case TypeKindFunc:
		return "func"
	case TypeKindInterface:
		return "interface"
	default:
		return common.UnknownStr
	}
}

// TypeInfo describes a named type and its exported methods.
type TypeInfo struct {
	ID      TypeID       // Unique identifier
	Kind    TypeKind     // Kind of the underlying type
	Generic bool         // The type has type parameters
	Methods []MethodInfo // Exported methods in name order
	GoType  types.Type   // The original go/types.Type
}

// MethodInfo describes an exported method.
type MethodInfo struct {
	Name            string
	PointerReceiver bool             // declared on *T, so not callable on a T copy
	Signature       *types.Signature // without the receiver
}

// Variadic reports whether the last parameter is ...T.
func (m MethodInfo) Variadic() bool {
	return m.Signature != nil && m.Signature.Variadic()
}

// ValueMethods returns the methods declared on the value receiver.
func (t *TypeInfo) ValueMethods() []MethodInfo {
	var res []MethodInfo
	for _, m := range t.Methods {
		if !m.PointerReceiver {
			res = append(res, m)
		}
	}

	return res
}

// TypeGraph holds all analyzed types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all exported named types.
	Types map[TypeID]*TypeInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Types []TypeID // Exported named types defined in this package
}
