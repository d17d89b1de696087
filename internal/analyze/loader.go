package analyze

import (
	"fmt"
	"go/types"
	"sort"

	"golang.org/x/tools/go/packages"

	"converter-kit/internal/diagnostic"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedTypes |
	packages.NeedImports

// Analyzer loads Go packages and builds a type graph.
type Analyzer struct {
	graph       *TypeGraph
	diagnostics diagnostic.Diagnostics
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		graph: NewTypeGraph(),
	}
}

// LoadPackages loads the specified packages and builds the type graph.
// Patterns are standard Go package patterns (e.g., "./temporal", "converter-kit/convert").
func (a *Analyzer) LoadPackages(patterns ...string) (*TypeGraph, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	for _, pkg := range pkgs {
		a.processPackage(pkg)
	}

	return a.graph, nil
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *TypeGraph {
	return a.graph
}

// Diagnostics returns what was skipped while loading.
func (a *Analyzer) Diagnostics() diagnostic.Diagnostics {
	return a.diagnostics
}

// processPackage extracts exported named types from a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) {
	pkgInfo := &PackageInfo{
		Path: pkg.PkgPath,
		Name: pkg.Name,
	}

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !typeName.Exported() || typeName.IsAlias() {
			continue
		}

		named, ok := typeName.Type().(*types.Named)
		if !ok {
			continue
		}

		info := a.analyzeNamed(named)
		a.graph.Types[info.ID] = info
		pkgInfo.Types = append(pkgInfo.Types, info.ID)
	}

	a.graph.Packages[pkg.PkgPath] = pkgInfo
}

func (a *Analyzer) analyzeNamed(named *types.Named) *TypeInfo {
	obj := named.Obj()
	info := &TypeInfo{
		ID:      TypeID{PkgPath: obj.Pkg().Path(), Name: obj.Name()},
		Kind:    kindOf(named.Underlying()),
		Generic: named.TypeParams().Len() > 0,
		GoType:  named,
	}

	if info.Generic {
		a.diagnostics.AddInfo("generic_type", "generic types have no method expressions", info.ID.String(), "")
		return info
	}

	if info.Kind == TypeKindInterface {
		return info
	}

	info.Methods = methodsOf(named)

	return info
}

// methodsOf lists the exported methods of *T, marking the ones T lacks.
func methodsOf(named *types.Named) []MethodInfo {
	valueSet := types.NewMethodSet(named)
	ptrSet := types.NewMethodSet(types.NewPointer(named))

	var methods []MethodInfo
	for i := range ptrSet.Len() {
		fn, ok := ptrSet.At(i).Obj().(*types.Func)
		if !ok || !fn.Exported() {
			continue
		}

		methods = append(methods, MethodInfo{
			Name:            fn.Name(),
			PointerReceiver: valueSet.Lookup(fn.Pkg(), fn.Name()) == nil,
			Signature:       fn.Type().(*types.Signature),
		})
	}

	sort.Slice(methods, func(i, j int) bool { return methods[i].Name < methods[j].Name })

	return methods
}

func kindOf(t types.Type) TypeKind {
	switch t.(type) {
	case *types.Basic:
		return TypeKindBasic
	case *types.Struct:
		return TypeKindStruct
	case *types.Pointer:
		return TypeKindPointer
	case *types.Slice, *types.Array:
		return TypeKindSlice
	case *types.Map:
		return TypeKindMap
	case *types.Signature:
		return TypeKindFunc
	case *types.Interface:
		return TypeKindInterface
	default:
		return TypeKindUnknown
	}
}

// GetType returns the TypeInfo of a loaded named type.
func (a *Analyzer) GetType(pkgPath, typeName string) (*TypeInfo, error) {
	id := TypeID{PkgPath: pkgPath, Name: typeName}

	info := a.graph.GetType(id)
	if info == nil {
		return nil, fmt.Errorf("type %s not found", id)
	}

	if info.Kind == TypeKindInterface {
		return nil, fmt.Errorf("type %s is an interface", id)
	}

	if info.Generic {
		return nil, fmt.Errorf("type %s is generic", id)
	}

	return info, nil
}
