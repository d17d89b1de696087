package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"sort"
	"strings"
	"text/template"

	"converter-kit/internal/analyze"
	"converter-kit/internal/common"
	"converter-kit/internal/diagnostic"
)

// InvokePkgPath is the import path of the package the generated code targets.
const InvokePkgPath = "converter-kit/invoke"

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// PackageName is the name of the generated package. Empty means the
	// package of the type itself.
	PackageName string
	// PackagePath is the import path of the generated package. Types from
	// this path are referenced unqualified.
	PackagePath string
	// OutputDir is the directory where generated files are written.
	OutputDir string
	// FuncSuffix is appended to the type name to name the table functions.
	FuncSuffix string
	// GenerateComments puts each method signature above its registration.
	GenerateComments bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		OutputDir:        ".",
		FuncSuffix:       "Table",
		GenerateComments: true,
	}
}

// Generator generates dispatch tables for analyzed types.
type Generator struct {
	config      GeneratorConfig
	graph       *analyze.TypeGraph
	diagnostics diagnostic.Diagnostics
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	if config.FuncSuffix == "" {
		config.FuncSuffix = "Table"
	}

	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "counter_dispatch.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Diagnostics returns the types and methods left out by the last Generate.
func (g *Generator) Diagnostics() diagnostic.Diagnostics {
	return g.diagnostics
}

// Generate writes one file per type. Interface and generic types and types
// without exported methods are skipped with a warning; unknown IDs fail.
func (g *Generator) Generate(graph *analyze.TypeGraph, ids ...analyze.TypeID) ([]GeneratedFile, error) {
	g.graph = graph
	g.diagnostics = diagnostic.Diagnostics{}

	var files []GeneratedFile

	for _, id := range ids {
		info := graph.GetType(id)
		if info == nil {
			g.diagnostics.AddError("type_not_found", "type is not loaded", id.String(), "")
			continue
		}

		switch {
		case info.Kind == analyze.TypeKindInterface:
			g.diagnostics.AddWarning("interface_type", "interfaces have no method expressions", id.String(), "")
			continue
		case info.Generic:
			g.diagnostics.AddWarning("generic_type", "generic types need instantiation", id.String(), "")
			continue
		case len(info.Methods) == 0:
			g.diagnostics.AddWarning("no_methods", "type has no exported methods", id.String(), "")
			continue
		}

		file, err := g.generateType(info)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", id, err)
		}

		files = append(files, *file)
	}

	if err := g.diagnostics.Error(); err != nil {
		return nil, err
	}

	return files, nil
}

// templateData holds all data needed for the dispatch template.
type templateData struct {
	PackageName      string
	Filename         string
	Imports          []importSpec
	TypeName         string
	TypeRef          string
	TableFunc        string
	ValueTableFunc   string
	OptionFunc       string
	GenerateComments bool
	Methods          []methodData
}

type methodData struct {
	Name            string
	Signature       string
	PointerReceiver bool
}

type importSpec struct {
	Alias string
	Path  string
}

func (g *Generator) buildTemplateData(info *analyze.TypeInfo) *templateData {
	pkgName := g.getPkgName(info.ID.PkgPath)
	outPkg := g.config.PackageName
	outPath := g.config.PackagePath

	if outPkg == "" {
		outPkg = pkgName
		outPath = info.ID.PkgPath
	}

	prefix := capitalize(info.ID.Name)

	data := &templateData{
		PackageName:      outPkg,
		Filename:         strings.ToLower(info.ID.Name) + "_dispatch.go",
		TypeName:         info.ID.Name,
		TypeRef:          info.ID.Name,
		TableFunc:        prefix + g.config.FuncSuffix,
		ValueTableFunc:   prefix + "Value" + g.config.FuncSuffix,
		OptionFunc:       "With" + prefix + strings.TrimSuffix(g.config.FuncSuffix, "Table") + "Tables",
		GenerateComments: g.config.GenerateComments,
	}

	imports := map[string]importSpec{
		InvokePkgPath: {Path: InvokePkgPath},
		"reflect":     {Path: "reflect"},
	}

	if outPath != info.ID.PkgPath {
		data.TypeRef = pkgName + "." + info.ID.Name
		g.addImport(imports, info.ID.PkgPath)
	}

	for _, m := range info.Methods {
		data.Methods = append(data.Methods, methodData{
			Name:            m.Name,
			Signature:       analyze.SignatureString(m, outPath),
			PointerReceiver: m.PointerReceiver,
		})
	}

	for _, imp := range imports {
		data.Imports = append(data.Imports, imp)
	}

	sort.Slice(data.Imports, func(i, j int) bool {
		return data.Imports[i].Path < data.Imports[j].Path
	})

	return data
}

func (g *Generator) generateType(info *analyze.TypeInfo) (*GeneratedFile, error) {
	data := g.buildTemplateData(info)

	var buf bytes.Buffer
	if err := dispatchTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if g.config.OutputDir != "" {
			_ = writeDebugUnformatted(g.config.OutputDir, data.Filename, buf.Bytes())
		}

		return &GeneratedFile{
			Filename: data.Filename,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w", err)
	}

	return &GeneratedFile{
		Filename: data.Filename,
		Content:  formatted,
	}, nil
}

// getPkgName returns the package name for a given package path.
// It tries to look up the name from the type graph, falling back to the path base alias.
func (g *Generator) getPkgName(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	if g.graph != nil {
		if pkgInfo, ok := g.graph.Packages[pkgPath]; ok {
			return pkgInfo.Name
		}
	}

	return common.PkgAlias(pkgPath)
}

func (g *Generator) addImport(imports map[string]importSpec, pkgPath string) {
	if pkgPath == "" {
		return
	}

	spec := importSpec{Path: pkgPath}
	if name := g.getPkgName(pkgPath); name != common.PkgAlias(pkgPath) {
		spec.Alias = name
	}

	imports[pkgPath] = spec
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}

var dispatchTemplate = template.Must(template.New("dispatch").Parse(`// Code generated by dispatch-gen. DO NOT EDIT.

package {{.PackageName}}

import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})

// {{.TableFunc}} returns the members of *{{.TypeName}}.
func {{.TableFunc}}() *invoke.Table {
	t := invoke.NewTable()
{{range .Methods}}{{if $.GenerateComments}}	// {{.Signature}}
{{end}}	t.MustRegisterMethod("{{.Name}}", (*{{$.TypeRef}}).{{.Name}})
{{end}}
	return t
}

// {{.ValueTableFunc}} returns the members of {{.TypeName}}. Methods declared
// on *{{.TypeName}} are listed but cannot be called on a copy.
func {{.ValueTableFunc}}() *invoke.Table {
	t := invoke.NewTable()
{{range .Methods}}{{if .PointerReceiver}}	t.MustRegisterMethod("{{.Name}}", (*{{$.TypeRef}}).{{.Name}})
{{else}}	t.MustRegisterMethod("{{.Name}}", {{$.TypeRef}}.{{.Name}})
{{end}}{{end}}
	return t
}

// {{.OptionFunc}} installs both tables on a resolver.
func {{.OptionFunc}}() invoke.Option {
	return func(r *invoke.Resolver) {
		invoke.WithTable(reflect.TypeFor[*{{.TypeRef}}](), {{.TableFunc}}())(r)
		invoke.WithTable(reflect.TypeFor[{{.TypeRef}}](), {{.ValueTableFunc}}())(r)
	}
}
`))
