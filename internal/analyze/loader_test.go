package analyze

import (
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func methodByName(t *testing.T, info *TypeInfo, name string) MethodInfo {
	t.Helper()

	for _, m := range info.Methods {
		if m.Name == name {
			return m
		}
	}

	require.Failf(t, "method not found", "%s has no method %s", info.ID, name)

	return MethodInfo{}
}

func TestAnalyzer_LoadPackages(t *testing.T) {
	analyzer := NewAnalyzer()
	graph, err := analyzer.LoadPackages("converter-kit/invoke", "converter-kit/temporal")
	require.NoError(t, err)
	require.NotNil(t, graph)

	assert.Contains(t, graph.Packages, "converter-kit/invoke")
	assert.Contains(t, graph.Packages, "converter-kit/temporal")

	assert.Contains(t, graph.Types, TypeID{PkgPath: "converter-kit/invoke", Name: "Table"})
	assert.Contains(t, graph.Types, TypeID{PkgPath: "converter-kit/temporal", Name: "LocalDate"})
	assert.Contains(t, graph.Packages["converter-kit/invoke"].Types, TypeID{PkgPath: "converter-kit/invoke", Name: "Resolver"})
}

func TestAnalyzer_PointerReceivers(t *testing.T) {
	analyzer := NewAnalyzer()
	_, err := analyzer.LoadPackages("converter-kit/invoke")
	require.NoError(t, err)

	table, err := analyzer.GetType("converter-kit/invoke", "Table")
	require.NoError(t, err)
	assert.Equal(t, TypeKindStruct, table.Kind)

	register := methodByName(t, table, "Register")
	assert.True(t, register.PointerReceiver)
	assert.False(t, register.Variadic())
	assert.Empty(t, table.ValueMethods())

	for _, m := range table.Methods {
		assert.NotEqual(t, "add", m.Name, "unexported methods are not listed")
	}

	resolver, err := analyzer.GetType("converter-kit/invoke", "Resolver")
	require.NoError(t, err)
	assert.True(t, methodByName(t, resolver, "Invoke").Variadic())
}

func TestAnalyzer_ValueReceivers(t *testing.T) {
	analyzer := NewAnalyzer()
	_, err := analyzer.LoadPackages("converter-kit/temporal")
	require.NoError(t, err)

	date, err := analyzer.GetType("converter-kit/temporal", "LocalDate")
	require.NoError(t, err)

	names := make([]string, 0, len(date.Methods))
	for _, m := range date.Methods {
		names = append(names, m.Name)
		assert.False(t, m.PointerReceiver, m.Name)
	}

	assert.Equal(t, []string{"In", "String"}, names)
	assert.Len(t, date.ValueMethods(), 2)
}

func TestAnalyzer_GetTypeErrors(t *testing.T) {
	analyzer := NewAnalyzer()
	_, err := analyzer.LoadPackages("converter-kit/convert")
	require.NoError(t, err)

	_, err = analyzer.GetType("converter-kit/convert", "Converter")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interface")

	_, err = analyzer.GetType("converter-kit/convert", "Missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	info, err := analyzer.GetType("converter-kit/convert", "Registry")
	require.NoError(t, err)
	assert.Equal(t, TypeKindStruct, info.Kind)
}

func TestAnalyzer_LoadPackagesError(t *testing.T) {
	analyzer := NewAnalyzer()
	_, err := analyzer.LoadPackages("converter-kit/does-not-exist")
	require.Error(t, err)
}

func TestAnalyzer_GenericTypeSkipped(t *testing.T) {
	pkg := types.NewPackage("example.com/box", "box")
	obj := types.NewTypeName(token.NoPos, pkg, "Box", nil)
	named := types.NewNamed(obj, types.NewStruct(nil, nil), nil)

	param := types.NewTypeParam(types.NewTypeName(token.NoPos, pkg, "T", nil), types.Universe.Lookup("any").Type())
	named.SetTypeParams([]*types.TypeParam{param})

	analyzer := NewAnalyzer()
	info := analyzer.analyzeNamed(named)

	assert.True(t, info.Generic)
	assert.Empty(t, info.Methods)

	diags := analyzer.Diagnostics()
	require.Len(t, diags.Infos, 1)
	assert.Equal(t, "generic_type", diags.Infos[0].Code)
	assert.Equal(t, "example.com/box.Box", diags.Infos[0].Type)
}

func TestSignatureString(t *testing.T) {
	analyzer := NewAnalyzer()
	_, err := analyzer.LoadPackages("converter-kit/invoke", "converter-kit/temporal")
	require.NoError(t, err)

	table, err := analyzer.GetType("converter-kit/invoke", "Table")
	require.NoError(t, err)
	assert.Equal(t, "Register(name string, fn any) error",
		SignatureString(methodByName(t, table, "Register"), "converter-kit/invoke"))
	assert.Equal(t, "MustRegister(name string, fn any) *Table",
		SignatureString(methodByName(t, table, "MustRegister"), "converter-kit/invoke"))

	date, err := analyzer.GetType("converter-kit/temporal", "LocalDate")
	require.NoError(t, err)
	assert.Equal(t, "In(loc *time.Location) time.Time",
		SignatureString(methodByName(t, date, "In"), "converter-kit/temporal"))
}

func TestTypeKind_String(t *testing.T) {
	assert.Equal(t, "struct", TypeKindStruct.String())
	assert.Equal(t, "interface", TypeKindInterface.String())
	assert.Equal(t, "unknown", TypeKindUnknown.String())
}
