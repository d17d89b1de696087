package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"converter-kit/internal/analyze"
)

func TestLookupTypes(t *testing.T) {
	graph := analyze.NewTypeGraph()
	for _, id := range []analyze.TypeID{
		{PkgPath: "example.com/a", Name: "Counter"},
		{PkgPath: "example.com/a", Name: "Shared"},
		{PkgPath: "example.com/b", Name: "Shared"},
	} {
		graph.Types[id] = &analyze.TypeInfo{ID: id}
		graph.Packages[id.PkgPath] = &analyze.PackageInfo{Path: id.PkgPath}
	}

	ids, err := lookupTypes(graph, []string{" Counter", ""})
	require.NoError(t, err)
	assert.Equal(t, []analyze.TypeID{{PkgPath: "example.com/a", Name: "Counter"}}, ids)

	_, err = lookupTypes(graph, []string{"Shared"})
	require.ErrorContains(t, err, "ambiguous")

	_, err = lookupTypes(graph, []string{"Missing"})
	require.ErrorContains(t, err, "not found")
}

func TestRun_RequiresFlags(t *testing.T) {
	err := run([]string{"-pkg", "converter-kit/temporal"})
	require.Error(t, err)
}

func TestRun_GeneratesTable(t *testing.T) {
	dir := t.TempDir()

	err := run([]string{
		"-pkg", "converter-kit/temporal",
		"-type", "LocalDate",
		"-out", dir,
		"-package", "tables",
		"-package-path", "example.com/tables",
	})
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "localdate_dispatch.go"))
	require.NoError(t, err)
	assert.Contains(t, string(content), `t.MustRegisterMethod("In", temporal.LocalDate.In)`)
	assert.Contains(t, string(content), "// In(loc *time.Location) time.Time")
}
