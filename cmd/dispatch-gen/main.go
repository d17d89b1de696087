// Command dispatch-gen generates static dispatch tables for invoke.Resolver.
//
// Usage:
//
//	dispatch-gen -pkg ./temporal -type LocalDate,LocalTime [-out dir] [-package name -package-path path] [-suffix Table]
//
// The generated WithXTables option replaces reflective method enumeration
// for X and *X.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"converter-kit/internal/analyze"
	"converter-kit/internal/gen"
	"converter-kit/logging"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("dispatch-gen", flag.ContinueOnError)

	pattern := fs.String("pkg", "", "package pattern to load (required)")
	typeList := fs.String("type", "", "comma-separated type names (required)")
	cfg := gen.DefaultGeneratorConfig()
	fs.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "output directory")
	fs.StringVar(&cfg.PackageName, "package", "", "generated package name (default: the type's package)")
	fs.StringVar(&cfg.PackagePath, "package-path", "", "import path of the generated package")
	fs.StringVar(&cfg.FuncSuffix, "suffix", cfg.FuncSuffix, "suffix of the generated table functions")
	noComments := fs.Bool("no-comments", false, "omit method signature comments")
	verbose := fs.Bool("v", false, "log skipped types and methods")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *pattern == "" || *typeList == "" {
		fs.Usage()
		return errors.New("-pkg and -type are required")
	}

	cfg.GenerateComments = !*noComments

	level := logging.LevelInfo
	if *verbose {
		level = logging.LevelDebug
	}

	logger := logging.NewZapLogger(level, "console", os.Stderr)

	analyzer := analyze.NewAnalyzer()

	graph, err := analyzer.LoadPackages(*pattern)
	if err != nil {
		return err
	}

	for _, d := range analyzer.Diagnostics().All() {
		logger.Debug("analyze", "diagnostic", d.String())
	}

	ids, err := lookupTypes(graph, strings.Split(*typeList, ","))
	if err != nil {
		return err
	}

	generator := gen.NewGenerator(cfg)

	files, err := generator.Generate(graph, ids...)
	if err != nil {
		return err
	}

	for _, d := range generator.Diagnostics().All() {
		logger.Warn("skipped", "diagnostic", d.String())
	}

	if err := gen.WriteFiles(files, cfg.OutputDir); err != nil {
		return err
	}

	for _, f := range files {
		logger.Info("generated", "file", f.Filename, "dir", cfg.OutputDir)
	}

	return nil
}

// lookupTypes finds each name in the loaded packages. A name present in
// more than one package is ambiguous.
func lookupTypes(graph *analyze.TypeGraph, names []string) ([]analyze.TypeID, error) {
	paths := make([]string, 0, len(graph.Packages))
	for path := range graph.Packages {
		paths = append(paths, path)
	}

	sort.Strings(paths)

	var ids []analyze.TypeID

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		var found []analyze.TypeID

		for _, path := range paths {
			id := analyze.TypeID{PkgPath: path, Name: name}
			if graph.GetType(id) != nil {
				found = append(found, id)
			}
		}

		switch len(found) {
		case 0:
			return nil, fmt.Errorf("type %s not found in %s", name, strings.Join(paths, ", "))
		case 1:
			ids = append(ids, found[0])
		default:
			return nil, fmt.Errorf("type %s is ambiguous: found in %d packages", name, len(found))
		}
	}

	return ids, nil
}
