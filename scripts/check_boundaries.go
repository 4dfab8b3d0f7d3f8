package main

import (
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Import-boundary linter for the vertical slices under contexts/.
// Rules, applied to non-test files only:
//   - no slice imports another slice
//   - domain imports its own domain packages and the stdlib, nothing else
//   - application adds its own application and ports packages to that set
// Adapters, transport and module.go are unconstrained beyond the first rule.

type violation struct {
	File   string
	Line   int
	Import string
	Rule   string
}

// layerAllow maps a slice layer to the module-relative suffixes it may
// import from its own slice. Layers absent from the map are unconstrained.
var layerAllow = map[string][]string{
	"domain":      {"/domain"},
	"application": {"/application", "/domain", "/ports"},
}

func main() {
	violations := lintTree("contexts")
	if len(violations) == 0 {
		fmt.Println("boundary checks passed")
		return
	}

	sort.Slice(violations, func(i, j int) bool {
		if violations[i].File != violations[j].File {
			return violations[i].File < violations[j].File
		}
		if violations[i].Line != violations[j].Line {
			return violations[i].Line < violations[j].Line
		}
		return violations[i].Import < violations[j].Import
	})

	fmt.Println("boundary violations found:")
	for _, v := range violations {
		fmt.Printf("- %s:%d imports %q (%s)\n", v.File, v.Line, v.Import, v.Rule)
	}
	os.Exit(1)
}

func lintTree(root string) []violation {
	var violations []violation

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}

		normalized := filepath.ToSlash(path)
		parts := strings.Split(normalized, "/")
		if len(parts) < 4 || parts[0] != "contexts" {
			return nil
		}

		slicePrefix := fmt.Sprintf("foreman/contexts/%s/%s", parts[1], parts[2])
		violations = append(violations, lintFile(path, normalized, parts[3], slicePrefix)...)
		return nil
	})

	return violations
}

func lintFile(path string, normalizedPath string, layer string, slicePrefix string) []violation {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
	if err != nil {
		return []violation{{File: normalizedPath, Line: 1, Rule: "file must parse"}}
	}

	var violations []violation
	for _, imp := range file.Imports {
		importPath := strings.Trim(imp.Path.Value, "\"")
		line := fset.Position(imp.Pos()).Line

		if strings.HasPrefix(importPath, "foreman/contexts/") && !hasPrefix(importPath, slicePrefix) {
			violations = append(violations, violation{
				File:   normalizedPath,
				Line:   line,
				Import: importPath,
				Rule:   "cross-module imports are forbidden",
			})
		}

		allow, constrained := layerAllow[layer]
		if !constrained {
			continue
		}
		if strings.Contains(importPath, "/adapters/") {
			violations = append(violations, violation{
				File:   normalizedPath,
				Line:   line,
				Import: importPath,
				Rule:   layer + " must not import adapters",
			})
		}
		if strings.HasPrefix(importPath, "foreman/internal/") {
			violations = append(violations, violation{
				File:   normalizedPath,
				Line:   line,
				Import: importPath,
				Rule:   layer + " must not import runtime infrastructure",
			})
		}
		if !isStdlib(importPath) && !withinSlice(importPath, slicePrefix, allow) {
			violations = append(violations, violation{
				File:   normalizedPath,
				Line:   line,
				Import: importPath,
				Rule:   layer + " import is outside explicit allowlist",
			})
		}
	}
	return violations
}

func withinSlice(importPath string, slicePrefix string, allowedSuffixes []string) bool {
	for _, suffix := range allowedSuffixes {
		if hasPrefix(importPath, slicePrefix+suffix) {
			return true
		}
	}
	return false
}

func hasPrefix(path string, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// isStdlib treats any dotless first path element as the standard library.
func isStdlib(importPath string) bool {
	if strings.HasPrefix(importPath, "foreman/") {
		return false
	}
	first := importPath
	if idx := strings.Index(first, "/"); idx != -1 {
		first = first[:idx]
	}
	return !strings.Contains(first, ".")
}
