package discovery

import (
	"os"
	"path"
	"path/filepath"

	"golang.org/x/mod/modfile"
)

// PackageResolver maps directories to Go import paths
type PackageResolver struct {
	modRoot string
	modPath string
	root    string
}

// NewPackageResolver locates the go.mod enclosing root. Without one,
// package paths are directories relative to root.
func NewPackageResolver(root string) *PackageResolver {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}
	r := &PackageResolver{root: abs}

	for dir := abs; ; dir = filepath.Dir(dir) {
		data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
		if err == nil {
			if modPath := modfile.ModulePath(data); modPath != "" {
				r.modRoot = dir
				r.modPath = modPath
			}
			break
		}
		if parent := filepath.Dir(dir); parent == dir {
			break
		}
	}
	return r
}

// ModulePath returns the module path, or "" when no go.mod was found
func (r *PackageResolver) ModulePath() string {
	return r.modPath
}

// PackagePath returns the import path of the package in dir
func (r *PackageResolver) PackagePath(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}

	base, prefix := r.root, ""
	if r.modPath != "" {
		base, prefix = r.modRoot, r.modPath
	}

	rel, err := filepath.Rel(base, abs)
	if err != nil {
		rel = filepath.Base(abs)
	}
	rel = filepath.ToSlash(rel)
	if rel == "." {
		rel = ""
	}

	switch {
	case prefix == "" && rel == "":
		return filepath.Base(abs)
	case prefix == "":
		return rel
	case rel == "":
		return prefix
	default:
		return path.Join(prefix, rel)
	}
}
