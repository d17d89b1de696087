package analyze

import (
	"go/types"
	"strings"
)

// SignatureString renders a method signature with package names relative to
// pkgPath, e.g. "Add(delta int) (int, error)".
func SignatureString(m MethodInfo, pkgPath string) string {
	qualifier := func(p *types.Package) string {
		if p.Path() == pkgPath {
			return ""
		}

		return p.Name()
	}

	sig := types.TypeString(m.Signature, qualifier)

	return m.Name + strings.TrimPrefix(sig, "func")
}
