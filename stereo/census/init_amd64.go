//go:build amd64 && !purego

package census

import (
	_ "github.com/cwbudde/algo-sgm/internal/arch/array128" // register SSSE3 backend
	_ "github.com/cwbudde/algo-sgm/internal/arch/array256" // register AVX2 backend
	_ "github.com/cwbudde/algo-sgm/internal/arch/generic"  // register generic backend
	_ "github.com/cwbudde/algo-sgm/internal/arch/registry" // initialize backend registry
)
