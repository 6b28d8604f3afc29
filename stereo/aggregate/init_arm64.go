//go:build arm64 && !purego

package aggregate

import (
	_ "github.com/cwbudde/algo-sgm/internal/arch/array128"
	_ "github.com/cwbudde/algo-sgm/internal/arch/generic"
	_ "github.com/cwbudde/algo-sgm/internal/arch/registry"
)
