//go:build purego || (!amd64 && !arm64)

package aggregate

import (
	_ "github.com/cwbudde/algo-sgm/internal/arch/generic"
	_ "github.com/cwbudde/algo-sgm/internal/arch/registry"
)
