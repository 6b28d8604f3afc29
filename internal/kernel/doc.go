// Package kernel implements the census and cost-aggregation engines once,
// generic over the register abstraction in internal/simd.
//
// Backends instantiate [Census] and [Aggregation] with their own container
// types at registration time; the public stereo packages only see the
// resulting function values through the backend registry.
package kernel
