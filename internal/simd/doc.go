// Package simd defines the register abstraction shared by the census and
// cost-aggregation kernels.
//
// A backend models one vector-register width with a small set of fixed-size
// lane containers and the primitive operations listed in [Ops]. The kernels in
// internal/kernel are written once against [Ops] and instantiated per backend
// with Go generics.
//
// # Containers
//
//   - X1: byte lanes, one lane per output pixel. Used to accumulate the eight
//     comparison bits of one column pair and, after [Ops.Zip4], to carry
//     packed descriptors.
//   - X2: two interleaved image rows. Lo holds the near columns of both rows
//     and Hi the mirrored columns, so one compare covers a symmetric pair.
//   - P1: a predicate with one bit per X1 lane.
//   - W: a group of 16 descriptors spread over registers of 4 (128-bit) or
//     8 (256-bit) descriptors.
//
// # Cost rows
//
// Aggregation always produces 16 costs per output row regardless of the
// register width, so [CostRow] and its masking helpers are shared.
package simd
