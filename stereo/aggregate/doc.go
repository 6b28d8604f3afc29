// Package aggregate computes Hamming matching costs between two census
// descriptor fields.
//
// The unit of work is a 16x16 cost patch: 16 left descriptors against 32
// right descriptors give, for every disparity d and pixel l in [0,16),
//
//	cost[d][l] = popcount(left[l] ^ right[l+16-d])
//
// so right descriptor 16+l is the zero-disparity partner of left[l]. Costs
// lie in 0..31. [AggregateEdgePatch] is used where the right group reaches
// past the image origin; it reports 0 for every entry with l < d.
//
// [Builder] tiles whole descriptor fields into patches and fills a [Volume]
// indexed (y, d, x). Pixels whose match would lie left of the image (x < d)
// cost 0.
//
// # Semi-global matching
//
// The volume is the input of the semi-global path recursion, which this
// package does not implement. Along each path direction r,
//
//	L_r(p, d) = C(p, d) + min(L_r(p-r, d),
//	                          L_r(p-r, d-1) + P1,
//	                          L_r(p-r, d+1) + P1,
//	                          min_k L_r(p-r, k) + P2) - min_k L_r(p-r, k)
//
// Subtracting the previous minimum keeps L_r bounded by C + P2, so a
// recursion over 8-bit costs fits in 16-bit accumulators. Rows of
// [Volume.Row] are laid out for that sweep: one contiguous run of Width
// costs per (y, d).
package aggregate
