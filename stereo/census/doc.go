// Package census computes census-transform descriptors for stereo matching.
//
// Each interior pixel of an 8-bit image gets a 31-bit descriptor built from
// the 9x7 patch around it. Every bit compares one pixel of the patch with
// its point mirror through the centre: for column offsets dx in 0..3 and
// rows taken in the order 0, 2, 4, 6, 1, 3, 5, bit 8*dx+p is set when
// P(dx, y) < P(8-dx, 6-y). Bits 7, 15 and 23 compare the centre column
// vertically for the row pairs (0,6), (2,4) and (1,5). Bit 31 is always 0.
//
// A width x height image yields a (width-8) x (height-6) descriptor field;
// field pixel (x, y) describes image pixel (x+4, y+3).
//
// [Extract] runs the fastest backend for the host CPU, selected once per
// process. [ExtractParallel] splits the work into row bands. [Transform]
// owns its output buffer and reuses it across frames.
package census
