// Package hgb computes the Hahn–Grant dual lower bound of a quadratic
// assignment tensor.
//
// The bound is a dual ascent on the Gilmore–Lawler structure. Every step is a
// cost-preserving transfer: for each assignment π, the original objective
// always equals R′ + Σ C[i][π i][j][π j] with every feasible cell ≥ 0, so the
// accumulated constant R′ never exceeds the optimum.
//
// Algorithm outline:
//  1. Consolidate the working copy, then reduce every leader: solve the
//     (n−1)×(n−1) submatrix attached to (i,k) exactly, add its optimal value
//     to the leader and keep the reduced residuals.
//  2. Solve the n×n leader matrix; R′ grows by its optimum and the reduced
//     leaders are written back. If a permutation exists whose leaders and
//     pair cells are all zero, R′ is the optimum and that permutation is
//     returned as a certificate.
//  3. Spread each positive leader evenly over the rows of its submatrix,
//     zero it, consolidate.
//  4. Re-reduce zero leaders first, then the modified ones; back to 2.
//
// The loop stops on an exactness certificate, on a zero-cost leader matching
// (no further progress), at Options.MaxIterations, or once R′ reaches
// Options.Cutoff. A stall is not an error: R′ is still a valid bound.
//
// Complexity:
//   - Each iteration: n² Hungarian solves of order n−1, O(n⁵) total.
//   - Memory: one private O(n⁴) copy of the input tensor.
package hgb
