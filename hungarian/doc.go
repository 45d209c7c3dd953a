// Package hungarian solves the square linear assignment problem (LAP) exactly
// on non-negative integer cost matrices.
//
// 🚀 What is it for?
//
//	Given an m×m matrix cost[i][j] (row i assigned to column j), find the
//	permutation that minimizes the sum of chosen entries. In lvqap the
//	matcher is the workhorse of the Hahn–Grant bound: it is called once per
//	leader submatrix and once per leader matrix, many times per search node.
//
// ✨ What you get back:
//
//   - Assignment — Assignment[row] = column of an optimal permutation.
//   - Cost       — the optimal total, exact in int64 arithmetic.
//   - Reduced    — the fully reduced matrix cost[i][j] − u[i] − v[j], where
//     u and v are optimal dual potentials. Every entry is ≥ 0, every entry
//     on Assignment is 0, and Σu + Σv == Cost. Callers use Reduced to carry
//     residual cost forward without double counting.
//
// ⚙️ Method:
//
//  1. Row reduction, then column reduction (classic Munkres opening).
//  2. For each row, grow an alternating tree over zero-slack edges and
//     augment along the shortest path; when the tree is stuck, shift the
//     potentials by the minimum uncovered slack. This is the potential form
//     of "subtract the minimum uncovered value from uncovered rows and add it
//     to doubly covered columns" and never needs a greedy zero pick, so ties
//     cannot hide a perfect matching.
//
// Complexity:
//
//   - Time:   O(m³).
//   - Memory: O(m²) for the reduced copy, O(m) for potentials and paths.
//
// Integer inputs keep zero tests exact; floating point costs should be scaled
// by the caller before entering this package.
package hungarian
