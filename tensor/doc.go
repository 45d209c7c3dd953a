// Package tensor holds the integer 4-index cost tensor of a quadratic
// assignment problem and the pure derivations the exact search needs.
//
// Indexing follows the branch-and-bound view of the QAP: the tensor is an
// n²×n² matrix whose row (i,k) means "facility i sits at position k" and
// whose column (j,p) means "facility j sits at position p":
//
//	C[i][k][j][p]   pair cost, paid iff both (i,k) and (j,p) are chosen
//	C[i][k][i][k]   leader cell, the linear cost of choosing (i,k)
//
// A cell is feasible when (i == j) == (k == p); the rest can never be realised
// by a permutation and are ignored by every consumer.
//
// Provided operations:
//
//   - Consolidate — fold each mirror pair into the lower facility index so that
//     independent submatrix sums never count an edge twice.
//   - Fix         — derive the (n−1)-size tensor implied by fixing one pair,
//     folding the fixed pair's cross terms into the new leaders.
//   - Expand      — map a reduced assignment back to the parent's indices.
//   - Cost        — the objective Σ C[i][π i][j][π j] of an assignment.
//
// Fix always allocates; nothing in this package shares storage between a
// parent and a child tensor.
package tensor
