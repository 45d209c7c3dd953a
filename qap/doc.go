// Package qap solves the facility-route assignment problem: place n
// facilities on n route positions so that the quadratic objective
//
//	Σ_i Σ_j Σ_k Σ_p D[i][j] · F[i][j][k][p] · X[i][k] · X[j][p]
//
// is minimal, where X is the n×n 0/1 assignment matrix.
//
// Three solvers share one contract (Problem in, Result out):
//
//   - BranchAndBound     — exact. Depth-first search over (facility, position)
//     fixings, pruned by the Hahn–Grant dual bound of package hgb. The bound
//     often certifies a subtree's optimum outright, which ends that branch
//     without enumeration.
//   - BruteForce         — exact. Lexicographic enumeration of all n!
//     permutations; refused above MaxBruteForceSize.
//   - SimulatedAnnealing — heuristic. Pairwise position swaps with Metropolis
//     acceptance and geometric cooling; deterministic for a given seed.
//
// Arithmetic:
//
//	The float objective is scaled by Options.Scale (default 10⁶) and rounded
//	into an int64 tensor (package tensor), so every bound, prune and
//	comparison is integer-exact. Problem.CostTensor refuses scales that could
//	overflow int64 anywhere in the search (ErrScaleOverflow).
//
// Concurrency:
//
//	Single-threaded by default. Options.Workers > 1 evaluates the root
//	branches concurrently; the incumbent is shared through an atomic minimum
//	register. Inputs must not be mutated while a solve is running.
//
// Errors are package sentinels (types.go); match them with errors.Is.
package qap
