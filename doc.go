// Package lvqap is an exact solver for facility-route assignment: place n
// facilities on n route positions so that travel cost weighted by risk is
// minimal. The objective is a Quadratic Assignment Problem (QAP).
//
// 🚀 What is inside?
//
//   - Exact search: branch-and-bound over shrinking cost tensors
//   - Lower bound: Hahn–Grant dual ascent with an exactness certificate
//   - Matching: integer Hungarian algorithm with reduced costs
//   - Baselines: lexicographic brute force and simulated annealing
//   - Problem model: facilities, haversine/euclidean distance, risk policies
//   - Tooling: benchmark suite, Prometheus metrics, the lvqap command
//
// ✨ Guarantees
//
//   - Integer-exact: every bound is computed on scaled int64 costs
//   - Provably optimal: a child is pruned only when its bound meets the incumbent
//   - Deterministic: the same input and options give the same assignment
//
// Packages, leaf first:
//
//	matrix/    — dense float matrix for travel costs + validators
//	hungarian/ — linear assignment (Kuhn–Munkres with potentials)
//	tensor/    — 4-index cost tensor: consolidate, fix a pair, expand
//	hgb/       — Hahn–Grant lower bound
//	qap/       — Problem, Options, Solve and the three solvers
//	facility/  — facilities → (D, F), CSV/JSON instances
//	metrics/   — qap.Observer exporting Prometheus metrics
//	cmd/lvqap  — solve, bench and generate from the command line
//
// Quick example, three facilities on a line:
//
//	A───C───B
//
//	fs, _ := facility.ReadCSV(strings.NewReader("id,lat,lon,risk\nA,0,0,1\nB,0,2,1\nC,0,1,1\n"))
//	in, _ := facility.NewInstance(fs, facility.WithDistance(facility.Euclidean))
//	res, _ := in.Solve(qap.DefaultOptions())
//	route, _ := in.RouteString(res.Assignment) // "A -> C -> B" or its reverse
//
//	go install github.com/katalvlaran/lvqap/cmd/lvqap@latest
package lvqap
