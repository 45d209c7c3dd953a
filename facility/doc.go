// Package facility builds QAP instances from a set of facilities.
//
// A Facility has an ID, geographic coordinates and a positive integer risk.
// An Instance derives from a facility list:
//
//	D[i][j]       = unitCost · distance(i, j)          (travel-cost matrix)
//	F[i][j][k][p] = risk(facilities, i, j, k, p)       (interaction tensor)
//
// Both the distance and the risk policy are replaceable functions:
//
//   - Haversine (default): great-circle kilometres. Euclidean: plane
//     distance over raw coordinates.
//   - SuccessorRisk (default): 1/(risk[j]·p) when j directly follows i
//     (p = k+1). PredecessorRisk: 1/(risk[i]·k) when i directly follows j
//     (k = p+1).
//
// Instances are immutable: to recompute after changing facilities, build a
// new one. Facility lists are read from CSV (id,lat,lon,risk) or JSON and
// written back as CSV; Random draws a reproducible synthetic set.
package facility
