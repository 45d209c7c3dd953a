package qap

// AssignmentMatrix expands assign (facility → position) into the n×n 0/1
// matrix X with X[i][assign[i]] = 1.
//
// Errors: ErrInvalidAssignment.
func AssignmentMatrix(assign []int) ([][]int, error) {
	n := len(assign)
	if err := ValidateAssignment(assign, n); err != nil {
		return nil, err
	}
	x := make([][]int, n)
	for i, k := range assign {
		x[i] = make([]int, n)
		x[i][k] = 1
	}

	return x, nil
}

// AssignmentFromMatrix is the inverse of AssignmentMatrix. X must be square
// with entries in {0,1} and exactly one 1 per row and per column.
//
// Errors: ErrInvalidAssignment.
func AssignmentFromMatrix(x [][]int) ([]int, error) {
	var (
		n      = len(x)
		assign = make([]int, n)
		i, k   int
		ones   int
	)
	for i = 0; i < n; i++ {
		if len(x[i]) != n {
			return nil, ErrInvalidAssignment
		}
		ones = 0
		for k = 0; k < n; k++ {
			switch x[i][k] {
			case 0:
			case 1:
				ones++
				assign[i] = k
			default:
				return nil, ErrInvalidAssignment
			}
		}
		if ones != 1 {
			return nil, ErrInvalidAssignment
		}
	}
	// Unique positions give unit column sums.
	if err := ValidateAssignment(assign, n); err != nil {
		return nil, err
	}

	return assign, nil
}
