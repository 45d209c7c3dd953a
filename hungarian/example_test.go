package hungarian_test

import (
	"fmt"

	"github.com/katalvlaran/lvqap/hungarian"
)

// ExampleSolve assigns three crews to three depots.
func ExampleSolve() {
	cost := [][]int64{
		{4, 1, 3},
		{2, 0, 5},
		{3, 2, 2},
	}
	res, err := hungarian.Solve(cost)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fmt.Println("assignment:", res.Assignment)
	fmt.Println("cost:", res.Cost)
	// Output:
	// assignment: [1 0 2]
	// cost: 5
}
