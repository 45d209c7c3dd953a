package facility

import (
	"fmt"
	"math/rand"
)

// Random draws n facilities named Dep0..Dep{n−1} with integer coordinates
// in [−90, 90) and risk in [1, 5]. The same seed gives the same set.
func Random(n int, seed int64) ([]Facility, error) {
	if n < 1 {
		return nil, ErrNoFacilities
	}
	rng := rand.New(rand.NewSource(seed))
	out := make([]Facility, n)
	for i := range out {
		out[i] = Facility{
			ID:   fmt.Sprintf("Dep%d", i),
			Lat:  float64(rng.Intn(180) - 90),
			Lon:  float64(rng.Intn(180) - 90),
			Risk: 1 + rng.Intn(5),
		}
	}

	return out, nil
}
