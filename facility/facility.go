package facility

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNoFacilities is returned for an empty facility list.
	ErrNoFacilities = errors.New("facility: no facilities")

	// ErrBadRisk is returned for a risk below 1.
	ErrBadRisk = errors.New("facility: risk must be a positive integer")

	// ErrBadCoordinate is returned for a latitude outside [−90, 90], a
	// longitude outside [−180, 180], or a non-finite value.
	ErrBadCoordinate = errors.New("facility: coordinate out of range")

	// ErrBadRecord is returned for malformed CSV rows or JSON objects.
	ErrBadRecord = errors.New("facility: malformed record")

	// ErrBadOption is returned for invalid instance options.
	ErrBadOption = errors.New("facility: invalid option")
)

// Facility is one site to be placed on the route.
type Facility struct {
	ID   string  `json:"id" yaml:"id"`
	Lat  float64 `json:"lat" yaml:"lat"`
	Lon  float64 `json:"lon" yaml:"lon"`
	Risk int     `json:"risk" yaml:"risk"`
}

// Validate checks coordinate ranges and risk.
func (f Facility) Validate() error {
	if math.IsNaN(f.Lat) || math.IsNaN(f.Lon) || f.Lat < -90 || f.Lat > 90 || f.Lon < -180 || f.Lon > 180 {
		return fmt.Errorf("facility %q: %w", f.ID, ErrBadCoordinate)
	}
	if f.Risk < 1 {
		return fmt.Errorf("facility %q: %w", f.ID, ErrBadRisk)
	}

	return nil
}

// ValidateAll checks a whole list: non-empty, every facility valid, IDs
// non-empty and unique.
func ValidateAll(fs []Facility) error {
	if len(fs) == 0 {
		return ErrNoFacilities
	}
	seen := make(map[string]struct{}, len(fs))
	for i, f := range fs {
		if f.ID == "" {
			return fmt.Errorf("facility #%d: empty id: %w", i, ErrBadRecord)
		}
		if _, dup := seen[f.ID]; dup {
			return fmt.Errorf("facility %q: duplicate id: %w", f.ID, ErrBadRecord)
		}
		seen[f.ID] = struct{}{}
		if err := f.Validate(); err != nil {
			return err
		}
	}

	return nil
}
