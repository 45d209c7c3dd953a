package facility

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// csvHeader is the column order written by WriteCSV.
var csvHeader = []string{"id", "lat", "lon", "risk"}

// ReadCSV parses a facility list with a header row. Columns are matched by
// name (id, lat, lon, risk; "risco" is accepted for risk) in any order.
//
// Errors: ErrBadRecord for missing columns or unparsable values, plus the
// ValidateAll sentinels.
func ReadCSV(r io.Reader) ([]Facility, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoFacilities
	}
	if err != nil {
		return nil, fmt.Errorf("facility: csv header: %w", err)
	}

	col := map[string]int{}
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		if h == "risco" {
			h = "risk"
		}
		col[h] = i
	}
	for _, name := range csvHeader {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("facility: csv column %q missing: %w", name, ErrBadRecord)
		}
	}

	var out []Facility
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("facility: csv line %d: %w", line, err)
		}
		f, err := parseRecord(rec, col)
		if err != nil {
			return nil, fmt.Errorf("facility: csv line %d: %w", line, err)
		}
		out = append(out, f)
	}
	if err = ValidateAll(out); err != nil {
		return nil, err
	}

	return out, nil
}

func parseRecord(rec []string, col map[string]int) (Facility, error) {
	var (
		f   Facility
		err error
	)
	f.ID = strings.TrimSpace(rec[col["id"]])
	if f.Lat, err = strconv.ParseFloat(strings.TrimSpace(rec[col["lat"]]), 64); err != nil {
		return Facility{}, fmt.Errorf("lat: %w", ErrBadRecord)
	}
	if f.Lon, err = strconv.ParseFloat(strings.TrimSpace(rec[col["lon"]]), 64); err != nil {
		return Facility{}, fmt.Errorf("lon: %w", ErrBadRecord)
	}
	if f.Risk, err = strconv.Atoi(strings.TrimSpace(rec[col["risk"]])); err != nil {
		return Facility{}, fmt.Errorf("risk: %w", ErrBadRecord)
	}

	return f, nil
}

// WriteCSV writes fs with the header id,lat,lon,risk.
func WriteCSV(w io.Writer, fs []Facility) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, f := range fs {
		rec := []string{
			f.ID,
			strconv.FormatFloat(f.Lat, 'f', -1, 64),
			strconv.FormatFloat(f.Lon, 'f', -1, 64),
			strconv.Itoa(f.Risk),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

// wholeNumber reports whether r is a JSON number with no fractional part
// that fits in an int32. ReadCSV rejects fractions through strconv.Atoi.
func wholeNumber(r gjson.Result) bool {
	if r.Type != gjson.Number {
		return false
	}
	f := r.Float()

	return f == math.Trunc(f) && f >= math.MinInt32 && f <= math.MaxInt32
}

// ParseJSON reads facilities from either a top-level array or an object
// with a "facilities" array. Each element needs id, lat, lon and risk
// ("risco" is accepted); unknown fields are ignored. Risk must be a whole
// number: 2.7 is rejected rather than truncated.
//
// Errors: ErrBadRecord for invalid JSON, missing fields or a fractional
// risk, plus the
// ValidateAll sentinels.
func ParseJSON(data []byte) ([]Facility, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("facility: invalid json: %w", ErrBadRecord)
	}
	list := gjson.ParseBytes(data)
	if !list.IsArray() {
		list = list.Get("facilities")
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("facility: json has no facility array: %w", ErrBadRecord)
	}

	var (
		out    []Facility
		idx    int
		badIdx = -1
	)
	list.ForEach(func(_, v gjson.Result) bool {
		id, lat, lon := v.Get("id"), v.Get("lat"), v.Get("lon")
		risk := v.Get("risk")
		if !risk.Exists() {
			risk = v.Get("risco")
		}
		if !id.Exists() || lat.Type != gjson.Number || lon.Type != gjson.Number || !wholeNumber(risk) {
			badIdx = idx

			return false
		}
		out = append(out, Facility{ID: id.String(), Lat: lat.Float(), Lon: lon.Float(), Risk: int(risk.Int())})
		idx++

		return true
	})
	if badIdx >= 0 {
		return nil, fmt.Errorf("facility: json element %d: %w", badIdx, ErrBadRecord)
	}
	if err := ValidateAll(out); err != nil {
		return nil, err
	}

	return out, nil
}
