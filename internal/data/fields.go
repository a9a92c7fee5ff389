package data

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidNumber is returned when a numeric field holds neither a JSON
// number nor a quoted number.
var ErrInvalidNumber = errors.New("invalid numeric value")

// Year is a release year. Browser forms submit numbers as strings, so both
// 2020 and "2020" are accepted on input.
type Year int32

// UnmarshalJSON accepts a JSON number or a JSON string containing one.
func (y *Year) UnmarshalJSON(jsonValue []byte) error {
	raw := unquote(jsonValue)

	i, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return ErrInvalidNumber
	}

	*y = Year(i)
	return nil
}

// Rating is a decimal score such as 7.5. Like Year it tolerates quoted input.
type Rating float64

// ParseRating parses a decimal rating. NaN and infinities are rejected since
// they cannot be written back out as JSON.
func ParseRating(s string) (Rating, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrInvalidNumber
	}
	return Rating(f), nil
}

// UnmarshalJSON accepts a JSON number or a JSON string containing one.
func (r *Rating) UnmarshalJSON(jsonValue []byte) error {
	f, err := ParseRating(unquote(jsonValue))
	if err != nil {
		return err
	}

	*r = f
	return nil
}

func unquote(jsonValue []byte) string {
	s := string(jsonValue)
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	return strings.TrimSpace(s)
}
