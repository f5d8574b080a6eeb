package validation

import (
	"regexp"
	"strings"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func PositiveFloat(field string, val float64, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

func RangeFloat(field string, val, minVal, maxVal float64, v Violations) {
	if val < minVal || val > maxVal {
		v[field] = "out_of_range"
	}
}

var (
	timeRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// TimeHHMM accepts zero-padded 24h clock times. The padding matters:
// slot comparisons are done lexically on these strings.
func TimeHHMM(field, value string, v Violations) {
	if !timeRe.MatchString(value) {
		v[field] = "must_be_hh_mm"
	}
}

// DateISO accepts YYYY-MM-DD calendar dates.
func DateISO(field, value string, v Violations) {
	if !dateRe.MatchString(value) {
		v[field] = "must_be_yyyy_mm_dd"
	}
}
