package validation

import "testing"

func TestRequired(t *testing.T) {
	v := Violations{}
	Required("name", "  ", v)
	Required("city", "Curitiba", v)
	if v["name"] != "required" {
		t.Fatalf("expected name violation, got %v", v)
	}
	if _, ok := v["city"]; ok {
		t.Fatalf("city should pass, got %v", v)
	}
}

func TestTimeHHMM(t *testing.T) {
	cases := map[string]bool{
		"09:00": true,
		"23:59": true,
		"00:00": true,
		"9:00":  false,
		"24:00": false,
		"12:60": false,
		"":      false,
	}
	for in, ok := range cases {
		v := Violations{}
		TimeHHMM("startTime", in, v)
		if ok != v.Empty() {
			t.Fatalf("%q: expected ok=%v, violations=%v", in, ok, v)
		}
	}
}

func TestDateISO(t *testing.T) {
	v := Violations{}
	DateISO("date", "2026-09-10", v)
	if !v.Empty() {
		t.Fatalf("valid date rejected: %v", v)
	}
	DateISO("date", "10/09/2026", v)
	if v["date"] != "must_be_yyyy_mm_dd" {
		t.Fatalf("expected date violation, got %v", v)
	}
}
