package assistant

import (
	"context"
	"errors"
	"testing"
)

func TestParseKm(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"42", 42, true},
		{"12.5", 12.5, true},
		{"12,5", 12.5, true},
		{"aproximadamente 18 km", 18, true},
		{"nao sei", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, ok := parseKm(c.in)
		if ok != c.ok || got != c.want {
			t.Fatalf("parseKm(%q) = %v,%v want %v,%v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestUnconfiguredClient(t *testing.T) {
	c := New("")
	if c.Enabled() {
		t.Fatal("client without key must be disabled")
	}
	if _, err := c.Ask(context.Background(), "q", ""); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if _, err := c.EstimateDistanceKm(context.Background(), "a", "b"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
