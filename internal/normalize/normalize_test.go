package normalize

import (
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  John   Smith ", "john smith"},
		{"<b>John</b> Smith", "john smith"},
		{"O'Brien, Mary-Jane", "o brien mary jane"},
		{"JOSÉ  GARCÍA", "josé garcía"},
		{"", ""},
		{"<div></div>", ""},
		{"---", ""},
	}

	for _, c := range cases {
		if got := Key(c.in); got != c.want {
			t.Fatalf("Key(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestDate(t *testing.T) {
	if got := Date("10/06/2025"); got == nil || got.Month() != time.October || got.Day() != 6 {
		t.Fatalf("unexpected date for 10/06/2025: %v", got)
	}
	if got := Date("2025-10-06"); got == nil || got.Year() != 2025 {
		t.Fatalf("unexpected date for 2025-10-06: %v", got)
	}
	if got := Date("2025-10-06 00:00:00"); got == nil || got.Day() != 6 {
		t.Fatalf("time suffix should be tolerated, got %v", got)
	}
	if got := Date("not a date"); got != nil {
		t.Fatalf("expected nil for junk input, got %v", got)
	}
	if got := Date(""); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
}

func TestSalary(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"$72,500", 72500},
		{"68000", 68000},
		{"68,000.50", 68000.50},
		{"TBD", 0},
		{"", 0},
		{"-100", 0},
	}

	for _, c := range cases {
		if got := Salary(c.in); got != c.want {
			t.Fatalf("Salary(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2025, 10, 6, 8, 0, 0, 0, time.UTC)
	b := time.Date(2025, 10, 6, 23, 30, 0, 0, time.UTC)
	c := time.Date(2025, 10, 7, 0, 0, 0, 0, time.UTC)

	if !SameDay(&a, &b) {
		t.Fatal("same calendar day should match regardless of time")
	}
	if SameDay(&a, &c) {
		t.Fatal("different days should not match")
	}
	if SameDay(nil, &a) || SameDay(&a, nil) {
		t.Fatal("missing dates never corroborate")
	}
}

func TestSameSite(t *testing.T) {
	if !SameSite("Delta Air Lines - ATL", "delta air lines") {
		t.Fatal("substring in either direction should match")
	}
	if !SameSite("msp", "Delta - MSP") {
		t.Fatal("short side contained in long side should match")
	}
	if SameSite("", "Delta - MSP") || SameSite("Delta", "") {
		t.Fatal("empty sites never corroborate")
	}
	if SameSite("Boeing Everett", "Delta ATL") {
		t.Fatal("unrelated sites should not match")
	}
}
