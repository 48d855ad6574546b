package utils

import (
	"testing"
	"time"
)

func TestValidatePhone(t *testing.T) {
	cases := []struct {
		phone string
		want  bool
	}{
		{"+919876543210", true},
		{"9876543210", true},
		{"98765 43210", true},
		{"(987) 654-3210", true},
		{"0123", false},
		{"987654321", false},
		{"98765432101", false},
		{"+14155550123", false},
		{"not-a-number", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := ValidatePhone(tc.phone); got != tc.want {
			t.Errorf("ValidatePhone(%q) = %v, want %v", tc.phone, got, tc.want)
		}
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hash == "hunter22" {
		t.Fatalf("expected hash to differ from plaintext")
	}
	if !CheckPasswordHash("hunter22", hash) {
		t.Fatalf("expected matching password to verify")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Fatalf("expected wrong password to fail")
	}
}

func TestEndOfDay(t *testing.T) {
	in := time.Date(2026, 8, 15, 9, 30, 0, 0, time.UTC)
	want := time.Date(2026, 8, 15, 23, 59, 59, 0, time.UTC)
	if got := EndOfDay(in); !got.Equal(want) {
		t.Fatalf("EndOfDay(%v) = %v, want %v", in, got, want)
	}
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2026, 8, 1, 23, 50, 0, 0, time.UTC)
	end := time.Date(2026, 8, 15, 0, 10, 0, 0, time.UTC)
	if got := DaysBetween(start, end); got != 14 {
		t.Fatalf("expected 14 days got %d", got)
	}
	if got := DaysBetween(end, end); got != 0 {
		t.Fatalf("expected 0 days got %d", got)
	}
}
