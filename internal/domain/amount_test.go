package domain

import (
	"errors"
	"math/big"
	"testing"
)

func TestParseUnits(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		decimals int
		want     string
		wantErr  bool
	}{
		{name: "whole", in: "5", decimals: 18, want: "5000000000000000000"},
		{name: "fraction", in: "1.5", decimals: 18, want: "1500000000000000000"},
		{name: "sub unit", in: "0.000000000000000001", decimals: 18, want: "1"},
		{name: "leading dot", in: ".5", decimals: 2, want: "50"},
		{name: "zero", in: "0", decimals: 18, want: "0"},
		{name: "zero scale", in: "42", decimals: 0, want: "42"},
		{name: "trims space", in: " 2.25 ", decimals: 2, want: "225"},
		{name: "negative rejected", in: "-1", decimals: 18, wantErr: true},
		{name: "plus sign rejected", in: "+1", decimals: 18, wantErr: true},
		{name: "too fine rejected", in: "0.001", decimals: 2, wantErr: true},
		{name: "empty rejected", in: "", decimals: 18, wantErr: true},
		{name: "garbage rejected", in: "1.2.3", decimals: 18, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseUnits(tc.in, tc.decimals)
			if tc.wantErr {
				if !errors.Is(err, ErrAmountInvalid) {
					t.Fatalf("ParseUnits(%q) error = %v, want ErrAmountInvalid", tc.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseUnits(%q) error = %v", tc.in, err)
			}
			if got.String() != tc.want {
				t.Fatalf("ParseUnits(%q) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestFormatUnits(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		decimals int
		want     string
	}{
		{name: "one unit", in: "1000000000000000000", decimals: 18, want: "1.0"},
		{name: "fraction kept", in: "1500000000000000000", decimals: 18, want: "1.5"},
		{name: "sub unit", in: "1", decimals: 18, want: "0.000000000000000001"},
		{name: "zero", in: "0", decimals: 18, want: "0.0"},
		{name: "zero scale", in: "42", decimals: 0, want: "42"},
		{name: "negative", in: "-2500000000000000000", decimals: 18, want: "-2.5"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, ok := new(big.Int).SetString(tc.in, 10)
			if !ok {
				t.Fatalf("bad fixture %q", tc.in)
			}
			if got := FormatUnits(v, tc.decimals); got != tc.want {
				t.Fatalf("FormatUnits(%s) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, display := range []string{"1.0", "0.5", "123456.789", "0.000000000000000001"} {
		units, err := ParseUnits(display, 18)
		if err != nil {
			t.Fatalf("ParseUnits(%q) error = %v", display, err)
		}
		if got := FormatUnits(units, 18); got != display {
			t.Fatalf("round trip %q -> %q", display, got)
		}
	}
}

func TestParseRawUnits(t *testing.T) {
	got, err := ParseRawUnits("5000000000000000000")
	if err != nil {
		t.Fatalf("ParseRawUnits error = %v", err)
	}
	if got.String() != "5000000000000000000" {
		t.Fatalf("ParseRawUnits = %s", got)
	}

	for _, bad := range []string{"", "-1", "1.5", "abc"} {
		if _, err := ParseRawUnits(bad); !errors.Is(err, ErrAmountInvalid) {
			t.Fatalf("ParseRawUnits(%q) error = %v, want ErrAmountInvalid", bad, err)
		}
	}
}
