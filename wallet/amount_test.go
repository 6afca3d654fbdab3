package wallet

import (
	"math/big"
	"testing"
)

func TestFormatUnits(t *testing.T) {
	cases := []struct {
		name     string
		amount   string
		decimals uint8
		want     string
	}{
		{"whole_token", "1000000000000000000", 18, "1"},
		{"fractional", "1234500000000000000", 18, "1.2345"},
		{"usdc_six_decimals", "2500000", 6, "2.5"},
		{"zero", "0", 18, "0"},
		{"zero_decimals", "42", 0, "42"},
		{"sub_unit", "500000000000000000", 18, "0.5"},
		{"dust", "1", 18, "0.000000000000000001"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			amount, _ := new(big.Int).SetString(tc.amount, 10)
			got := FormatUnits(amount, tc.decimals)
			if got != tc.want {
				t.Fatalf("FormatUnits(%s, %d) = %s, want %s", tc.amount, tc.decimals, got, tc.want)
			}
		})
	}

	t.Run("nil_amount", func(t *testing.T) {
		if got := FormatUnits(nil, 18); got != "0" {
			t.Fatalf("expected 0 for nil, got %s", got)
		}
	})
}

func TestParseUnits(t *testing.T) {
	t.Run("round_trips", func(t *testing.T) {
		cases := []struct {
			value    string
			decimals uint8
			want     string
		}{
			{"1", 18, "1000000000000000000"},
			{"1.2345", 18, "1234500000000000000"},
			{"2.5", 6, "2500000"},
			{"0.000001", 6, "1"},
			{".5", 18, "500000000000000000"},
			{"42", 0, "42"},
		}
		for _, tc := range cases {
			got, err := ParseUnits(tc.value, tc.decimals)
			if err != nil {
				t.Fatalf("ParseUnits(%s, %d): %v", tc.value, tc.decimals, err)
			}
			if got.String() != tc.want {
				t.Fatalf("ParseUnits(%s, %d) = %s, want %s", tc.value, tc.decimals, got, tc.want)
			}
		}
	})

	t.Run("rejects", func(t *testing.T) {
		for _, v := range []string{"", "  ", "-1", "1.2.3", "abc", "1,5"} {
			if _, err := ParseUnits(v, 18); err == nil {
				t.Fatalf("expected error for %q", v)
			}
		}
	})

	t.Run("too_many_decimals", func(t *testing.T) {
		if _, err := ParseUnits("1.1234567", 6); err == nil {
			t.Fatal("expected error for excess fractional digits")
		}
	})
}
