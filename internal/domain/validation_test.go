package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestValidateAmount(t *testing.T) {
	t.Parallel()

	valid := decimal.NewFromFloat(100.25)
	got, err := ValidateAmount(valid)
	if err != nil {
		t.Fatalf("expected valid amount, got %v", err)
	}
	if !got.Equal(valid) {
		t.Fatalf("expected %s, got %s", valid, got)
	}

	if _, err := ValidateAmount(decimal.Zero); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for zero, got %v", err)
	}

	if _, err := ValidateAmount(decimal.NewFromInt(-5)); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for negative, got %v", err)
	}
}

func TestParseAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"200", "200.00", false},
		{" 50.5 ", "50.50", false},
		{"12,75", "12.75", false},
		{"", "", true},
		{"abc", "", true},
		{"1.2.3", "", true},
		{"0", "0.00", false},
		{"-10", "-10.00", false},
	}

	for _, tt := range tests {
		got, err := ParseAmount(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidAmount) {
				t.Fatalf("ParseAmount(%q): expected ErrInvalidAmount, got %v", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseAmount(%q): unexpected error %v", tt.input, err)
		}
		if FormatAmount(got) != tt.want {
			t.Fatalf("ParseAmount(%q) = %s, want %s", tt.input, FormatAmount(got), tt.want)
		}
	}
}

func TestValidateCustomerKey(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"12345678900", "123.456.789-00", "AB12", " 111 "} {
		if err := ValidateCustomerKey(key); err != nil {
			t.Fatalf("ValidateCustomerKey(%q): expected valid key, got %v", key, err)
		}
	}

	for _, key := range []string{
		"", "   ", "12 34", "12/3", "12?3", "12#3", "12%2F3", "ção", "a_b",
		strings.Repeat("9", MaxCustomerKeyLength+1),
	} {
		if err := ValidateCustomerKey(key); !errors.Is(err, ErrInvalidCustomer) {
			t.Fatalf("ValidateCustomerKey(%q): expected ErrInvalidCustomer, got %v", key, err)
		}
	}
}

func TestValidateCustomerName(t *testing.T) {
	t.Parallel()

	if err := ValidateCustomerName("Maria Silva"); err != nil {
		t.Fatalf("expected valid name, got %v", err)
	}

	if err := ValidateCustomerName("  "); !errors.Is(err, ErrInvalidCustomer) {
		t.Fatalf("expected ErrInvalidCustomer, got %v", err)
	}

	if err := ValidateCustomerName(strings.Repeat("a", MaxCustomerNameLength+1)); !errors.Is(err, ErrInvalidCustomer) {
		t.Fatalf("expected ErrInvalidCustomer for long name, got %v", err)
	}
}

func TestParseBirthDate(t *testing.T) {
	t.Parallel()

	want := time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)

	for _, raw := range []string{"1990-05-17", "17-05-1990", "17/05/1990"} {
		got, err := ParseBirthDate(raw)
		if err != nil {
			t.Fatalf("ParseBirthDate(%q): %v", raw, err)
		}
		if !got.Equal(want) {
			t.Fatalf("ParseBirthDate(%q) = %s, want %s", raw, got, want)
		}
	}

	if _, err := ParseBirthDate("May 17"); !errors.Is(err, ErrInvalidCustomer) {
		t.Fatalf("expected ErrInvalidCustomer, got %v", err)
	}
}
