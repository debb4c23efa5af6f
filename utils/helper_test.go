package utils

import "testing"

func TestValidatePhoneNumber(t *testing.T) {
	cases := []struct {
		name        string
		phone       string
		countryCode string
		wantErr     bool
	}{
		{"valid US national format", "2025550123", "US", false},
		{"valid US with punctuation", "(202) 555-0123", "US", false},
		{"valid E.164 overrides region", "+12025550123", "MM", false},
		{"too short", "12345", "US", true},
		{"letters rejected", "phone-me", "US", true},
		{"empty", "", "US", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePhoneNumber(tc.phone, tc.countryCode)
			if tc.wantErr && err == nil {
				t.Fatalf("expected %q (%s) to be rejected", tc.phone, tc.countryCode)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("expected %q (%s) to be accepted, got %v", tc.phone, tc.countryCode, err)
			}
		})
	}
}

func TestDefaultCountryCode(t *testing.T) {
	t.Setenv("DEFAULT_COUNTRY_CODE", "")
	if got := DefaultCountryCode(); got != "US" {
		t.Fatalf("expected fallback US, got %q", got)
	}
	t.Setenv("DEFAULT_COUNTRY_CODE", "GB")
	if got := DefaultCountryCode(); got != "GB" {
		t.Fatalf("expected GB from environment, got %q", got)
	}
}
