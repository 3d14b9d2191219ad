package utils

import (
	"strings"
	"testing"
)

func TestNewRedemptionCode(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		code := NewRedemptionCode()
		if !strings.HasPrefix(code, RedemptionCodePrefix) {
			t.Fatalf("code %q missing prefix", code)
		}
		if len(code) != len(RedemptionCodePrefix)+32 {
			t.Fatalf("code %q has unexpected length %d", code, len(code))
		}
		if strings.ToUpper(code) != code {
			t.Fatalf("code %q is not upper case", code)
		}
		if _, dup := seen[code]; dup {
			t.Fatalf("duplicate code %q", code)
		}
		seen[code] = struct{}{}
	}
}
