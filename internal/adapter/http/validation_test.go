package http

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestHex32Validation(t *testing.T) {
	type P struct {
		AssetID string `validate:"hex32"`
	}
	cv := NewValidator()

	// valid: 32-char lowercase hex
	ok := P{AssetID: strings.Repeat("a", 32)}
	if err := cv.Validate(ok); err != nil {
		t.Fatalf("expected valid hex32, got err: %v", err)
	}

	// invalid samples
	for _, s := range []string{
		"",                                  // empty
		strings.Repeat("A", 32),             // uppercase
		"deadbeef",                          // too short
		strings.Repeat("g", 32),             // non-hex char
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c8",   // 31 chars
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c88x", // 33 with extra
	} {
		bad := P{AssetID: s}
		err := cv.Validate(bad)
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		fe := ToFieldErrors(err)
		if !containsFieldMsg(fe, "AssetID", "32-char lowercase hex") {
			t.Fatalf("expected hex32 message for %q, got: %+v", s, fe)
		}
	}
}

func TestHex64Validation(t *testing.T) {
	type P struct {
		DocHash string `validate:"hex64"`
	}
	cv := NewValidator()

	if err := cv.Validate(P{DocHash: strings.Repeat("ab", 32)}); err != nil {
		t.Fatalf("expected valid hex64, got err: %v", err)
	}

	for _, s := range []string{
		"",
		strings.Repeat("a", 32), // sha256 is 64 chars
		strings.Repeat("A", 64), // uppercase
		strings.Repeat("z", 64), // non-hex
		strings.Repeat("a", 63) + "!",
	} {
		err := cv.Validate(P{DocHash: s})
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		fe := ToFieldErrors(err)
		if !containsFieldMsg(fe, "DocHash", "64-char lowercase hex") {
			t.Fatalf("expected hex64 message for %q, got: %+v", s, fe)
		}
	}
}

func TestHexAddrValidation(t *testing.T) {
	type P struct {
		Owner string `validate:"hexaddr"`
	}
	cv := NewValidator()

	// both casings of an address are acceptable
	for _, s := range []string{
		"0x" + strings.Repeat("a", 40),
		"0xAbCd000000000000000000000000000000000001",
	} {
		if err := cv.Validate(P{Owner: s}); err != nil {
			t.Fatalf("expected valid address %q, got err: %v", s, err)
		}
	}

	for _, s := range []string{
		"",
		"not-an-address",
		"0x1234",                       // too short
		strings.Repeat("a", 40),        // missing 0x
		"0x" + strings.Repeat("g", 40), // non-hex
	} {
		err := cv.Validate(P{Owner: s})
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		fe := ToFieldErrors(err)
		if !containsFieldMsg(fe, "Owner", "0x-prefixed address") {
			t.Fatalf("expected hexaddr message for %q, got: %+v", s, fe)
		}
	}
}

func TestDecimalNumericTags(t *testing.T) {
	type P struct {
		Principal  decimal.Decimal `validate:"required,gt=0"`
		AnnualRate decimal.Decimal `validate:"gt=0,lte=100"`
	}
	cv := NewValidator()

	ok := P{
		Principal:  decimal.RequireFromString("8000.50"),
		AnnualRate: decimal.RequireFromString("12.5"),
	}
	if err := cv.Validate(ok); err != nil {
		t.Fatalf("expected valid decimals, got err: %v", err)
	}

	err := cv.Validate(P{
		Principal:  decimal.RequireFromString("-1"),
		AnnualRate: decimal.RequireFromString("120"),
	})
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	fe := ToFieldErrors(err)
	if !containsFieldMsg(fe, "Principal", "greater than 0") {
		t.Fatalf("missing gt message for Principal: %+v", fe)
	}
	if !containsFieldMsg(fe, "AnnualRate", "less than or equal to 100") {
		t.Fatalf("missing lte message for AnnualRate: %+v", fe)
	}
}

func TestRequiredMapping(t *testing.T) {
	type P struct {
		FileName string `validate:"required"`
	}
	cv := NewValidator()

	err := cv.Validate(P{})
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	fe := ToFieldErrors(err)
	if !containsFieldMsg(fe, "FileName", "is required") {
		t.Fatalf("missing 'is required' for FileName: %+v", fe)
	}
}

func TestToFieldErrors_NonValidation(t *testing.T) {
	err := errors.New("boom")
	fe := ToFieldErrors(err)
	if len(fe) != 1 {
		t.Fatalf("expected 1 field error, got %d", len(fe))
	}
	if fe[0].Field != "_" || fe[0].Message != "boom" {
		t.Fatalf("unexpected mapping: %+v", fe[0])
	}
}
