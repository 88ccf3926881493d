package validate

import "testing"

func TestRequiredValidator(t *testing.T) {
	v := Required("")

	if err := v.Validate(""); err == nil {
		t.Error("Expected error for empty string")
	}
	if err := v.Validate("   "); err == nil {
		t.Error("Expected error for whitespace-only string")
	}
	if err := v.Validate("\t\n"); err == nil {
		t.Error("Expected error for tab/newline string")
	}

	if err := v.Validate("hello"); err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	if err := v.Validate("  x  "); err != nil {
		t.Errorf("Expected no error for padded value, got: %v", err)
	}
}

func TestRequiredCustomMessage(t *testing.T) {
	v := Required("Name is required")

	err := v.Validate("")
	if err == nil {
		t.Fatal("Expected error")
	}
	if err.Error() != "Name is required" {
		t.Errorf("message = %q, want custom message", err.Error())
	}
}

func TestMinLengthValidator(t *testing.T) {
	v := MinLength(3, "")

	if err := v.Validate("ab"); err == nil {
		t.Error("Expected error for 'ab' (len 2)")
	}
	if err := v.Validate("abc"); err != nil {
		t.Errorf("Expected no error for 'abc', got: %v", err)
	}
	// Empty passes; Required owns the emptiness rule.
	if err := v.Validate(""); err != nil {
		t.Errorf("Expected no error for empty string, got: %v", err)
	}
}

func TestMaxLengthValidator(t *testing.T) {
	v := MaxLength(5, "")

	if err := v.Validate("abcde"); err != nil {
		t.Errorf("Expected no error at limit, got: %v", err)
	}
	if err := v.Validate("abcdef"); err == nil {
		t.Error("Expected error for 'abcdef' (len 6)")
	}
}

func TestEmailValidator(t *testing.T) {
	v := Email("")

	valid := []string{"user@example.com", "first.last+tag@sub.domain.org"}
	for _, e := range valid {
		if err := v.Validate(e); err != nil {
			t.Errorf("Expected %q to be valid, got: %v", e, err)
		}
	}

	invalid := []string{"plain", "missing@tld", "@example.com"}
	for _, e := range invalid {
		if err := v.Validate(e); err == nil {
			t.Errorf("Expected %q to be invalid", e)
		}
	}
}

func TestAllStopsAtFirstFailure(t *testing.T) {
	v := All(Required("empty"), MinLength(3, "short"))

	err := v.Validate("")
	if err == nil || err.Error() != "empty" {
		t.Errorf("expected Required failure first, got: %v", err)
	}

	err = v.Validate("ab")
	if err == nil || err.Error() != "short" {
		t.Errorf("expected MinLength failure, got: %v", err)
	}

	if err := v.Validate("abc"); err != nil {
		t.Errorf("expected no error, got: %v", err)
	}
}
