package validate

import (
	"encoding/json"
	"errors"
	"regexp"
	"testing"
)

func decode(t *testing.T, body string) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func TestValidateRequired(t *testing.T) {
	schema := Schema{
		{Field: "name", Required: true, String: true},
	}

	if err := schema.Validate(decode(t, `{"name":"Milk"}`)); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}

	for _, body := range []string{`{}`, `{"name":null}`, `{"name":"  "}`} {
		err := schema.Validate(decode(t, body))
		if err == nil {
			t.Fatalf("body %s: expected error", body)
		}
		var verr *Error
		if !errors.As(err, &verr) || verr.Field != "name" {
			t.Fatalf("body %s: expected error on name, got %v", body, err)
		}
		if verr.Message != "name is required" {
			t.Fatalf("body %s: unexpected message %q", body, verr.Message)
		}
	}
}

func TestValidateFirstErrorWins(t *testing.T) {
	schema := Schema{
		{Field: "name", Required: true, String: true},
		{Field: "quantity", Required: true, Numeric: true},
	}

	err := schema.Validate(decode(t, `{"quantity":"three"}`))
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if verr.Field != "name" {
		t.Fatalf("expected first failing field name, got %q", verr.Field)
	}
}

func TestValidateMinLenCustomMessage(t *testing.T) {
	schema := Schema{
		{Field: "name", Required: true, MinLen: 2, MinLenMessage: "name must be 2 characters or longer"},
	}

	err := schema.Validate(decode(t, `{"name":"a"}`))
	if err == nil || err.Error() != "name must be 2 characters or longer" {
		t.Fatalf("expected custom message, got %v", err)
	}
}

func TestValidateNumericAndBoolean(t *testing.T) {
	schema := Schema{
		{Field: "quantity", Required: true, Numeric: true},
		{Field: "ignoreQuantityWarning", Boolean: true},
	}

	if err := schema.Validate(decode(t, `{"quantity":4,"ignoreQuantityWarning":true}`)); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
	if err := schema.Validate(decode(t, `{"quantity":"4"}`)); err == nil {
		t.Fatal("expected error for string quantity")
	}
	if err := schema.Validate(decode(t, `{"quantity":4,"ignoreQuantityWarning":"yes"}`)); err == nil {
		t.Fatal("expected error for string boolean")
	}
}

func TestValidateNullable(t *testing.T) {
	schema := Schema{
		{Field: "warnOnQuantity", Nullable: true, Numeric: true},
	}

	if err := schema.Validate(decode(t, `{"warnOnQuantity":null}`)); err != nil {
		t.Fatalf("expected null to pass, got %v", err)
	}
	if err := schema.Validate(decode(t, `{}`)); err != nil {
		t.Fatalf("expected absent optional to pass, got %v", err)
	}
	if err := schema.Validate(decode(t, `{"warnOnQuantity":"low"}`)); err == nil {
		t.Fatal("expected error for non-numeric value")
	}
}

func TestValidatePatternAndEnum(t *testing.T) {
	schema := Schema{
		{Field: "email", Required: true, Pattern: regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`), PatternMessage: "email is invalid"},
		{Field: "role", Required: true, Enum: []string{"ADMIN", "USER"}},
	}

	if err := schema.Validate(decode(t, `{"email":"a@b.com","role":"ADMIN"}`)); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}

	err := schema.Validate(decode(t, `{"email":"nope","role":"ADMIN"}`))
	if err == nil || err.Error() != "email is invalid" {
		t.Fatalf("expected pattern message, got %v", err)
	}

	err = schema.Validate(decode(t, `{"email":"a@b.com","role":"OWNER"}`))
	var verr *Error
	if !errors.As(err, &verr) || verr.Field != "role" {
		t.Fatalf("expected enum error on role, got %v", err)
	}
}
