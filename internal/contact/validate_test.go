// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package contact

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func validInput() Input {
	return Input{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Subject: "Project inquiry",
		Message: "I would like to talk about a new project.",
	}
}

func TestValidate_Valid(t *testing.T) {
	out, errs := Validate(validInput())
	if errs != nil {
		t.Fatalf("Validate() errors = %v, want nil", errs)
	}
	if out != validInput() {
		t.Errorf("Validate() changed already-normal input: %+v", out)
	}
}

func TestValidate_FieldRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Input)
		field  string
		want   string
	}{
		{"name too short", func(in *Input) { in.Name = "A" }, FieldName, "Name must be at least 2 characters"},
		{"name blank after trim", func(in *Input) { in.Name = "   " }, FieldName, "Name must be at least 2 characters"},
		{"name too long", func(in *Input) { in.Name = strings.Repeat("n", 51) }, FieldName, "Name must be less than 50 characters"},
		{"email empty", func(in *Input) { in.Email = "" }, FieldEmail, "Invalid email address"},
		{"email no at", func(in *Input) { in.Email = "jane.example.com" }, FieldEmail, "Invalid email address"},
		{"email no dot in domain", func(in *Input) { in.Email = "jane@localhost" }, FieldEmail, "Invalid email address"},
		{"email display name", func(in *Input) { in.Email = "Jane <jane@example.com>" }, FieldEmail, "Invalid email address"},
		{"email at minimum length", func(in *Input) { in.Email = "a@b.c" }, "", ""},
		{"subject too short", func(in *Input) { in.Subject = "Hey" }, FieldSubject, "Subject must be at least 5 characters"},
		{"subject too long", func(in *Input) { in.Subject = strings.Repeat("s", 101) }, FieldSubject, "Subject must be less than 100 characters"},
		{"message too short", func(in *Input) { in.Message = "Too short" }, FieldMessage, "Message must be at least 20 characters"},
		{"message too long", func(in *Input) { in.Message = strings.Repeat("m", 1001) }, FieldMessage, "Message must be less than 1000 characters"},
		{"message padded short", func(in *Input) { in.Message = "   short message   " }, FieldMessage, "Message must be at least 20 characters"},
		{"phone letters", func(in *Input) { in.Phone = "call me" }, FieldPhone, "Invalid phone number format"},
		{"phone ok", func(in *Input) { in.Phone = "+1 (555) 123-4567" }, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			_, errs := Validate(in)

			if tt.field == "" {
				if errs != nil {
					t.Fatalf("Validate() errors = %v, want none", errs)
				}
				return
			}
			if len(errs) != 1 {
				t.Fatalf("Validate() errors = %v, want exactly one", errs)
			}
			if got := errs[tt.field]; got != tt.want {
				t.Errorf("errs[%q] = %q, want %q", tt.field, got, tt.want)
			}
		})
	}
}

func TestValidate_Boundaries(t *testing.T) {
	in := validInput()
	in.Name = strings.Repeat("n", NameMax)
	in.Subject = strings.Repeat("s", SubjectMax)
	in.Message = strings.Repeat("m", MessageMax)
	if _, errs := Validate(in); errs != nil {
		t.Errorf("max lengths rejected: %v", errs)
	}

	in = validInput()
	in.Name = "Al"
	in.Subject = "Hello"
	in.Message = strings.Repeat("m", MessageMin)
	if _, errs := Validate(in); errs != nil {
		t.Errorf("min lengths rejected: %v", errs)
	}
}

func TestValidate_CountsCharactersNotBytes(t *testing.T) {
	in := validInput()
	in.Name = strings.Repeat("é", NameMax)
	if _, errs := Validate(in); errs != nil {
		t.Errorf("50 two-byte characters rejected: %v", errs)
	}
}

func TestValidate_EmailNormalization(t *testing.T) {
	a := validInput()
	a.Email = "USER@Example.com"
	b := validInput()
	b.Email = "user@example.com"

	outA, errsA := Validate(a)
	outB, errsB := Validate(b)
	if errsA != nil || errsB != nil {
		t.Fatalf("Validate() errors: %v / %v", errsA, errsB)
	}
	if diff := cmp.Diff(outB, outA); diff != "" {
		t.Errorf("normalized inputs differ (-lower +mixed):\n%s", diff)
	}
}

func TestValidate_ReportsEveryInvalidField(t *testing.T) {
	_, errs := Validate(Input{})
	want := FieldErrors{
		FieldName:    "Name must be at least 2 characters",
		FieldEmail:   "Invalid email address",
		FieldSubject: "Subject must be at least 5 characters",
		FieldMessage: "Message must be at least 20 characters",
	}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Errorf("Validate(empty) mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_Trims(t *testing.T) {
	in := Input{
		Name:    "  Jane  ",
		Email:   "  Jane@Example.COM ",
		Subject: "\tHello there\n",
		Message: "  This message is long enough to pass.  ",
	}
	out, errs := Validate(in)
	if errs != nil {
		t.Fatalf("Validate() errors = %v", errs)
	}
	want := Input{
		Name:    "Jane",
		Email:   "jane@example.com",
		Subject: "Hello there",
		Message: "This message is long enough to pass.",
	}
	if out != want {
		t.Errorf("Validate() = %+v, want %+v", out, want)
	}
}

func TestRequiredPresent(t *testing.T) {
	if !RequiredPresent(validInput()) {
		t.Error("RequiredPresent(valid) = false")
	}
	for _, field := range []string{FieldName, FieldEmail, FieldSubject, FieldMessage} {
		in := validInput()
		in.set(field, " ")
		if RequiredPresent(in) {
			t.Errorf("RequiredPresent() = true with blank %s", field)
		}
	}
	in := validInput()
	in.Phone = ""
	if !RequiredPresent(in) {
		t.Error("phone must stay optional")
	}
}
