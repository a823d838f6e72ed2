// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package contact implements the contact form: input validation,
// interchangeable delivery strategies and the per-form submission state.
package contact

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Field names, shared by forms, JSON payloads and error maps.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldSubject = "subject"
	FieldMessage = "message"
	FieldPhone   = "phone"
)

// Length limits in characters.
const (
	NameMin    = 2
	NameMax    = 50
	EmailMin   = 5
	SubjectMin = 5
	SubjectMax = 100
	MessageMin = 20
	MessageMax = 1000
)

var phonePattern = regexp.MustCompile(`^[\d\s\-\+\(\)]+$`)

// Input is a contact form submission.
type Input struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	Phone   string `json:"phone,omitempty"`
}

// Get returns the value of a named field.
func (in Input) Get(field string) string {
	switch field {
	case FieldName:
		return in.Name
	case FieldEmail:
		return in.Email
	case FieldSubject:
		return in.Subject
	case FieldMessage:
		return in.Message
	case FieldPhone:
		return in.Phone
	}
	return ""
}

// set assigns a named field and reports whether the field exists.
func (in *Input) set(field, value string) bool {
	switch field {
	case FieldName:
		in.Name = value
	case FieldEmail:
		in.Email = value
	case FieldSubject:
		in.Subject = value
	case FieldMessage:
		in.Message = value
	case FieldPhone:
		in.Phone = value
	default:
		return false
	}
	return true
}

// FieldErrors maps a field name to its single error message.
type FieldErrors map[string]string

// Normalize trims every field and lowercases the email.
func Normalize(in Input) Input {
	return Input{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.ToLower(strings.TrimSpace(in.Email)),
		Subject: strings.TrimSpace(in.Subject),
		Message: strings.TrimSpace(in.Message),
		Phone:   strings.TrimSpace(in.Phone),
	}
}

// Validate normalizes in and checks every field rule. For each invalid field
// only the first failing rule is reported. A nil FieldErrors means the input is valid.
func Validate(in Input) (Input, FieldErrors) {
	in = Normalize(in)
	errs := make(FieldErrors)

	if msg := checkLength(in.Name, NameMin, NameMax,
		"Name must be at least 2 characters",
		"Name must be less than 50 characters"); msg != "" {
		errs[FieldName] = msg
	}

	if !isValidEmail(in.Email) {
		errs[FieldEmail] = "Invalid email address"
	} else if utf8.RuneCountInString(in.Email) < EmailMin {
		errs[FieldEmail] = "Email must be at least 5 characters"
	}

	if msg := checkLength(in.Subject, SubjectMin, SubjectMax,
		"Subject must be at least 5 characters",
		"Subject must be less than 100 characters"); msg != "" {
		errs[FieldSubject] = msg
	}

	if msg := checkLength(in.Message, MessageMin, MessageMax,
		"Message must be at least 20 characters",
		"Message must be less than 1000 characters"); msg != "" {
		errs[FieldMessage] = msg
	}

	if in.Phone != "" && !phonePattern.MatchString(in.Phone) {
		errs[FieldPhone] = "Invalid phone number format"
	}

	if len(errs) == 0 {
		return in, nil
	}
	return in, errs
}

func checkLength(s string, minLen, maxLen int, tooShort, tooLong string) string {
	n := utf8.RuneCountInString(s)
	switch {
	case n < minLen:
		return tooShort
	case n > maxLen:
		return tooLong
	}
	return ""
}

// isValidEmail accepts a bare address with a dotted domain.
// Display-name forms such as "Jane <jane@example.com>" are rejected.
func isValidEmail(email string) bool {
	if email == "" || strings.ContainsAny(email, " \t\r\n") {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	domain := email[at+1:]
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	return true
}

// RequiredPresent reports whether the four required fields are non-blank.
func RequiredPresent(in Input) bool {
	return strings.TrimSpace(in.Name) != "" &&
		strings.TrimSpace(in.Email) != "" &&
		strings.TrimSpace(in.Subject) != "" &&
		strings.TrimSpace(in.Message) != ""
}
