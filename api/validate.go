package api

import (
	"net/mail"
	"strings"

	"library-client/session"
)

// Client-side form validation. These checks run before anything is sent to
// the network; failures surface inline next to the offending field.

func mobileDigits(s string) bool {
	if len(s) != 10 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func validEmail(s string) bool {
	_, err := mail.ParseAddress(s)
	return err == nil
}

// LoginForm carries login credentials plus the audience they target; the
// admin form additionally demands an email identifier.
type LoginForm struct {
	Audience   session.Audience
	Identifier string
	Password   string
}

func (f LoginForm) Validate() FieldErrors {
	var errs FieldErrors

	switch {
	case strings.TrimSpace(f.Identifier) == "":
		if f.Audience == session.AudienceAdmin {
			errs = append(errs, FieldError{"identifier", "Email is required"})
		} else {
			errs = append(errs, FieldError{"identifier", "Email or Mobile is required"})
		}
	case f.Audience == session.AudienceAdmin && !validEmail(f.Identifier):
		errs = append(errs, FieldError{"identifier", "Enter a valid email"})
	}

	switch {
	case f.Password == "":
		errs = append(errs, FieldError{"password", "Password is required"})
	case len(f.Password) < 6:
		errs = append(errs, FieldError{"password", "Password must be at least 6 characters"})
	}

	return errs
}

// RegisterForm is the registration input including the confirm field that
// never leaves the client.
type RegisterForm struct {
	Name            string
	Email           string
	MobileNo        string
	Password        string
	ConfirmPassword string
}

func (f RegisterForm) Validate() FieldErrors {
	var errs FieldErrors

	switch {
	case strings.TrimSpace(f.Name) == "":
		errs = append(errs, FieldError{"name", "Name is required"})
	case len(strings.TrimSpace(f.Name)) < 3:
		errs = append(errs, FieldError{"name", "Name must be at least 3 characters"})
	}

	switch {
	case f.Email == "":
		errs = append(errs, FieldError{"email", "Email is required"})
	case !validEmail(f.Email):
		errs = append(errs, FieldError{"email", "Invalid email format"})
	}

	switch {
	case f.MobileNo == "":
		errs = append(errs, FieldError{"mobileNo", "Mobile number is required"})
	case !mobileDigits(f.MobileNo):
		errs = append(errs, FieldError{"mobileNo", "Mobile number must be 10 digits"})
	}

	switch {
	case f.Password == "":
		errs = append(errs, FieldError{"password", "Password is required"})
	case len(f.Password) < 6:
		errs = append(errs, FieldError{"password", "Password must be at least 6 characters"})
	}

	switch {
	case f.ConfirmPassword == "":
		errs = append(errs, FieldError{"confirmPassword", "Confirm password is required"})
	case f.ConfirmPassword != f.Password:
		errs = append(errs, FieldError{"confirmPassword", "Passwords must match"})
	}

	return errs
}

// Payload strips the confirm field and returns the wire shape.
func (f RegisterForm) Payload() RegisterRequest {
	return RegisterRequest{
		Name:     strings.TrimSpace(f.Name),
		Email:    f.Email,
		MobileNo: f.MobileNo,
		Password: f.Password,
	}
}

// BookForm validates the add/edit book input.
type BookForm struct {
	Title           string
	Author          string
	Category        string
	TotalCopies     int
	AvailableCopies int
}

func (f BookForm) Validate() FieldErrors {
	var errs FieldErrors

	if strings.TrimSpace(f.Title) == "" {
		errs = append(errs, FieldError{"title", "Title is required"})
	}
	if strings.TrimSpace(f.Author) == "" {
		errs = append(errs, FieldError{"author", "Author is required"})
	}
	if strings.TrimSpace(f.Category) == "" {
		errs = append(errs, FieldError{"category", "Category is required"})
	}
	if f.TotalCopies < 0 {
		errs = append(errs, FieldError{"totalCopies", "Total must be 0 or more"})
	}
	switch {
	case f.AvailableCopies < 0:
		errs = append(errs, FieldError{"availableCopies", "Available must be 0 or more"})
	case f.AvailableCopies > f.TotalCopies:
		errs = append(errs, FieldError{"availableCopies", "Available cannot be more than total"})
	}

	return errs
}

// Payload returns the wire shape with trimmed text fields.
func (f BookForm) Payload() BookInput {
	return BookInput{
		Title:           strings.TrimSpace(f.Title),
		Author:          strings.TrimSpace(f.Author),
		Category:        strings.TrimSpace(f.Category),
		TotalCopies:     f.TotalCopies,
		AvailableCopies: f.AvailableCopies,
	}
}
