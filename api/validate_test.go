package api

import (
	"testing"

	"library-client/session"
)

func TestUserLoginFormValidation(t *testing.T) {
	f := LoginForm{Audience: session.AudienceUser}
	errs := f.Validate()
	if errs.ByField("identifier") == "" || errs.ByField("password") == "" {
		t.Fatalf("empty form must fail both fields: %v", errs)
	}

	f = LoginForm{Audience: session.AudienceUser, Identifier: "9876543210", Password: "short"}
	errs = f.Validate()
	if errs.ByField("identifier") != "" {
		t.Fatalf("user login accepts a mobile identifier: %v", errs)
	}
	if errs.ByField("password") == "" {
		t.Fatalf("five-char password must fail")
	}

	f = LoginForm{Audience: session.AudienceUser, Identifier: "a@b.com", Password: "secret1"}
	if errs := f.Validate(); len(errs) != 0 {
		t.Fatalf("valid form rejected: %v", errs)
	}
}

func TestAdminLoginRequiresEmailIdentifier(t *testing.T) {
	f := LoginForm{Audience: session.AudienceAdmin, Identifier: "9876543210", Password: "secret1"}
	errs := f.Validate()
	if errs.ByField("identifier") == "" {
		t.Fatalf("admin identifier must be an email: %v", errs)
	}

	f.Identifier = "admin@library.org"
	if errs := f.Validate(); len(errs) != 0 {
		t.Fatalf("valid admin form rejected: %v", errs)
	}
}

func TestRegisterFormValidation(t *testing.T) {
	f := RegisterForm{
		Name:            "Jo",
		Email:           "not-an-email",
		MobileNo:        "12345",
		Password:        "secret1",
		ConfirmPassword: "different",
	}
	errs := f.Validate()
	for _, field := range []string{"name", "email", "mobileNo", "confirmPassword"} {
		if errs.ByField(field) == "" {
			t.Fatalf("expected an error for %s: %v", field, errs)
		}
	}

	f = RegisterForm{
		Name:            "Ann Smith",
		Email:           "ann@example.com",
		MobileNo:        "9876543210",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
	if errs := f.Validate(); len(errs) != 0 {
		t.Fatalf("valid registration rejected: %v", errs)
	}

	payload := f.Payload()
	if payload.Name != "Ann Smith" || payload.Password != "secret1" {
		t.Fatalf("payload mangled: %+v", payload)
	}
}

func TestBookFormValidation(t *testing.T) {
	f := BookForm{Title: "  ", Author: "", Category: "", TotalCopies: 2, AvailableCopies: 5}
	errs := f.Validate()
	for _, field := range []string{"title", "author", "category", "availableCopies"} {
		if errs.ByField(field) == "" {
			t.Fatalf("expected an error for %s: %v", field, errs)
		}
	}

	f = BookForm{Title: "Dune", Author: "Frank Herbert", Category: "SF", TotalCopies: 3, AvailableCopies: 3}
	if errs := f.Validate(); len(errs) != 0 {
		t.Fatalf("valid book rejected: %v", errs)
	}
}
