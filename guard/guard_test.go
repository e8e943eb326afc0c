package guard

import (
	"testing"

	"library-client/session"
)

func TestPublicRouteAlwaysAllowed(t *testing.T) {
	store := session.NewMemoryStore()

	dec, err := Check(store, "")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if dec != Allow {
		t.Fatalf("public route with empty session: want Allow, got %s", dec)
	}
}

func TestNoTokenRedirectsHome(t *testing.T) {
	store := session.NewMemoryStore()

	dec, err := Check(store, session.RoleAdmin)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if dec != RedirectHome {
		t.Fatalf("empty session: want RedirectHome, got %s", dec)
	}
}

func TestWrongRoleRedirectsAccessDenied(t *testing.T) {
	store := session.NewMemoryStore()
	store.Set(session.AudienceUser, session.Record{Token: "t", Role: session.RoleUser})

	dec, err := Check(store, session.RoleAdmin)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if dec != RedirectAccessDenied {
		t.Fatalf("user token on admin route: want RedirectAccessDenied, got %s", dec)
	}
}

func TestMatchingRoleAllowed(t *testing.T) {
	store := session.NewMemoryStore()
	store.Set(session.AudienceAdmin, session.Record{Token: "t", Role: session.RoleAdmin})

	dec, err := Check(store, session.RoleAdmin)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if dec != Allow {
		t.Fatalf("admin token on admin route: want Allow, got %s", dec)
	}
}

func TestBothAudiencesCheckImpliedAudience(t *testing.T) {
	// Logged in as both: each dashboard consults its own audience, so both
	// navigations are allowed.
	store := session.NewMemoryStore()
	store.Set(session.AudienceAdmin, session.Record{Token: "at", Role: session.RoleAdmin})
	store.Set(session.AudienceUser, session.Record{Token: "ut", Role: session.RoleUser})

	if dec, _ := Check(store, session.RoleAdmin); dec != Allow {
		t.Fatalf("admin route: want Allow, got %s", dec)
	}
	if dec, _ := Check(store, session.RoleUser); dec != Allow {
		t.Fatalf("user route: want Allow, got %s", dec)
	}
}

func TestRouteTable(t *testing.T) {
	cases := []struct {
		path  string
		role  string
		known bool
	}{
		{"/", "", true},
		{"/access-denied", "", true},
		{"/user/login", "", true},
		{"/user/register", "", true},
		{"/user/dashboard", session.RoleUser, true},
		{"/admin/login", "", true},
		{"/admin/dashboard", session.RoleAdmin, true},
		{"/nope", "", false},
	}

	for _, tc := range cases {
		role, known := RequiredRole(tc.path)
		if role != tc.role || known != tc.known {
			t.Fatalf("RequiredRole(%q) = %q,%v; want %q,%v", tc.path, role, known, tc.role, tc.known)
		}
	}
}

func TestCheckPath(t *testing.T) {
	store := session.NewMemoryStore()
	store.Set(session.AudienceUser, session.Record{Token: "t", Role: session.RoleUser})

	if dec, _ := CheckPath(store, "/user/dashboard"); dec != Allow {
		t.Fatalf("user dashboard: want Allow, got %s", dec)
	}
	if dec, _ := CheckPath(store, "/admin/dashboard"); dec != RedirectAccessDenied {
		t.Fatalf("admin dashboard with user token: want RedirectAccessDenied, got %s", dec)
	}
	if dec, _ := CheckPath(store, "/missing"); dec != Allow {
		t.Fatalf("unknown path falls through to not-found, want Allow, got %s", dec)
	}
}
