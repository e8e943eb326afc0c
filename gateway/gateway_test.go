package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"library-client/session"
)

func testSessions(t *testing.T) session.Store {
	t.Helper()
	return session.NewMemoryStore()
}

func testGateway(t *testing.T, handler http.HandlerFunc, sessions session.Store, opts ...Option) *Gateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	base, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("parse base url: %v", err)
	}
	return New(srv.Client(), *base, sessions, opts...)
}

func TestClassify(t *testing.T) {
	cases := []struct {
		path string
		aud  session.Audience
		ok   bool
	}{
		{"/user/login", session.AudienceUser, true},
		{"/user/register", session.AudienceUser, true},
		{"/user/available-books", session.AudienceUser, true},
		{"/user/request/7", session.AudienceUser, true},
		{"/user/my-books", session.AudienceUser, true},
		{"/user/return/3", session.AudienceUser, true},
		{"/user/my-activity", session.AudienceUser, true},
		{"/user/details", session.AudienceUser, true},
		{"/user/edit-user", session.AudienceUser, true},
		{"/user/actions", session.AudienceUser, true},
		{"/admin/login", session.AudienceAdmin, true},
		{"/admin/stats", session.AudienceAdmin, true},
		{"/admin/books", session.AudienceAdmin, true},
		{"/admin/add-book", session.AudienceAdmin, true},
		{"/admin/edit-book/1", session.AudienceAdmin, true},
		{"/admin/delete-book/1", session.AudienceAdmin, true},
		{"/admin/requests/pending", session.AudienceAdmin, true},
		{"/admin/requests/5/approve", session.AudienceAdmin, true},
		{"/admin/requests/5/reject", session.AudienceAdmin, true},
		{"/admin/return/requested", session.AudienceAdmin, true},
		{"/admin/return-request/5/approve", session.AudienceAdmin, true},
		{"/admin/allusers", session.AudienceAdmin, true},
		{"/admin/users/9/clear-fine", session.AudienceAdmin, true},
		{"/health", "", false},
		{"/", "", false},
		{"/users/1", "", false},
	}

	for _, tc := range cases {
		aud, ok := Classify(tc.path)
		if ok != tc.ok || aud != tc.aud {
			t.Fatalf("Classify(%q) = %q,%v; want %q,%v", tc.path, aud, ok, tc.aud, tc.ok)
		}
	}
}

func TestAttachesAudienceToken(t *testing.T) {
	sessions := testSessions(t)
	sessions.Set(session.AudienceAdmin, session.Record{Token: "admin-token", Role: session.RoleAdmin})

	var gotAuth string
	gw := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}, sessions)

	if _, err := gw.Send(context.Background(), Request{Method: http.MethodGet, Path: "/admin/stats"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if gotAuth != "Bearer admin-token" {
		t.Fatalf("want admin bearer header, got %q", gotAuth)
	}
}

func TestNeverBorrowsOtherAudienceToken(t *testing.T) {
	sessions := testSessions(t)
	// Both audiences logged in; a user call must not pick up the admin token.
	sessions.Set(session.AudienceAdmin, session.Record{Token: "admin-token", Role: session.RoleAdmin})
	sessions.Set(session.AudienceUser, session.Record{Token: "user-token", Role: session.RoleUser})

	var gotAuth string
	gw := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}, sessions)

	if _, err := gw.Send(context.Background(), Request{Method: http.MethodGet, Path: "/user/my-books"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if gotAuth != "Bearer user-token" {
		t.Fatalf("user path must carry the user token, got %q", gotAuth)
	}
}

func TestUnclassifiedPathHasNoAuthHeader(t *testing.T) {
	sessions := testSessions(t)
	sessions.Set(session.AudienceAdmin, session.Record{Token: "admin-token", Role: session.RoleAdmin})

	var gotAuth string
	gw := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}, sessions)

	if _, err := gw.Send(context.Background(), Request{Method: http.MethodGet, Path: "/health"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("unclassified path must carry no auth header, got %q", gotAuth)
	}
}

// recordingIndicator counts show/hide transitions for loader assertions.
type recordingIndicator struct {
	shows int
	hides int
}

func (r *recordingIndicator) Show() { r.shows++ }
func (r *recordingIndicator) Hide() { r.hides++ }

func TestLoaderPairOnSuccess(t *testing.T) {
	ind := &recordingIndicator{}
	gw := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}, testSessions(t), WithIndicator(ind))

	if _, err := gw.Send(context.Background(), Request{Method: http.MethodGet, Path: "/user/actions"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if ind.shows != 1 || ind.hides != 1 {
		t.Fatalf("want one show/hide pair, got %d/%d", ind.shows, ind.hides)
	}
}

func TestLoaderPairOnFailure(t *testing.T) {
	ind := &recordingIndicator{}
	gw := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}, testSessions(t), WithIndicator(ind))

	if _, err := gw.Send(context.Background(), Request{Method: http.MethodGet, Path: "/user/actions"}); err == nil {
		t.Fatalf("expected error for 500")
	}
	if ind.shows != 1 || ind.hides != 1 {
		t.Fatalf("failure path must still pair show/hide, got %d/%d", ind.shows, ind.hides)
	}
}

func TestSkipLoaderNeverTouchesIndicator(t *testing.T) {
	ind := &recordingIndicator{}
	gw := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}, testSessions(t), WithIndicator(ind))

	if _, err := gw.Send(context.Background(), Request{Method: http.MethodGet, Path: "/user/actions", SkipLoader: true}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if ind.shows != 0 || ind.hides != 0 {
		t.Fatalf("skipLoader call touched the indicator: %d/%d", ind.shows, ind.hides)
	}
}

func TestForbiddenIsLoggedNotRecovered(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	sessions := testSessions(t)
	sessions.Set(session.AudienceUser, session.Record{Token: "stale", Role: session.RoleUser})

	gw := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}, sessions, WithLogger(zap.New(core)))

	_, err := gw.Send(context.Background(), Request{Method: http.MethodGet, Path: "/user/details"})
	if !IsStatus(err, http.StatusForbidden) {
		t.Fatalf("want 403 StatusError, got %v", err)
	}

	if logs.FilterMessage("forbidden response").Len() != 1 {
		t.Fatalf("expected one forbidden diagnostic entry")
	}

	// Session untouched: no auto-logout.
	if rec, ok, _ := sessions.Get(session.AudienceUser); !ok || rec.Token != "stale" {
		t.Fatalf("403 must not mutate the session")
	}
}

func TestNon2xxCarriesStatusAndBody(t *testing.T) {
	gw := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte("already requested"))
	}, testSessions(t))

	resp, err := gw.Send(context.Background(), Request{Method: http.MethodPost, Path: "/user/request/1"})
	if err == nil {
		t.Fatalf("expected error for 409")
	}
	if !IsStatus(err, http.StatusConflict) {
		t.Fatalf("want conflict StatusError, got %v", err)
	}
	if resp == nil || string(resp.Body) != "already requested" {
		t.Fatalf("response body must be preserved, got %+v", resp)
	}
}

func TestRequestIDHeaderAttached(t *testing.T) {
	var gotID string
	gw := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get("X-Request-Id")
		w.Write([]byte(`{}`))
	}, testSessions(t))

	if _, err := gw.Send(context.Background(), Request{Method: http.MethodGet, Path: "/user/actions"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if gotID == "" {
		t.Fatalf("expected a request id header")
	}
}
