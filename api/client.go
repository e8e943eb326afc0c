package api

import (
	"context"
	"fmt"
	"net/http"

	"library-client/gateway"
	"library-client/session"
)

// Client is a thin facade over the Gateway, keeping view code simple.
type Client struct {
	gw       *gateway.Gateway
	sessions session.Store
}

// NewClient builds the typed API client. The session store is the same one
// the Gateway reads tokens from; login writes into it, logout clears it.
func NewClient(gw *gateway.Gateway, sessions session.Store) *Client {
	return &Client{gw: gw, sessions: sessions}
}

// get fetches path and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	resp, err := c.gw.Send(ctx, gateway.Request{Method: http.MethodGet, Path: path})
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return resp.Decode(out)
}

// post sends body to path; out may be nil when the response is not needed.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	resp, err := c.gw.Send(ctx, gateway.Request{Method: http.MethodPost, Path: path, Body: body})
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return resp.Decode(out)
}

// ------------------ Auth ------------------

type credentials struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// Login authenticates against the audience's login endpoint and, on
// success, writes token, role and display name into the session store as a
// single atomic record.
func (c *Client) Login(ctx context.Context, aud session.Audience, identifier, password string) (LoginResponse, error) {
	var out LoginResponse
	path := fmt.Sprintf("/%s/login", aud)
	if err := c.post(ctx, path, credentials{Identifier: identifier, Password: password}, &out); err != nil {
		return LoginResponse{}, err
	}

	rec := session.Record{Token: out.Token, Role: out.Role, Name: out.Name}
	if err := c.sessions.Set(aud, rec); err != nil {
		return LoginResponse{}, fmt.Errorf("store session: %w", err)
	}
	return out, nil
}

// Register creates a patron account. A rejection carrying a field-error
// list is returned as FieldErrors so the form can render messages inline.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	err := c.post(ctx, "/user/register", req, nil)
	if err == nil {
		return nil
	}
	if fes := fieldErrorsFrom(err); fes != nil {
		return fes
	}
	return err
}

// Logout erases every stored session.
func (c *Client) Logout() error {
	return c.sessions.Clear()
}

// ------------------ User resources ------------------

func (c *Client) AvailableBooks(ctx context.Context) ([]Book, error) {
	var books []Book
	if err := c.get(ctx, "/user/available-books", &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (c *Client) RequestBook(ctx context.Context, bookID int64) error {
	return c.post(ctx, fmt.Sprintf("/user/request/%d", bookID), nil, nil)
}

func (c *Client) MyBooks(ctx context.Context) ([]Loan, error) {
	var loans []Loan
	if err := c.get(ctx, "/user/my-books", &loans); err != nil {
		return nil, err
	}
	return loans, nil
}

func (c *Client) ReturnBook(ctx context.Context, loanID int64) error {
	return c.post(ctx, fmt.Sprintf("/user/return/%d", loanID), nil, nil)
}

func (c *Client) MyActivity(ctx context.Context) ([]Activity, error) {
	var acts []Activity
	if err := c.get(ctx, "/user/my-activity", &acts); err != nil {
		return nil, err
	}
	return acts, nil
}

func (c *Client) Details(ctx context.Context) (Account, error) {
	var acc Account
	if err := c.get(ctx, "/user/details", &acc); err != nil {
		return Account{}, err
	}
	return acc, nil
}

// EditUser updates the caller's profile and returns the fresh snapshot.
func (c *Client) EditUser(ctx context.Context, req EditUserRequest) (Account, error) {
	var acc Account
	resp, err := c.gw.Send(ctx, gateway.Request{Method: http.MethodPut, Path: "/user/edit-user", Body: req})
	if err != nil {
		return Account{}, err
	}
	if err := resp.Decode(&acc); err != nil {
		return Account{}, err
	}
	return acc, nil
}

// Actions fetches the user dashboard counters. Refreshes after a mutation
// skip the loader so the indicator does not flicker.
func (c *Client) Actions(ctx context.Context) (Actions, error) {
	var out Actions
	resp, err := c.gw.Send(ctx, gateway.Request{Method: http.MethodGet, Path: "/user/actions", SkipLoader: true})
	if err != nil {
		return Actions{}, err
	}
	if err := resp.Decode(&out); err != nil {
		return Actions{}, err
	}
	return out, nil
}
