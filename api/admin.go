package api

import (
	"context"
	"fmt"
	"net/http"

	"library-client/gateway"
)

// ------------------ Admin resources ------------------

func (c *Client) Stats(ctx context.Context) (Stats, error) {
	var out Stats
	if err := c.get(ctx, "/admin/stats", &out); err != nil {
		return Stats{}, err
	}
	return out, nil
}

func (c *Client) Books(ctx context.Context) ([]Book, error) {
	var books []Book
	if err := c.get(ctx, "/admin/books", &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (c *Client) AddBook(ctx context.Context, book BookInput) error {
	return c.post(ctx, "/admin/add-book", book, nil)
}

func (c *Client) EditBook(ctx context.Context, id int64, book BookInput) error {
	_, err := c.gw.Send(ctx, gateway.Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/admin/edit-book/%d", id),
		Body:   book,
	})
	return err
}

func (c *Client) DeleteBook(ctx context.Context, id int64) error {
	_, err := c.gw.Send(ctx, gateway.Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/admin/delete-book/%d", id),
	})
	return err
}

func (c *Client) PendingRequests(ctx context.Context) ([]IssueRequest, error) {
	var reqs []IssueRequest
	if err := c.get(ctx, "/admin/requests/pending", &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

func (c *Client) ApproveRequest(ctx context.Context, id int64) error {
	return c.post(ctx, fmt.Sprintf("/admin/requests/%d/approve", id), nil, nil)
}

func (c *Client) RejectRequest(ctx context.Context, id int64) error {
	return c.post(ctx, fmt.Sprintf("/admin/requests/%d/reject", id), nil, nil)
}

func (c *Client) ReturnRequested(ctx context.Context) ([]ReturnRecord, error) {
	var recs []ReturnRecord
	if err := c.get(ctx, "/admin/return/requested", &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

func (c *Client) ApproveReturn(ctx context.Context, id int64) error {
	return c.post(ctx, fmt.Sprintf("/admin/return-request/%d/approve", id), nil, nil)
}

func (c *Client) AllUsers(ctx context.Context) ([]Account, error) {
	var users []Account
	if err := c.get(ctx, "/admin/allusers", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ClearFine zeroes a user's penalty balance. Admin-only.
func (c *Client) ClearFine(ctx context.Context, userID int64) error {
	return c.post(ctx, fmt.Sprintf("/admin/users/%d/clear-fine", userID), nil, nil)
}
