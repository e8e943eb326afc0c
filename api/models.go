// Package api is a typed facade over the Request Gateway: one method per
// backend operation, entity snapshots decoded from JSON. Entity lifecycles
// are owned entirely by the backend; this client reads snapshots, issues
// mutations, and re-fetches.
package api

import "github.com/shopspring/decimal"

// Book is a catalog entry. availableCopies never exceeds totalCopies; the
// backend enforces it, views only render it.
type Book struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	Category        string `json:"category"`
	TotalCopies     int    `json:"totalCopies"`
	AvailableCopies int    `json:"availableCopies"`
}

// Requestable reports whether the request action should be offered at all.
func (b Book) Requestable() bool { return b.AvailableCopies > 0 }

// Loan is a book currently issued to the caller.
type Loan struct {
	ID        int64  `json:"id"`
	BookTitle string `json:"bookTitle"`
	DueDate   string `json:"dueDate"`
}

// Activity is one row of the caller's lending history. Dates are the
// backend's display strings; an unset date is empty.
type Activity struct {
	ID          int64  `json:"id"`
	BookTitle   string `json:"bookTitle"`
	RequestDate string `json:"requestDate"`
	IssueDate   string `json:"issueDate"`
	DueDate     string `json:"dueDate"`
	ReturnDate  string `json:"returnDate"`
	Status      string `json:"status"`
}

// Activity statuses as derived client-side.
const (
	StatusRequested = "Requested"
	StatusIssued    = "Issued"
	StatusReturned  = "Returned"
)

// DerivedStatus computes the display status from the date fields: Returned
// once a return date is set, Issued once an issue date is set, otherwise
// Requested. Falls back to the backend's own status string when present.
func (a Activity) DerivedStatus() string {
	switch {
	case a.ReturnDate != "":
		return StatusReturned
	case a.IssueDate != "":
		return StatusIssued
	case a.Status != "":
		return a.Status
	}
	return StatusRequested
}

// Account is a registered patron as the backend reports it. Fine is a money
// amount and is kept as a decimal, never a float.
type Account struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	MobileNo string          `json:"mobileNo"`
	Fine     decimal.Decimal `json:"fine"`
}

// HasFine reports whether the account carries an outstanding penalty.
func (a Account) HasFine() bool { return a.Fine.IsPositive() }

// Actions is the user's dashboard counters, keyed the way the backend
// returns them.
type Actions struct {
	Total    int `json:"TOTAL"`
	Issued   int `json:"ISSUED"`
	Pending  int `json:"PENDING"`
	Returned int `json:"RETURNED"`
}

// Stats is the admin dashboard overview.
type Stats struct {
	TotalBooks   int `json:"totalBooks"`
	TotalIssued  int `json:"totalIssued"`
	TotalPending int `json:"totalPending"`
	TotalOverdue int `json:"totalOverdue"`
}

// IssueRequest is a pending borrow request awaiting admin action.
type IssueRequest struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"userId"`
	BookID      int64  `json:"bookId"`
	RequestDate string `json:"requestDate"`
	Status      string `json:"status"`
}

// ReturnRecord is an issued book whose return was requested by the patron.
type ReturnRecord struct {
	ID        int64  `json:"id"`
	BookTitle string `json:"bookTitle"`
	UserName  string `json:"userName"`
	IssueDate string `json:"issueDate"`
	DueDate   string `json:"dueDate"`
}

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	Token   string `json:"token"`
	Role    string `json:"role"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

// RegisterRequest is the registration payload. The confirm-password field
// never leaves the client.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	MobileNo string `json:"mobileNo"`
	Password string `json:"password"`
}

// EditUserRequest updates the caller's profile.
type EditUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	MobileNo string `json:"mobileNo"`
}

// BookInput is the add/edit book payload.
type BookInput struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	Category        string `json:"category"`
	TotalCopies     int    `json:"totalCopies"`
	AvailableCopies int    `json:"availableCopies"`
}
