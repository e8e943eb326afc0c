package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"library-client/api"
	"library-client/session"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administrator commands: login, dashboard",
}

var adminLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in as an administrator",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLogin(current, session.AudienceAdmin)
	},
}

var adminDashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the admin panel",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.navigate("/admin/dashboard"); err != nil {
			return err
		}
		return runAdminDashboard(current)
	},
}

func init() {
	adminCmd.AddCommand(adminLoginCmd, adminDashboardCmd)
}

func runAdminDashboard(a *app) error {
	sc := bufio.NewScanner(os.Stdin)

	name := "Admin"
	if rec, ok, _ := a.sessions.Get(session.AudienceAdmin); ok && rec.Name != "" {
		name = rec.Name
	}

	fmt.Printf("📚 Admin Panel — hello, %s!\n", name)
	fmt.Println("Available commands:")
	fmt.Println("  Overview: stats")
	fmt.Println("  Books: books, add book, edit book, delete book")
	fmt.Println("  Requests: requests, approve, reject")
	fmt.Println("  Returns: returns, approve return")
	fmt.Println("  Users: users, clear fine")
	fmt.Println("  System: logout, exit")

	for {
		fmt.Print("\n> ")
		if !sc.Scan() {
			return nil
		}
		cmd := strings.ToLower(strings.TrimSpace(sc.Text()))

		switch cmd {
		case "stats":
			handleAdminStats(a)
		case "books":
			handleAdminBooks(a)
		case "add book":
			handleAddBook(a, sc)
		case "edit book":
			handleEditBook(a, sc)
		case "delete book":
			handleDeleteBook(a, sc)
		case "requests":
			handlePendingRequests(a)
		case "approve":
			handleApproveRequest(a, sc)
		case "reject":
			handleRejectRequest(a, sc)
		case "returns":
			handleReturnRequests(a)
		case "approve return":
			handleApproveReturn(a, sc)
		case "users":
			handleAllUsers(a)
		case "clear fine":
			handleClearFine(a, sc)
		case "logout":
			fmt.Println("👋 Logging out...")
			if err := a.client.Logout(); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
			return nil
		case "exit":
			fmt.Println("Goodbye!")
			return nil
		case "":
			continue
		default:
			fmt.Println("Unknown command. Type one of the available commands listed above.")
		}
	}
}

func handleAdminStats(a *app) {
	stats, err := a.client.Stats(context.Background())
	if err != nil {
		fmt.Printf("Failed to load stats: %v\n", err)
		return
	}
	fmt.Printf("%-12s %-8s %-18s %s\n", "Total Books", "Issued", "Pending Requests", "Overdue")
	fmt.Println(strings.Repeat("-", 50))
	fmt.Printf("%-12d %-8d %-18d %d\n", stats.TotalBooks, stats.TotalIssued, stats.TotalPending, stats.TotalOverdue)
}

func handleAdminBooks(a *app) {
	books, err := a.client.Books(context.Background())
	if err != nil {
		fmt.Printf("Failed to load books: %v\n", err)
		return
	}
	if len(books) == 0 {
		fmt.Println("No books in the catalog.")
		return
	}

	fmt.Printf("%-5s %-30s %-25s %-15s %-6s %s\n", "ID", "Title", "Author", "Category", "Total", "Available")
	fmt.Println(strings.Repeat("-", 93))
	for _, b := range books {
		fmt.Printf("%-5d %-30s %-25s %-15s %-6d %d\n",
			b.ID,
			truncateString(b.Title, 30),
			truncateString(b.Author, 25),
			truncateString(b.Category, 15),
			b.TotalCopies,
			b.AvailableCopies)
	}
}

// promptBookForm collects and validates the shared add/edit book input.
func promptBookForm(sc *bufio.Scanner) (api.BookForm, bool) {
	var form api.BookForm
	var ok bool
	if form.Title, ok = promptLine(sc, "Title: "); !ok {
		return form, false
	}
	if form.Author, ok = promptLine(sc, "Author: "); !ok {
		return form, false
	}
	if form.Category, ok = promptLine(sc, "Category: "); !ok {
		return form, false
	}
	if form.TotalCopies, ok = promptInt(sc, "Total copies: "); !ok {
		return form, false
	}
	if form.AvailableCopies, ok = promptInt(sc, "Available copies: "); !ok {
		return form, false
	}

	if errs := form.Validate(); len(errs) > 0 {
		fmt.Println("Please fix the following:")
		printFieldErrors(errs)
		return form, false
	}
	return form, true
}

func handleAddBook(a *app, sc *bufio.Scanner) {
	form, ok := promptBookForm(sc)
	if !ok {
		return
	}
	if err := a.client.AddBook(context.Background(), form.Payload()); err != nil {
		fmt.Printf("❌ Failed to add book: %v\n", err)
		return
	}
	fmt.Println("📚 Book added successfully!")
}

func handleEditBook(a *app, sc *bufio.Scanner) {
	bookID, ok := promptID(sc, "Book ID: ")
	if !ok {
		return
	}
	form, ok := promptBookForm(sc)
	if !ok {
		return
	}
	if err := a.client.EditBook(context.Background(), bookID, form.Payload()); err != nil {
		fmt.Printf("❌ Failed to update book: %v\n", err)
		return
	}
	fmt.Println("✍️ Book updated successfully!")
}

func handleDeleteBook(a *app, sc *bufio.Scanner) {
	bookID, ok := promptID(sc, "Book ID: ")
	if !ok {
		return
	}
	if !confirm(sc, "Delete this book?") {
		return
	}
	if err := a.client.DeleteBook(context.Background(), bookID); err != nil {
		fmt.Printf("❌ Failed to delete book: %v\n", err)
		return
	}
	fmt.Println("🗑️ Book deleted successfully!")
}

func handlePendingRequests(a *app) {
	reqs, err := a.client.PendingRequests(context.Background())
	if err != nil {
		fmt.Printf("Failed to load requests: %v\n", err)
		return
	}
	if len(reqs) == 0 {
		fmt.Println("No pending requests.")
		return
	}

	fmt.Printf("%-5s %-8s %-8s %-14s %s\n", "ID", "User", "Book", "Requested", "Status")
	fmt.Println(strings.Repeat("-", 50))
	for _, r := range reqs {
		fmt.Printf("%-5d %-8d %-8d %-14s %s\n", r.ID, r.UserID, r.BookID, orDash(r.RequestDate), r.Status)
	}
}

func handleApproveRequest(a *app, sc *bufio.Scanner) {
	id, ok := promptID(sc, "Request ID: ")
	if !ok {
		return
	}
	if err := a.client.ApproveRequest(context.Background(), id); err != nil {
		fmt.Printf("❌ Failed to approve request: %v\n", err)
		return
	}
	fmt.Println("✅ Request approved")
}

func handleRejectRequest(a *app, sc *bufio.Scanner) {
	id, ok := promptID(sc, "Request ID: ")
	if !ok {
		return
	}
	if err := a.client.RejectRequest(context.Background(), id); err != nil {
		fmt.Printf("❌ Failed to reject request: %v\n", err)
		return
	}
	fmt.Println("🚫 Request rejected")
}

func handleReturnRequests(a *app) {
	recs, err := a.client.ReturnRequested(context.Background())
	if err != nil {
		fmt.Printf("Failed to load return requests: %v\n", err)
		return
	}
	if len(recs) == 0 {
		fmt.Println("No requested returns.")
		return
	}

	fmt.Printf("%-5s %-30s %-20s %-12s %s\n", "ID", "Book", "User", "Issued", "Due")
	fmt.Println(strings.Repeat("-", 85))
	for _, r := range recs {
		fmt.Printf("%-5d %-30s %-20s %-12s %s\n",
			r.ID,
			truncateString(r.BookTitle, 30),
			truncateString(r.UserName, 20),
			orDash(r.IssueDate),
			orDash(r.DueDate))
	}
}

func handleApproveReturn(a *app, sc *bufio.Scanner) {
	id, ok := promptID(sc, "Return request ID: ")
	if !ok {
		return
	}
	if err := a.client.ApproveReturn(context.Background(), id); err != nil {
		fmt.Printf("❌ Failed to approve return: %v\n", err)
		return
	}
	fmt.Println("✅ Return approved")
}

func handleAllUsers(a *app) {
	users, err := a.client.AllUsers(context.Background())
	if err != nil {
		fmt.Printf("Failed to load users: %v\n", err)
		return
	}
	if len(users) == 0 {
		fmt.Println("No registered users.")
		return
	}

	fmt.Printf("%-5s %-25s %-30s %-12s %s\n", "ID", "Name", "Email", "Mobile", "Fine")
	fmt.Println(strings.Repeat("-", 85))
	for _, u := range users {
		fmt.Printf("%-5d %-25s %-30s %-12s ₹ %s\n",
			u.ID,
			truncateString(u.Name, 25),
			truncateString(u.Email, 30),
			u.MobileNo,
			u.Fine.StringFixed(2))
	}
}

func handleClearFine(a *app, sc *bufio.Scanner) {
	userID, ok := promptID(sc, "User ID: ")
	if !ok {
		return
	}
	if !confirm(sc, "Clear this user's fine?") {
		return
	}
	if err := a.client.ClearFine(context.Background(), userID); err != nil {
		fmt.Printf("❌ Failed to clear fine: %v\n", err)
		return
	}
	fmt.Println("✅ Fine cleared")
}
