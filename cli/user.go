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

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Patron commands: login, register, dashboard",
}

var userLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in as a patron",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLogin(current, session.AudienceUser)
	},
}

var userRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a patron account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRegister(current)
	},
}

var userDashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the patron panel",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.navigate("/user/dashboard"); err != nil {
			return err
		}
		return runUserDashboard(current)
	},
}

func init() {
	userCmd.AddCommand(userLoginCmd, userRegisterCmd, userDashboardCmd)
}

// runLogin prompts for credentials, validates them locally, and submits to
// the audience's login endpoint. Bad credentials leave the session alone.
func runLogin(a *app, aud session.Audience) error {
	sc := bufio.NewScanner(os.Stdin)

	label := "Email / Mobile"
	if aud == session.AudienceAdmin {
		label = "Email"
	}
	identifier, ok := promptLine(sc, label+": ")
	if !ok {
		return nil
	}
	password, err := readPassword("Password: ")
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	form := api.LoginForm{Audience: aud, Identifier: identifier, Password: password}
	if errs := form.Validate(); len(errs) > 0 {
		fmt.Println("Please fix the following:")
		printFieldErrors(errs)
		return nil
	}

	res, err := a.client.Login(context.Background(), aud, identifier, password)
	if err != nil {
		fmt.Println("❌ Invalid credentials")
		return nil
	}

	fmt.Printf("✅ Login successful! Welcome, %s.\n", res.Name)
	fmt.Printf("Open your panel with 'libraryctl %s dashboard'.\n", aud)
	return nil
}

func runRegister(a *app) error {
	sc := bufio.NewScanner(os.Stdin)

	var form api.RegisterForm
	var ok bool
	if form.Name, ok = promptLine(sc, "Name: "); !ok {
		return nil
	}
	if form.Email, ok = promptLine(sc, "Email: "); !ok {
		return nil
	}
	if form.MobileNo, ok = promptLine(sc, "Mobile (10 digits): "); !ok {
		return nil
	}
	var err error
	if form.Password, err = readPassword("Password: "); err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	if form.ConfirmPassword, err = readPassword("Confirm password: "); err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	if errs := form.Validate(); len(errs) > 0 {
		fmt.Println("Please fix the following:")
		printFieldErrors(errs)
		return nil
	}

	if err := a.client.Register(context.Background(), form.Payload()); err != nil {
		if fes, isField := err.(api.FieldErrors); isField {
			fmt.Println("Registration rejected:")
			printFieldErrors(fes)
			return nil
		}
		fmt.Printf("❌ Registration failed: %v\n", err)
		return nil
	}

	fmt.Println("✅ Registered successfully! Log in with 'libraryctl user login'.")
	return nil
}

func runUserDashboard(a *app) error {
	sc := bufio.NewScanner(os.Stdin)

	name := "User"
	if rec, ok, _ := a.sessions.Get(session.AudienceUser); ok && rec.Name != "" {
		name = rec.Name
	}

	fmt.Printf("📖 User Panel — hello, %s!\n", name)
	fmt.Println("Available commands:")
	fmt.Println("  stats, books, request, my books, return, activity, details, edit, logout, exit")

	for {
		fmt.Print("\n> ")
		if !sc.Scan() {
			return nil
		}
		cmd := strings.ToLower(strings.TrimSpace(sc.Text()))

		switch cmd {
		case "stats":
			handleUserStats(a)
		case "books":
			handleAvailableBooks(a)
		case "request":
			handleRequestBook(a, sc)
		case "my books":
			handleMyBooks(a)
		case "return":
			handleReturnBook(a, sc)
		case "activity":
			handleActivity(a)
		case "details":
			handleDetails(a)
		case "edit":
			handleEditProfile(a, sc)
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

func handleUserStats(a *app) {
	actions, err := a.client.Actions(context.Background())
	if err != nil {
		fmt.Printf("Failed to load stats: %v\n", err)
		return
	}
	fmt.Printf("%-10s %-10s %-10s %-10s\n", "Total", "Issued", "Pending", "Returned")
	fmt.Println(strings.Repeat("-", 43))
	fmt.Printf("%-10d %-10d %-10d %-10d\n", actions.Total, actions.Issued, actions.Pending, actions.Returned)
}

func handleAvailableBooks(a *app) {
	books, err := a.client.AvailableBooks(context.Background())
	if err != nil {
		fmt.Printf("❌ Failed to fetch books: %v\n", err)
		return
	}
	if len(books) == 0 {
		fmt.Println("No books available.")
		return
	}

	fmt.Printf("%-5s %-30s %-25s %-15s %-6s %-10s %s\n", "ID", "Title", "Author", "Category", "Total", "Available", "Action")
	fmt.Println(strings.Repeat("-", 105))
	for _, b := range books {
		action := "request"
		if !b.Requestable() {
			action = "not available"
		}
		fmt.Printf("%-5d %-30s %-25s %-15s %-6d %-10d %s\n",
			b.ID,
			truncateString(b.Title, 30),
			truncateString(b.Author, 25),
			truncateString(b.Category, 15),
			b.TotalCopies,
			b.AvailableCopies,
			action)
	}
}

func handleRequestBook(a *app, sc *bufio.Scanner) {
	bookID, ok := promptID(sc, "Book ID: ")
	if !ok {
		return
	}

	// Mirror the disabled request action: refuse locally when no copy is free.
	books, err := a.client.AvailableBooks(context.Background())
	if err == nil {
		for _, b := range books {
			if b.ID == bookID && !b.Requestable() {
				fmt.Println("No copies available; the request action is disabled for this book.")
				return
			}
		}
	}

	if err := a.client.RequestBook(context.Background(), bookID); err != nil {
		fmt.Printf("❌ Failed to request book: %v\n", err)
		return
	}
	fmt.Println("📩 Book requested successfully!")
}

func handleMyBooks(a *app) {
	loans, err := a.client.MyBooks(context.Background())
	if err != nil {
		fmt.Printf("Failed to load your books: %v\n", err)
		return
	}
	if len(loans) == 0 {
		fmt.Println("No books issued.")
		return
	}

	fmt.Printf("%-5s %-40s %s\n", "ID", "Title", "Due Date")
	fmt.Println(strings.Repeat("-", 60))
	for _, l := range loans {
		fmt.Printf("%-5d %-40s %s\n", l.ID, truncateString(l.BookTitle, 40), orDash(l.DueDate))
	}
}

func handleReturnBook(a *app, sc *bufio.Scanner) {
	loanID, ok := promptID(sc, "Issued book ID: ")
	if !ok {
		return
	}
	if !confirm(sc, "Return this book?") {
		return
	}

	if err := a.client.ReturnBook(context.Background(), loanID); err != nil {
		fmt.Printf("❌ Failed to return book: %v\n", err)
		return
	}
	fmt.Println("✅ Book returned successfully")
}

func handleActivity(a *app) {
	acts, err := a.client.MyActivity(context.Background())
	if err != nil {
		fmt.Printf("Failed to load activity: %v\n", err)
		return
	}
	if len(acts) == 0 {
		fmt.Println("No activity yet.")
		return
	}

	fmt.Printf("%-5s %-30s %-12s %-12s %-12s %-12s %s\n", "ID", "Book", "Requested", "Issued", "Due", "Returned", "Status")
	fmt.Println(strings.Repeat("-", 100))
	for _, act := range acts {
		fmt.Printf("%-5d %-30s %-12s %-12s %-12s %-12s %s\n",
			act.ID,
			truncateString(act.BookTitle, 30),
			orDash(act.RequestDate),
			orDash(act.IssueDate),
			orDash(act.DueDate),
			orDash(act.ReturnDate),
			act.DerivedStatus())
	}
}

func handleDetails(a *app) {
	acc, err := a.client.Details(context.Background())
	if err != nil {
		fmt.Printf("Failed to load details: %v\n", err)
		return
	}
	fmt.Printf("Name:   %s\n", acc.Name)
	fmt.Printf("Email:  %s\n", acc.Email)
	fmt.Printf("Mobile: %s\n", acc.MobileNo)
	fmt.Printf("💰 Fine: ₹ %s\n", acc.Fine.StringFixed(2))
}

// handleEditProfile updates the profile; changing the email invalidates the
// backend credential, so the session is cleared and the user must log in
// again.
func handleEditProfile(a *app, sc *bufio.Scanner) {
	acc, err := a.client.Details(context.Background())
	if err != nil {
		fmt.Printf("Failed to load details: %v\n", err)
		return
	}

	fmt.Println("Press Enter to keep the current value.")
	name, ok := promptLine(sc, fmt.Sprintf("Name [%s]: ", acc.Name))
	if !ok {
		return
	}
	email, ok := promptLine(sc, fmt.Sprintf("Email [%s]: ", acc.Email))
	if !ok {
		return
	}
	mobile, ok := promptLine(sc, fmt.Sprintf("Mobile [%s]: ", acc.MobileNo))
	if !ok {
		return
	}

	if name == "" {
		name = acc.Name
	}
	if email == "" {
		email = acc.Email
	}
	if mobile == "" {
		mobile = acc.MobileNo
	}

	form := api.RegisterForm{Name: name, Email: email, MobileNo: mobile}
	var errs api.FieldErrors
	for _, fe := range form.Validate() {
		if fe.Field == "name" || fe.Field == "email" || fe.Field == "mobileNo" {
			errs = append(errs, fe)
		}
	}
	if len(errs) > 0 {
		fmt.Println("Please fix the following:")
		printFieldErrors(errs)
		return
	}

	updated, err := a.client.EditUser(context.Background(), api.EditUserRequest{Name: name, Email: email, MobileNo: mobile})
	if err != nil {
		fmt.Printf("❌ Update failed: %v\n", err)
		return
	}

	if acc.Email != updated.Email {
		fmt.Println("ℹ️ Email updated. Please log in again.")
		_ = a.client.Logout()
		return
	}
	fmt.Println("✅ Profile updated successfully!")
}
