// Package cli holds the terminal views: cobra commands and the interactive
// user/admin panels. All state and business rules live on the backend; the
// views render snapshots and issue calls through the api client.
package cli

import (
	"fmt"
	"net/http"
	"net/url"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"library-client/api"
	"library-client/config"
	"library-client/gateway"
	"library-client/guard"
	"library-client/session"
)

// app bundles everything a command needs once the process is wired up.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	sessions *session.SQLiteStore
	client   *api.Client
}

var (
	cfgPath string
	current *app
)

var rootCmd = &cobra.Command{
	Use:   "libraryctl",
	Short: "Terminal client for the library management backend",
	Long: `libraryctl talks to the remote library backend: patrons browse and
request books, administrators manage the catalog, approve requests and
clear fines. Log in first, then open the matching dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfgPath)
		if err != nil {
			return err
		}
		current = a
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if current != nil {
			current.close()
		}
	},
}

func newApp(cfgPath string) (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	log, err := newLogger(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	sessions, err := session.NewSQLiteStore(cfg.Session.Path)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	base, err := url.Parse(cfg.API.BaseURL)
	if err != nil {
		sessions.Close()
		return nil, fmt.Errorf("parse base url %q: %w", cfg.API.BaseURL, err)
	}

	busy := gateway.NewCountingIndicator(terminalIndicator{w: os.Stderr})
	gw := gateway.New(http.DefaultClient, *base, sessions,
		gateway.WithIndicator(busy),
		gateway.WithLogger(log),
	)

	return &app{
		cfg:      cfg,
		log:      log,
		sessions: sessions,
		client:   api.NewClient(gw, sessions),
	}, nil
}

func (a *app) close() {
	_ = a.log.Sync()
	_ = a.sessions.Close()
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// navigate evaluates the route guard for a dashboard path and translates
// the redirect outcomes into terminal messages.
func (a *app) navigate(path string) error {
	dec, err := guard.CheckPath(a.sessions, path)
	if err != nil {
		return err
	}
	switch dec {
	case guard.RedirectHome:
		return fmt.Errorf("you are not logged in; run 'libraryctl user login' or 'libraryctl admin login' first")
	case guard.RedirectAccessDenied:
		return fmt.Errorf("access denied: your role does not permit %s", path)
	}
	return nil
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear every stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.client.Logout(); err != nil {
			return err
		}
		fmt.Println("👋 Logged out.")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default ./config.yaml)")
	rootCmd.AddCommand(userCmd, adminCmd, logoutCmd)
}

// Execute runs the command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
