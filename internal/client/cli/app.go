package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dmitrijs2005/gallerykeeper/internal/client/config"
	"github.com/dmitrijs2005/gallerykeeper/internal/client/gateway"
	"github.com/dmitrijs2005/gallerykeeper/internal/client/localdb"
	"github.com/dmitrijs2005/gallerykeeper/internal/client/photos"
	"github.com/dmitrijs2005/gallerykeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gallerykeeper/internal/client/session"
	"github.com/dmitrijs2005/gallerykeeper/internal/filex"
	"github.com/dmitrijs2005/gallerykeeper/internal/logging"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	db      *sql.DB
	creds   session.CredentialStore
	session *session.Store
	photos  *photos.Store
	reader  *bufio.Reader
	out     io.Writer

	// httpClient fetches images; nil means http.DefaultClient.
	httpClient *http.Client
}

// NewApp opens the local database and builds the stores for cfg.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	dir, err := filex.EnsureDir(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	db, err := localdb.InitDatabase(ctx, cfg.DatabasePath(dir))
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	gw, err := gateway.NewHTTPGateway(cfg.BaseURL, cfg.APIKey, gateway.WithLogger(log))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	creds := session.NewMetadataCredentialStore(metadata.NewSQLiteRepository(db))

	a := newApp(gw, creds, log, os.Stdin, os.Stdout)
	a.config = cfg
	a.db = db
	return a, nil
}

// newApp builds an App around an existing gateway and credential store.
func newApp(gw gateway.Gateway, creds session.CredentialStore, log logging.Logger, in io.Reader, out io.Writer) *App {
	n := newPrintNotifier(out)
	ss := session.NewStore(gw, creds, session.WithNotifier(n), session.WithLogger(log))
	ps := photos.NewStore(gw, ss, photos.WithNotifier(n), photos.WithLogger(log))

	return &App{
		log:     log,
		creds:   creds,
		session: ss,
		photos:  ps,
		reader:  bufio.NewReader(in),
		out:     out,
	}
}

// Run restores the persisted session and serves the REPL until the user
// exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "Gallery CLI (type 'help' for commands)")
	if a.session.Restore(ctx) == session.StateAuthenticated {
		a.WhoAmI(ctx)
	}

	runREPL(ctx, a, a.status, a.reader, a.out)
}

// Close releases the local database.
func (a *App) Close() {
	if a.db == nil {
		return
	}
	if err := a.db.Close(); err != nil {
		a.log.Warn(context.Background(), "closing database", "error", err)
	}
	a.db = nil
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) status() string {
	snap := a.session.Snapshot()
	if snap.User != nil {
		return snap.User.Username
	}
	return "guest"
}
