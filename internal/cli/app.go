package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pashaarshad/smart-recycle-nexus-99/internal/config"
	"github.com/pashaarshad/smart-recycle-nexus-99/internal/ledger"
	"github.com/pashaarshad/smart-recycle-nexus-99/internal/logging"
	"github.com/pashaarshad/smart-recycle-nexus-99/internal/pickup"
	"github.com/pashaarshad/smart-recycle-nexus-99/internal/rewards"
	"github.com/pashaarshad/smart-recycle-nexus-99/internal/session"
	"github.com/pashaarshad/smart-recycle-nexus-99/internal/store"
)

type App struct {
	config *config.Config
	store  store.Store
	log    logging.Logger

	session *session.Manager
	ledger  *ledger.Ledger
	pickups *pickup.Machine
	rewards *rewards.Redeemer

	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time
}

// NewApp opens the configured store and restores a previously stored session.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log, err := logging.New(logging.Options{
		Backend: c.LogBackend,
		Level:   c.LogLevel,
		Format:  c.LogFormat,
		Output:  os.Stderr,
	})
	if err != nil {
		return nil, err
	}

	openCtx, cancel := withStoreTimeout(ctx, c.StoreTimeout)
	defer cancel()

	st, err := store.Open(openCtx, c.StoreDriver, c.StoreDSN)
	if err != nil {
		log.Error(ctx, "error opening store", "driver", c.StoreDriver, "error", err)
		return nil, err
	}

	a := newApp(c, st, log, os.Stdin, os.Stdout)
	if err := a.restore(ctx); err != nil {
		_ = st.Close()
		return nil, err
	}
	return a, nil
}

func newApp(c *config.Config, st store.Store, log logging.Logger, in io.Reader, out io.Writer) *App {
	sm := session.NewManager(st, log)
	l := ledger.New(st, sm, log)
	return &App{
		config:  c,
		store:   st,
		log:     log,
		session: sm,
		ledger:  l,
		pickups: pickup.NewMachine(st, l, log),
		rewards: rewards.NewRedeemer(l, log),
		reader:  bufio.NewReader(in),
		out:     out,
		now:     time.Now,
	}
}

func (a *App) restore(ctx context.Context) error {
	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	u, err := a.session.Restore(opCtx)
	if err != nil {
		return err
	}
	if u != nil {
		fmt.Fprintf(a.out, "Welcome back, %s!\n", u.Name)
	}
	return nil
}

// opContext bounds a single store-touching operation.
func (a *App) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config == nil {
		return context.WithCancel(ctx)
	}
	return withStoreTimeout(ctx, a.config.StoreTimeout)
}

// withStoreTimeout applies d to ctx. A non-positive d means no deadline.
func withStoreTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// Run starts the shell and closes the store when it ends.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.store.Close(); err != nil {
			a.log.Warn(ctx, "error closing store", "error", err)
		}
	}()

	printlnFn("Welcome to Smart Recycle (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) isLoggedIn() bool {
	_, ok := a.session.Current()
	return ok
}

func (a *App) isAdmin() bool {
	u, ok := a.session.Current()
	return ok && u.IsAdmin
}

func (a *App) status() string {
	u, ok := a.session.Current()
	switch {
	case !ok:
		return ""
	case u.IsAdmin:
		return fmt.Sprintf("(%s admin)", u.Name)
	default:
		return fmt.Sprintf("(%s %d pts)", u.Name, u.Points)
	}
}
