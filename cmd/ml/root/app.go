package root

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"missionlog/internal/config"
	"missionlog/internal/engine"
	"missionlog/internal/notify"
	"missionlog/internal/storage"
	"missionlog/internal/ui"
)

// styledNotifier renders announcements (achievements, promotions, expired
// missions) in the CLI theme.
type styledNotifier struct {
	out io.Writer
}

func (n styledNotifier) Send(title, body string) {
	fmt.Fprintln(n.out, ui.Gold.Render(title))
	if body != "" {
		fmt.Fprintln(n.out, ui.Muted.Render("  "+body))
	}
}

func newLogger(debug bool) *zap.Logger {
	if debug {
		l, err := zap.NewDevelopment()
		if err == nil {
			return l
		}
	}
	return zap.NewNop()
}

// openService builds a loaded, synchronized service. The returned cleanup
// closes the database and flushes the logger.
func openService(ctx context.Context, n notify.Notifier) (*engine.Service, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := newLogger(cfg.Debug)

	db, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		_ = log.Sync()
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
		_ = log.Sync()
	}

	svc := engine.NewService(db,
		engine.WithUser(cfg.User),
		engine.WithLogger(log),
		engine.WithNotifier(n),
	)
	if err := svc.Load(ctx); err != nil {
		cleanup()
		return nil, nil, err
	}
	if _, err := svc.Sync(ctx); err != nil {
		cleanup()
		return nil, nil, err
	}
	return svc, cleanup, nil
}

func openStyled(ctx context.Context) (*engine.Service, func(), error) {
	return openService(ctx, styledNotifier{out: os.Stdout})
}

// openQuiet is for the TUI, which renders results itself.
func openQuiet(ctx context.Context) (*engine.Service, func(), error) {
	return openService(ctx, notify.Noop{})
}
