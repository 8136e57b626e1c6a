package window

import (
	"context"
	"runtime"

	"github.com/jwijenbergh/puregotk/v4/gio"
	"github.com/jwijenbergh/puregotk/v4/gtk"

	"github.com/bnema/moto/internal/logging"
)

// ReadyFunc runs on the main thread once the window exists. The shell runs
// its frame loop in a goroutine and calls quit when it ends.
type ReadyFunc func(ctx context.Context, mw *MainWindow, quit func())

// AppConfig configures Run.
type AppConfig struct {
	Width  int
	Height int
	Sink   EventSink
	Ready  ReadyFunc
}

// Run starts the GTK application and blocks until it exits. It must be
// called from the main goroutine. Returns the exit code.
func Run(ctx context.Context, cfg AppConfig, args []string) int {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	log := logging.FromContext(ctx)
	log.Debug().Msg("creating GTK application")

	// Application ids stay nil; the process is not D-Bus activatable.
	app := gtk.NewApplication(nil, gio.GApplicationFlagsNoneValue)
	if app == nil {
		log.Error().Msg("failed to create GTK application")
		return 1
	}
	defer app.Unref()

	var mw *MainWindow
	quit := func() {
		idleAdd(func() {
			if mw != nil {
				mw.Close()
			}
			app.Quit()
		})
	}

	activateCb := func(_ gio.Application) {
		var err error
		mw, err = New(ctx, app, cfg.Sink, cfg.Width, cfg.Height)
		if err != nil {
			log.Error().Err(err).Msg("failed to create main window")
			app.Quit()
			return
		}
		mw.Show()
		if cfg.Ready != nil {
			cfg.Ready(ctx, mw, quit)
		}
	}
	app.ConnectActivate(&activateCb)

	shutdownCb := func(_ gio.Application) {
		log.Debug().Msg("GTK application shutting down")
		if mw != nil {
			mw.Destroy()
		}
	}
	app.ConnectShutdown(&shutdownCb)

	go func() {
		<-ctx.Done()
		quit()
	}()

	log.Info().Msg("starting GTK main loop")
	return app.Run(len(args), args)
}
