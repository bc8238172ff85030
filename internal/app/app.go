package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/CSaratakij/G435BatteryApproximate/internal/boottime"
	"github.com/CSaratakij/G435BatteryApproximate/internal/cache"
	"github.com/CSaratakij/G435BatteryApproximate/internal/config"
	"github.com/CSaratakij/G435BatteryApproximate/internal/notify"
	"github.com/CSaratakij/G435BatteryApproximate/internal/source"
	"github.com/CSaratakij/G435BatteryApproximate/internal/ui"
)

// Options configure the application.
type Options struct {
	ConfigPath string // empty uses ./setting.ini
	CachePath  string // empty uses ./cache

	BootTime     boottime.Provider // nil queries the OS
	Notifier     notify.Notifier   // nil rings the terminal bell on BellOut
	BellOut      io.Writer
	RefreshEvery time.Duration // zero uses ui.DefaultRefreshInterval

	Input  io.Reader
	Output io.Writer
}

// Run loads settings, wires the start-time sources and runs the UI until the
// user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	settings, cfgErr := config.Load(opts.ConfigPath)
	if cfgErr != nil {
		cfgErr = fmt.Errorf("load settings: %w", cfgErr)
		log.Printf("%v", cfgErr)
	}

	store, err := cache.New(opts.CachePath)
	if err != nil {
		return fmt.Errorf("init cache: %w", err)
	}

	boot := opts.BootTime
	if boot == nil {
		boot = boottime.System{}
	}

	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.Bell{Out: opts.BellOut}
	}

	log.Printf("settings %+v, cache %s", settings, store.Path())

	return ui.Run(ui.Options{
		Context:      ctx,
		Settings:     settings,
		Resolver:     source.NewResolver(boot, store, nil),
		Notifier:     notifier,
		RefreshEvery: opts.RefreshEvery,
		StartupErr:   cfgErr,
		Input:        opts.Input,
		Output:       opts.Output,
	})
}
