package main

import (
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	"github.com/sauceworks/sauced/api"
	"github.com/sauceworks/sauced/dispenser"
	"github.com/sauceworks/sauced/machine"
	"github.com/sauceworks/sauced/saucedb"
	"github.com/sauceworks/sauced/saucelog"
	"github.com/sauceworks/sauced/stats"
	log "github.com/sirupsen/logrus"
	"net/http"
	"os"
	"os/signal"
	"time"
	// Blank import to set up profiling HTTP handlers.
	_ "net/http/pprof"
)

var (
	// Commit stores the current commit hash of this build. This should be set using -ldflags during compilation.
	Commit string
	// Version stores the version string of this build. This should be set using -ldflags during compilation.
	Version string
	// Date stores the date of this build. This should be set using -ldflags during compilation.
	Date string
)

// saucedMain is the true entry point for sauced. This is required since defers
// created in the top-level scope of a main method aren't executed if os.Exit() is called.
func saucedMain() error {
	sauceLog := saucelog.New()

	log.SetOutput(os.Stdout)
	log.SetLevel(log.InfoLevel)
	log.AddHook(sauceLog)

	// Load CLI configuration and defaults
	cfg, err := loadConfig()
	if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
		return nil
	} else if err != nil {
		return errors.Errorf("Failed parsing arguments: %v", err)
	}

	// Set logger into debug mode if called with --debug
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
		log.Info("Setting debug mode.")
	}

	log.Debug("Loaded config.")

	// Print version of the daemon
	log.Infof("Version %s (commit %s)", Version, Commit)
	log.Infof("Built on %s", Date)

	// Stop here if only version was requested
	if cfg.ShowVersion {
		return nil
	}

	if cfg.Profiling != nil && cfg.Profiling.Listen != "" {
		go func() {
			log.Infof("Starting profiling server on %v", cfg.Profiling.Listen)
			// Redirect the root path
			http.Handle("/", http.RedirectHandler("/debug/pprof", http.StatusSeeOther))
			// All other handlers are registered on DefaultServeMux through the import of pprof
			err := http.ListenAndServe(cfg.Profiling.Listen, nil)
			if err != nil {
				log.Errorf("Could not run profiler: %v", err)
			}
		}()
	}

	// sauce.db persistently stores the usage counters
	sauceDB, err := saucedb.Open(cfg.DataDir)
	if err != nil {
		return errors.Errorf("Could not open sauce.db: %v", err)
	}

	log.Infof("Opened sauce.db")

	defer func() {
		err := sauceDB.Close()
		if err != nil {
			log.Errorf("Could not close sauce.db: %v", err)
		} else {
			log.Info("Closed sauce.db.")
		}
	}()

	// The hardware controller
	var m machine.Machine

	switch cfg.Machine {
	case "raspberry":
		m = machine.NewDispenserMachine(&machine.DispenserMachineConfig{
			TomatoPumpPin:    cfg.Raspberry.TomatoPumpPin,
			MustardPumpPin:   cfg.Raspberry.MustardPumpPin,
			TomatoButtonPin:  cfg.Raspberry.TomatoButtonPin,
			MustardButtonPin: cfg.Raspberry.MustardButtonPin,
			Logger:           log.New().WithField("system", "machine"),
		})

		log.Infof("Created Raspberry Pi machine with pumps on pins %v and %v.",
			cfg.Raspberry.TomatoPumpPin, cfg.Raspberry.MustardPumpPin)
	case "mock":
		m = machine.NewMockMachine()

		log.Info("Created a mock machine.")
	default:
		return errors.Errorf("Unknown machine type %v", cfg.Machine)
	}

	if err := m.Start(); err != nil {
		return errors.Errorf("Could not start machine: %v", err)
	}

	defer func() {
		err := m.Stop()
		if err != nil {
			log.Errorf("Could not properly stop machine: %v", err)
		} else {
			log.Infof("Stopped machine.")
		}
	}()

	// Usage counters, loaded once before first use
	store := stats.NewStore(&stats.Config{
		DB:     sauceDB,
		Logger: log.New().WithField("system", "stats"),
	})

	store.Load()

	log.Infof("Loaded counters.")

	// The local control surface for the touch UI
	a := api.New(&api.Config{
		Log:      log.New().WithField("system", "api"),
		SauceLog: sauceLog,
	})

	log.Infof("Created API")

	// central controller for everything the dispenser does
	d := dispenser.NewDispenser(&dispenser.Config{
		Machine:      m,
		Stats:        store,
		DispenseTime: secondsToDuration(cfg.DispenseTime),
		MinInterval:  secondsToDuration(cfg.MinInterval),
		ApiListen:    cfg.Listen,
		Logger:       log.New().WithField("system", "dispenser"),
		Api:          a,
		Version:      Version,
	})

	log.Infof("Created dispenser.")

	// Handle interrupt signals correctly
	go func() {
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, os.Interrupt)
		sig := <-signals
		log.Info(sig)
		log.Info("Received an interrupt, stopping dispenser...")
		d.Shutdown()
	}()

	// blocks until the dispenser is shut down
	err = d.Run()
	if err != nil {
		return errors.Errorf("Failed running dispenser: %v", err)
	}

	// finish with no error
	return nil
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

func main() {
	// Call the "real" main in a nested manner so the defers will properly
	// be executed in the case of a graceful shutdown.
	if err := saucedMain(); err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
		} else {
			log.WithError(err).Println("Failed running sauced.")
		}
		os.Exit(1)
	}
}
