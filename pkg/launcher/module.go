// Package launcher sequences startup and teardown of the mode-voting
// subsystem inside one host server session: leftover-object diagnostics,
// single-instance enforcement, signal rewiring, voting injection, and
// feature enablement.
package launcher

import (
	"context"
	"errors"

	"github.com/mkarren/ballot/pkg/checkpoint"
	"github.com/mkarren/ballot/pkg/config"
	"github.com/mkarren/ballot/pkg/gamemode"
	"github.com/mkarren/ballot/pkg/signals"
	"github.com/mkarren/ballot/pkg/state"
	"github.com/mkarren/ballot/pkg/voting"

	"github.com/rs/zerolog"
	"github.com/sasha-s/go-deadlock"
	"gorm.io/gorm"
)

// ErrAlreadyRunning is returned when a launcher is constructed while
// another one owns the session. Construction fails closed instead of
// tearing down the existing instance.
var ErrAlreadyRunning = errors.New("a launcher is already running for this session")

// StopHandler is the next link in the host's teardown chain.
type StopHandler interface {
	Stop(isRestart bool)
}

// Engine is the host engine session surface the launcher consumes. It
// extends the voting session contract with the diagnostics, callback and
// chain hooks used at startup and teardown.
type Engine interface {
	voting.Session

	// Count of still-alive host objects of the given base kind.
	LiveCount(kind string) int

	// Host callback registration. Each callback fires synchronously and at
	// most once per underlying host event.
	OnCommand(handler func(signals.CommandEvent))
	OnReplacementCheck(handler func(signals.ReplacementEvent) bool)
	OnLoginModification(handler func(*signals.LoginEvent))

	// The next teardown handler in the host chain, or nil.
	NextInChain() StopHandler
}

// The framework's base object kinds checked by the leftover scan.
var leftoverKinds = []string{"object", "entity", "record"}

// Options configures a Launcher. The checkpoint store is passed in
// explicitly: it is the only state that crosses the restart boundary, and
// it must be the same store on both sides of it.
type Options struct {
	Engine      Engine
	Environment Environment
	Registry    *gamemode.Registry
	Store       checkpoint.Store
	Features    []Feature
	Packages    []string
	Voting      bool
	// Optional mode-switch history; nil disables recording.
	DB     *gorm.DB
	Logger zerolog.Logger
}

// FromConfig builds Options from a processed configuration: the mode
// registry from the mode sections, the checkpoint backend the checkpoint
// settings select, feature picks from the features list, and the history DB
// when a path is configured. Feature implementations are host-supplied and
// set on the returned Options by the caller.
func FromConfig(cfg *config.Config, engine Engine, logger zerolog.Logger) (Options, error) {
	registry, err := gamemode.NewRegistry(cfg.Server.Modes)
	if err != nil {
		return Options{}, err
	}

	opts := Options{
		Engine:      engine,
		Environment: configEnvironment(cfg.Server.Features),
		Registry:    registry,
		Store:       checkpoint.StoreFromConfig(cfg.Server.Checkpoint),
		Packages:    cfg.Server.Packages,
		Voting:      cfg.Server.Voting.Enabled,
		Logger:      logger,
	}

	if cfg.Server.DBPath != "" {
		db, err := state.InitDB(cfg.Server.DBPath)
		if err != nil {
			return Options{}, err
		}
		opts.DB = db
	}

	return opts, nil
}

// Launcher is the per-session orchestrator. At most one exists per process;
// see Start.
type Launcher struct {
	ctx    context.Context
	opts   Options
	logger zerolog.Logger

	bus     *signals.Bus
	adapter *voting.Adapter
	enabled []Feature
	resumed *gamemode.GameMode
}

var slot struct {
	mutex  deadlock.Mutex
	active *Launcher
}

func claimSlot(l *Launcher) bool {
	slot.mutex.Lock()
	defer slot.mutex.Unlock()

	if slot.active != nil {
		return false
	}
	slot.active = l
	return true
}

func releaseSlot(l *Launcher) {
	slot.mutex.Lock()
	if slot.active == l {
		slot.active = nil
	}
	slot.mutex.Unlock()
}

// Start brings the subsystem up for a fresh session. If a previous session
// left a checkpoint behind, the chosen mode is recovered here and available
// through ResumedMode. Returns ErrAlreadyRunning when a launcher already
// owns the session.
func Start(ctx context.Context, opts Options) (*Launcher, error) {
	logger := opts.Logger

	// Correctness smoke check: a clean previous teardown leaves nothing
	// alive. Logged either way.
	summary := logger.Info()
	for _, kind := range leftoverKinds {
		summary = summary.Int(kind, opts.Engine.LiveCount(kind))
	}
	summary.Msg("leftover object scan")

	l := &Launcher{
		ctx:    ctx,
		opts:   opts,
		logger: logger,
		bus:    signals.New(),
	}

	if !claimSlot(l) {
		return nil, ErrAlreadyRunning
	}

	for _, pkg := range opts.Packages {
		logger.Info().Str("package", pkg).Msg("loaded package")
	}

	l.wireSignals()

	if opts.Voting {
		l.adapter = voting.NewAdapter(opts.Engine, opts.Store, logger)
		l.resumed = l.adapter.SetupAfterTravel(ctx, opts.Registry)
		l.adapter.Inject(opts.Registry.All())
	}

	l.enableFeatures()

	return l, nil
}

// wireSignals republishes the host's callbacks on the launcher's bus so
// collaborators subscribe to the bus instead of the host.
func (l *Launcher) wireSignals() {
	engine := l.opts.Engine

	engine.OnCommand(func(event signals.CommandEvent) {
		l.bus.DispatchCommand(event)
	})
	engine.OnReplacementCheck(func(event signals.ReplacementEvent) bool {
		return l.bus.DispatchReplacement(event)
	})
	engine.OnLoginModification(func(event *signals.LoginEvent) {
		l.bus.DispatchLogin(event)
	})
}

// Signals is the bus collaborators subscribe to.
func (l *Launcher) Signals() *signals.Bus {
	return l.bus
}

// ResumedMode is the mode chosen by vote before the restart that produced
// this session, or nil.
func (l *Launcher) ResumedMode() *gamemode.GameMode {
	return l.resumed
}

// Adapter returns the active voting adapter, or nil when voting is
// disabled or injection was skipped.
func (l *Launcher) Adapter() *voting.Adapter {
	return l.adapter
}

// Stop tears the subsystem down. With an active adapter it first captures
// the vote outcome for the upcoming restart, then restores the host's
// original voting table so the host persists unmodified data. Teardown is
// forwarded to the next handler in the host chain.
func (l *Launcher) Stop(isRestart bool) {
	if l.adapter != nil {
		departure := l.adapter.PrepareForTravel(l.ctx)
		if departure != nil && l.opts.DB != nil {
			err := state.RecordSwitch(
				l.ctx,
				l.opts.DB,
				departure.Mode,
				departure.Difficulty,
			)
			if err != nil {
				l.logger.Error().Err(err).Msg("failed to record mode switch")
			}
		}

		l.adapter.RestoreBackup()
		l.adapter = nil
	}

	releaseSlot(l)

	l.disableFeatures()

	l.logger.Info().Bool("restart", isRestart).Msg("launcher stopped")

	if next := l.opts.Engine.NextInChain(); next != nil {
		next.Stop(isRestart)
	}
}
