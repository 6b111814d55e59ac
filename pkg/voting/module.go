// Package voting rewrites the host voting component's option table with
// configured game modes and recovers which mode won after the vote-driven
// restart. Every interaction with the host's implicit index-based protocol
// is bounds-checked here and nowhere else.
package voting

import (
	"context"

	"github.com/mkarren/ballot/pkg/checkpoint"
	"github.com/mkarren/ballot/pkg/gamemode"

	"github.com/rs/zerolog"
)

// Departure describes a successfully prepared travel: which mode won and
// the numeric difficulty the next map will launch with.
type Departure struct {
	Mode       string
	Difficulty float64
}

// Adapter owns the injection into the host voting component. Row i of the
// injected table corresponds to mode i of the list passed to Inject; the
// host has no other way to report which mode was picked.
type Adapter struct {
	session Session
	store   checkpoint.Store
	logger  zerolog.Logger

	handler  Handler
	modes    []*gamemode.GameMode
	backup   []Row
	injected bool
}

func NewAdapter(
	session Session,
	store checkpoint.Store,
	logger zerolog.Logger,
) *Adapter {
	return &Adapter{
		session: session,
		store:   store,
		logger:  logger,
	}
}

// BuildRow derives the voting table entry for one mode.
func BuildRow(mode *gamemode.GameMode) Row {
	return Row{
		GameType:    mode.GameType,
		DisplayName: mode.Title,
		MapPrefix:   mode.MapPrefix,
		Acronym:     mode.Acronym,
		Addons:      mode.AddonString(),
		Options:     mode.OptionString(),
	}
}

// Inject backs up the host's current option table and replaces it with one
// row per mode, order preserved. A second call without an intervening
// RestoreBackup is a no-op. When no voting component exists the injection
// is skipped for this session; the server keeps running without it.
func (a *Adapter) Inject(modes []*gamemode.GameMode) {
	if a.injected {
		a.logger.Debug().Msg("voting table already injected")
		return
	}

	handler := a.session.FindVoteHandler()
	if handler == nil {
		a.logger.Error().Msg("host voting component not found, game mode voting disabled")
		return
	}

	a.backup = append([]Row(nil), handler.Rows()...)

	rows := make([]Row, 0, len(modes))
	for _, mode := range modes {
		mode.ValidateOptions(a.logger)
		mode.ValidateAddons(a.logger)
		rows = append(rows, BuildRow(mode))
	}

	handler.SetRows(rows)

	a.handler = handler
	a.modes = modes
	a.injected = true

	a.logger.Info().Int("modes", len(modes)).Msg("injected voting table")
}

// PrepareForTravel captures the chosen mode before a vote-driven restart:
// it persists the mode's name and the host's current default difficulty to
// the checkpoint store, then overwrites the host default difficulty with
// the mode's resolved value so the restart launches with it. Returns nil
// when there is nothing to do or the host-reported index is invalid; in
// the invalid case no state is persisted and the next map boots with
// default behavior.
func (a *Adapter) PrepareForTravel(ctx context.Context) *Departure {
	if !a.injected {
		return nil
	}

	if !a.handler.VoteTriggeredRestart() {
		a.logger.Debug().Msg("restart not triggered by vote, nothing to carry over")
		return nil
	}

	index := a.handler.SelectedIndex()

	live := a.handler.Rows()
	if index < 0 || index >= len(live) {
		a.logger.Error().
			Int("index", index).
			Int("rows", len(live)).
			Msg("selected index outside the host voting table")
		return nil
	}

	if index >= len(a.modes) {
		a.logger.Error().
			Int("index", index).
			Int("modes", len(a.modes)).
			Msg("selected index outside the injected mode list")
		return nil
	}

	mode := a.modes[index]
	resolved := gamemode.ResolveDifficulty(mode.Difficulty)
	prior := a.session.DefaultDifficulty()

	err := a.store.Save(ctx, checkpoint.Checkpoint{
		Traveling:        true,
		TargetMode:       mode.Name,
		StoredDifficulty: prior,
	})
	if err != nil {
		a.logger.Error().Err(err).Msg("failed to persist travel checkpoint")
		return nil
	}

	a.session.SetDefaultDifficulty(resolved)

	a.logger.Info().
		Str("mode", mode.Name).
		Float64("difficulty", resolved).
		Msg("prepared for travel")

	return &Departure{
		Mode:       mode.Name,
		Difficulty: resolved,
	}
}

// SetupAfterTravel runs once in the fresh post-restart session. It consumes
// the checkpoint, restores the host default difficulty that PrepareForTravel
// overwrote, and returns the mode the players chose. Returns nil when the
// restart was not vote-driven or no adapter ran before it.
func (a *Adapter) SetupAfterTravel(
	ctx context.Context,
	registry *gamemode.Registry,
) *gamemode.GameMode {
	cp, ok, err := a.store.Take(ctx)
	if err != nil {
		a.logger.Error().Err(err).Msg("failed to read travel checkpoint")
		return nil
	}
	if !ok || !cp.Traveling {
		return nil
	}

	a.session.SetDefaultDifficulty(cp.StoredDifficulty)

	mode := registry.Get(cp.TargetMode)
	if mode == nil {
		a.logger.Warn().
			Str("mode", cp.TargetMode).
			Msg("checkpointed mode is no longer configured")
		return nil
	}

	a.logger.Info().Str("mode", mode.Name).Msg("resumed after travel")
	return mode
}

// RestoreBackup writes the pre-injection table back into the host's live
// and persisted-default copies and asks the host to persist it, so the
// host's own saved configuration is not corrupted by the override.
func (a *Adapter) RestoreBackup() {
	if !a.injected {
		return
	}

	a.handler.SetRows(a.backup)
	a.handler.SetDefaultRows(a.backup)
	if err := a.handler.SaveConfig(); err != nil {
		a.logger.Error().Err(err).Msg("host voting component failed to persist restored table")
	}

	a.handler = nil
	a.modes = nil
	a.backup = nil
	a.injected = false

	a.logger.Info().Msg("restored host voting table")
}
