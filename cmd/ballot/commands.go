package main

import (
	"context"
	"fmt"

	"github.com/mkarren/ballot/pkg/config"
	"github.com/mkarren/ballot/pkg/gamemode"
	"github.com/mkarren/ballot/pkg/state"
	"github.com/mkarren/ballot/pkg/voting"

	"github.com/rs/zerolog/log"
)

func loadRegistry(configs []string) (*config.Config, *gamemode.Registry, error) {
	cfg, err := config.Process(configs)
	if err != nil {
		return nil, nil, err
	}

	registry, err := gamemode.NewRegistry(cfg.Server.Modes)
	if err != nil {
		return nil, nil, err
	}

	return cfg, registry, nil
}

func checkCommand(configs []string) error {
	_, registry, err := loadRegistry(configs)
	if err != nil {
		return err
	}

	for _, mode := range registry.All() {
		mode.ValidateOptions(log.Logger)
		mode.ValidateAddons(log.Logger)
	}

	log.Info().Int("modes", registry.Len()).Msg("configuration is valid")
	return nil
}

func modesCommand(configs []string) error {
	_, registry, err := loadRegistry(configs)
	if err != nil {
		return err
	}

	for _, mode := range registry.All() {
		fmt.Printf(
			"%s\t%s\t%s (%g)\t%s\n",
			mode.Name,
			mode.Title,
			mode.Difficulty,
			gamemode.ResolveDifficulty(mode.Difficulty),
			mode.GameType,
		)
	}

	return nil
}

func tableCommand(configs []string) error {
	_, registry, err := loadRegistry(configs)
	if err != nil {
		return err
	}

	for i, mode := range registry.All() {
		mode.ValidateOptions(log.Logger)
		mode.ValidateAddons(log.Logger)

		row := voting.BuildRow(mode)
		fmt.Printf(
			"%d\t%s\t%s\t%s\t%s\t%q\t%q\n",
			i,
			row.GameType,
			row.DisplayName,
			row.MapPrefix,
			row.Acronym,
			row.Addons,
			row.Options,
		)
	}

	return nil
}

func historyCommand(configs []string, limit int) error {
	cfg, _, err := loadRegistry(configs)
	if err != nil {
		return err
	}

	if cfg.Server.DBPath == "" {
		return fmt.Errorf("no dbPath configured, mode switch history is disabled")
	}

	db, err := state.InitDB(cfg.Server.DBPath)
	if err != nil {
		return err
	}

	switches, err := state.RecentSwitches(context.Background(), db, limit)
	if err != nil {
		return err
	}

	for _, entry := range switches {
		fmt.Printf(
			"%s\t%s\t%g\n",
			entry.CreatedAt.Format("2006-01-02 15:04:05"),
			entry.Mode,
			entry.Difficulty,
		)
	}

	return nil
}
