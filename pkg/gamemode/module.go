// Package gamemode implements named, config-loaded descriptions of the game
// variants a server can offer for voting.
package gamemode

import (
	"fmt"
	"strings"

	"github.com/mkarren/ballot/pkg/config"
	"github.com/mkarren/ballot/pkg/data"

	"github.com/repeale/fp-go"
	"github.com/rs/zerolog"
)

const (
	// Difficulty label applied when a mode does not declare one.
	DefaultDifficulty = "Hell On Earth"
	// Map prefix applied when a mode does not declare one.
	DefaultMapPrefix = "KF"
	// Game type applied when a mode does not declare one.
	DefaultGameType = "KFGameType"
)

// Characters that would corrupt the host's URL-style option string or its
// comma-joined add-on string.
const unsafeChars = "?=, \t"

// Option is one server option a mode applies on top of the host's settings.
type Option struct {
	Key   string
	Value string
}

// GameMode describes one selectable game variant. Instances are built once
// from configuration and never mutated afterwards.
type GameMode struct {
	Name       string
	Title      string
	Difficulty string
	GameType   string
	Acronym    string
	MapPrefix  string
	Options    []Option
	Include    []string
	Exclude    []string
}

// Load builds a GameMode from its configuration section, filling defaulted
// fields: an empty difficulty becomes DefaultDifficulty, an empty acronym
// becomes the mode's own name, an empty map prefix becomes DefaultMapPrefix.
// Empty add-on lists are stored as nil so a loaded mode and one rebuilt
// through FromData compare equal.
func Load(section config.Mode) *GameMode {
	mode := &GameMode{
		Name:       section.Name,
		Title:      section.Title,
		Difficulty: section.Difficulty,
		GameType:   section.GameType,
		Acronym:    section.Acronym,
		MapPrefix:  section.MapPrefix,
	}

	if len(section.Include) > 0 {
		mode.Include = append([]string(nil), section.Include...)
	}
	if len(section.Exclude) > 0 {
		mode.Exclude = append([]string(nil), section.Exclude...)
	}

	for _, option := range section.Options {
		mode.Options = append(mode.Options, Option{
			Key:   option.Key,
			Value: option.Value,
		})
	}

	if mode.Title == "" {
		mode.Title = mode.Name
	}
	if mode.Difficulty == "" {
		mode.Difficulty = DefaultDifficulty
	}
	if mode.GameType == "" {
		mode.GameType = DefaultGameType
	}
	if mode.Acronym == "" {
		mode.Acronym = mode.Name
	}
	if mode.MapPrefix == "" {
		mode.MapPrefix = DefaultMapPrefix
	}

	return mode
}

func optionSafe(option Option) bool {
	return !strings.ContainsAny(option.Key, unsafeChars) &&
		!strings.ContainsAny(option.Value, unsafeChars)
}

func addonSafe(addon string) bool {
	return !strings.ContainsAny(addon, unsafeChars)
}

// EffectiveOptions returns the mode's options with unsafe pairs dropped.
// Use ValidateOptions to report the dropped pairs.
func (g *GameMode) EffectiveOptions() []Option {
	return fp.Filter(optionSafe)(g.Options)
}

// ValidateOptions logs one warning for every option pair that
// EffectiveOptions excludes. Bad entries are not fatal; they are dropped
// from the effective set and only reported.
func (g *GameMode) ValidateOptions(logger zerolog.Logger) {
	for _, option := range g.Options {
		if optionSafe(option) {
			continue
		}

		logger.Warn().
			Str("mode", g.Name).
			Str("key", option.Key).
			Str("value", option.Value).
			Msg("dropping option with characters unsafe for the host option string")
	}
}

// EffectiveAddons returns the included add-ons with unsafe entries dropped.
func (g *GameMode) EffectiveAddons() []string {
	return fp.Filter(addonSafe)(g.Include)
}

// ValidateAddons logs one warning for every add-on entry that
// EffectiveAddons excludes.
func (g *GameMode) ValidateAddons(logger zerolog.Logger) {
	for _, addon := range g.Include {
		if addonSafe(addon) {
			continue
		}

		logger.Warn().
			Str("mode", g.Name).
			Str("addon", addon).
			Msg("dropping add-on with characters unsafe for the host add-on string")
	}
}

// OptionString encodes the effective options the way the host expects them:
// key=value pairs joined by '?'.
func (g *GameMode) OptionString() string {
	options := g.EffectiveOptions()
	parts := make([]string, 0, len(options))
	for _, option := range options {
		parts = append(parts, fmt.Sprintf("%s=%s", option.Key, option.Value))
	}
	return strings.Join(parts, "?")
}

// AddonString encodes the effective included add-ons as a comma-joined list.
func (g *GameMode) AddonString() string {
	return strings.Join(g.EffectiveAddons(), ",")
}

func stringSequence(values []string) data.Sequence {
	sequence := make(data.Sequence, 0, len(values))
	for _, v := range values {
		sequence = append(sequence, data.String(v))
	}
	return sequence
}

// ToData converts the mode into a generic ordered tree so it can be
// introspected or round-tripped without referencing host types.
func (g *GameMode) ToData() *data.Mapping {
	tree := data.NewMapping()
	tree.Set("name", data.String(g.Name))
	tree.Set("title", data.String(g.Title))
	tree.Set("difficulty", data.String(g.Difficulty))
	tree.Set("gameType", data.String(g.GameType))
	tree.Set("acronym", data.String(g.Acronym))
	tree.Set("mapPrefix", data.String(g.MapPrefix))

	options := make(data.Sequence, 0, len(g.Options))
	for _, option := range g.Options {
		entry := data.NewMapping()
		entry.Set("key", data.String(option.Key))
		entry.Set("value", data.String(option.Value))
		options = append(options, entry)
	}
	tree.Set("options", options)

	tree.Set("include", stringSequence(g.Include))
	tree.Set("exclude", stringSequence(g.Exclude))
	return tree
}

// FromData rebuilds a mode from the tree produced by ToData. The conversion
// is lossless for every declared field, including option order.
func FromData(tree *data.Mapping) (*GameMode, error) {
	name, ok := tree.GetString("name")
	if !ok || name == "" {
		return nil, fmt.Errorf("mode tree has no name")
	}

	mode := &GameMode{Name: name}
	mode.Title, _ = tree.GetString("title")
	mode.Difficulty, _ = tree.GetString("difficulty")
	mode.GameType, _ = tree.GetString("gameType")
	mode.Acronym, _ = tree.GetString("acronym")
	mode.MapPrefix, _ = tree.GetString("mapPrefix")

	if options, ok := tree.GetSequence("options"); ok {
		for _, node := range options {
			entry, ok := node.(*data.Mapping)
			if !ok {
				return nil, fmt.Errorf("mode %s: option entry is not a mapping", name)
			}

			key, _ := entry.GetString("key")
			value, _ := entry.GetString("value")
			mode.Options = append(mode.Options, Option{Key: key, Value: value})
		}
	}

	if include, ok := tree.GetSequence("include"); ok && len(include) > 0 {
		mode.Include = include.Strings()
	}
	if exclude, ok := tree.GetSequence("exclude"); ok && len(exclude) > 0 {
		mode.Exclude = exclude.Strings()
	}

	return mode, nil
}
