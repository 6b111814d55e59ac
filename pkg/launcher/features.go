package launcher

import "github.com/mkarren/ballot/pkg/config"

// Feature is one optional capability the environment can switch on with a
// named configuration.
type Feature interface {
	Kind() string
	Enable(configName string) error
	Disable()
}

// FeaturePick pairs a feature kind with the configuration it should be
// enabled with.
type FeaturePick struct {
	Kind   string
	Config string
}

// Environment is the host's auto-configuration layer: it decides which
// features a session starts with.
type Environment interface {
	AutoConfig() []FeaturePick
}

// configEnvironment serves the configuration's feature list as the
// environment's auto-configuration.
type configEnvironment []config.FeatureSettings

func (e configEnvironment) AutoConfig() []FeaturePick {
	picks := make([]FeaturePick, 0, len(e))
	for _, settings := range e {
		picks = append(picks, FeaturePick{
			Kind:   settings.Kind,
			Config: settings.Config,
		})
	}
	return picks
}

func (l *Launcher) enableFeatures() {
	if l.opts.Environment == nil {
		return
	}

	known := make(map[string]Feature)
	for _, feature := range l.opts.Features {
		known[feature.Kind()] = feature
	}

	for _, pick := range l.opts.Environment.AutoConfig() {
		feature, ok := known[pick.Kind]
		if !ok {
			l.logger.Warn().
				Str("kind", pick.Kind).
				Msg("environment picked an unknown feature")
			continue
		}

		if err := feature.Enable(pick.Config); err != nil {
			l.logger.Error().
				Err(err).
				Str("kind", pick.Kind).
				Str("config", pick.Config).
				Msg("feature failed to enable")
			continue
		}

		l.enabled = append(l.enabled, feature)
		l.logger.Info().
			Str("kind", pick.Kind).
			Str("config", pick.Config).
			Msg("feature enabled")
	}
}

// disableFeatures shuts enabled features down in reverse enable order.
func (l *Launcher) disableFeatures() {
	for i := len(l.enabled) - 1; i >= 0; i-- {
		l.enabled[i].Disable()
	}
	l.enabled = nil
}
