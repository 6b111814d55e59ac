package config

// ModeOption is one server option a game mode applies, expressed as an
// ordered (key, value) pair. Order matters: the option string handed to the
// host preserves the order options were declared in.
type ModeOption struct {
	Key   string
	Value string
}

// Mode is one named, selectable game-mode section.
type Mode struct {
	Name       string
	Title      string
	Difficulty string
	GameType   string
	Acronym    string
	MapPrefix  string
	Options    []ModeOption
	Include    []string
	Exclude    []string
}

type RedisSettings struct {
	Enabled  bool
	Address  string
	Password string
	DB       int
}

type CheckpointSettings struct {
	Redis RedisSettings
}

type VotingSettings struct {
	Enabled bool
}

type FeatureSettings struct {
	Kind   string
	Config string
}

type ServerSettings struct {
	DBPath     string
	Packages   []string
	Voting     VotingSettings
	Checkpoint CheckpointSettings
	Features   []FeatureSettings
	Modes      []Mode
}

type Config struct {
	Server ServerSettings
}
