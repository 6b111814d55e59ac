package voting

// Row is one entry of the host voting component's option table. The host
// reports a choice only as an index into this table, so row order is the
// entire contract.
type Row struct {
	GameType    string
	DisplayName string
	MapPrefix   string
	Acronym     string
	// Comma-joined add-on list.
	Addons string
	// key=value pairs joined by '?'.
	Options string
}

// Handler is the narrow contract with the host's voting component. The host
// owns the component and persists its table to its own storage; the adapter
// only reads and writes these fields.
type Handler interface {
	// The live option table.
	Rows() []Row
	SetRows(rows []Row)
	// The component's persisted-default copy of the table.
	SetDefaultRows(rows []Row)
	// Index of the option the players chose.
	SelectedIndex() int
	// Whether the pending restart was triggered by a vote, as opposed to an
	// admin map change.
	VoteTriggeredRestart() bool
	// Ask the component to persist its current configuration.
	SaveConfig() error
}

// Session is the slice of the host engine session the adapter needs.
type Session interface {
	// The single live voting component, or nil when none exists.
	FindVoteHandler() Handler
	DefaultDifficulty() float64
	SetDefaultDifficulty(value float64)
}
