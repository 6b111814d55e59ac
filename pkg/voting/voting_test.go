package voting

import (
	"context"
	"testing"

	"github.com/mkarren/ballot/pkg/checkpoint"
	"github.com/mkarren/ballot/pkg/config"
	"github.com/mkarren/ballot/pkg/gamemode"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var _ Handler = &mockHandler{}
var _ Session = &mockSession{}

type mockHandler struct {
	rows        []Row
	defaults    []Row
	selected    int
	voteRestart bool
	saves       int
}

func (h *mockHandler) Rows() []Row                { return h.rows }
func (h *mockHandler) SetRows(rows []Row)         { h.rows = rows }
func (h *mockHandler) SetDefaultRows(rows []Row)  { h.defaults = rows }
func (h *mockHandler) SelectedIndex() int         { return h.selected }
func (h *mockHandler) VoteTriggeredRestart() bool { return h.voteRestart }

func (h *mockHandler) SaveConfig() error {
	h.saves++
	return nil
}

type mockSession struct {
	handler    *mockHandler
	difficulty float64
}

func (s *mockSession) FindVoteHandler() Handler {
	if s.handler == nil {
		return nil
	}
	return s.handler
}

func (s *mockSession) DefaultDifficulty() float64 { return s.difficulty }

func (s *mockSession) SetDefaultDifficulty(value float64) { s.difficulty = value }

func testRegistry(t *testing.T) *gamemode.Registry {
	registry, err := gamemode.NewRegistry([]config.Mode{
		{Name: "alpha", Difficulty: "normal"},
		{Name: "beta", Difficulty: "hard"},
		{Name: "gamma", Difficulty: "hell on earth"},
	})
	require.NoError(t, err)
	return registry
}

func hostRows() []Row {
	return []Row{
		{GameType: "KFGameType", DisplayName: "Killing Floor", MapPrefix: "KF", Acronym: "KF"},
		{GameType: "KFStoryGameInfo", DisplayName: "Objective", MapPrefix: "KFO", Acronym: "O"},
	}
}

func TestInjectAndRestore(t *testing.T) {
	original := hostRows()
	handler := &mockHandler{rows: hostRows()}
	session := &mockSession{handler: handler}
	adapter := NewAdapter(session, checkpoint.NewMemoryStore(), zerolog.Nop())

	registry := testRegistry(t)
	adapter.Inject(registry.All())

	require.Len(t, handler.rows, 3)
	require.Equal(t, "beta", handler.rows[1].DisplayName)

	adapter.RestoreBackup()

	// Byte-for-byte what the host had before injection, in both copies, and
	// persisted once.
	require.Equal(t, original, handler.rows)
	require.Equal(t, original, handler.defaults)
	require.Equal(t, 1, handler.saves)
}

func TestInjectIdempotent(t *testing.T) {
	handler := &mockHandler{rows: hostRows()}
	session := &mockSession{handler: handler}
	adapter := NewAdapter(session, checkpoint.NewMemoryStore(), zerolog.Nop())

	registry := testRegistry(t)
	adapter.Inject(registry.All())
	injected := append([]Row(nil), handler.rows...)

	// A second injection must not re-snapshot or rebuild anything.
	adapter.Inject(registry.All()[:1])
	require.Equal(t, injected, handler.rows)

	adapter.RestoreBackup()
	require.Equal(t, hostRows(), handler.rows)
}

func TestInjectWithoutHandler(t *testing.T) {
	session := &mockSession{}
	adapter := NewAdapter(session, checkpoint.NewMemoryStore(), zerolog.Nop())

	// Absent voting component: injection is simply skipped.
	adapter.Inject(testRegistry(t).All())
	require.Nil(t, adapter.PrepareForTravel(context.Background()))
	adapter.RestoreBackup()
}

func TestTravelRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := checkpoint.NewMemoryStore()
	registry := testRegistry(t)

	handler := &mockHandler{
		rows:        hostRows(),
		selected:    1,
		voteRestart: true,
	}
	session := &mockSession{handler: handler, difficulty: 2}

	adapter := NewAdapter(session, store, zerolog.Nop())
	adapter.Inject(registry.All())

	departure := adapter.PrepareForTravel(ctx)
	require.NotNil(t, departure)
	require.Equal(t, "beta", departure.Mode)
	require.Equal(t, 4.0, departure.Difficulty)

	// The restart launches with beta's difficulty baked into the host
	// default.
	require.Equal(t, 4.0, session.difficulty)

	// The restart destroys everything; only the store and the host session
	// survive. A fresh adapter must recover the choice and the old default.
	fresh := NewAdapter(session, store, zerolog.Nop())
	mode := fresh.SetupAfterTravel(ctx, registry)
	require.NotNil(t, mode)
	require.Equal(t, registry.Get("beta"), mode)
	require.Equal(t, 2.0, session.difficulty)

	// The checkpoint is consumed.
	require.Nil(t, fresh.SetupAfterTravel(ctx, registry))
}

func TestTravelNotVoteDriven(t *testing.T) {
	ctx := context.Background()
	store := checkpoint.NewMemoryStore()
	registry := testRegistry(t)

	handler := &mockHandler{rows: hostRows(), selected: 0}
	session := &mockSession{handler: handler, difficulty: 2}

	adapter := NewAdapter(session, store, zerolog.Nop())
	adapter.Inject(registry.All())

	// Admin map change: nothing may be persisted.
	require.Nil(t, adapter.PrepareForTravel(ctx))
	require.Equal(t, 2.0, session.difficulty)

	fresh := NewAdapter(session, store, zerolog.Nop())
	require.Nil(t, fresh.SetupAfterTravel(ctx, registry))
}

func TestTravelIndexOutOfRange(t *testing.T) {
	ctx := context.Background()
	store := checkpoint.NewMemoryStore()
	registry := testRegistry(t)

	handler := &mockHandler{
		rows:        hostRows(),
		selected:    5,
		voteRestart: true,
	}
	session := &mockSession{handler: handler, difficulty: 2}

	adapter := NewAdapter(session, store, zerolog.Nop())
	adapter.Inject(registry.All())

	require.Nil(t, adapter.PrepareForTravel(ctx))

	// Aborting must not mutate persisted state or the host difficulty; the
	// next map boots with default behavior.
	require.Equal(t, 2.0, session.difficulty)
	fresh := NewAdapter(session, store, zerolog.Nop())
	require.Nil(t, fresh.SetupAfterTravel(ctx, registry))
}

func TestTravelIndexBeyondModeList(t *testing.T) {
	ctx := context.Background()
	store := checkpoint.NewMemoryStore()
	registry := testRegistry(t)

	handler := &mockHandler{
		rows:        hostRows(),
		selected:    1,
		voteRestart: true,
	}
	session := &mockSession{handler: handler, difficulty: 2}

	adapter := NewAdapter(session, store, zerolog.Nop())
	adapter.Inject(registry.All()[:1])

	// The host grew its table behind our back; index 1 is valid against
	// the live table but not against the injected mode list.
	handler.rows = append(handler.rows, Row{DisplayName: "interloper"})

	require.Nil(t, adapter.PrepareForTravel(ctx))
	fresh := NewAdapter(session, store, zerolog.Nop())
	require.Nil(t, fresh.SetupAfterTravel(ctx, registry))
}

func TestBuildRow(t *testing.T) {
	mode := gamemode.Load(config.Mode{
		Name:       "heavy",
		Title:      "Heavy Metal",
		Difficulty: "suicidal",
		Acronym:    "HM",
		Options: []config.ModeOption{
			{Key: "MaxPlayers", Value: "10"},
			{Key: "Bad Key", Value: "x"},
		},
		Include: []string{"more-guns"},
	})

	row := BuildRow(mode)
	require.Equal(t, "Heavy Metal", row.DisplayName)
	require.Equal(t, "HM", row.Acronym)
	require.Equal(t, gamemode.DefaultMapPrefix, row.MapPrefix)
	require.Equal(t, "more-guns", row.Addons)
	// The malformed pair is dropped from the encoded options.
	require.Equal(t, "MaxPlayers=10", row.Options)
}
