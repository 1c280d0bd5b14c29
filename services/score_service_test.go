package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Dosada05/esports-scoreboard/models"
	"github.com/Dosada05/esports-scoreboard/repositories"
)

// fakeScoreRepo keeps counters in memory and applies deltas the way the real
// repository does: relatively, scoped by (match_id, team_id).
type fakeScoreRepo struct {
	rows map[[2]int]*models.ScoreRow

	failWith error
}

func newFakeScoreRepo() *fakeScoreRepo {
	return &fakeScoreRepo{rows: make(map[[2]int]*models.ScoreRow)}
}

func (f *fakeScoreRepo) addRow(matchID, teamID int) {
	f.rows[[2]int{matchID, teamID}] = &models.ScoreRow{MatchID: matchID, TeamID: teamID}
}

func (f *fakeScoreRepo) CreateForTeam(_ context.Context, _ repositories.SQLExecutor, matchID, teamID int) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.addRow(matchID, teamID)
	return nil
}

func (f *fakeScoreRepo) AddPoints(_ context.Context, _ repositories.SQLExecutor, matchID, teamID, delta int) error {
	if f.failWith != nil {
		return f.failWith
	}
	row, ok := f.rows[[2]int{matchID, teamID}]
	if !ok {
		return repositories.ErrScoreRowNotFound
	}
	row.Points += delta
	return nil
}

func (f *fakeScoreRepo) AddEliminations(_ context.Context, _ repositories.SQLExecutor, matchID, teamID, delta int) error {
	if f.failWith != nil {
		return f.failWith
	}
	row, ok := f.rows[[2]int{matchID, teamID}]
	if !ok {
		return repositories.ErrScoreRowNotFound
	}
	row.Eliminations += delta
	return nil
}

func (f *fakeScoreRepo) SetEliminated(_ context.Context, _ repositories.SQLExecutor, matchID, teamID int, eliminated bool) error {
	row, ok := f.rows[[2]int{matchID, teamID}]
	if !ok {
		return repositories.ErrScoreRowNotFound
	}
	row.IsEliminated = eliminated
	return nil
}

func (f *fakeScoreRepo) GetByMatchAndTeam(_ context.Context, _ repositories.SQLExecutor, matchID, teamID int) (*models.ScoreRow, error) {
	row, ok := f.rows[[2]int{matchID, teamID}]
	if !ok {
		return nil, repositories.ErrScoreRowNotFound
	}
	return row, nil
}

func (f *fakeScoreRepo) ListByMatch(_ context.Context, _ repositories.SQLExecutor, matchID int) ([]*models.ScoreRow, error) {
	var out []*models.ScoreRow
	for key, row := range f.rows {
		if key[0] == matchID {
			out = append(out, row)
		}
	}
	return out, nil
}

// fakeNotifier records every event the services emit.
type fakeNotifier struct {
	matchUpdated []int
	teamsChanged []int
	gameUpdated  []int
	gamesChanged int
}

func (f *fakeNotifier) MatchUpdated(_ context.Context, matchID int) {
	f.matchUpdated = append(f.matchUpdated, matchID)
}

func (f *fakeNotifier) TeamsChanged(_ context.Context, matchID int) {
	f.teamsChanged = append(f.teamsChanged, matchID)
}

func (f *fakeNotifier) GameUpdated(_ context.Context, gameID int) {
	f.gameUpdated = append(f.gameUpdated, gameID)
}

func (f *fakeNotifier) GamesChanged(_ context.Context) {
	f.gamesChanged++
}

func TestAddPointsComposesRelativeDeltas(t *testing.T) {
	repo := newFakeScoreRepo()
	repo.addRow(1, 7)
	notifier := &fakeNotifier{}
	svc := NewScoreService(repo, notifier)

	deltas := []int{1, 2, -1, 5, -3}
	sum := 0
	for _, d := range deltas {
		if err := svc.AddPoints(context.Background(), 1, 7, d); err != nil {
			t.Fatalf("AddPoints(%d) failed: %v", d, err)
		}
		sum += d
	}

	row, _ := repo.GetByMatchAndTeam(context.Background(), nil, 1, 7)
	if row.Points != sum {
		t.Errorf("stored points = %d, want sum of deltas %d", row.Points, sum)
	}
	if len(notifier.matchUpdated) != len(deltas) {
		t.Errorf("expected %d broadcasts, got %d", len(deltas), len(notifier.matchUpdated))
	}
}

func TestAddPointsAllowsNegativeTotal(t *testing.T) {
	repo := newFakeScoreRepo()
	repo.addRow(1, 7)
	svc := NewScoreService(repo, &fakeNotifier{})

	if err := svc.AddPoints(context.Background(), 1, 7, -4); err != nil {
		t.Fatalf("negative delta rejected: %v", err)
	}
	row, _ := repo.GetByMatchAndTeam(context.Background(), nil, 1, 7)
	if row.Points != -4 {
		t.Errorf("expected points to go negative without a floor, got %d", row.Points)
	}
}

func TestAddPointsMissingScoreRow(t *testing.T) {
	repo := newFakeScoreRepo()
	notifier := &fakeNotifier{}
	svc := NewScoreService(repo, notifier)

	err := svc.AddPoints(context.Background(), 1, 99, 3)
	if !errors.Is(err, ErrScoreRowNotFound) {
		t.Errorf("expected ErrScoreRowNotFound, got %v", err)
	}
	if len(notifier.matchUpdated) != 0 {
		t.Error("no broadcast must go out for a rejected mutation")
	}
}

func TestAddPointsStoreFailureSkipsBroadcast(t *testing.T) {
	repo := newFakeScoreRepo()
	repo.addRow(1, 7)
	repo.failWith = errors.New("connection reset")
	notifier := &fakeNotifier{}
	svc := NewScoreService(repo, notifier)

	if err := svc.AddPoints(context.Background(), 1, 7, 1); err == nil {
		t.Fatal("expected store error to surface")
	}
	if len(notifier.matchUpdated) != 0 {
		t.Error("subscribers must never hear about a mutation that failed to persist")
	}
}

func TestAddEliminations(t *testing.T) {
	repo := newFakeScoreRepo()
	repo.addRow(2, 4)
	notifier := &fakeNotifier{}
	svc := NewScoreService(repo, notifier)

	if err := svc.AddEliminations(context.Background(), 2, 4, 3); err != nil {
		t.Fatalf("AddEliminations failed: %v", err)
	}

	row, _ := repo.GetByMatchAndTeam(context.Background(), nil, 2, 4)
	if row.Eliminations != 3 {
		t.Errorf("eliminations = %d, want 3", row.Eliminations)
	}
	if row.Points != 0 {
		t.Errorf("points must stay untouched, got %d", row.Points)
	}
	if len(notifier.matchUpdated) != 1 || notifier.matchUpdated[0] != 2 {
		t.Errorf("expected one broadcast for match 2, got %v", notifier.matchUpdated)
	}
}

func TestSetEliminatedLeavesCountersAlone(t *testing.T) {
	repo := newFakeScoreRepo()
	repo.addRow(1, 7)
	repo.rows[[2]int{1, 7}].Points = 5
	repo.rows[[2]int{1, 7}].Eliminations = 2
	notifier := &fakeNotifier{}
	svc := NewScoreService(repo, notifier)

	if err := svc.SetEliminated(context.Background(), 1, 7, true); err != nil {
		t.Fatalf("SetEliminated failed: %v", err)
	}

	row, _ := repo.GetByMatchAndTeam(context.Background(), nil, 1, 7)
	if !row.IsEliminated {
		t.Error("expected eliminated flag to be set")
	}
	if row.Points != 5 || row.Eliminations != 2 {
		t.Errorf("counters changed: points=%d elms=%d", row.Points, row.Eliminations)
	}

	// Revive flips the flag back, still without touching counters.
	if err := svc.SetEliminated(context.Background(), 1, 7, false); err != nil {
		t.Fatalf("revive failed: %v", err)
	}
	if row.IsEliminated {
		t.Error("expected eliminated flag to be cleared")
	}
	if len(notifier.matchUpdated) != 2 {
		t.Errorf("expected 2 broadcasts, got %d", len(notifier.matchUpdated))
	}
}
