package services

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/Dosada05/esports-scoreboard/models"
	"github.com/Dosada05/esports-scoreboard/repositories"
	"github.com/Dosada05/esports-scoreboard/storage"
)

type fakeStandingsRepo struct {
	matchViews map[int][]*models.MatchStanding
	gameViews  map[int][]*models.OverallStanding
	failWith   error
}

func (f *fakeStandingsRepo) MatchView(_ context.Context, _ repositories.SQLExecutor, matchID int) ([]*models.MatchStanding, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.matchViews[matchID], nil
}

func (f *fakeStandingsRepo) GameView(_ context.Context, _ repositories.SQLExecutor, gameID int) ([]*models.OverallStanding, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.gameViews[gameID], nil
}

type fakeMatchRepo struct {
	matches map[int]*models.Match
}

func (f *fakeMatchRepo) Create(_ context.Context, _ repositories.SQLExecutor, _ *models.Match) error {
	return nil
}

func (f *fakeMatchRepo) GetByID(_ context.Context, _ repositories.SQLExecutor, id int) (*models.Match, error) {
	m, ok := f.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	return m, nil
}

func (f *fakeMatchRepo) ListByGame(_ context.Context, _ repositories.SQLExecutor, _ int) ([]*models.Match, error) {
	return nil, nil
}

func (f *fakeMatchRepo) Delete(_ context.Context, _ repositories.SQLExecutor, _ int) error {
	return nil
}

// fakeUploader resolves keys against a fixed base, the way the CDN-backed
// store does.
type fakeUploader struct{}

func (fakeUploader) Upload(_ context.Context, key, _ string, _ io.Reader) (*storage.UploadResult, error) {
	return &storage.UploadResult{Key: key}, nil
}

func (fakeUploader) Delete(_ context.Context, _ string) error { return nil }

func (fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

func strPtr(s string) *string { return &s }

func TestMatchViewResolvesLogoURLs(t *testing.T) {
	repo := &fakeStandingsRepo{
		matchViews: map[int][]*models.MatchStanding{
			3: {
				{TeamID: 1, Name: "Nova", LogoKey: strPtr("team_logos/nv.png")},
				{TeamID: 2, Name: "Raptors"},
			},
		},
	}
	svc := NewStandingsService(repo, &fakeMatchRepo{}, fakeUploader{})

	standings, err := svc.MatchView(context.Background(), 3)
	if err != nil {
		t.Fatalf("MatchView failed: %v", err)
	}
	if standings[0].LogoURL == nil || *standings[0].LogoURL != "https://cdn.example.com/team_logos/nv.png" {
		t.Errorf("logo URL not resolved: %v", standings[0].LogoURL)
	}
	if standings[1].LogoURL != nil {
		t.Errorf("team without logo must keep a nil URL, got %v", *standings[1].LogoURL)
	}
}

func TestMatchViewWithoutUploader(t *testing.T) {
	repo := &fakeStandingsRepo{
		matchViews: map[int][]*models.MatchStanding{
			3: {{TeamID: 1, Name: "Nova", LogoKey: strPtr("team_logos/nv.png")}},
		},
	}
	svc := NewStandingsService(repo, &fakeMatchRepo{}, nil)

	standings, err := svc.MatchView(context.Background(), 3)
	if err != nil {
		t.Fatalf("MatchView failed: %v", err)
	}
	if standings[0].LogoURL != nil {
		t.Error("no uploader configured, logo URL must stay nil")
	}
}

func TestGameViewResolvesLogoURLs(t *testing.T) {
	repo := &fakeStandingsRepo{
		gameViews: map[int][]*models.OverallStanding{
			7: {{Name: "Nova", LogoKey: strPtr("team_logos/nv.png"), OverallTotal: 30}},
		},
	}
	svc := NewStandingsService(repo, &fakeMatchRepo{}, fakeUploader{})

	standings, err := svc.GameView(context.Background(), 7)
	if err != nil {
		t.Fatalf("GameView failed: %v", err)
	}
	if standings[0].LogoURL == nil || *standings[0].LogoURL != "https://cdn.example.com/team_logos/nv.png" {
		t.Errorf("logo URL not resolved: %v", standings[0].LogoURL)
	}
}

func TestMatchViewStoreFailure(t *testing.T) {
	repo := &fakeStandingsRepo{failWith: errors.New("store unavailable")}
	svc := NewStandingsService(repo, &fakeMatchRepo{}, nil)

	if _, err := svc.MatchView(context.Background(), 3); err == nil {
		t.Fatal("expected store error to surface")
	}
}

func TestGameIDForMatch(t *testing.T) {
	matchRepo := &fakeMatchRepo{matches: map[int]*models.Match{
		3: {ID: 3, GameID: 7},
	}}
	svc := NewStandingsService(&fakeStandingsRepo{}, matchRepo, nil)

	gameID, err := svc.GameIDForMatch(context.Background(), 3)
	if err != nil {
		t.Fatalf("GameIDForMatch failed: %v", err)
	}
	if gameID != 7 {
		t.Errorf("gameID = %d, want 7", gameID)
	}

	if _, err := svc.GameIDForMatch(context.Background(), 99); !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("expected ErrMatchNotFound, got %v", err)
	}
}
