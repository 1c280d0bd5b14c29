package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockDB(t *testing.T) (sqlmock.Sqlmock, ScoreRepository) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return mock, NewPostgresScoreRepository(db)
}

func TestAddPointsIsRelative(t *testing.T) {
	mock, repo := newMockDB(t)

	// The delta is applied in SQL, never as a read-modify-write round trip.
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE team_points SET team_points = team_points + $1 WHERE match_id = $2 AND team_id = $3`)).
		WithArgs(2, 1, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.AddPoints(context.Background(), nil, 1, 7, 2); err != nil {
		t.Fatalf("AddPoints failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestAddPointsNegativeDeltaPassesThrough(t *testing.T) {
	mock, repo := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(`SET team_points = team_points + $1`)).
		WithArgs(-3, 1, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.AddPoints(context.Background(), nil, 1, 7, -3); err != nil {
		t.Fatalf("negative delta failed: %v", err)
	}
}

func TestAddPointsNoRowMatched(t *testing.T) {
	mock, repo := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(`SET team_points = team_points + $1`)).
		WithArgs(1, 1, 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.AddPoints(context.Background(), nil, 1, 99, 1)
	if !errors.Is(err, ErrScoreRowNotFound) {
		t.Errorf("expected ErrScoreRowNotFound, got %v", err)
	}
}

func TestAddEliminationsTouchesOnlyElmsColumn(t *testing.T) {
	mock, repo := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE team_points SET team_elms = team_elms + $1 WHERE match_id = $2 AND team_id = $3`)).
		WithArgs(4, 2, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.AddEliminations(context.Background(), nil, 2, 5, 4); err != nil {
		t.Fatalf("AddEliminations failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSetEliminated(t *testing.T) {
	mock, repo := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE team_points SET is_eliminated = $1 WHERE match_id = $2 AND team_id = $3`)).
		WithArgs(true, 1, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SetEliminated(context.Background(), nil, 1, 7, true); err != nil {
		t.Fatalf("SetEliminated failed: %v", err)
	}
}

func TestGetByMatchAndTeamMissing(t *testing.T) {
	mock, repo := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM team_points`)).
		WithArgs(1, 99).
		WillReturnRows(sqlmock.NewRows([]string{"id", "match_id", "team_id", "team_points", "team_elms", "is_eliminated"}))

	_, err := repo.GetByMatchAndTeam(context.Background(), nil, 1, 99)
	if !errors.Is(err, ErrScoreRowNotFound) {
		t.Errorf("expected ErrScoreRowNotFound, got %v", err)
	}
}

func TestListByMatch(t *testing.T) {
	mock, repo := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM team_points`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "match_id", "team_id", "team_points", "team_elms", "is_eliminated"}).
			AddRow(1, 1, 7, 5, 2, false).
			AddRow(2, 1, 8, 0, 0, true))

	rows, err := repo.ListByMatch(context.Background(), nil, 1)
	if err != nil {
		t.Fatalf("ListByMatch failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Points != 5 || rows[0].Eliminations != 2 {
		t.Errorf("first row scanned wrong: %+v", rows[0])
	}
	if !rows[1].IsEliminated {
		t.Error("second row should carry the eliminated flag")
	}
}
