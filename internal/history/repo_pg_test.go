package history

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var entryColumns = []string{"id", "owner_id", "file_name", "created_at", "is_favorite", "overall_score", "overall_range", "best_score", "best_range", "analysis"}

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoSavePropagatesBestScore(t *testing.T) {
	repo, mock := newMockRepo(t)
	entry := Entry{
		ID:        "11111111-1111-1111-1111-111111111111",
		OwnerID:   "guest:a",
		FileName:  "cv.pdf",
		CreatedAt: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		Score:     ScoreSummary{OverallScore: 70, OverallScoreRange: RangeGood},
		Analysis:  analysisWithScore(70),
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock")).
		WithArgs("guest:a").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT GREATEST")).
		WithArgs("guest:a", 70).
		WillReturnRows(sqlmock.NewRows([]string{"greatest"}).AddRow(88))
	mock.ExpectExec("INSERT INTO resume_history").
		WithArgs(entry.ID, "guest:a", "cv.pdf", entry.CreatedAt, false, 70, RangeGood, 88, RangeExcellent, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE resume_history SET best_score").
		WithArgs("guest:a", 88, RangeExcellent).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM resume_history").
		WithArgs("guest:a", 50).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	saved, err := repo.Save(context.Background(), entry, 50)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.Score.BestScore != 88 || saved.Score.BestScoreRange != RangeExcellent {
		t.Fatalf("unexpected saved score: %+v", saved.Score)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoSaveRollsBackOnInsertFailure(t *testing.T) {
	repo, mock := newMockRepo(t)
	entry := Entry{ID: "id", OwnerID: "guest:a", Analysis: analysisWithScore(10), Score: ScoreSummary{OverallScore: 10}}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT GREATEST")).WillReturnRows(sqlmock.NewRows([]string{"greatest"}).AddRow(10))
	mock.ExpectExec("INSERT INTO resume_history").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	if _, err := repo.Save(context.Background(), entry, 0); err == nil {
		t.Fatalf("expected insert error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListDecodesAnalysis(t *testing.T) {
	repo, mock := newMockRepo(t)
	raw, err := json.Marshal(analysisWithScore(72))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	created := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM resume_history").
		WithArgs("guest:a").
		WillReturnRows(sqlmock.NewRows(entryColumns).
			AddRow("id-1", "guest:a", "cv.pdf", created, true, 72, RangeGood, 72, RangeGood, raw))

	items, err := repo.List(context.Background(), "guest:a")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(items))
	}
	if !items[0].IsFavorite || items[0].Analysis.OverallScore != 72 {
		t.Fatalf("unexpected entry: %+v", items[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetMissingIsNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT (.+) FROM resume_history").
		WithArgs("guest:a", "id-9").
		WillReturnRows(sqlmock.NewRows(entryColumns))

	if _, err := repo.Get(context.Background(), "guest:a", "id-9"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoDeleteMissingIsNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec("DELETE FROM resume_history").
		WithArgs("guest:a", "id-9").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "guest:a", "id-9"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoClearReportsRemoved(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec("DELETE FROM resume_history").
		WithArgs("guest:a").
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := repo.Clear(context.Background(), "guest:a")
	if err != nil || n != 4 {
		t.Fatalf("Clear = %d, %v", n, err)
	}
}

func TestPGRepoToggleFavorite(t *testing.T) {
	repo, mock := newMockRepo(t)
	raw, _ := json.Marshal(analysisWithScore(50))
	mock.ExpectQuery("UPDATE resume_history SET is_favorite = NOT is_favorite").
		WithArgs("guest:a", "id-1").
		WillReturnRows(sqlmock.NewRows(entryColumns).
			AddRow("id-1", "guest:a", "cv.pdf", time.Now(), true, 50, RangeWarning, 50, RangeWarning, raw))

	e, err := repo.ToggleFavorite(context.Background(), "guest:a", "id-1")
	if err != nil || !e.IsFavorite {
		t.Fatalf("ToggleFavorite = %+v, %v", e, err)
	}
}
