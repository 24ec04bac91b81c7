package health

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestStatusWithoutDatabase(t *testing.T) {
	st := NewService(nil, "groq", 25).Status(context.Background())
	if !st.OK || st.Database != "memory" || st.Suggestions != "groq" || st.TaxonomyCategories != 25 {
		t.Fatalf("unexpected status: %+v", st)
	}
}

func TestStatusPingsDatabase(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	svc := NewService(db, "none", 25)

	mock.ExpectPing()
	if st := svc.Status(context.Background()); !st.OK || st.Database != "postgres" {
		t.Fatalf("unexpected healthy status: %+v", st)
	}

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	if st := svc.Status(context.Background()); st.OK || st.Database != "unreachable" {
		t.Fatalf("unexpected unhealthy status: %+v", st)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
