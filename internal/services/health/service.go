package health

import (
	"context"
	"database/sql"
	"time"
)

const pingTimeout = 2 * time.Second

// Status is the health payload served at /api/v1/health.
type Status struct {
	OK                 bool   `json:"ok"`
	Database           string `json:"database"`
	Suggestions        string `json:"suggestions"`
	TaxonomyCategories int    `json:"taxonomyCategories"`
}

// Service encapsulates health-related checks.
type Service struct {
	DB                 *sql.DB
	SuggestionProvider string
	TaxonomyCategories int
}

// NewService constructs a new health service. db may be nil when running on in-memory storage.
func NewService(db *sql.DB, provider string, taxonomyCategories int) *Service {
	return &Service{DB: db, SuggestionProvider: provider, TaxonomyCategories: taxonomyCategories}
}

// Status reports process health. A configured but unreachable database marks the
// service unhealthy.
func (s *Service) Status(ctx context.Context) Status {
	st := Status{
		OK:                 true,
		Database:           "memory",
		Suggestions:        s.SuggestionProvider,
		TaxonomyCategories: s.TaxonomyCategories,
	}
	if s.DB == nil {
		return st
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.DB.PingContext(pingCtx); err != nil {
		st.OK = false
		st.Database = "unreachable"
		return st
	}
	st.Database = "postgres"
	return st
}
