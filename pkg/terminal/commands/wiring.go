package commands

import (
	"database/sql"
	"fmt"

	"github.com/mcp-analytics/resort-dmr/pkg/services/config"
	"github.com/mcp-analytics/resort-dmr/pkg/services/report"
	"github.com/mcp-analytics/resort-dmr/pkg/store/mssql"
)

// buildService assembles the profile, database connection, and report service
// shared by the report and serve commands. The caller owns closing the
// returned database handle.
func buildService(profilePath string) (*report.Service, *config.Profile, *sql.DB, error) {
	profile, err := config.LoadProfile(profilePath)
	if err != nil {
		return nil, nil, nil, err
	}

	db, err := mssql.Open(profile.DSN)
	if err != nil {
		return nil, nil, nil, err
	}

	store, err := mssql.NewStore(db)
	if err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("create store: %w", err)
	}

	engine, err := report.NewEngine(store)
	if err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("create engine: %w", err)
	}

	service, err := report.NewService(engine, profile)
	if err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("create service: %w", err)
	}

	return service, profile, db, nil
}
