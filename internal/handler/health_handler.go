package handler

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// HealthHandler serves the root banner and database diagnostics.
type HealthHandler struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(pool *pgxpool.Pool, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		pool:   pool,
		logger: logger.With().Str("handler", "health").Logger(),
	}
}

// Root handles GET / requests.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Jaggery Store Backend"})
}

// diagnosticResponse reports backend and database connectivity for GET /test.
type diagnosticResponse struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseName     string   `json:"database_name,omitempty"`
	ConnectionStatus string   `json:"connection_status"`
	Tables           []string `json:"tables"`
}

// Test handles GET /test requests. It reports whether the database is
// reachable and which tables exist; a failing database never fails the
// endpoint itself.
func (h *HealthHandler) Test(w http.ResponseWriter, r *http.Request) {
	resp := diagnosticResponse{
		Backend:          "running",
		Database:         "not available",
		ConnectionStatus: "not connected",
		Tables:           []string{},
	}

	if h.pool == nil {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	ctx := r.Context()
	if err := h.pool.Ping(ctx); err != nil {
		h.logger.Warn().Err(err).Msg("database ping failed")
		resp.Database = "error: " + err.Error()
		writeJSON(w, http.StatusOK, resp)
		return
	}

	resp.Database = "available"
	resp.ConnectionStatus = "connected"

	var dbName string
	if err := h.pool.QueryRow(ctx, "SELECT current_database()").Scan(&dbName); err == nil {
		resp.DatabaseName = dbName
	}

	rows, err := h.pool.Query(ctx,
		"SELECT tablename FROM pg_catalog.pg_tables WHERE schemaname = 'public' ORDER BY tablename")
	if err != nil {
		h.logger.Warn().Err(err).Msg("failed to list tables")
		resp.Database = "connected but error: " + err.Error()
		writeJSON(w, http.StatusOK, resp)
		return
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			break
		}
		resp.Tables = append(resp.Tables, name)
	}

	resp.Database = "connected and working"
	writeJSON(w, http.StatusOK, resp)
}
