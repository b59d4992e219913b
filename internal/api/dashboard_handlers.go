package api

import (
	"log"
	"net/http"

	"agritrack/backend/internal/analytics"
	"agritrack/backend/internal/database"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	data, err := database.FetchDataset(r.Context(), s.db)
	if err != nil {
		log.Printf("dashboard: fetch dataset failed: %v", err)
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load production records"})
		return
	}

	opts := analytics.Options{Year: parseIntQuery(r, "year")}
	respondJSON(w, http.StatusOK, analytics.Aggregate(data, opts))
}
