package api

import (
	"bytes"
	"log"
	"net/http"
	"time"

	"agritrack/backend/internal/database"
	"agritrack/backend/internal/report"
	"agritrack/backend/internal/report/xlsx"
)

func (s *Server) handleReportExport(w http.ResponseWriter, r *http.Request) {
	kind := r.PathValue("kind")

	filters := report.Filters{
		Barangay: parseStringQuery(r, "barangay"),
		Month:    parseIntQuery(r, "month"),
		Year:     parseIntQuery(r, "year"),
		AreaType: parseStringQuery(r, "areaType"),
		CropType: parseStringQuery(r, "cropType"),
	}
	if filters.Month > 12 {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "month must be between 1 and 12"})
		return
	}

	data, err := database.FetchDataset(r.Context(), s.db)
	if err != nil {
		log.Printf("export %s: fetch dataset failed: %v", kind, err)
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load production records"})
		return
	}

	doc, err := report.Build(kind, data, filters, s.meta)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	// Render fully before writing any response headers.
	var buf bytes.Buffer
	if err := xlsx.Write(doc, &buf); err != nil {
		log.Printf("export %s: render failed: %v", kind, err)
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to render report"})
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.Filename(time.Now())+`"`)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("export %s: write response failed: %v", kind, err)
	}
}
