package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mjeanroy/exiftool/internal/api/models"
	"github.com/mjeanroy/exiftool/internal/logging"
)

// registerLogRoutes registers the log history endpoint backed by the
// in-memory ring buffer.
func (s *Server) registerLogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "get-logs",
		Method:      http.MethodGet,
		Path:        "/api/logs",
		Summary:     "Logs",
		Description: "Return recent log entries from the in-memory buffer",
		Tags:        []string{"logs"},
		Errors:      []int{401},
		Security:    withAuth(),
	}, func(_ context.Context, _ *struct{}) (*models.LogsResponse, error) {
		var entries []models.LogEntryData

		if buffer := logging.GetBuffer(); buffer != nil {
			buffered := buffer.ReadAll()
			entries = make([]models.LogEntryData, 0, len(buffered))
			for _, entry := range buffered {
				entries = append(entries, models.LogEntryData{
					Timestamp:  entry.Timestamp.Format(time.RFC3339Nano),
					Level:      entry.Level,
					Module:     entry.Module,
					Message:    entry.Message,
					Attributes: entry.Attributes,
				})
			}
		}

		return &models.LogsResponse{
			Body: models.LogsData{
				Entries: entries,
				Count:   len(entries),
			},
		}, nil
	})
}
