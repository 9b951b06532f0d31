package api

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mjeanroy/exiftool"
	"github.com/mjeanroy/exiftool/internal/api/models"
	"github.com/mjeanroy/exiftool/internal/events"
	"github.com/mjeanroy/exiftool/internal/metrics"
)

// registerMetadataRoutes registers the metadata read and write endpoints.
func (s *Server) registerMetadataRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "read-metadata",
		Method:      http.MethodPost,
		Path:        "/api/metadata/read",
		Summary:     "Read Metadata",
		Description: "Extract metadata tags from a file on the server's filesystem",
		Tags:        []string{"metadata"},
		Errors:      []int{400, 401, 404, 502, 503},
		Security:    withAuth(),
	}, func(ctx context.Context, input *models.ReadMetadataRequest) (*models.ReadMetadataResponse, error) {
		start := time.Now()
		tags, err := s.engine.ReadMetadata(ctx, input.Body.File, input.Body.Tags...)
		if err != nil {
			return nil, s.mapEngineError("read", err)
		}
		elapsed := time.Since(start).Seconds()
		metrics.ObserveExecution("read", elapsed)
		if s.options.EventBus != nil {
			s.options.EventBus.Publish(events.MetadataReadEvent{
				File:      input.Body.File,
				TagCount:  len(tags),
				Duration:  elapsed,
				Timestamp: time.Now().Format(time.RFC3339),
			})
		}

		return &models.ReadMetadataResponse{
			Body: models.ReadMetadataData{
				File: input.Body.File,
				Tags: tags,
			},
		}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "write-metadata",
		Method:      http.MethodPost,
		Path:        "/api/metadata/write",
		Summary:     "Write Metadata",
		Description: "Write metadata tags to a file on the server's filesystem",
		Tags:        []string{"metadata"},
		Errors:      []int{400, 401, 404, 502, 503},
		Security:    withAuth(),
	}, func(ctx context.Context, input *models.WriteMetadataRequest) (*models.WriteMetadataResponse, error) {
		start := time.Now()
		if err := s.engine.WriteMetadata(ctx, input.Body.File, input.Body.Tags); err != nil {
			return nil, s.mapEngineError("write", err)
		}
		elapsed := time.Since(start).Seconds()
		metrics.ObserveExecution("write", elapsed)
		if s.options.EventBus != nil {
			s.options.EventBus.Publish(events.MetadataWrittenEvent{
				File:      input.Body.File,
				TagCount:  len(input.Body.Tags),
				Duration:  elapsed,
				Timestamp: time.Now().Format(time.RFC3339),
			})
		}

		return &models.WriteMetadataResponse{
			Body: models.WriteMetadataData{
				File:    input.Body.File,
				Written: len(input.Body.Tags),
			},
		}, nil
	})
}

// mapEngineError converts engine errors to HTTP errors: missing files map to
// 404, worker transport failures to 502, a missing or unsupported exiftool
// binary to 503.
func (s *Server) mapEngineError(operation string, err error) error {
	var transport *exiftool.TransportError
	var notFound *exiftool.NotFoundError
	var unsupported *exiftool.UnsupportedFeatureError

	switch {
	case errors.Is(err, fs.ErrNotExist):
		metrics.ObserveError("file_not_found")
		return huma.Error404NotFound("file not found", err)
	case errors.As(err, &transport):
		metrics.ObserveError("transport")
		s.logger.Error("Worker transport failure", "operation", operation, "error", err)
		return huma.Error502BadGateway("exiftool worker failed", err)
	case errors.As(err, &notFound), errors.As(err, &unsupported):
		metrics.ObserveError("engine_unavailable")
		return huma.Error503ServiceUnavailable("exiftool unavailable", err)
	default:
		metrics.ObserveError("internal")
		s.logger.Error("Metadata operation failed", "operation", operation, "error", err)
		return huma.Error500InternalServerError("internal server error", err)
	}
}
