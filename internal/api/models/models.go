package models

import "time"

// Health models.

type HealthData struct {
	Status       string `json:"status" example:"ok" doc:"Service status"`
	ExiftoolPath string `json:"exiftool_path" example:"/usr/bin/exiftool" doc:"Configured executable path"`
	Version      string `json:"exiftool_version" example:"12.40.0" doc:"Probed exiftool version"`
	Running      bool   `json:"running" example:"true" doc:"Whether a worker process is currently alive"`
	Executions   int64  `json:"executions" example:"128" doc:"Total operations since start"`
	Errors       int64  `json:"errors" example:"3" doc:"Total failed operations since start"`
	Respawns     int64  `json:"respawns" example:"1" doc:"Total worker respawns since start"`
}

type HealthResponse struct {
	Body HealthData
}

// Version models.

type VersionData struct {
	Version         string `json:"version" example:"1.2.0" doc:"Application version"`
	GitCommit       string `json:"git_commit" example:"abc1234" doc:"Git commit hash"`
	BuildDate       string `json:"build_date" example:"2026-01-27T10:00:00Z" doc:"Build timestamp"`
	BuildID         string `json:"build_id" doc:"Build identifier"`
	GoVersion       string `json:"go_version" example:"go1.24.4" doc:"Go toolchain version"`
	Compiler        string `json:"compiler" example:"gc" doc:"Go compiler"`
	Platform        string `json:"platform" example:"linux/amd64" doc:"Build platform"`
	ExiftoolVersion string `json:"exiftool_version,omitempty" example:"12.40.0" doc:"Probed exiftool version"`
}

type VersionResponse struct {
	Body VersionData
}

// Metadata models.

type ReadMetadataRequestData struct {
	File string   `json:"file" minLength:"1" example:"/photos/img_0001.jpg" doc:"Path to the file to read"`
	Tags []string `json:"tags,omitempty" example:"[\"Make\",\"Model\"]" doc:"Tags to extract; all tags when empty"`
}

type ReadMetadataRequest struct {
	Body ReadMetadataRequestData
}

type ReadMetadataData struct {
	File string            `json:"file" example:"/photos/img_0001.jpg" doc:"File the metadata was read from"`
	Tags map[string]string `json:"tags" doc:"Extracted tag name to value pairs"`
}

type ReadMetadataResponse struct {
	Body ReadMetadataData
}

type WriteMetadataRequestData struct {
	File string            `json:"file" minLength:"1" example:"/photos/img_0001.jpg" doc:"Path to the file to modify"`
	Tags map[string]string `json:"tags" minProperties:"1" doc:"Tag name to value pairs to write"`
}

type WriteMetadataRequest struct {
	Body WriteMetadataRequestData
}

type WriteMetadataData struct {
	File    string `json:"file" example:"/photos/img_0001.jpg" doc:"File the metadata was written to"`
	Written int    `json:"written" example:"2" doc:"Number of tags written"`
}

type WriteMetadataResponse struct {
	Body WriteMetadataData
}

// Log models.

type LogEntryData struct {
	Timestamp  string         `json:"timestamp" example:"2026-01-27T10:30:00.123Z" doc:"Log timestamp"`
	Level      string         `json:"level" example:"info" doc:"Log level"`
	Module     string         `json:"module" example:"engine" doc:"Source module"`
	Message    string         `json:"message" doc:"Log message"`
	Attributes map[string]any `json:"attributes,omitempty" doc:"Structured log attributes"`
}

type LogsData struct {
	Entries []LogEntryData `json:"entries" doc:"Buffered log entries in chronological order"`
	Count   int            `json:"count" example:"250" doc:"Number of entries returned"`
}

type LogsResponse struct {
	Body LogsData
}

// Update models.

type UpdateCheckData struct {
	CurrentVersion  string    `json:"current_version" example:"1.2.0" doc:"Currently running version"`
	LatestVersion   string    `json:"latest_version" example:"1.3.0" doc:"Latest released version"`
	ReleaseNotes    string    `json:"release_notes,omitempty" doc:"Release notes for the latest version"`
	ReleaseURL      string    `json:"release_url,omitempty" doc:"Release page URL"`
	PublishedAt     time.Time `json:"published_at,omitempty" doc:"Release publication time"`
	AssetSize       int       `json:"asset_size,omitempty" doc:"Download size in bytes"`
	UpdateAvailable bool      `json:"update_available" example:"true" doc:"Whether a newer version exists"`
}

type UpdateCheckResponse struct {
	Body UpdateCheckData
}

type UpdateStatusData struct {
	State           string     `json:"state" example:"idle" doc:"Current update state"`
	CurrentVersion  string     `json:"current_version" doc:"Currently running version"`
	TargetVersion   string     `json:"target_version,omitempty" doc:"Version being applied"`
	Error           string     `json:"error,omitempty" doc:"Last update error"`
	LastChecked     *time.Time `json:"last_checked,omitempty" doc:"When updates were last checked"`
	BackupAvailable bool       `json:"backup_available" doc:"Whether a rollback backup exists"`
	BackupVersion   string     `json:"backup_version,omitempty" doc:"Version of the backup binary"`
}

type UpdateStatusResponse struct {
	Body UpdateStatusData
}

type UpdateApplyData struct {
	Message string `json:"message" example:"update applied, restarting" doc:"Result message"`
}

type UpdateApplyResponse struct {
	Body UpdateApplyData
}
