// Package ingestion converts uploaded feedback spreadsheets into validated
// payloads and reconciles them into incidence records.
package ingestion

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/operata/feedback-portal/internal/domain"
	"github.com/operata/feedback-portal/internal/incidence"
	"github.com/operata/feedback-portal/internal/repository"
	"github.com/operata/feedback-portal/internal/schema"
	"github.com/operata/feedback-portal/internal/sector"
)

// Service runs the ingestion pipeline: parse, diagnose, assemble, upsert.
type Service struct {
	registry   *schema.Registry
	incidences *incidence.Service
	sectors    *sector.Resolver
	logRepo    repository.IngestionLogRepository
	logger     *zap.Logger
}

// NewService wires the ingestion pipeline.
func NewService(
	registry *schema.Registry,
	incidences *incidence.Service,
	sectors *sector.Resolver,
	logRepo repository.IngestionLogRepository,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		registry:   registry,
		incidences: incidences,
		sectors:    sectors,
		logRepo:    logRepo,
		logger:     logger,
	}
}

// Request describes one uploaded workbook.
type Request struct {
	FileName      string
	Data          io.Reader
	IncidenceID   *int64
	SchemaVersion string // overrides the workbook's _meta declaration
	Sector        string // overrides the workbook's _meta declaration
	Tab           string // overrides the default data tab
	Actor         string
	Comment       string
}

// Summary reports what an ingestion did, with the diagnostic report as a
// side channel for the reviewer.
type Summary struct {
	IncidenceID   int64  `json:"incidenceId"`
	Created       bool   `json:"created"`
	AuditCount    int    `json:"auditCount"`
	Sector        string `json:"sector"`
	SectorType    string `json:"sectorType"`
	SchemaVersion string `json:"schemaVersion"`
	Report        Report `json:"report"`
}

// Ingest runs the full pipeline on one upload. Fatal conditions (unknown
// schema, missing tab or sector, empty payload) abort and are recorded to
// the ingestion log; per-field problems degrade into the diagnostic report
// and never block the upload.
func (s *Service) Ingest(ctx context.Context, req Request) (Summary, error) {
	if req.Data == nil {
		return Summary{}, errors.New("data reader is required")
	}

	if ext := strings.ToLower(filepath.Ext(req.FileName)); ext != ".xlsx" {
		err := fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, ext)
		s.recordFailure(ctx, req, "", err)
		return Summary{}, err
	}

	data, err := io.ReadAll(req.Data)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) == 0 {
		return Summary{}, errors.New("file is empty")
	}

	overrides := map[string]string{
		"schema_version": req.SchemaVersion,
		domain.SectorKey: req.Sector,
		"tab":            req.Tab,
	}
	doc, err := ParseWorkbook(data, s.registry, overrides)
	if err != nil {
		s.recordFailure(ctx, req, "", err)
		return Summary{}, err
	}

	tab := doc.Tab()
	version := doc.SchemaVersion(tab)
	sv, err := s.registry.Get(version)
	if err != nil {
		s.recordFailure(ctx, req, tab, err)
		return Summary{}, err
	}

	// The report is generated before any store access so the reviewer gets
	// field-level diagnostics even when the upsert is never reached.
	report := GenerateReport(tab, sv, doc)

	payload, sectorName, err := Assemble(doc, tab, sv)
	if err != nil {
		s.recordFailure(ctx, req, tab, err)
		return Summary{}, err
	}

	resolvedSector, sectorType, err := s.sectors.Resolve(nil, sectorName)
	if err != nil {
		s.recordFailure(ctx, req, tab, err)
		return Summary{}, err
	}
	payload[domain.SectorKey] = resolvedSector

	id := req.IncidenceID
	if id == nil {
		// An id_incidence cell on the sheet names the target record.
		if fromSheet, ok := payload[domain.PrimaryKeyField].(int64); ok {
			id = &fromSheet
		}
	}

	result, err := s.incidences.Upsert(ctx, id, payload, req.Actor, req.Comment)
	if err != nil {
		s.recordFailure(ctx, req, tab, err)
		return Summary{}, err
	}

	s.logger.Info("ingestion complete",
		zap.String("file", req.FileName),
		zap.String("tab", tab),
		zap.String("schema_version", sv.ID),
		zap.Int64("id_incidence", result.IncidenceID),
		zap.Int("audit_entries", len(result.Audit)),
		zap.Int("value_failures", report.ValueFail))

	return Summary{
		IncidenceID:   result.IncidenceID,
		Created:       result.Created,
		AuditCount:    len(result.Audit),
		Sector:        resolvedSector,
		SectorType:    string(sectorType),
		SchemaVersion: sv.ID,
		Report:        report,
	}, nil
}

// Logs lists recorded ingestion failures, newest first.
func (s *Service) Logs(ctx context.Context, limit, offset int) ([]domain.IngestionLogEntry, error) {
	if s.logRepo == nil {
		return nil, nil
	}
	return s.logRepo.List(ctx, limit, offset)
}

func (s *Service) recordFailure(ctx context.Context, req Request, tab string, cause error) {
	if s.logRepo == nil || cause == nil {
		return
	}
	entry := domain.IngestionLogEntry{
		FileName:     req.FileName,
		TabName:      tab,
		ErrorMessage: cause.Error(),
	}
	if err := s.logRepo.Record(ctx, entry); err != nil {
		s.logger.Warn("failed to record ingestion failure", zap.Error(err))
	}
}
