// Package sector resolves a record's canonical sector and sector type from
// its two independent sources: the foreign-key join to the sources table and
// the sector tag embedded in the record's JSON payload.
package sector

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/operata/feedback-portal/internal/domain"
	"github.com/operata/feedback-portal/internal/repository"
)

// ConflictPolicy decides which source wins when the foreign-key sector and
// the embedded-JSON sector disagree. The winner is injected at construction,
// not hard-coded.
type ConflictPolicy interface {
	Choose(fkSector, embeddedSector string) string
	Name() string
}

// PreferEmbedded is the shipped default: the embedded-JSON value wins.
type PreferEmbedded struct{}

func (PreferEmbedded) Choose(_, embeddedSector string) string { return embeddedSector }
func (PreferEmbedded) Name() string                           { return "prefer_embedded" }

// PreferForeignKey gives the sources-table value precedence instead.
type PreferForeignKey struct{}

func (PreferForeignKey) Choose(fkSector, _ string) string { return fkSector }
func (PreferForeignKey) Name() string                     { return "prefer_foreign_key" }

// Resolver determines the canonical sector for a record.
type Resolver struct {
	policy ConflictPolicy
	logger *zap.Logger
}

// NewResolver builds a resolver with the given conflict policy.
func NewResolver(policy ConflictPolicy, logger *zap.Logger) *Resolver {
	if policy == nil {
		policy = PreferEmbedded{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{policy: policy, logger: logger}
}

// Resolve returns the canonical sector and its sector type. A disagreement
// between the two sources is logged as an error and settled by the policy;
// it never aborts processing. Having no sector from either source is fatal,
// as is a sector name outside the recognized lists.
func (r *Resolver) Resolve(fkSector *string, embedded any) (string, domain.SectorType, error) {
	fk := ""
	if fkSector != nil {
		fk = strings.TrimSpace(*fkSector)
	}
	emb := strings.TrimSpace(domain.ValueString(embedded))

	var resolved string
	switch {
	case fk == "" && emb == "":
		return "", "", domain.ErrUnknownSector
	case fk == "":
		resolved = emb
	case emb == "":
		resolved = fk
	case fk == emb:
		resolved = fk
	default:
		resolved = r.policy.Choose(fk, emb)
		r.logger.Error("sector sources disagree",
			zap.String("fk_sector", fk),
			zap.String("embedded_sector", emb),
			zap.String("policy", r.policy.Name()),
			zap.String("resolved", resolved))
	}

	sectorType, ok := domain.ClassifySector(resolved)
	if !ok {
		return "", "", fmt.Errorf("%w: %q", domain.ErrUnknownSectorType, resolved)
	}
	return resolved, sectorType, nil
}

// ResolveRecord resolves a record's sector from both of its sources: the
// foreign-key join through the sources table and the sector tag embedded in
// the record's JSON column. A dangling source reference degrades to the
// embedded value alone rather than failing the resolution.
func (r *Resolver) ResolveRecord(ctx context.Context, sources repository.SourceRepository, record domain.IncidenceRecord) (string, domain.SectorType, error) {
	var fk *string
	if record.SourceID != nil && sources != nil {
		source, err := sources.GetByID(ctx, *record.SourceID)
		switch {
		case err == nil:
			fk = &source.Sector
		case errors.Is(err, domain.ErrRecordNotFound):
			r.logger.Warn("record references missing source",
				zap.Int64("id_incidence", record.ID),
				zap.Int64("source_id", *record.SourceID))
		default:
			return "", "", fmt.Errorf("failed to load source: %w", err)
		}
	}
	return r.Resolve(fk, record.Misc[domain.SectorKey])
}
