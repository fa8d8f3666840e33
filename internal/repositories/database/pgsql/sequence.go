package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldserve/field_service_app/internal/apperrors"
	"github.com/fieldserve/field_service_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// nextDocumentNumber allocates the next sequence value for a company and
// document kind, and formats it as {prefix}{year}-{seq:04d} (e.g. F2026-0001).
// The year is the calendar year at allocation time, not the document date's
// year, so backdated or future-dated documents still number into the current
// year's sequence. It must run inside the same transaction that inserts the
// document: the upsert takes a row lock on the sequence, so concurrent
// allocations serialize and a rolled-back insert releases its number. The
// sequence never skips.
func nextDocumentNumber(ctx context.Context, tx pgx.Tx, companyID string, kind domain.DocumentKind, prefix string) (string, error) {
	year := time.Now().UTC().Year()
	query := `
		INSERT INTO document_sequences (company_id, kind, year, last_value)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (company_id, kind, year)
		DO UPDATE SET last_value = document_sequences.last_value + 1
		RETURNING last_value;
	`
	var seq int64
	if err := tx.QueryRow(ctx, query, companyID, string(kind), year).Scan(&seq); err != nil {
		return "", apperrors.NewAppError(500, "failed to allocate document number", err)
	}
	return fmt.Sprintf("%s%d-%04d", prefix, year, seq), nil
}
