package pgsql

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fieldserve/field_service_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureTx records the arguments of the sequence upsert and returns a canned
// sequence value.
type captureTx struct {
	pgx.Tx
	args []any
	seq  int64
}

func (t *captureTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	t.args = args
	return seqRow{seq: t.seq}
}

type seqRow struct {
	seq int64
}

func (r seqRow) Scan(dest ...any) error {
	*(dest[0].(*int64)) = r.seq
	return nil
}

func TestNextDocumentNumber_UsesAllocationYear(t *testing.T) {
	// The document's own date must not influence the sequence year: numbers
	// are minted in the calendar year the allocation happens, even for
	// backdated or future-dated documents.
	tx := &captureTx{seq: 1}

	number, err := nextDocumentNumber(context.Background(), tx, "company-1", domain.DocumentKindInvoice, "F")

	require.NoError(t, err)
	currentYear := time.Now().UTC().Year()
	require.Len(t, tx.args, 3)
	assert.Equal(t, "company-1", tx.args[0])
	assert.Equal(t, string(domain.DocumentKindInvoice), tx.args[1])
	assert.Equal(t, currentYear, tx.args[2])
	assert.Equal(t, fmt.Sprintf("F%d-0001", currentYear), number)
}

func TestNextDocumentNumber_PadsSequenceToFourDigits(t *testing.T) {
	tx := &captureTx{seq: 42}

	number, err := nextDocumentNumber(context.Background(), tx, "company-1", domain.DocumentKindQuote, "O")

	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("O%d-0042", time.Now().UTC().Year()), number)
}
