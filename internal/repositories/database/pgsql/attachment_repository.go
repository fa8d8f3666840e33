package pgsql

import (
	"context"
	"errors"

	"github.com/fieldserve/field_service_app/internal/apperrors"
	"github.com/fieldserve/field_service_app/internal/core/domain"
	portsrepo "github.com/fieldserve/field_service_app/internal/core/ports/repositories"
	"github.com/fieldserve/field_service_app/internal/models"
	"github.com/fieldserve/field_service_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAttachmentRepository struct {
	BaseRepository
}

// newPgxAttachmentRepository creates a new repository for attachment metadata.
func newPgxAttachmentRepository(pool *pgxpool.Pool) portsrepo.AttachmentRepositoryFacade {
	return &PgxAttachmentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AttachmentRepositoryFacade = (*PgxAttachmentRepository)(nil)

const attachmentColumns = `
	attachment_id, company_id, entity_type, entity_id, filename,
	original_filename, file_path, file_size, mime_type, description,
	uploaded_by, created_at
`

func scanAttachment(row pgx.Row) (*models.Attachment, error) {
	var m models.Attachment
	err := row.Scan(
		&m.AttachmentID,
		&m.CompanyID,
		&m.EntityType,
		&m.EntityID,
		&m.Filename,
		&m.OriginalFilename,
		&m.FilePath,
		&m.FileSize,
		&m.MimeType,
		&m.Description,
		&m.UploadedBy,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindAttachmentByID retrieves a single attachment, scoped to a company.
func (r *PgxAttachmentRepository) FindAttachmentByID(ctx context.Context, companyID string, attachmentID string) (*domain.Attachment, error) {
	query := `SELECT ` + attachmentColumns + ` FROM attachments WHERE company_id = $1 AND attachment_id = $2;`
	row := r.Pool.QueryRow(ctx, query, companyID, attachmentID)

	m, err := scanAttachment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find attachment "+attachmentID, err)
	}

	attachment := mapping.ToDomainAttachment(*m)
	return &attachment, nil
}

// ListAttachmentsByEntity retrieves all attachments linked to one entity,
// newest first.
func (r *PgxAttachmentRepository) ListAttachmentsByEntity(ctx context.Context, companyID string, entityType string, entityID string) ([]domain.Attachment, error) {
	query := `
		SELECT ` + attachmentColumns + `
		FROM attachments
		WHERE company_id = $1 AND entity_type = $2 AND entity_id = $3
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, entityType, entityID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list attachments for "+entityType+" "+entityID, err)
	}
	defer rows.Close()

	attachments := make([]domain.Attachment, 0)
	for rows.Next() {
		m, err := scanAttachment(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan attachment row", err)
		}
		attachments = append(attachments, mapping.ToDomainAttachment(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating attachment rows", err)
	}
	return attachments, nil
}

// SaveAttachment persists new attachment metadata.
func (r *PgxAttachmentRepository) SaveAttachment(ctx context.Context, attachment domain.Attachment) error {
	m := mapping.ToModelAttachment(attachment)
	query := `
		INSERT INTO attachments (` + attachmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AttachmentID, m.CompanyID, m.EntityType, m.EntityID, m.Filename,
		m.OriginalFilename, m.FilePath, m.FileSize, m.MimeType, m.Description,
		m.UploadedBy, m.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert attachment "+m.AttachmentID, err)
	}
	return nil
}

// DeleteAttachment removes attachment metadata, scoped to a company.
func (r *PgxAttachmentRepository) DeleteAttachment(ctx context.Context, companyID string, attachmentID string) error {
	query := `DELETE FROM attachments WHERE company_id = $1 AND attachment_id = $2;`
	cmdTag, err := r.Pool.Exec(ctx, query, companyID, attachmentID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete attachment "+attachmentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("attachment " + attachmentID + " not found for delete")
	}
	return nil
}
