package pgsql

import (
	"context"
	"fmt"

	"github.com/fieldserve/field_service_app/internal/apperrors"
	"github.com/fieldserve/field_service_app/internal/core/domain"
	portsrepo "github.com/fieldserve/field_service_app/internal/core/ports/repositories"
	"github.com/fieldserve/field_service_app/internal/models"
	"github.com/fieldserve/field_service_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAuditLogRepository struct {
	BaseRepository
}

// newPgxAuditLogRepository creates a new repository for audit log entries.
func newPgxAuditLogRepository(pool *pgxpool.Pool) portsrepo.AuditLogRepositoryFacade {
	return &PgxAuditLogRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AuditLogRepositoryFacade = (*PgxAuditLogRepository)(nil)

const auditLogColumns = `
	log_id, company_id, user_id, entity_type, entity_id, action, detail, created_at
`

func scanAuditLog(row pgx.Row) (*models.AuditLog, error) {
	var m models.AuditLog
	err := row.Scan(
		&m.LogID,
		&m.CompanyID,
		&m.UserID,
		&m.EntityType,
		&m.EntityID,
		&m.Action,
		&m.Detail,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListAuditLogs retrieves a filtered, paginated list of audit entries,
// newest first.
func (r *PgxAuditLogRepository) ListAuditLogs(ctx context.Context, companyID string, filter portsrepo.ListAuditLogsFilter) ([]domain.AuditLog, error) {
	query := `SELECT ` + auditLogColumns + ` FROM audit_logs WHERE company_id = $1`
	args := []any{companyID}

	if filter.EntityType != "" {
		args = append(args, filter.EntityType)
		query += fmt.Sprintf(` AND entity_type = $%d`, len(args))
	}
	if filter.EntityID != "" {
		args = append(args, filter.EntityID)
		query += fmt.Sprintf(` AND entity_id = $%d`, len(args))
	}

	args = append(args, filter.Limit)
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d`, len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(` OFFSET $%d;`, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list audit logs for company "+companyID, err)
	}
	defer rows.Close()

	logs := make([]domain.AuditLog, 0)
	for rows.Next() {
		m, err := scanAuditLog(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan audit log row", err)
		}
		logs = append(logs, mapping.ToDomainAuditLog(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating audit log rows", err)
	}
	return logs, nil
}

// SaveAuditLog appends an audit entry. Entries are never updated or deleted.
func (r *PgxAuditLogRepository) SaveAuditLog(ctx context.Context, log domain.AuditLog) error {
	m := mapping.ToModelAuditLog(log)
	query := `
		INSERT INTO audit_logs (` + auditLogColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.LogID, m.CompanyID, m.UserID, m.EntityType, m.EntityID, m.Action, m.Detail, m.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert audit log "+m.LogID, err)
	}
	return nil
}
