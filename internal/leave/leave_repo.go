package leave

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/theesh-25755/HR-mobile-app/internal/approval"
	leaveerrors "github.com/theesh-25755/HR-mobile-app/internal/leave/errors"

	"gorm.io/gorm"
)

// DecisionGuard is the state observed at read time. ApplyDecision only
// writes when the row still matches it, so two approvers can never apply
// against a stale gating snapshot.
type DecisionGuard struct {
	ActorRole   approval.Role
	FinalStatus approval.Status
	RoleStatus  approval.Status
}

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindByID(ctx context.Context, id string) (*Leave, error)
	FindPendingForGate(ctx context.Context, gate approval.Role, limit, offset int) ([]Leave, int64, error)
	FindByRequester(ctx context.Context, email string) ([]Leave, error)
	ApplyDecision(ctx context.Context, id string, guard DecisionGuard, out approval.Outcome) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Leave, error) {
	var l Leave
	err := r.db.WithContext(ctx).
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("leave_decisions.id ASC")
		}).
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) pendingGateQuery(ctx context.Context, gate approval.Role) (*gorm.DB, error) {
	db := r.db.WithContext(ctx).Where("final_status = ?", string(approval.StatusPending))

	switch gate {
	case approval.RoleSupervisor:
		return db.Where("supervisor_status = ?", string(approval.StatusPending)), nil
	case approval.RoleProjectManager:
		return db.
			Where("supervisor_status = ?", string(approval.StatusApproved)).
			Where("project_manager_status = ?", string(approval.StatusPending)), nil
	case approval.RoleHRManager:
		return db.
			Where("supervisor_status = ?", string(approval.StatusApproved)).
			Where("project_manager_status = ?", string(approval.StatusApproved)).
			Where("hr_manager_status = ?", string(approval.StatusPending)), nil
	default:
		return nil, fmt.Errorf("not an approver role: %s", gate)
	}
}

// FindPendingForGate pages in the database: the gate queue can grow
// without bound, so the full result set never crosses the wire.
func (r *repository) FindPendingForGate(ctx context.Context, gate approval.Role, limit, offset int) ([]Leave, int64, error) {
	countQuery, err := r.pendingGateQuery(ctx, gate)
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := countQuery.Model(&Leave{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery, err := r.pendingGateQuery(ctx, gate)
	if err != nil {
		return nil, 0, err
	}
	var leaves []Leave
	err = listQuery.
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("leave_decisions.id ASC")
		}).
		Order("submitted_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&leaves).Error
	return leaves, total, err
}

func (r *repository) FindByRequester(ctx context.Context, email string) ([]Leave, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Where("requester_email = ?", email).
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("leave_decisions.id ASC")
		}).
		Order("submitted_at DESC").
		Find(&leaves).Error
	return leaves, err
}

func statusColumn(role approval.Role) (string, error) {
	switch role {
	case approval.RoleSupervisor:
		return "supervisor_status", nil
	case approval.RoleProjectManager:
		return "project_manager_status", nil
	case approval.RoleHRManager:
		return "hr_manager_status", nil
	default:
		return "", fmt.Errorf("not an approver role: %s", role)
	}
}

// ApplyDecision is the compare-and-swap write: a single UPDATE guarded on
// final_status and the acting role's own column, plus the history append,
// both on the caller's transaction. Zero affected rows means another
// decision won the race.
func (r *repository) ApplyDecision(ctx context.Context, id string, guard DecisionGuard, out approval.Outcome) error {
	column, err := statusColumn(guard.ActorRole)
	if err != nil {
		return err
	}

	var rejectedBy *string
	if out.RejectedBy != nil {
		v := string(*out.RejectedBy)
		rejectedBy = &v
	}

	query := fmt.Sprintf(`
UPDATE leaves
SET
	supervisor_status = $1,
	project_manager_status = $2,
	hr_manager_status = $3,
	final_status = $4,
	rejected_by = $5,
	rejected_at = $6,
	approved_at = $7,
	updated_at = NOW()
WHERE id = $8
	AND final_status = $9
	AND %s = $10
`, column)

	exec := r.execer()
	res, err := exec.ExecContext(
		ctx, query,
		string(out.Approvals.Supervisor),
		string(out.Approvals.ProjectManager),
		string(out.Approvals.HRManager),
		string(out.Final),
		rejectedBy,
		out.RejectedAt,
		out.ApprovedAt,
		id,
		string(guard.FinalStatus),
		string(guard.RoleStatus),
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return leaveerrors.ErrConflict
	}

	insert := `
INSERT INTO leave_decisions (
	leave_id, actor_role, actor_email, actor_name, action, comment, decided_at
) VALUES ($1, $2, $3, $4, $5, $6, $7)
`
	_, err = exec.ExecContext(
		ctx, insert,
		id,
		string(out.Entry.ActorRole),
		out.Entry.ActorEmail,
		out.Entry.ActorName,
		string(out.Entry.Action),
		out.Entry.Comment,
		out.Entry.DecidedAt,
	)
	return err
}

func (r *repository) execer() gorm.ConnPool {
	if r.tx != nil {
		return r.tx
	}
	return r.db.ConnPool
}
