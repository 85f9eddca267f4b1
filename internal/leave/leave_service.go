package leave

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/theesh-25755/HR-mobile-app/internal/approval"
	approvalerrors "github.com/theesh-25755/HR-mobile-app/internal/approval/errors"
	leaveerrors "github.com/theesh-25755/HR-mobile-app/internal/leave/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// maxDecideAttempts bounds the re-read/re-decide loop on CAS conflicts.
const maxDecideAttempts = 3

// Notifier dispatches a notification to a recipient. Dispatch is
// fire-and-forget relative to the decision: failures are logged, never
// rolled back into the approval transition.
type Notifier interface {
	Publish(ctx context.Context, recipientEmail, category, message string) error
}

// Requester is the verified identity the submit operation captures.
type Requester struct {
	Email string
	Name  string
	Role  string
}

type Service interface {
	Submit(ctx context.Context, requester Requester, req SubmitLeaveRequest) (LeaveResponse, error)
	PendingFor(ctx context.Context, role string, page, pageSize int) ([]LeaveResponse, int64, error)
	Act(ctx context.Context, id, actorEmail, actorName, actorRole string, req ActionRequest) (LeaveResponse, error)
	Mine(ctx context.Context, email string) ([]LeaveResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	notifier Notifier
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, notifier Notifier, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, notifier: notifier, logger: l}
}

func (s *service) Submit(ctx context.Context, requester Requester, req SubmitLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("submit leave requested",
		zap.String("requester", requester.Email),
		zap.String("leave_type", req.LeaveType),
		zap.String("from_date", req.FromDate),
		zap.String("to_date", req.ToDate),
	)

	fromDate, err := parseDate(req.FromDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	toDate, err := parseDate(req.ToDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	if fromDate.After(toDate) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	now := time.Now().UTC()
	l := &Leave{
		ID:             uuid.New(),
		RequesterEmail: requester.Email,
		RequesterName:  requester.Name,
		RequesterRole:  requester.Role,
		LeaveType:      req.LeaveType,
		FromDate:       fromDate,
		ToDate:         toDate,
		Reason:         req.Reason,
		HalfDay:        req.HalfDay,
		DayCount:       dayCount(req, fromDate, toDate),

		SupervisorStatus:     string(approval.StatusPending),
		ProjectManagerStatus: string(approval.StatusPending),
		HRManagerStatus:      string(approval.StatusPending),
		FinalStatus:          string(approval.StatusPending),

		SubmittedAt: now,
		UpdatedAt:   now,
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("submit leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("submit leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("requester", requester.Email),
	)

	return mapToResponse(*l), nil
}

func (s *service) PendingFor(ctx context.Context, role string, page, pageSize int) ([]LeaveResponse, int64, error) {
	gate, ok := approval.ParseApproverRole(role)
	if !ok {
		return nil, 0, approvalerrors.ErrNotApprover
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	leaves, total, err := s.repo.FindPendingForGate(ctx, gate, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(leaves), total, nil
}

func (s *service) Act(ctx context.Context, id, actorEmail, actorName, actorRole string, req ActionRequest) (LeaveResponse, error) {
	role, ok := approval.ParseApproverRole(actorRole)
	if !ok {
		return LeaveResponse{}, approvalerrors.ErrNotApprover
	}
	actor := approval.Actor{Role: role, Email: actorEmail, Name: actorName}

	for attempt := 1; attempt <= maxDecideAttempts; attempt++ {
		resp, err := s.tryAct(ctx, id, actor, req)
		if err == nil {
			return resp, nil
		}
		if !errors.Is(err, leaveerrors.ErrConflict) {
			return LeaveResponse{}, err
		}
		s.logger.Warn("leave decision conflict, re-reading",
			zap.String("leave_id", id),
			zap.String("actor_role", string(role)),
			zap.Int("attempt", attempt),
		)
	}

	return LeaveResponse{}, leaveerrors.ErrConflict
}

// tryAct runs one read-decide-write pass. A ErrConflict return means the
// guarded update lost a race and the caller should retry from the read.
func (s *service) tryAct(ctx context.Context, id string, actor approval.Actor, req ActionRequest) (LeaveResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("act begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}

	out, err := approval.Decide(l.Snapshot(), actor, approval.Action(req.Action), req.Comment, time.Now().UTC())
	if err != nil {
		s.logger.Warn("leave decision refused",
			zap.String("leave_id", id),
			zap.String("actor_role", string(actor.Role)),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	guard := DecisionGuard{
		ActorRole:   actor.Role,
		FinalStatus: approval.Status(l.FinalStatus),
		RoleStatus:  l.ApprovalSet().Of(actor.Role),
	}
	if err := qtx.ApplyDecision(ctx, id, guard, out); err != nil {
		if !errors.Is(err, leaveerrors.ErrConflict) {
			s.logger.Error("apply leave decision failed",
				zap.String("leave_id", id),
				zap.Error(err),
			)
		}
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("act commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("leave decision applied",
		zap.String("leave_id", id),
		zap.String("actor_role", string(actor.Role)),
		zap.String("action", string(out.Entry.Action)),
		zap.String("final_status", string(out.Final)),
	)

	for _, n := range out.Notices {
		if err := s.notifier.Publish(ctx, n.RecipientEmail, n.Category, n.Message); err != nil {
			s.logger.Error("dispatch leave notification failed",
				zap.String("leave_id", id),
				zap.String("recipient", n.RecipientEmail),
				zap.Error(err),
			)
		}
	}

	applyOutcome(l, out)
	return mapToResponse(*l), nil
}

func (s *service) Mine(ctx context.Context, email string) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindByRequester(ctx, email)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func dayCount(req SubmitLeaveRequest, fromDate, toDate time.Time) float64 {
	if req.DayCount > 0 {
		return req.DayCount
	}
	days := float64(int(toDate.Sub(fromDate).Hours()/24) + 1)
	if req.HalfDay && days == 1 {
		return 0.5
	}
	return days
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

// applyOutcome mirrors the persisted mutation onto the in-memory record
// so the response reflects what was written.
func applyOutcome(l *Leave, out approval.Outcome) {
	l.SupervisorStatus = string(out.Approvals.Supervisor)
	l.ProjectManagerStatus = string(out.Approvals.ProjectManager)
	l.HRManagerStatus = string(out.Approvals.HRManager)
	l.FinalStatus = string(out.Final)
	if out.RejectedBy != nil {
		v := string(*out.RejectedBy)
		l.RejectedBy = &v
	}
	l.RejectedAt = out.RejectedAt
	l.ApprovedAt = out.ApprovedAt
	l.UpdatedAt = out.Entry.DecidedAt
	l.History = append(l.History, DecisionRecord{
		LeaveID:    l.ID,
		ActorRole:  string(out.Entry.ActorRole),
		ActorEmail: out.Entry.ActorEmail,
		ActorName:  out.Entry.ActorName,
		Action:     string(out.Entry.Action),
		Comment:    out.Entry.Comment,
		DecidedAt:  out.Entry.DecidedAt,
	})
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:             l.ID.String(),
		RequesterEmail: l.RequesterEmail,
		RequesterName:  l.RequesterName,
		RequesterRole:  l.RequesterRole,
		LeaveType:      l.LeaveType,
		FromDate:       l.FromDate.Format("2006-01-02"),
		ToDate:         l.ToDate.Format("2006-01-02"),
		Reason:         l.Reason,
		HalfDay:        l.HalfDay,
		DayCount:       l.DayCount,
		Approvals: ApprovalsResponse{
			Supervisor:     l.SupervisorStatus,
			ProjectManager: l.ProjectManagerStatus,
			HRManager:      l.HRManagerStatus,
		},
		FinalStatus: l.FinalStatus,
		RejectedBy:  l.RejectedBy,
		History:     make([]DecisionResponse, 0, len(l.History)),
		SubmittedAt: l.SubmittedAt.Format(time.RFC3339),
		UpdatedAt:   l.UpdatedAt.Format(time.RFC3339),
	}
	if l.RejectedAt != nil {
		v := l.RejectedAt.Format(time.RFC3339)
		resp.RejectedAt = &v
	}
	if l.ApprovedAt != nil {
		v := l.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	for _, d := range l.History {
		resp.History = append(resp.History, DecisionResponse{
			ByRole:  d.ActorRole,
			ByEmail: d.ActorEmail,
			ByName:  d.ActorName,
			Action:  d.Action,
			Comment: d.Comment,
			At:      d.DecidedAt.Format(time.RFC3339),
		})
	}
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
