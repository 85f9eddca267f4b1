package leave_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/theesh-25755/HR-mobile-app/internal/approval"
	approvalerrors "github.com/theesh-25755/HR-mobile-app/internal/approval/errors"
	"github.com/theesh-25755/HR-mobile-app/internal/leave"
	leaveerrors "github.com/theesh-25755/HR-mobile-app/internal/leave/errors"
	"github.com/theesh-25755/HR-mobile-app/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeLeaveRepository struct {
	withTxFn             func(tx *sql.Tx) leave.Repository
	createFn             func(ctx context.Context, l *leave.Leave) error
	findByIDFn           func(ctx context.Context, id string) (*leave.Leave, error)
	findPendingForGateFn func(ctx context.Context, gate approval.Role, limit, offset int) ([]leave.Leave, int64, error)
	findByRequesterFn    func(ctx context.Context, email string) ([]leave.Leave, error)
	applyDecisionFn      func(ctx context.Context, id string, guard leave.DecisionGuard, out approval.Outcome) error
}

func (f *fakeLeaveRepository) WithTx(tx *sql.Tx) leave.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeLeaveRepository) Create(ctx context.Context, l *leave.Leave) error {
	if f.createFn != nil {
		return f.createFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) FindByID(ctx context.Context, id string) (*leave.Leave, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) FindPendingForGate(ctx context.Context, gate approval.Role, limit, offset int) ([]leave.Leave, int64, error) {
	if f.findPendingForGateFn != nil {
		return f.findPendingForGateFn(ctx, gate, limit, offset)
	}
	return nil, 0, nil
}

func (f *fakeLeaveRepository) FindByRequester(ctx context.Context, email string) ([]leave.Leave, error) {
	if f.findByRequesterFn != nil {
		return f.findByRequesterFn(ctx, email)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) ApplyDecision(ctx context.Context, id string, guard leave.DecisionGuard, out approval.Outcome) error {
	if f.applyDecisionFn != nil {
		return f.applyDecisionFn(ctx, id, guard, out)
	}
	return nil
}

type publishedNotice struct {
	recipient string
	category  string
	message   string
}

type fakeNotifier struct {
	publishFn func(ctx context.Context, recipientEmail, category, message string) error
	published []publishedNotice
}

func (f *fakeNotifier) Publish(ctx context.Context, recipientEmail, category, message string) error {
	f.published = append(f.published, publishedNotice{recipient: recipientEmail, category: category, message: message})
	if f.publishFn != nil {
		return f.publishFn(ctx, recipientEmail, category, message)
	}
	return nil
}

type leaveServiceDeps struct {
	db       *sql.DB
	sqlMock  sqlmock.Sqlmock
	service  leave.Service
	repo     *fakeLeaveRepository
	notifier *fakeNotifier
}

func setupLeaveServiceTest(t *testing.T) *leaveServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeLeaveRepository{}
	notifier := &fakeNotifier{}
	svc := leave.NewService(db, repo, notifier)

	return &leaveServiceDeps{
		db:       db,
		sqlMock:  sqlMock,
		service:  svc,
		repo:     repo,
		notifier: notifier,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func pendingLeave() *leave.Leave {
	now := time.Now().UTC()
	return &leave.Leave{
		ID:             uuid.New(),
		RequesterEmail: "dana@example.com",
		RequesterName:  "Dana",
		RequesterRole:  "employee",
		LeaveType:      "Annual",
		FromDate:       now.AddDate(0, 0, 7),
		ToDate:         now.AddDate(0, 0, 9),
		Reason:         "family trip",
		DayCount:       3,

		SupervisorStatus:     string(approval.StatusPending),
		ProjectManagerStatus: string(approval.StatusPending),
		HRManagerStatus:      string(approval.StatusPending),
		FinalStatus:          string(approval.StatusPending),

		SubmittedAt: now,
		UpdatedAt:   now,
	}
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *apperror.AppError
	assert.True(t, errors.As(err, &appErr), "expected *apperror.AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
}

func TestLeaveService_Submit(t *testing.T) {
	ctx := context.Background()
	requester := leave.Requester{Email: "dana@example.com", Name: "Dana", Role: "employee"}

	t.Run("success creates pending request", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		var created *leave.Leave
		deps.repo.createFn = func(ctx context.Context, l *leave.Leave) error {
			created = l
			return nil
		}
		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Submit(ctx, requester, leave.SubmitLeaveRequest{
			LeaveType: "Annual",
			FromDate:  "2026-09-07",
			ToDate:    "2026-09-09",
			Reason:    "family trip",
		})

		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.Equal(t, string(approval.StatusPending), created.SupervisorStatus)
		assert.Equal(t, string(approval.StatusPending), created.ProjectManagerStatus)
		assert.Equal(t, string(approval.StatusPending), created.HRManagerStatus)
		assert.Equal(t, string(approval.StatusPending), resp.FinalStatus)
		assert.Equal(t, float64(3), resp.DayCount)
		assert.Empty(t, resp.History)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success half day counts 0.5", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Submit(ctx, requester, leave.SubmitLeaveRequest{
			LeaveType: "Casual",
			FromDate:  "2026-09-07",
			ToDate:    "2026-09-07",
			HalfDay:   true,
		})

		assert.NoError(t, err)
		assert.Equal(t, 0.5, resp.DayCount)
	})

	t.Run("negative bad date format", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Submit(ctx, requester, leave.SubmitLeaveRequest{
			LeaveType: "Annual",
			FromDate:  "07-09-2026",
			ToDate:    "2026-09-09",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateFormat)
	})

	t.Run("negative from after to", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Submit(ctx, requester, leave.SubmitLeaveRequest{
			LeaveType: "Annual",
			FromDate:  "2026-09-10",
			ToDate:    "2026-09-09",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
	})
}

func TestLeaveService_PendingFor(t *testing.T) {
	ctx := context.Background()

	t.Run("success pushes page window into the repository", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findPendingForGateFn = func(ctx context.Context, gate approval.Role, limit, offset int) ([]leave.Leave, int64, error) {
			assert.Equal(t, approval.RoleProjectManager, gate)
			assert.Equal(t, 10, limit)
			assert.Equal(t, 10, offset)
			return []leave.Leave{*pendingLeave()}, 11, nil
		}

		resp, total, err := deps.service.PendingFor(ctx, "project_manager", 2, 10)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, int64(11), total)
	})

	t.Run("success defaults page and size", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findPendingForGateFn = func(ctx context.Context, gate approval.Role, limit, offset int) ([]leave.Leave, int64, error) {
			assert.Equal(t, 10, limit)
			assert.Equal(t, 0, offset)
			return nil, 0, nil
		}

		_, _, err := deps.service.PendingFor(ctx, "supervisor", 0, 0)

		assert.NoError(t, err)
	})

	t.Run("negative employee is not an approver", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, _, err := deps.service.PendingFor(ctx, "employee", 1, 10)

		assert.ErrorIs(t, err, approvalerrors.ErrNotApprover)
	})
}

func TestLeaveService_Act(t *testing.T) {
	ctx := context.Background()

	t.Run("success supervisor approval stays pending overall", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		l := pendingLeave()
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return l, nil
		}
		var guard leave.DecisionGuard
		deps.repo.applyDecisionFn = func(ctx context.Context, id string, g leave.DecisionGuard, out approval.Outcome) error {
			guard = g
			return nil
		}
		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Act(ctx, l.ID.String(), "sam@example.com", "Sam", "supervisor", leave.ActionRequest{
			Action:  "Approved",
			Comment: "ok",
		})

		assert.NoError(t, err)
		assert.Equal(t, approval.RoleSupervisor, guard.ActorRole)
		assert.Equal(t, approval.StatusPending, guard.FinalStatus)
		assert.Equal(t, approval.StatusPending, guard.RoleStatus)
		assert.Equal(t, string(approval.StatusApproved), resp.Approvals.Supervisor)
		assert.Equal(t, string(approval.StatusPending), resp.FinalStatus)
		assert.Len(t, resp.History, 1)
		assert.Empty(t, deps.notifier.published, "intermediate approval must not notify")
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success final approval notifies requester once", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		l := pendingLeave()
		l.SupervisorStatus = string(approval.StatusApproved)
		l.ProjectManagerStatus = string(approval.StatusApproved)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return l, nil
		}
		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Act(ctx, l.ID.String(), "hana@example.com", "Hana", "hr_manager", leave.ActionRequest{
			Action: "Approved",
		})

		assert.NoError(t, err)
		assert.Equal(t, string(approval.StatusApproved), resp.FinalStatus)
		assert.NotNil(t, resp.ApprovedAt)
		assert.Len(t, deps.notifier.published, 1)
		assert.Equal(t, "dana@example.com", deps.notifier.published[0].recipient)
		assert.Equal(t, approval.NoticeCategoryLeave, deps.notifier.published[0].category)
		assert.Contains(t, deps.notifier.published[0].message, "APPROVED")
	})

	t.Run("success rejection short-circuits and notifies", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		l := pendingLeave()
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return l, nil
		}
		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Act(ctx, l.ID.String(), "sam@example.com", "Sam", "supervisor", leave.ActionRequest{
			Action:  "Rejected",
			Comment: "short staffed",
		})

		assert.NoError(t, err)
		assert.Equal(t, string(approval.StatusRejected), resp.FinalStatus)
		assert.Equal(t, string(approval.StatusPending), resp.Approvals.Supervisor)
		assert.NotNil(t, resp.RejectedBy)
		assert.Len(t, deps.notifier.published, 1)
		assert.Contains(t, deps.notifier.published[0].message, "REJECTED")
	})

	t.Run("success notification failure does not fail decision", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		l := pendingLeave()
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return l, nil
		}
		deps.notifier.publishFn = func(ctx context.Context, recipientEmail, category, message string) error {
			return errors.New("broker down")
		}
		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Act(ctx, l.ID.String(), "sam@example.com", "Sam", "supervisor", leave.ActionRequest{
			Action: "Rejected",
		})

		assert.NoError(t, err)
		assert.Equal(t, string(approval.StatusRejected), resp.FinalStatus)
	})

	t.Run("negative non approver role", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Act(ctx, uuid.NewString(), "dana@example.com", "Dana", "employee", leave.ActionRequest{
			Action: "Approved",
		})

		assert.ErrorIs(t, err, approvalerrors.ErrNotApprover)
	})

	t.Run("negative leave not found", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return nil, gorm.ErrRecordNotFound
		}
		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Act(ctx, uuid.NewString(), "sam@example.com", "Sam", "supervisor", leave.ActionRequest{
			Action: "Approved",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})

	t.Run("negative gated approver cannot act early", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		l := pendingLeave()
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return l, nil
		}
		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Act(ctx, l.ID.String(), "hana@example.com", "Hana", "hr_manager", leave.ActionRequest{
			Action: "Approved",
		})

		assertAppErrorCode(t, err, apperror.CodeInvalidState)
	})

	t.Run("negative terminal request is immutable", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		l := pendingLeave()
		l.FinalStatus = string(approval.StatusRejected)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return l, nil
		}
		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Act(ctx, l.ID.String(), "sam@example.com", "Sam", "supervisor", leave.ActionRequest{
			Action: "Approved",
		})

		assertAppErrorCode(t, err, apperror.CodeInvalidState)
	})

	t.Run("success conflict retried until guard matches", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		l := pendingLeave()
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			cp := *l
			return &cp, nil
		}
		attempts := 0
		deps.repo.applyDecisionFn = func(ctx context.Context, id string, g leave.DecisionGuard, out approval.Outcome) error {
			attempts++
			if attempts == 1 {
				return leaveerrors.ErrConflict
			}
			return nil
		}
		expectTx(t, deps.sqlMock, false)
		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Act(ctx, l.ID.String(), "sam@example.com", "Sam", "supervisor", leave.ActionRequest{
			Action: "Approved",
		})

		assert.NoError(t, err)
		assert.Equal(t, 2, attempts)
		assert.Equal(t, string(approval.StatusApproved), resp.Approvals.Supervisor)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative conflict surfaces after retries exhausted", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		l := pendingLeave()
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			cp := *l
			return &cp, nil
		}
		deps.repo.applyDecisionFn = func(ctx context.Context, id string, g leave.DecisionGuard, out approval.Outcome) error {
			return leaveerrors.ErrConflict
		}
		expectTx(t, deps.sqlMock, false)
		expectTx(t, deps.sqlMock, false)
		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Act(ctx, l.ID.String(), "sam@example.com", "Sam", "supervisor", leave.ActionRequest{
			Action: "Approved",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrConflict)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative loser of race sees duplicate action after re-read", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		l := pendingLeave()
		reads := 0
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			reads++
			cp := *l
			if reads > 1 {
				// winner's write landed between our read and write
				cp.SupervisorStatus = string(approval.StatusApproved)
			}
			return &cp, nil
		}
		deps.repo.applyDecisionFn = func(ctx context.Context, id string, g leave.DecisionGuard, out approval.Outcome) error {
			return leaveerrors.ErrConflict
		}
		expectTx(t, deps.sqlMock, false)
		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Act(ctx, l.ID.String(), "sam@example.com", "Sam", "supervisor", leave.ActionRequest{
			Action: "Approved",
		})

		assertAppErrorCode(t, err, apperror.CodeInvalidState)
		assert.Equal(t, 2, reads)
	})
}

func TestLeaveService_Mine(t *testing.T) {
	ctx := context.Background()

	deps := setupLeaveServiceTest(t)
	defer deps.db.Close()

	deps.repo.findByRequesterFn = func(ctx context.Context, email string) ([]leave.Leave, error) {
		assert.Equal(t, "dana@example.com", email)
		return []leave.Leave{*pendingLeave()}, nil
	}

	resp, err := deps.service.Mine(ctx, "dana@example.com")

	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, "dana@example.com", resp[0].RequesterEmail)
}
