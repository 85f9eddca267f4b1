// Package approval holds the pure decision logic of the leave approval
// chain. Decide takes a snapshot of a leave request and returns the
// intended effects as data; persistence and notification dispatch are
// the workflow service's problem.
package approval

import (
	"fmt"
	"time"

	approvalerrors "github.com/theesh-25755/HR-mobile-app/internal/approval/errors"
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

type Action string

const (
	ActionApproved Action = "Approved"
	ActionRejected Action = "Rejected"
)

type Role string

const (
	RoleEmployee       Role = "employee"
	RoleSupervisor     Role = "supervisor"
	RoleProjectManager Role = "project_manager"
	RoleHRManager      Role = "hr_manager"
	RoleSuperAdmin     Role = "super_admin"
)

// ChainOrder is the fixed approval order. A role may only act once every
// role before it has approved.
var ChainOrder = [3]Role{RoleSupervisor, RoleProjectManager, RoleHRManager}

// ParseApproverRole returns the approver role for a claims role string,
// or false for roles outside the chain.
func ParseApproverRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleSupervisor, RoleProjectManager, RoleHRManager:
		return Role(s), true
	default:
		return "", false
	}
}

func (r Role) DisplayName() string {
	switch r {
	case RoleSupervisor:
		return "Supervisor"
	case RoleProjectManager:
		return "Project Manager"
	case RoleHRManager:
		return "HR Manager"
	case RoleSuperAdmin:
		return "Super Admin"
	default:
		return "Employee"
	}
}

// Set is the per-role approval state, one named field per approver role.
type Set struct {
	Supervisor     Status
	ProjectManager Status
	HRManager      Status
}

func NewSet() Set {
	return Set{
		Supervisor:     StatusPending,
		ProjectManager: StatusPending,
		HRManager:      StatusPending,
	}
}

func (s Set) Of(r Role) Status {
	switch r {
	case RoleSupervisor:
		return s.Supervisor
	case RoleProjectManager:
		return s.ProjectManager
	case RoleHRManager:
		return s.HRManager
	default:
		return ""
	}
}

func (s Set) approve(r Role) Set {
	switch r {
	case RoleSupervisor:
		s.Supervisor = StatusApproved
	case RoleProjectManager:
		s.ProjectManager = StatusApproved
	case RoleHRManager:
		s.HRManager = StatusApproved
	}
	return s
}

func (s Set) AllApproved() bool {
	return s.Supervisor == StatusApproved &&
		s.ProjectManager == StatusApproved &&
		s.HRManager == StatusApproved
}

// Gate returns the lowest-ranked role still pending, i.e. whose turn it
// is to act. ok is false once every role has approved.
func (s Set) Gate() (Role, bool) {
	for _, r := range ChainOrder {
		if s.Of(r) == StatusPending {
			return r, true
		}
	}
	return "", false
}

// blocking returns the earliest prior role that has not yet approved.
func (s Set) blocking(r Role) (Role, bool) {
	for _, prior := range ChainOrder {
		if prior == r {
			return "", false
		}
		if s.Of(prior) != StatusApproved {
			return prior, true
		}
	}
	return "", false
}

// Snapshot is the read state a decision is made against. The workflow
// service must condition its write on Final and the actor's entry still
// holding these values.
type Snapshot struct {
	Final          Status
	Approvals      Set
	RequesterEmail string
	RequesterName  string
}

type Actor struct {
	Role  Role
	Email string
	Name  string
}

type HistoryEntry struct {
	ActorRole  Role
	ActorEmail string
	ActorName  string
	Action     Action
	Comment    string
	DecidedAt  time.Time
}

const NoticeCategoryLeave = "Leave Request"

type Notice struct {
	RecipientEmail string
	Category       string
	Message        string
}

// Outcome is the full effect of a legal decision: the new record fields,
// the history entry to append, and the notifications to dispatch.
type Outcome struct {
	Approvals  Set
	Final      Status
	RejectedBy *Role
	RejectedAt *time.Time
	ApprovedAt *time.Time
	Entry      HistoryEntry
	Notices    []Notice
}

// Decide validates an approver's action against a snapshot and computes
// the resulting mutation. Preconditions are checked in a fixed order and
// the first failure wins: approver role, terminal state, chain gating,
// own entry still pending, action value.
func Decide(snap Snapshot, actor Actor, action Action, comment string, now time.Time) (Outcome, error) {
	if _, ok := ParseApproverRole(string(actor.Role)); !ok {
		return Outcome{}, approvalerrors.ErrNotApprover
	}

	if snap.Final != StatusPending {
		return Outcome{}, approvalerrors.AlreadyFinalized(string(snap.Final))
	}

	if blockedBy, blocked := snap.Approvals.blocking(actor.Role); blocked {
		return Outcome{}, approvalerrors.PriorApproverPending(blockedBy.DisplayName())
	}

	if existing := snap.Approvals.Of(actor.Role); existing != StatusPending {
		return Outcome{}, approvalerrors.AlreadyActed(actor.Role.DisplayName(), string(existing))
	}

	if action != ActionApproved && action != ActionRejected {
		return Outcome{}, approvalerrors.ErrInvalidAction
	}

	out := Outcome{
		Approvals: snap.Approvals,
		Final:     StatusPending,
		Entry: HistoryEntry{
			ActorRole:  actor.Role,
			ActorEmail: actor.Email,
			ActorName:  actor.Name,
			Action:     action,
			Comment:    comment,
			DecidedAt:  now,
		},
	}

	if action == ActionRejected {
		rejectedBy := actor.Role
		rejectedAt := now
		out.Final = StatusRejected
		out.RejectedBy = &rejectedBy
		out.RejectedAt = &rejectedAt
		out.Notices = append(out.Notices, Notice{
			RecipientEmail: snap.RequesterEmail,
			Category:       NoticeCategoryLeave,
			Message: fmt.Sprintf(
				"Your leave request was REJECTED by %s (%s)",
				actor.Role.DisplayName(), actor.Name,
			),
		})
		return out, nil
	}

	out.Approvals = snap.Approvals.approve(actor.Role)
	if out.Approvals.AllApproved() {
		approvedAt := now
		out.Final = StatusApproved
		out.ApprovedAt = &approvedAt
		out.Notices = append(out.Notices, Notice{
			RecipientEmail: snap.RequesterEmail,
			Category:       NoticeCategoryLeave,
			Message:        "Your leave request was APPROVED by HR Manager",
		})
	}

	return out, nil
}
