package leave

import (
	"time"

	"github.com/theesh-25755/HR-mobile-app/internal/approval"

	"github.com/google/uuid"
)

type Leave struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RequesterEmail string    `gorm:"type:varchar(255);not null;index:idx_leaves_requester"`
	RequesterName  string    `gorm:"type:varchar(255);not null"`
	RequesterRole  string    `gorm:"type:varchar(50);not null"`

	LeaveType string    `gorm:"type:varchar(30);not null"`
	FromDate  time.Time `gorm:"type:date;not null"`
	ToDate    time.Time `gorm:"type:date;not null"`
	Reason    string    `gorm:"type:text"`
	HalfDay   bool      `gorm:"not null;default:false"`
	DayCount  float64   `gorm:"type:numeric(5,1);not null;default:1"`

	// One named column per approver role so the chain invariants are
	// visible in the schema instead of hidden in a JSON map.
	SupervisorStatus     string `gorm:"column:supervisor_status;type:varchar(20);not null;default:'Pending';index:idx_leaves_gate"`
	ProjectManagerStatus string `gorm:"column:project_manager_status;type:varchar(20);not null;default:'Pending';index:idx_leaves_gate"`
	HRManagerStatus      string `gorm:"column:hr_manager_status;type:varchar(20);not null;default:'Pending';index:idx_leaves_gate"`
	FinalStatus          string `gorm:"column:final_status;type:varchar(20);not null;default:'Pending';index:idx_leaves_gate"`

	RejectedBy *string    `gorm:"type:varchar(50)"`
	RejectedAt *time.Time `gorm:""`
	ApprovedAt *time.Time `gorm:""`

	SubmittedAt time.Time `gorm:"not null;index"`
	UpdatedAt   time.Time

	History []DecisionRecord `gorm:"foreignKey:LeaveID;references:ID"`
}

// DecisionRecord is one row of the append-only decision history. The
// serial primary key preserves insertion order; rows are never updated.
type DecisionRecord struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	LeaveID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ActorRole  string    `gorm:"type:varchar(50);not null"`
	ActorEmail string    `gorm:"type:varchar(255);not null"`
	ActorName  string    `gorm:"type:varchar(255)"`
	Action     string    `gorm:"type:varchar(20);not null"`
	Comment    string    `gorm:"type:text"`
	DecidedAt  time.Time `gorm:"not null"`
}

func (DecisionRecord) TableName() string { return "leave_decisions" }

func (l *Leave) ApprovalSet() approval.Set {
	return approval.Set{
		Supervisor:     approval.Status(l.SupervisorStatus),
		ProjectManager: approval.Status(l.ProjectManagerStatus),
		HRManager:      approval.Status(l.HRManagerStatus),
	}
}

// Snapshot captures the fields a decision must be conditioned on.
func (l *Leave) Snapshot() approval.Snapshot {
	return approval.Snapshot{
		Final:          approval.Status(l.FinalStatus),
		Approvals:      l.ApprovalSet(),
		RequesterEmail: l.RequesterEmail,
		RequesterName:  l.RequesterName,
	}
}
