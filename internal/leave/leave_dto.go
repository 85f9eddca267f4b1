package leave

type SubmitLeaveRequest struct {
	LeaveType string  `json:"leaveType" binding:"required"`
	FromDate  string  `json:"fromDate" binding:"required"`
	ToDate    string  `json:"toDate" binding:"required"`
	Reason    string  `json:"reason"`
	HalfDay   bool    `json:"halfDay"`
	DayCount  float64 `json:"days"`
}

// ActionRequest carries an approver decision. Action is validated by the
// state machine, not by binding, so the precondition order stays fixed.
type ActionRequest struct {
	Action  string `json:"action"`
	Comment string `json:"comment"`
}

type ApprovalsResponse struct {
	Supervisor     string `json:"supervisor"`
	ProjectManager string `json:"project_manager"`
	HRManager      string `json:"hr_manager"`
}

type DecisionResponse struct {
	ByRole  string `json:"by_role"`
	ByEmail string `json:"by_email"`
	ByName  string `json:"by_name"`
	Action  string `json:"action"`
	Comment string `json:"comment"`
	At      string `json:"at"`
}

type LeaveResponse struct {
	ID             string             `json:"id"`
	RequesterEmail string             `json:"user_email"`
	RequesterName  string             `json:"user_name"`
	RequesterRole  string             `json:"role"`
	LeaveType      string             `json:"leaveType"`
	FromDate       string             `json:"fromDate"`
	ToDate         string             `json:"toDate"`
	Reason         string             `json:"reason"`
	HalfDay        bool               `json:"halfDay"`
	DayCount       float64            `json:"days"`
	Approvals      ApprovalsResponse  `json:"approvals"`
	FinalStatus    string             `json:"finalStatus"`
	RejectedBy     *string            `json:"rejectedBy,omitempty"`
	RejectedAt     *string            `json:"rejectedAt,omitempty"`
	ApprovedAt     *string            `json:"approvedAt,omitempty"`
	History        []DecisionResponse `json:"history"`
	SubmittedAt    string             `json:"submittedAt"`
	UpdatedAt      string             `json:"updatedAt"`
}
