package approvalerrors

import (
	"fmt"
	"net/http"

	"github.com/theesh-25755/HR-mobile-app/internal/shared/apperror"
)

var (
	ErrNotApprover = apperror.New(
		apperror.CodeForbidden,
		"role is not part of the approval chain",
		http.StatusForbidden,
	)
	ErrInvalidAction = apperror.New(
		apperror.CodeInvalidInput,
		"action must be Approved or Rejected",
		http.StatusBadRequest,
	)
)

// AlreadyFinalized reports a decision against a terminal request,
// telling the caller the existing outcome.
func AlreadyFinalized(currentStatus string) *apperror.AppError {
	return apperror.New(
		apperror.CodeInvalidState,
		fmt.Sprintf("leave request is already %s", currentStatus),
		http.StatusBadRequest,
	)
}

// PriorApproverPending reports a chain-order violation, naming the
// approver that is still blocking.
func PriorApproverPending(blockingRole string) *apperror.AppError {
	return apperror.New(
		apperror.CodeInvalidState,
		fmt.Sprintf("%s must approve first", blockingRole),
		http.StatusBadRequest,
	)
}

// AlreadyActed reports a duplicate decision by the same role.
func AlreadyActed(role, existingStatus string) *apperror.AppError {
	return apperror.New(
		apperror.CodeInvalidState,
		fmt.Sprintf("this request is already %s by %s", existingStatus, role),
		http.StatusBadRequest,
	)
}
