package leaveerrors

import (
	"net/http"

	"github.com/theesh-25755/HR-mobile-app/internal/shared/apperror"
)

var (
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"fromDate must be before or equal toDate",
		http.StatusBadRequest,
	)
	ErrConflict = apperror.New(
		apperror.CodeConflict,
		"a concurrent decision was applied to this leave request, please retry",
		http.StatusConflict,
	)
)
