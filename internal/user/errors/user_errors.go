package usererrors

import (
	"net/http"

	"github.com/theesh-25755/HR-mobile-app/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"user not found",
		http.StatusNotFound,
	)
	ErrNoFieldsToUpdate = apperror.New(
		apperror.CodeInvalidInput,
		"no valid fields to update",
		http.StatusBadRequest,
	)
	ErrMissingPhotoFile = apperror.New(
		apperror.CodeInvalidInput,
		"no file part named 'profileImage'",
		http.StatusBadRequest,
	)
)
