package notificationerrors

import (
	"net/http"

	"github.com/theesh-25755/HR-mobile-app/internal/shared/apperror"
)

var ErrNotificationNotFound = apperror.New(
	apperror.CodeNotFound,
	"notification not found",
	http.StatusNotFound,
)
