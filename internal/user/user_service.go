package user

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/theesh-25755/HR-mobile-app/internal/shared/contextutil"
	usererrors "github.com/theesh-25755/HR-mobile-app/internal/user/errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	GetProfile(ctx context.Context, email string) (ProfileResponse, error)
	UpdateProfile(ctx context.Context, email string, req UpdateProfileRequest) error
	UploadPhoto(ctx context.Context, email, filename, mimeType string, data []byte) (PhotoResponse, error)
	ListUsers(ctx context.Context) ([]UserSummaryResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetProfile(ctx context.Context, email string) (ProfileResponse, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProfileResponse{}, usererrors.ErrUserNotFound
		}
		return ProfileResponse{}, err
	}

	resp := ProfileResponse{
		Email:      u.Email,
		Name:       u.Name,
		Role:       u.Role,
		Phone:      u.Phone,
		Department: u.Department,
	}
	if u.ProfileImage != "" {
		img := u.ProfileImage
		resp.ProfileImage = &img
	}
	return resp, nil
}

func (s *service) UpdateProfile(ctx context.Context, email string, req UpdateProfileRequest) error {
	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Department != nil {
		fields["department"] = *req.Department
	}
	if len(fields) == 0 {
		return usererrors.ErrNoFieldsToUpdate
	}

	affected, err := s.repo.UpdateProfile(ctx, email, fields)
	if err != nil {
		return err
	}
	if affected == 0 {
		return usererrors.ErrUserNotFound
	}

	contextutil.GetLogger(ctx, nil).Info("profile updated",
		zap.String("email", email),
		zap.Int("fields", len(fields)),
	)
	return nil
}

func (s *service) UploadPhoto(ctx context.Context, email, filename, mimeType string, data []byte) (PhotoResponse, error) {
	if len(data) == 0 {
		return PhotoResponse{}, usererrors.ErrMissingPhotoFile
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	encoded := base64.StdEncoding.EncodeToString(data)
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, encoded)

	affected, err := s.repo.UpdatePhoto(ctx, email, dataURL, filename, time.Now().UTC())
	if err != nil {
		return PhotoResponse{}, err
	}
	if affected == 0 {
		return PhotoResponse{}, usererrors.ErrUserNotFound
	}

	return PhotoResponse{
		Message:      "Profile image uploaded",
		ProfileImage: dataURL,
	}, nil
}

func (s *service) ListUsers(ctx context.Context) ([]UserSummaryResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]UserSummaryResponse, len(users))
	for i, u := range users {
		resp[i] = UserSummaryResponse{
			Email:      u.Email,
			Name:       u.Name,
			Role:       u.Role,
			Department: u.Department,
		}
	}
	return resp, nil
}
