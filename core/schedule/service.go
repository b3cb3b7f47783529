package schedule

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
)

type (
	// Client is the slice of the API client this service needs. GetRaw is
	// only used for the QR PNG endpoint.
	Client interface {
		Get(ctx context.Context, path string, into interface{}) error
		Post(ctx context.Context, path string, body, into interface{}) error
		GetRaw(ctx context.Context, path string) ([]byte, error)
	}

	Service struct {
		client Client
	}
)

func NewService(client Client) *Service {
	return &Service{client: client}
}

// List fetches the viewer's lesson list, newest first (server ordering).
func (svc *Service) List(ctx context.Context) ([]Lesson, error) {
	var lessons []Lesson
	if err := svc.client.Get(ctx, "lessons/", &lessons); err != nil {
		return nil, errors.Wrap(err, "fetching lessons")
	}
	return lessons, nil
}

// Detail fetches the full roster for one lesson.
func (svc *Service) Detail(ctx context.Context, id int) (LessonDetail, error) {
	var detail LessonDetail
	if err := svc.client.Get(ctx, fmt.Sprintf("lessons/%d/details/", id), &detail); err != nil {
		return LessonDetail{}, errors.Wrap(err, "fetching lesson detail")
	}
	return detail, nil
}

// Mark submits one attendance mark and returns the server's success text.
// Rejections come back as *core.APIError with the server message verbatim.
func (svc *Service) Mark(ctx context.Context, qrToken, deviceID string) (string, error) {
	req := MarkRequest{QRToken: qrToken, DeviceID: deviceID}
	var resp markResponse
	if err := svc.client.Post(ctx, "attendance/mark/", req, &resp); err != nil {
		return "", err
	}
	return resp.Success, nil
}

// QRImage fetches the server-rendered QR PNG for one lesson (admin only,
// enforced server-side).
func (svc *Service) QRImage(ctx context.Context, id int) ([]byte, error) {
	img, err := svc.client.GetRaw(ctx, fmt.Sprintf("lessons/%d/qr/", id))
	return img, errors.Wrap(err, "fetching lesson QR")
}
