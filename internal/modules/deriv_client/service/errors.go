package service

import (
	"fmt"

	"github.com/pkg/errors"
)

// APIError — error-кадр Deriv.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	MsgType string `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("deriv %s error: code=%s msg=%s", e.MsgType, e.Code, e.Message)
}

// ErrClosed — соединение закрыто до ответа.
var ErrClosed = errors.New("deriv client: connection closed")
