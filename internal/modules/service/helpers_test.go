package service

import (
	"time"

	"github.com/planhub-io/planhub/internal/modules/model"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func statusPtr(s model.TaskStatus) *model.TaskStatus { return &s }
