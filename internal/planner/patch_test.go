package planner

import (
	"testing"

	"github.com/planhub-io/planhub/internal/modules/model"
	"github.com/planhub-io/planhub/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string                       { return &s }
func intPtr(n int) *int                             { return &n }
func statusPtr(s model.TaskStatus) *model.TaskStatus { return &s }

func TestCheckPatch_Lifecycle(t *testing.T) {
	tests := []struct {
		name         string
		current      model.TaskStatus
		patch        TaskPatch
		expectedKind apperr.Kind
	}{
		{
			name:    "complete cannot move back to in progress",
			current: model.TaskComplete,
			patch:   TaskPatch{Status: statusPtr(model.TaskInProgress)},

			expectedKind: apperr.KindStateTransition,
		},
		{
			name:    "complete cannot move back to not started",
			current: model.TaskComplete,
			patch:   TaskPatch{Status: statusPtr(model.TaskNotStarted)},

			expectedKind: apperr.KindStateTransition,
		},
		{
			name:    "complete to complete is a no-op",
			current: model.TaskComplete,
			patch:   TaskPatch{Status: statusPtr(model.TaskComplete)},
		},
		{
			name:    "in progress to on hold is reversible",
			current: model.TaskInProgress,
			patch:   TaskPatch{Status: statusPtr(model.TaskOnHold)},
		},
		{
			name:    "on hold back to not started is reversible",
			current: model.TaskOnHold,
			patch:   TaskPatch{Status: statusPtr(model.TaskNotStarted)},
		},
		{
			name:    "invalid status rejected",
			current: model.TaskInProgress,
			patch:   TaskPatch{Status: statusPtr("Done")},

			expectedKind: apperr.KindValidation,
		},
		{
			name:    "patch without status ignores lifecycle",
			current: model.TaskComplete,
			patch:   TaskPatch{Owner: strPtr("sam")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckPatch(&model.Task{Code: "T001", Status: tt.current}, tt.patch)
			if tt.expectedKind == apperr.KindUnknown {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedKind, apperr.KindOf(err))
			}
		})
	}
}

func TestCheckPatch_CompletionBounds(t *testing.T) {
	current := &model.Task{Code: "T001", Status: model.TaskInProgress}

	assert.NoError(t, CheckPatch(current, TaskPatch{CompletionPercent: intPtr(0)}))
	assert.NoError(t, CheckPatch(current, TaskPatch{CompletionPercent: intPtr(100)}))

	err := CheckPatch(current, TaskPatch{CompletionPercent: intPtr(101)})
	assert.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "between 0 and 100")

	err = CheckPatch(current, TaskPatch{CompletionPercent: intPtr(-1)})
	assert.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestCheckPatch_SelfDependency(t *testing.T) {
	current := &model.Task{Code: "T007", Status: model.TaskInProgress}

	err := CheckPatch(current, TaskPatch{Dependency: strPtr("T001, t007")})
	assert.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "depend on itself")

	assert.NoError(t, CheckPatch(current, TaskPatch{Dependency: strPtr("T001, T002")}))
	// Dangling codes are legal at write time.
	assert.NoError(t, CheckPatch(current, TaskPatch{Dependency: strPtr("T404")}))
}

func TestCheckPatch_EmptyDescription(t *testing.T) {
	current := &model.Task{Code: "T001", Status: model.TaskNotStarted}

	err := CheckPatch(current, TaskPatch{Description: strPtr("   ")})
	assert.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestNormalizePatch(t *testing.T) {
	t.Run("status complete forces percent to 100", func(t *testing.T) {
		p := NormalizePatch(TaskPatch{
			Status:            statusPtr(model.TaskComplete),
			CompletionPercent: intPtr(40),
		})
		assert.Equal(t, 100, *p.CompletionPercent)
	})

	t.Run("status complete without percent sets it", func(t *testing.T) {
		p := NormalizePatch(TaskPatch{Status: statusPtr(model.TaskComplete)})
		assert.NotNil(t, p.CompletionPercent)
		assert.Equal(t, 100, *p.CompletionPercent)
	})

	t.Run("other statuses leave percent alone", func(t *testing.T) {
		p := NormalizePatch(TaskPatch{
			Status:            statusPtr(model.TaskInProgress),
			CompletionPercent: intPtr(40),
		})
		assert.Equal(t, 40, *p.CompletionPercent)

		p = NormalizePatch(TaskPatch{Status: statusPtr(model.TaskOnHold)})
		assert.Nil(t, p.CompletionPercent)
	})
}

func TestTaskPatchChanges(t *testing.T) {
	p := TaskPatch{
		Owner:             strPtr("morgan"),
		Status:            statusPtr(model.TaskComplete),
		CompletionPercent: intPtr(100),
	}

	ch := p.Changes()
	assert.Equal(t, map[string]any{
		"owner":              "morgan",
		"status":             model.TaskComplete,
		"completion_percent": 100,
	}, ch)

	assert.Empty(t, TaskPatch{}.Changes())
}
