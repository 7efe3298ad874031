package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/planhub-io/planhub/internal/modules/model"
	"github.com/planhub-io/planhub/internal/modules/service"
	"github.com/planhub-io/planhub/internal/pkg/apperr"
	"github.com/planhub-io/planhub/internal/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockTaskService is a mock implementation of TaskService
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) Create(ctx context.Context, in service.CreateTaskInput) (*model.Task, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) Get(ctx context.Context, id uint) (*model.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) ListByProject(ctx context.Context, projectID uint) ([]model.Task, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskService) Update(ctx context.Context, id uint, patch planner.TaskPatch) (*model.Task, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskService) BulkUpdate(ctx context.Context, projectID uint, ids []uint, patch planner.TaskPatch) (int64, error) {
	args := m.Called(ctx, projectID, ids, patch)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskService) ValidateDependencies(ctx context.Context, projectID uint) ([]planner.Issue, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]planner.Issue), args.Error(1)
}

func setupTaskRouter(h *TaskHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/project/:project_id/task", h.CreateTask)
	r.GET("/project/:project_id/task", h.GetTasks)
	r.PUT("/project/:project_id/task/bulk", h.BulkUpdateTasks)
	r.GET("/project/:project_id/validate", h.ValidateDependencies)
	r.PUT("/task/:task_id", h.UpdateTask)
	r.DELETE("/task/:task_id", h.DeleteTask)
	return r
}

func TestTaskHandler_CreateTask(t *testing.T) {
	tests := []struct {
		name           string
		body           CreateTaskReq
		setup          func(*MockTaskService)
		expectedStatus int
	}{
		{
			name: "successful task creation",
			body: CreateTaskReq{Description: "pour foundation", StartDate: "2026-03-01"},
			setup: func(svc *MockTaskService) {
				svc.On("Create", mock.Anything, mock.MatchedBy(func(in service.CreateTaskInput) bool {
					return in.ProjectID == 1 && in.Description == "pour foundation" &&
						in.StartDate != nil && in.StartDate.Format("2006-01-02") == "2026-03-01"
				})).Return(&model.Task{ID: 1, ProjectID: 1, Code: "T001", Description: "pour foundation"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "malformed start date",
			body: CreateTaskReq{Description: "x", StartDate: "03/01/2026"},
			setup: func(svc *MockTaskService) {
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "validation error from service",
			body: CreateTaskReq{Description: "x"},
			setup: func(svc *MockTaskService) {
				svc.On("Create", mock.Anything, mock.Anything).
					Return(nil, apperr.Validation("invalid status %q", "Finished"))
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "project not found",
			body: CreateTaskReq{Description: "x"},
			setup: func(svc *MockTaskService) {
				svc.On("Create", mock.Anything, mock.Anything).
					Return(nil, apperr.NotFound("project %d not found", 1))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockTaskService{}
			tt.setup(mockService)

			router := setupTaskRouter(NewTaskHandler(mockService))

			payload, _ := sonic.Marshal(tt.body)
			req := httptest.NewRequest("POST", "/project/1/task", bytes.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestTaskHandler_CreateTask_BadProjectID(t *testing.T) {
	mockService := &MockTaskService{}
	router := setupTaskRouter(NewTaskHandler(mockService))

	payload, _ := sonic.Marshal(CreateTaskReq{Description: "x"})
	req := httptest.NewRequest("POST", "/project/abc/task", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTaskHandler_UpdateTask(t *testing.T) {
	complete := "Complete"

	tests := []struct {
		name           string
		body           UpdateTaskReq
		setup          func(*MockTaskService)
		expectedStatus int
	}{
		{
			name: "successful update",
			body: UpdateTaskReq{Status: &complete},
			setup: func(svc *MockTaskService) {
				svc.On("Update", mock.Anything, uint(5), mock.MatchedBy(func(p planner.TaskPatch) bool {
					return p.Status != nil && *p.Status == model.TaskComplete
				})).Return(&model.Task{ID: 5, Code: "T001", Status: model.TaskComplete, CompletionPercent: 100}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "terminal status conflict",
			body: UpdateTaskReq{Status: strField("In Progress")},
			setup: func(svc *MockTaskService) {
				svc.On("Update", mock.Anything, uint(5), mock.Anything).
					Return(nil, apperr.StateTransition("task T001 is Complete and cannot move back to %q", "In Progress"))
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "task not found",
			body: UpdateTaskReq{Status: &complete},
			setup: func(svc *MockTaskService) {
				svc.On("Update", mock.Anything, uint(5), mock.Anything).
					Return(nil, apperr.NotFound("task %d not found", 5))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockTaskService{}
			tt.setup(mockService)

			router := setupTaskRouter(NewTaskHandler(mockService))

			payload, _ := sonic.Marshal(tt.body)
			req := httptest.NewRequest("PUT", "/task/5", bytes.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestTaskHandler_BulkUpdateTasks(t *testing.T) {
	mockService := &MockTaskService{}
	mockService.On("BulkUpdate", mock.Anything, uint(1), []uint{10, 11}, mock.MatchedBy(func(p planner.TaskPatch) bool {
		return p.Status != nil && *p.Status == model.TaskComplete
	})).Return(int64(2), nil)

	router := setupTaskRouter(NewTaskHandler(mockService))

	payload, _ := sonic.Marshal(BulkUpdateTasksReq{
		IDs:   []uint{10, 11},
		Patch: UpdateTaskReq{Status: strField("Complete")},
	})
	req := httptest.NewRequest("PUT", "/project/1/task/bulk", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data BulkUpdateTasksResp `json:"data"`
	}
	assert.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(2), resp.Data.UpdatedCount)
	mockService.AssertExpectations(t)
}

func TestTaskHandler_BulkUpdateTasks_MissingIDs(t *testing.T) {
	mockService := &MockTaskService{}
	router := setupTaskRouter(NewTaskHandler(mockService))

	req := httptest.NewRequest("PUT", "/project/1/task/bulk", bytes.NewReader([]byte(`{"patch":{}}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "BulkUpdate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTaskHandler_ValidateDependencies(t *testing.T) {
	tests := []struct {
		name          string
		setup         func(*MockTaskService)
		expectedValid bool
		expectedLen   int
	}{
		{
			name: "clean project",
			setup: func(svc *MockTaskService) {
				svc.On("ValidateDependencies", mock.Anything, uint(1)).Return([]planner.Issue{}, nil)
			},
			expectedValid: true,
			expectedLen:   0,
		},
		{
			name: "issues reported",
			setup: func(svc *MockTaskService) {
				svc.On("ValidateDependencies", mock.Anything, uint(1)).Return([]planner.Issue{
					{Type: planner.IssueMissingDependency, TaskCode: "T002", DependencyCode: "T404"},
				}, nil)
			},
			expectedValid: false,
			expectedLen:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockTaskService{}
			tt.setup(mockService)

			router := setupTaskRouter(NewTaskHandler(mockService))

			req := httptest.NewRequest("GET", "/project/1/validate", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)

			var resp struct {
				Data ValidateResp `json:"data"`
			}
			assert.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedValid, resp.Data.Valid)
			assert.Len(t, resp.Data.Issues, tt.expectedLen)
			mockService.AssertExpectations(t)
		})
	}
}

func TestTaskHandler_GetTasks_ServiceError(t *testing.T) {
	mockService := &MockTaskService{}
	mockService.On("ListByProject", mock.Anything, uint(1)).Return(nil, errors.New("database error"))

	router := setupTaskRouter(NewTaskHandler(mockService))

	req := httptest.NewRequest("GET", "/project/1/task", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestTaskHandler_DeleteTask(t *testing.T) {
	mockService := &MockTaskService{}
	mockService.On("Delete", mock.Anything, uint(7)).Return(nil)

	router := setupTaskRouter(NewTaskHandler(mockService))

	req := httptest.NewRequest("DELETE", "/task/7", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func strField(s string) *string { return &s }
