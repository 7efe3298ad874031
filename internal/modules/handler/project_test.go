package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/planhub-io/planhub/internal/modules/model"
	"github.com/planhub-io/planhub/internal/modules/service"
	"github.com/planhub-io/planhub/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProjectService is a mock implementation of ProjectService
type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) Create(ctx context.Context, in service.CreateProjectInput) (*model.Project, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) Get(ctx context.Context, id uint) (*model.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) List(ctx context.Context) ([]model.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockProjectService) Update(ctx context.Context, id uint, patch service.ProjectPatch) (*model.Project, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func setupProjectRouter(h *ProjectHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/project", h.CreateProject)
	r.GET("/project", h.GetProjects)
	r.GET("/project/:project_id", h.GetProject)
	r.PUT("/project/:project_id", h.UpdateProject)
	r.DELETE("/project/:project_id", h.DeleteProject)
	return r
}

func TestProjectHandler_CreateProject(t *testing.T) {
	tests := []struct {
		name           string
		body           CreateProjectReq
		setup          func(*MockProjectService)
		expectedStatus int
	}{
		{
			name: "successful project creation",
			body: CreateProjectReq{Name: "Warehouse Build", StartDate: "2026-03-01"},
			setup: func(svc *MockProjectService) {
				svc.On("Create", mock.Anything, mock.MatchedBy(func(in service.CreateProjectInput) bool {
					return in.Name == "Warehouse Build" && in.StartDate != nil
				})).Return(&model.Project{ID: 1, Name: "Warehouse Build", Status: model.ProjectPlanning}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "missing name",
			body: CreateProjectReq{},
			setup: func(svc *MockProjectService) {
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "malformed date",
			body: CreateProjectReq{Name: "x", StartDate: "March 1st"},
			setup: func(svc *MockProjectService) {
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "invalid status from service",
			body: CreateProjectReq{Name: "x", Status: "Cancelled"},
			setup: func(svc *MockProjectService) {
				svc.On("Create", mock.Anything, mock.Anything).
					Return(nil, apperr.Validation("invalid project status %q", "Cancelled"))
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockProjectService{}
			tt.setup(mockService)

			router := setupProjectRouter(NewProjectHandler(mockService))

			payload, _ := sonic.Marshal(tt.body)
			req := httptest.NewRequest("POST", "/project", bytes.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestProjectHandler_GetProject(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		setup          func(*MockProjectService)
		expectedStatus int
	}{
		{
			name: "found",
			path: "/project/1",
			setup: func(svc *MockProjectService) {
				svc.On("Get", mock.Anything, uint(1)).Return(&model.Project{ID: 1, Name: "Warehouse Build"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "not found",
			path: "/project/9",
			setup: func(svc *MockProjectService) {
				svc.On("Get", mock.Anything, uint(9)).Return(nil, apperr.NotFound("project %d not found", 9))
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "non-numeric id",
			path: "/project/abc",
			setup: func(svc *MockProjectService) {
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockProjectService{}
			tt.setup(mockService)

			router := setupProjectRouter(NewProjectHandler(mockService))

			req := httptest.NewRequest("GET", tt.path, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestProjectHandler_DeleteProject(t *testing.T) {
	mockService := &MockProjectService{}
	mockService.On("Delete", mock.Anything, uint(3)).Return(nil)

	router := setupProjectRouter(NewProjectHandler(mockService))

	req := httptest.NewRequest("DELETE", "/project/3", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}
