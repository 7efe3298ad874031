package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/planhub-io/planhub/internal/modules/service"
	"github.com/planhub-io/planhub/internal/pkg/apperr"
	"github.com/planhub-io/planhub/internal/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockTimelineService is a mock implementation of TimelineService
type MockTimelineService struct {
	mock.Mock
}

func (m *MockTimelineService) Build(ctx context.Context, in service.BuildTimelineInput) (planner.Timeline, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(planner.Timeline), args.Error(1)
}

func (m *MockTimelineService) PhaseGroups(ctx context.Context, projectID uint) ([]planner.PhaseGroup, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]planner.PhaseGroup), args.Error(1)
}

func setupTimelineRouter(h *TimelineHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/project/:project_id/timeline", h.GetTimeline)
	r.GET("/project/:project_id/phases", h.GetPhases)
	r.GET("/timeline", h.GetPortfolioTimeline)
	return r
}

func TestTimelineHandler_GetTimeline(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		setup          func(*MockTimelineService)
		expectedStatus int
	}{
		{
			name: "project timeline",
			path: "/project/1/timeline",
			setup: func(svc *MockTimelineService) {
				svc.On("Build", mock.Anything, mock.MatchedBy(func(in service.BuildTimelineInput) bool {
					return in.ProjectID != nil && *in.ProjectID == 1
				})).Return(planner.Timeline{
					Rows: []planner.TimelineRow{{ID: "project-1", Kind: planner.RowProject}},
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "critical ids forwarded",
			path: "/project/1/timeline?critical_task_ids=3&critical_task_ids=4",
			setup: func(svc *MockTimelineService) {
				svc.On("Build", mock.Anything, mock.MatchedBy(func(in service.BuildTimelineInput) bool {
					return len(in.CriticalTaskIDs) == 2
				})).Return(planner.Timeline{}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "project not found",
			path: "/project/9/timeline",
			setup: func(svc *MockTimelineService) {
				svc.On("Build", mock.Anything, mock.Anything).
					Return(planner.Timeline{}, apperr.NotFound("project %d not found", 9))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockTimelineService{}
			tt.setup(mockService)

			router := setupTimelineRouter(NewTimelineHandler(mockService))

			req := httptest.NewRequest("GET", tt.path, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestTimelineHandler_GetPortfolioTimeline(t *testing.T) {
	mockService := &MockTimelineService{}
	mockService.On("Build", mock.Anything, mock.MatchedBy(func(in service.BuildTimelineInput) bool {
		return in.ProjectID == nil
	})).Return(planner.Timeline{}, nil)

	router := setupTimelineRouter(NewTimelineHandler(mockService))

	req := httptest.NewRequest("GET", "/timeline", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestTimelineHandler_GetPhases(t *testing.T) {
	mockService := &MockTimelineService{}
	mockService.On("PhaseGroups", mock.Anything, uint(1)).Return([]planner.PhaseGroup{
		{Name: "Phase 1: Design", Order: 1, Progress: 50},
		{Name: "Uncategorized", Order: planner.PhaseOrder(planner.UncategorizedPhase)},
	}, nil)

	router := setupTimelineRouter(NewTimelineHandler(mockService))

	req := httptest.NewRequest("GET", "/project/1/phases", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []planner.PhaseGroup `json:"data"`
	}
	assert.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, "Phase 1: Design", resp.Data[0].Name)
	mockService.AssertExpectations(t)
}
