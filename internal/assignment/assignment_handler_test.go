package assignment_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-gemtrack/internal/assignment"
	assignmenterrors "go-gemtrack/internal/assignment/errors"
	"go-gemtrack/internal/middleware"
	"go-gemtrack/internal/shared/apperror"
	"go-gemtrack/internal/shared/query"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeAssignmentService struct {
	assignFn  func(ctx context.Context, userID, packetID string, req assignment.AssignmentRequest) (assignment.AssignmentResponse, error)
	getByIDFn func(ctx context.Context, userID, packetID, id string) (assignment.AssignmentResponse, error)
}

func (f *fakeAssignmentService) Assign(ctx context.Context, userID, packetID string, req assignment.AssignmentRequest) (assignment.AssignmentResponse, error) {
	return f.assignFn(ctx, userID, packetID, req)
}

func (f *fakeAssignmentService) GetByID(ctx context.Context, userID, packetID, id string) (assignment.AssignmentResponse, error) {
	return f.getByIDFn(ctx, userID, packetID, id)
}

func (f *fakeAssignmentService) List(context.Context, string, string, query.Request) (query.Page[assignment.AssignmentResponse], error) {
	return query.Page[assignment.AssignmentResponse]{}, nil
}

func (f *fakeAssignmentService) Update(context.Context, string, string, string, assignment.AssignmentRequest) (assignment.AssignmentResponse, error) {
	return assignment.AssignmentResponse{}, nil
}

func (f *fakeAssignmentService) Delete(context.Context, string, string, string) error { return nil }

func init() {
	gin.SetMode(gin.TestMode)
	apperror.Init()
}

const (
	processUUID  = "7d444840-9dc0-11d1-b245-5ffdce74fad2"
	employeeUUID = "9b2f1fd0-1c7e-4b43-8b7e-2f0f0d6c1a11"
)

func TestAssignmentHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantInBody string
	}{
		{
			name:       "success",
			body:       `{"processId":"` + processUUID + `","employeeId":"` + employeeUUID + `","startDateTime":"2025-03-02T09:00:00Z","beforeWeight":10}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "unknown status",
			body:       `{"processId":"` + processUUID + `","employeeId":"` + employeeUUID + `","status":"DONE","startDateTime":"2025-03-02T09:00:00Z","beforeWeight":10}`,
			wantStatus: http.StatusBadRequest,
			wantInBody: `"status"`,
		},
		{
			name:       "zero before weight",
			body:       `{"processId":"` + processUUID + `","employeeId":"` + employeeUUID + `","startDateTime":"2025-03-02T09:00:00Z","beforeWeight":0}`,
			wantStatus: http.StatusBadRequest,
			wantInBody: `"beforeWeight"`,
		},
		{
			name:       "after weight precision",
			body:       `{"processId":"` + processUUID + `","employeeId":"` + employeeUUID + `","startDateTime":"2025-03-02T09:00:00Z","beforeWeight":10,"afterWeight":"7.12345"}`,
			wantStatus: http.StatusBadRequest,
			wantInBody: `"afterWeight"`,
		},
		{
			name:       "employee id not uuid",
			body:       `{"processId":"` + processUUID + `","employeeId":"E-1","startDateTime":"2025-03-02T09:00:00Z","beforeWeight":10}`,
			wantStatus: http.StatusBadRequest,
			wantInBody: `"employeeId"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPacket string
			svc := &fakeAssignmentService{
				assignFn: func(_ context.Context, _ string, packetID string, req assignment.AssignmentRequest) (assignment.AssignmentResponse, error) {
					gotPacket = packetID
					return assignment.AssignmentResponse{ProcessID: req.ProcessID}, nil
				},
			}
			h := assignment.NewHandler(svc, zap.NewNop())

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/diamond-packets/p-1/processes", bytes.NewBufferString(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")
			c.Params = gin.Params{{Key: "id", Value: "p-1"}}
			c.Set(middleware.ContextUserID, "user-1")

			h.Create(c)

			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantInBody != "" {
				assert.Contains(t, w.Body.String(), tt.wantInBody)
			}
			if tt.wantStatus == http.StatusCreated {
				assert.Equal(t, "p-1", gotPacket)
			}
		})
	}
}

func TestAssignmentHandler_GetById_NotFound(t *testing.T) {
	svc := &fakeAssignmentService{
		getByIDFn: func(_ context.Context, _, packetID, id string) (assignment.AssignmentResponse, error) {
			assert.Equal(t, "p-1", packetID)
			assert.Equal(t, "a-1", id)
			return assignment.AssignmentResponse{}, assignmenterrors.ErrAssignmentNotFound
		},
	}
	h := assignment.NewHandler(svc, zap.NewNop())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/diamond-packets/p-1/processes/a-1", nil)
	c.Params = gin.Params{{Key: "id", Value: "p-1"}, {Key: "assignmentId", Value: "a-1"}}
	c.Set(middleware.ContextUserID, "user-1")

	h.GetById(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Assigned process not found or access denied")
}
