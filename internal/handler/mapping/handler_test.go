package mapping

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carelink/healthcare-api/internal/handler"
	"github.com/carelink/healthcare-api/internal/model"
	mappingService "github.com/carelink/healthcare-api/internal/service/mapping"
	apperrors "github.com/carelink/healthcare-api/pkg/errors"
)

type stubService struct {
	mappingService.Service

	createFn     func(ctx context.Context, userID int64, req *model.CreateMappingRequest) (*model.PatientDoctorMapping, error)
	listFn       func(ctx context.Context, userID int64) ([]*model.PatientDoctorMapping, error)
	destroyFn    func(ctx context.Context, userID, id int64) (*model.PatientDoctorMapping, error)
	bulkAssignFn func(ctx context.Context, userID int64, req *model.BulkAssignRequest) (*model.BulkAssignResult, error)
}

func (s *stubService) Create(ctx context.Context, userID int64, req *model.CreateMappingRequest) (*model.PatientDoctorMapping, error) {
	return s.createFn(ctx, userID, req)
}

func (s *stubService) List(ctx context.Context, userID int64) ([]*model.PatientDoctorMapping, error) {
	return s.listFn(ctx, userID)
}

func (s *stubService) Destroy(ctx context.Context, userID, id int64) (*model.PatientDoctorMapping, error) {
	return s.destroyFn(ctx, userID, id)
}

func (s *stubService) BulkAssign(ctx context.Context, userID int64, req *model.BulkAssignRequest) (*model.BulkAssignResult, error) {
	return s.bulkAssignFn(ctx, userID, req)
}

func setupRouter(svc mappingService.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	api := engine.Group("/api")
	api.Use(func(c *gin.Context) {
		c.Set(handler.ContextUserID, int64(10))
	})
	NewHandler(svc).RegisterRoutes(api)
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, payload any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func TestCreateMappingResponse(t *testing.T) {
	svc := &stubService{
		createFn: func(ctx context.Context, userID int64, req *model.CreateMappingRequest) (*model.PatientDoctorMapping, error) {
			assert.Equal(t, int64(10), userID)
			return &model.PatientDoctorMapping{
				Base:      model.Base{ID: 1},
				PatientID: req.PatientID,
				DoctorID:  req.DoctorID,
				IsActive:  true,
			}, nil
		},
	}

	w, body := doJSON(t, setupRouter(svc), http.MethodPost, "/api/mappings", gin.H{
		"patient_id": 1,
		"doctor_id":  100,
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Doctor assigned to patient successfully", body["message"])
	require.Contains(t, body, "mapping")
	mapping := body["mapping"].(map[string]any)
	assert.Equal(t, float64(1), mapping["patient"])
	assert.Equal(t, float64(100), mapping["doctor"])
}

func TestCreateMappingMissingFields(t *testing.T) {
	svc := &stubService{
		createFn: func(ctx context.Context, userID int64, req *model.CreateMappingRequest) (*model.PatientDoctorMapping, error) {
			t.Fatal("service must not be called on a bind failure")
			return nil, nil
		},
	}

	w, body := doJSON(t, setupRouter(svc), http.MethodPost, "/api/mappings", gin.H{
		"patient_id": 1,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request", body["error"])
}

func TestCreateMappingConflictEnvelope(t *testing.T) {
	svc := &stubService{
		createFn: func(ctx context.Context, userID int64, req *model.CreateMappingRequest) (*model.PatientDoctorMapping, error) {
			return nil, apperrors.Conflict("This doctor is already assigned to this patient.")
		},
	}

	w, body := doJSON(t, setupRouter(svc), http.MethodPost, "/api/mappings", gin.H{
		"patient_id": 1,
		"doctor_id":  100,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "This doctor is already assigned to this patient.", body["error"])
}

func TestListMappingsEnvelope(t *testing.T) {
	svc := &stubService{
		listFn: func(ctx context.Context, userID int64) ([]*model.PatientDoctorMapping, error) {
			return []*model.PatientDoctorMapping{
				{Base: model.Base{ID: 1}, PatientID: 1, DoctorID: 100},
				{Base: model.Base{ID: 2}, PatientID: 1, DoctorID: 101},
			}, nil
		},
	}

	w, body := doJSON(t, setupRouter(svc), http.MethodGet, "/api/mappings", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Patient-doctor mappings retrieved successfully", body["message"])
	assert.Equal(t, float64(2), body["count"])
	assert.Len(t, body["mappings"], 2)
}

func TestDeleteMappingMessage(t *testing.T) {
	svc := &stubService{
		destroyFn: func(ctx context.Context, userID, id int64) (*model.PatientDoctorMapping, error) {
			return &model.PatientDoctorMapping{
				Base:           model.Base{ID: id},
				PatientDetails: &model.PatientSummary{Name: "Alice Smith"},
				DoctorDetails:  &model.DoctorSummary{Name: "Gregory House"},
			}, nil
		},
	}

	w, body := doJSON(t, setupRouter(svc), http.MethodDelete, "/api/mappings/1", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Dr. Gregory House removed from patient Alice Smith successfully", body["message"])
}

func TestDeleteMappingNotFound(t *testing.T) {
	svc := &stubService{
		destroyFn: func(ctx context.Context, userID, id int64) (*model.PatientDoctorMapping, error) {
			return nil, apperrors.NotFound("Mapping not found")
		},
	}

	w, body := doJSON(t, setupRouter(svc), http.MethodDelete, "/api/mappings/999", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Mapping not found", body["error"])
}

func TestDeleteMappingMalformedID(t *testing.T) {
	svc := &stubService{
		destroyFn: func(ctx context.Context, userID, id int64) (*model.PatientDoctorMapping, error) {
			t.Fatal("service must not be called for a malformed id")
			return nil, nil
		},
	}

	w, body := doJSON(t, setupRouter(svc), http.MethodDelete, "/api/mappings/abc", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not found", body["error"])
}

func TestBulkAssignPartialFailure(t *testing.T) {
	svc := &stubService{
		bulkAssignFn: func(ctx context.Context, userID int64, req *model.BulkAssignRequest) (*model.BulkAssignResult, error) {
			return &model.BulkAssignResult{
				Created: []*model.PatientDoctorMapping{
					{Base: model.Base{ID: 1}, PatientID: req.PatientID, DoctorID: 100},
				},
				Errors: []string{
					"Doctor with ID 999 not found",
					"Dr. Meredith Grey is already assigned to this patient",
				},
			}, nil
		},
	}

	w, body := doJSON(t, setupRouter(svc), http.MethodPost, "/api/mappings/bulk_assign", gin.H{
		"patient_id": 1,
		"doctor_ids": []int64{100, 999, 101},
	})

	// Partial failures still create what they can.
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "1 doctors assigned successfully", body["message"])
	assert.Equal(t, float64(1), body["created_count"])
	assert.Equal(t, float64(2), body["error_count"])
	assert.Len(t, body["errors"], 2)
}

func TestBulkAssignAllSucceed(t *testing.T) {
	svc := &stubService{
		bulkAssignFn: func(ctx context.Context, userID int64, req *model.BulkAssignRequest) (*model.BulkAssignResult, error) {
			created := make([]*model.PatientDoctorMapping, len(req.DoctorIDs))
			for i, doctorID := range req.DoctorIDs {
				created[i] = &model.PatientDoctorMapping{
					Base:      model.Base{ID: int64(i + 1)},
					PatientID: req.PatientID,
					DoctorID:  doctorID,
				}
			}
			return &model.BulkAssignResult{Created: created, Errors: []string{}}, nil
		},
	}

	w, body := doJSON(t, setupRouter(svc), http.MethodPost, "/api/mappings/bulk_assign", gin.H{
		"patient_id": 1,
		"doctor_ids": []int64{100, 101},
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "2 doctors assigned successfully", body["message"])
	assert.NotContains(t, body, "errors")
	assert.NotContains(t, body, "error_count")
}

func TestBulkAssignEmptyDoctorList(t *testing.T) {
	svc := &stubService{
		bulkAssignFn: func(ctx context.Context, userID int64, req *model.BulkAssignRequest) (*model.BulkAssignResult, error) {
			t.Fatal("service must not be called on a bind failure")
			return nil, nil
		},
	}

	w, _ := doJSON(t, setupRouter(svc), http.MethodPost, "/api/mappings/bulk_assign", gin.H{
		"patient_id": 1,
		"doctor_ids": []int64{},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnauthenticatedRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	api := engine.Group("/api")
	NewHandler(&stubService{}).RegisterRoutes(api)

	req := httptest.NewRequest(http.MethodGet, "/api/mappings", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
