package get

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pronav-backend/internal/storage"
)

type MockReportGetter struct {
	mock.Mock
}

func (m *MockReportGetter) GetReport(ctx context.Context, id int64, userID string) (*storage.ReportRecord, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.ReportRecord), args.Error(1)
}

func (m *MockReportGetter) GetReportsByUser(ctx context.Context, userID string) ([]*storage.ReportSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*storage.ReportSummary), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func getWithID(h http.HandlerFunc, url, id string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func TestGetReport_Success(t *testing.T) {
	mockStorage := new(MockReportGetter)
	mockStorage.On("GetReport", mock.Anything, int64(7), "u-1").
		Return(&storage.ReportRecord{ID: 7, Client: "Transpetro", Ship: "Vega"}, nil)

	w := getWithID(GetReport(testLogger(), mockStorage), "/api/relatorios/7?user_id=u-1", "7")

	assert.Equal(t, http.StatusOK, w.Code)
	var rep storage.ReportRecord
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &rep))
	assert.Equal(t, int64(7), rep.ID)
	assert.Equal(t, "Transpetro", rep.Client)
	mockStorage.AssertExpectations(t)
}

func TestGetReport_NotFound(t *testing.T) {
	mockStorage := new(MockReportGetter)
	mockStorage.On("GetReport", mock.Anything, int64(9), "u-1").
		Return(nil, storage.ErrReportNotFound)

	w := getWithID(GetReport(testLogger(), mockStorage), "/api/relatorios/9?user_id=u-1", "9")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetReport_BadID(t *testing.T) {
	mockStorage := new(MockReportGetter)

	w := getWithID(GetReport(testLogger(), mockStorage), "/api/relatorios/abc?user_id=u-1", "abc")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockStorage.AssertNotCalled(t, "GetReport")
}

func TestGetReport_MissingUser(t *testing.T) {
	mockStorage := new(MockReportGetter)

	w := getWithID(GetReport(testLogger(), mockStorage), "/api/relatorios/7", "7")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockStorage.AssertNotCalled(t, "GetReport")
}

func TestGetReports_Success(t *testing.T) {
	mockStorage := new(MockReportGetter)
	mockStorage.On("GetReportsByUser", mock.Anything, "u-1").
		Return([]*storage.ReportSummary{{ID: 1, Ship: "Vega"}, {ID: 2, Ship: "Altair"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/relatorios?user_id=u-1", nil)
	w := httptest.NewRecorder()
	GetReports(testLogger(), mockStorage)(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var list []*storage.ReportSummary
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 2)
}

func TestGetReports_EmptyListIsJSONArray(t *testing.T) {
	mockStorage := new(MockReportGetter)
	mockStorage.On("GetReportsByUser", mock.Anything, "u-1").
		Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/relatorios?user_id=u-1", nil)
	w := httptest.NewRecorder()
	GetReports(testLogger(), mockStorage)(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", string(json.RawMessage(bytesTrim(w.Body.Bytes()))))
}

func TestGetReports_StorageError(t *testing.T) {
	mockStorage := new(MockReportGetter)
	mockStorage.On("GetReportsByUser", mock.Anything, "u-1").
		Return(nil, errors.New("db down"))

	req := httptest.NewRequest(http.MethodGet, "/api/relatorios?user_id=u-1", nil)
	w := httptest.NewRecorder()
	GetReports(testLogger(), mockStorage)(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func bytesTrim(b []byte) []byte {
	for len(b) > 0 && (b[len(b)-1] == '\n' || b[len(b)-1] == '\r') {
		b = b[:len(b)-1]
	}
	return b
}
