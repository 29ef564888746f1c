package save

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pronav-backend/internal/storage"
)

type MockReportSaver struct {
	mock.Mock
}

func (m *MockReportSaver) SaveReport(ctx context.Context, rep *storage.ReportRecord) (int64, error) {
	args := m.Called(ctx, rep)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportSaver) ReplaceImages(ctx context.Context, reportID int64, images []storage.ImageEntry) error {
	args := m.Called(ctx, reportID, images)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validBody() map[string]any {
	return map[string]any{
		"user_id":           "u-1",
		"CLIENTE":           "Transpetro",
		"NAVIO":             "NT Dragão do Mar",
		"CONTATO":           "Cmte. Silva",
		"OBRA":              "Docagem 2026",
		"LOCAL":             "Porto do Açu",
		"OS":                "OS-1042",
		"PROBLEMA_RELATADO": "Radar sem imagem.",
		"SERVICO_REALIZADO": "Troca do magnetron.",
		"RESULTADO":         "Operacional.",
		"PENDENCIAS":        "Nenhuma.",
		"MATERIAL_CLIENTE":  "Nenhum.",
		"MATERIAL_PRONAV":   "Magnetron novo.",
	}
}

func postJSON(t *testing.T, h http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	assert.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/relatorios", bytes.NewReader(raw))
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func TestSaveReport_Success(t *testing.T) {
	mockStorage := new(MockReportSaver)
	mockStorage.On("SaveReport", mock.Anything, mock.Anything).Return(int64(42), nil)

	w := postJSON(t, SaveReport(testLogger(), mockStorage), validBody())

	assert.Equal(t, http.StatusOK, w.Code)
	var resp Response
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.ReportID)
	assert.Empty(t, resp.Error)
	mockStorage.AssertExpectations(t)
}

func TestSaveReport_WithImages(t *testing.T) {
	mockStorage := new(MockReportSaver)
	mockStorage.On("SaveReport", mock.Anything, mock.Anything).Return(int64(7), nil)
	mockStorage.On("ReplaceImages", mock.Anything, int64(7), mock.Anything).Return(nil)

	body := validBody()
	body["IMAGENS"] = []map[string]string{
		{"conteudo": base64.StdEncoding.EncodeToString([]byte("fake-bytes")), "legenda": "antena"},
	}

	w := postJSON(t, SaveReport(testLogger(), mockStorage), body)

	assert.Equal(t, http.StatusOK, w.Code)
	mockStorage.AssertExpectations(t)
}

func TestSaveReport_InvalidJSON(t *testing.T) {
	mockStorage := new(MockReportSaver)

	req := httptest.NewRequest(http.MethodPost, "/api/relatorios", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	SaveReport(testLogger(), mockStorage)(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockStorage.AssertNotCalled(t, "SaveReport")
}

func TestSaveReport_MissingRequiredField(t *testing.T) {
	mockStorage := new(MockReportSaver)

	body := validBody()
	delete(body, "NAVIO")
	w := postJSON(t, SaveReport(testLogger(), mockStorage), body)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	mockStorage.AssertNotCalled(t, "SaveReport")
}

func TestSaveReport_BadImagePayload(t *testing.T) {
	mockStorage := new(MockReportSaver)

	body := validBody()
	body["IMAGENS"] = []map[string]string{{"conteudo": "%%% não é base64 %%%", "legenda": "x"}}
	w := postJSON(t, SaveReport(testLogger(), mockStorage), body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockStorage.AssertNotCalled(t, "SaveReport")
}

func TestSaveReport_StorageError(t *testing.T) {
	mockStorage := new(MockReportSaver)
	mockStorage.On("SaveReport", mock.Anything, mock.Anything).Return(int64(0), errors.New("db down"))

	w := postJSON(t, SaveReport(testLogger(), mockStorage), validBody())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp Response
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
}

func TestSaveReport_KMRuleAppliedOnValidate(t *testing.T) {
	mockStorage := new(MockReportSaver)
	var saved *storage.ReportRecord
	mockStorage.On("SaveReport", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*storage.ReportRecord) }).
		Return(int64(1), nil)

	body := validBody()
	body["activities"] = []map[string]string{
		{"DATA": "2026-01-10", "TIPO": "Período de Espera", "KM": "99", "HORA": "08:00 às 12:00", "TECNICO1": "Ana"},
	}
	w := postJSON(t, SaveReport(testLogger(), mockStorage), body)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, saved)
	assert.Equal(t, "", saved.Activities[0].KM)
}
