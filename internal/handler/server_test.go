package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/douradinams/Douradinams/internal/middleware"
	"github.com/douradinams/Douradinams/internal/repository"
	"github.com/douradinams/Douradinams/internal/service"
	"github.com/douradinams/Douradinams/pkg/kvstore"
	"github.com/douradinams/Douradinams/pkg/storage"
)

const testPrefix = "/api/v1"

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	collections := repository.NewCollections(kvstore.NewMemoryStore(), logger)
	students := repository.NewStudentRepository(collections)
	schools := repository.NewSchoolRepository(collections)
	staff := repository.NewStaffRepository(collections)
	settings := repository.NewSettingsRepository(collections)

	photoStore, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	authSvc := service.NewAuthService(students, staff, nil, logger, service.AuthConfig{
		AccessTokenSecret: "test-secret",
		AccessTokenExpiry: time.Hour,
		Issuer:            "school-pass",
		SupportSecret:     "03137799104",
	})
	photoSvc := service.NewPhotoService(students, photoStore, logger, service.PhotoConfig{URLPrefix: testPrefix})
	signer := storage.NewSignedURLSigner("share-secret", time.Hour)

	h := Handlers{
		Auth:       NewAuthHandler(authSvc),
		Navigation: NewNavigationHandler(),
		Settings:   NewSettingsHandler(service.NewSettingsService(settings, nil, logger, 0)),
		Students: NewStudentHandler(
			service.NewStudentService(students, schools, nil, logger),
			service.NewExportService(students, schools, logger, nil, nil),
			photoSvc,
		),
		Passes: NewPassHandler(service.NewPassService(students, photoSvc, nil, signer, nil, logger, service.PassConfig{
			PublicBaseURL: "http://localhost:8080",
			APIPrefix:     testPrefix,
		})),
		Schools: NewSchoolHandler(service.NewSchoolService(schools, students, nil, logger)),
		Staff:   NewStaffHandler(service.NewStaffService(staff, nil, logger)),
		Metrics: NewMetricsHandler(nil, nil, logger),
	}

	r := gin.New()
	RegisterRoutes(r, testPrefix, middleware.JWT(authSvc), middleware.OptionalJWT(authSvc), h)
	return r
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, testPrefix+path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func login(t *testing.T, r *gin.Engine, path string, body interface{}) (string, string) {
	t.Helper()
	rec, env := doJSON(t, r, http.MethodPost, "/auth/login/"+path, "", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res struct {
		AccessToken string `json:"access_token"`
		User        struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	require.NotEmpty(t, res.AccessToken)
	return res.AccessToken, res.User.ID
}

func TestStaffRegistersStudentWhoThenViewsOwnPass(t *testing.T) {
	r := newTestServer(t)

	staffToken, _ := login(t, r, "staff", map[string]string{"cpf": "000.000.000-00"})

	rec, env := doJSON(t, r, http.MethodPost, "/students", staffToken, map[string]interface{}{
		"name":      "Ana Silva",
		"cpf":       "123.456.789-00",
		"birthDate": "2010-05-01",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID                 string `json:"id"`
		RegistrationNumber string `json:"registrationNumber"`
		School             string `json:"school"`
		Status             string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Regexp(t, `^\d{4}-\d{3}$`, created.RegistrationNumber)
	assert.Equal(t, "Colégio Integração", created.School)
	assert.Equal(t, "Pending", created.Status)

	rec, env = doJSON(t, r, http.MethodPost, "/navigation", staffToken, map[string]interface{}{
		"state":  map[string]string{"screen": "dashboard"},
		"action": "logout",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"clearSession":true`)

	studentToken, studentID := login(t, r, "student", map[string]string{"cpf": "123.456.789-00", "birthDate": "2010-05-01"})
	assert.Equal(t, created.ID, studentID)

	rec, env = doJSON(t, r, http.MethodPost, "/navigation", studentToken, map[string]interface{}{"action": "login"})
	require.Equal(t, http.StatusOK, rec.Code)
	var nav struct {
		State struct {
			Screen    string `json:"screen"`
			StudentID string `json:"studentId"`
		} `json:"state"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &nav))
	assert.Equal(t, "view", nav.State.Screen)
	assert.Equal(t, created.ID, nav.State.StudentID)

	rec, env = doJSON(t, r, http.MethodGet, "/students/"+created.ID, studentToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var viewed struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &viewed))
	assert.Equal(t, "Ana Silva", viewed.Name)

	rec, _ = doJSON(t, r, http.MethodGet, "/students", studentToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = doJSON(t, r, http.MethodGet, "/students/"+created.ID+"/pass.pdf", studentToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}

func TestLoginFailuresUseLocalisedMessages(t *testing.T) {
	r := newTestServer(t)

	rec, env := doJSON(t, r, http.MethodPost, "/auth/login/student", "", map[string]string{"cpf": "1", "birthDate": "2010-01-01"})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, service.MsgStudentNotFound, env.Error.Message)

	rec, env = doJSON(t, r, http.MethodPost, "/auth/login/staff", "", map[string]string{"cpf": "999"})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, service.MsgStaffNotFound, env.Error.Message)

	rec, env = doJSON(t, r, http.MethodPost, "/auth/login/support", "", map[string]string{"secret": "guess"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, service.MsgInvalidSupportCred, env.Error.Message)

	rec, _ = doJSON(t, r, http.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSupportManagesSchoolsStaffAndSettings(t *testing.T) {
	r := newTestServer(t)
	supportToken, _ := login(t, r, "support", map[string]string{"secret": "03137799104"})
	staffToken, _ := login(t, r, "staff", map[string]string{"cpf": "111.111.111-11"})

	rec, env := doJSON(t, r, http.MethodGet, "/schools", staffToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), "Escola Estadual Modelo")

	rec, _ = doJSON(t, r, http.MethodPost, "/schools", staffToken, map[string]string{"name": "X"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = doJSON(t, r, http.MethodPost, "/schools", supportToken, map[string]string{"name": "Escola Nova"})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec, env = doJSON(t, r, http.MethodDelete, "/schools/2", supportToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"removed":true`)

	rec, _ = doJSON(t, r, http.MethodPost, "/staff", supportToken, map[string]string{"name": "Joana", "cpf": "222", "role": "driver"})
	assert.Equal(t, http.StatusCreated, rec.Code)
	rec, _ = doJSON(t, r, http.MethodDelete, "/staff/does-not-exist", supportToken, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, env = doJSON(t, r, http.MethodGet, "/settings/welcome", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"dismissAfterMs":4000`)

	rec, _ = doJSON(t, r, http.MethodPut, "/settings", staffToken, map[string]string{"welcomeMessage": "Oi"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec, _ = doJSON(t, r, http.MethodPut, "/settings", supportToken, map[string]string{"welcomeMessage": "Oi"})
	assert.Equal(t, http.StatusOK, rec.Code)
	_, env = doJSON(t, r, http.MethodGet, "/settings/welcome", "", nil)
	assert.Contains(t, string(env.Data), `"message":"Oi"`)
}

func TestExportImportAndShareRoutes(t *testing.T) {
	r := newTestServer(t)
	staffToken, _ := login(t, r, "staff", map[string]string{"cpf": "000.000.000-00"})

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Nome", "CPF", "Nascimento"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"Bruno Lima", "555", "01/02/2012"}))
	workbook, err := f.WriteToBuffer()
	require.NoError(t, err)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "roster.xlsx")
	require.NoError(t, err)
	_, err = part.Write(workbook.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, testPrefix+"/students/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+staffToken)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"imported":1`)

	rec, _ = doJSON(t, r, http.MethodGet, "/students/export", staffToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Nome,CPF,Escola\nBruno Lima,555,Colégio Integração", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "estudantes.csv")

	rec, _ = doJSON(t, r, http.MethodGet, "/students/export?format=doc", staffToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env := doJSON(t, r, http.MethodGet, "/students?search=bruno", staffToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var found []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &found))
	require.Len(t, found, 1)

	rec, env = doJSON(t, r, http.MethodPost, "/students/"+found[0].ID+"/share", staffToken, map[string]interface{}{
		"capabilities": map[string]bool{"nativeShare": true, "clipboard": true},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var plan struct {
		LinkURL string `json:"linkUrl"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &plan))
	require.True(t, strings.HasPrefix(plan.LinkURL, "http://localhost:8080"+testPrefix+"/passes/"))

	rec, env = doJSON(t, r, http.MethodGet, strings.TrimPrefix(plan.LinkURL, "http://localhost:8080"+testPrefix), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"name":"Bruno Lima"`)

	rec, _ = doJSON(t, r, http.MethodPost, "/students/"+found[0].ID+"/share/result", staffToken, map[string]string{"method": "native", "outcome": "cancelled"})
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestBlankStudentNameIsRejected(t *testing.T) {
	r := newTestServer(t)
	staffToken, _ := login(t, r, "staff", map[string]string{"cpf": "000.000.000-00"})

	rec, env := doJSON(t, r, http.MethodPost, "/students", staffToken, map[string]string{
		"name":      " ",
		"cpf":       "1",
		"birthDate": "2010-05-01",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}
