package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdbstore/internal/config"
	"pdbstore/internal/models"
	"pdbstore/internal/testutil"
	"pdbstore/internal/utils"
)

var testSecret = []byte("test-secret")

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type testServer struct {
	router          *gin.Engine
	correspondences *testutil.CorrespondenceStore
	coordinates     *testutil.CoordinateStore
	token           string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ts := &testServer{
		correspondences: testutil.NewCorrespondenceStore(),
		coordinates:     testutil.NewCoordinateStore(),
	}
	cfg := &config.Config{AccessTokenSecret: testSecret, CORSAllowedOrigins: []string{"*"}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ts.router = NewRouter(cfg, logger, Stores{
		Correspondences: ts.correspondences,
		Coordinates:     ts.coordinates,
		Components: &testutil.ComponentFinder{Components: []models.Component{
			{PDB: "1GID", Model: 1, Chain: "A", Number: 103, Sequence: "G", Index: 0},
		}},
		Schema: testutil.HealthySchema(),
	})

	token, err := utils.GenerateToken("tester", testSecret, time.Minute)
	require.NoError(t, err)
	ts.token = token
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, body string, auth bool) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if auth {
		req.Header.Set("Authorization", "Bearer "+ts.token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	w, _ := ts.do(t, http.MethodGet, "/", "", false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestIDIsEchoed(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestCorrespondenceEndpoints(t *testing.T) {
	ts := newTestServer(t)

	w, _ := ts.do(t, http.MethodPost, "/api/v1/correspondences", `{"id":1,"pdb":"1S72"}`, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "writes need a token")

	w, env := ts.do(t, http.MethodPost, "/api/v1/correspondences", `{"id":1,"pdb":"1S72","pdb_file":"1S72.cif"}`, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "success", env.Status)

	w, _ = ts.do(t, http.MethodPost, "/api/v1/correspondences", `{"id":2,"pdb":"1S72"}`, true)
	require.Equal(t, http.StatusCreated, w.Code)

	w, env = ts.do(t, http.MethodPost, "/api/v1/correspondences", `{"id":1,"pdb":"2AVY"}`, true)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "error", env.Status)
	assert.Contains(t, env.Error, "unique")

	w, _ = ts.do(t, http.MethodPost, "/api/v1/correspondences", `{"pdb":"2AVY"}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code, "missing id")

	w, env = ts.do(t, http.MethodGet, "/api/v1/correspondences/1", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	var rec models.PdbUnitIdCorrespondence
	require.NoError(t, json.Unmarshal(env.Data, &rec))
	assert.Equal(t, int64(1), rec.ID)
	assert.Equal(t, "1S72", *rec.PDB)
	assert.Nil(t, rec.Chain)

	w, _ = ts.do(t, http.MethodGet, "/api/v1/correspondences/99", "", false)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = ts.do(t, http.MethodGet, "/api/v1/correspondences/abc", "", false)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = ts.do(t, http.MethodGet, "/api/v1/correspondences?pdb=1S72&pdb_file=1S72.cif", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.PdbUnitIdCorrespondence
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, int64(1), list[0].ID)

	w, _ = ts.do(t, http.MethodGet, "/api/v1/correspondences", "", false)
	assert.Equal(t, http.StatusBadRequest, w.Code, "pdb is required")

	w, _ = ts.do(t, http.MethodGet, "/api/v1/correspondences?pdb=1S72&limit=x", "", false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCorrespondenceEndpoints_StoredValuesUnchanged(t *testing.T) {
	ts := newTestServer(t)

	body := `{"id":5,"pdb":"1ABC","model":1,"chain":" ","seq_id":5,"comp_id":"G","atom":" CA "}`
	w, _ := ts.do(t, http.MethodPost, "/api/v1/correspondences", body, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env := ts.do(t, http.MethodGet, "/api/v1/correspondences/5", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	var got struct {
		Chain         *string `json:"chain"`
		Atom          *string `json:"atom"`
		UnitID        *string `json:"unit_id"`
		DerivedUnitID *string `json:"derived_unit_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, " ", *got.Chain)
	assert.Equal(t, " CA ", *got.Atom)
	assert.Nil(t, got.UnitID)
	require.NotNil(t, got.DerivedUnitID)
	assert.Equal(t, "1ABC|1| |G|5| CA ", *got.DerivedUnitID)
}

func TestIntegerRangeIsBadRequest(t *testing.T) {
	ts := newTestServer(t)

	w, _ := ts.do(t, http.MethodPost, "/api/v1/correspondences", `{"id":3000000000}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = ts.do(t, http.MethodPost, "/api/v1/coordinates", `{"id":"X1","model":2147483648}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = ts.do(t, http.MethodGet, "/api/v1/correspondences/3000000000", "", false)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = ts.do(t, http.MethodPost, "/api/v1/load/pdb_unit_id_correspondence", "id\n3000000000\n", true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	n, err := ts.correspondences.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCoordinateEndpoints(t *testing.T) {
	ts := newTestServer(t)

	body := `{"id":"101M_1_A_1","pdb":"101M","pdb_type":"ATOM","model":1,"chain":"A","number":1,"unit":"MET","ins_code":"","index":0}`
	w, _ := ts.do(t, http.MethodPost, "/api/v1/coordinates", body, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env := ts.do(t, http.MethodGet, "/api/v1/coordinates/101M_1_A_1", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, body, string(env.Data))

	w, _ = ts.do(t, http.MethodPost, "/api/v1/coordinates", body, true)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = ts.do(t, http.MethodPost, "/api/v1/coordinates", `{"id":null,"pdb":"101M"}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = ts.do(t, http.MethodGet, "/api/v1/coordinates?pdb=101M", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.PdbCoordinate
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 1)
}

func TestLoadEndpoint(t *testing.T) {
	ts := newTestServer(t)

	csv := "id,pdb,index\n101M_1_A_1,101M,0\n101M_1_A_2,101M,1\n"
	w, env := ts.do(t, http.MethodPost, "/api/v1/load/pdb_coordinates", csv, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, string(env.Data), `"rows":2`)

	w, _ = ts.do(t, http.MethodPost, "/api/v1/load/pdb_coordinates", csv, true)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = ts.do(t, http.MethodPost, "/api/v1/load/pdb_coordinates?replace=true", csv, true)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = ts.do(t, http.MethodPost, "/api/v1/load/pdb_coordinates?replace=maybe", csv, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = ts.do(t, http.MethodPost, "/api/v1/load/pdb_info", csv, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = ts.do(t, http.MethodPost, "/api/v1/load/pdb_coordinates", csv, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env = ts.do(t, http.MethodGet, "/api/v1/counts", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"pdb_unit_id_correspondence":0,"pdb_coordinates":2}`, string(env.Data))
}

func TestComponentLookupEndpoint(t *testing.T) {
	ts := newTestServer(t)

	w, env := ts.do(t, http.MethodPost, "/api/v1/components/lookup", `{"pdb":"1GID","pdb_file":"1GID.cif","motifs":[[0]]}`, false)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, string(env.Data), `"unit_id":"1GID|1|A|G|103"`)

	w, _ = ts.do(t, http.MethodPost, "/api/v1/components/lookup", `{"pdb":"1GID","pdb_file":"1GID.cif","motifs":[[5]]}`, false)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = ts.do(t, http.MethodPost, "/api/v1/components/lookup", `{"pdb":"1GID"}`, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSchemaEndpoints(t *testing.T) {
	ts := newTestServer(t)

	w, env := ts.do(t, http.MethodGet, "/api/v1/schema", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	var tables []models.Table
	require.NoError(t, json.Unmarshal(env.Data, &tables))
	assert.Len(t, tables, 2)

	w, env = ts.do(t, http.MethodGet, "/api/v1/schema/verify", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"ok":true`)

	w, env = ts.do(t, http.MethodGet, "/api/v1/schema/diagram", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), "erDiagram")
}

func TestInternalErrorsAreNotLeaked(t *testing.T) {
	ts := newTestServer(t)
	ts.correspondences.Err = assert.AnError

	w, env := ts.do(t, http.MethodGet, "/api/v1/correspondences/1", "", false)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, env.Error)
}

func TestCORSConfig(t *testing.T) {
	all := corsConfig([]string{"*"})
	assert.True(t, all.AllowAllOrigins)

	some := corsConfig([]string{"https://rna.bgsu.edu"})
	assert.False(t, some.AllowAllOrigins)
	assert.Equal(t, []string{"https://rna.bgsu.edu"}, some.AllowOrigins)
}

func TestNewServer_Timeouts(t *testing.T) {
	srv := NewServer(&config.Config{Port: 8080}, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)

	assert.Equal(t, ":8080", srv.Addr)
	assert.Equal(t, 10*time.Second, srv.ReadHeaderTimeout)
	assert.GreaterOrEqual(t, srv.ReadTimeout, 5*time.Minute, "bulk uploads need time to stream")
	assert.Equal(t, srv.ReadTimeout, srv.WriteTimeout)
}
