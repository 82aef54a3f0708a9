package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopower/adapters/export"
	"gopower/domain/power"
	"gopower/internal/config"
	"gopower/internal/sensitivity"
)

func newTestServer() *Server {
	gin.SetMode(gin.TestMode)
	engine := power.NewEngine()
	return NewServer(
		engine,
		export.NewService("gopower"),
		sensitivity.NewSweeper(engine, config.SensitivityConfig{MaxConcurrent: 4, MaxPoints: 100}),
		config.ServerConfig{Port: "0", GinMode: gin.TestMode},
	)
}

func doJSON(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s := newTestServer()
	w := doJSON(t, s, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListDesigns(t *testing.T) {
	s := newTestServer()
	w := doJSON(t, s, http.MethodGet, "/api/v1/designs", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count      int                          `json:"count"`
		Categories map[string][]json.RawMessage `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 21, resp.Count)
	assert.Len(t, resp.Categories, 6)
}

func TestGetDesign(t *testing.T) {
	s := newTestServer()
	w := doJSON(t, s, http.MethodGet, "/api/v1/designs/cra2_2r", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Model         string `json:"model"`
		SampleSizeFor string `json:"sample_size_for"`
		Params        []struct {
			Name    string   `json:"name"`
			Default *float64 `json:"default"`
		} `json:"params"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "3.1", resp.Model)
	assert.Equal(t, "J", resp.SampleSizeFor)
	require.NotEmpty(t, resp.Params)
	assert.Equal(t, "alpha", resp.Params[0].Name)
	require.NotNil(t, resp.Params[0].Default)
	assert.Equal(t, 0.05, *resp.Params[0].Default)
}

func TestGetDesign_Unknown(t *testing.T) {
	s := newTestServer()
	w := doJSON(t, s, http.MethodGet, "/api/v1/designs/cra9_9x", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCalculate_EffectSize(t *testing.T) {
	s := newTestServer()
	w := doJSON(t, s, http.MethodPost, "/api/v1/calculate", CalculateRequest{
		Design: "ira",
		Mode:   "effect_size",
		Params: map[string]float64{"n": 400},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res power.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.InDelta(t, 0.28, res.Value, 0.005)
	assert.Equal(t, 398, res.Multiplier.DF)
	assert.NotEmpty(t, res.ID)
}

func TestCalculate_SampleSize(t *testing.T) {
	s := newTestServer()
	w := doJSON(t, s, http.MethodPost, "/api/v1/calculate", CalculateRequest{
		Design: "ira",
		Mode:   "sample_size",
		Params: map[string]float64{},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res power.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 787.0, res.Value)
}

func TestCalculate_Errors(t *testing.T) {
	s := newTestServer()

	cases := []struct {
		name string
		req  CalculateRequest
		code int
	}{
		{"unknown design", CalculateRequest{Design: "cra9_9x", Mode: "effect_size", Params: map[string]float64{"n": 10}}, http.StatusNotFound},
		{"unknown mode", CalculateRequest{Design: "ira", Mode: "mdes", Params: map[string]float64{"n": 10}}, http.StatusBadRequest},
		{"missing parameter", CalculateRequest{Design: "cra2_2r", Mode: "effect_size", Params: map[string]float64{"n": 20, "J": 30}}, http.StatusBadRequest},
		{"out of range", CalculateRequest{Design: "ira", Mode: "effect_size", Params: map[string]float64{"n": 400, "alpha": 2}}, http.StatusBadRequest},
		{"unattainable power", CalculateRequest{Design: "ira", Mode: "power", Params: map[string]float64{"n": 10, "es": 0.01}}, http.StatusUnprocessableEntity},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, s, http.MethodPost, "/api/v1/calculate", tc.req)
			assert.Equal(t, tc.code, w.Code, w.Body.String())

			var resp struct {
				Error string `json:"error"`
				Code  string `json:"code"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
			assert.NotEmpty(t, resp.Code)
		})
	}
}

func TestCalculate_MalformedBody(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/calculate", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExport_CSV(t *testing.T) {
	s := newTestServer()
	w := doJSON(t, s, http.MethodPost, "/api/v1/export", ExportRequest{
		CalculateRequest: CalculateRequest{
			Design: "ira",
			Mode:   "effect_size",
			Params: map[string]float64{"n": 400},
		},
		Format: "csv",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Body.String(), "=== RESULT ===")
}

func TestExport_UnsupportedFormat(t *testing.T) {
	s := newTestServer()
	w := doJSON(t, s, http.MethodPost, "/api/v1/export", ExportRequest{
		CalculateRequest: CalculateRequest{
			Design: "ira",
			Mode:   "effect_size",
			Params: map[string]float64{"n": 400},
		},
		Format: "pdf",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSweep(t *testing.T) {
	s := newTestServer()
	w := doJSON(t, s, http.MethodPost, "/api/v1/sweep", sensitivity.Request{
		Design: "ira",
		Mode:   power.ModePower,
		Param:  "n",
		From:   100,
		To:     500,
		Steps:  5,
		Base:   map[string]float64{"es": 0.25},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var curve sensitivity.Curve
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &curve))
	assert.Len(t, curve.Points, 5)
	assert.Equal(t, 5, curve.Summary.Finite)
}

func TestSweep_PartiallyInfeasible(t *testing.T) {
	s := newTestServer()

	// At n=10 the smallest effect sizes are unattainable; those points come
	// back as nulls and the body still has to decode.
	w := doJSON(t, s, http.MethodPost, "/api/v1/sweep", sensitivity.Request{
		Design: "ira",
		Mode:   power.ModePower,
		Param:  "es",
		From:   0.01,
		To:     2.0,
		Steps:  10,
		Base:   map[string]float64{"n": 10},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NotEmpty(t, w.Body.Bytes())
	assert.Contains(t, w.Body.String(), `"value":null`)

	var curve sensitivity.Curve
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &curve))
	require.Len(t, curve.Points, 10)
	assert.Greater(t, curve.Summary.Finite, 0)
	assert.Less(t, curve.Summary.Finite, 10)
}

func TestDesignEffect(t *testing.T) {
	s := newTestServer()

	w := doJSON(t, s, http.MethodPost, "/api/v1/design-effect", DesignEffectRequest{RhoTS: 0.8})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		DesignEffect float64 `json:"design_effect"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 2.7778, resp.DesignEffect, 0.0001)

	w = doJSON(t, s, http.MethodPost, "/api/v1/design-effect", DesignEffectRequest{RhoTS: 1.2})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
