package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/aretw0/crema"
	cremahttp "github.com/aretw0/crema/pkg/adapters/http"
	"github.com/aretw0/crema/pkg/domain"
	"github.com/aretw0/crema/pkg/observability"
	"github.com/aretw0/crema/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("../../../testdata/classic.json")
	require.NoError(t, err)
	return string(data)
}

func TestTranslate_OK(t *testing.T) {
	handler := cremahttp.NewHandler(crema.New())

	req := httptest.NewRequest(http.MethodPost, "/v1/translate?mode=instant", strings.NewReader(fixture(t)))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var res domain.Translation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotNil(t, res.Profile)
	assert.Equal(t, "Classic Italian", res.Profile.Label)
	require.NotEmpty(t, res.Profile.Phases)
	for _, ph := range res.Profile.Phases {
		assert.Equal(t, domain.TransitionInstant, ph.Transition.Type)
	}
	assert.NotEmpty(t, res.Warnings)
}

func TestTranslate_BadMode(t *testing.T) {
	handler := cremahttp.NewHandler(crema.New())

	req := httptest.NewRequest(http.MethodPost, "/v1/translate?mode=wobbly", strings.NewReader(fixture(t)))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid mode")
}

func TestTranslate_Unprocessable(t *testing.T) {
	handler := cremahttp.NewHandler(crema.New())

	tests := []struct {
		name string
		body string
		kind string
	}{
		{"malformed json", `{"name":`, "input"},
		{"missing stages", `{"name":"x"}`, "input"},
		{"pressure too high", strings.Replace(fixture(t), `[[0, 60], [5, 90], [25, 70]]`, `[[0, 160], [5, 170]]`, 1), "range"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/translate", strings.NewReader(tc.body))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
			var resp cremahttp.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tc.kind, resp.Kind)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

type failingTranslator struct{}

func (failingTranslator) Translate(context.Context, ports.TranslateRequest) (*domain.Translation, error) {
	return nil, errors.New("backend down")
}

func TestTranslate_InternalError(t *testing.T) {
	handler := cremahttp.NewHandler(failingTranslator{})

	req := httptest.NewRequest(http.MethodPost, "/v1/translate", strings.NewReader("{}"))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"kind":"internal"`)
}

func TestHealthAndInfo(t *testing.T) {
	handler := cremahttp.NewHandler(crema.New())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/info", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"app":"crema-http"`)
	assert.Contains(t, w.Body.String(), `"mode":"smart"`)
}

func TestInfo_ReportsConfiguredMode(t *testing.T) {
	handler := cremahttp.NewHandler(crema.New(crema.WithMode(domain.ModePreserve)))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/info", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var info map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "preserve", info["mode"])
	assert.Equal(t, strings.TrimSpace(crema.Version), info["version"])

	w = httptest.NewRecorder()
	cremahttp.NewHandler(failingTranslator{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/info", nil))
	assert.Contains(t, w.Body.String(), `"mode":"smart"`)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	tr := crema.New(crema.WithLifecycleHooks(metrics.Hooks()))
	handler := cremahttp.NewHandler(tr, cremahttp.WithGatherer(reg))

	req := httptest.NewRequest(http.MethodPost, "/v1/translate", strings.NewReader(fixture(t)))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `crema_translations_total{mode="smart",outcome="ok"} 1`)
	assert.Contains(t, w.Body.String(), "crema_stages_total")
}
