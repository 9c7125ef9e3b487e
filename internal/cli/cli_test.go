package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/qflow"
	"github.com/aretw0/qflow/internal/cli"
	qhttp "github.com/aretw0/qflow/pkg/adapters/http"
	"github.com/aretw0/qflow/pkg/adapters/memory"
	"github.com/aretw0/qflow/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const experiment = "testdata/experiment.yaml"

func TestCompile(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, cli.Compile(&buf, experiment))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "FL_1", doc["FlowID"])
	assert.Equal(t, map[string]any{"Count": float64(8), "RemovedFieldsets": []any{}}, doc["Properties"])

	first := doc["Flow"].([]any)[0].(map[string]any)
	assert.Equal(t, "BL_1", first["ID"])
	assert.Equal(t, []any{}, first["Autofill"])
}

func TestCompile_MissingFile(t *testing.T) {
	err := cli.Compile(&bytes.Buffer{}, filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestGraph(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, cli.Graph(&buf, experiment))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	assert.Contains(t, out, "BL_1")
	assert.NotContains(t, out, "missing")
}

func TestInspect_Raw(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, cli.Inspect(&buf, experiment, true))
	assert.Contains(t, buf.String(), "Experiment")
	assert.Contains(t, buf.String(), "Condition A")
}

func TestValidate(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, cli.Validate(&buf, experiment))
	assert.Equal(t, "Experiment: 3 blocks, 4 questions, 8 flow elements\n", buf.String())
}

func TestValidate_UnknownBlock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: x\nblocks: [{id: a}]\nflow: [{type: block, block: b}]\n"), 0o644))
	assert.Error(t, cli.Validate(&bytes.Buffer{}, path))
}

func TestConfig(t *testing.T) {
	env := map[string]string{
		cli.EnvToken:      "env-token",
		cli.EnvDataCenter: "ca1",
	}
	cfg := cli.Config{Token: "flag-token"}.WithEnv(func(k string) string { return env[k] })
	assert.Equal(t, "flag-token", cfg.Token)
	assert.Equal(t, "ca1", cfg.DataCenter)
	assert.NoError(t, cfg.Validate())

	assert.ErrorIs(t, cli.Config{}.Validate(), cli.ErrMissingToken)
	assert.ErrorIs(t, cli.Config{Token: "t"}.Validate(), cli.ErrMissingDataCenter)
	assert.NoError(t, cli.Config{Token: "t", BaseURL: "http://localhost"}.Validate())

	_, err := cli.NewClient(cli.Config{}, cli.NewLogger(false), nil)
	assert.ErrorIs(t, err, cli.ErrMissingToken)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"yes", true},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		assert.Equal(t, tt.want, cli.Confirm(strings.NewReader(tt.in), &out, "Delete?"), "input %q", tt.in)
		assert.True(t, strings.HasPrefix(out.String(), "Delete? [y/N] "))
	}
}

func TestUpload_MockServer(t *testing.T) {
	p := memory.NewPlatform()
	srv := httptest.NewServer(qhttp.NewHandler(p, qhttp.WithToken("secret")))
	defer srv.Close()

	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	api, err := cli.NewClient(cli.Config{Token: "secret", BaseURL: srv.URL}, cli.NewLogger(false), m)
	require.NoError(t, err)

	id, err := cli.Upload(context.Background(), api, experiment, qflow.WithMetrics(m))
	require.NoError(t, err)
	assert.Equal(t, "SV_1", id)

	stored := p.Flow(id)
	require.NotNil(t, stored)
	assert.Equal(t, float64(8), stored["Properties"].(map[string]any)["Count"])

	path := filepath.Join(t.TempDir(), "upload.prom")
	require.NoError(t, cli.WriteMetrics(path, reg))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "qflow_api_requests_total")
	assert.Contains(t, string(raw), `qflow_upload_events_total{event="flow_updated"} 1`)
}

func TestServeMock(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	var out bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- cli.ServeMock(ctx, ln, cli.MockOptions{Token: "t", Version: "0.0.0", Out: &out})
	}()

	url := "http://" + ln.Addr().String()
	require.Eventually(t, func() bool {
		resp, err := http.Get(url + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	resp, err := http.Get(url + "/API/v3/surveys")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.Contains(t, out.String(), "Mock API stopped.")
}
