package bridge

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebSocketRoundTrip(t *testing.T) {
	worker := NewWorker(&fakeSolver{}, quiet)
	srv := httptest.NewServer(Handler(worker, quiet))
	defer srv.Close()

	ctx := context.Background()
	conn, err := Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"))
	require.NoError(t, err)

	client := NewClient(conn, quiet)
	defer client.Close()

	require.NoError(t, client.Init(ctx))
	r, err := client.Analyze(ctx, simple())
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 10, 10}, r.Elements["E1"].Shears)
	assert.Equal(t, Ready, worker.State())
}

func TestReplaySolver(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "cases"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "simple.json"), []byte(cantileverResult), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cases", "L.json"), []byte(cantileverResult), 0644))

	_, client := start(t, ReplaySolver{Dir: dir})
	ctx := context.Background()
	require.NoError(t, client.Init(ctx))

	_, err := client.Analyze(ctx, simple())
	require.NoError(t, err)

	_, err = client.Analyze(ctx, AnalyzeRequest{Model: "{}", AnalysisType: AnalysisLoadCase, Target: "L"})
	require.NoError(t, err)

	_, err = client.Analyze(ctx, AnalyzeRequest{Model: "{}", AnalysisType: AnalysisCombination, Target: "../simple"})
	var se *SolverError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Message, "no recorded result")
}

func TestResultFile(t *testing.T) {
	tests := []struct {
		at     AnalysisType
		target string
		want   string
	}{
		{AnalysisSimple, "", "simple.json"},
		{AnalysisSimple, "ignored", "simple.json"},
		{AnalysisLoadCase, "D", filepath.Join("cases", "D.json")},
		{AnalysisLoadCase, "L/Lr", filepath.Join("cases", "L_Lr.json")},
		{AnalysisLoadCase, "../../escape", filepath.Join("cases", "____escape.json")},
		{AnalysisCombination, `U1\a`, filepath.Join("combinations", "U1_a.json")},
	}
	for _, tt := range tests {
		t.Run(string(tt.at)+" "+tt.target, func(t *testing.T) {
			assert.Equal(t, tt.want, ResultFile(tt.at, tt.target))
		})
	}
}

func TestReplaySolverMissingDir(t *testing.T) {
	_, client := start(t, ReplaySolver{Dir: filepath.Join(t.TempDir(), "nope")})
	err := client.Init(context.Background())
	var se *SolverError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, PhaseInitialization, se.Phase)
}

func TestDecodeMessage(t *testing.T) {
	_, err := Decode([]byte(`{"type":"ping"}`))
	assert.Error(t, err)

	msg, err := Decode([]byte(`{"id":"7","type":"pong","payload":{"initialized":true}}`))
	require.NoError(t, err)
	var p PongPayload
	require.NoError(t, msg.DecodePayload(&p))
	assert.True(t, p.Initialized)

	_, err = ParseAnalysisType("static")
	assert.Error(t, err)
	a, err := ParseAnalysisType("loadCase")
	require.NoError(t, err)
	assert.Equal(t, AnalysisLoadCase, a)
}

func TestMalformedRequestIsDropped(t *testing.T) {
	worker := NewWorker(&fakeSolver{}, quiet)
	a, b := Pipe()
	go worker.Serve(context.Background(), b)
	defer a.Close()

	ctx := context.Background()
	require.NoError(t, a.Send(ctx, []byte(`not json`)))
	require.NoError(t, a.Send(ctx, []byte(`{"id":"p","type":"ping"}`)))

	data, err := a.Recv(ctx)
	require.NoError(t, err)
	msg, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "p", msg.ID)
	assert.Equal(t, KindPong, msg.Type)
}
