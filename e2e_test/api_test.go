//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/jsphweid/chordbloom/cmd"
	"github.com/jsphweid/chordbloom/config"
	"github.com/jsphweid/chordbloom/model"
	"github.com/jsphweid/chordbloom/theory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var server *httptest.Server

func TestMain(m *testing.M) {
	server = httptest.NewServer(cmd.NewRouter(config.Load()))

	exitVal := m.Run()

	server.Close()
	os.Exit(exitVal)
}

func post(t *testing.T, path string, body any) *http.Response {
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(server.URL+path, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[A any](t *testing.T, resp *http.Response) A {
	var res A
	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(respBody, &res), string(respBody))
	return res
}

func generate(t *testing.T) model.Progression {
	resp := post(t, "/progressions", model.GenerateRequestBody{Key: "C", Mode: "major"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode[model.Progression](t, resp)
}

func TestHealth(t *testing.T) {
	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert := assert.New(t)
	assert.Equal(http.StatusOK, resp.StatusCode)
	assert.NotEmpty(resp.Header.Get("X-Request-ID"))
	assert.Equal("ok", decode[model.HealthResponse](t, resp).Status)
}

func TestGenerateE2E(t *testing.T) {
	p := generate(t)

	assert := assert.New(t)
	assert.Equal(theory.C, p.Key)
	require.Len(t, p.Chords, 4)
	assert.Equal([]int{60, 64, 67, 71}, p.Chords[0].Notes)
	assert.Equal("G7", p.Chords[1].DisplayName())
}

func TestGenerateDefaultsToCMinor(t *testing.T) {
	resp, err := http.Post(server.URL+"/progressions", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	p := decode[model.Progression](t, resp)
	assert.Equal(t, theory.C, p.Key)
	assert.Equal(t, theory.Minor, p.Mode)
}

func TestSwapE2E(t *testing.T) {
	seed := int64(42)
	resp := post(t, "/progressions/swap", model.SwapRequestBody{Progression: generate(t), Index: 1, Mode: "harmony", Seed: &seed})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	res := decode[model.SwapResponse](t, resp)
	assert := assert.New(t)
	assert.Equal(int64(42), res.Seed)
	assert.Equal(theory.Symbol{Root: theory.G, Quality: theory.Min7b5}, res.Chord.Symbol())
	assert.Equal(res.Chord, res.Progression.Chords[1])
}

func TestScheduleE2E(t *testing.T) {
	p := generate(t)
	resp := post(t, "/progressions/schedule", model.ScheduleRequestBody{
		Progression: p,
		GroupNext:   []bool{true},
		Loop:        &model.LoopRange{From: 0, To: 1},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	res := decode[model.ScheduleResponse](t, resp)
	assert := assert.New(t)
	assert.Equal(float64(8), res.TotalBeats)
	assert.Equal(map[int][]int{0: {7, 11}}, res.TiePlan.SustainNext)
	assert.Len(res.Events, 6)
}

func TestExportE2E(t *testing.T) {
	p := generate(t)
	resp := post(t, "/progressions/export", model.ExportRequestBody{ScheduleRequestBody: model.ScheduleRequestBody{Progression: p}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "audio/midi", resp.Header.Get("Content-Type"))

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, []byte("MThd"), data[:4])
}

func TestBadRequestsE2E(t *testing.T) {
	cases := []struct {
		path string
		body any
	}{
		{"/progressions", model.GenerateRequestBody{Key: "H"}},
		{"/progressions/swap", model.SwapRequestBody{Progression: generate(t), Index: 9}},
		{"/progressions/swap", model.SwapRequestBody{Progression: generate(t), Mode: "texture"}},
		{"/progressions/schedule", model.ScheduleRequestBody{Progression: model.Progression{TempoBPM: -1}}},
		{"/progressions/schedule", model.ScheduleRequestBody{Progression: generate(t), Loop: &model.LoopRange{From: 3, To: 1}}},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			resp := post(t, tc.path, tc.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.NotEmpty(t, decode[model.ErrorResponse](t, resp).Error)
		})
	}
}
