package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testFile = []byte{
	'M', 'T', 'h', 'd', 0, 0, 0, 6, 0, 1, 0, 2, 0, 0x60,
	'M', 'T', 'r', 'k', 0, 0, 0, 0x14,
	0, 0xFF, 0x03, 0x05, 'P', 'i', 'a', 'n', 'o',
	0, 0xFF, 0x51, 3, 0x07, 0xA1, 0x20,
	0, 0xFF, 0x2F, 0,
	'M', 'T', 'r', 'k', 0, 0, 0, 0x0E,
	0, 0xC0, 5,
	0, 0x90, 0x3C, 0x40,
	0x60, 0x3C, 0,
	0, 0xFF, 0x2F, 0,
}

func newTestServer() *Server {
	gin.SetMode(gin.TestMode)
	return NewServer(zap.NewNop())
}

func TestHealth(t *testing.T) {
	w := httptest.NewRecorder()
	newTestServer().Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestDecodeRawBody(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/decode", bytes.NewReader(testFile))
	req.Header.Set("Content-Type", "audio/midi")
	newTestServer().Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var v FileView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	assert.Equal(t, "MultiTrackSynchronous", v.Format)
	assert.Equal(t, uint16(96), v.TicksPerQuarterNote)
	require.Len(t, v.Tracks, 2)
	assert.Equal(t, "Piano", v.Tracks[0].Name)
	assert.Equal(t, 3, v.Tracks[0].Events)
	assert.Equal(t, 1, v.Tracks[1].Notes)
	assert.Equal(t, uint64(0x60), v.Tracks[1].Ticks)
	assert.Empty(t, v.Tracks[1].List)
}

func TestDecodeMultipartWithEvents(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "test.mid")
	require.NoError(t, err)
	_, err = part.Write(testFile)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/decode?events=true", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	newTestServer().Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var v FileView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	require.Len(t, v.Tracks, 2)
	assert.Equal(t, []EventView{
		{Delta: 0, Tick: 0, Offset: 51, Type: "ProgramChange", Text: "ch=0 program=5"},
		{Delta: 0, Tick: 0, Offset: 54, Type: "NoteOn", Text: "ch=0 note=60 velocity=64"},
		{Delta: 0x60, Tick: 0x60, Offset: 58, Type: "NoteOn", Text: "ch=0 note=60 velocity=0"},
		{Delta: 0, Tick: 0x60, Offset: 61, Type: "EndOfTrack", Text: ""},
	}, v.Tracks[1].List)
	assert.Equal(t, "SetTempo", v.Tracks[0].List[1].Type)
	assert.Equal(t, "500000us/quarter (120.00 bpm)", v.Tracks[0].List[1].Text)
}

func TestDecodeErrors(t *testing.T) {
	w := httptest.NewRecorder()
	newTestServer().Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/decode", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// second track starts with an escape sysex
	broken := append(append([]byte(nil), testFile[:42]...), 'M', 'T', 'r', 'k', 0, 0, 0, 3, 0x00, 0xF7, 0x00)

	w = httptest.NewRecorder()
	newTestServer().Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/decode", bytes.NewReader(broken)))
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Kind   string `json:"kind"`
		Offset int64  `json:"offset"`
		Track  int    `json:"track"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "unsupported status", resp.Kind)
	assert.Equal(t, int64(51), resp.Offset)
	assert.Equal(t, 1, resp.Track)
}
