package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inspectia/label-verify/internal/ocr"
	"github.com/inspectia/label-verify/internal/store"
	"github.com/inspectia/label-verify/internal/verify"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeRegistry struct {
	refs    map[string]*verify.LabelReference
	created []*verify.LabelReference
	err     error
}

func (f *fakeRegistry) CreateReference(ctx context.Context, ref *verify.LabelReference) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, ref)
	return nil
}

func (f *fakeRegistry) GetReference(ctx context.Context, id string) (*verify.LabelReference, error) {
	if f.err != nil {
		return nil, f.err
	}
	ref, ok := f.refs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return ref, nil
}

type fakeResults struct {
	saved   []*verify.VerificationResult
	results []verify.VerificationResult
	saveErr error
}

func (f *fakeResults) SaveResult(ctx context.Context, result *verify.VerificationResult) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, result)
	return nil
}

func (f *fakeResults) ListResults(ctx context.Context, referenceID string) ([]verify.VerificationResult, error) {
	return f.results, nil
}

type fakeVerifier struct {
	result *verify.VerificationResult
	err    error
	calls  int
}

func (f *fakeVerifier) Verify(ctx context.Context, ref *verify.LabelReference, req verify.Request) (*verify.VerificationResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func knownReference() *verify.LabelReference {
	return &verify.LabelReference{
		ID:        "ref-1",
		Kind:      verify.KindEAN,
		ImageURL:  "http://storage.local/labels/ref.png",
		Threshold: 0.9,
		CreatedAt: time.Now(),
	}
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
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
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	srv := New(&fakeVerifier{}, &fakeRegistry{}, &fakeResults{})
	w := doRequest(t, srv.Router(), http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateReference(t *testing.T) {
	registry := &fakeRegistry{}
	srv := New(&fakeVerifier{}, registry, &fakeResults{})

	w := doRequest(t, srv.Router(), http.MethodPost, "/api/v1/references", gin.H{
		"inspection_plan_id": "plan-1",
		"step_id":            "step-1",
		"kind":               "ANATEL",
		"image_url":          "http://storage.local/labels/ref.png",
		"threshold":          0.9,
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Len(t, registry.created, 1)

	created := registry.created[0]
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, verify.KindANATEL, created.Kind)
	assert.Equal(t, 0.9, created.Threshold)
}

func TestCreateReferenceRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body gin.H
	}{
		{
			name: "threshold above one",
			body: gin.H{
				"inspection_plan_id": "plan-1", "step_id": "step-1",
				"kind": "EAN", "image_url": "http://x/y.png", "threshold": 1.2,
			},
		},
		{
			name: "unknown kind",
			body: gin.H{
				"inspection_plan_id": "plan-1", "step_id": "step-1",
				"kind": "BARCODE", "image_url": "http://x/y.png", "threshold": 0.9,
			},
		},
		{
			name: "missing image url",
			body: gin.H{
				"inspection_plan_id": "plan-1", "step_id": "step-1",
				"kind": "EAN", "threshold": 0.9,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := &fakeRegistry{}
			srv := New(&fakeVerifier{}, registry, &fakeResults{})

			w := doRequest(t, srv.Router(), http.MethodPost, "/api/v1/references", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Empty(t, registry.created)
		})
	}
}

func TestGetReferenceNotFound(t *testing.T) {
	srv := New(&fakeVerifier{}, &fakeRegistry{}, &fakeResults{})
	w := doRequest(t, srv.Router(), http.MethodGet, "/api/v1/references/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVerifyLabel(t *testing.T) {
	registry := &fakeRegistry{refs: map[string]*verify.LabelReference{"ref-1": knownReference()}}
	results := &fakeResults{}
	verifier := &fakeVerifier{result: &verify.VerificationResult{
		ID:          "res-1",
		ReferenceID: "ref-1",
		Score:       0.95,
		Decision:    verify.DecisionApproved,
		Detail: verify.ComparisonDetail{
			ReferenceText:   "anatel 01234-56-789",
			SubmittedText:   "anatel o1234-56-789",
			Differences:     []string{`difference at position 8: "0" vs "o"`},
			ScorePercentage: 95,
		},
		CreatedAt: time.Now(),
	}}
	srv := New(verifier, registry, results)

	w := doRequest(t, srv.Router(), http.MethodPost, "/api/v1/references/ref-1/verify", gin.H{
		"submitted_image_url":   "http://storage.local/photos/shot.jpg",
		"inspection_session_id": "session-7",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Len(t, results.saved, 1, "result must be persisted")

	var got verify.VerificationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, verify.DecisionApproved, got.Decision)
	assert.Equal(t, 95.0, got.Detail.ScorePercentage)
}

func TestVerifyLabelUnknownReference(t *testing.T) {
	verifier := &fakeVerifier{}
	srv := New(verifier, &fakeRegistry{}, &fakeResults{})

	w := doRequest(t, srv.Router(), http.MethodPost, "/api/v1/references/missing/verify", gin.H{
		"submitted_image_url": "http://storage.local/photos/shot.jpg",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Zero(t, verifier.calls)
}

func TestVerifyLabelMissingBody(t *testing.T) {
	registry := &fakeRegistry{refs: map[string]*verify.LabelReference{"ref-1": knownReference()}}
	srv := New(&fakeVerifier{}, registry, &fakeResults{})

	w := doRequest(t, srv.Router(), http.MethodPost, "/api/v1/references/ref-1/verify", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyLabelErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "invalid reference",
			err:        &verify.InvalidReferenceError{ReferenceID: "ref-1", Reason: "threshold 1.5 outside [0,1]"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "download failure",
			err:        &ocr.DownloadError{URL: "http://x/y.png", StatusCode: 404},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "engine crash",
			err:        &ocr.EngineError{Op: "recognize", Err: errors.New("boom")},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "engine timeout",
			err:        &ocr.EngineError{Op: "recognize", Timeout: true, Err: context.DeadlineExceeded},
			wantStatus: http.StatusGatewayTimeout,
		},
		{
			name:       "unexpected error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := &fakeRegistry{refs: map[string]*verify.LabelReference{"ref-1": knownReference()}}
			results := &fakeResults{}
			srv := New(&fakeVerifier{err: tt.err}, registry, results)

			w := doRequest(t, srv.Router(), http.MethodPost, "/api/v1/references/ref-1/verify", gin.H{
				"submitted_image_url": "http://storage.local/photos/shot.jpg",
			})

			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.Empty(t, results.saved, "a failed verification must never be persisted")
		})
	}
}

func TestListResults(t *testing.T) {
	registry := &fakeRegistry{refs: map[string]*verify.LabelReference{"ref-1": knownReference()}}
	results := &fakeResults{results: []verify.VerificationResult{
		{ID: "res-2", ReferenceID: "ref-1", Decision: verify.DecisionApproved},
		{ID: "res-1", ReferenceID: "ref-1", Decision: verify.DecisionRejected},
	}}
	srv := New(&fakeVerifier{}, registry, results)

	w := doRequest(t, srv.Router(), http.MethodGet, "/api/v1/references/ref-1/results", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Results []verify.VerificationResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Results, 2)
	assert.Equal(t, "res-2", body.Results[0].ID)
}

func TestListResultsUnknownReference(t *testing.T) {
	srv := New(&fakeVerifier{}, &fakeRegistry{}, &fakeResults{})
	w := doRequest(t, srv.Router(), http.MethodGet, "/api/v1/references/missing/results", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListResultsEmptyIsEmptyArray(t *testing.T) {
	registry := &fakeRegistry{refs: map[string]*verify.LabelReference{"ref-1": knownReference()}}
	srv := New(&fakeVerifier{}, registry, &fakeResults{})

	w := doRequest(t, srv.Router(), http.MethodGet, "/api/v1/references/ref-1/results", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"results": []}`, w.Body.String())
}
