package sheets

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/controleplus/internal/config"
	"github.com/manav03panchal/controleplus/internal/errors"
	"github.com/manav03panchal/controleplus/internal/model"
)

func newClient() *Client {
	return NewClient(Options{UserAgent: "controleplus-test", Timeout: 2 * time.Second})
}

// =============================================================================
// Read
// =============================================================================

func TestReadAppendsActionAndDecodes(t *testing.T) {
	var gotQuery, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		gotQuery = r.URL.RawQuery
		gotAgent = r.UserAgent()
		_, _ = io.WriteString(w, `{"data":[
			{"submissionId":"s1","name":"Rádio Um","city":"Campinas","isCrowleyAudited":true,"crowleyMarkets":["Campinas"]},
			{"submissionId":"s2","name":"Rádio Dois"}
		]}`)
	}))
	defer srv.Close()

	subs, err := newClient().Read(context.Background(), srv.URL+"/exec?deployment=abc")
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "s1", subs[0].SubmissionID)
	assert.Equal(t, "Rádio Um", subs[0].Name)
	assert.Equal(t, []string{"Campinas"}, subs[0].CrowleyMarkets)
	assert.Equal(t, "action=read&deployment=abc", gotQuery)
	assert.Equal(t, "controleplus-test", gotAgent)
}

func TestReadNonArrayDataYieldsNothing(t *testing.T) {
	for _, body := range []string{`{"data":"error"}`, `{"data":null}`, `{}`, `{"data":{"a":1}}`} {
		t.Run(body, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, body)
			}))
			defer srv.Close()

			subs, err := newClient().Read(context.Background(), srv.URL)
			require.NoError(t, err)
			assert.Empty(t, subs)
		})
	}
}

func TestReadSkipsMalformedElements(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":[{"submissionId":"s1"}, 42, "x", {"submissionId":"s2"}]}`)
	}))
	defer srv.Close()

	subs, err := newClient().Read(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "s2", subs[1].SubmissionID)
}

func TestReadStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newClient().Read(context.Background(), srv.URL)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Equal(t, "read", statusErr.Op)
	assert.NotErrorIs(t, err, errors.ErrSubmissionRejected)
}

func TestReadRequiresStatusOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = io.WriteString(w, `{"data":[{"submissionId":"A"}]}`)
	}))
	defer srv.Close()

	subs, err := newClient().Read(context.Background(), srv.URL)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusAccepted, statusErr.StatusCode)
	assert.Empty(t, subs)
}

func TestSubmitAcceptsAny2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	err := newClient().Submit(context.Background(), srv.URL, model.StationInfo{Name: "Rádio Um"})
	assert.NoError(t, err)
}

func TestReadInvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "<html>login</html>")
	}))
	defer srv.Close()

	_, err := newClient().Read(context.Background(), srv.URL)
	require.Error(t, err)
	assert.True(t, errors.IsRecoverableError(err))
}

func TestReadTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(Options{Timeout: 50 * time.Millisecond})
	_, err := c.Read(context.Background(), srv.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrTimeout)
	assert.True(t, errors.IsRecoverableError(err))
}

func TestReadUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newClient().Read(context.Background(), url)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNetworkUnavailable)
}

func TestReadRequiresURL(t *testing.T) {
	_, err := newClient().Read(context.Background(), "")
	assert.ErrorIs(t, err, errors.ErrSheetsNotConfigured)

	_, err = newClient().Read(context.Background(), "not a url")
	assert.ErrorIs(t, err, errors.ErrInvalidURL)
}

// =============================================================================
// Submit
// =============================================================================

func TestSubmitPostsTextPlainJSON(t *testing.T) {
	var got map[string]any
	var contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		contentType = r.Header.Get("Content-Type")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer srv.Close()

	station := model.StationInfo{
		Name:             "Rádio Um",
		City:             "Campinas",
		IsCrowleyAudited: true,
		CrowleyMarkets:   []string{"Campinas"},
	}
	require.NoError(t, newClient().Submit(context.Background(), srv.URL, station))
	assert.Equal(t, "text/plain", contentType)
	assert.Equal(t, "Rádio Um", got["name"])
	assert.Equal(t, []any{"Campinas"}, got["crowleyMarkets"])
	assert.NotContains(t, got, "id")
}

func TestSubmitClearsMarketsWhenNotAudited(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer srv.Close()

	station := model.StationInfo{Name: "Rádio Dois", CrowleyMarkets: []string{"Campinas"}}
	require.NoError(t, newClient().Submit(context.Background(), srv.URL, station))
	assert.Equal(t, []any{}, got["crowleyMarkets"])
}

func TestSubmitRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	err := newClient().Submit(context.Background(), srv.URL, model.StationInfo{Name: "X"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrSubmissionRejected)
	assert.Contains(t, err.Error(), "HTTP 403")
}

func TestSubmitRequiresURL(t *testing.T) {
	err := newClient().Submit(context.Background(), "", model.StationInfo{})
	assert.ErrorIs(t, err, errors.ErrSheetsNotConfigured)
	assert.True(t, errors.IsUserError(err))
}

func TestNewClientFromConfig(t *testing.T) {
	cfg := config.DefaultRuntimeConfig()
	c := NewClientFromConfig(cfg)
	assert.Equal(t, cfg.Sync.Timeout, c.timeout)
	assert.Equal(t, cfg.HTTP.UserAgent, c.userAgent)
	assert.Equal(t, cfg.HTTP.Timeout, c.http.Timeout)
}
