package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/controleplus/internal/config"
	"github.com/manav03panchal/controleplus/internal/errors"
	"github.com/manav03panchal/controleplus/internal/model"
)

func sampleDocument() *Document {
	value := 1500.5
	return &Document{
		Radios:         []model.RadioStation{{ID: "r1", StationInfo: model.StationInfo{Name: "Rádio Líder", City: "Goiânia", State: "GO"}}},
		Artists:        []model.Artist{{ID: "a1", Name: "Ana Castela", Genre: model.GenreSertanejo, CreatedAt: "2026-01-05T10:00:00.000Z"}},
		Music:          []model.Music{{ID: "m1", Title: "Boiadeira", ArtistID: "a1", ReleaseDate: "2026-02-06"}},
		Promotions:     []model.Promotion{{ID: "p1", Name: "Verão", ArtistID: "a1", RadioStationID: "r1", Type: model.PromotionVerba, Value: &value}},
		CrowleyMarkets: []string{"Goiânia", "Brasília"},
	}
}

func TestEncodeIndentsAndFillsEmptyCollections(t *testing.T) {
	data, err := Encode(sampleDocument())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(data, []byte("{\n  \"radios\": [")), string(data[:20]))
	assert.Contains(t, string(data), `"cityHalls": []`)
	assert.Contains(t, string(data), `"emailCampaigns": []`)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{
		model.KeyRadios, model.KeyCityHalls, model.KeyBusinesses, model.KeyArtists, model.KeyMusic,
		model.KeyPromotions, model.KeyEvents, model.KeyMusicalBlitzes, model.KeyEmailCampaigns, model.KeyCrowleyMarkets,
	} {
		assert.Contains(t, raw, key)
	}
	assert.Len(t, raw, 10)
}

func TestEncodeNil(t *testing.T) {
	data, err := Encode(nil)
	require.NoError(t, err)
	doc, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Total())
}

func TestDecodeRoundTrip(t *testing.T) {
	in := sampleDocument()
	data, err := Encode(in)
	require.NoError(t, err)

	out, err := Decode(data)
	require.NoError(t, err)

	in.Normalize()
	assert.Equal(t, in, out)
	assert.Equal(t, 6, out.Total())
}

func TestDecodeMissingKeysAreEmpty(t *testing.T) {
	doc, err := Decode([]byte(`{"radios":[{"id":"r1","name":"X"}],"music":null,"unknown":[1,2]}`))
	require.NoError(t, err)
	assert.Len(t, doc.Radios, 1)
	assert.NotNil(t, doc.Music)
	assert.Empty(t, doc.Music)
	assert.NotNil(t, doc.CrowleyMarkets)
	assert.Empty(t, doc.CrowleyMarkets)
}

func TestDecodeCorrupted(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"truncated", `{"radios":[`},
		{"array", `[]`},
		{"null", `null`},
		{"wrong_type", `{"radios":"nope"}`},
		{"not_json", `hello`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Decode([]byte(tt.input))
			require.Error(t, err)
			assert.Nil(t, doc)
			assert.True(t, errors.Is(err, errors.ErrBackupCorrupted))
			assert.True(t, errors.IsUserError(err))
		})
	}
}

func TestFilename(t *testing.T) {
	ts := time.Date(2026, 3, 9, 22, 15, 0, 0, time.UTC)
	assert.Equal(t, "controle-plus-backup-2026-03-09.json", Filename(ts))
}

// =============================================================================
// File sink
// =============================================================================

func TestFileSinkPutGetList(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "backups")
	sink, err := NewFileSink(dir)
	require.NoError(t, err)
	assert.Equal(t, DriverFilesystem, sink.Driver())
	ctx := context.Background()

	loc, err := sink.Put(ctx, "b.json", []byte(`{"radios":[]}`))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "b.json"), loc)
	_, err = sink.Put(ctx, "a.json", []byte(`{}`))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))

	got, err := sink.Get(ctx, "b.json")
	require.NoError(t, err)
	assert.Equal(t, `{"radios":[]}`, string(got))

	entries, err := sink.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a.json", entries[0].Name)
	assert.Equal(t, int64(13), entries[1].Size)
}

func TestFileSinkOverwrite(t *testing.T) {
	sink, err := NewFileSink(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = sink.Put(ctx, "x.json", []byte("first"))
	require.NoError(t, err)
	_, err = sink.Put(ctx, "x.json", []byte("second"))
	require.NoError(t, err)

	got, err := sink.Get(ctx, "x.json")
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))
}

func TestFileSinkGetMissing(t *testing.T) {
	sink, err := NewFileSink(t.TempDir())
	require.NoError(t, err)

	_, err = sink.Get(context.Background(), "nothing.json")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestFileSinkRejectsTraversal(t *testing.T) {
	sink, err := NewFileSink(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	for _, name := range []string{"", "../x.json", "dir/x.json", `a\b.json`} {
		_, err := sink.Put(ctx, name, []byte("{}"))
		assert.Error(t, err, name)
	}
}

func TestNewSinkSelectsDriver(t *testing.T) {
	sink, err := NewSink(context.Background(), config.BackupConfig{Driver: "fs", Dir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, DriverFilesystem, sink.Driver())

	_, err = NewSink(context.Background(), config.BackupConfig{Driver: "ftp"})
	assert.Error(t, err)

	_, err = NewSink(context.Background(), config.BackupConfig{Driver: "s3"})
	assert.Error(t, err, "bucket is required")
}

// =============================================================================
// S3 sink
// =============================================================================

// fakeS3 serves the subset of the S3 REST API the sink uses, path style.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (f *fakeS3) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 2)
	key := ""
	if len(parts) == 2 {
		key = parts[1]
	}

	switch {
	case req.Method == http.MethodGet && req.URL.Query().Get("list-type") == "2":
		prefix := req.URL.Query().Get("prefix")
		var keys []string
		for k := range f.objects {
			if strings.HasPrefix(k, prefix) {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		var b strings.Builder
		b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><ListBucketResult><IsTruncated>false</IsTruncated>`)
		for _, k := range keys {
			fmt.Fprintf(&b, "<Contents><Key>%s</Key><Size>%d</Size><LastModified>2026-01-05T10:00:00Z</LastModified></Contents>", k, len(f.objects[k]))
		}
		b.WriteString("</ListBucketResult>")
		return response(http.StatusOK, []byte(b.String()), "application/xml"), nil
	case req.Method == http.MethodPut:
		body, _ := io.ReadAll(req.Body)
		if dec, ok := decodeChunked(body); ok {
			body = dec
		}
		f.objects[key] = body
		return response(http.StatusOK, nil, ""), nil
	case req.Method == http.MethodGet:
		body, ok := f.objects[key]
		if !ok {
			return response(http.StatusNotFound, []byte(`<Error><Code>NoSuchKey</Code></Error>`), "application/xml"), nil
		}
		return response(http.StatusOK, body, "application/json"), nil
	}
	return response(http.StatusNotImplemented, nil, ""), nil
}

func response(status int, body []byte, contentType string) *http.Response {
	h := http.Header{}
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	h.Set("Content-Length", strconv.Itoa(len(body)))
	return &http.Response{StatusCode: status, Header: h, Body: io.NopCloser(bytes.NewReader(body)), ContentLength: int64(len(body))}
}

// decodeChunked unwraps a single-chunk aws-chunked body.
func decodeChunked(b []byte) ([]byte, bool) {
	parts := strings.Split(string(b), "\r\n")
	if len(parts) < 3 {
		return nil, false
	}
	sizeHex, _, _ := strings.Cut(parts[0], ";")
	n, err := strconv.ParseInt(sizeHex, 16, 64)
	if err != nil || n <= 0 || int64(len(parts[1])) != n || !strings.HasPrefix(parts[2], "0") {
		return nil, false
	}
	return []byte(parts[1]), true
}

func newFakeS3Sink(t *testing.T) (*S3Sink, *fakeS3) {
	t.Helper()
	fake := &fakeS3{objects: make(map[string][]byte)}
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion("us-east-1"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("AKIA", "SECRET", "")),
	)
	require.NoError(t, err)
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String("https://mock.s3.local")
		o.HTTPClient = &http.Client{Transport: fake}
		o.UsePathStyle = true
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
	})
	return NewS3SinkWithClient(client, "backups", "controleplus/"), fake
}

func TestS3SinkRoundTrip(t *testing.T) {
	sink, fake := newFakeS3Sink(t)
	ctx := context.Background()
	assert.Equal(t, DriverS3, sink.Driver())

	data, err := Encode(sampleDocument())
	require.NoError(t, err)

	name := Filename(time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC))
	loc, err := sink.Put(ctx, name, data)
	require.NoError(t, err)
	assert.Equal(t, "s3://backups/controleplus/"+name, loc)
	assert.Contains(t, fake.objects, "controleplus/"+name)

	got, err := sink.Get(ctx, name)
	require.NoError(t, err)
	doc, err := Decode(got)
	require.NoError(t, err)
	assert.Equal(t, "Rádio Líder", doc.Radios[0].Name)

	entries, err := sink.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, name, entries[0].Name)
}

func TestS3SinkGetMissing(t *testing.T) {
	sink, _ := newFakeS3Sink(t)
	_, err := sink.Get(context.Background(), "missing.json")
	assert.Error(t, err)
}

func TestS3SinkRejectsBadName(t *testing.T) {
	sink, fake := newFakeS3Sink(t)
	_, err := sink.Put(context.Background(), "../escape.json", []byte("{}"))
	assert.Error(t, err)
	assert.Empty(t, fake.objects)
}

func TestNewS3SinkRequiresBucket(t *testing.T) {
	_, err := NewS3Sink(context.Background(), S3Options{})
	assert.Error(t, err)
}
