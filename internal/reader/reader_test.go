package reader

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/biblion/internal/models"
)

func strPtr(s string) *string { return &s }

func samplesDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, SampleEPUB), []byte("epub-sample"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, SamplePDF), []byte("pdf-sample"), 0o644))
	return dir
}

func readAll(t *testing.T, doc *Document) string {
	t.Helper()
	defer doc.Body.Close()
	b, err := io.ReadAll(doc.Body)
	require.NoError(t, err)
	return string(b)
}

func TestDescribe(t *testing.T) {
	_, err := Describe(nil)
	assert.ErrorIs(t, err, ErrNoDocument)

	_, err = Describe(&models.Book{ID: 3, Title: "No file"})
	assert.ErrorIs(t, err, ErrNoDocument)

	d, err := Describe(&models.Book{ID: 2, Title: "Atomic Habits", FileURL: strPtr("https://x/a.pdf"), FileType: strPtr("pdf")})
	require.NoError(t, err)
	assert.Equal(t, "pdf", d.FileType)
	assert.Equal(t, "/books/sample.pdf", d.FallbackURL)

	d, err = Describe(&models.Book{ID: 1, FileURL: strPtr("https://x/a")})
	require.NoError(t, err)
	assert.Equal(t, "epub", d.FileType)
	assert.Equal(t, "/books/alice.epub", d.FallbackURL)
}

func TestOpenRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "remote-bytes")
	}))
	defer srv.Close()

	o := NewOpener(samplesDir(t), time.Second)
	doc, err := o.Open(context.Background(), &models.Book{ID: 1, FileURL: strPtr(srv.URL + "/midnight.epub"), FileType: strPtr("epub")})
	require.NoError(t, err)
	assert.False(t, doc.Fallback)
	assert.Equal(t, ContentTypeEPUB, doc.ContentType)
	assert.Equal(t, "midnight.epub", doc.Name)
	assert.Equal(t, "remote-bytes", readAll(t, doc))
}

func TestOpenFallsBackOnBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	o := NewOpener(samplesDir(t), time.Second)
	doc, err := o.Open(context.Background(), &models.Book{ID: 2, FileURL: strPtr(srv.URL + "/x.pdf"), FileType: strPtr("pdf")})
	require.Error(t, err)
	require.NotNil(t, doc)
	assert.True(t, doc.Fallback)
	assert.Equal(t, ContentTypePDF, doc.ContentType)
	assert.Equal(t, "pdf-sample", readAll(t, doc))
}

func TestOpenFallsBackOnTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	o := NewOpener(samplesDir(t), 20*time.Millisecond)
	doc, err := o.Open(context.Background(), &models.Book{ID: 1, FileURL: strPtr(srv.URL + "/slow.epub")})
	require.Error(t, err)
	require.NotNil(t, doc)
	assert.True(t, doc.Fallback)
	assert.Equal(t, "epub-sample", readAll(t, doc))
}

func TestOpenLocalSample(t *testing.T) {
	o := NewOpener(samplesDir(t), time.Second)
	doc, err := o.Open(context.Background(), &models.Book{ID: 17, FileURL: strPtr("/books/alice.epub"), FileType: strPtr("epub")})
	require.NoError(t, err)
	assert.False(t, doc.Fallback)
	assert.Equal(t, "epub-sample", readAll(t, doc))
}

func TestOpenWithoutSamples(t *testing.T) {
	o := NewOpener(t.TempDir(), time.Second)
	doc, err := o.Open(context.Background(), &models.Book{ID: 1, FileURL: strPtr("/books/missing.epub")})
	assert.Error(t, err)
	assert.Nil(t, doc)
}
