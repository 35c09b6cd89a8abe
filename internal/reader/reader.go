package reader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/Skotchmaster/biblion/internal/models"
)

const (
	SamplesRoute = "/books/"
	SampleEPUB   = "alice.epub"
	SamplePDF    = "sample.pdf"

	ContentTypeEPUB = "application/epub+zip"
	ContentTypePDF  = "application/pdf"
)

var ErrNoDocument = errors.New("book has no readable document")

type Descriptor struct {
	BookID      uint   `json:"book_id"`
	Title       string `json:"title"`
	FileType    string `json:"file_type"`
	URL         string `json:"url"`
	FallbackURL string `json:"fallback_url"`
}

func sampleFor(fileType string) string {
	if fileType == models.FileTypePDF {
		return SamplePDF
	}
	return SampleEPUB
}

func ContentType(fileType string) string {
	if fileType == models.FileTypePDF {
		return ContentTypePDF
	}
	return ContentTypeEPUB
}

func Describe(b *models.Book) (*Descriptor, error) {
	if b == nil || !b.HasFile() {
		return nil, ErrNoDocument
	}
	ft := b.DocumentType()
	return &Descriptor{
		BookID:      b.ID,
		Title:       b.Title,
		FileType:    ft,
		URL:         *b.FileURL,
		FallbackURL: SamplesRoute + sampleFor(ft),
	}, nil
}

// Document is an opened book file. Callers close Body.
type Document struct {
	Body        io.ReadCloser
	ContentType string
	Name        string
	Fallback    bool
}

type Opener struct {
	Client     *http.Client
	SamplesDir string
	Timeout    time.Duration
}

func NewOpener(samplesDir string, timeout time.Duration) *Opener {
	return &Opener{Client: &http.Client{}, SamplesDir: samplesDir, Timeout: timeout}
}

// Open loads the book file. Remote failures fall back to the bundled sample
// of the same type; the returned error is the one that caused the fallback.
func (o *Opener) Open(ctx context.Context, b *models.Book) (*Document, error) {
	d, err := Describe(b)
	if err != nil {
		return nil, err
	}

	doc, cause := o.primary(ctx, d)
	if cause == nil {
		return doc, nil
	}

	f, err := os.Open(filepath.Join(o.SamplesDir, sampleFor(d.FileType)))
	if err != nil {
		return nil, fmt.Errorf("open sample: %w (after %v)", err, cause)
	}
	return &Document{
		Body:        f,
		ContentType: ContentType(d.FileType),
		Name:        sampleFor(d.FileType),
		Fallback:    true,
	}, cause
}

func (o *Opener) primary(ctx context.Context, d *Descriptor) (*Document, error) {
	if strings.HasPrefix(d.URL, SamplesRoute) {
		name := path.Base(d.URL)
		f, err := os.Open(filepath.Join(o.SamplesDir, name))
		if err != nil {
			return nil, err
		}
		return &Document{Body: f, ContentType: ContentType(d.FileType), Name: name}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, o.Timeout)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.URL, nil)
	if err != nil {
		cancel()
		return nil, err
	}
	resp, err := o.Client.Do(req)
	if err != nil {
		cancel()
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		cancel()
		return nil, fmt.Errorf("fetch %s: status %d", d.URL, resp.StatusCode)
	}
	return &Document{
		Body:        &cancelBody{ReadCloser: resp.Body, cancel: cancel},
		ContentType: ContentType(d.FileType),
		Name:        path.Base(req.URL.Path),
	}, nil
}

type cancelBody struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelBody) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}
