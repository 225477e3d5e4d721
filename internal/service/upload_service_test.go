package service

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"strings"
	"testing"

	"go.uber.org/zap"

	pkgerrors "github.com/polinatih/school-proj/pkg/errors"
)

// pngHeader is enough for content sniffing.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type mockObjectStore struct {
	key         string
	contentType string
	body        []byte
}

func (m *mockObjectStore) Put(_ context.Context, key string, r io.Reader, _ int64, contentType string) (string, error) {
	m.key, m.contentType = key, contentType
	b, err := io.ReadAll(r)
	m.body = b
	return "http://files.local/school/" + key, err
}

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", name)
	if err != nil {
		t.Fatal(err)
	}
	part.Write(content)
	w.Close()

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatal(err)
	}
	return form.File["file"][0]
}

func TestUploadService_Image(t *testing.T) {
	store := &mockObjectStore{}
	svc := NewUploadService(store, zap.NewNop())

	content := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 600)...)
	resp, err := svc.UploadImage(context.Background(), fileHeader(t, "Avatar.PNG", content))
	if err != nil {
		t.Fatalf("UploadImage: %v", err)
	}
	if resp.ContentType != "image/png" || store.contentType != "image/png" {
		t.Errorf("content type = %s", resp.ContentType)
	}
	if !strings.HasPrefix(resp.Key, "images/") || !strings.HasSuffix(resp.Key, ".png") {
		t.Errorf("key = %s", resp.Key)
	}
	if !bytes.Equal(store.body, content) {
		t.Error("stored body differs from upload (reader not rewound)")
	}
	if resp.URL != "http://files.local/school/"+resp.Key {
		t.Errorf("url = %s", resp.URL)
	}
}

func TestUploadService_RejectsNonImage(t *testing.T) {
	svc := NewUploadService(&mockObjectStore{}, zap.NewNop())

	_, err := svc.UploadImage(context.Background(), fileHeader(t, "notes.png", []byte("plain text pretending to be a png")))
	if !pkgerrors.Is(err, pkgerrors.KindValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestUploadService_NotConfigured(t *testing.T) {
	svc := NewUploadService(nil, zap.NewNop())

	_, err := svc.UploadImage(context.Background(), fileHeader(t, "a.png", pngHeader))
	if !pkgerrors.Is(err, pkgerrors.KindUnavailable) {
		t.Errorf("expected unavailable, got %v", err)
	}
}
