package adaptor

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	posterField      = "poster"
	multipartMemory  = 8 << 20
	defaultUploadMax = 5 << 20
)

var errPosterNotImage = errors.New("poster must be an image file")

// posterReceiver takes poster files off multipart requests and parks them
// in a temp dir until the uploader has pushed them to the image host.
type posterReceiver struct {
	tmpDir   string
	maxBytes int64
}

func newPosterReceiver(tmpDir string, maxMB int64) posterReceiver {
	if tmpDir == "" {
		tmpDir = os.TempDir()
	}
	maxBytes := int64(defaultUploadMax)
	if maxMB > 0 {
		maxBytes = maxMB << 20
	}
	return posterReceiver{tmpDir: tmpDir, maxBytes: maxBytes}
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

// parse reads the multipart body, bounded by maxBytes.
func (p posterReceiver) parse(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, p.maxBytes)
	return r.ParseMultipartForm(multipartMemory)
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// save writes the poster file to a temp file and returns its path, or ""
// when the form has no poster. The content is sniffed; only images pass.
func (p posterReceiver) save(r *http.Request) (string, error) {
	file, _, err := r.FormFile(posterField)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read poster: %w", err)
	}
	defer file.Close()

	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		return "", fmt.Errorf("detect poster type: %w", err)
	}
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", errPosterNotImage
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind poster: %w", err)
	}

	if err := os.MkdirAll(p.tmpDir, 0o755); err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	tmp, err := os.CreateTemp(p.tmpDir, "poster-*"+mtype.Extension())
	if err != nil {
		return "", fmt.Errorf("create temp poster: %w", err)
	}

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write temp poster: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close temp poster: %w", err)
	}
	return tmp.Name(), nil
}

// cleanup removes whatever the service did not consume.
func cleanup(path string) {
	if path != "" {
		_ = os.Remove(path)
	}
}
