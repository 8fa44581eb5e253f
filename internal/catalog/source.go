package catalog

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/gofiber/fiber/v2"

	"urbankicks/internal/domain"
)

const fetchTimeout = 10 * time.Second

// Source produces the raw catalog document.
type Source interface {
	Read(ctx context.Context) ([]byte, error)
	String() string
}

// SourceFor picks an HTTP source for http(s) locations and a file otherwise.
func SourceFor(location string) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return HTTPSource{URL: location}
	}
	return FileSource{Path: location}
}

type FileSource struct{ Path string }

func (f FileSource) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(f.Path)
}

func (f FileSource) String() string { return f.Path }

type HTTPSource struct{ URL string }

func (h HTTPSource) Read(ctx context.Context) ([]byte, error) {
	timeout := fetchTimeout
	if dl, ok := ctx.Deadline(); ok {
		timeout = time.Until(dl)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}
	agent := fiber.Get(h.URL).Timeout(timeout)
	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, errs[0]
	}
	if code != fiber.StatusOK {
		return nil, errors.Errorf("unexpected status %d", code)
	}
	return body, nil
}

func (h HTTPSource) String() string { return h.URL }

// Decode parses a catalog document. Unknown fields are ignored.
func Decode(raw []byte) (domain.Document, error) {
	var doc domain.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.Document{}, errors.Wrap(err, "decode catalog")
	}
	return doc, nil
}

// LoadFrom reads, decodes and loads a catalog document. On any failure the
// store is left untouched and a *LoadError is returned.
func (s *Store) LoadFrom(ctx context.Context, src Source) error {
	raw, err := src.Read(ctx)
	if err != nil {
		return &LoadError{Source: src.String(), Err: errors.Wrap(err, "read")}
	}
	doc, err := Decode(raw)
	if err != nil {
		return &LoadError{Source: src.String(), Err: err}
	}
	if err := s.Load(doc); err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Source = src.String()
		}
		return err
	}
	return nil
}
