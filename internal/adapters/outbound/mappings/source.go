package mappings

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mockguard/mockguard/internal/domain"
)

var skipDirs = map[string]bool{
	"__files":      true,
	"node_modules": true,
	"vendor":       true,
}

// FileSource implements domain.FixtureSource over a directory of WireMock
// mapping files.
type FileSource struct {
	recursive bool
	exclude   []string
}

// Option configures a FileSource.
type Option func(*FileSource)

// WithRecursive makes List walk sub-directories of the mappings directory.
func WithRecursive(recursive bool) Option {
	return func(s *FileSource) { s.recursive = recursive }
}

// WithExclude skips mapping files whose base name matches any glob.
func WithExclude(patterns []string) Option {
	return func(s *FileSource) { s.exclude = patterns }
}

func New(opts ...Option) *FileSource {
	s := &FileSource{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the *.json mapping files under dir in lexical order.
func (s *FileSource) List(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	var files []string
	err = filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if p == dir {
				return nil
			}
			if !s.recursive || skipDirs[d.Name()] || strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if s.wanted(d.Name()) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (s *FileSource) wanted(name string) bool {
	if strings.HasPrefix(name, ".") || !strings.EqualFold(filepath.Ext(name), ".json") {
		return false
	}
	for _, pattern := range s.exclude {
		if ok, _ := path.Match(pattern, name); ok {
			return false
		}
	}
	return true
}

// Load decodes one mapping file. A file with a top-level "mappings" array
// yields one fixture per entry, named <file>#<index>.
func (s *FileSource) Load(p string) ([]domain.Fixture, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}

	return Decode(filepath.Base(p), p, data)
}

// Decode parses mapping JSON. name labels the fixtures; a file holding a
// mappings array yields one fixture per entry named name#index.
func Decode(name, source string, data []byte) ([]domain.Fixture, error) {
	var file mappingFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}

	if file.Mappings != nil {
		fixtures := make([]domain.Fixture, 0, len(file.Mappings))
		for i, m := range file.Mappings {
			fixtures = append(fixtures, m.toFixture(fmt.Sprintf("%s#%d", name, i), source))
		}
		return fixtures, nil
	}
	return []domain.Fixture{file.mapping.toFixture(name, source)}, nil
}

type mappingFile struct {
	mapping
	Mappings []mapping `json:"mappings"`
}

type mapping struct {
	Request  *request  `json:"request"`
	Response *response `json:"response"`
}

type request struct {
	Method          string                     `json:"method"`
	URL             string                     `json:"url"`
	URLPath         string                     `json:"urlPath"`
	URLPattern      string                     `json:"urlPattern"`
	URLPathPattern  string                     `json:"urlPathPattern"`
	QueryParameters map[string]json.RawMessage `json:"queryParameters"`
}

type response struct {
	Status       int             `json:"status"`
	BodyFileName string          `json:"bodyFileName"`
	JSONBody     json.RawMessage `json:"jsonBody"`
}

func (m mapping) toFixture(name, source string) domain.Fixture {
	fx := domain.Fixture{Name: name, Source: source}
	if m.Request != nil {
		fx.Request = &domain.FixtureRequest{
			Method:     m.Request.Method,
			URLPattern: m.Request.pattern(),
		}
		if len(m.Request.QueryParameters) > 0 {
			fx.Request.QueryParameters = make(map[string]domain.Matcher, len(m.Request.QueryParameters))
			for k, raw := range m.Request.QueryParameters {
				fx.Request.QueryParameters[k] = decodeMatcher(raw)
			}
		}
	}
	if m.Response != nil {
		fx.Response = &domain.FixtureResponse{
			Status:       m.Response.Status,
			BodyFileName: m.Response.BodyFileName,
			JSONBody:     m.Response.JSONBody,
		}
	}
	return fx
}

// pattern returns the request URL as a regular expression. Regex fields are
// used as written; literal fields are quoted with their query string dropped.
func (r *request) pattern() string {
	switch {
	case r.URLPattern != "":
		return r.URLPattern
	case r.URLPathPattern != "":
		return r.URLPathPattern
	case r.URL != "":
		u, _, _ := strings.Cut(r.URL, "?")
		return regexp.QuoteMeta(u)
	case r.URLPath != "":
		return regexp.QuoteMeta(r.URLPath)
	}
	return ""
}

func decodeMatcher(raw json.RawMessage) domain.Matcher {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err == nil {
		if v, ok := stringField(obj, "equalTo"); ok {
			return domain.EqualTo(v)
		}
		if v, ok := stringField(obj, "matches"); ok {
			return domain.Matches(v)
		}
	}
	return domain.Unsupported(raw)
}

func stringField(obj map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := obj[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}
