package body

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mockguard/mockguard/internal/domain"
)

// FilesDir is the WireMock directory holding response body files, a sibling
// of the mappings directory.
const FilesDir = "__files"

// ErrNullBody is returned when a body's top-level value is JSON null.
var ErrNullBody = errors.New("response body is null")

// FileReader implements domain.BodyReader for WireMock bodyFileName and
// inline jsonBody responses.
type FileReader struct{}

func New() *FileReader {
	return &FileReader{}
}

// Read infers the top-level properties of the mock response body. It returns
// nil without error when the response declares no body at all.
func (r *FileReader) Read(mappingsDir string, resp *domain.FixtureResponse) (*domain.BodyProperties, error) {
	if resp == nil {
		return nil, nil
	}

	var data []byte
	switch {
	case resp.BodyFileName != "":
		p := BodyPath(mappingsDir, resp.BodyFileName)
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading body file: %w", err)
		}
		data = b
	case len(resp.JSONBody) > 0:
		data = resp.JSONBody
	default:
		return nil, nil
	}

	return Infer(data)
}

// BodyPath resolves a body file name against the __files directory next to
// mappingsDir.
func BodyPath(mappingsDir, bodyFileName string) string {
	parent := filepath.Dir(filepath.Clean(mappingsDir))
	return filepath.Join(parent, FilesDir, filepath.FromSlash(bodyFileName))
}

// Infer builds body properties from a JSON document. Top-level objects
// contribute their members; top-level arrays contribute the members of
// every object element, first occurrence winning. Members whose value is
// null are left out.
func Infer(data []byte) (*domain.BodyProperties, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("decoding body: %w", err)
	}

	switch v := root.(type) {
	case map[string]any:
		props := domain.NewBodyProperties(domain.BodyObject)
		addMembers(props, data, v)
		return props, nil
	case []any:
		props := domain.NewBodyProperties(domain.BodyArray)
		var elems []json.RawMessage
		if err := json.Unmarshal(data, &elems); err != nil {
			return nil, fmt.Errorf("decoding body: %w", err)
		}
		for i, e := range v {
			if obj, ok := e.(map[string]any); ok {
				addMembers(props, elems[i], obj)
			}
		}
		return props, nil
	case nil:
		return nil, ErrNullBody
	default:
		return nil, fmt.Errorf("top-level body value must be an object or array, got %s", typeOf(v))
	}
}

// addMembers adds the members of obj in document order. raw is the encoded
// object and only supplies member order.
func addMembers(props *domain.BodyProperties, raw []byte, obj map[string]any) {
	for _, name := range memberOrder(raw) {
		v, ok := obj[name]
		if !ok || v == nil {
			continue
		}
		props.Add(name, typeOf(v))
	}
}

// memberOrder lists the member names of a JSON object in document order.
func memberOrder(raw []byte) []string {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil
	}

	var names []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return names
		}
		name, ok := tok.(string)
		if !ok {
			return names
		}
		names = append(names, name)

		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return names
		}
	}
	return names
}

func typeOf(v any) domain.PrimitiveType {
	switch v.(type) {
	case map[string]any:
		return domain.TypeObject
	case []any:
		return domain.TypeArray
	case string:
		return domain.TypeString
	case json.Number, float64:
		return domain.TypeInt
	case bool:
		return domain.TypeBool
	}
	return ""
}
