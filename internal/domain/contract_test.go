package domain_test

import (
	"errors"
	"testing"

	"github.com/mockguard/mockguard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMethod(t *testing.T) {
	m, err := domain.ParseMethod("POST")
	require.NoError(t, err)
	assert.Equal(t, domain.MethodPost, m)

	m, err = domain.ParseMethod("ANY")
	require.NoError(t, err)
	assert.Equal(t, domain.MethodAny, m)

	_, err = domain.ParseMethod("get")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnsupported))

	var ue *domain.UnsupportedError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "method", ue.Kind)
	assert.Equal(t, "unsupported method 'get'", err.Error())
}

func TestPathItem_Operations(t *testing.T) {
	item := domain.PathItem{
		Template: "/pets/{id}",
		Operations: []domain.Operation{
			{Method: domain.MethodGet, ID: "getPet"},
			{Method: domain.MethodDelete},
		},
	}
	assert.Equal(t, []domain.HTTPMethod{domain.MethodGet, domain.MethodDelete}, item.Methods())
	assert.Equal(t, "getPet", item.Operation(domain.MethodGet).Identifier(item.Template))
	assert.Equal(t, "DELETE /pets/{id}", item.Operation(domain.MethodDelete).Identifier(item.Template))
	assert.Nil(t, item.Operation(domain.MethodPatch))
}

func TestSchema_RequiredAndEnum(t *testing.T) {
	s := &domain.Schema{Required: []string{"id"}, Enum: []string{"a"}}
	assert.True(t, s.IsRequired("id"))
	assert.False(t, s.IsRequired("ID"))
	assert.True(t, s.HasEnum())

	var none *domain.Schema
	assert.False(t, none.HasEnum())
}

func TestSuccessSchema(t *testing.T) {
	want := &domain.Schema{Type: "object"}

	t.Run("exact content type", func(t *testing.T) {
		responses := map[string]domain.Response{"200": {Content: map[string]*domain.Schema{"application/json": want}}}
		assert.Same(t, want, domain.SuccessSchema(responses))
	})

	t.Run("charset parameter", func(t *testing.T) {
		responses := map[string]domain.Response{"200": {Content: map[string]*domain.Schema{
			"text/plain":                      {Type: "string"},
			"application/json; charset=utf-8": want,
		}}}
		assert.Same(t, want, domain.SuccessSchema(responses))
	})

	t.Run("no 200", func(t *testing.T) {
		responses := map[string]domain.Response{"201": {Content: map[string]*domain.Schema{"application/json": want}}}
		assert.Nil(t, domain.SuccessSchema(responses))
	})

	t.Run("no json", func(t *testing.T) {
		responses := map[string]domain.Response{"200": {Content: map[string]*domain.Schema{"application/xml": want}}}
		assert.Nil(t, domain.SuccessSchema(responses))
	})
}
