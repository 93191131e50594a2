package schemas

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedSchemas_Compile(t *testing.T) {
	for _, name := range []string{Resume, SearchIntent, Taxonomy} {
		t.Run(name, func(t *testing.T) {
			source, err := Source(name)
			require.NoError(t, err)

			var v map[string]any
			require.NoError(t, json.Unmarshal([]byte(source), &v))

			_, err = load(name)
			assert.NoError(t, err)
		})
	}
}

func TestValidate_ResumeAcceptsNullsAndPartialDocuments(t *testing.T) {
	doc := `{
		"personal_info": {"name": "Ada", "email": null},
		"skills": {"technical": ["Go"], "cloud": null},
		"experience": [{"company": "Acme", "current": true}]
	}`

	assert.NoError(t, Validate(Resume, []byte(doc)))
	assert.NoError(t, Validate(Resume, []byte(`{}`)))
}

func TestValidate_ResumeRejectsWrongTypes(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "skills category is a string", doc: `{"skills": {"technical": "Go, Rust"}}`},
		{name: "experience is an object", doc: `{"experience": {"company": "Acme"}}`},
		{name: "root is an array", doc: `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(Resume, []byte(tt.doc))
			require.Error(t, err)

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.NotEmpty(t, validationErr.Errors)
			assert.Contains(t, err.Error(), Resume)
		})
	}
}

func TestValidate_MalformedDocument(t *testing.T) {
	err := Validate(Resume, []byte(`{not json`))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("missing.schema.json", []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not embedded")
}

func TestValidate_TaxonomyRejectsUnknownKeys(t *testing.T) {
	err := Validate(Taxonomy, []byte(`{"categorys": []}`))
	require.Error(t, err)

	err = Validate(Taxonomy, []byte(`{"categories": [{"name": "data", "tokens": ["spark"]}]}`))
	assert.NoError(t, err)
}
