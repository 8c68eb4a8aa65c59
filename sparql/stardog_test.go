package sparql

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResults = `{
  "head": {"vars": ["Location_IRI", "Location_Label"]},
  "results": {"bindings": [
    {"Location_IRI": {"type": "uri", "value": "http://purl.obolibrary.org/obo/UBERON_0001759"},
     "Location_Label": {"type": "literal", "value": "vagus nerve", "xml:lang": "en"}},
    {"Location_IRI": {"type": "uri", "value": "http://purl.obolibrary.org/obo/UBERON_0002107"}}
  ]}
}`

func TestStardogExecutor_Execute(t *testing.T) {
	var gotPath, gotQuery, gotReasoning, gotAccept, gotUser, gotPass string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		gotUser, gotPass, _ = r.BasicAuth()
		require.NoError(t, r.ParseForm())
		gotQuery = r.PostForm.Get("query")
		gotReasoning = r.PostForm.Get("reasoning")
		w.Header().Set("Content-Type", resultsMediaType)
		w.Write([]byte(sampleResults))
	}))
	defer server.Close()

	exec, err := NewStardogExecutor(StardogOptions{
		URL:      server.URL + "/",
		Username: "reader",
		Password: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/NPO/query", exec.Endpoint())

	rows, err := exec.Execute(context.Background(), Synonyms)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "/NPO/query", gotPath)
	assert.Equal(t, Synonyms.Text, gotQuery)
	assert.Equal(t, "false", gotReasoning)
	assert.Equal(t, resultsMediaType, gotAccept)
	assert.Equal(t, "reader", gotUser)
	assert.Equal(t, "secret", gotPass)

	label, ok := rows[0].Value("Location_Label")
	assert.True(t, ok)
	assert.Equal(t, "vagus nerve", label)
	assert.Equal(t, "en", rows[0]["Location_Label"].Lang)

	_, ok = rows[1].Value("Location_Label")
	assert.False(t, ok, "unbound variable should be absent")
}

func TestStardogExecutor_NoAuthWithoutUsername(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _, ok := r.BasicAuth()
		assert.False(t, ok)
		w.Write([]byte(`{"head":{"vars":[]},"results":{"bindings":[]}}`))
	}))
	defer server.Close()

	exec, err := NewStardogExecutor(StardogOptions{URL: server.URL, Database: "sckan", Reasoning: true})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(exec.Endpoint(), "/sckan/query"))

	rows, err := exec.Execute(context.Background(), Locations)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestStardogExecutor_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(strings.Repeat("x", 2*maxErrorBodySize)))
	}))
	defer server.Close()

	exec, err := NewStardogExecutor(StardogOptions{URL: server.URL})
	require.NoError(t, err)

	_, err = exec.Execute(context.Background(), Connectivity)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrQueryFailed))

	var qe *QueryError
	require.True(t, errors.As(err, &qe))
	assert.Equal(t, "connectivity", qe.Query)
	assert.Equal(t, http.StatusBadRequest, qe.StatusCode)
	assert.Len(t, qe.Body, maxErrorBodySize)
}

func TestStardogExecutor_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"head":`))
	}))
	defer server.Close()

	exec, err := NewStardogExecutor(StardogOptions{URL: server.URL})
	require.NoError(t, err)

	_, err = exec.Execute(context.Background(), PathwaySegments)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrQueryFailed)
	assert.Contains(t, err.Error(), "pathway_segments")
}

func TestStardogExecutor_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	exec, err := NewStardogExecutor(StardogOptions{URL: server.URL})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = exec.Execute(ctx, NeuronMetadata)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrQueryFailed)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewStardogExecutor_InvalidURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"empty", ""},
		{"no scheme", "stardog.scicrunch.io:5821"},
		{"ftp", "ftp://example.org"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStardogExecutor(StardogOptions{URL: tt.url})
			assert.Error(t, err)
		})
	}
}
