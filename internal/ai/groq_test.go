package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractResult(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    *Result
		wantErr bool
	}{
		{
			name: "clean object",
			raw:  `{"enhanced_description":"Better copy.","meta_keywords":["a","b"]}`,
			want: &Result{EnhancedDescription: "Better copy.", MetaKeywords: []string{"a", "b"}},
		},
		{
			name: "prose before the object",
			raw:  `Sure, here is the JSON you asked for: {"enhanced_description":"Better copy.","meta_keywords":["a"]}`,
			want: &Result{EnhancedDescription: "Better copy.", MetaKeywords: []string{"a"}},
		},
		{
			name: "trailing prose after the object",
			raw:  `{"enhanced_description":"Better copy.","meta_keywords":["a"]} Hope that helps!`,
			want: &Result{EnhancedDescription: "Better copy.", MetaKeywords: []string{"a"}},
		},
		{
			name:    "no json at all",
			raw:     "I cannot help with that.",
			wantErr: true,
		},
		{
			name:    "unterminated object",
			raw:     `{"enhanced_description":"Better copy."`,
			wantErr: true,
		},
		{
			name:    "missing meta_keywords",
			raw:     `{"enhanced_description":"Better copy."}`,
			wantErr: true,
		},
		{
			name:    "missing enhanced_description",
			raw:     `{"meta_keywords":["a"]}`,
			wantErr: true,
		},
		{
			name:    "wrong field types",
			raw:     `{"enhanced_description":42,"meta_keywords":"a,b"}`,
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := extractResult(tc.raw)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func chatReply(content string) map[string]any {
	return map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
}

func newTestClient(url string) *Client {
	c := NewClient("test-key", "test-model")
	c.baseURL = url
	return c
}

func TestEnhance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Contains(t, req.Messages[0].Content, "Red Shirt")

		json.NewEncoder(w).Encode(chatReply(`{"enhanced_description":"Better copy.","meta_keywords":["red shirt"]}`))
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL).Enhance(context.Background(), ProductInput{Name: "Red Shirt"})
	require.NoError(t, err)
	assert.Equal(t, "Better copy.", got.EnhancedDescription)
	assert.Equal(t, []string{"red shirt"}, got.MetaKeywords)
}

func TestEnhanceUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "invalid api key", "type": "auth"},
		})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Enhance(context.Background(), ProductInput{Name: "Red Shirt"})
	require.ErrorIs(t, err, ErrUpstream)
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestEnhanceNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Enhance(context.Background(), ProductInput{Name: "Red Shirt"})
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestEnhanceUnparsableOutputIsNotUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chatReply("no json here"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Enhance(context.Background(), ProductInput{Name: "Red Shirt"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUpstream)
}

func TestEnhanceWithoutKey(t *testing.T) {
	c := NewClient("", "test-model")
	_, err := c.Enhance(context.Background(), ProductInput{Name: "Red Shirt"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUpstream)
}
