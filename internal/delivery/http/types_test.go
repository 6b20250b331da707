package http

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexFloat(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{`19.99`, 19.99},
		{`"19.99"`, 19.99},
		{`" 7 "`, 7},
		{`"not-a-number"`, 0},
		{`null`, 0},
		{`true`, 0},
		{`[1]`, 0},
	}
	for _, tc := range cases {
		var f flexFloat
		require.NoError(t, json.Unmarshal([]byte(tc.in), &f), tc.in)
		assert.Equal(t, tc.want, float64(f), tc.in)
	}
}

func TestFlexInt(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{`3`, 3},
		{`"3"`, 3},
		{`2.9`, 2}, // truncated, not rounded
		{`"bogus"`, 1},
		{`null`, 0}, // decodes as a no-op; toItem treats 0 as 1
		{`{}`, 1},
	}
	for _, tc := range cases {
		var f flexInt
		require.NoError(t, json.Unmarshal([]byte(tc.in), &f), tc.in)
		assert.Equal(t, tc.want, int(f), tc.in)
	}
}

func TestKeywordList(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{`["a","b"]`, []string{"a", "b"}},
		{`[" a ", "", "b"]`, []string{"a", "b"}},
		{`"summer tee, cotton shirt"`, []string{"summer tee", "cotton shirt"}},
		{`" , ,"`, []string{}},
		{`""`, []string{}},
	}
	for _, tc := range cases {
		var k keywordList
		require.NoError(t, json.Unmarshal([]byte(tc.in), &k), tc.in)
		assert.Equal(t, tc.want, []string(k), tc.in)
	}

	var k keywordList
	assert.Error(t, json.Unmarshal([]byte(`42`), &k))
}

func TestParsePositiveInt(t *testing.T) {
	v, ok := parsePositiveInt("", 120)
	assert.True(t, ok)
	assert.Equal(t, 120, v)

	v, ok = parsePositiveInt("3", 120)
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	for _, raw := range []string{"0", "-1", "abc", "1.5"} {
		_, ok := parsePositiveInt(raw, 120)
		assert.False(t, ok, raw)
	}
}

func TestParseOptionalFloat(t *testing.T) {
	v, ok := parseOptionalFloat("")
	assert.True(t, ok)
	assert.Nil(t, v)

	v, ok = parseOptionalFloat("19.99")
	require.True(t, ok)
	require.NotNil(t, v)
	assert.Equal(t, 19.99, *v)

	_, ok = parseOptionalFloat("cheap")
	assert.False(t, ok)
}
