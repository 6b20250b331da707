package http

import (
	"encoding/json"
	"strconv"
	"strings"
)

// flexFloat accepts a JSON number or a numeric string. Anything else
// becomes 0 instead of failing the whole payload; carts arrive from
// frontends that are sloppy about field types.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexFloat(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*f = flexFloat(v)
			return nil
		}
	}

	*f = 0
	return nil
}

// flexInt accepts a JSON number or a numeric string, defaulting to 1 on
// coercion failure. A quantity that cannot be read still means "one item".
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexInt(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*f = flexInt(v)
			return nil
		}
	}

	*f = 1
	return nil
}

// keywordList accepts either a JSON array of strings or a single
// comma-separated string, normalizing to trimmed non-empty entries.
type keywordList []string

func (k *keywordList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*k = normalizeKeywords(list)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*k = normalizeKeywords(strings.Split(s, ","))
	return nil
}

func normalizeKeywords(raw []string) []string {
	out := []string{}
	for _, kw := range raw {
		if kw = strings.TrimSpace(kw); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

// parsePositiveInt reads a 1-based positive integer query parameter,
// rejecting malformed values instead of coercing them.
func parsePositiveInt(raw string, fallback int) (int, bool) {
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, false
	}
	return v, true
}

// parseOptionalFloat reads an optional float query parameter.
func parseOptionalFloat(raw string) (*float64, bool) {
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, false
	}
	return &v, true
}
