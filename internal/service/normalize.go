package service

import (
	"encoding/json"
	"net/url"
	"strings"
)

// NormalizeURL coerces a user-entered URL into an absolute HTTPS form:
// "example.com" becomes "https://example.com", http is upgraded to https,
// the host is lowercased, and a bare trailing slash is dropped. Empty input
// stays empty.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}

	u.Scheme = "https"
	u.Host = strings.ToLower(u.Host)
	return strings.TrimSuffix(u.String(), "/")
}

// SkillList accepts either a JSON array of strings or a single
// comma-separated string; clients send skills in both forms.
type SkillList []string

func (s *SkillList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = trimSkills(list)
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = SplitSkills(raw)
	return nil
}

// SplitSkills splits a comma-separated skill string into a trimmed, ordered
// list with empty elements dropped.
func SplitSkills(raw string) []string {
	return trimSkills(strings.Split(raw, ","))
}

func trimSkills(in []string) []string {
	out := make([]string, 0, len(in))
	for _, skill := range in {
		if skill = strings.TrimSpace(skill); skill != "" {
			out = append(out, skill)
		}
	}
	return out
}
