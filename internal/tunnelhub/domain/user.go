package domain

import "strings"

// UserConfig is an account whose relay API tokens are aggregated.
type UserConfig struct {
	ID      string   `json:"id" yaml:"id"`
	Name    string   `json:"name" yaml:"name"`
	Tokens  []string `json:"ngrok_tokens" yaml:"ngrok_tokens"`
	APIURLs []string `json:"ngrok_api_urls" yaml:"ngrok_api_urls"`
}

// APIURL returns the API URL paired with the i-th token. When there are
// fewer URLs than tokens the last URL is reused.
func (u UserConfig) APIURL(i int) string {
	if len(u.APIURLs) == 0 {
		return ""
	}
	return u.APIURLs[min(i, len(u.APIURLs)-1)]
}

// Redacted returns a copy safe to show to clients: each token is reduced to
// its last four characters.
func (u UserConfig) Redacted() UserConfig {
	out := u
	out.Tokens = make([]string, len(u.Tokens))
	for i, t := range u.Tokens {
		out.Tokens[i] = RedactToken(t)
	}
	out.APIURLs = append([]string(nil), u.APIURLs...)
	return out
}

// RedactToken masks all but the last four characters of t.
func RedactToken(t string) string {
	const keep = 4
	if len(t) <= keep {
		return strings.Repeat("*", len(t))
	}
	return strings.Repeat("*", 8) + t[len(t)-keep:]
}
