// Data transfer objects for the GitHub REST API. Date fields stay strings on
// purpose: a malformed timestamp in one item must not fail the whole decode,
// callers parse them with ParseTime and fall back to the zero value.

package githubapi

import "time"

type Owner struct {
	Login string `json:"login"`
	ID    int64  `json:"id"`
}

type GithubAPIResponse struct {
	Id              int64  `json:"id"`
	Name            string `json:"name"`
	FullName        string `json:"full_name"`
	Owner           Owner  `json:"owner"`
	Description     string `json:"description"`
	HtmlUrl         string `json:"html_url"`
	Language        string `json:"language"`
	StargazersCount int64  `json:"stargazers_count"`
	ForksCount      int64  `json:"forks_count"`
	WatchersCount   int64  `json:"watchers_count"`
	OpenIssuesCount int64  `json:"open_issues_count"`
	CreatedAt       string `json:"created_at"`
	PushedAt        string `json:"pushed_at"`
}

// StargazerResponse is one entry of the stargazers listing when requested
// with the star media type, so starred_at is present.
type StargazerResponse struct {
	StarredAt string `json:"starred_at"`
	User      Owner  `json:"user"`
}

// ParseTime reads a GitHub timestamp. Missing or malformed values come back
// as the zero time with ok=false, they never abort processing.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
