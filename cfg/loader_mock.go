package cfg

type MockLoader struct{}

func NewMockLoader() (*MockLoader, error) {
	return &MockLoader{}, nil
}

func (yl *MockLoader) Load() (*Config, error) {
	return &Config{
		// App
		App: App{
			Name:    "github-sourcer",
			Version: "0.0.1",
		},

		// GithubApi
		GithubApi: GithubApi{
			AccessToken:       "",
			ApiUrl:            "https://api.github.com/search/repositories",
			StargazersApiUrl:  "https://api.github.com/repos/{owner}/{repo}/stargazers",
			RequestsPerSecond: 8,
			ThrottleDelay:     10,
			RateLimitResetMin: 1,
		},

		// Sourcing
		Sourcing: Sourcing{
			MaxRepos:          30,
			LookbackDays:      7,
			VelocityWorkers:   5,
			MaxStargazerPages: 5,
			CacheTtlSeconds:   3600,
		},

		// Ui
		Ui: Ui{
			Port:      8080,
			StaticDir: "internal/ui/static",
		},
	}, nil
}
