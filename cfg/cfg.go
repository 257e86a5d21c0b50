package cfg

type (
	App struct {
		Name    string
		Version string
	}

	GithubApi struct {
		AccessToken       string
		ApiUrl            string
		StargazersApiUrl  string
		RequestsPerSecond int
		ThrottleDelay     int
		RateLimitResetMin int
	}

	Sourcing struct {
		MaxRepos          int
		LookbackDays      int
		VelocityWorkers   int
		MaxStargazerPages int
		CacheTtlSeconds   int
	}

	Ui struct {
		Port      int
		StaticDir string
	}
)

type Config struct {
	App       App
	GithubApi GithubApi
	Sourcing  Sourcing
	Ui        Ui
}
