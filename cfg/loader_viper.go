package cfg

import (
	"fmt"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	cfgIns     *Config
	cfgInsOnce sync.Once
	cfgMutex   sync.RWMutex
)

type ViperLoader struct {
	configChangeCallbacks []func(*Config)
}

func NewViperLoader() (*ViperLoader, error) {
	return &ViperLoader{
		configChangeCallbacks: make([]func(*Config), 0),
	}, nil
}

func (yl *ViperLoader) Load() (*Config, error) {
	var err error
	cfgInsOnce.Do(func() {
		err = yl.loadConfig()
		if err == nil && yl.IsWatchChange() {
			viper.WatchConfig()
			viper.OnConfigChange(func(e fsnotify.Event) {
				fmt.Printf("[INFO][CONFIG] Config file changed: %s\n", e.Name)
				if errReload := yl.reloadConfig(); errReload != nil {
					fmt.Printf("[ERROR][CONFIG] Failed to reload config: %v\n", errReload)
				}
			})
		}
	})

	if err != nil {
		return nil, err
	}

	cfgMutex.RLock()
	defer cfgMutex.RUnlock()
	return cfgIns, nil
}

func (yl *ViperLoader) IsWatchChange() bool {
	return true
}

func (yl *ViperLoader) RegisterConfigChangeCallback(callback func(*Config)) {
	cfgMutex.Lock()
	yl.configChangeCallbacks = append(yl.configChangeCallbacks, callback)
	cfgMutex.Unlock()
}

func (yl *ViperLoader) loadConfig() error {
	// .env is optional, a missing file is not an error
	_ = godotenv.Load()

	viper.AddConfigPath("cfg/yaml")
	viper.SetConfigName("mode")
	viper.SetConfigType("yaml")
	setDefaults()
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("[ERROR][CONFIG] failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("[ERROR][CONFIG] failed to unmarshal config: %w", err)
	}
	applyEnvOverrides(cfg)

	// Assign to the global
	cfgMutex.Lock()
	cfgIns = cfg
	cfgMutex.Unlock()

	return nil
}

func (yl *ViperLoader) reloadConfig() error {
	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("[ERROR][CONFIG] failed to unmarshal config during reload: %w", err)
	}
	applyEnvOverrides(cfg)

	// Update the global instance
	cfgMutex.Lock()
	cfgIns = cfg

	// Notify all registered callbacks
	callbacks := make([]func(*Config), len(yl.configChangeCallbacks))
	copy(callbacks, yl.configChangeCallbacks)
	cfgMutex.Unlock()
	for _, callback := range callbacks {
		go callback(cfg)
	}

	fmt.Println("[INFO][CONFIG] Configuration reloaded successfully")
	return nil
}

func setDefaults() {
	viper.SetDefault("GithubApi.ApiUrl", "https://api.github.com/search/repositories")
	viper.SetDefault("GithubApi.StargazersApiUrl", "https://api.github.com/repos/{owner}/{repo}/stargazers")
	viper.SetDefault("GithubApi.RequestsPerSecond", 8)
	viper.SetDefault("GithubApi.ThrottleDelay", 100)
	viper.SetDefault("GithubApi.RateLimitResetMin", 1)
	viper.SetDefault("Sourcing.MaxRepos", 30)
	viper.SetDefault("Sourcing.LookbackDays", 7)
	viper.SetDefault("Sourcing.VelocityWorkers", 5)
	viper.SetDefault("Sourcing.MaxStargazerPages", 5)
	viper.SetDefault("Sourcing.CacheTtlSeconds", 3600)
	viper.SetDefault("Ui.Port", 8080)
	viper.SetDefault("Ui.StaticDir", "internal/ui/static")
}

// applyEnvOverrides lets the token live outside the yaml file. GITHUB_TOKEN
// wins over whatever the config file carries, matching how the hosted
// deployments inject secrets.
func applyEnvOverrides(cfg *Config) {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		cfg.GithubApi.AccessToken = token
	}
}
