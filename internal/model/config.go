package model

import "time"

// Config holds the complete claimlens configuration
type Config struct {
	HTTP        HTTPConfig        `yaml:"http" mapstructure:"http"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Search      SearchConfig      `yaml:"search" mapstructure:"search"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Ranker      RankerConfig      `yaml:"ranker" mapstructure:"ranker"`
	Credibility CredibilityConfig `yaml:"credibility" mapstructure:"credibility"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// HTTPConfig controls article fetching
type HTTPConfig struct {
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent         string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	InsecureTLS       bool          `yaml:"insecure_tls" mapstructure:"insecure_tls"`
	RespectRobots     bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int           `yaml:"burst" mapstructure:"burst"`
	HTTPProxy         string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy        string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
}

// CacheConfig controls fetch/search response caching
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// SearchConfig controls the external evidence search collaborator
type SearchConfig struct {
	Provider            string        `yaml:"provider" mapstructure:"provider"` // serper, tavily, mock
	SerperAPIKey        string        `yaml:"serper_api_key" mapstructure:"serper_api_key"`
	TavilyAPIKey        string        `yaml:"tavily_api_key" mapstructure:"tavily_api_key"`
	Timeout             time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxEvidencePerClaim int           `yaml:"max_evidence_per_claim" mapstructure:"max_evidence_per_claim"`
	MinCredibility      float64       `yaml:"min_credibility" mapstructure:"min_credibility"`
	RequestsPerSecond   float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst               int           `yaml:"burst" mapstructure:"burst"`
}

// LLMConfig controls the claim-extraction and classification collaborators
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // openai or empty (rule-based fallback)
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// RankerConfig controls claim filtering and importance ranking
type RankerConfig struct {
	MaxClaims      int `yaml:"max_claims" mapstructure:"max_claims"`
	MinClaimLength int `yaml:"min_claim_length" mapstructure:"min_claim_length"`
}

// CredibilityConfig allows extending the built-in source credibility table
type CredibilityConfig struct {
	DefaultScore float64            `yaml:"default_score" mapstructure:"default_score"`
	Overrides    map[string]float64 `yaml:"overrides,omitempty" mapstructure:"overrides"`
}

// ConcurrencyConfig bounds the per-claim verification workers
type ConcurrencyConfig struct {
	ClaimWorkers int           `yaml:"claim_workers" mapstructure:"claim_workers"`
	ClaimTimeout time.Duration `yaml:"claim_timeout" mapstructure:"claim_timeout"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:           30 * time.Second,
			UserAgent:         "Claimlens/0.1 (+https://github.com/claimlens/claimlens)",
			MaxBodyBytes:      2_000_000,
			RespectRobots:     true,
			RequestsPerSecond: 2,
			Burst:             5,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "",
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Search: SearchConfig{
			Provider:            "serper",
			Timeout:             15 * time.Second,
			MaxEvidencePerClaim: 5,
			MinCredibility:      0.3,
			RequestsPerSecond:   2,
			Burst:               5,
		},
		LLM: LLMConfig{
			Provider:  "",
			Model:     "gpt-4o-mini",
			Timeout:   30,
			MaxTokens: 1500,
		},
		Ranker: RankerConfig{
			MaxClaims:      10,
			MinClaimLength: 25,
		},
		Credibility: CredibilityConfig{
			DefaultScore: 0.5,
		},
		Concurrency: ConcurrencyConfig{
			ClaimWorkers: 4,
			ClaimTimeout: 45 * time.Second,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
