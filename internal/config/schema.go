package config

// Config holds registrar configuration.
// Stored at: {home}/config.yaml
type Config struct {
	Extraction    ExtractionCfg    `mapstructure:"extraction" yaml:"extraction"`
	Ingest        IngestCfg        `mapstructure:"ingest" yaml:"ingest"`
	Consolidation ConsolidationCfg `mapstructure:"consolidation" yaml:"consolidation"`
}

// ExtractionCfg configures the vision extraction provider.
type ExtractionCfg struct {
	Provider       string  `mapstructure:"provider" yaml:"provider"`                 // "openai"
	Model          string  `mapstructure:"model" yaml:"model"`                       // Model name
	APIKey         string  `mapstructure:"api_key" yaml:"api_key"`                   // API key (supports ${ENV_VAR} syntax)
	MaxTokens      int     `mapstructure:"max_tokens" yaml:"max_tokens"`             // Completion token cap
	MaxRetries     int     `mapstructure:"max_retries" yaml:"max_retries"`           // Attempts per page
	TimeoutSeconds int     `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`   // HTTP timeout
	Workers        int     `mapstructure:"workers" yaml:"workers"`                   // Concurrent page extractions
	Temperature    float64 `mapstructure:"temperature" yaml:"temperature,omitempty"` // Sampling temperature (default 0.1)
}

// IngestCfg configures PDF rendering.
type IngestCfg struct {
	DPI int `mapstructure:"dpi" yaml:"dpi"` // Render resolution
}

// ConsolidationCfg configures the consolidation tolerances. See
// consolidate.Options for what each threshold means.
type ConsolidationCfg struct {
	CreditEquivalence float64 `mapstructure:"credit_equivalence" yaml:"credit_equivalence"`
	CreditTolerance   float64 `mapstructure:"credit_tolerance" yaml:"credit_tolerance"`
	GPATolerance      float64 `mapstructure:"gpa_tolerance" yaml:"gpa_tolerance"`
}
