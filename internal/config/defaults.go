package config

// DefaultConfig returns the default registrar configuration.
func DefaultConfig() *Config {
	return &Config{
		Extraction: ExtractionCfg{
			Provider:       "openai",
			Model:          "gpt-4o",
			APIKey:         "${OPENAI_API_KEY}",
			MaxTokens:      4000,
			MaxRetries:     3,
			TimeoutSeconds: 120,
			Workers:        4,
			Temperature:    0.1,
		},
		Ingest: IngestCfg{
			DPI: 300,
		},
		Consolidation: ConsolidationCfg{
			CreditEquivalence: 0.01,
			CreditTolerance:   0.01,
			GPATolerance:      0.05,
		},
	}
}
