package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"generank/domain/gene"
	"generank/domain/scoring"
)

// Config is the full application configuration, read from the environment.
// Weight values are validated through scoring.New before any computation
// starts, so a bad assignment aborts the run up front.
type Config struct {
	AppEnv      string `env:"APP_ENV" envDefault:"local"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	WeightGeneticAssociation    float64 `env:"WEIGHT_GENETIC_ASSOCIATION" envDefault:"0.25"`
	WeightPhenotypeSimilarity   float64 `env:"WEIGHT_PHENOTYPE_SIMILARITY" envDefault:"0.20"`
	WeightConstraint            float64 `env:"WEIGHT_CONSTRAINT" envDefault:"0.15"`
	WeightExpressionSpecificity float64 `env:"WEIGHT_EXPRESSION_SPECIFICITY" envDefault:"0.15"`
	WeightPathwayProximity      float64 `env:"WEIGHT_PATHWAY_PROXIMITY" envDefault:"0.15"`
	WeightLiterature            float64 `env:"WEIGHT_LITERATURE" envDefault:"0.10"`

	SensitivityTopN        int `env:"SENSITIVITY_TOP_N" envDefault:"100"`
	SensitivityParallelism int `env:"SENSITIVITY_PARALLELISM" envDefault:"0"`

	ReportMarkdownPath string `env:"REPORT_MARKDOWN_PATH" envDefault:"validation_report.md"`
	ReportHTMLPath     string `env:"REPORT_HTML_PATH" envDefault:""`
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Weights builds the validated scoring configuration from the configured
// per-layer weights.
func (c *Config) Weights() (scoring.Weights, error) {
	return scoring.New(map[gene.LayerName]float64{
		gene.LayerGeneticAssociation:    c.WeightGeneticAssociation,
		gene.LayerPhenotypeSimilarity:   c.WeightPhenotypeSimilarity,
		gene.LayerConstraint:            c.WeightConstraint,
		gene.LayerExpressionSpecificity: c.WeightExpressionSpecificity,
		gene.LayerPathwayProximity:      c.WeightPathwayProximity,
		gene.LayerLiterature:            c.WeightLiterature,
	})
}
