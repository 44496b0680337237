package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	App            AppConfig            `yaml:"app"`
	Scoring        ScoringConfig        `yaml:"scoring"`
	Pricing        PricingConfig        `yaml:"pricing"`
	Usage          UsageConfig          `yaml:"usage"`
	Recommendation RecommendationConfig `yaml:"recommendation"`
	Contract       ContractConfig       `yaml:"contract"`
}

type AppConfig struct {
	Name        string `yaml:"name" env:"APP_NAME" env-default:"Purchasing Agent"`
	Version     string `yaml:"version" env:"APP_VERSION" env-default:"1.0.0"`
	Environment string `yaml:"environment" env:"APP_ENV" env-default:"development"`
}

type ScoringConfig struct {
	WeightPrice         float64 `yaml:"weight_price" env:"SCORING_WEIGHT_PRICE" env-default:"0.35"`
	WeightDelivery      float64 `yaml:"weight_delivery" env:"SCORING_WEIGHT_DELIVERY" env-default:"0.25"`
	WeightContract      float64 `yaml:"weight_contract" env:"SCORING_WEIGHT_CONTRACT" env-default:"0.20"`
	WeightReliability   float64 `yaml:"weight_reliability" env:"SCORING_WEIGHT_RELIABILITY" env-default:"0.15"`
	WeightConsolidation float64 `yaml:"weight_consolidation" env:"SCORING_WEIGHT_CONSOLIDATION" env-default:"0.05"`
}

// Sum of all scoring weights.
func (s ScoringConfig) Sum() float64 {
	return s.WeightPrice + s.WeightDelivery + s.WeightContract + s.WeightReliability + s.WeightConsolidation
}

type PricingConfig struct {
	OrderingCost      float64 `yaml:"ordering_cost" env:"PRICING_ORDERING_COST" env-default:"50"`
	HoldingCostRate   float64 `yaml:"holding_cost_rate" env:"PRICING_HOLDING_COST_RATE" env-default:"0.25"`
	ShippingEstimate  float64 `yaml:"shipping_estimate" env:"PRICING_SHIPPING_ESTIMATE" env-default:"15"`
	MaxBulkMultiplier float64 `yaml:"max_bulk_multiplier" env:"PRICING_MAX_BULK_MULTIPLIER" env-default:"3"`
}

type UsageConfig struct {
	LeadTimeDays            int     `yaml:"lead_time_days" env:"USAGE_LEAD_TIME_DAYS" env-default:"7"`
	ServiceFactor           float64 `yaml:"service_factor" env:"USAGE_SERVICE_FACTOR" env-default:"1.65"`
	PlaceholderUnitCost     float64 `yaml:"placeholder_unit_cost" env:"USAGE_PLACEHOLDER_UNIT_COST" env-default:"10"`
	StockoutAlertDays       float64 `yaml:"stockout_alert_days" env:"USAGE_STOCKOUT_ALERT_DAYS" env-default:"14"`
	DiscontinuedAfterMonths int     `yaml:"discontinued_after_months" env:"USAGE_DISCONTINUED_AFTER_MONTHS" env-default:"6"`
}

type RecommendationConfig struct {
	MinCoverage        float64 `yaml:"min_coverage" env:"RECOMMENDATION_MIN_COVERAGE" env-default:"0.5"`
	SplitCostThreshold float64 `yaml:"split_cost_threshold" env:"RECOMMENDATION_SPLIT_COST_THRESHOLD" env-default:"0.95"`
}

type ContractConfig struct {
	AtRiskThreshold float64 `yaml:"at_risk_threshold" env:"CONTRACT_AT_RISK_THRESHOLD" env-default:"0.9"`
	TierProximity   float64 `yaml:"tier_proximity" env:"CONTRACT_TIER_PROXIMITY" env-default:"0.2"`
}

// Load reads an optional .env file, then an optional YAML file named by
// PURCHASING_CONFIG_FILE. Environment variables always win over the file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if path := getEnv("PURCHASING_CONFIG_FILE", ""); path != "" {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if math.Abs(c.Scoring.Sum()-1) > 1e-9 {
		return fmt.Errorf("scoring weights must sum to 1, got %.4f", c.Scoring.Sum())
	}
	if c.Pricing.OrderingCost <= 0 {
		return errors.New("ordering cost must be positive")
	}
	if c.Pricing.HoldingCostRate <= 0 {
		return errors.New("holding cost rate must be positive")
	}
	if c.Pricing.ShippingEstimate < 0 {
		return errors.New("shipping estimate must not be negative")
	}
	if c.Pricing.MaxBulkMultiplier < 1 {
		return errors.New("max bulk multiplier must be at least 1")
	}
	if c.Usage.LeadTimeDays <= 0 {
		return errors.New("lead time must be positive")
	}
	if c.Usage.ServiceFactor <= 0 {
		return errors.New("service factor must be positive")
	}
	if c.Usage.PlaceholderUnitCost <= 0 {
		return errors.New("placeholder unit cost must be positive")
	}
	if c.Recommendation.MinCoverage <= 0 || c.Recommendation.MinCoverage > 1 {
		return errors.New("min coverage must be in (0, 1]")
	}
	if c.Contract.AtRiskThreshold <= 0 || c.Contract.AtRiskThreshold > 1 {
		return errors.New("at-risk threshold must be in (0, 1]")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}
