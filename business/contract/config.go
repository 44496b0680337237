package contract

import "errors"

type Config struct {
	// projected spend below this share of the commitment marks a contract at risk
	AtRiskThreshold float64
	// tier hints are offered only when the gap is within this share of the commitment
	TierProximity float64
	RenewalDays   int

	UnderCommittedPct      float64
	OverCommittedPct       float64
	ShiftPenaltyRate       float64
	MaxShiftProducts       int
	ConsolidationBaseSpend float64
	ConsolidationRate      float64
	RenegotiateMinSpend    float64
	RenegotiateRate        float64
	NewContractMinSpend    float64
	NewContractRate        float64

	RebalanceScoreGap   float64
	RebalanceMinSavings float64
	MaxRebalancing      int

	ExpiryHighDays    int
	ExpiryMediumDays  int
	AtRiskAlertDays   int
	UnderusedPct      float64
	UnderusedDays     int
	TierAlertDistance float64
}

const (
	defaultAtRiskThreshold = 0.9
	defaultTierProximity   = 0.2
	defaultRenewalDays     = 90

	defaultUnderCommittedPct      = 80.0
	defaultOverCommittedPct       = 120.0
	defaultShiftPenaltyRate       = 0.02
	defaultMaxShiftProducts       = 5
	defaultConsolidationBaseSpend = 50000.0
	defaultConsolidationRate      = 0.05
	defaultRenegotiateMinSpend    = 100000.0
	defaultRenegotiateRate        = 0.08
	defaultNewContractMinSpend    = 50000.0
	defaultNewContractRate        = 0.12

	defaultRebalanceScoreGap   = 5.0
	defaultRebalanceMinSavings = 1000.0
	defaultMaxRebalancing      = 5

	defaultExpiryHighDays    = 30
	defaultExpiryMediumDays  = 90
	defaultAtRiskAlertDays   = 90
	defaultUnderusedPct      = 50.0
	defaultUnderusedDays     = 180
	defaultTierAlertDistance = 10000.0
)

func DefaultConfig() Config {
	return Config{
		AtRiskThreshold: defaultAtRiskThreshold,
		TierProximity:   defaultTierProximity,
		RenewalDays:     defaultRenewalDays,

		UnderCommittedPct:      defaultUnderCommittedPct,
		OverCommittedPct:       defaultOverCommittedPct,
		ShiftPenaltyRate:       defaultShiftPenaltyRate,
		MaxShiftProducts:       defaultMaxShiftProducts,
		ConsolidationBaseSpend: defaultConsolidationBaseSpend,
		ConsolidationRate:      defaultConsolidationRate,
		RenegotiateMinSpend:    defaultRenegotiateMinSpend,
		RenegotiateRate:        defaultRenegotiateRate,
		NewContractMinSpend:    defaultNewContractMinSpend,
		NewContractRate:        defaultNewContractRate,

		RebalanceScoreGap:   defaultRebalanceScoreGap,
		RebalanceMinSavings: defaultRebalanceMinSavings,
		MaxRebalancing:      defaultMaxRebalancing,

		ExpiryHighDays:    defaultExpiryHighDays,
		ExpiryMediumDays:  defaultExpiryMediumDays,
		AtRiskAlertDays:   defaultAtRiskAlertDays,
		UnderusedPct:      defaultUnderusedPct,
		UnderusedDays:     defaultUnderusedDays,
		TierAlertDistance: defaultTierAlertDistance,
	}
}

func (c Config) Validate() error {
	if c.AtRiskThreshold <= 0 || c.AtRiskThreshold > 1 {
		return errors.New("contract: at-risk threshold must be in (0, 1]")
	}
	if c.TierProximity <= 0 {
		return errors.New("contract: tier proximity must be positive")
	}
	return nil
}
