package recommendation

type Config struct {
	// vendors covering less than this share of the request are not recommended
	MinCoverage     float64
	MaxAlternatives int

	// a split order must cost below this fraction of the primary total
	SplitCostThreshold float64
	SplitVendorScore   float64

	ShippingEstimate float64

	PriceVarianceInsight   float64
	ContractExpiryDays     int
	FastDeliveryDays       int
	ConcentrationProducts  int
	UrgentDeliveryRiskDays int
}

const (
	defaultMinCoverage            = 0.5
	defaultMaxAlternatives        = 3
	defaultSplitCostThreshold     = 0.95
	defaultSplitVendorScore       = 0.8
	defaultShippingEstimate       = 15.0
	defaultPriceVarianceInsight   = 0.2
	defaultContractExpiryDays     = 30
	defaultFastDeliveryDays       = 2
	defaultConcentrationProducts  = 10
	defaultUrgentDeliveryRiskDays = 3
)

func DefaultConfig() Config {
	return Config{
		MinCoverage:            defaultMinCoverage,
		MaxAlternatives:        defaultMaxAlternatives,
		SplitCostThreshold:     defaultSplitCostThreshold,
		SplitVendorScore:       defaultSplitVendorScore,
		ShippingEstimate:       defaultShippingEstimate,
		PriceVarianceInsight:   defaultPriceVarianceInsight,
		ContractExpiryDays:     defaultContractExpiryDays,
		FastDeliveryDays:       defaultFastDeliveryDays,
		ConcentrationProducts:  defaultConcentrationProducts,
		UrgentDeliveryRiskDays: defaultUrgentDeliveryRiskDays,
	}
}
