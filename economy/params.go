package economy

// Params holds the tunable economic constants.
type Params struct {
	PricePerMaterial  float64  // Currency earned per unit of material
	HireCost          float64  // Price of one hire
	DefaultEfficiency float64  // Used when nobody is employed
	WorkPerClick      float64  // Buffer increment per manual work action
	Hire              Template // Attributes of a new hire
}

// DefaultParams returns the stock economy.
func DefaultParams() Params {
	return Params{
		PricePerMaterial:  1,
		HireCost:          10,
		DefaultEfficiency: 0.6,
		WorkPerClick:      1,
		Hire: Template{
			WorkPower:  1,
			Efficiency: 0.6,
			Support:    0.1,
			Wage:       0.2,
		},
	}
}
