package sim

type Config struct {
	Steps         int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{Steps: 0, ValidateState: true}
}

type Result struct {
	StepsTaken int
	Time       float64
	Metrics    map[string]float64
}
