package fraud

// RiskLevel is the ordered fraud-assessment verdict.
type RiskLevel int

const (
	RiskLow RiskLevel = iota
	RiskMedium
	RiskHigh
	RiskCritical
)

func (r RiskLevel) String() string {
	switch r {
	case RiskLow:
		return "LOW"
	case RiskMedium:
		return "MEDIUM"
	case RiskHigh:
		return "HIGH"
	case RiskCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// bandFor maps a value against a limit onto a risk level using the
// 75% / 100% / 200% bands.
func bandFor(value, limit float64) RiskLevel {
	switch {
	case limit <= 0:
		return RiskLow
	case value >= limit*2:
		return RiskCritical
	case value >= limit:
		return RiskHigh
	case value >= limit*0.75:
		return RiskMedium
	default:
		return RiskLow
	}
}
