package control

import "math"

// SteeringMapper maps left-stick deflection to a steering command. The
// physical mechanism reaches full lock before the stick reaches its own
// extreme, so a configurable fraction of stick travel maps to the full
// ±100 output and anything beyond saturates.
type SteeringMapper struct {
	limit int
}

func NewSteeringMapper(limit int) SteeringMapper {
	if limit <= 0 {
		limit = 80
	}

	return SteeringMapper{limit: limit}
}

// Map converts a stick deflection (-100..100) to a steering value in
// [-100, 100].
func (m SteeringMapper) Map(raw int) int {
	if abs(raw) <= m.limit {
		return int(math.Round(float64(raw) / float64(m.limit) * 100))
	}

	if raw > 0 {
		return 100
	}

	return -100
}
