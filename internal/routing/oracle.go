package routing

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Estimate is the travel cost between two addresses by car.
type Estimate struct {
	Duration   time.Duration
	DistanceKm float64
}

// Oracle answers travel-time lookups. Implementations are best effort: the
// scheduling core treats any error as "no travel constraint known" and must
// keep working when the provider is down.
type Oracle interface {
	TravelTime(ctx context.Context, from, to string) (Estimate, error)
}

// PacedOracle wraps an Oracle and enforces a minimum interval between calls.
// Public geocoding providers allow roughly one lookup per second; callers that
// iterate candidate slots go through this wrapper so the whole process stays
// under the limit regardless of how many checks a request needs.
type PacedOracle struct {
	inner   Oracle
	limiter *rate.Limiter
}

func NewPacedOracle(inner Oracle, minInterval time.Duration) *PacedOracle {
	return &PacedOracle{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Every(minInterval), 1),
	}
}

func (p *PacedOracle) TravelTime(ctx context.Context, from, to string) (Estimate, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return Estimate{}, err
	}
	return p.inner.TravelTime(ctx, from, to)
}
