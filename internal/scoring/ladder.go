package scoring

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/opensource-finance/kestrel/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrInvalidLadder is returned for malformed sanction tiers.
var ErrInvalidLadder = errors.New("invalid sanction ladder")

var validate = validator.New()

// Tier grants Amount when the score percentage is strictly above AbovePercent.
type Tier struct {
	AbovePercent float64
	Amount       decimal.Decimal
}

// Ladder maps a final score to a sanctioned amount.
type Ladder struct {
	tiers []Tier
}

// NewLadder validates tiers, which must be ordered by strictly descending
// AbovePercent. An empty ladder sanctions nothing.
func NewLadder(tiers []domain.SanctionTier) (*Ladder, error) {
	l := &Ladder{tiers: make([]Tier, 0, len(tiers))}
	for i, t := range tiers {
		if err := validate.Struct(t); err != nil {
			return nil, fmt.Errorf("tier %d: %w: %w", i, ErrInvalidLadder, err)
		}
		if i > 0 && t.AbovePercent >= tiers[i-1].AbovePercent {
			return nil, fmt.Errorf("tier %d: %w: above_percent %v not below %v",
				i, ErrInvalidLadder, t.AbovePercent, tiers[i-1].AbovePercent)
		}
		l.tiers = append(l.tiers, Tier{
			AbovePercent: t.AbovePercent,
			Amount:       decimal.NewFromInt(t.Amount),
		})
	}
	return l, nil
}

// DefaultLadder returns the standard six-tier ladder.
func DefaultLadder() *Ladder {
	l, err := NewLadder(domain.DefaultTiers())
	if err != nil {
		panic(fmt.Sprintf("default ladder: %v", err))
	}
	return l
}

// Amount returns the sanction for a final score on the 0-5 scale.
func (l *Ladder) Amount(score float64) decimal.Decimal {
	pct := score / domain.MaxScore * 100
	for _, t := range l.tiers {
		if pct > t.AbovePercent {
			return t.Amount
		}
	}
	return decimal.Zero
}

// Tiers returns a copy of the ladder's tiers, highest first.
func (l *Ladder) Tiers() []Tier {
	return append([]Tier(nil), l.tiers...)
}
