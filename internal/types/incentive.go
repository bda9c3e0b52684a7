package types

// Incentive is a per-gig or per-sale commission: either a precise amount or a
// human-authored description. The two variants are AmountIncentive and TextIncentive.
type Incentive interface {
	isIncentive()
}

// AmountIncentive is a positive amount in the listing currency.
type AmountIncentive float64

// TextIncentive is a free-text description used when no precise amount is known.
type TextIncentive string

func (AmountIncentive) isIncentive() {}
func (TextIncentive) isIncentive()   {}

// ResolveIncentive prefers a positive amount, falls back to non-empty text,
// and returns nil when neither is usable.
func ResolveIncentive(amount *float64, text string) Incentive {
	if amount != nil && *amount > 0 {
		return AmountIncentive(*amount)
	}
	if text != "" {
		return TextIncentive(text)
	}
	return nil
}
