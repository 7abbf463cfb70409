package samples

import "samplecatalog/src/domain"

// BuildStatusFilter maps a semantic status and an injected "now" onto the
// store-independent predicate. Pure: same inputs, same filter. A nil status
// and StatusAll both mean "no time filter"; downstream never distinguishes
// them.
//
// All comparisons are strict, and a sample missing the compared timestamp
// never matches, mirroring a range query against an absent document field.
// Available deliberately ignores expiration.
func BuildStatusFilter(status *domain.Status, now int64) domain.SampleFilter {
	if status == nil {
		return domain.SampleFilter{}
	}

	switch *status {
	case domain.StatusActive:
		return domain.SampleFilter{
			AvailableBefore: &now,
			ExpirationAfter: &now,
		}
	case domain.StatusExpired:
		return domain.SampleFilter{
			ExpirationBefore: &now,
		}
	case domain.StatusPending:
		return domain.SampleFilter{
			AvailableAfter: &now,
		}
	case domain.StatusAvailable:
		return domain.SampleFilter{
			AvailableBefore: &now,
		}
	default: // StatusAll
		return domain.SampleFilter{}
	}
}
