package review

import "fmt"

// RecomputeAggregates re-derives the denormalized rating summaries of the
// given service and provider strictly from the current review set. Nothing
// is computed incrementally, so the operation is idempotent and safe to
// re-run after any interleaving of concurrent review writes. When a
// derivation fails, the corresponding aggregate is left untouched.
func (s *DefaultReviewService) RecomputeAggregates(serviceID, providerID string) error {
	if serviceID != "" {
		ratings, err := s.Repo.AggregateForService(serviceID)
		if err != nil {
			return fmt.Errorf("derive service aggregate: %w", err)
		}
		if err := s.ServiceRepo.UpdateRatings(serviceID, ratings); err != nil {
			return fmt.Errorf("persist service aggregate: %w", err)
		}
	}
	if providerID != "" {
		ratings, err := s.Repo.AggregateForProvider(providerID)
		if err != nil {
			return fmt.Errorf("derive provider aggregate: %w", err)
		}
		if err := s.ProviderRepo.UpdateRatings(providerID, ratings); err != nil {
			return fmt.Errorf("persist provider aggregate: %w", err)
		}
	}
	return nil
}
