package service

import (
	"context"
	"strings"

	"arunika.id/aksipoin/internal/repository"
	"arunika.id/aksipoin/pkg/apperror"
	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"
)

const (
	// similarityCandidates bounds the scan to the most recent reports in
	// the activity. Two submissions further apart than this are never
	// compared, so this is a near-duplicate guard, not deduplication.
	similarityCandidates = 20
	similarityThreshold  = 5
)

// SimilarityChecker rejects report texts that are near-duplicates of recent
// submissions in the same activity.
type SimilarityChecker struct {
	submissionRepo repository.SubmissionRepository
}

func NewSimilarityChecker(submissionRepo repository.SubmissionRepository) *SimilarityChecker {
	return &SimilarityChecker{submissionRepo: submissionRepo}
}

func (c *SimilarityChecker) Check(ctx context.Context, activityID uuid.UUID, text string) error {
	candidate := strings.TrimSpace(text)

	recent, err := c.submissionRepo.RecentDescriptions(ctx, activityID, similarityCandidates)
	if err != nil {
		return err
	}

	for _, existing := range recent {
		distance := levenshtein.ComputeDistance(candidate, strings.TrimSpace(existing))
		if distance < similarityThreshold {
			return apperror.Conflict("report is too similar to an existing report for this activity")
		}
	}

	return nil
}
