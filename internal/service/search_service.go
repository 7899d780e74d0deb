package service

import (
	"context"
	"errors"

	"arunika.id/aksipoin/internal/model"
	"arunika.id/aksipoin/internal/repository"
	"github.com/meilisearch/meilisearch-go"
	"gorm.io/gorm"
)

const submissionIndex = "submissions"

// SearchService indexes approved submissions for full-text search.
// MeiliSearch is optional infrastructure: with no client configured the
// service is nil and callers skip indexing.
type SearchService interface {
	IndexSubmission(ctx context.Context, submission *model.Submission) error
	Search(ctx context.Context, query string, limit int64) ([]SubmissionDocument, error)
}

type SubmissionDocument struct {
	ID          string `json:"id"`
	ActivityID  string `json:"activity_id"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Submitter   string `json:"submitter"`
	CreatedAt   int64  `json:"created_at"`
}

type meiliSearchService struct {
	client   meilisearch.ServiceManager
	userRepo repository.UserRepository
}

func NewMeiliSearchService(client meilisearch.ServiceManager, userRepo repository.UserRepository) SearchService {
	return &meiliSearchService{client: client, userRepo: userRepo}
}

func (s *meiliSearchService) IndexSubmission(ctx context.Context, submission *model.Submission) error {
	submitter := ""
	if submission.User != nil {
		submitter = submission.User.DisplayName
	} else {
		user, err := s.userRepo.FindByID(ctx, submission.UserID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if user != nil {
			submitter = user.DisplayName
		}
	}

	doc := SubmissionDocument{
		ID:          submission.ID.String(),
		ActivityID:  submission.ActivityID.String(),
		Description: submission.Description,
		ImageURL:    submission.ImageURL,
		Submitter:   submitter,
		CreatedAt:   submission.CreatedAt.Unix(),
	}

	primaryKey := "id"
	_, err := s.client.Index(submissionIndex).AddDocuments([]SubmissionDocument{doc}, &primaryKey)
	return err
}

func (s *meiliSearchService) Search(ctx context.Context, query string, limit int64) ([]SubmissionDocument, error) {
	if limit <= 0 {
		limit = 20
	}

	resp, err := s.client.Index(submissionIndex).Search(query, &meilisearch.SearchRequest{Limit: limit})
	if err != nil {
		return nil, err
	}

	docs := make([]SubmissionDocument, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		var doc SubmissionDocument
		if err := hit.DecodeInto(&doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
