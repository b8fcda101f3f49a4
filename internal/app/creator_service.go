package app

import (
	"context"
	"errors"
	"log"
	"strings"

	"cvboost/internal/pkg/photo"
	"cvboost/internal/workflow"
)

var ErrGenerateFailed = errors.New("cv generation failed")

// CreatorGateway is the document-rendering slice of the workflow layer.
type CreatorGateway interface {
	GenerateCV(ctx context.Context, userID uint, doc workflow.CVDocument) (*workflow.FinalizeResult, error)
}

// CreatorService turns the structured CV form into a rendered download. The
// portrait photo is downscaled locally before dispatch; an undecodable photo
// is dropped rather than failing the whole generation.
type CreatorService struct {
	gateway CreatorGateway
}

func NewCreatorService(gateway CreatorGateway) *CreatorService {
	return &CreatorService{gateway: gateway}
}

func (s *CreatorService) Generate(ctx context.Context, userID uint, doc workflow.CVDocument) (*workflow.FinalizeResult, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	doc.FullName = strings.TrimSpace(doc.FullName)
	if doc.FullName == "" {
		return nil, ErrInvalidInput
	}

	if doc.PhotoBase64 != "" {
		normalized, err := photo.NormalizeDataURL(doc.PhotoBase64)
		if err != nil {
			log.Printf("normalize cv photo failed for user %d: %v", userID, err)
			doc.PhotoBase64 = ""
		} else {
			doc.PhotoBase64 = normalized
		}
	}

	result, err := s.gateway.GenerateCV(ctx, userID, doc)
	if err != nil {
		log.Printf("generate cv failed for user %d: %v", userID, err)
		return nil, ErrGenerateFailed
	}
	if result.DownloadURL == "" {
		return nil, ErrGenerateFailed
	}
	return result, nil
}
