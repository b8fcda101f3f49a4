package app

import (
	"context"
	"errors"
	"strings"

	"cvboost/internal/workflow"
)

var ErrAnalysisFailed = errors.New("business analysis failed")

// AnalysisGateway is the review-analysis slice of the workflow layer.
type AnalysisGateway interface {
	AnalyzeBusiness(ctx context.Context, link string) (*workflow.BusinessReport, error)
	CompareBusinesses(ctx context.Context, linkA, linkB string) (*workflow.ComparisonReport, error)
}

// AnalysisService fronts the review scraping/scoring workflow runs. The
// intelligence is entirely upstream; this side validates input and normalizes
// the report so callers never see nil strength/weakness lists.
type AnalysisService struct {
	gateway AnalysisGateway
}

func NewAnalysisService(gateway AnalysisGateway) *AnalysisService {
	return &AnalysisService{gateway: gateway}
}

func (s *AnalysisService) Analyze(ctx context.Context, link string) (*workflow.BusinessReport, error) {
	link = strings.TrimSpace(link)
	if link == "" {
		return nil, ErrInvalidInput
	}

	report, err := s.gateway.AnalyzeBusiness(ctx, link)
	if err != nil {
		return nil, ErrAnalysisFailed
	}
	if report.Strengths == nil {
		report.Strengths = []string{}
	}
	if report.Weaknesses == nil {
		report.Weaknesses = []string{}
	}
	return report, nil
}

func (s *AnalysisService) Compare(ctx context.Context, linkA, linkB string) (*workflow.ComparisonReport, error) {
	linkA = strings.TrimSpace(linkA)
	linkB = strings.TrimSpace(linkB)
	if linkA == "" || linkB == "" {
		return nil, ErrInvalidInput
	}

	report, err := s.gateway.CompareBusinesses(ctx, linkA, linkB)
	if err != nil {
		return nil, ErrAnalysisFailed
	}
	for _, list := range []*[]string{&report.StrengthsA, &report.WeaknessesA, &report.StrengthsB, &report.WeaknessesB} {
		if *list == nil {
			*list = []string{}
		}
	}
	return report, nil
}
