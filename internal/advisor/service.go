package advisor

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tahsinkabir/marketmind/internal/logging"
	"github.com/tahsinkabir/marketmind/internal/tracing"
	"github.com/tahsinkabir/marketmind/pkg/models"
)

var ErrInvalidImage = errors.New("invalid image data")

// Service runs the generation operations against a model backend. Plan
// limits are applied here, server side.
type Service struct {
	model  ModelClient
	logger *logging.Logger
}

func NewService(model ModelClient, logger *logging.Logger) *Service {
	return &Service{model: model, logger: logger.WithComponent("advisor")}
}

// GenerateMarketingContent produces ad copy variations plus audience
// targeting. The plan caps variation and audience set counts and gates the
// custom and lookalike suggestions.
func (s *Service) GenerateMarketingContent(ctx context.Context, product models.ProductInfo, plan models.Plan, campaignType models.CampaignType) (*models.GeneratedContent, error) {
	limits := limitsForPlan(plan)

	span, ctx := tracing.StartSpan(ctx, "advisor.GenerateMarketingContent")
	defer span.Finish()
	tracing.SetTag(span, "plan", string(plan))

	start := time.Now()

	var content models.GeneratedContent
	err := s.model.GenerateJSON(ctx, marketingContentPrompt(product, limits, campaignType), nil, &content)
	s.logger.LogGeneration("marketing_content", "", string(plan), time.Since(start), err)
	if err != nil {
		tracing.LogError(span, err)
		return nil, err
	}

	// The model occasionally ignores the count and empty-array instructions
	if len(content.Variations) > limits.variations {
		content.Variations = content.Variations[:limits.variations]
	}
	if len(content.CoreAudienceSets) > limits.coreAudienceSets {
		content.CoreAudienceSets = content.CoreAudienceSets[:limits.coreAudienceSets]
	}
	if !limits.customAudiences || content.CustomAudienceSuggestions == nil {
		content.CustomAudienceSuggestions = []models.AudienceSuggestion{}
	}
	if !limits.lookalikeAudiences || content.LookalikeAudienceSuggestions == nil {
		content.LookalikeAudienceSuggestions = []models.AudienceSuggestion{}
	}
	content.AudienceAvatar = nil
	content.CreatedAt = time.Now().UTC()

	return &content, nil
}

// GenerateVideoScript converts finished ad copy into a short scene-by-scene
// video script.
func (s *Service) GenerateVideoScript(ctx context.Context, adCopy string) (*models.VideoScript, error) {
	start := time.Now()

	var script models.VideoScript
	err := s.model.GenerateJSON(ctx, videoScriptPrompt(adCopy), nil, &script)
	s.logger.LogGeneration("video_script", "", "", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return &script, nil
}

// GenerateSocialPost produces the daily social post text and an English
// prompt for the matching image.
func (s *Service) GenerateSocialPost(ctx context.Context, product models.ProductInfo) (*models.SocialPostContent, error) {
	start := time.Now()

	var out struct {
		PostText    string `json:"postText"`
		ImagePrompt string `json:"imagePrompt"`
	}
	err := s.model.GenerateJSON(ctx, socialPostPrompt(product), nil, &out)
	s.logger.LogGeneration("social_post", "", "", time.Since(start), err)
	if err != nil {
		return nil, err
	}

	return &models.SocialPostContent{
		Text:        out.PostText,
		ImagePrompt: out.ImagePrompt,
	}, nil
}

// GenerateImage renders a post image and returns the raw JPEG bytes.
func (s *Service) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	span, ctx := tracing.StartSpan(ctx, "advisor.GenerateImage")
	defer span.Finish()

	start := time.Now()

	data, err := s.model.GenerateImage(ctx, prompt)
	s.logger.LogGeneration("image", "", "", time.Since(start), err)
	tracing.LogError(span, err)
	return data, err
}

// GenerateCampaignStrategy builds a full-funnel TOFU/MOFU/BOFU plan with
// budget allocation.
func (s *Service) GenerateCampaignStrategy(ctx context.Context, product models.ProductInfo, goal models.CampaignGoal, totalBudget float64) (*models.CampaignStrategy, error) {
	if _, ok := goalDescriptions[goal]; !ok {
		return nil, fmt.Errorf("unknown campaign goal %q", goal)
	}

	start := time.Now()

	var strategy models.CampaignStrategy
	err := s.model.GenerateJSON(ctx, campaignStrategyPrompt(product, goal, totalBudget), nil, &strategy)
	s.logger.LogGeneration("campaign_strategy", "", "", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return &strategy, nil
}

// GenerateCompetitorAnalysis analyzes competitor ads, optionally with a
// screenshot of a competitor ad as a data-URL image.
func (s *Service) GenerateCompetitorAnalysis(ctx context.Context, keyword, competitorInfo, myProductInfo, imageDataURL string) (*models.CompetitorAnalysisResult, error) {
	var image *ImageInput
	if imageDataURL != "" {
		decoded, err := decodeDataURL(imageDataURL)
		if err != nil {
			return nil, err
		}
		image = decoded
	}

	start := time.Now()

	var result models.CompetitorAnalysisResult
	err := s.model.GenerateJSON(ctx, competitorAnalysisPrompt(keyword, competitorInfo, myProductInfo, image != nil), image, &result)
	s.logger.LogGeneration("competitor_analysis", "", "", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// AnalyzeBusinessProblem runs the multimodal consultant over a photo of the
// problem plus an optional text description.
func (s *Service) AnalyzeBusinessProblem(ctx context.Context, imageDataURL, problemDescription string) (*models.AnalysisResult, error) {
	image, err := decodeDataURL(imageDataURL)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	var result models.AnalysisResult
	err = s.model.GenerateJSON(ctx, businessProblemPrompt(problemDescription), image, &result)
	s.logger.LogGeneration("business_problem", "", "", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// AnalyzeAdSheet produces the simulated deep-dive report for an ad metrics
// spreadsheet URL.
func (s *Service) AnalyzeAdSheet(ctx context.Context, sheetURL string) (*models.SheetAnalysisResult, error) {
	start := time.Now()

	var result models.SheetAnalysisResult
	err := s.model.GenerateJSON(ctx, sheetAnalysisPrompt(sheetURL), nil, &result)
	s.logger.LogGeneration("sheet_analysis", "", "", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// decodeDataURL parses a "data:image/...;base64," URL into image bytes.
func decodeDataURL(dataURL string) (*ImageInput, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return nil, ErrInvalidImage
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, ErrInvalidImage
	}
	mimeType := strings.TrimSuffix(meta, ";base64")
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, ErrInvalidImage
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalidImage
	}
	return &ImageInput{MIMEType: mimeType, Data: data}, nil
}
