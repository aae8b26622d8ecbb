package models

import (
	"time"
)

// GeneratedContent is one content-generation event embedded in a user record,
// newest first. CreatedAt is the retention anchor and never changes after
// creation; entries are addressed by position for updates.
type GeneratedContent struct {
	CreatedAt  time.Time            `json:"createdAt"`
	Variations []MarketingVariation `json:"variations"`

	// AudienceAvatar is the deprecated single-avatar shape. It is kept only
	// so legacy blobs decode; reads migrate it into CoreAudienceSets.
	AudienceAvatar *AudienceAvatar `json:"audienceAvatar,omitempty"`

	CoreAudienceSets             []CoreAudienceSet    `json:"coreAudienceSets"`
	CustomAudienceSuggestions    []AudienceSuggestion `json:"customAudienceSuggestions"`
	LookalikeAudienceSuggestions []AudienceSuggestion `json:"lookalikeAudienceSuggestions"`
	AudienceReasoning            string               `json:"audienceReasoning"`
	VideoScript                  *VideoScript         `json:"videoScript,omitempty"`
}

// MarketingVariation is one persuasive copy variant. ID is unique within its
// parent GeneratedContent.
type MarketingVariation struct {
	ID          int    `json:"id"`
	FormulaName string `json:"formula_name"`
	Hook        string `json:"hook"`
	Body        string `json:"body"`
	CTA         string `json:"cta"`
	Reasoning   string `json:"reasoning"`
	IsSaved     bool   `json:"isSaved,omitempty"`

	// Analytics is populated at creation time for STANDARD and PRO plans only.
	Analytics *AnalyticsMetrics `json:"analytics,omitempty"`
}

// AnalyticsMetrics is the simulated performance block for a variation.
type AnalyticsMetrics struct {
	Reach       int     `json:"reach"`
	Impressions int     `json:"impressions"`
	Engagement  int     `json:"engagement"`
	CTR         float64 `json:"ctr"`  // percentage
	ROAS        float64 `json:"roas"` // multiplier, e.g. 4.5
}

// CoreAudienceSet is one Facebook targeting set.
type CoreAudienceSet struct {
	Title        string   `json:"title"`
	Reasoning    string   `json:"reasoning"`
	Age          string   `json:"age"`
	Gender       string   `json:"gender"`
	Location     string   `json:"location"`
	Relationship []string `json:"relationship"`
	Education    []string `json:"education"`
	Profession   []string `json:"profession"`
	Interests    []string `json:"interests"`
	Behaviors    []string `json:"behaviors"`
}

// AudienceSuggestion describes a custom or lookalike audience with setup
// instructions for the ads manager.
type AudienceSuggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	HowTo       string `json:"how_to"`
}

// AudienceAvatar is the legacy single-avatar targeting shape. Deprecated:
// migrated into CoreAudienceSets on read.
type AudienceAvatar struct {
	Age          string   `json:"age"`
	Gender       string   `json:"gender"`
	Location     string   `json:"location"`
	Relationship string   `json:"relationship"`
	Education    string   `json:"education"`
	Profession   string   `json:"profession"`
	Interest     []string `json:"interest"`
	Behavior     []string `json:"behavior"`
}

// VideoScript is attached lazily to a GeneratedContent entry after a separate
// generation call.
type VideoScript struct {
	Title  string       `json:"title"`
	Scenes []VideoScene `json:"scenes"`
}

// VideoScene is one scene of a video script.
type VideoScene struct {
	SceneNumber  int    `json:"sceneNumber"`
	Visuals      string `json:"visuals"`
	Voiceover    string `json:"voiceover"`
	OnScreenText string `json:"onScreenText"`
}

// ProductInfo is the user-supplied product description driving generation.
type ProductInfo struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	Price          string `json:"price"`
	Currency       string `json:"currency"`
	TargetAgeStart string `json:"targetAgeStart"`
	TargetAgeEnd   string `json:"targetAgeEnd"`
	Category       string `json:"category"`
}

// CampaignType selects the ad campaign concept content must follow.
type CampaignType string

const (
	CampaignTypePolling     CampaignType = "POLLING"
	CampaignTypeLookalike   CampaignType = "LOOKALIKE"
	CampaignTypeRetargeting CampaignType = "RETARGETING"
)
