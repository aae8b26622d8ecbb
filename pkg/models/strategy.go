package models

// CampaignGoal is the primary objective of a campaign strategy.
type CampaignGoal string

const (
	CampaignGoalBrandAwareness  CampaignGoal = "BRAND_AWARENESS"
	CampaignGoalLeadGeneration  CampaignGoal = "LEAD_GENERATION"
	CampaignGoalSalesConversion CampaignGoal = "SALES_CONVERSION"
)

// CampaignStrategy is a full-funnel campaign plan with budget allocation.
type CampaignStrategy struct {
	StrategyTitle   string                `json:"strategy_title"`
	ProductName     string                `json:"product_name"`
	PrimaryGoal     string                `json:"primary_goal"`
	TotalBudget     float64               `json:"total_budget"`
	BudgetReasoning string                `json:"budget_reasoning"`
	Funnel          []CampaignFunnelStage `json:"funnel"`
}

// CampaignFunnelStage is one stage (TOFU/MOFU/BOFU) of a campaign funnel.
type CampaignFunnelStage struct {
	Stage                      string        `json:"stage"`
	Title                      string        `json:"title"`
	Objective                  string        `json:"objective"`
	BudgetAllocationPercentage float64       `json:"budget_allocation_percentage"`
	SuggestedBudget            float64       `json:"suggested_budget"`
	ContentIdeas               []ContentIdea `json:"content_ideas"`
}

// ContentIdea is a content suggestion for a funnel stage.
type ContentIdea struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Platform    string `json:"platform"`
}

// CompetitorAnalysisResult is the market-gap report for a keyword.
type CompetitorAnalysisResult struct {
	AnalysisSummary            string             `json:"analysis_summary"`
	CompetitorCountEstimation  string             `json:"competitor_count_estimation"`
	CommonStrengths            []TitledPoint      `json:"common_strengths"`
	CommonWeaknesses           []TitledPoint      `json:"common_weaknesses"`
	MarketGapAnalysis          TitledPoint        `json:"market_gap_analysis"`
	SuggestedUSP               TitledPoint        `json:"suggested_usp"`
	WinningContentStrategy     ContentStrategy    `json:"winning_content_strategy"`
}

// TitledPoint is a short titled observation.
type TitledPoint struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ContentStrategy is an ordered playbook of content steps.
type ContentStrategy struct {
	Title string         `json:"title"`
	Steps []StrategyStep `json:"steps"`
}

// StrategyStep is one numbered step of a content strategy.
type StrategyStep struct {
	StepNumber  int    `json:"step_number"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// AnalysisResult is the response of a business-problem image analysis.
type AnalysisResult struct {
	ProblemSummary   string               `json:"problem_summary"`
	DetailedAnalysis string               `json:"detailed_analysis"`
	ImpactAssessment string               `json:"impact_assessment"`
	Solutions        []ActionableSolution `json:"solutions"`
}

// ActionableSolution is one prioritized fix suggested by an analysis.
type ActionableSolution struct {
	Title    string   `json:"title"`
	Steps    []string `json:"steps"`
	Priority string   `json:"priority"` // High, Medium, Low
}

// SheetAnalysisResult is the report produced from an ad-metrics sheet.
type SheetAnalysisResult struct {
	HealthScore          int                            `json:"health_score"`
	HealthScoreReasoning string                         `json:"health_score_reasoning"`
	OverallSummary       string                         `json:"overall_summary"`
	KeyInsights          []string                       `json:"key_insights"`
	TopPerformers        []PerformanceMetric            `json:"top_performers"`
	Underperformers      []PerformanceMetric            `json:"underperformers"`
	PerformanceGaps      []PerformanceGap               `json:"performance_gaps"`
	Recommendations      []OptimizationRecommendation   `json:"recommendations"`
	DeepDiveAnalysis     []DeepDiveInsight              `json:"deep_dive_analysis"`
	AudienceInsights     []AudiencePerformanceInsight   `json:"audience_insights"`
	CreativeInsights     []CreativePerformanceInsight   `json:"creative_insights"`
	Forecasts            []PerformanceForecast          `json:"forecasts"`
}

// PerformanceMetric highlights one entity's metric in a sheet analysis.
type PerformanceMetric struct {
	EntityType string `json:"entity_type"`
	Name       string `json:"name"`
	Metric     string `json:"metric"`
	Value      string `json:"value"`
	Reason     string `json:"reason"`
}

// OptimizationRecommendation is a prioritized action item.
type OptimizationRecommendation struct {
	Priority    int      `json:"priority"`
	Title       string   `json:"title"`
	Reasoning   string   `json:"reasoning"`
	ActionSteps []string `json:"action_steps"`
}

// PerformanceGap describes an underexploited area of an ad account.
type PerformanceGap struct {
	Area        string `json:"area"`
	Description string `json:"description"`
	Implication string `json:"implication"`
	Suggestion  string `json:"suggestion"`
}

// DeepDiveInsight is an observation/hypothesis/recommendation triple.
type DeepDiveInsight struct {
	Title          string `json:"title"`
	Observation    string `json:"observation"`
	Hypothesis     string `json:"hypothesis"`
	Recommendation string `json:"recommendation"`
}

// AudiencePerformanceInsight ranks an audience segment.
type AudiencePerformanceInsight struct {
	AudienceSegment  string `json:"audience_segment"`
	KeyMetric        string `json:"key_metric"`
	MetricValue      string `json:"metric_value"`
	PerformanceLevel string `json:"performance_level"`
	Suggestion       string `json:"suggestion"`
}

// CreativePerformanceInsight summarizes how a creative format is trending.
type CreativePerformanceInsight struct {
	CreativeType string `json:"creative_type"`
	Trend        string `json:"trend"`
	Reasoning    string `json:"reasoning"`
}

// PerformanceForecast projects a metric under a stated condition.
type PerformanceForecast struct {
	Metric         string `json:"metric"`
	ProjectedValue string `json:"projected_value"`
	Timeline       string `json:"timeline"`
	Condition      string `json:"condition"`
}
