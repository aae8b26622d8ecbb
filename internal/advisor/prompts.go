package advisor

import (
	"fmt"
	"strings"

	"github.com/tahsinkabir/marketmind/pkg/models"
)

// planLimits is what each subscription tier gets out of a single marketing
// content generation.
type planLimits struct {
	variations         int
	coreAudienceSets   int
	customAudiences    bool
	lookalikeAudiences bool
}

func limitsForPlan(plan models.Plan) planLimits {
	switch plan {
	case models.PlanPro:
		return planLimits{variations: 5, coreAudienceSets: 3, customAudiences: true, lookalikeAudiences: true}
	case models.PlanStandard:
		return planLimits{variations: 3, coreAudienceSets: 2, customAudiences: true}
	default:
		return planLimits{variations: 1, coreAudienceSets: 1}
	}
}

const captionTemplates = `
1.  **Template 01: Pain-Agitate-Solve**: Pain point as a question -> Benefit -> Authority/Social Proof -> Benefit -> Urgency.
2.  **Template 02: Targeted Social Proof**: Discover how [Target Audience] beat [Pain Point] in [Time Period].
3.  **Template 03: Urgency/Scarcity**: Sale/Offer ends soon -> Social Proof -> Final urgent Call to Action.
4.  **Template 04: Fear-Based**: Don't let [Fear] stop you from [Desired Outcome].
5.  **Template 05: Fact-Driven**: Start with a surprising industry fact -> Ask a related pain point question -> Offer solution with urgency.
6.  **Template 06: Customer Review**: Use a customer testimonial as the main copy -> Add social proof -> Call to action.
7.  **Template 07: Future Pacing**: "Imagine..." feeling the benefit -> "Imagine..." the pain point gone -> Pitch the product as the way to achieve it.
8.  **Template 08: Benefit-Driven List**: List multiple benefits as headlines, each followed by a short description.
9.  **Template 09: "Did You Know?" Hook**: Start with a surprising question/fact -> Provide a related fact -> Offer product as a way to leverage this information.
10. **Template 10: Niche Targeting**: Address a specific audience and their unique pain point -> "Nobody understands..." -> Offer product as the solution.
11. **Template 11: Emotional Question**: Ask an emotional question related to a social proof statistic -> Address the emotional pain point -> Urgent call to action.
12. **Template 12: Action Verbs**: Start each benefit statement with a strong action verb (e.g., Absorb, Smash, Sprinkle).
13. **Template 13: "Or Do You?" Challenge**: State a common, difficult way to solve a problem -> Ask "Or do you?" -> Introduce your easy solution with social proof.
14. **Template 14: Competitor Call-out**: Claim your product is better than a well-known competitor -> Challenge the user to try -> Remind them of the key benefit.
15. **Template 15: Justify Weakness**: Acknowledge a perceived weakness (e.g., high price) -> Justify it with a major strength (e.g., superior quality) -> Call to action to join an "elite" group.
`

func marketingContentPrompt(product models.ProductInfo, limits planLimits, campaignType models.CampaignType) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are a world-class Bengali copywriter and Facebook Ads strategist. You are an expert at using proven copywriting formulas to create high-conversion ad copy and detailed audience targeting strategies. Your primary language for copy is Bengali, but for Facebook targeting options, you MUST use English.
Your task is to generate a complete marketing asset package for a product based on the details provided.

**CRITICAL INSTRUCTION:** Your entire response MUST be a single, valid JSON object with the keys "variations", "coreAudienceSets", "customAudienceSuggestions", "lookalikeAudienceSuggestions", and "audienceReasoning". Do not add any text before or after the JSON object. Do not use markdown.

### Copywriting Formulas
You must use these formulas to structure the ad copy. For each of the %d variations, you MUST select one of these 15 formulas.
%s

### Content Generation Steps

**Step 1: Generate Content Variations**
- Generate exactly %d unique variations in Bengali.
- For each variation provide: "id" (integer from 1), "formula_name", "hook", "body", "cta", and "reasoning".
- **Body:** This must be very detailed, persuasive, and between 300-500 words long. Use storytelling, address pain points, and explain benefits in-depth.
- **Reasoning:** Briefly explain in Bengali which formula you used.

**Step 2: Generate Core Audience Sets (In English)**
- Generate %d unique "Core Audience Sets". Each set should target a slightly different angle.
- Each set must include: "title", "reasoning", "age", "gender", "location", "relationship" (array), "education" (array), "profession" (array), "interests" (array), and "behaviors" (array).
- All targeting keywords MUST be specific, valid Facebook targeting options.
`, limits.variations, captionTemplates, limits.variations, limits.coreAudienceSets)

	if limits.customAudiences {
		b.WriteString(`
**Step 3: Generate Custom Audience Suggestions (In English)**
- Provide 2-3 specific "Custom Audience" suggestions for retargeting, based on website visitors, video viewers, or page engagement.
- Each suggestion must have a "title", "description", and a "how_to" guide for Facebook Ads Manager.
`)
	} else {
		b.WriteString("\n- \"customAudienceSuggestions\" MUST be an empty array.\n")
	}

	if limits.lookalikeAudiences {
		b.WriteString(`
**Step 4: Generate Lookalike Audience Suggestions (In English)**
- Provide 2 "Lookalike Audience" suggestions based on high-value customer lists or converters.
- Each suggestion must have a "title", "description", and a "how_to" guide for Facebook Ads Manager.
`)
	} else {
		b.WriteString("- \"lookalikeAudienceSuggestions\" MUST be an empty array.\n")
	}

	b.WriteString(`
**Step 5: Generate Audience Reasoning (In Bengali)**
- Provide a detailed paragraph in Bengali explaining the overall audience strategy.
`)

	campaignInstruction := "General purpose (no specific type selected)."
	if campaignType != "" {
		campaignInstruction = fmt.Sprintf("%s. All generated content must strictly follow the concept of this campaign type.", campaignType)
	}

	fmt.Fprintf(&b, `
### Product & Campaign Details
*   **Product Name:** %s
*   **Product Description:** %s
*   **Target Audience Hint:** The target audience are people aged %s-%s interested in '%s'. The product price is %s %s, which suggests the target demographic's purchasing power.
*   **Campaign Type:** %s

--- START GENERATION ---
`, product.Name, product.Description, product.TargetAgeStart, product.TargetAgeEnd, product.Category, product.Price, product.Currency, campaignInstruction)

	return b.String()
}

func videoScriptPrompt(adCopy string) string {
	return fmt.Sprintf(`You are a professional video scriptwriter for short, punchy social media ads (like Facebook/Instagram Reels or YouTube Shorts). Your output MUST be in a specific JSON format. All text should be in Bengali.

**Task:** Convert the following ad copy into a 3-5 scene video script.

**Ad Copy:**
---
%s
---

**Instructions:**
1.  Analyze the ad copy: identify the hook, key benefits, and the call to action.
2.  Create a short, catchy "title" in Bengali.
3.  Break the script into 3 to 5 "scenes". For each scene provide:
    *   "sceneNumber": An integer starting from 1.
    *   "visuals": A short, clear description of what is happening visually (in Bengali). Suggest dynamic shots, close-ups, and engaging visuals.
    *   "voiceover": The voiceover text for the scene (in Bengali), natural and conversational.
    *   "onScreenText": Short, impactful text to display on screen (in Bengali). This should complement the voiceover, not just repeat it.

**CRITICAL:** Your entire output must be a single, valid JSON object. No extra text or markdown.
`, adCopy)
}

func socialPostPrompt(product models.ProductInfo) string {
	return fmt.Sprintf(`You are an expert viral content creator specializing in engaging Facebook and Instagram posts for the Bangladeshi audience. Your tone should be modern, friendly, and highly engaging.
Based on the provided product information, generate a Facebook post.
The post MUST include:
1. A catchy opening line to grab attention.
2. The main body of the post (concise, under 80 words).
3. An engaging question to encourage comments and interaction.
4. A clear and strong Call-To-Action.
5. 3-4 relevant and trending Bengali/Banglish hashtags.

Also, create a descriptive prompt for an AI image generator. The image prompt MUST be in English, be highly descriptive for a photorealistic image, and suggest a specific artistic style.

Return a single, valid, minified JSON object with NO other text before or after it. Do not use markdown.
The JSON must have two keys:
1. "postText": The Bengali Facebook post, with each part on a new line for readability.
2. "imagePrompt": The English prompt for the image generator.

Product Information:
- Name: %s
- Description: %s
- Category: %s
- Price: %s %s
`, product.Name, product.Description, product.Category, product.Price, product.Currency)
}

var goalDescriptions = map[models.CampaignGoal]string{
	models.CampaignGoalBrandAwareness:  "ব্র্যান্ড সচেতনতা বৃদ্ধি করা। নতুন দর্শকের কাছে পৌঁছানো এবং ব্র্যান্ডকে পরিচিত করানো।",
	models.CampaignGoalLeadGeneration:  "লিড সংগ্রহ করা। সম্ভাব্য গ্রাহকদের তথ্য (যেমন ইমেল, ফোন নম্বর) সংগ্রহ করা।",
	models.CampaignGoalSalesConversion: "সরাসরি বিক্রয় বৃদ্ধি করা। গ্রাহকদের পণ্য কিনতে উৎসাহিত করা।",
}

func campaignStrategyPrompt(product models.ProductInfo, goal models.CampaignGoal, totalBudget float64) string {
	return fmt.Sprintf(`You are a senior marketing strategist AI specializing in creating full-funnel digital marketing campaigns for the Bangladeshi market. Your analysis must be practical, insightful, and presented in professional Bengali.

**Task:** Create a comprehensive TOFU/MOFU/BOFU (Top of Funnel, Middle of Funnel, Bottom of Funnel) campaign strategy.

**Product & Campaign Information:**
- Product Name: %s
- Description: %s
- Category: %s
- Price: %s %s
- Target Age: %s-%s
- Total Campaign Budget: %.0f %s
- Primary Campaign Goal: %s

**Instructions:**
1.  Provide top-level fields: "strategy_title" (Bengali), "product_name", "primary_goal", "total_budget" (the provided number), and "budget_reasoning" (a detailed Bengali paragraph explaining the rationale behind the budget allocation across the funnel stages, tailored to the goal).
2.  Define a "funnel" array with one object per stage (TOFU, MOFU, BOFU), each with: "stage", "title" (Bengali), "objective" (Bengali), "budget_allocation_percentage" (the three must sum to 100), "suggested_budget" (total_budget * percentage / 100), and "content_ideas".
3.  Each of the 2-3 content ideas per stage has a "title", "description", and "platform" (e.g., "Facebook Ad", "Instagram Reel", "YouTube Short").

**CRITICAL:** Your entire output must be a single, valid JSON object. No extra text or markdown. All text must be in natural, professional Bengali.
`, product.Name, product.Description, product.Category, product.Price, product.Currency,
		product.TargetAgeStart, product.TargetAgeEnd, totalBudget, product.Currency, goalDescriptions[goal])
}

func competitorAnalysisPrompt(keyword, competitorInfo, myProductInfo string, hasImage bool) string {
	var b strings.Builder

	b.WriteString(`You are a world-class market research analyst and marketing strategist, with deep expertise in the Bangladeshi e-commerce and social media landscape. You will be given information scraped from the Facebook Ad Library about competitors for a specific keyword. Perform a deep analysis and generate a comprehensive strategic report in professional, natural-sounding Bengali.
`)
	if hasImage {
		b.WriteString(`
**Image Analysis:** The user has provided an image of a competitor's product or advertisement. You MUST analyze this image as a primary source of information: product presentation, packaging, visible pricing, ad design, and overall sentiment. Integrate insights from the image directly into the Strengths, Weaknesses, and Market Gap analysis.
`)
	}

	fmt.Fprintf(&b, `
**Inputs:**
- **Search Keyword:** "%s"
- **Competitor Ad Information (from text):** """%s"""
- **The User's Own Product:** """%s"""

**Your Tasks:**
1.  "analysis_summary": A concise summary of the overall competitive landscape.
2.  "competitor_count_estimation": A realistic estimation of the number of competitors in Bengali.
3.  "common_strengths": 2-3 common strengths or effective tactics across the competitor ads, each with a "title" and "description".
4.  "common_weaknesses": 2-3 common weaknesses or missed opportunities, each with a "title" and "description".
5.  "market_gap_analysis": The biggest strategic market gap based on the weaknesses.
6.  "suggested_usp": A unique selling proposition for the user's product that exploits the gap.
7.  "winning_content_strategy": A "title" and 3-5 concrete "steps" for content that outperforms the competitors.

**CRITICAL:** Your entire output must be a single, valid JSON object. No extra text or markdown. All text must be in natural, professional Bengali.
`, keyword, competitorInfo, myProductInfo)

	return b.String()
}

func businessProblemPrompt(problemDescription string) string {
	userDescription := "Please analyze the problem based solely on the image provided."
	if problemDescription != "" {
		userDescription = fmt.Sprintf(`Additionally, the user has provided the following text description of their problem: "%s"
Please consider BOTH the image and this text for a complete and more accurate analysis.`, problemDescription)
	}

	return fmt.Sprintf(`You are a powerful multimodal business consultant AI, specializing in the Bangladeshi market. Your analysis should be exceptionally detailed, insightful, and professional, delivered in natural-sounding Bengali.

**CRITICAL INSTRUCTION:** Your entire response MUST be a single, valid JSON object with the keys "problem_summary", "detailed_analysis", "impact_assessment", and "solutions". Each solution has a "title", "steps" (array of strings), and "priority" ("High", "Medium", or "Low"). Do not add any text before or after the JSON object. Do not use markdown.

All text values in the JSON object must be in professional, clear, and natural Bengali.

Now, analyze the image and the following user description:
%s
`, userDescription)
}

func sheetAnalysisPrompt(sheetURL string) string {
	return fmt.Sprintf(`You are a world-class senior data analyst and marketing consultant AI, specializing in deep analysis of Facebook Ads performance for the Bangladeshi market. Your analysis must be practical, insightful, professional, and delivered in professional Bengali.

A user has provided a Google Sheet URL. While you cannot access external URLs, you must **simulate** a deep, cell-by-cell analysis of this data and generate a comprehensive, actionable report.

**ASSUME** the Google Sheet at the URL (%s) contains granular data, including columns for: Campaign Name, Ad Set Name, Ad Name/Content, Amount Spent, Reach, Impressions, Link Clicks, CTR, CPC, CPM, Conversions, Cost per Conversion, ROAS, Frequency, Video Plays, and ThruPlay, as well as demographic breakdowns (Age, Gender, Location) per ad set.

**Analysis Steps to Simulate:**
1.  **Standard Analysis:**
    *   Calculate a "health_score" (0-100) and provide "health_score_reasoning".
    *   Write a concise "overall_summary" and list critical "key_insights".
    *   Identify "top_performers" and "underperformers" (campaign, ad set, ad).
    *   Detail specific "performance_gaps".
    *   Provide prioritized "recommendations", each with a "priority" number (1 is highest), "title", "reasoning", and "action_steps".
2.  **Advanced Analysis:**
    *   "deep_dive_analysis": 2-3 detailed insights correlating different metrics, e.g. the drop-off from Link Clicks to Conversions, or Frequency versus CTR.
    *   "audience_insights": The best and worst performing audience segments, at least one "Top Performer" and one "Underperformer", each with "audience_segment", "key_metric", "metric_value", and "suggestion".
    *   "creative_insights": Compare performance of creative types (Video, Image, Carousel) with a "trend" and "reasoning".
    *   "forecasts": 1-2 realistic forecasts with "metric", "projected_value", "timeline", and "condition".

**CRITICAL INSTRUCTION:** Your entire response MUST be a single, valid JSON object. Do not use markdown. All text must be in natural, professional Bengali.

--- START GENERATION ---
`, sheetURL)
}
