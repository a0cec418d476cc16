package genai

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/shelterrights/shelterrights-api/internal/config"
	"github.com/shelterrights/shelterrights-api/internal/stats"
)

const (
	chatUnconfigured = "I'm sorry, I cannot provide AI assistance at the moment because the Gemini API key is not configured. Please contact the administrator."
	chatFailed       = "I encountered an error while processing your request. Please try again later."

	analysisUnconfigured = "Unable to provide AI analysis at this time. Please ensure your Gemini API key is correctly configured in the backend .env file."
	analysisFailed       = "AI Analysis is currently unavailable. However, your logic-based calculations above are accurate."
)

// HasValidKey rejects empty keys and the placeholders shipped in example
// env files.
func HasValidKey(key string) bool {
	switch key {
	case "", "your_gemini_api_key_here", "placeholder_key":
		return false
	}
	return true
}

// Advisor produces the assistant texts. It never fails: when generation is
// not configured or the provider errors, a fixed fallback is returned.
type Advisor struct {
	gen        Generator
	configured bool
	logger     *zap.Logger
	stats      stats.StatsProvider
}

func NewAdvisor(cfg config.GeminiConfig, logger *zap.Logger, su stats.StatsProvider) *Advisor {
	return NewAdvisorWithGenerator(NewGeminiClient(cfg, logger), HasValidKey(cfg.APIKey), logger, su)
}

func NewAdvisorWithGenerator(gen Generator, configured bool, logger *zap.Logger, su stats.StatsProvider) *Advisor {
	return &Advisor{
		gen:        gen,
		configured: configured,
		logger:     logger,
		stats:      su,
	}
}

// Configured reports whether a usable API key is present.
func (a *Advisor) Configured() bool {
	return a.configured
}

func (a *Advisor) generate(ctx context.Context, op, prompt, unconfigured, failed string) string {
	if !a.configured {
		a.stats.Incr(stats.FallbackResponses)
		return unconfigured
	}

	a.stats.Incr(stats.GenerationCalls)
	text, err := a.gen.Generate(ctx, prompt)
	if err != nil {
		a.stats.Incr(stats.GenerationFailed)
		a.stats.Incr(stats.FallbackResponses)
		a.logger.Warn("text generation failed", zap.String("op", op), zap.Error(err))
		return failed
	}
	return text
}

func (a *Advisor) ChatTenantRights(ctx context.Context, message, state string) string {
	prompt := fmt.Sprintf(`You are a helpful tenant rights expert for %[1]s.
A tenant has this question: "%[2]s"

Provide accurate, actionable advice about tenant rights in %[1]s. Include:
1. A clear answer to their question
2. Relevant laws or regulations (if applicable)
3. Actionable next steps
4. When to seek legal help

Keep your response friendly, clear, and under 300 words.`, state, message)

	return a.generate(ctx, "chat", prompt, chatUnconfigured, chatFailed)
}

type RentFacts struct {
	Income           float64
	Rent             float64
	Location         string
	BurdenPercentage float64
}

func (a *Advisor) AnalyzeRentBurden(ctx context.Context, f RentFacts) string {
	prompt := fmt.Sprintf(`A person earning $%s/year pays $%s/month in rent in %s.
Their rent burden is %.1f%% (guideline is 30%%).

Provide a 2-paragraph analysis:
1. What this means for their financial health
2. Specific suggestions to improve their situation

Be empathetic, practical, and under 200 words.`, plain(f.Income), plain(f.Rent), f.Location, f.BurdenPercentage)

	return a.generate(ctx, "rent_analysis", prompt, analysisUnconfigured, analysisFailed)
}

func (a *Advisor) CampaignDescription(ctx context.Context, title, location string) string {
	prompt := fmt.Sprintf(`Generate a compelling 2-3 paragraph description for a tenant rights campaign titled "%s" in %s.

Include:
- Why this matters
- What change is being sought
- Call to action for supporters

Keep it under 250 words, passionate but professional.`, title, location)

	unconfigured := fmt.Sprintf(`This is a placeholder description for the campaign "%s" in %s. Please configure the Gemini API key to generate an AI-powered description.`, title, location)
	failed := fmt.Sprintf(`Support our campaign for "%s" in %s! We are working together to improve housing conditions and protect tenant rights in our community. Join us in making a difference.`, title, location)

	return a.generate(ctx, "campaign_description", prompt, unconfigured, failed)
}

// AnalyzeListings returns generated commentary for a listing search, or
// fallback when none can be produced.
func (a *Advisor) AnalyzeListings(ctx context.Context, prompt, fallback string) string {
	return a.generate(ctx, "listing_analysis", prompt, fallback, fallback)
}

func plain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
