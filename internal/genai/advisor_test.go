package genai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/shelterrights/shelterrights-api/internal/stats"
	"github.com/shelterrights/shelterrights-api/internal/testutil"
)

type stubGenerator struct {
	text   string
	err    error
	prompt string
	calls  int
}

func (s *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	s.calls++
	s.prompt = prompt
	return s.text, s.err
}

func TestHasValidKey(t *testing.T) {
	assert.False(t, HasValidKey(""))
	assert.False(t, HasValidKey("your_gemini_api_key_here"))
	assert.False(t, HasValidKey("placeholder_key"))
	assert.True(t, HasValidKey("AIza-real"))
}

func TestAdvisor_Unconfigured(t *testing.T) {
	gen := &stubGenerator{text: "should not be used"}
	a := NewAdvisorWithGenerator(gen, false, zap.NewNop(), stats.Nop{})
	ctx := context.Background()

	tcases := []struct {
		name string
		got  string
		want string
	}{
		{
			name: "chat",
			got:  a.ChatTenantRights(ctx, "Can my landlord keep my deposit?", "Texas"),
			want: "I'm sorry, I cannot provide AI assistance at the moment because the Gemini API key is not configured. Please contact the administrator.",
		},
		{
			name: "rent analysis",
			got:  a.AnalyzeRentBurden(ctx, RentFacts{Income: 50000, Rent: 1500, Location: "Austin, TX", BurdenPercentage: 36}),
			want: "Unable to provide AI analysis at this time. Please ensure your Gemini API key is correctly configured in the backend .env file.",
		},
		{
			name: "campaign description",
			got:  a.CampaignDescription(ctx, "Fix the Heat", "Chicago, IL"),
			want: `This is a placeholder description for the campaign "Fix the Heat" in Chicago, IL. Please configure the Gemini API key to generate an AI-powered description.`,
		},
		{
			name: "listing analysis",
			got:  a.AnalyzeListings(ctx, "prompt", "static analysis"),
			want: "static analysis",
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.got)
		})
	}
	assert.Zero(t, gen.calls, "generator is not called without a key")
	assert.False(t, a.Configured())
}

func TestAdvisor_ProviderFailure(t *testing.T) {
	gen := &stubGenerator{err: errors.New("quota exceeded")}
	logger, logs := testutil.ObservedLogger()
	su := new(stats.MockStatsUpdater)
	su.On("Incr", mock.Anything).Return()
	a := NewAdvisorWithGenerator(gen, true, logger, su)
	ctx := context.Background()

	assert.Equal(t, "I encountered an error while processing your request. Please try again later.",
		a.ChatTenantRights(ctx, "question", "Ohio"))
	assert.Equal(t, "AI Analysis is currently unavailable. However, your logic-based calculations above are accurate.",
		a.AnalyzeRentBurden(ctx, RentFacts{Income: 1, Rent: 1, Location: "here"}))
	assert.Equal(t, `Support our campaign for "Rent Control Now" in Portland! We are working together to improve housing conditions and protect tenant rights in our community. Join us in making a difference.`,
		a.CampaignDescription(ctx, "Rent Control Now", "Portland"))
	assert.Equal(t, "fallback", a.AnalyzeListings(ctx, "prompt", "fallback"))

	assert.Equal(t, 4, gen.calls)
	assert.Equal(t, 4, logs.FilterMessage("text generation failed").Len())
	su.AssertNumberOfCalls(t, "Incr", 12)
	su.AssertCalled(t, "Incr", stats.GenerationFailed)
}

func TestAdvisor_Success(t *testing.T) {
	gen := &stubGenerator{text: "generated"}
	a := NewAdvisorWithGenerator(gen, true, zap.NewNop(), stats.Nop{})

	assert.Equal(t, "generated", a.AnalyzeRentBurden(context.Background(), RentFacts{
		Income:           60000,
		Rent:             1500,
		Location:         "Austin, TX",
		BurdenPercentage: 30.000000000000004,
	}))
	assert.Contains(t, gen.prompt, "A person earning $60000/year pays $1500/month in rent in Austin, TX.")
	assert.Contains(t, gen.prompt, "Their rent burden is 30.0% (guideline is 30%).")

	assert.Equal(t, "generated", a.ChatTenantRights(context.Background(), "Is this legal?", "Oregon"))
	assert.Contains(t, gen.prompt, "You are a helpful tenant rights expert for Oregon.")
	assert.Contains(t, gen.prompt, `A tenant has this question: "Is this legal?"`)
	assert.Contains(t, gen.prompt, "tenant rights in Oregon. Include:")
}
