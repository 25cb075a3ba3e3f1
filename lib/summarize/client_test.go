package summarize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptToneClauses(t *testing.T) {
	neutral := Request{Text: "some text", Model: DefaultModel, Length: LengthMedium, Tone: ToneNeutral}
	formal := Request{Text: "some text", Model: DefaultModel, Length: LengthMedium, Tone: ToneFormal}

	assert.NotEqual(t, neutral.Prompt(), formal.Prompt())
	assert.Contains(t, formal.Prompt(), "Use a formal tone.")
	assert.NotContains(t, neutral.Prompt(), "Use a formal tone.")

	assert.Contains(t, Request{Text: "x", Tone: ToneCasual}.Prompt(), "Use a casual, conversational tone.")
	assert.Contains(t, Request{Text: "x", Tone: ToneTechnical}.Prompt(), "Use technical language and precise terminology.")
	assert.Contains(t, Request{Text: "x", Tone: ToneSimple}.Prompt(), "Use simple, easy-to-understand language.")
}

func TestPromptIncludesTextAndPreferences(t *testing.T) {
	req := Request{Text: "<p>Visit Paris</p>", Model: DefaultModel, Length: LengthDetailed, Tone: ToneNeutral}

	prompt := req.Prompt()
	assert.Contains(t, prompt, "<p>Visit Paris</p>")
	assert.Contains(t, prompt, "detailed length")
	assert.Contains(t, prompt, "neutral tone")
}

func TestMaxOutputTokens(t *testing.T) {
	tests := []struct {
		length string
		want   int32
	}{
		{LengthShort, 256},
		{LengthMedium, 512},
		{LengthDetailed, 1536},
		{"", 512},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, Request{Length: tc.length}.MaxOutputTokens(), "length %q", tc.length)
	}

	short := Request{Length: LengthShort}
	detailed := Request{Length: LengthDetailed}
	assert.Less(t, short.MaxOutputTokens(), detailed.MaxOutputTokens())
}

func TestApplyDefaults(t *testing.T) {
	req := Request{Text: "hello"}
	req.ApplyDefaults()
	assert.Equal(t, DefaultModel, req.Model)
	assert.Equal(t, LengthMedium, req.Length)
	assert.Equal(t, ToneNeutral, req.Tone)

	chosen := Request{Text: "hello", Model: "gemini-1.5-flash", Length: LengthShort, Tone: ToneSimple}
	chosen.ApplyDefaults()
	assert.Equal(t, "gemini-1.5-flash", chosen.Model)
	assert.Equal(t, LengthShort, chosen.Length)
	assert.Equal(t, ToneSimple, chosen.Tone)
}

func TestValidate(t *testing.T) {
	valid := Request{Text: "hello", Model: DefaultModel, Length: LengthMedium, Tone: ToneNeutral}
	assert.NoError(t, valid.Validate())

	missingText := valid
	missingText.Text = ""
	assert.Error(t, missingText.Validate())

	unknownModel := valid
	unknownModel.Model = "gpt-4"
	assert.Error(t, unknownModel.Validate())

	unknownLength := valid
	unknownLength.Length = "huge"
	assert.Error(t, unknownLength.Validate())

	unknownTone := valid
	unknownTone.Tone = "sarcastic"
	assert.Error(t, unknownTone.Validate())
}

func TestModelsListing(t *testing.T) {
	models := Models()
	require.Len(t, models, 2)

	ids := []string{models[0].ID, models[1].ID}
	assert.Contains(t, ids, "gemini-1.5-pro")
	assert.Contains(t, ids, "gemini-1.5-flash")
	for _, m := range models {
		assert.NotEmpty(t, m.Name)
	}
}
