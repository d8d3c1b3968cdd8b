package models

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerationRequest_Validate(t *testing.T) {
	valid := DefaultGenerationRequest()
	valid.Topic = "coffee"

	tests := []struct {
		name      string
		mutate    func(r *GenerationRequest)
		wantField string
	}{
		{name: "valid", mutate: func(r *GenerationRequest) {}},
		{name: "empty topic", mutate: func(r *GenerationRequest) { r.Topic = "" }, wantField: "topic"},
		{name: "blank topic", mutate: func(r *GenerationRequest) { r.Topic = "   " }, wantField: "topic"},
		{name: "topic checked first", mutate: func(r *GenerationRequest) { r.Topic = ""; r.ImageCount = 9 }, wantField: "topic"},
		{name: "bad platform", mutate: func(r *GenerationRequest) { r.Platform = "myspace" }, wantField: "platform"},
		{name: "zero images", mutate: func(r *GenerationRequest) { r.ImageCount = 0 }, wantField: "imageCount"},
		{name: "four images", mutate: func(r *GenerationRequest) { r.ImageCount = 4 }, wantField: "imageCount"},
		{name: "bad length", mutate: func(r *GenerationRequest) { r.PostLength = "epic" }, wantField: "postLength"},
		{name: "temperature low", mutate: func(r *GenerationRequest) { r.Temperature = -0.1 }, wantField: "temperature"},
		{name: "temperature high", mutate: func(r *GenerationRequest) { r.Temperature = 1.01 }, wantField: "temperature"},
		{name: "temperature NaN", mutate: func(r *GenerationRequest) { r.Temperature = math.NaN() }, wantField: "temperature"},
		{name: "temperature bounds", mutate: func(r *GenerationRequest) { r.Temperature = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			err := r.Validate()
			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "want ValidationError, got %v", err)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestGenerationRequest_EmptyTopicMessage(t *testing.T) {
	err := DefaultGenerationRequest().Validate()
	require.EqualError(t, err, "Please enter a topic")
}

func TestGenerationRequest_WireShape(t *testing.T) {
	r := GenerationRequest{Topic: "coffee", Platform: PlatformLinkedIn, ImageCount: 2, PostLength: PostLengthMedium, Temperature: 0.7}
	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"topic":"coffee","platform":"linkedin","imageCount":2,"postLength":"medium","temperature":0.7}`, string(b))
}

func TestGenerationResult_Decode(t *testing.T) {
	var res GenerationResult
	require.NoError(t, json.Unmarshal([]byte(`{"text":"hello","images":["a.jpg","b.jpg"],"engagement_score":82}`), &res))
	assert.Equal(t, "hello", res.Text)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, res.Images)
	assert.Equal(t, 82.0, res.EngagementScore)

	var noImages GenerationResult
	require.NoError(t, json.Unmarshal([]byte(`{"text":"x","engagement_score":10}`), &noImages))
	assert.Nil(t, noImages.Images)
}

func TestScorePercent(t *testing.T) {
	assert.Equal(t, 82, ScorePercent(82))
	assert.Equal(t, 83, ScorePercent(82.5))
	assert.Equal(t, 0, ScorePercent(-3))
	assert.Equal(t, 100, ScorePercent(140))
}

func TestProviderKeys_Complete(t *testing.T) {
	assert.True(t, ProviderKeys{HuggingFace: "hf", Gemini: "gm"}.Complete())
	assert.False(t, ProviderKeys{HuggingFace: "hf"}.Complete())
	assert.False(t, ProviderKeys{Gemini: "gm"}.Complete())
	assert.False(t, ProviderKeys{}.Complete())
}

func TestSession_Authenticated(t *testing.T) {
	assert.False(t, Session{}.Authenticated())
	assert.True(t, Session{Token: "t"}.Authenticated())
}
