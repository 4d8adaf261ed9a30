package generator

import (
	"context"

	"google.golang.org/genai"
)

// --- Mocks ---

// mockAIClient は ContentGenerator のテスト用モックです。
type mockAIClient struct {
	generateFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

	calls        int
	lastModel    string
	lastContents []*genai.Content
	lastConfig   *genai.GenerateContentConfig
}

func (m *mockAIClient) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.calls++
	m.lastModel = model
	m.lastContents = contents
	m.lastConfig = config
	if m.generateFunc != nil {
		return m.generateFunc(ctx, model, contents, config)
	}
	return imageResponse([]byte("fake")), nil
}

// imageResponse はインライン画像1件を含むレスポンスを作ります。
func imageResponse(data []byte) *genai.GenerateContentResponse {
	return responseWithParts(&genai.Part{InlineData: &genai.Blob{MIMEType: "image/png", Data: data}})
}

func responseWithParts(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Role: genai.RoleModel, Parts: parts},
		}},
	}
}
