package generator

import (
	"context"
	"strings"

	"google.golang.org/genai"
)

// APIKeyEnv は API キーを読み込む環境変数名です。
const APIKeyEnv = "GEMINI_API_KEY"

// NewGenAIClient は Gemini API バックエンドの genai クライアントを作成します。
// API キーが空の場合は *ConfigurationError を返します。
func NewGenAIClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, &ConfigurationError{Key: APIKeyEnv}
	}
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
}
