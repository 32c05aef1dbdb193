package factory

import (
	"fmt"
	"os"

	"github.com/rayiskander2406/vendorportal/llm"
	"github.com/rayiskander2406/vendorportal/llm/anthropic"
	"github.com/rayiskander2406/vendorportal/llm/openai"
)

const (
	DefaultAPIKeyEnv  = "VENDORPORTAL_LLM_API_KEY"
	DefaultBaseURLEnv = "VENDORPORTAL_LLM_BASE_URL"
)

type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

type option struct {
	apiKey   string
	baseURL  string
	provider Provider
}

func defaultOption() option {
	return option{
		provider: ProviderAnthropic,
		apiKey:   os.Getenv(DefaultAPIKeyEnv),
		baseURL:  os.Getenv(DefaultBaseURLEnv),
	}
}

func (o *option) apply(opts ...Option) {
	for _, opt := range opts {
		opt(o)
	}
}

type Option func(*option)

func WithProvider(provider Provider) Option {
	return func(o *option) {
		o.provider = provider
	}
}

func WithAPIKey(apiKey string) Option {
	return func(o *option) {
		o.apiKey = apiKey
	}
}

func WithBaseURL(baseURL string) Option {
	return func(o *option) {
		o.baseURL = baseURL
	}
}

func NewLLM(opts ...Option) (llm.LLM, error) {
	proOpt := defaultOption()
	proOpt.apply(opts...)

	switch proOpt.provider {
	case ProviderOpenAI:
		return openai.New(openai.Config{
			ApiKey:  proOpt.apiKey,
			BaseURL: proOpt.baseURL,
		})
	case ProviderAnthropic:
		return anthropic.New(anthropic.Config{
			ApiKey:  proOpt.apiKey,
			BaseURL: proOpt.baseURL,
		})
	default:
		return nil, fmt.Errorf("unsupported provider: %s", proOpt.provider)
	}
}
