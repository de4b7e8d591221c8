// Package config holds the runtime configuration for the evaluation harness.
package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is built once at process start from the environment and passed
// into each client's constructor. Request logic never reads the
// environment directly.
type Config struct {
	// CopilotInitURL is the session-creation endpoint of the chat backend.
	CopilotInitURL string `env:"COPILOT_INIT"`
	// CopilotChatURL is the message-submission endpoint of the chat backend.
	CopilotChatURL string `env:"COPILOT_CHAT"`
	// OpenAIAPIKey authenticates judge calls. Its absence is fatal only
	// for the corpus-evaluation path; the per-row path surfaces it as a
	// judge-call failure.
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`

	// PollInterval is the sleep between activity-feed polls.
	PollInterval time.Duration `env:"COPILOT_POLL_INTERVAL,default=100ms"`
	// MaxPolls caps the number of feed polls for a turn that never
	// produces message text (~30s at the default interval).
	MaxPolls int `env:"COPILOT_MAX_POLLS,default=300"`
	// LatencyOffset is subtracted from the measured response time to
	// correct for the average capture delay of interval polling.
	LatencyOffset time.Duration `env:"COPILOT_LATENCY_OFFSET,default=50ms"`

	JudgeModel       string  `env:"JUDGE_MODEL,default=gpt-4o"`
	JudgeTemperature float64 `env:"JUDGE_TEMPERATURE,default=0.2"`
}

// Load reads the configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
