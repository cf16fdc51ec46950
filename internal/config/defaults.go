package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via
// dotfile. Values in config files override defaults, including
// explicit zero values; missing keys are left at their defaults.
// Credentials are never read from the dotfile, only from the
// environment.
type Config struct {
	Provider     ProviderConfig     `json:"provider"`
	Conversation ConversationConfig `json:"conversation"`
	Transcript   TranscriptConfig   `json:"transcript"`
	Mail         MailConfig         `json:"mail"`
}

type ProviderConfig struct {
	// Name selects the backend: "openai" or "gemini".
	Name string `json:"name"`

	// Model is the model identifier sent with every request.
	Model string `json:"model"`

	// BaseURL overrides the API endpoint; empty uses the backend
	// default. Any OpenAI-compatible gateway works here.
	BaseURL string `json:"base_url"`

	// TimeoutSeconds bounds each completion call.
	TimeoutSeconds int `json:"timeout_seconds"`
}

type ConversationConfig struct {
	// SystemPrompt seeds every conversation.
	SystemPrompt string `json:"system_prompt"`

	// MaxToolIterations bounds tool-dispatch cycles per user turn.
	MaxToolIterations int `json:"max_tool_iterations"`
}

type TranscriptConfig struct {
	// Dir is where raw completion payloads are written by
	// parley-ask. Relative paths resolve against the working
	// directory.
	Dir string `json:"dir"`
}

type MailConfig struct {
	// SMTPAddr is the host:port of the SMTP server used by the
	// send_email tool. Empty disables the tool.
	SMTPAddr string `json:"smtp_addr"`

	// From is the envelope sender address.
	From string `json:"from"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderConfig{
			Name:           "openai",
			Model:          "gpt-4o-mini",
			TimeoutSeconds: 120,
		},
		Conversation: ConversationConfig{
			SystemPrompt:      "You are a helpful assistant. Answer concisely and use the available tools when they apply.",
			MaxToolIterations: 8,
		},
		Transcript: TranscriptConfig{
			Dir: "transcripts",
		},
	}
}
