package config

import (
	"fmt"
	"strings"
)

// Validate checks config values for correctness.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	var errs []string

	switch c.Provider.Name {
	case "openai", "gemini":
	default:
		errs = append(errs, fmt.Sprintf("provider.name must be \"openai\" or \"gemini\", got %q", c.Provider.Name))
	}
	if c.Provider.Model == "" {
		errs = append(errs, "provider.model must not be empty")
	}
	if c.Provider.TimeoutSeconds < 1 {
		errs = append(errs, "provider.timeout_seconds must be >= 1")
	}

	if c.Conversation.SystemPrompt == "" {
		errs = append(errs, "conversation.system_prompt must not be empty")
	}
	if c.Conversation.MaxToolIterations < 1 {
		errs = append(errs, "conversation.max_tool_iterations must be >= 1")
	}

	if c.Mail.SMTPAddr != "" {
		if !strings.Contains(c.Mail.SMTPAddr, ":") {
			errs = append(errs, "mail.smtp_addr must be host:port")
		}
		if c.Mail.From == "" {
			errs = append(errs, "mail.from must be set when mail.smtp_addr is set")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}
