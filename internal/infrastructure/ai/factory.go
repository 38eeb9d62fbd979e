package ai

import (
	"fmt"
	"sort"

	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/application/chat/aiprovider"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/shared/config"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/shared/logger"
)

// BuildProviders constructs the configured model backends in priority
// order (lowest priority value first).
func BuildProviders(cfg *config.AIConfig, log logger.Interface) ([]aiprovider.Provider, error) {
	if len(cfg.Providers) == 0 {
		return nil, fmt.Errorf("no model providers configured")
	}

	sorted := make([]config.ProviderConfig, len(cfg.Providers))
	copy(sorted, cfg.Providers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})

	providers := make([]aiprovider.Provider, 0, len(sorted))
	for _, pc := range sorted {
		caps, err := parseCapabilities(pc.Capabilities)
		if err != nil {
			return nil, fmt.Errorf("provider %s: %w", pc.ID, err)
		}

		providers = append(providers, NewGeminiProvider(GeminiOptions{
			ID:           pc.ID,
			Model:        pc.Model,
			APIKey:       cfg.GeminiAPIKey,
			Capabilities: caps,
			Logger:       log.Named("ai." + pc.ID),
		}))
	}

	return providers, nil
}

func parseCapabilities(names []string) ([]aiprovider.Capability, error) {
	caps := make([]aiprovider.Capability, 0, len(names))
	for _, name := range names {
		switch aiprovider.Capability(name) {
		case aiprovider.CapabilityText, aiprovider.CapabilityVision, aiprovider.CapabilityAudio:
			caps = append(caps, aiprovider.Capability(name))
		default:
			return nil, fmt.Errorf("unknown capability %q", name)
		}
	}
	return caps, nil
}
