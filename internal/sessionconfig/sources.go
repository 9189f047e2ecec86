package sessionconfig

import (
	"context"
	"strings"

	"callbridge/internal/observability"
)

// StaticPrompt is a PromptBuilder that always returns itself.
type StaticPrompt string

func (p StaticPrompt) BuildPrompt(context.Context, SessionContext) (string, error) {
	return string(p), nil
}

// SectionPromptBuilder joins a base prompt with one section per source.
// A failing source contributes its fallback instead.
type SectionPromptBuilder struct {
	base    string
	sources []ContextSource
	logger  *observability.Logger
}

func NewSectionPromptBuilder(base string, logger *observability.Logger, sources ...ContextSource) *SectionPromptBuilder {
	return &SectionPromptBuilder{base: base, sources: sources, logger: logger}
}

func (b *SectionPromptBuilder) BuildPrompt(ctx context.Context, sc SessionContext) (string, error) {
	sections := make([]string, 0, len(b.sources)+1)
	if base := strings.TrimSpace(b.base); base != "" {
		sections = append(sections, base)
	}

	for _, source := range b.sources {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		section, err := source.Section(ctx, sc)
		if err != nil {
			b.logger.InfoWithError(observability.WithFields(ctx, observability.Field{Key: "source", Value: source.Name()}),
				"Context source failed, using its fallback", err)
			section = source.Fallback()
		}
		if section = strings.TrimSpace(section); section != "" {
			sections = append(sections, section)
		}
	}
	return strings.Join(sections, "\n\n"), nil
}
