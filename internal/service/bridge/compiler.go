package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/genie-bridge/internal/domain"
	"github.com/seu-repo/genie-bridge/internal/observability/telemetry"
	"github.com/seu-repo/genie-bridge/internal/ports"
)

// Compiler turns a database-backed intent into an executable command:
// canonical example lookup, slot resolution, argument binding,
// serialization.
type Compiler struct {
	examples ports.ExampleRepository
	resolver *Resolver
	cache    ports.Cache
	cacheTTL time.Duration
	log      *zap.Logger
}

func NewCompiler(examples ports.ExampleRepository, resolver *Resolver, cache ports.Cache, cacheTTL time.Duration, log *zap.Logger) *Compiler {
	return &Compiler{
		examples: examples,
		resolver: resolver,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

// Compile resolves the platform slots against the canonical example for
// (language(locale), device, name) and serializes the bound program.
// Resolution needs the example's type descriptors, so the lookup always
// precedes it.
func (c *Compiler) Compile(ctx context.Context, locale, device, name string, slots map[string]domain.Slot) (*domain.CompiledCommand, error) {
	language := LocaleToLanguage(locale)

	example, err := c.lookupExample(ctx, language, device, name)
	if err != nil {
		return nil, err
	}

	parsed, err := ParseTargetCode(example.TargetCode)
	if err != nil {
		return nil, fmt.Errorf("example %d: %w", example.ID, err)
	}

	entities, err := c.resolver.ResolveSlots(ctx, locale, parsed.ArgNames, parsed.ArgTypes, slots)
	if err != nil {
		return nil, err
	}

	return &domain.CompiledCommand{
		ExampleID: example.ID,
		Code:      parsed.Bind(),
		Entities:  entities,
	}, nil
}

func (c *Compiler) lookupExample(ctx context.Context, language, device, name string) (*domain.CanonicalExample, error) {
	key := fmt.Sprintf("example:%s:%s:%s", language, device, name)

	if cached, err := c.cache.Get(ctx, key); err == nil && cached != "" {
		var example domain.CanonicalExample
		if err := json.Unmarshal([]byte(cached), &example); err == nil {
			telemetry.ExampleLookupsTotal.WithLabelValues("cache").Inc()
			return &example, nil
		}
		c.log.Warn("Discarding corrupt cached example", zap.String("key", key))
	}

	example, err := c.examples.GetByIntentName(ctx, language, device, name)
	if err != nil {
		return nil, fmt.Errorf("example lookup: %w", err)
	}
	if example == nil {
		telemetry.ExampleLookupsTotal.WithLabelValues("miss").Inc()
		return nil, fmt.Errorf("%w: %s.%s (%s)", domain.ErrUnknownIntent, device, name, language)
	}
	telemetry.ExampleLookupsTotal.WithLabelValues("database").Inc()

	if encoded, err := json.Marshal(example); err == nil {
		if err := c.cache.Set(ctx, key, string(encoded), c.cacheTTL); err != nil {
			c.log.Warn("Failed to cache example", zap.String("key", key), zap.Error(err))
		}
	}

	return example, nil
}
