package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/seu-repo/genie-bridge/internal/domain"
	"github.com/seu-repo/genie-bridge/internal/observability/telemetry"
	"github.com/seu-repo/genie-bridge/internal/ports"
)

// Geocoder hits ranked above this are larger than a city (states,
// countries) and are never accepted as location slot values.
const maxLocationRank = 16

// Resolver converts platform slots into typed entities, one strategy per
// slot variant. The platform's own entity resolution is unreliable, so
// everything beyond booleans and enums is re-recognized through the
// tokenizer and geocoder collaborators.
type Resolver struct {
	tokenizer ports.Tokenizer
	location  ports.LocationResolver
	log       *zap.Logger
	now       func() time.Time
}

func NewResolver(tokenizer ports.Tokenizer, location ports.LocationResolver, log *zap.Logger) *Resolver {
	return &Resolver{
		tokenizer: tokenizer,
		location:  location,
		log:       log,
		now:       time.Now,
	}
}

// WithClock overrides the clock used for date defaulting.
func (r *Resolver) WithClock(now func() time.Time) *Resolver {
	r.now = now
	return r
}

// SlotKey is the synthetic entity key for the slot at position idx.
func SlotKey(idx int) string {
	return fmt.Sprintf("SLOT_%d", idx)
}

// ResolveSlots resolves every named slot independently and concurrently.
// The result maps SLOT_<index> (index = position in slotNames) to the typed
// entity, or to nil when the slot is absent from the payload or recognition
// failed. A slot absent from the payload never touches a collaborator.
func (r *Resolver) ResolveSlots(ctx context.Context, locale string, slotNames []string, slotTypes map[string]domain.SlotType, slots map[string]domain.Slot) (map[string]*domain.Entity, error) {
	language := LocaleToLanguage(locale)
	resolved := make([]*domain.Entity, len(slotNames))

	g, gctx := errgroup.WithContext(ctx)
	for idx, name := range slotNames {
		slot, present := slots[name]
		if !present {
			telemetry.SlotResolutionsTotal.WithLabelValues(string(slotTypes[name].Kind), "absent").Inc()
			continue
		}
		slotType := slotTypes[name]

		idx := idx
		g.Go(func() error {
			entity, err := r.resolveSlot(gctx, language, slotType, slot)
			if err != nil {
				telemetry.SlotResolutionsTotal.WithLabelValues(string(slotType.Kind), "error").Inc()
				return err
			}
			if entity == nil {
				telemetry.SlotResolutionsTotal.WithLabelValues(string(slotType.Kind), "unresolved").Inc()
			} else {
				telemetry.SlotResolutionsTotal.WithLabelValues(string(slotType.Kind), "resolved").Inc()
			}
			resolved[idx] = entity
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	entities := make(map[string]*domain.Entity, len(slotNames))
	for idx := range slotNames {
		entities[SlotKey(idx)] = resolved[idx]
	}
	return entities, nil
}

func (r *Resolver) resolveSlot(ctx context.Context, language string, slotType domain.SlotType, slot domain.Slot) (*domain.Entity, error) {
	switch slotType.Kind {
	case domain.KindBoolean:
		id, ok := firstResolvedID(slot)
		if !ok {
			return nil, nil
		}
		return domain.NewBoolean(id == "true"), nil

	case domain.KindString:
		return domain.NewString(slot.Value), nil

	case domain.KindNumber:
		return r.resolveNumber(ctx, language, slot.Value)

	case domain.KindMeasure:
		return r.resolveMeasure(ctx, language, slot.Value)

	case domain.KindEnum:
		id, ok := firstResolvedID(slot)
		if !ok {
			return nil, nil
		}
		return domain.NewEnum(id), nil

	case domain.KindTime:
		return r.resolveTime(ctx, language, slot.Value)

	case domain.KindCurrency:
		return r.resolveCurrency(ctx, language, slot.Value)

	case domain.KindDate:
		return r.resolveDate(ctx, language, slot.Value)

	case domain.KindLocation:
		return r.resolveLocation(ctx, language, slot.Value)

	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedSlotType, slotType.Kind)
	}
}

// firstResolvedID reads the platform's resolved-value list for the first
// authority that produced any values.
func firstResolvedID(slot domain.Slot) (string, bool) {
	if slot.Resolutions == nil || len(slot.Resolutions.PerAuthority) == 0 {
		return "", false
	}
	values := slot.Resolutions.PerAuthority[0].Values
	if len(values) == 0 {
		return "", false
	}
	return values[0].Value.ID, true
}

func (r *Resolver) resolveNumber(ctx context.Context, language, text string) (*domain.Entity, error) {
	tokenized, err := r.tokenizer.Tokenize(ctx, language, text)
	if err != nil {
		return nil, err
	}
	num, ok := numberEntity(tokenized)
	if !ok {
		return nil, nil
	}
	return domain.NewNumber(num), nil
}

func (r *Resolver) resolveMeasure(ctx context.Context, language, text string) (*domain.Entity, error) {
	tokenized, err := r.tokenizer.Tokenize(ctx, language, text)
	if err != nil {
		return nil, err
	}
	num, ok := numberEntity(tokenized)
	if !ok {
		return nil, nil
	}

	// The tokenizer has no unit model: take the token right after the
	// detected number and hope it is one.
	for i := 0; i < len(tokenized.Tokens)-1; i++ {
		if tokenized.Tokens[i] == "NUMBER_0" {
			return domain.NewMeasure(num, tokenized.Tokens[i+1]), nil
		}
	}
	return nil, nil
}

func (r *Resolver) resolveTime(ctx context.Context, language, text string) (*domain.Entity, error) {
	tokenized, err := r.tokenizer.Tokenize(ctx, language, text)
	if err != nil {
		return nil, err
	}
	raw, ok := tokenized.Entities["TIME_0"]
	if !ok {
		return nil, nil
	}
	var t struct {
		Hour   int `json:"hour"`
		Minute int `json:"minute"`
		Second int `json:"second"`
	}
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("decode time entity: %w", err)
	}
	return domain.NewTime(t.Hour, t.Minute, t.Second), nil
}

func (r *Resolver) resolveCurrency(ctx context.Context, language, text string) (*domain.Entity, error) {
	tokenized, err := r.tokenizer.Tokenize(ctx, language, text)
	if err != nil {
		return nil, err
	}
	raw, ok := tokenized.Entities["CURRENCY_0"]
	if !ok {
		return nil, nil
	}
	var c struct {
		Value float64 `json:"value"`
		Unit  string  `json:"unit"`
	}
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode currency entity: %w", err)
	}
	return domain.NewCurrency(c.Value, c.Unit), nil
}

// dateEntity carries the calendar fields the tokenizer detected. Fields
// default to -1 so an absent field is indistinguishable from a negative
// one, and both fall back to the current moment's component.
type dateEntity struct {
	Year   int     `json:"year"`
	Month  int     `json:"month"`
	Day    int     `json:"day"`
	Hour   int     `json:"hour"`
	Minute int     `json:"minute"`
	Second float64 `json:"second"`
}

func (r *Resolver) resolveDate(ctx context.Context, language, text string) (*domain.Entity, error) {
	tokenized, err := r.tokenizer.Tokenize(ctx, language, text)
	if err != nil {
		return nil, err
	}
	raw, ok := tokenized.Entities["DATE_0"]
	if !ok {
		return nil, nil
	}
	d := dateEntity{Year: -1, Month: -1, Day: -1, Hour: -1, Minute: -1, Second: -1}
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decode date entity: %w", err)
	}
	return domain.NewDate(dateFromEntity(d, r.now())), nil
}

// dateFromEntity builds the concrete date, defaulting every missing or
// negative field independently from the corresponding component of now.
// Fractional seconds become milliseconds.
func dateFromEntity(d dateEntity, now time.Time) time.Time {
	year := d.Year
	if year < 0 {
		year = now.Year()
	}
	month := d.Month
	if month < 0 {
		month = int(now.Month())
	}
	day := d.Day
	if day < 0 {
		day = now.Day()
	}
	hour := d.Hour
	if hour < 0 {
		hour = now.Hour()
	}
	minute := d.Minute
	if minute < 0 {
		minute = now.Minute()
	}
	second := d.Second
	if second < 0 {
		second = float64(now.Second())
	}
	whole := int(second)
	millis := int((second - float64(whole)) * 1000)

	return time.Date(year, time.Month(month), day, hour, minute, whole, millis*int(time.Millisecond), now.Location())
}

func (r *Resolver) resolveLocation(ctx context.Context, language, text string) (*domain.Entity, error) {
	candidates, err := r.location.Resolve(ctx, language, text)
	if err != nil {
		return nil, err
	}
	for _, c := range candidates {
		// Skip areas larger than a city.
		if c.Rank > maxLocationRank {
			continue
		}
		return domain.NewLocation(c.Latitude, c.Longitude, c.Display), nil
	}
	return nil, nil
}

func numberEntity(tokenized *ports.TokenizeResult) (float64, bool) {
	raw, ok := tokenized.Entities["NUMBER_0"]
	if !ok {
		return 0, false
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, false
	}
	return n, true
}
