package domain

import (
	"strings"
	"time"
)

// EntityKind tags the closed set of slot value variants.
type EntityKind string

const (
	KindBoolean  EntityKind = "Boolean"
	KindString   EntityKind = "String"
	KindNumber   EntityKind = "Number"
	KindMeasure  EntityKind = "Measure"
	KindEnum     EntityKind = "Enum"
	KindTime     EntityKind = "Time"
	KindCurrency EntityKind = "Currency"
	KindDate     EntityKind = "Date"
	KindLocation EntityKind = "Location"
)

// SlotType describes one declared argument of a canonical example.
type SlotType struct {
	Kind EntityKind
	// Unit is set for Measure(unit) declarations.
	Unit string
}

// Entity is the typed internal value of one resolved slot. Only the payload
// fields matching Kind are set. A nil *Entity is the unresolved sentinel:
// the slot was absent from the request or recognition failed. The engine
// treats unresolved entries as missing arguments it must ask the user for.
type Entity struct {
	Kind EntityKind `json:"kind"`

	Bool     bool       `json:"bool,omitempty"`
	Str      string     `json:"str,omitempty"`
	Num      float64    `json:"num,omitempty"`
	Unit     string     `json:"unit,omitempty"`
	Time     *TimeOfDay `json:"time,omitempty"`
	Date     *time.Time `json:"date,omitempty"`
	Location *Location  `json:"location,omitempty"`
}

type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
	Second int `json:"second"`
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Display   string  `json:"display"`
}

func NewBoolean(v bool) *Entity { return &Entity{Kind: KindBoolean, Bool: v} }

func NewString(v string) *Entity { return &Entity{Kind: KindString, Str: v} }

func NewNumber(v float64) *Entity { return &Entity{Kind: KindNumber, Num: v} }

func NewMeasure(v float64, unit string) *Entity {
	return &Entity{Kind: KindMeasure, Num: v, Unit: unit}
}

func NewEnum(id string) *Entity { return &Entity{Kind: KindEnum, Str: id} }

func NewTime(hour, minute, second int) *Entity {
	return &Entity{Kind: KindTime, Time: &TimeOfDay{Hour: hour, Minute: minute, Second: second}}
}

func NewCurrency(value float64, unit string) *Entity {
	return &Entity{Kind: KindCurrency, Num: value, Unit: unit}
}

func NewDate(t time.Time) *Entity { return &Entity{Kind: KindDate, Date: &t} }

func NewLocation(lat, lon float64, display string) *Entity {
	return &Entity{Kind: KindLocation, Location: &Location{Latitude: lat, Longitude: lon, Display: display}}
}

// ResultMessage is a locale-formattable output message from the engine.
type ResultMessage struct {
	Text      string            `json:"text"`
	Localized map[string]string `json:"localized,omitempty"`
}

// Display returns the message text for the given BCP-47 locale, falling back
// to the primary language subtag and then to the default text.
func (m ResultMessage) Display(locale string) string {
	if s, ok := m.Localized[locale]; ok {
		return s
	}
	if i := strings.IndexByte(locale, '-'); i > 0 {
		if s, ok := m.Localized[locale[:i]]; ok {
			return s
		}
	}
	return m.Text
}
