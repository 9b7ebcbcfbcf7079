// Package pricing derives a display-ready price from a course record.
//
// Courses encode tuition in up to four overlapping schemas (legacy string or
// number, a general tuition price, per-mode monthly prices, per-mode
// per-session prices) plus an administrator override of each. The resolver
// evaluates them as an ordered priority list: the override tier first, then
// the base tier, then the legacy field, first match wins. It is a pure
// function and never fails; malformed records degrade to ContactUs.
package pricing

import (
	"sort"

	"github.com/centerplus/centerplus-landing/gateway/internal/domain"
)

// Kind tags the variant of a ResolvedPrice.
type Kind int

const (
	// KindContactUs means the record carries no usable pricing data.
	KindContactUs Kind = iota
	// KindStringLiteral is a free-form legacy price shown verbatim.
	KindStringLiteral
	// KindSingleAmount is one formatted amount, with or without a mode.
	KindSingleAmount
	// KindMultiMode is two or more per-mode amounts.
	KindMultiMode
)

// Suffixes distinguishing itemized from headline pricing. Per-mode entries
// always carry the suffix of the map they came from; a general price is
// suffixed only when the billing cycle is monthly.
const (
	SuffixPerSession = "/session"
	SuffixMonthly    = "/month"
)

// ContactUsLabel is the sentinel shown when no pricing data exists.
const ContactUsLabel = "Liên hệ"

// Entry is one resolved amount, optionally bound to a delivery mode.
type Entry struct {
	ModeLabel  string
	Amount     float64
	Currency   string
	UnitSuffix string
}

// ResolvedPrice is the tagged result of Resolve. Only the fields of the
// active Kind are meaningful.
type ResolvedPrice struct {
	Kind   Kind
	Text   string  // KindStringLiteral
	Single Entry   // KindSingleAmount
	Modes  []Entry // KindMultiMode
}

// Resolve derives the normalized price representation for a course.
// It never panics; a nil or empty record resolves to ContactUs.
func Resolve(course *domain.CourseRecord) ResolvedPrice {
	if course == nil {
		return ResolvedPrice{Kind: KindContactUs}
	}

	set := collect(course)

	if set.literal != "" {
		return ResolvedPrice{Kind: KindStringLiteral, Text: set.literal}
	}
	if len(set.entries) >= 2 {
		return ResolvedPrice{Kind: KindMultiMode, Modes: set.entries}
	}
	if len(set.entries) == 1 {
		return ResolvedPrice{Kind: KindSingleAmount, Single: set.entries[0]}
	}
	if set.general != nil {
		return ResolvedPrice{Kind: KindSingleAmount, Single: *set.general}
	}
	return ResolvedPrice{Kind: KindContactUs}
}

// priceSet is the intermediate result of one collection pass.
type priceSet struct {
	entries []Entry
	general *Entry
	literal string
}

// collect walks the precedence tiers and returns the first one with data.
func collect(course *domain.CourseRecord) priceSet {
	cycle := course.TuitionPlanBillingCycle

	// Override tier. When isOverridden is set, whatever this tier yields is
	// final; an empty override does not fall through per field.
	if ov := course.PricingOverride; ov != nil && ov.IsOverridden {
		fallback := ""
		if ov.OverriddenPrice != nil {
			fallback = ov.OverriddenPrice.Currency
		}
		entries := collectByMode(ov.OverriddenMonthlyPriceByMode, ov.OverriddenPerSessionPriceByMode, fallback)
		general := generalEntry(ov.OverriddenPrice, cycle)
		if len(entries) > 0 || general != nil {
			return priceSet{entries: entries, general: general}
		}
	}

	// Base tier.
	fallback := ""
	if course.TuitionPrice != nil {
		fallback = course.TuitionPrice.Currency
	}
	entries := collectByMode(course.TuitionPlanMonthlyByMode, course.TuitionPlanPerSessionByMode, fallback)
	general := generalEntry(course.TuitionPrice, cycle)
	if len(entries) > 0 || general != nil {
		return priceSet{entries: entries, general: general}
	}

	// Legacy fallback. A string price bypasses all formatting.
	if p := course.Price; p != nil {
		if p.IsText && p.Text != "" {
			return priceSet{literal: p.Text}
		}
		if p.IsNumeric && p.Number != 0 {
			currency := course.PriceUnit
			if currency == "" {
				currency = course.Currency
			}
			if currency == "" {
				currency = "VND"
			}
			return priceSet{general: &Entry{
				Amount:     p.Number,
				Currency:   DisplayCurrency(currency),
				UnitSuffix: generalSuffix(cycle),
			}}
		}
	}

	return priceSet{}
}

// collectByMode gathers monthly entries first, then per-session entries,
// skipping modes already present from the monthly map.
func collectByMode(monthly, perSession map[string]*domain.Money, fallbackCurrency string) []Entry {
	var entries []Entry
	seen := map[string]bool{}

	for _, mode := range orderedModes(monthly) {
		money := monthly[mode]
		if money == nil || money.Amount == 0 {
			continue
		}
		label := ModeLabel(mode)
		if seen[label] {
			continue
		}
		seen[label] = true
		entries = append(entries, Entry{
			ModeLabel:  label,
			Amount:     money.Amount,
			Currency:   DisplayCurrency(entryCurrency(money, fallbackCurrency)),
			UnitSuffix: SuffixMonthly,
		})
	}

	for _, mode := range orderedModes(perSession) {
		money := perSession[mode]
		if money == nil || money.Amount == 0 {
			continue
		}
		label := ModeLabel(mode)
		if seen[label] {
			continue
		}
		seen[label] = true
		entries = append(entries, Entry{
			ModeLabel:  label,
			Amount:     money.Amount,
			Currency:   DisplayCurrency(entryCurrency(money, fallbackCurrency)),
			UnitSuffix: SuffixPerSession,
		})
	}

	return entries
}

// generalEntry builds the headline entry from a general price field.
func generalEntry(money *domain.Money, cycle string) *Entry {
	if money == nil || money.Amount == 0 {
		return nil
	}
	return &Entry{
		Amount:     money.Amount,
		Currency:   DisplayCurrency(entryCurrency(money, "")),
		UnitSuffix: generalSuffix(cycle),
	}
}

// generalSuffix applies the headline-pricing rule: a general price is
// suffixed only when billed monthly. "once" and absent cycles get none.
func generalSuffix(cycle string) string {
	if cycle == "monthly" {
		return SuffixMonthly
	}
	return ""
}

func entryCurrency(money *domain.Money, fallback string) string {
	if money.Currency != "" {
		return money.Currency
	}
	if fallback != "" {
		return fallback
	}
	return "VND"
}

// canonicalModes fixes the collection order so "first-seen" is stable even
// though Go maps are unordered. Remaining modes follow sorted.
var canonicalModes = []string{"online", "offline", "onsite", "hybrid"}

func orderedModes(byMode map[string]*domain.Money) []string {
	if len(byMode) == 0 {
		return nil
	}
	ordered := make([]string, 0, len(byMode))
	taken := map[string]bool{}
	for _, mode := range canonicalModes {
		if _, ok := byMode[mode]; ok {
			ordered = append(ordered, mode)
			taken[mode] = true
		}
	}
	var rest []string
	for mode := range byMode {
		if !taken[mode] {
			rest = append(rest, mode)
		}
	}
	sort.Strings(rest)
	return append(ordered, rest...)
}

// ModeLabel maps a delivery-mode token to its display label. Unknown tokens
// pass through unchanged.
func ModeLabel(mode string) string {
	switch mode {
	case "online":
		return "Online"
	case "offline", "onsite":
		return "On-site"
	case "hybrid":
		return "Hybrid"
	}
	return mode
}

// DisplayCurrency maps a currency code to its display form. Unknown codes
// pass through unchanged.
func DisplayCurrency(code string) string {
	switch code {
	case "VND", "vnd":
		return "VNĐ"
	case "USD", "usd":
		return "USD"
	}
	return code
}

// Cheapest returns the entry with the strictly smallest amount; ties keep
// the first-seen entry. ok is false for an empty slice.
func Cheapest(entries []Entry) (Entry, bool) {
	if len(entries) == 0 {
		return Entry{}, false
	}
	best := entries[0]
	for _, e := range entries[1:] {
		if e.Amount < best.Amount {
			best = e
		}
	}
	return best, true
}
