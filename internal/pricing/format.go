package pricing

import (
	"math"
	"strconv"
	"strings"

	"github.com/centerplus/centerplus-landing/gateway/internal/domain"
)

// FormatAmount renders a number with Vietnamese thousands grouping
// (dot separators, comma for a fractional part): 1234567 -> "1.234.567".
func FormatAmount(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	whole := math.Trunc(amount)
	frac := amount - whole

	digits := strconv.FormatFloat(whole, 'f', 0, 64)
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}

	out := b.String()
	if frac > 1e-9 {
		fracDigits := strconv.FormatFloat(frac, 'f', 2, 64)
		out += "," + strings.TrimPrefix(fracDigits, "0.")
	}
	if negative {
		out = "-" + out
	}
	return out
}

// Format renders an entry as the landing page shows it: "500.000 VNĐ/month".
func (e Entry) Format() string {
	return FormatAmount(e.Amount) + " " + e.Currency + e.UnitSuffix
}

// DisplayText renders the single-line form of a resolved price. MultiMode
// entries are joined with a separator; callers that render per-mode rows
// should read Modes directly.
func (p ResolvedPrice) DisplayText() string {
	switch p.Kind {
	case KindStringLiteral:
		return p.Text
	case KindSingleAmount:
		return p.Single.Format()
	case KindMultiMode:
		parts := make([]string, 0, len(p.Modes))
		for _, e := range p.Modes {
			parts = append(parts, e.ModeLabel+": "+e.Format())
		}
		return strings.Join(parts, " · ")
	}
	return ContactUsLabel
}

// Highlight is the compact price line shown on a course card header.
type Highlight struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ResolveHighlight picks the summary price for a course: the headline price
// when one exists, the literal text, or the cheapest per-mode entry with a
// "Từ " prefix when more than one mode is priced.
func ResolveHighlight(course *domain.CourseRecord) *Highlight {
	if course == nil {
		return nil
	}
	set := collect(course)

	if set.general != nil {
		if course.TuitionPlanBillingCycle == "monthly" {
			return &Highlight{Label: "Học phí theo chu kỳ", Value: set.general.Format()}
		}
		return &Highlight{Label: "Học phí khóa học", Value: set.general.Format()}
	}

	if set.literal != "" {
		return &Highlight{Label: "Học phí", Value: set.literal}
	}

	if cheapest, ok := Cheapest(set.entries); ok {
		prefix := ""
		if len(set.entries) > 1 {
			prefix = "Từ "
		}
		label := "Học phí theo tháng"
		if cheapest.UnitSuffix == SuffixPerSession {
			label = "Học phí theo buổi"
		}
		return &Highlight{Label: label, Value: prefix + cheapest.Format()}
	}

	return nil
}
