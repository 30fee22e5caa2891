// Package render formats completed analyses for terminal, JSON and markdown
// output. Rendering is read-only over the report structs; every figure shown
// is either stored on a report or derived through its accessor methods.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/wonny/quickscope/internal/analyzer"
	"github.com/wonny/quickscope/internal/contracts"
)

// Format selects an output renderer.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// ParseFormat validates a user-supplied format string.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON, FormatMarkdown:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown output format %q (want text|json|markdown)", s)
}

// Render writes one analysis to w in the requested format.
func Render(w io.Writer, a *analyzer.Analysis, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	case FormatMarkdown:
		return renderMarkdown(w, a)
	default:
		return renderText(w, a)
	}
}

// RenderBatch writes a slice of batch results. JSON output is a single array;
// the other formats concatenate per-ticker sections, with failures reported
// inline.
func RenderBatch(w io.Writer, results []analyzer.Result, format Format) error {
	if format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		out := make([]map[string]interface{}, len(results))
		for i, r := range results {
			entry := map[string]interface{}{"ticker": r.Ticker}
			if r.Err != nil {
				entry["error"] = r.Err.Error()
			} else {
				entry["analysis"] = r.Analysis
			}
			out[i] = entry
		}
		return enc.Encode(out)
	}

	for _, r := range results {
		if r.Err != nil {
			if _, err := fmt.Fprintf(w, "%s: analysis failed: %v\n\n", r.Ticker, r.Err); err != nil {
				return err
			}
			continue
		}
		if err := Render(w, r.Analysis, format); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

func renderText(w io.Writer, a *analyzer.Analysis) error {
	var b strings.Builder

	f := a.Fundamental
	s := a.Sentiment
	r := a.Recommendation

	fmt.Fprintf(&b, "%s  (generated %s, config %s)\n",
		a.Ticker, a.GeneratedAt.Format("2006-01-02 15:04 MST"), shortHash(a.ConfigHash))
	fmt.Fprintf(&b, "  price %.2f  intrinsic %.2f (%s)  upside %+.1f%%\n",
		f.CurrentPrice, f.IntrinsicValuePerShare, f.PrimaryMethod, f.UpsidePct()*100)
	fmt.Fprintf(&b, "  relative score %+d  health %.0f/100\n", f.RelativeValuationScore, f.HealthScore)
	if g := f.Growth; g != nil {
		fmt.Fprintf(&b, "  growth: %s\n", growthLine(g))
	}
	fmt.Fprintf(&b, "  sentiment %+.2f (news %+.2f/%d, analysts %+.2f/%d, trend %s)%s\n",
		s.Combined(), s.NewsScore, s.NewsCount, s.AnalystScore, s.AnalystCount,
		s.Trend, reducedTag(s))

	fmt.Fprintf(&b, "  action: %s (%s / %s, confidence %s)\n",
		strings.ToUpper(string(r.Action)), r.Profile, r.Strategy, r.Confidence)
	if r.Action == contracts.TradeBuy {
		fmt.Fprintf(&b, "    size %.0f  entry %.2f-%.2f  stop %.2f  target %.2f  r/r %.2f\n",
			r.PositionSize, r.EntryRange.Low, r.EntryRange.High, r.StopLoss, r.TakeProfit, r.RiskRewardRatio)
	}
	if r.Overlay != nil {
		fmt.Fprintf(&b, "    overlay: %s\n", overlayLine(r.Overlay))
	}
	for _, note := range r.Notes {
		fmt.Fprintf(&b, "    note: %s\n", note)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func renderMarkdown(w io.Writer, a *analyzer.Analysis) error {
	var b strings.Builder

	f := a.Fundamental
	s := a.Sentiment
	r := a.Recommendation

	fmt.Fprintf(&b, "## %s\n\n", a.Ticker)
	fmt.Fprintf(&b, "Generated %s, config `%s`\n\n",
		a.GeneratedAt.Format("2006-01-02 15:04 MST"), shortHash(a.ConfigHash))

	fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Price | %.2f |\n", f.CurrentPrice)
	fmt.Fprintf(&b, "| Intrinsic value (%s) | %.2f |\n", f.PrimaryMethod, f.IntrinsicValuePerShare)
	fmt.Fprintf(&b, "| Upside | %+.1f%% |\n", f.UpsidePct()*100)
	fmt.Fprintf(&b, "| Relative valuation | %+d |\n", f.RelativeValuationScore)
	fmt.Fprintf(&b, "| Health score | %.0f/100 |\n", f.HealthScore)
	if g := f.Growth; g != nil {
		fmt.Fprintf(&b, "| Growth | %s |\n", growthLine(g))
	}
	fmt.Fprintf(&b, "| Sentiment | %+.2f (trend %s)%s |\n", s.Combined(), s.Trend, reducedTag(s))
	fmt.Fprintf(&b, "\n")

	fmt.Fprintf(&b, "**Action: %s** (%s / %s, confidence %s)\n\n",
		strings.ToUpper(string(r.Action)), r.Profile, r.Strategy, r.Confidence)
	if r.Action == contracts.TradeBuy {
		fmt.Fprintf(&b, "- Position size: %.0f\n", r.PositionSize)
		fmt.Fprintf(&b, "- Entry: %.2f to %.2f\n", r.EntryRange.Low, r.EntryRange.High)
		fmt.Fprintf(&b, "- Stop loss: %.2f\n", r.StopLoss)
		fmt.Fprintf(&b, "- Take profit: %.2f\n", r.TakeProfit)
		fmt.Fprintf(&b, "- Risk/reward: %.2f\n", r.RiskRewardRatio)
	}
	if r.Overlay != nil {
		fmt.Fprintf(&b, "- Overlay: %s\n", overlayLine(r.Overlay))
	}
	for _, note := range r.Notes {
		fmt.Fprintf(&b, "- Note: %s\n", note)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func growthLine(g *contracts.GrowthOutcome) string {
	parts := make([]string, 0, 4)
	add := func(name string, v *float64) {
		if v != nil {
			parts = append(parts, fmt.Sprintf("%s %+.1f%%", name, *v*100))
		}
	}
	add("rev 3y", g.Revenue3Y)
	add("rev 5y", g.Revenue5Y)
	add("eps 3y", g.Earnings3Y)
	add("eps 5y", g.Earnings5Y)
	if len(parts) == 0 {
		return "insufficient history"
	}
	return strings.Join(parts, ", ")
}

func overlayLine(o *contracts.OptionStructure) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s", o.Kind)
	for _, leg := range o.Legs {
		fmt.Fprintf(&b, " [%s %s @%.2f prem %.2f]", leg.Side, leg.Type, leg.Strike, leg.Premium)
	}
	if o.UnboundedProfit {
		fmt.Fprintf(&b, " max profit unbounded, max loss %.2f", o.MaxLoss)
	} else {
		fmt.Fprintf(&b, " max profit %.2f, max loss %.2f", o.MaxProfit, o.MaxLoss)
	}
	if o.Contracts > 0 {
		fmt.Fprintf(&b, ", %d contracts", o.Contracts)
	}
	if o.Warning != "" {
		fmt.Fprintf(&b, " (%s)", o.Warning)
	}
	return b.String()
}

func reducedTag(s *contracts.SentimentReport) string {
	if s.ReducedConfidence {
		return " [reduced confidence]"
	}
	return ""
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
