// Package report folds the QC, control-validation and sensitivity outputs
// into a single verdict with human-readable tables and tuning guidance.
package report

import (
	"fmt"
	"strings"

	"generank/internal/qc"
	"generank/internal/validation"
)

// Verdict is the overall validation state.
type Verdict string

const (
	// VerdictPass: every prong passed.
	VerdictPass Verdict = "PASS"
	// VerdictPartialSensitivity: controls validate but the ranking is
	// unstable under weight perturbation.
	VerdictPartialSensitivity Verdict = "PARTIAL_PASS_SENSITIVITY"
	// VerdictPartialSpecificity: positive controls validate but negative
	// controls rank too high.
	VerdictPartialSpecificity Verdict = "PARTIAL_PASS_SPECIFICITY"
	// VerdictFail: positive controls do not validate.
	VerdictFail Verdict = "FAIL"
)

// CircularityDisclosure accompanies every tuning suggestion: re-tuning
// weights against the same reference sets that diagnosed the failure is
// circular validation. Tuned weights must be re-validated against an
// independent hold-out reference set before being trusted.
const CircularityDisclosure = "Caution: these suggestions were derived from the same reference sets used to " +
	"diagnose the failure. Re-tuning weights against them and re-checking with them is circular validation. " +
	"Any tuned configuration must be re-validated against an independent hold-out reference set before being trusted."

// Summary is the synthesized validation report.
type Summary struct {
	Verdict     Verdict
	Headline    string
	Remediation []string
	Disclosure  string
	Markdown    string
}

// Synthesize determines the overall verdict and renders the full markdown
// report. It is a pure function of the four prong outputs.
func Synthesize(qcReport qc.Report, pos, neg validation.ControlResult, sens validation.SensitivityResult) Summary {
	s := Summary{}

	switch {
	case !pos.Passed:
		s.Verdict = VerdictFail
		s.Headline = "Positive controls do not validate: " + pos.Reason
	case !neg.Passed:
		s.Verdict = VerdictPartialSpecificity
		s.Headline = "Specificity issue: positive controls validate but negative controls rank too high: " + neg.Reason
	case !sens.OverallStable:
		s.Verdict = VerdictPartialSensitivity
		s.Headline = "Ranking is sensitive to weight perturbation: " + sens.Reason
	default:
		s.Verdict = VerdictPass
		s.Headline = "All validation prongs passed."
	}

	s.Remediation = remediation(s.Verdict, pos, neg, sens)
	if len(s.Remediation) > 0 {
		s.Disclosure = CircularityDisclosure
	}

	s.Markdown = renderMarkdown(s, qcReport, pos, neg, sens)
	return s
}

func remediation(v Verdict, pos, neg validation.ControlResult, sens validation.SensitivityResult) []string {
	var out []string
	switch v {
	case VerdictFail:
		out = append(out,
			"Increase the weight of layers where the known disease genes score consistently high; inspect the per-gene detail table for which layers carry them.")
		if len(pos.PerSource) > 1 {
			out = append(out,
				"Compare the per-source breakdown: if one provenance source validates markedly worse, audit its symbol mapping before touching weights.")
		}
	case VerdictPartialSpecificity:
		out = append(out,
			fmt.Sprintf("Decrease the weight of broadly expressed layers: %d housekeeping gene(s) reached the top quartile and %d reached the high score tier.",
				neg.TopQuartileCount, neg.HighScoreCount))
	case VerdictPartialSensitivity:
		if sens.MostSensitiveLayer != "" {
			out = append(out,
				fmt.Sprintf("Decrease the weight of the most-sensitive layer (%s) or smooth its upstream normalization; its perturbations move the ranking the most.",
					sens.MostSensitiveLayer))
		}
	}
	return out
}

func renderMarkdown(s Summary, qcReport qc.Report, pos, neg validation.ControlResult, sens validation.SensitivityResult) string {
	var b strings.Builder

	b.WriteString("# Gene Prioritization Validation Report\n\n")
	fmt.Fprintf(&b, "**Verdict: %s**\n\n%s\n\n", s.Verdict, s.Headline)

	writeQCSection(&b, qcReport)
	writeControlSection(&b, "Positive Controls", pos, true)
	writeControlSection(&b, "Negative Controls", neg, false)
	writeSensitivitySection(&b, sens)

	if len(s.Remediation) > 0 {
		b.WriteString("## Remediation\n\n")
		for _, r := range s.Remediation {
			fmt.Fprintf(&b, "- %s\n", r)
		}
		fmt.Fprintf(&b, "\n> %s\n\n", s.Disclosure)
	}

	return b.String()
}

func writeQCSection(b *strings.Builder, qcReport qc.Report) {
	b.WriteString("## Quality Control\n\n")
	fmt.Fprintf(b, "Passed: %t: %d error(s), %d warning(s)\n\n", qcReport.Passed, len(qcReport.Errors), len(qcReport.Warnings))

	b.WriteString("| Layer | Missing | Mean | Median | StdDev | Min | Max |\n")
	b.WriteString("|---|---|---|---|---|---|---|\n")
	for _, ls := range qcReport.Stats {
		fmt.Fprintf(b, "| %s | %.1f%% | %.3f | %.3f | %.3f | %.3f | %.3f |\n",
			ls.Layer, ls.MissingRate*100, ls.Mean, ls.Median, ls.StdDev, ls.Min, ls.Max)
	}
	b.WriteString("\n")

	for _, e := range qcReport.Errors {
		fmt.Fprintf(b, "- ERROR: %s\n", e)
	}
	for _, w := range qcReport.Warnings {
		fmt.Fprintf(b, "- WARNING: %s\n", w)
	}
	if len(qcReport.Errors)+len(qcReport.Warnings) > 0 {
		b.WriteString("\n")
	}
}

func writeControlSection(b *strings.Builder, title string, res validation.ControlResult, withRecall bool) {
	fmt.Fprintf(b, "## %s\n\n", title)
	fmt.Fprintf(b, "Passed: %t: found %d of %d curated genes, median percentile %.3f, %d in top quartile\n\n",
		res.Passed, res.FoundCount, res.ExpectedCount, res.MedianPercentile, res.TopQuartileCount)
	if res.Reason != "" {
		fmt.Fprintf(b, "%s\n\n", res.Reason)
	}

	if len(res.PerGene) > 0 {
		b.WriteString("| Gene | Percentile | Composite | Sources |\n|---|---|---|---|\n")
		for _, d := range res.PerGene {
			fmt.Fprintf(b, "| %s | %.3f | %.3f | %s |\n", d.Symbol, d.Percentile, d.Composite, strings.Join(d.Sources, ", "))
		}
		b.WriteString("\n")
	}

	if withRecall && len(res.RecallAtK) > 0 {
		b.WriteString("| Cutoff | Hits | In-dataset refs | Curated total | Recall |\n|---|---|---|---|---|\n")
		for _, r := range res.RecallAtK {
			fmt.Fprintf(b, "| %s | %d | %d | %d | %.3f |\n", r.Label, r.Hits, r.Denominator, r.CuratedTotal, r.Recall)
		}
		b.WriteString("\n")
	}

	if len(res.PerSource) > 0 {
		b.WriteString("| Source | Found | Median percentile | Top quartile |\n|---|---|---|---|\n")
		for _, sb := range res.PerSource {
			fmt.Fprintf(b, "| %s | %d | %.3f | %d |\n", sb.Source, sb.FoundCount, sb.MedianPercentile, sb.TopQuartileCount)
		}
		b.WriteString("\n")
	}
}

func writeSensitivitySection(b *strings.Builder, sens validation.SensitivityResult) {
	b.WriteString("## Sensitivity\n\n")
	fmt.Fprintf(b, "Overall stable: %t (threshold rho >= %.2f over top %d): %d stable, %d unstable, %d undefined\n\n",
		sens.OverallStable, sens.StabilityThreshold, sens.TopN, sens.StableCount, sens.UnstableCount, sens.UndefinedCount)
	if sens.Reason != "" {
		fmt.Fprintf(b, "%s\n\n", sens.Reason)
	}
	if sens.MostSensitiveLayer != "" {
		fmt.Fprintf(b, "Most sensitive layer: %s. Most robust layer: %s.\n\n", sens.MostSensitiveLayer, sens.MostRobustLayer)
	}

	b.WriteString("| Layer | Delta | Overlap | Rho | Stable |\n|---|---|---|---|---|\n")
	for _, p := range sens.Perturbations {
		rho := "undefined"
		stable := "n/a"
		if p.Rho != nil {
			rho = fmt.Sprintf("%.4f", *p.Rho)
			stable = fmt.Sprintf("%t", p.Stable)
		}
		fmt.Fprintf(b, "| %s | %+.2f | %d | %s | %s |\n", p.Layer, p.Delta, p.OverlapCount, rho, stable)
	}
	b.WriteString("\n")
}
