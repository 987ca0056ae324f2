package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func writeRow(tw *tabwriter.Writer, cols ...string) {
	fmt.Fprintln(tw, strings.Join(cols, "\t"))
}

func writeHeader(tw *tabwriter.Writer, cols ...string) {
	writeRow(tw, cols...)
	sep := make([]string, len(cols))
	for i := range sep {
		sep[i] = "---"
	}
	writeRow(tw, sep...)
}

func WriteSummary(s *Summary, w io.Writer) {
	tw := newTabWriter(w)

	fmt.Fprintf(tw, "\n=== Score Prep Run %s ===\n\n", s.RunID)
	writeHeader(tw, "Lang Pair", "Hypotheses", "Skipped", "Segments", "Files", "Stored")
	pair := s.LangPair
	if pair == "" {
		pair = "-"
	}
	writeRow(tw,
		pair,
		fmt.Sprintf("%d", s.Stats.Total),
		fmt.Sprintf("%d", s.Stats.Skipped),
		fmt.Sprintf("%d", s.Stats.Segments),
		fmt.Sprintf("%d", len(s.Files)),
		fmt.Sprintf("%t", s.Stored),
	)

	tw.Flush()
}

func WriteInspection(in *Inspection, w io.Writer) {
	tw := newTabWriter(w)

	writeHeader(tw, "Lang Pair", "Segments", "Refs", "Avg Src Len", "Avg MT Len")
	writeRow(tw,
		in.LangPair,
		fmt.Sprintf("%d", in.Segments),
		yesNo(in.RefsPresent),
		fmt.Sprintf("%.2f", in.AvgSrcLen),
		fmt.Sprintf("%.2f", in.AvgMTLen),
	)

	tw.Flush()
}

func WriteVerification(v *Verification, w io.Writer) {
	tw := newTabWriter(w)

	if v.OK() {
		fmt.Fprintf(tw, "%s: %d files OK\n", v.LangPair, v.Files)
		tw.Flush()
		return
	}

	writeHeader(tw, "File", "Problem")
	for _, m := range v.Mismatches {
		writeRow(tw, m.Path, m.Reason)
	}
	tw.Flush()
}

// WritePairs lists pairs one per line.
func WritePairs(pairs []string, w io.Writer) {
	for _, p := range pairs {
		fmt.Fprintln(w, p)
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
