package experiment

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// Pairs returns the benchmark keys in configured order,
// algorithms major.
func (d *Driver) Pairs() []Key {
	pairs := make([]Key, 0, len(d.algos)*len(d.metas))
	for _, algo := range d.algos {
		for _, meta := range d.metas {
			pairs = append(pairs, Key{Algorithm: algo.name, Dataset: meta.Name})
		}
	}
	return pairs
}

// Render writes the per pair blocks and the closing summary table.
func Render(w io.Writer, pairs []Key, summaries map[Key]Summary) {
	for _, key := range pairs {
		s, ok := summaries[key]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%s:\n", key.Algorithm)
		fmt.Fprintf(w, "\tdataset:    %s\n", key.Dataset)
		fmt.Fprintf(w, "\tshape:      (%d, %d)\n", s.Rows, s.Cols)
		fmt.Fprintf(w, "\tmiss rate:  %.2f\n", s.MissRate)
		fmt.Fprintf(w, "\t# runs:     %d\n", s.Runs)
		fmt.Fprintf(w, "\tRMSE:       %.4f (%.4f)\n", s.RMSEMean, s.RMSEStDev)
		fmt.Fprintf(w, "\tRMSE list:  %s\n", formatList(s, func(r Result) float64 { return r.RMSE }))
		fmt.Fprintf(w, "\ttime (s):   %.4f (%.4f)\n", s.TimeMean, s.TimeStDev)
		fmt.Fprintln(w)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ALGORITHM\tDATASET\tRMSE\tSTDEV\tTIME (S)")
	for _, key := range pairs {
		s, ok := summaries[key]
		if !ok {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%.4f\t%.4f\t%.4f\n",
			key.Algorithm, key.Dataset, s.RMSEMean, s.RMSEStDev, s.TimeMean)
	}
	tw.Flush()
}

func formatList(s Summary, value func(Result) float64) string {
	out := "["
	for i, r := range s.Results {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%.4f", value(r))
	}
	return out + "]"
}
