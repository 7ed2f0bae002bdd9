package crosssite

import (
	"fmt"

	"chanctl/internal/channel"
	"chanctl/internal/filter"
)

// FieldComparison is one (target, field) row of a compare_fields report.
type FieldComparison struct {
	TargetID    int64
	TargetName  string
	Field       string
	SourceValue any
	TargetValue any
	Equal       bool
}

// FieldReport is the outcome of a compare_fields job. It carries no plan;
// comparing never mutates.
type FieldReport struct {
	SourceID   int64
	SourceName string
	Rows       []FieldComparison
}

// Differences counts rows whose values differ.
func (r *FieldReport) Differences() int {
	n := 0
	for _, row := range r.Rows {
		if !row.Equal {
			n++
		}
	}
	return n
}

// CompareFields resolves the targets and reports, per matched target and
// per listed field, the source and target values plus their equality.
// Equality is kind-aware: lists are order-sensitive, maps structural,
// scalars numeric-type tolerant.
func CompareFields(template *channel.Channel, targets []channel.Channel, targetFilter *filter.Spec,
	fields []string) (*FieldReport, error) {

	resolved := make([]channel.Field, 0, len(fields))
	for _, name := range fields {
		f, ok := channel.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("cross-site job: unknown field %q", name)
		}
		resolved = append(resolved, f)
	}

	matched, err := filter.Select(channel.Dedupe(targets), targetFilter)
	if err != nil {
		return nil, err
	}

	report := &FieldReport{SourceID: template.ID, SourceName: template.Name}
	for i := range matched {
		target := &matched[i]
		for _, f := range resolved {
			sourceValue := f.Get(template)
			targetValue := f.Get(target)
			report.Rows = append(report.Rows, FieldComparison{
				TargetID:    target.ID,
				TargetName:  target.Name,
				Field:       f.Name,
				SourceValue: sourceValue,
				TargetValue: targetValue,
				Equal:       fieldValuesEqual(f, sourceValue, targetValue),
			})
		}
	}
	return report, nil
}

func fieldValuesEqual(f channel.Field, a, b any) bool {
	switch f.Kind {
	case channel.KindList:
		la, _ := channel.ToList(a)
		lb, _ := channel.ToList(b)
		return channel.ListsEqual(la, lb)
	case channel.KindMap:
		ma, _ := channel.ToMap(a)
		mb, _ := channel.ToMap(b)
		return channel.MapsEqual(ma, mb)
	default:
		return channel.ScalarsEqual(a, b)
	}
}

// CountReport is the outcome of a compare_channel_counts job.
type CountReport struct {
	Source int
	Target int
	// Diff is target minus source: negative means the target is missing
	// channels relative to the source.
	Diff int
}

// CompareCounts reports raw listing totals. Filters are deliberately not
// applied; the action answers "how far apart are these instances" at the
// coarsest level.
func CompareCounts(sourceTotal, targetTotal int) CountReport {
	return CountReport{
		Source: sourceTotal,
		Target: targetTotal,
		Diff:   targetTotal - sourceTotal,
	}
}
