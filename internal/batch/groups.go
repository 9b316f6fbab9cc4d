package batch

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"scopecli/internal/classification"
	"scopecli/internal/exporter"
)

const (
	groupKindFamily    = "family"
	groupKindFilterSet = "filter_set"
)

// RenderGroups draws comparison charts from the successful files of res:
// one per family with more than one member and one per filter set with
// more than one member, as enabled in Options. Written chart names are
// appended to res.Charts and returned. A failed group does not stop the
// others; their errors are joined in the returned error.
func (o *Orchestrator) RenderGroups(ctx context.Context, res *Result) ([]string, error) {
	if res == nil || len(res.Succeeded) == 0 {
		return nil, nil
	}
	stems := res.Stems()

	var written []string
	var errs []error
	emit := func(kind, name, title string, series []exporter.Series) {
		if err := ctx.Err(); err != nil {
			return
		}
		if err := o.renderGroup(ctx, kind, name, title, series); err != nil {
			errs = append(errs, err)
			return
		}
		written = append(written, name)
	}

	if o.opts.Groups {
		groups := classification.Partition(stems)
		for _, family := range classification.Families {
			members := groups[family]
			if len(members) < 2 {
				continue
			}
			series := make([]exporter.Series, len(members))
			for i, idx := range members {
				series[i] = exporter.Series{Label: stems[idx], Trace: res.Succeeded[idx].Trace}
			}
			emit(groupKindFamily, string(family)+"_comparison"+chartExt, family.Title(), series)
		}
	}

	if o.opts.FilterSets {
		for _, set := range classification.GroupFilterSets(stems, false) {
			series := make([]exporter.Series, len(set.Members))
			for i, m := range set.Members {
				series[i] = exporter.Series{Label: m.Variant.Label, Trace: res.Succeeded[m.Index].Trace}
			}
			emit(groupKindFilterSet, set.OutputName()+chartExt, set.Base, series)
		}
	}

	res.Charts = append(res.Charts, written...)
	if err := ctx.Err(); err != nil {
		return written, err
	}
	return written, errors.Join(errs...)
}

func (o *Orchestrator) renderGroup(ctx context.Context, kind, name, title string, series []exporter.Series) error {
	ctx, _ = o.tracer.traceGroup(ctx, kind, name, len(series))

	err := o.writeChart(name, func(w io.Writer) error {
		return o.opts.Renderer.RenderComparison(w, title, series)
	})
	if err != nil {
		o.logger.WarnContext(ctx, "Comparison chart failed",
			slog.String("kind", kind),
			slog.String("output", name),
			slog.String("error", err.Error()))
	} else {
		o.opts.Metrics.RecordChart(ctx, kind)
		o.logger.InfoContext(ctx, "Comparison chart written",
			slog.String("kind", kind),
			slog.String("output", name),
			slog.Int("members", len(series)))
	}
	endSpan(ctx, err)
	return err
}
