package crosssite

import (
	"fmt"

	"chanctl/internal/channel"
	"chanctl/internal/filter"
	"chanctl/internal/plan"
	"chanctl/pkg/logging"
)

// ResolveSource picks the template channel from the source listing. Zero
// matches fail with ErrNoSourceMatch. More than one match returns the first
// in fetch order plus a warning the caller must surface.
func ResolveSource(channels []channel.Channel, spec *filter.Spec) (*channel.Channel, string, error) {
	matched, err := filter.Select(channel.Dedupe(channels), spec)
	if err != nil {
		return nil, "", err
	}
	if len(matched) == 0 {
		return nil, "", ErrNoSourceMatch
	}

	template := matched[0].Clone()
	warning := ""
	if len(matched) > 1 {
		warning = fmt.Sprintf("source filter matched %d channels; using %q (id %d), the first in fetch order",
			len(matched), template.Name, template.ID)
		logging.Warn("CrossSite", "%s", warning)
	}
	return template, warning, nil
}

// PlanCopy builds the target-instance plan copying the listed fields from
// the template. Internally it is a regular plan build against a synthetic
// update spec whose desired values are the template's field values, so every
// copy mode behaves exactly as it does in a single-site update. For
// delete_keys the template's mapping keys are the keys deleted on targets.
func PlanCopy(template *channel.Channel, targets []channel.Channel, targetFilter *filter.Spec,
	fields []string, mode plan.Mode, codec plan.Codec) (*plan.Plan, error) {

	updates := plan.UpdateSpec{}
	for _, name := range fields {
		f, ok := channel.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("cross-site job: unknown field %q", name)
		}
		updates[f.Name] = plan.FieldUpdate{
			Enabled: true,
			Mode:    mode,
			Value:   f.Get(template),
		}
	}

	return plan.Build(targets, targetFilter, updates, codec)
}
