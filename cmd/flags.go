package cmd

import (
	"github.com/spf13/cobra"

	"chanctl/internal/filter"
)

// filterFlags collects the command-line filter options shared by list and
// test. YAML-driven commands carry their filters in the document instead.
type filterFlags struct {
	matchMode string

	names  []string
	groups []string
	models []string
	tags   []string
	types  []int

	excludeNames  []string
	excludeGroups []string
	excludeModels []string

	id  int64
	ids []int64
	key string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.matchMode, "match", filter.MatchAny,
		"how inclusion filter groups combine (any, all)")
	flags.StringSliceVar(&f.names, "name", nil, "match channels whose name contains any of these substrings")
	flags.StringSliceVar(&f.groups, "group", nil, "match channels in any of these groups")
	flags.StringSliceVar(&f.models, "model", nil, "match channels serving any of these models")
	flags.StringSliceVar(&f.tags, "tag", nil, "match channels carrying any of these tags")
	flags.IntSliceVar(&f.types, "type", nil, "match channels of any of these provider types")
	flags.StringSliceVar(&f.excludeNames, "exclude-name", nil, "veto channels whose name contains any of these substrings")
	flags.StringSliceVar(&f.excludeGroups, "exclude-group", nil, "veto channels in any of these groups")
	flags.StringSliceVar(&f.excludeModels, "exclude-model", nil, "veto channels serving any of these models")
	flags.Int64Var(&f.id, "id", 0, "match exactly this channel id")
	flags.Int64SliceVar(&f.ids, "ids", nil, "match any of these channel ids")
	flags.StringVar(&f.key, "key", "", "match the channel holding exactly this secret key")
}

// spec converts the flags into a filter spec, nil when nothing was set.
func (f *filterFlags) spec() (*filter.Spec, error) {
	spec := filter.Spec{
		MatchMode:           f.matchMode,
		NameFilters:         f.names,
		GroupFilters:        f.groups,
		ModelFilters:        f.models,
		TagFilters:          f.tags,
		TypeFilters:         f.types,
		KeyFilter:           f.key,
		IDs:                 f.ids,
		ExcludeNameFilters:  f.excludeNames,
		ExcludeGroupFilters: f.excludeGroups,
		ExcludeModelFilters: f.excludeModels,
	}
	if f.id != 0 {
		id := f.id
		spec.ID = &id
	}
	if spec.MatchMode == filter.MatchAny {
		spec.MatchMode = ""
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if spec.IsZero() {
		return nil, nil
	}
	return &spec, nil
}
