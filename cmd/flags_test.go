package cmd

import (
	"testing"

	"chanctl/internal/filter"
)

func TestFilterFlagsEmptyMeansUnfiltered(t *testing.T) {
	flags := &filterFlags{matchMode: filter.MatchAny}
	spec, err := flags.spec()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if spec != nil {
		t.Errorf("Expected nil spec for empty flags, got %+v", spec)
	}
}

func TestFilterFlagsBuildSpec(t *testing.T) {
	flags := &filterFlags{
		matchMode:    filter.MatchAll,
		names:        []string{"openai"},
		groups:       []string{"vip"},
		excludeNames: []string{"azure"},
	}
	spec, err := flags.spec()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if spec == nil {
		t.Fatal("Expected a spec")
	}
	if spec.MatchMode != filter.MatchAll {
		t.Errorf("Expected match mode all, got %q", spec.MatchMode)
	}
	if len(spec.NameFilters) != 1 || spec.NameFilters[0] != "openai" {
		t.Errorf("Unexpected name filters: %v", spec.NameFilters)
	}
	if len(spec.ExcludeNameFilters) != 1 {
		t.Errorf("Unexpected exclusion filters: %v", spec.ExcludeNameFilters)
	}
}

func TestFilterFlagsMatchAllNeedsAGroup(t *testing.T) {
	flags := &filterFlags{matchMode: filter.MatchAll}
	if _, err := flags.spec(); err == nil {
		t.Error("Expected match_mode all with no inclusion groups to fail validation")
	}
}

func TestFilterFlagsIDShortCircuit(t *testing.T) {
	flags := &filterFlags{matchMode: filter.MatchAny, id: 42}
	spec, err := flags.spec()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if spec == nil || spec.ID == nil || *spec.ID != 42 {
		t.Errorf("Expected id filter 42, got %+v", spec)
	}
}
