package filtering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"modlist.dev/cli/internal/core/component"
)

// TestExclusionFilter_DropsExcludedIDs tests exact id matching
func TestExclusionFilter_DropsExcludedIDs(t *testing.T) {
	tests := []struct {
		name          string
		excluded      []string
		id            string
		shouldInclude bool
	}{
		{"EmptySet_Includes", nil, "jei", true},
		{"ExactMatch_Excludes", []string{"jei"}, "jei", false},
		{"DifferentCase_Includes", []string{"jei"}, "JEI", true},
		{"PrefixIsNotAMatch_Includes", []string{"jei"}, "jei_addon", true},
		{"OneOfMany_Excludes", []string{"a", "b", "jei"}, "jei", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := NewExclusionFilter(component.NewExclusionSet(tt.excluded...))
			info := component.Info{ID: tt.id, DisplayName: tt.id}

			assert.Equal(t, tt.shouldInclude, filter.ShouldInclude(info))

			reason := filter.GetFilterReason(info)
			if tt.shouldInclude {
				assert.Contains(t, reason, "passed")
			} else {
				assert.Contains(t, reason, "exclusion")
			}
		})
	}
}

func TestExclusionFilter_TracksStatistics(t *testing.T) {
	filter := NewExclusionFilter(component.NewExclusionSet("x"))

	filter.ShouldInclude(component.Info{ID: "a"})
	filter.ShouldInclude(component.Info{ID: "x"})
	filter.ShouldInclude(component.Info{ID: "b"})

	stats := filter.GetFilterStatistics()
	assert.Equal(t, 3, stats.TotalEvaluated)
	assert.Equal(t, 2, stats.TotalIncluded)
	assert.Equal(t, 1, stats.TotalExcluded)
}

func TestApply_PreservesOrder(t *testing.T) {
	filter := NewExclusionFilter(component.NewExclusionSet("b"))
	infos := []component.Info{{ID: "c"}, {ID: "b"}, {ID: "a"}}

	kept := Apply(filter, infos)

	assert.Equal(t, []component.Info{{ID: "c"}, {ID: "a"}}, kept)
}

// TestExclusionFilter_PropertyBased_ExcludedNeverKept tests the exclusion invariant
func TestExclusionFilter_PropertyBased_ExcludedNeverKept(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		pool := []string{"a", "b", "c", "d", "e", "f"}
		ids := rapid.SliceOf(rapid.SampledFrom(pool)).Draw(t, "ids")
		excluded := rapid.SliceOf(rapid.SampledFrom(pool)).Draw(t, "excluded")

		set := component.NewExclusionSet(excluded...)
		infos := make([]component.Info, len(ids))
		for i, id := range ids {
			infos[i] = component.Info{ID: id}
		}

		filter := NewExclusionFilter(set)
		kept := Apply(filter, infos)

		for _, info := range kept {
			if set.Contains(info.ID) {
				t.Fatalf("excluded id %q survived filtering", info.ID)
			}
		}
		stats := filter.GetFilterStatistics()
		if stats.TotalIncluded != len(kept) || stats.TotalEvaluated != len(infos) {
			t.Fatalf("statistics out of sync: %+v kept=%d input=%d", stats, len(kept), len(infos))
		}
	})
}

func BenchmarkExclusionFilter(b *testing.B) {
	filter := NewExclusionFilter(component.NewExclusionSet("a", "b", "c", "d"))
	info := component.Info{ID: "jei"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = filter.ShouldInclude(info)
	}
}
