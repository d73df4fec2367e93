package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleList() []Prisoner {
	return []Prisoner{
		{ID: "1", Name: "أحمد صالح", Charge: "رأي", Prison: "صنعاء المركزي", Residence: "تعز"},
		{ID: "2", Name: "Omar", Charge: "theft", Prison: "Central", Residence: "Aden"},
		{ID: "3", Name: "سالم", Charge: "سياسي", Prison: "الحديدة", Residence: "صنعاء"},
	}
}

func TestFilterPrisoners(t *testing.T) {
	tests := []struct {
		name    string
		term    string
		wantIDs []string
	}{
		{name: "empty term returns all", term: "", wantIDs: []string{"1", "2", "3"}},
		{name: "arabic name substring", term: "أحمد", wantIDs: []string{"1"}},
		{name: "residence matches too", term: "صنعاء", wantIDs: []string{"1", "3"}},
		{name: "case-insensitive latin", term: "OMAR", wantIDs: []string{"2"}},
		{name: "charge substring", term: "سياس", wantIDs: []string{"3"}},
		{name: "no hit", term: "لا يوجد", wantIDs: []string{}},
		{name: "surrounding spaces are part of the term", term: "  Omar  ", wantIDs: []string{}},
		{name: "interior space matches as typed", term: "أحمد ص", wantIDs: []string{"1"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterPrisoners(sampleList(), tc.term)
			ids := make([]string, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tc.wantIDs, ids)
		})
	}
}

func TestFilterPrisoners_PureAndIdempotent(t *testing.T) {
	list := sampleList()

	first := FilterPrisoners(list, "صنعاء")
	second := FilterPrisoners(list, "صنعاء")

	require.Equal(t, first, second)
	// input slice untouched
	assert.Equal(t, sampleList(), list)
}

func TestFilterReleased(t *testing.T) {
	list := []ReleasedPrisoner{
		{ID: "a", Name: "خالد", Prison: "عدن"},
		{ID: "b", Name: "فهد", Prison: "إب"},
	}

	got := FilterReleased(list, "عدن")
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}
