package projectdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestProgressPercentage(t *testing.T) {
	require.Equal(t, 0, ProgressPercentage(nil))
	require.Equal(t, 0, ProgressPercentage(&Notes{Milestones: []Milestone{}}))

	notes := &Notes{Milestones: []Milestone{
		milestone("a", MilestoneCompleted, "2024-01-01"),
		milestone("b", MilestonePending, "2024-01-02"),
		milestone("c", MilestonePending, "2024-01-03"),
	}}
	require.Equal(t, 33, ProgressPercentage(notes))

	notes.Milestones[1].Status = MilestoneCompleted
	require.Equal(t, 67, ProgressPercentage(notes))

	notes.Milestones[2].Status = MilestoneCompleted
	require.Equal(t, 100, ProgressPercentage(notes))
}

func TestProgressPercentageStaysInRange(t *testing.T) {
	statuses := []MilestoneStatus{MilestonePending, MilestoneInProgress, MilestoneCompleted, MilestoneDelayed, MilestoneCancelled}
	var notes *Notes
	for i := 0; i < 40; i++ {
		notes = AddMilestone(notes, milestone("m", statuses[i%len(statuses)], "2024-01-01"))
		p := ProgressPercentage(notes)
		assert.GreaterOrEqual(t, p, 0)
		assert.LessOrEqual(t, p, 100)
	}
}

func TestUpcomingMilestones(t *testing.T) {
	freezeClock(t, time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC))

	notes := AddMilestone(nil, Milestone{ID: "m1", Title: "Excavation", PlannedDate: "2024-01-15", Status: MilestonePending})
	got := UpcomingMilestones(notes, 7)
	require.Len(t, got, 1)
	require.Equal(t, "m1", got[0].ID)

	notes = AddMilestone(notes, milestone("overdue", MilestonePending, "2023-01-15"))
	notes = AddMilestone(notes, milestone("far", MilestonePending, "2024-03-01"))
	notes = AddMilestone(notes, milestone("done", MilestoneCompleted, "2024-01-12"))
	notes = AddMilestone(notes, milestone("garbled", MilestonePending, "next week"))
	notes = AddMilestone(notes, milestone("timestamp", MilestonePending, "2024-01-17T09:00:00Z"))

	var ids []string
	for _, m := range UpcomingMilestones(notes, 7) {
		ids = append(ids, m.ID)
	}
	require.Equal(t, []string{"m1", "overdue", "timestamp"}, ids)
}

func TestUpcomingMilestonesEmpty(t *testing.T) {
	got := UpcomingMilestones(nil, 7)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestHasWaterFeature(t *testing.T) {
	specs := &Specifications{WaterFeatures: &WaterFeatures{Spa: boolPtr(true), Waterfalls: intPtr(0)}}

	require.True(t, HasWaterFeature(specs, "spa"))
	require.True(t, HasWaterFeature(specs, "SPA"))
	require.False(t, HasWaterFeature(specs, "waterfalls"))
	require.False(t, HasWaterFeature(specs, "slide"))
	require.False(t, HasWaterFeature(nil, "spa"))

	specs.WaterFeatures.Waterfalls = intPtr(2)
	require.True(t, HasWaterFeature(specs, "waterfall"))

	specs.WaterFeatures.InfinityEdge = boolPtr(false)
	require.False(t, HasWaterFeature(specs, "infinity"))
}

func TestSearchByPoolTypeAndEquipment(t *testing.T) {
	specs := &Specifications{
		Materials: &Materials{PoolShell: "fiberglass"},
		Equipment: &Equipment{
			Pump:   &Pump{Horsepower: 1.5},
			Heater: &Heater{Type: "heat_pump"},
		},
	}

	require.True(t, SearchByPoolType(specs, "Fiber"))
	require.False(t, SearchByPoolType(specs, "concrete"))
	require.False(t, SearchByPoolType(&Specifications{}, "concrete"))

	require.True(t, SearchByEquipment(specs, "HEAT"))
	require.False(t, SearchByEquipment(specs, "robotic"))
	require.False(t, SearchByEquipment(nil, "heat"))
}

func TestAnalyze(t *testing.T) {
	freezeClock(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))

	specs := &Specifications{WaterFeatures: &WaterFeatures{Fountains: intPtr(1)}}
	images := AddImageToGallery(AddImageToGallery(nil, galleryImage("a")), galleryImage("b"))
	notes := AddMilestone(nil, milestone("m1", MilestoneCompleted, "2024-01-01"))
	notes = AddMilestone(notes, milestone("m2", MilestonePending, "2024-01-12"))
	notes = AddIssue(notes, Issue{ID: "i1", Status: IssueInProgress})

	a := Analyze(specs, images, notes)
	require.Equal(t, 50, a.ProgressPercentage)
	require.Equal(t, 1, a.ActiveIssuesCount)
	require.Len(t, a.UpcomingMilestones, 1)
	require.Equal(t, 2, a.TotalImages)
	require.True(t, a.HasWaterFeatures)

	empty := Analyze(nil, nil, nil)
	require.Zero(t, empty.TotalImages)
	require.False(t, empty.HasWaterFeatures)
	require.Empty(t, empty.UpcomingMilestones)
}
