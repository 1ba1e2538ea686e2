package projectdata

import (
	"math"
	"strings"
)

// ProgressPercentage is the share of completed milestones, rounded to the
// nearest whole percent. It is 0 when there are no milestones.
func ProgressPercentage(notes *Notes) int {
	if notes == nil || len(notes.Milestones) == 0 {
		return 0
	}
	completed := 0
	for _, m := range notes.Milestones {
		if m.Status == MilestoneCompleted {
			completed++
		}
	}
	return int(math.Round(float64(completed) / float64(len(notes.Milestones)) * 100))
}

// ActiveIssuesCount counts open and in-progress issues.
func ActiveIssuesCount(notes *Notes) int {
	if notes == nil {
		return 0
	}
	n := 0
	for _, i := range notes.Issues {
		if i.Active() {
			n++
		}
	}
	return n
}

// UpcomingMilestones returns the pending milestones planned on or before
// now+days. There is no lower bound: overdue pending milestones are included.
// Milestones whose planned date cannot be parsed are skipped.
func UpcomingMilestones(notes *Notes, days int) []Milestone {
	out := []Milestone{}
	if notes == nil {
		return out
	}
	cutoff := now().AddDate(0, 0, days)
	for _, m := range notes.Milestones {
		if m.Status != MilestonePending {
			continue
		}
		planned, ok := ParseDate(m.PlannedDate)
		if !ok || planned.After(cutoff) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// HasWaterFeature reports whether a present water feature has a name
// containing feature, ignoring case. Zero counts and false flags do not count.
func HasWaterFeature(specs *Specifications, feature string) bool {
	if specs == nil || specs.WaterFeatures == nil {
		return false
	}
	needle := strings.ToLower(feature)
	for _, e := range specs.WaterFeatures.entries() {
		if e.present && strings.Contains(strings.ToLower(e.key), needle) {
			return true
		}
	}
	return false
}

// SearchByPoolType matches poolType against the pool shell material.
func SearchByPoolType(specs *Specifications, poolType string) bool {
	if specs == nil || specs.Materials == nil || specs.Materials.PoolShell == "" {
		return false
	}
	return strings.Contains(strings.ToLower(specs.Materials.PoolShell), strings.ToLower(poolType))
}

// SearchByEquipment matches equipmentType against the type of every piece of
// equipment that has one.
func SearchByEquipment(specs *Specifications, equipmentType string) bool {
	if specs == nil || specs.Equipment == nil {
		return false
	}
	needle := strings.ToLower(equipmentType)
	for _, t := range specs.Equipment.types() {
		if strings.Contains(strings.ToLower(t), needle) {
			return true
		}
	}
	return false
}

// UpcomingWindowDays is the horizon used by Analyze.
const UpcomingWindowDays = 7

// Analytics summarizes a project for the admin dashboard.
type Analytics struct {
	ProgressPercentage int         `json:"progressPercentage"`
	ActiveIssuesCount  int         `json:"activeIssuesCount"`
	UpcomingMilestones []Milestone `json:"upcomingMilestones"`
	TotalImages        int         `json:"totalImages"`
	HasWaterFeatures   bool        `json:"hasWaterFeatures"`
}

// Analyze derives the dashboard summary from the three project documents.
func Analyze(specs *Specifications, images *Images, notes *Notes) Analytics {
	a := Analytics{
		ProgressPercentage: ProgressPercentage(notes),
		ActiveIssuesCount:  ActiveIssuesCount(notes),
		UpcomingMilestones: UpcomingMilestones(notes, UpcomingWindowDays),
		HasWaterFeatures: HasWaterFeature(specs, "waterfall") ||
			HasWaterFeature(specs, "fountain") ||
			HasWaterFeature(specs, "spa"),
	}
	if images != nil {
		a.TotalImages = len(images.Gallery)
	}
	return a
}
