package pages

import (
	"encoding/json"
	"sort"

	"nutrisync/models"
)

// WorkspaceSnapshot aggregates the data required to render the saved foods page.
type WorkspaceSnapshot struct {
	Foods         []models.SavedFood
	FDCIDs        []int
	RecentQueries []string
	Display       string
	UserName      string
}

// NewWorkspaceSnapshot sorts foods by description and normalises the display preference.
func NewWorkspaceSnapshot(foods []models.SavedFood, fdcIDs []int, recent []string, display, userName string) WorkspaceSnapshot {
	sort.SliceStable(foods, func(i, j int) bool {
		return foods[i].Description < foods[j].Description
	})

	return WorkspaceSnapshot{
		Foods:         foods,
		FDCIDs:        fdcIDs,
		RecentQueries: recent,
		Display:       models.NormalizeDisplaySystem(display),
		UserName:      userName,
	}
}

// EmptyWorkspaceSnapshot returns a zero-value snapshot to simplify call sites when no data is available.
func EmptyWorkspaceSnapshot() WorkspaceSnapshot {
	return WorkspaceSnapshot{Display: models.DefaultDisplaySystem}
}

// GroupCounts counts saved foods per food group. Foods without a group are
// counted under "Other".
func (s WorkspaceSnapshot) GroupCounts() map[string]int {
	counts := make(map[string]int)
	for _, food := range s.Foods {
		group := food.FoodGroup
		if group == "" {
			group = "Other"
		}
		counts[group]++
	}
	return counts
}

// SeedsJSON encodes the state the search widget needs on the client: which
// FoodData Central IDs are already saved and the recent queries.
func (s WorkspaceSnapshot) SeedsJSON() string {
	payload := struct {
		SavedIDs      []int    `json:"savedIds"`
		RecentQueries []string `json:"recentQueries"`
	}{
		SavedIDs:      s.FDCIDs,
		RecentQueries: s.RecentQueries,
	}
	if payload.SavedIDs == nil {
		payload.SavedIDs = []int{}
	}
	if payload.RecentQueries == nil {
		payload.RecentQueries = []string{}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "{}"
	}
	return string(data)
}
