package pages

import (
	"encoding/json"
	"testing"

	"nutrisync/models"
)

func TestNewWorkspaceSnapshotSortsFoods(t *testing.T) {
	foods := []models.SavedFood{{Description: "Oats"}, {Description: "Almonds"}}

	snapshot := NewWorkspaceSnapshot(foods, nil, nil, "IMPERIAL ", "Dana")

	if snapshot.Foods[0].Description != "Almonds" {
		t.Fatalf("expected foods to be sorted by description: %v", snapshot.Foods)
	}
	if snapshot.Display != models.DisplayImperial {
		t.Fatalf("expected normalized display, got %q", snapshot.Display)
	}
}

func TestWorkspaceSnapshotSeedsJSON(t *testing.T) {
	snapshot := WorkspaceSnapshot{FDCIDs: []int{42}, RecentQueries: []string{"oats"}}

	data := snapshot.SeedsJSON()
	var parsed struct {
		SavedIDs      []int    `json:"savedIds"`
		RecentQueries []string `json:"recentQueries"`
	}
	if err := json.Unmarshal([]byte(data), &parsed); err != nil {
		t.Fatalf("expected valid json payload, got %v", err)
	}
	if len(parsed.SavedIDs) != 1 || parsed.SavedIDs[0] != 42 || parsed.RecentQueries[0] != "oats" {
		t.Fatalf("unexpected seeds json: %s", data)
	}

	if got := EmptyWorkspaceSnapshot().SeedsJSON(); got != `{"savedIds":[],"recentQueries":[]}` {
		t.Fatalf("expected empty arrays for empty snapshot, got %s", got)
	}
}

func TestEmptyWorkspaceSnapshotUsesDefaultDisplay(t *testing.T) {
	snap := EmptyWorkspaceSnapshot()
	if snap.Display != models.DefaultDisplaySystem {
		t.Fatalf("expected default display %s, got %s", models.DefaultDisplaySystem, snap.Display)
	}
}

func TestGroupCounts(t *testing.T) {
	snap := WorkspaceSnapshot{Foods: []models.SavedFood{
		{FoodGroup: "Dairy"}, {FoodGroup: "Dairy"}, {FoodGroup: ""},
	}}
	counts := snap.GroupCounts()
	if counts["Dairy"] != 2 || counts["Other"] != 1 {
		t.Fatalf("unexpected group counts: %v", counts)
	}
}
