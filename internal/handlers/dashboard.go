package handlers

import (
	"net/http"

	templpkg "github.com/a-h/templ"

	applog "nutrisync/internal/log"
	"nutrisync/internal/views/pages"
)

// Dashboard renders the saved foods workspace once a user is authenticated.
func Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	snapshot := buildWorkspaceSnapshot(r)
	filters := pages.FoodFiltersFromRequest(r)

	var component templpkg.Component
	if isHTMX(r) {
		component = pages.WorkspacePartial(snapshot, filters)
	} else {
		component = pages.Workspace(snapshot, filters)
	}
	renderComponent(w, r, component)
}

func buildWorkspaceSnapshot(r *http.Request) pages.WorkspaceSnapshot {
	userID, ok := currentUserID(r)
	if !ok || foodStore == nil {
		snapshot := pages.EmptyWorkspaceSnapshot()
		snapshot.UserName = currentUserName(r)
		return snapshot
	}

	ctx := r.Context()
	foods, err := foodStore.All(ctx, userID)
	if err != nil {
		applog.Error(ctx, "failed to load saved foods", "error", err, "user", userID)
	}
	ids, err := foodStore.FDCIDs(ctx, userID)
	if err != nil {
		applog.Error(ctx, "failed to load saved food ids", "error", err, "user", userID)
	}
	applog.Debug(ctx, "workspace snapshot loaded", "foods", len(foods), "user", userID)

	return pages.NewWorkspaceSnapshot(foods, ids, recentQueries(r), loadCurrentUserDisplay(r), currentUserName(r))
}
