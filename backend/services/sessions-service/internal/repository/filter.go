package repository

import (
	libdb "evzone/backend/libs/db"
	"evzone/backend/services/sessions-service/internal/models"
)

// buildWhere turns a ListFilter into an AND-ed clause over a row aliased `alias`
// joined with stations aliased `st`. The free-text query matches the id only.
func buildWhere(alias string, filter models.ListFilter) *libdb.Where {
	w := &libdb.Where{}
	w.AddIf(filter.Query != "", alias+`.id ILIKE ? ESCAPE '\'`, libdb.Contains(filter.Query))
	w.AddIf(filter.StationID != "", alias+".station_id = ?", filter.StationID)
	w.AddIf(filter.UserID != "", alias+".user_id = ?", filter.UserID)
	w.AddIf(filter.Status != "", alias+".status = ?", filter.Status)

	// Rows with no region, org or station are visible under any scope.
	if scope := filter.Scope; scope != nil {
		w.AddIf(len(scope.Regions) > 0, `(COALESCE(st.region, '') = '' OR UPPER(REGEXP_REPLACE(st.region, '\s+', '_', 'g')) = ANY(?))`, scope.Regions)
		w.AddIf(scope.OrgID != "", "(COALESCE(st.org_id, '') = '' OR st.org_id = ?)", scope.OrgID)
		w.AddIf(scope.StationID != "", "(COALESCE("+alias+".station_id, '') = '' OR "+alias+".station_id = ?)", scope.StationID)
	}
	return w
}
