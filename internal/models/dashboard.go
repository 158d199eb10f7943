package models

// FilterAll disables a dashboard filter dimension
const FilterAll = "All"

// DashboardFilter holds the admin dashboard's client-side filters
type DashboardFilter struct {
	Search   string `json:"search" form:"search"`
	Category string `json:"category" form:"category"`
	Status   string `json:"status" form:"status"`
}

// DashboardStats are the aggregates shown above the article table
type DashboardStats struct {
	Total        int   `json:"total"`
	Published    int   `json:"published"`
	Categories   int   `json:"categories"`
	AverageViews int64 `json:"average_views"`
}

// Dashboard is the admin view over the last full fetch
type Dashboard struct {
	Articles []*Article      `json:"articles"`
	Visible  []*Article      `json:"visible"`
	Stats    DashboardStats  `json:"stats"`
	Filter   DashboardFilter `json:"filter"`
}
