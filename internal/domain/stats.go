package domain

type ReportStats struct {
	Total    int64                  `json:"total"`
	ByStatus map[ReportStatus]int64 `json:"by_status"`
	Minutes  int                    `json:"minutes"`
}

type StatsRequest struct {
	Minutes int `query:"minutes" validate:"min=1,max=1440"` // one day max
}
