package dto

// AnalyticsOverview - сводка по жалобам. Считается только по представителям,
// дубликаты-члены кластеров в цифры не попадают.
type AnalyticsOverview struct {
	TotalComplaints    int64   `json:"total_complaints"`
	ResolvedComplaints int64   `json:"resolved_complaints"`
	InProgress         int64   `json:"in_progress"`
	PendingComplaints  int64   `json:"pending_complaints"`
	ActiveWorkers      int64   `json:"active_workers"`
	AvgResolutionTime  float64 `json:"avg_resolution_time"`
}
