package admin

type ApprovalRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}

type StatisticsResponse struct {
	Accounts map[string]int64 `json:"accounts"`
	Bookings map[string]int64 `json:"bookings"`
}
