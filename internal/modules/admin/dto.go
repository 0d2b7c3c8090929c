package admin

type OverviewStats struct {
	TotalUsers         int64 `json:"totalUsers"`
	ActiveUsers        int64 `json:"activeUsers"`
	TotalPets          int64 `json:"totalPets"`
	ActivePets         int64 `json:"activePets"`
	TotalBookings      int64 `json:"totalBookings"`
	PendingBookings    int64 `json:"pendingBookings"`
	CompletedBookings  int64 `json:"completedBookings"`
	InProgressBookings int64 `json:"inProgressBookings"`
	CancelledBookings  int64 `json:"cancelledBookings"`
	Owners             int64 `json:"owners"`
	Sitters            int64 `json:"sitters"`
}

type UserStats struct {
	Total     int64 `json:"total"`
	Active    int64 `json:"active"`
	Inactive  int64 `json:"inactive"`
	Admins    int64 `json:"admins"`
	Customers int64 `json:"customers"`
	Owners    int64 `json:"owners"`
	Sitters   int64 `json:"sitters"`
	Both      int64 `json:"both"`
}

type PetStats struct {
	Total    int64            `json:"total"`
	Active   int64            `json:"active"`
	Inactive int64            `json:"inactive"`
	ByType   map[string]int64 `json:"byType"`
}

type BookingStats struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	Confirmed  int64 `json:"confirmed"`
	InProgress int64 `json:"inProgress"`
	Completed  int64 `json:"completed"`
	Cancelled  int64 `json:"cancelled"`
	Rejected   int64 `json:"rejected"`
}
