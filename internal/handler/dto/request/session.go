package request

type SelectRequest struct {
	FacilityID int64  `json:"facilityId" binding:"required,gt=0"`
	Date       string `json:"date" binding:"required"`
}

// CellQuery addresses a cell of the selected date in a query string.
type CellQuery struct {
	ResourceID int64  `form:"resourceId" binding:"required,gt=0"`
	Interval   string `form:"interval" binding:"required"`
}

type CellRequest struct {
	ResourceID int64  `json:"resourceId" binding:"required,gt=0"`
	Interval   string `json:"interval" binding:"required"`
}
