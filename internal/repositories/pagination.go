package repositories

// PageSize is the fixed number of records per paginated response.
const PageSize = 4

// TotalPages returns ceil(count / PageSize).
func TotalPages(count int64) int {
	return int((count + PageSize - 1) / PageSize)
}

func pageOffset(page int) int {
	return (page - 1) * PageSize
}
