package service

import "github.com/mudgalz/foodie-be/internal/domain"

// NormalizePage maps absent, zero and negative page values to the first page.
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func paginate(total, page int) domain.Pagination {
	return domain.Pagination{
		Total: total,
		Page:  page,
		Pages: (total + PageSize - 1) / PageSize,
	}
}
