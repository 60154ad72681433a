package services

import "gestionmax.fr/hub/pkg/queryparams"

func paginated[T any](items []T, total int64, params queryparams.ListParams) *queryparams.PaginatedResult {
	if items == nil {
		items = []T{}
	}
	return &queryparams.PaginatedResult{
		Data: items,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  total,
			TotalPages:  queryparams.CalculateTotalPages(total, params.PerPage),
		},
	}
}
