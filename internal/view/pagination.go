package view

import (
	"fmt"
	"strings"

	"slotify/internal/models"
)

type PageParams struct {
	Page     int
	PerPage  int
	Title    string
	ShowHint bool
}

// Page describes the visible window after clamping.
type Page struct {
	Start      int
	End        int
	Number     int
	TotalPages int
}

// Paginate - универсальная функция для отрисовки пагинированного списка
func Paginate(params PageParams, totalCount int, renderer func(startIdx, endIdx int) string) (string, Page) {
	perPage := params.PerPage
	if perPage <= 0 {
		perPage = models.DefaultPaginationSize
	}

	startIdx := params.Page * perPage
	endIdx := startIdx + perPage
	if endIdx > totalCount {
		endIdx = totalCount
	}

	totalPages := (totalCount + perPage - 1) / perPage
	if params.Page >= totalPages && totalPages > 0 {
		params.Page = totalPages - 1
		startIdx = params.Page * perPage
		endIdx = totalCount
	}
	if startIdx < 0 {
		startIdx = 0
	}

	var message strings.Builder
	if params.Title != "" {
		message.WriteString(fmt.Sprintf("%s\n\n", params.Title))
	}
	if totalPages > 1 {
		message.WriteString(fmt.Sprintf("Page %d of %d\n\n", params.Page+1, totalPages))
	}
	message.WriteString(renderer(startIdx, endIdx))

	if params.ShowHint && totalPages > 1 {
		var nav []string
		if params.Page > 0 {
			nav = append(nav, "p - previous page")
		}
		if params.Page < totalPages-1 {
			nav = append(nav, "n - next page")
		}
		message.WriteString("\n" + strings.Join(nav, ", ") + "\n")
	}

	return message.String(), Page{Start: startIdx, End: endIdx, Number: params.Page, TotalPages: totalPages}
}
