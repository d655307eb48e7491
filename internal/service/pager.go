package service

import "github.com/nurpe/rumbos-envios/internal/model"

type Pager struct {
	DefaultSize int
	MaxSize     int
}

type pageable interface {
	Paging() *model.Page
}

func (p Pager) normalize(target pageable) {
	page := target.Paging()
	if page.Page < 1 {
		page.Page = 1
	}
	if page.PageSize <= 0 {
		page.PageSize = p.DefaultSize
	}
	if p.MaxSize > 0 && page.PageSize > p.MaxSize {
		page.PageSize = p.MaxSize
	}
}
