package dto

// ── 分页请求 ──

// PaginationRequest 通用分页参数
type PaginationRequest struct {
	Page  int `form:"page"  binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// GetPage 获取页码（含默认值）
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetLimit 获取每页数量（含默认值）
func (p *PaginationRequest) GetLimit() int {
	if p.Limit <= 0 {
		return 10
	}
	return p.Limit
}

// GetOffset 计算偏移量
func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetLimit()
}

// ── 分页结果 ──

// PageResult 分页查询结果，由 handler 转换为 count + pagination 信封
type PageResult[T any] struct {
	Items []T
	Total int64
	Page  int
	Limit int
}

// NewPageResult 按分页请求组装结果
func NewPageResult[T any](items []T, total int64, req *PaginationRequest) *PageResult[T] {
	if items == nil {
		items = []T{}
	}
	return &PageResult[T]{
		Items: items,
		Total: total,
		Page:  req.GetPage(),
		Limit: req.GetLimit(),
	}
}
