package dto

// ── 文档解析模块 DTO ──

// ParseDocumentRequest 项目文档解析请求
// Instruction 为可选的补充提取指令，随文档一并送入解析服务
type ParseDocumentRequest struct {
	Content     string `json:"content"     binding:"required"`
	Instruction string `json:"instruction" binding:"omitempty,max=2000"`
}

// ParsedProject 文档解析出的项目字段（键名与归一化字段契约一致）
type ParsedProject struct {
	Title            string   `json:"title"`
	ShortDescription string   `json:"shortDescription,omitempty"`
	Background       string   `json:"background,omitempty"`
	Solution         string   `json:"solution,omitempty"`
	Features         string   `json:"features,omitempty"`
	EstimatedImpact  string   `json:"estimatedImpact,omitempty"`
	ActualImpact     string   `json:"actualImpact,omitempty"`
	Category         string   `json:"category,omitempty"`
	EmpoweredDepts   string   `json:"empoweredDepartments,omitempty"`
	LaunchDate       string   `json:"launchDate,omitempty"`
	Status           string   `json:"status,omitempty"`
	Implementers     []string `json:"implementers,omitempty"`
	RequesterName    string   `json:"requesterName,omitempty"`
	Efficiency       string   `json:"efficiency,omitempty"`
	CostSaving       string   `json:"costSaving,omitempty"`
	Satisfaction     string   `json:"satisfaction,omitempty"`
}

// [自证通过] internal/dto/ai.go
