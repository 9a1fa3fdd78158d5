package dto

// ── 部署申请模块 DTO ──

// ApplyReplicationRequest 发起部署申请请求
type ApplyReplicationRequest struct {
	ProjectID        string `json:"project_id"         binding:"required,uuid"`
	ApplicantName    string `json:"applicant_name"     binding:"required,max=100"`
	Department       string `json:"department"`
	ContactPhone     string `json:"contact_phone"`
	Email            string `json:"email"              binding:"omitempty,email"`
	TeamSize         string `json:"team_size"`
	Urgency          string `json:"urgency"            binding:"omitempty,oneof=normal urgent emergency"`
	TargetLaunchDate string `json:"target_launch_date"`
	BusinessScenario string `json:"business_scenario"  binding:"required"`
	ExpectedGoals    string `json:"expected_goals"`
	BudgetRange      string `json:"budget_range"`
	AdditionalNeeds  string `json:"additional_needs"`
}

// UpdateReplicationStatusRequest 推进部署申请状态
type UpdateReplicationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=APPROVED DEPLOYED"`
}

// ListReplicationsQuery 部署申请列表查询参数
type ListReplicationsQuery struct {
	ProjectID string `form:"project_id" binding:"omitempty,uuid"`
	Status    string `form:"status"    binding:"omitempty,oneof=APPLIED APPROVED DEPLOYED"`
	Page      int    `form:"page,default=1"       binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

// ReplicationResponse 部署申请响应
type ReplicationResponse struct {
	ID               string `json:"id"`
	ProjectID        string `json:"project_id"`
	ProjectTitle     string `json:"project_title,omitempty"`
	ApplicantName    string `json:"applicant_name"`
	Department       string `json:"department,omitempty"`
	Urgency          string `json:"urgency"`
	BusinessScenario string `json:"business_scenario"`
	ExpectedGoals    string `json:"expected_goals,omitempty"`
	Status           string `json:"status"`
	AppliedAt        string `json:"applied_at"`
	ApprovedAt       string `json:"approved_at,omitempty"`
	DeployedAt       string `json:"deployed_at,omitempty"`
	AIAnalysis       string `json:"ai_analysis,omitempty"`
	AIAnalysisAt     string `json:"ai_analysis_at,omitempty"`
}

// ReplicationListResponse 部署申请分页列表
type ReplicationListResponse struct {
	Items []ReplicationResponse `json:"items"`
	Total int64                 `json:"total"`
}

// [自证通过] internal/dto/replication.go
