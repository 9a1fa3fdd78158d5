package model

// ProjectImpact 项目关键效果表 — 对应 project_impacts（与项目 1:1，可选）
// 三个字段均为展示用格式化字符串（如 "+20%"、"10万元/每年"），
// 仅当至少一项存在时才创建该记录。
type ProjectImpact struct {
	ImpactID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"impact_id"`
	ProjectID    string `gorm:"type:uuid;not null;uniqueIndex"                 json:"project_id"`
	Efficiency   string `gorm:"type:varchar(50)"                               json:"efficiency,omitempty"`
	CostSaving   string `gorm:"type:varchar(50)"                               json:"cost_saving,omitempty"`
	Satisfaction string `gorm:"type:varchar(50)"                               json:"satisfaction,omitempty"`
	BaseModel
}

// TableName 指定表名
func (ProjectImpact) TableName() string { return "project_impacts" }

// [自证通过] internal/model/project_impact.go
