package dto

// ── 用户模块 DTO ──

// UserResponse 用户信息响应（脱敏）
type UserResponse struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Email      string              `json:"email"`
	Role       string              `json:"role"`
	Position   string              `json:"position,omitempty"`
	Avatar     string              `json:"avatar,omitempty"`
	Department *DepartmentResponse `json:"department,omitempty"`
}

// DepartmentResponse 部门简要信息
type DepartmentResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UpdateUserRequest 更新用户信息请求
type UpdateUserRequest struct {
	Name         *string `json:"name"          binding:"omitempty,min=2,max=50"`
	Position     *string `json:"position"`
	Avatar       *string `json:"avatar"`
	DepartmentID *string `json:"department_id" binding:"omitempty,uuid"`
}

// UserListResponse 用户分页列表
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Total int64          `json:"total"`
}

// [自证通过] internal/dto/user.go
