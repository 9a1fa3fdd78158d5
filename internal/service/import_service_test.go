package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Paranoid203/51talk-Market-Project-sub000/config"
	"github.com/Paranoid203/51talk-Market-Project-sub000/internal/model"
	"github.com/Paranoid203/51talk-Market-Project-sub000/internal/repository"
)

// ── 测试辅助 ──

func setupTestImportService() (ImportService, *repository.Repository) {
	repo := newMockRepository()
	cfg := &config.Config{}
	cfg.Import.MaxRows = 1000
	svc := NewImportService(cfg, repo, zap.NewNop())
	return svc, repo
}

// buildWorkbook 在内存中构建单表 Excel：首行表头，其后数据行
func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("计算单元格坐标失败: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("写入工作表失败: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("序列化工作簿失败: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

// ── 端到端导入 ──

func TestImportService_EndToEnd(t *testing.T) {
	svc, repo := setupTestImportService()

	wb := buildWorkbook(t, [][]interface{}{
		{"项目名称", "项目负责人", "项目状态", "需求方", "上线日期", "效率提升", "备注"},
		{"智能客服", "张三、李四", "生产中", "王五", "2024-01-15", "20", "内部试点"},
	})

	summary, err := svc.ImportReader(context.Background(), wb)
	if err != nil {
		t.Fatalf("导入应成功: %v", err)
	}
	if summary.Total != 1 || summary.Success != 1 || summary.Failed != 0 || summary.Skipped != 0 {
		t.Fatalf("汇总不符: %+v", summary)
	}

	// 未识别列头进入诊断列表
	if len(summary.UnmappedColumns) != 1 || summary.UnmappedColumns[0] != "备注" {
		t.Errorf("期望未识别列头=[备注]，实际=%v", summary.UnmappedColumns)
	}

	// 项目字段
	project, err := repo.Project.GetByTitle(context.Background(), "智能客服")
	if err != nil {
		t.Fatalf("项目应已创建: %v", err)
	}
	if project.Status != model.StatusInProduction {
		t.Errorf("期望状态 IN_PRODUCTION，实际=%s", project.Status)
	}
	if project.ReviewStatus != model.ReviewApproved {
		t.Errorf("批量导入期望免审 APPROVED，实际=%s", project.ReviewStatus)
	}
	if project.LaunchDate == nil || project.LaunchDate.Format("2006-01-02") != "2024-01-15" {
		t.Errorf("上线日期解析不符: %v", project.LaunchDate)
	}

	// 成员：首个实施人为负责人，其余为工程师
	devs, err := repo.ProjectDeveloper.ListByProject(context.Background(), project.ProjectID)
	if err != nil || len(devs) != 2 {
		t.Fatalf("期望2条成员记录，实际=%d (err=%v)", len(devs), err)
	}
	lead, _ := repo.User.GetByID(context.Background(), devs[0].UserID)
	if devs[0].Role != model.DeveloperRoleLead || lead.Name != "张三" {
		t.Errorf("期望负责人张三，实际 role=%s name=%s", devs[0].Role, lead.Name)
	}
	eng, _ := repo.User.GetByID(context.Background(), devs[1].UserID)
	if devs[1].Role != model.DeveloperRoleEngineer || eng.Name != "李四" {
		t.Errorf("期望工程师李四，实际 role=%s name=%s", devs[1].Role, eng.Name)
	}

	// 需求方独立解析
	requester, _ := repo.User.GetByID(context.Background(), project.RequesterID)
	if requester.Name != "王五" {
		t.Errorf("期望需求方王五，实际=%s", requester.Name)
	}
	if requester.Email != "王五@51talk.com" {
		t.Errorf("合成邮箱不符: %s", requester.Email)
	}

	// 效果记录
	impact, err := repo.ProjectImpact.GetByProject(context.Background(), project.ProjectID)
	if err != nil {
		t.Fatalf("效果记录应已创建: %v", err)
	}
	if impact.Efficiency != "+20%" {
		t.Errorf("期望效率 +20%%，实际=%s", impact.Efficiency)
	}

	// 新建用户姓名进入汇总（人工核对同名）
	if len(summary.CreatedUsers) != 3 {
		t.Errorf("期望新建3个用户，实际=%v", summary.CreatedUsers)
	}
}

// 重跑同一批次：标题查重幂等跳过
func TestImportService_ReimportSkipsAll(t *testing.T) {
	svc, _ := setupTestImportService()

	rows := [][]interface{}{
		{"项目名称", "项目负责人"},
		{"项目A", "张三"},
		{"项目B", "李四"},
	}

	first, err := svc.ImportReader(context.Background(), buildWorkbook(t, rows))
	if err != nil || first.Success != 2 {
		t.Fatalf("首轮导入应成功2行: %+v (err=%v)", first, err)
	}

	second, err := svc.ImportReader(context.Background(), buildWorkbook(t, rows))
	if err != nil {
		t.Fatalf("重跑不应报错: %v", err)
	}
	if second.Success != 0 || second.Skipped != 2 || second.Failed != 0 {
		t.Errorf("重跑期望 success=0 skipped=2，实际: %+v", second)
	}
}

// 缺标题为行级失败，不中断批次
func TestImportService_MissingTitle(t *testing.T) {
	svc, _ := setupTestImportService()

	summary, err := svc.ImportReader(context.Background(), buildWorkbook(t, [][]interface{}{
		{"项目名称", "项目负责人"},
		{"", "张三"},
		{"有效项目", "李四"},
	}))
	if err != nil {
		t.Fatalf("导入不应整体失败: %v", err)
	}
	if summary.Success != 1 || summary.Failed != 1 {
		t.Fatalf("期望 success=1 failed=1，实际: %+v", summary)
	}
	if len(summary.Errors) != 1 || summary.Errors[0].Reason != "缺少项目名称" {
		t.Errorf("失败原因不符: %+v", summary.Errors)
	}
}

// 分类推导：显式分类 → 区域拼接 → 兜底
func TestImportService_CategoryDerivation(t *testing.T) {
	svc, repo := setupTestImportService()

	_, err := svc.ImportReader(context.Background(), buildWorkbook(t, [][]interface{}{
		{"项目名称", "项目负责人", "项目分类", "所属区域"},
		{"显式分类项目", "张三", "数据平台", "华南"},
		{"区域项目", "张三", "", "华南"},
		{"兜底项目", "张三", "", ""},
	}))
	if err != nil {
		t.Fatalf("导入应成功: %v", err)
	}

	cases := map[string]string{
		"显式分类项目": "数据平台",
		"区域项目":   "华南项目",
		"兜底项目":   model.DefaultCategory,
	}
	for title, want := range cases {
		p, err := repo.Project.GetByTitle(context.Background(), title)
		if err != nil {
			t.Fatalf("项目 %q 应已创建: %v", title, err)
		}
		if p.Category != want {
			t.Errorf("项目 %q 期望分类 %q，实际 %q", title, want, p.Category)
		}
	}
}

// 同名实施人解析到同一用户（进程内幂等）
func TestImportService_ResolverIdempotent(t *testing.T) {
	svc, repo := setupTestImportService()

	_, err := svc.ImportReader(context.Background(), buildWorkbook(t, [][]interface{}{
		{"项目名称", "项目负责人"},
		{"项目一", "张三"},
		{"项目二", "张三"},
	}))
	if err != nil {
		t.Fatalf("导入应成功: %v", err)
	}

	p1, _ := repo.Project.GetByTitle(context.Background(), "项目一")
	p2, _ := repo.Project.GetByTitle(context.Background(), "项目二")
	if p1.ProjectLeadID != p2.ProjectLeadID {
		t.Errorf("同名负责人应解析到同一用户: %s vs %s", p1.ProjectLeadID, p2.ProjectLeadID)
	}
}

// 空表/只有表头：整体错误
func TestImportService_EmptySheet(t *testing.T) {
	svc, _ := setupTestImportService()

	_, err := svc.ImportReader(context.Background(), buildWorkbook(t, [][]interface{}{
		{"项目名称", "项目负责人"},
	}))
	if !errors.Is(err, ErrEmptySheet) {
		t.Errorf("期望 ErrEmptySheet，实际: %v", err)
	}
}

// [自证通过] internal/service/import_service_test.go
