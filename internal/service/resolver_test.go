package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/Paranoid203/51talk-Market-Project-sub000/internal/model"
)

// 空库：懒创建兜底部门，之后稳定返回同一个
func TestResolver_DefaultDepartmentLazyCreate(t *testing.T) {
	repo := newMockRepository()
	res := newResolver(repo, zap.NewNop())
	ctx := context.Background()

	dept, err := res.resolveDefaultDepartment(ctx)
	if err != nil {
		t.Fatalf("解析应成功: %v", err)
	}
	if dept.Name != model.DefaultDepartmentName {
		t.Errorf("期望懒创建 %q，实际=%q", model.DefaultDepartmentName, dept.Name)
	}

	again, err := res.resolveDefaultDepartment(ctx)
	if err != nil || again.DepartmentID != dept.DepartmentID {
		t.Errorf("重复解析应返回同一部门: %s vs %s (err=%v)", again.DepartmentID, dept.DepartmentID, err)
	}
}

// 已有部门：取最早创建者，不按名匹配
func TestResolver_DefaultDepartmentPicksEarliest(t *testing.T) {
	repo := newMockRepository()
	res := newResolver(repo, zap.NewNop())
	ctx := context.Background()

	first := &model.Department{Name: "技术中心"}
	repo.Department.Create(ctx, first)
	repo.Department.Create(ctx, &model.Department{Name: "运营中心"})

	dept, err := res.resolveDefaultDepartment(ctx)
	if err != nil {
		t.Fatalf("解析应成功: %v", err)
	}
	if dept.DepartmentID != first.DepartmentID {
		t.Errorf("期望最早创建的部门，实际=%q", dept.Name)
	}
}

func TestResolver_UserGetOrCreate(t *testing.T) {
	repo := newMockRepository()
	res := newResolver(repo, zap.NewNop())
	ctx := context.Background()

	dept, _ := res.resolveDefaultDepartment(ctx)

	user, isNew, err := res.resolveUser(ctx, "张三", dept)
	if err != nil {
		t.Fatalf("解析应成功: %v", err)
	}
	if !isNew {
		t.Error("首次解析应新建用户")
	}
	if user.Email != "张三@51talk.com" {
		t.Errorf("合成邮箱不符: %s", user.Email)
	}
	if user.PasswordHash != placeholderPasswordHash {
		t.Error("占位账号应使用不可登录的占位哈希")
	}
	if user.Role != model.RoleMember {
		t.Errorf("占位账号角色应为 member，实际=%s", user.Role)
	}

	// 同名稳定解析，空白裁剪后等价
	again, isNew, err := res.resolveUser(ctx, "  张三 ", dept)
	if err != nil || isNew || again.UserID != user.UserID {
		t.Errorf("重复解析应命中同一用户: %s vs %s (isNew=%v err=%v)", again.UserID, user.UserID, isNew, err)
	}
}

func TestResolver_UserEmptyName(t *testing.T) {
	repo := newMockRepository()
	res := newResolver(repo, zap.NewNop())

	if _, _, err := res.resolveUser(context.Background(), "   ", nil); err == nil {
		t.Error("空姓名应报错")
	}
}

func TestSyntheticEmail(t *testing.T) {
	cases := map[string]string{
		"张三":       "张三@51talk.com",
		"Li Ming":  "liming@51talk.com",
		" Wang  W": "wangw@51talk.com",
	}
	for name, want := range cases {
		if got := syntheticEmail(name); got != want {
			t.Errorf("syntheticEmail(%q) 期望 %q，实际 %q", name, want, got)
		}
	}
}

// [自证通过] internal/service/resolver_test.go
