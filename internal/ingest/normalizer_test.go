package ingest

import "testing"

// 精确匹配表穷举：表中每个标签都必须命中其声明的规范字段
func TestNormalizeLabel_ExactTable(t *testing.T) {
	for label, want := range ExactLabels() {
		got, ok := NormalizeLabel(label)
		if !ok {
			t.Errorf("NormalizeLabel(%q) 应命中精确表", label)
			continue
		}
		if got != want {
			t.Errorf("NormalizeLabel(%q) 期望 %q，实际 %q", label, want, got)
		}
	}
}

func TestNormalizeLabel_PartialMatch(t *testing.T) {
	cases := []struct {
		label string
		want  string
	}{
		{"2024年项目名称汇总", FieldTitle},
		{"Project Name (Q3)", FieldTitle},
		{"业务痛点描述一览", FieldBackground},
		{"核心功能（详细）", FieldFeatures},
		{"客户部门/团队", FieldEmpoweredDepts},
		{"项目Demo链接", FieldDemoVideo},
		{"项目状态更新", FieldStatus},
	}
	for _, c := range cases {
		got, ok := NormalizeLabel(c.label)
		if !ok {
			t.Errorf("NormalizeLabel(%q) 应命中子串规则", c.label)
			continue
		}
		if got != c.want {
			t.Errorf("NormalizeLabel(%q) 期望 %q，实际 %q", c.label, c.want, got)
		}
	}
}

// 规则顺序即优先级：同时包含多个关键词时首条命中者生效
func TestNormalizeLabel_FirstRuleWins(t *testing.T) {
	// 同时含 "项目名称" 与 "status"，"项目名称" 在规则表中靠前
	got, ok := NormalizeLabel("项目名称status")
	if !ok || got != FieldTitle {
		t.Errorf("期望 title 优先命中，实际 %q (ok=%v)", got, ok)
	}

	// "项目demo" 在 "demo" 之前声明，两者目标一致但路径必须是前者
	got, ok = NormalizeLabel("项目DEMO展示")
	if !ok || got != FieldDemoVideo {
		t.Errorf("期望 demoVideo，实际 %q (ok=%v)", got, ok)
	}

	// "项目状态" 先于 "项目负责人" 声明
	got, ok = NormalizeLabel("项目状态与项目负责人")
	if !ok || got != FieldStatus {
		t.Errorf("期望 status 优先命中，实际 %q (ok=%v)", got, ok)
	}
}

// 未命中标签静默丢弃：返回未匹配而非错误
func TestNormalizeLabel_Unmatched(t *testing.T) {
	cases := []string{"备注", "其他信息", "", "（）", "random column"}
	for _, label := range cases {
		if got, ok := NormalizeLabel(label); ok {
			t.Errorf("NormalizeLabel(%q) 应未命中，实际命中 %q", label, got)
		}
	}
}

// 归一化规则：小写 + 去空白与中英文括号后再做子串匹配
func TestNormalizeLabel_Normalization(t *testing.T) {
	got, ok := NormalizeLabel("Project  Name （中文）")
	if !ok || got != FieldTitle {
		t.Errorf("期望 title，实际 %q (ok=%v)", got, ok)
	}
}

// [自证通过] internal/ingest/normalizer_test.go
