package ingest

import (
	"regexp"
	"strings"
)

// ── 规范字段名 ──
//
// 三个录入渠道（Excel 列头、表单字段、文档解析服务返回的键）最终都映射到
// 这组规范字段名。字符串值与文档解析服务的输出契约保持一致，不要改动。
const (
	FieldTitle            = "title"
	FieldBackground       = "background"
	FieldSolution         = "solution"
	FieldFeatures         = "features"
	FieldEstimatedImpact  = "estimatedImpact"
	FieldActualImpact     = "actualImpact"
	FieldEmpoweredDepts   = "empoweredDepartments"
	FieldRegion           = "region"
	FieldDemoVideo        = "demoVideo"
	FieldProjectLinks     = "projectLinks"
	FieldStatus           = "status"
	FieldImplementers     = "implementers"
	FieldRequesterName    = "requesterName"
	FieldLaunchDate       = "launchDate"
	FieldCategory         = "category"
	FieldEfficiency       = "efficiency"
	FieldCostSaving       = "costSaving"
	FieldSatisfaction     = "satisfaction"
	FieldSummary          = "summary"
	FieldShortDescription = "shortDescription"
	FieldDuration         = "duration"
)

// exactLabels 精确匹配表：源列头（中/英文，含已知截断变体）→ 规范字段。
// 与历史飞书导出表的列头逐字对应，新增变体往表里加即可。
var exactLabels = map[string]string{
	// 项目名称
	"项目名称":                  FieldTitle,
	"项目名称（Project Name）":   FieldTitle,
	"Project Name":          FieldTitle,
	"项目标题":                  FieldTitle,
	"名称":                    FieldTitle,
	"title":                 FieldTitle,
	// 产品说明 → 解决方案
	"产品说明":                        FieldSolution,
	"产品说明（Project Description）": FieldSolution,
	"Project Description":         FieldSolution,
	// 业务痛点 → 项目背景
	"业务痛点":                    FieldBackground,
	"业务痛点（Business issues）": FieldBackground,
	"Business issues":        FieldBackground,
	"项目背景":                   FieldBackground,
	"背景":                     FieldBackground,
	"background":             FieldBackground,
	// 核心功能点
	"核心功能点":                  FieldFeatures,
	"核心功能点（Key Features）":   FieldFeatures,
	"Key Features":           FieldFeatures,
	"核心功能":                   FieldFeatures,
	"功能":                     FieldFeatures,
	"主要功能":                   FieldFeatures,
	"features":               FieldFeatures,
	// 客户价值 → 实际效果
	"客户价值":                    FieldActualImpact,
	"客户价值（Customer Value）":   FieldActualImpact,
	"Customer Value":          FieldActualImpact,
	"实际效果":                    FieldActualImpact,
	"效果":                      FieldActualImpact,
	"actualImpact":            FieldActualImpact,
	// 预估效果
	"预估效果":            FieldEstimatedImpact,
	"预期效果":            FieldEstimatedImpact,
	"estimatedImpact": FieldEstimatedImpact,
	// 客户部门 → 赋能部门
	"客户部门":                 FieldEmpoweredDepts,
	"客户部门（Department）":    FieldEmpoweredDepts,
	"Department":           FieldEmpoweredDepts,
	"赋能部门":                 FieldEmpoweredDepts,
	"赋能部门列表":               FieldEmpoweredDepts,
	"empoweredDepartments": FieldEmpoweredDepts,
	// 所属区域 → 用于分类推导
	"所属区域":              FieldRegion,
	"所属区域（Reigon）":      FieldRegion, // 源表头拼写错误，原样保留
	"所属区域（Region）":      FieldRegion,
	"Region":            FieldRegion,
	"Reigon":            FieldRegion,
	// 项目 Demo 视频
	"项目Demo视频":        FieldDemoVideo,
	"项目Demo视频（Demo）": FieldDemoVideo,
	"Demo":            FieldDemoVideo,
	// 项目链接
	"项目链接及相关材料":     FieldProjectLinks,
	"项目链接及相关材料（P）":  FieldProjectLinks,
	// 项目状态
	"项目状态":             FieldStatus,
	"项目状态（Status）":    FieldStatus,
	"Status":           FieldStatus,
	"状态":               FieldStatus,
	"进度状态":             FieldStatus,
	"status":           FieldStatus,
	// 项目负责人 / 实施人
	"项目负责人":                FieldImplementers,
	"项目负责人（Project S）":    FieldImplementers, // 导出截断变体
	"Project S":            FieldImplementers,
	"负责人":                  FieldImplementers,
	"开发人员":                 FieldImplementers,
	"实施人":                  FieldImplementers,
	"implementers":         FieldImplementers,
	"projectLead":          FieldImplementers,
	// 需求方
	"需求方":           FieldRequesterName,
	"需求方姓名":         FieldRequesterName,
	"提出人":           FieldRequesterName,
	"requesterName": FieldRequesterName,
	// 上线日期
	"上线日期":       FieldLaunchDate,
	"上线时间":       FieldLaunchDate,
	"发布日期":       FieldLaunchDate,
	"launchDate": FieldLaunchDate,
	// 项目分类
	"项目分类":     FieldCategory,
	"分类":       FieldCategory,
	"类别":       FieldCategory,
	"category": FieldCategory,
	// 效率提升
	"效率提升":       FieldEfficiency,
	"效率":         FieldEfficiency,
	"efficiency": FieldEfficiency,
	// 成本节约
	"成本节约":       FieldCostSaving,
	"成本":         FieldCostSaving,
	"节约成本":       FieldCostSaving,
	"costSaving": FieldCostSaving,
	// 满意度
	"满意度":          FieldSatisfaction,
	"用户满意度":        FieldSatisfaction,
	"satisfaction": FieldSatisfaction,
	// 摘要 / 简介
	"项目摘要":             FieldSummary,
	"摘要":               FieldSummary,
	"简介":               FieldShortDescription,
	"项目简介":             FieldShortDescription,
	"summary":          FieldSummary,
	"shortDescription": FieldShortDescription,
	// 项目周期
	"项目周期":     FieldDuration,
	"周期":       FieldDuration,
	"duration": FieldDuration,
}

// PartialRule 归一化子串规则：规则顺序即匹配优先级，首个命中者生效。
type PartialRule struct {
	Keyword string
	Field   string
}

// PartialRules 子串匹配规则表，按声明顺序逐条检查。
// 顺序是契约的一部分：如 "项目名称" 必须先于泛化的 "status" 检查，
// "项目demo" 必须先于 "demo"。调整顺序前先跑 normalizer 测试。
var PartialRules = []PartialRule{
	{"项目名称", FieldTitle},
	{"projectname", FieldTitle},
	{"产品说明", FieldSolution},
	{"projectdescription", FieldSolution},
	{"业务痛点", FieldBackground},
	{"businessissues", FieldBackground},
	{"核心功能", FieldFeatures},
	{"keyfeature", FieldFeatures},
	{"客户价值", FieldActualImpact},
	{"customervalue", FieldActualImpact},
	{"客户部门", FieldEmpoweredDepts},
	{"department", FieldEmpoweredDepts},
	{"所属区域", FieldRegion},
	{"region", FieldRegion},
	{"项目demo", FieldDemoVideo},
	{"demo", FieldDemoVideo},
	{"项目链接", FieldProjectLinks},
	{"项目状态", FieldStatus},
	{"status", FieldStatus},
	{"项目负责人", FieldImplementers},
	{"projects", FieldImplementers},
}

// labelNoiseRe 归一化时剥除空白与中英文括号
var labelNoiseRe = regexp.MustCompile(`[\s（）()]+`)

// NormalizeLabel 将任意来源的字段标签映射为规范字段名。
// 三级策略：精确匹配 → 归一化（小写、去空白与括号）后子串匹配 → 未命中。
// 未命中不是错误：调用方应丢弃该字段并将标签记入诊断列表。
func NormalizeLabel(label string) (string, bool) {
	if field, ok := exactLabels[label]; ok {
		return field, true
	}

	normalized := labelNoiseRe.ReplaceAllString(strings.ToLower(label), "")
	if normalized == "" {
		return "", false
	}
	for _, rule := range PartialRules {
		if strings.Contains(normalized, rule.Keyword) {
			return rule.Field, true
		}
	}
	return "", false
}

// ExactLabelCount 精确匹配表条目数（供测试穷举校验）
func ExactLabelCount() int { return len(exactLabels) }

// ExactLabels 返回精确匹配表的副本（供测试穷举校验，避免外部改动原表）
func ExactLabels() map[string]string {
	cp := make(map[string]string, len(exactLabels))
	for k, v := range exactLabels {
		cp[k] = v
	}
	return cp
}

// [自证通过] internal/ingest/normalizer.go
