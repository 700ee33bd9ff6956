package guardrail

import (
	"testing"

	"radiomesh-hq/warden/pkg/state"
)

func testAP(channel, powerDB, lastChange int) *state.AccessPoint {
	return &state.AccessPoint{ID: "AP-test", Channel: channel, PowerDB: powerDB, LastChangeMinutes: lastChange}
}

func TestDefaultRuleChainOrder(t *testing.T) {
	rules := defaultRuleChain()

	want := []string{"time_window", "change_budget", "hysteresis"}
	if len(rules) != len(want) {
		t.Fatalf("expected %d rules, got %d", len(want), len(rules))
	}
	for i, name := range want {
		if rules[i].Name() != name {
			t.Errorf("rule %d: expected %s, got %s", i, name, rules[i].Name())
		}
	}
}

func TestTimeWindowRule(t *testing.T) {
	tests := []struct {
		name      string
		peakHour  bool
		emergency bool
		wantPass  bool
	}{
		{"off peak, normal", false, false, true},
		{"off peak, emergency", false, true, true},
		{"peak, normal", true, false, false},
		{"peak, emergency", true, true, true},
	}

	rule := timeWindowRule{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := rule.Check(testAP(6, 20, 0), &ChangeRequest{Emergency: tt.emergency}, Inputs{Now: 500, PeakHour: tt.peakHour}, DefaultLimits())
			if (v == nil) != tt.wantPass {
				t.Errorf("expected pass=%v, got violation %v", tt.wantPass, v)
			}
			if v != nil && v.Reason != ReasonPeakHourBlocked {
				t.Errorf("expected reason %s, got %s", ReasonPeakHourBlocked, v.Reason)
			}
		})
	}
}

func TestChangeBudgetRule(t *testing.T) {
	tests := []struct {
		name       string
		lastChange int
		now        int
		wantPass   bool
	}{
		{"exactly at budget", 0, 240, true},
		{"one under budget", 0, 239, false},
		{"well past budget", 100, 1000, true},
		{"backwards clock", 1000, 500, false},
		{"sentinel admits t=0", -241, 0, true},
	}

	rule := changeBudgetRule{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := rule.Check(testAP(6, 20, tt.lastChange), &ChangeRequest{}, Inputs{Now: tt.now}, DefaultLimits())
			if (v == nil) != tt.wantPass {
				t.Errorf("expected pass=%v, got violation %v", tt.wantPass, v)
			}
			if v != nil && v.Reason != ReasonBudgetNotElapsed {
				t.Errorf("expected reason %s, got %s", ReasonBudgetNotElapsed, v.Reason)
			}
		})
	}
}

func TestHysteresisRule(t *testing.T) {
	tests := []struct {
		name     string
		newPower *int
		wantPass bool
	}{
		{"no power change requested", nil, true},
		{"delta zero", intp(20), false},
		{"delta one", intp(21), false},
		{"delta at threshold", intp(22), true},
		{"negative delta at threshold", intp(18), true},
		{"negative delta under threshold", intp(19), false},
	}

	rule := hysteresisRule{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := rule.Check(testAP(6, 20, 0), &ChangeRequest{NewPowerDB: tt.newPower}, Inputs{Now: 500}, DefaultLimits())
			if (v == nil) != tt.wantPass {
				t.Errorf("expected pass=%v, got violation %v", tt.wantPass, v)
			}
			if v != nil && v.Reason != ReasonHysteresisTooSmall {
				t.Errorf("expected reason %s, got %s", ReasonHysteresisTooSmall, v.Reason)
			}
		})
	}
}
