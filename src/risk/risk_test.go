package risk

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPositionSize(t *testing.T) {
	tests := []struct {
		name       string
		in         PositionSizeInput
		wantRisk   decimal.Decimal
		wantPip    decimal.Decimal
		wantSize   decimal.Decimal
		wantMargin decimal.Decimal
	}{
		{
			name: "one percent of 10k with 50 pip stop",
			in: PositionSizeInput{
				Balance:      decimal.RequireFromString("10000"),
				RiskPercent:  decimal.RequireFromString("1"),
				StopLossPips: decimal.RequireFromString("50"),
				LotSize:      decimal.RequireFromString("1"),
				Leverage:     decimal.RequireFromString("100"),
			},
			wantRisk:   decimal.RequireFromString("100"),
			wantPip:    decimal.RequireFromString("10"),
			wantSize:   decimal.RequireFromString("0.2"),
			wantMargin: decimal.RequireFromString("200"),
		},
		{
			name: "leverage defaults to one when unset",
			in: PositionSizeInput{
				Balance:      decimal.RequireFromString("1000"),
				RiskPercent:  decimal.RequireFromString("2"),
				StopLossPips: decimal.RequireFromString("20"),
				LotSize:      decimal.RequireFromString("1"),
			},
			wantRisk:   decimal.RequireFromString("20"),
			wantPip:    decimal.RequireFromString("10"),
			wantSize:   decimal.RequireFromString("0.1"),
			wantMargin: decimal.RequireFromString("10000"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PositionSize(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.RiskAmount.Equal(tt.wantRisk) {
				t.Fatalf("risk amount %s, want %s", got.RiskAmount, tt.wantRisk)
			}
			if !got.PipValue.Equal(tt.wantPip) {
				t.Fatalf("pip value %s, want %s", got.PipValue, tt.wantPip)
			}
			if !got.PositionSize.Equal(tt.wantSize) {
				t.Fatalf("position size %s, want %s", got.PositionSize, tt.wantSize)
			}
			if !got.MarginRequired.Equal(tt.wantMargin) {
				t.Fatalf("margin %s, want %s", got.MarginRequired, tt.wantMargin)
			}
		})
	}
}

func TestPositionSizeRejectsNonPositiveInputs(t *testing.T) {
	base := PositionSizeInput{
		Balance:      decimal.RequireFromString("10000"),
		RiskPercent:  decimal.RequireFromString("1"),
		StopLossPips: decimal.RequireFromString("50"),
		LotSize:      decimal.RequireFromString("1"),
	}

	zeroed := []func(*PositionSizeInput){
		func(in *PositionSizeInput) { in.Balance = decimal.Zero },
		func(in *PositionSizeInput) { in.RiskPercent = decimal.Zero },
		func(in *PositionSizeInput) { in.StopLossPips = decimal.Zero },
		func(in *PositionSizeInput) { in.LotSize = decimal.Zero },
	}

	for i, mutate := range zeroed {
		in := base
		mutate(&in)
		if _, err := PositionSize(in); err == nil {
			t.Fatalf("case %d: expected error for non-positive input", i)
		}
	}
}
