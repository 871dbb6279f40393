package fine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lamdn/circura/internal/fine"
)

func TestCalculate(t *testing.T) {
	type args struct {
		price       int64
		daysOverdue int
		ratePercent float64
		condition   fine.Condition
	}

	type testCase struct {
		name string
		args args
		want int64
	}

	tests := []testCase{
		{
			name: "OnTimeNormal",
			args: args{price: 100000, daysOverdue: 0, ratePercent: 5, condition: fine.ConditionNormal},
			want: 0,
		},
		{
			name: "OnTimeDamaged",
			args: args{price: 100000, daysOverdue: 0, ratePercent: 5, condition: fine.ConditionDamaged},
			want: 50000,
		},
		{
			name: "OnTimeLost",
			args: args{price: 100000, daysOverdue: 0, ratePercent: 5, condition: fine.ConditionLost},
			want: 100000,
		},
		{
			name: "TenDaysOverdue",
			args: args{price: 100000, daysOverdue: 10, ratePercent: 5, condition: fine.ConditionNormal},
			want: 50000,
		},
		{
			name: "OverdueAndDamaged",
			args: args{price: 100000, daysOverdue: 5, ratePercent: 5, condition: fine.ConditionDamaged},
			want: 75000,
		},
		{
			name: "ZeroPrice",
			args: args{price: 0, daysOverdue: 30, ratePercent: 5, condition: fine.ConditionLost},
			want: 0,
		},
		{
			name: "NegativePrice",
			args: args{price: -50000, daysOverdue: 10, ratePercent: 5, condition: fine.ConditionLost},
			want: 0,
		},
		{
			name: "NegativeRateClamped",
			args: args{price: 100000, daysOverdue: 10, ratePercent: -5, condition: fine.ConditionNormal},
			want: 0,
		},
		{
			name: "ZeroRateStillChargesCondition",
			args: args{price: 80000, daysOverdue: 3, ratePercent: 0, condition: fine.ConditionDamaged},
			want: 40000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fine.Calculate(tt.args.price, tt.args.daysOverdue, tt.args.ratePercent, tt.args.condition)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculate_Monotonic(t *testing.T) {
	prev := int64(-1)

	for days := 0; days <= 60; days++ {
		got := fine.Calculate(100000, days, 5, fine.ConditionNormal)
		assert.GreaterOrEqual(t, got, int64(0))
		assert.GreaterOrEqual(t, got, prev, "fine must not decrease as days overdue grow")
		prev = got
	}

	prev = -1

	for price := int64(0); price <= 500000; price += 25000 {
		got := fine.Calculate(price, 7, 5, fine.ConditionDamaged)
		assert.GreaterOrEqual(t, got, prev, "fine must not decrease as price grows")
		prev = got
	}
}

func TestDaysOverdue(t *testing.T) {
	due := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	type testCase struct {
		name string
		now  time.Time
		want int
	}

	tests := []testCase{
		{name: "BeforeDue", now: due.AddDate(0, 0, -3), want: 0},
		{name: "ExactlyDue", now: due, want: 0},
		{name: "FiveDaysLate", now: due.AddDate(0, 0, 5), want: 5},
		{name: "PartialDayRoundsUp", now: due.Add(36 * time.Hour), want: 2},
		{name: "OneHourLate", now: due.Add(time.Hour), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fine.DaysOverdue(due, tt.now))
		})
	}
}

func TestCondition_Valid(t *testing.T) {
	assert.True(t, fine.ConditionNormal.Valid())
	assert.True(t, fine.ConditionDamaged.Valid())
	assert.True(t, fine.ConditionLost.Valid())
	assert.False(t, fine.Condition("pristine").Valid())
	assert.False(t, fine.Condition("").Valid())
}
