package model

import (
	"testing"
	"time"
)

func TestSecondTrancheOverdue(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -1)
	future := now.AddDate(0, 0, 1)

	tests := []struct {
		name  string
		order Order
		want  bool
	}{
		{
			name: "pending past due",
			order: Order{
				PaymentMode: PaymentModeInstallment,
				Installment: Installment{SecondStatus: TrancheStatusPending, SecondDueAt: &past},
			},
			want: true,
		},
		{
			name: "pending before due date",
			order: Order{
				PaymentMode: PaymentModeInstallment,
				Installment: Installment{SecondStatus: TrancheStatusPending, SecondDueAt: &future},
			},
			want: false,
		},
		{
			name: "paid past due date is not overdue",
			order: Order{
				PaymentMode: PaymentModeInstallment,
				Installment: Installment{SecondStatus: TrancheStatusPaid, SecondDueAt: &past},
			},
			want: false,
		},
		{
			name: "full payment order never overdue",
			order: Order{
				PaymentMode: PaymentModeFull,
				Installment: Installment{SecondStatus: TrancheStatusPending, SecondDueAt: &past},
			},
			want: false,
		},
		{
			name: "missing due date",
			order: Order{
				PaymentMode: PaymentModeInstallment,
				Installment: Installment{SecondStatus: TrancheStatusPending},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.order.SecondTrancheOverdue(now); got != tt.want {
				t.Errorf("SecondTrancheOverdue() = %v, want %v", got, tt.want)
			}
		})
	}
}
