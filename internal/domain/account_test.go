package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

var testNow = time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

func newChecking(t *testing.T, limit int64, maxWithdrawals int) *Account {
	t.Helper()

	acc, err := NewCheckingAccount(1, "111", CheckingPolicy{
		PerOperationLimit: decimal.NewFromInt(limit),
		MaxWithdrawals:    maxWithdrawals,
	}, testNow)
	if err != nil {
		t.Fatalf("NewCheckingAccount: %v", err)
	}
	return acc
}

func TestAccount_ValidateWithdrawal(t *testing.T) {
	tests := []struct {
		name        string
		account     func(t *testing.T) *Account
		balance     decimal.Decimal
		withdrawals int
		amount      decimal.Decimal
		expectErr   error
	}{
		{
			name:      "basic - amount within balance",
			account:   func(t *testing.T) *Account { return NewBasicAccount(1, "111", testNow) },
			balance:   decimal.NewFromInt(100),
			amount:    decimal.NewFromInt(100),
			expectErr: nil,
		},
		{
			name:      "basic - amount above balance",
			account:   func(t *testing.T) *Account { return NewBasicAccount(1, "111", testNow) },
			balance:   decimal.NewFromInt(100),
			amount:    decimal.NewFromInt(150),
			expectErr: ErrInsufficientFunds,
		},
		{
			name:      "basic - zero amount",
			account:   func(t *testing.T) *Account { return NewBasicAccount(1, "111", testNow) },
			balance:   decimal.NewFromInt(100),
			amount:    decimal.Zero,
			expectErr: ErrInvalidAmount,
		},
		{
			name:      "checking - above per-operation limit",
			account:   func(t *testing.T) *Account { return newChecking(t, 500, 3) },
			balance:   decimal.NewFromInt(1000),
			amount:    decimal.NewFromInt(600),
			expectErr: ErrLimitExceeded,
		},
		{
			name:      "checking - limit checked before withdrawal cap",
			account:   func(t *testing.T) *Account { return newChecking(t, 500, 0) },
			balance:   decimal.NewFromInt(1000),
			amount:    decimal.NewFromInt(600),
			expectErr: ErrLimitExceeded,
		},
		{
			name:      "checking - cap reached",
			account:   func(t *testing.T) *Account { return newChecking(t, 500, 0) },
			balance:   decimal.NewFromInt(1000),
			amount:    decimal.NewFromInt(100),
			expectErr: ErrWithdrawalCapReached,
		},
		{
			name:        "checking - cap checked before balance",
			account:     func(t *testing.T) *Account { return newChecking(t, 500, 2) },
			balance:     decimal.NewFromInt(10),
			withdrawals: 2,
			amount:      decimal.NewFromInt(100),
			expectErr:   ErrWithdrawalCapReached,
		},
		{
			name:      "checking - insufficient funds within limit",
			account:   func(t *testing.T) *Account { return newChecking(t, 500, 3) },
			balance:   decimal.NewFromInt(100),
			amount:    decimal.NewFromInt(200),
			expectErr: ErrInsufficientFunds,
		},
		{
			name:        "checking - allowed",
			account:     func(t *testing.T) *Account { return newChecking(t, 500, 3) },
			balance:     decimal.NewFromInt(1000),
			withdrawals: 2,
			amount:      decimal.NewFromInt(500),
			expectErr:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := tt.account(t)
			acc.balance = tt.balance
			for i := 0; i < tt.withdrawals; i++ {
				acc.history.Append(KindWithdrawal, decimal.NewFromInt(1), testNow.AddDate(0, 0, -i-1))
			}

			err := acc.ValidateWithdrawal(tt.amount)

			if tt.expectErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.expectErr != nil && !errors.Is(err, tt.expectErr) {
				t.Fatalf("expected %v, got %v", tt.expectErr, err)
			}
		})
	}
}

func TestAccount_ValidateDeposit(t *testing.T) {
	acc := newChecking(t, 10, 0)

	if err := acc.ValidateDeposit(decimal.NewFromInt(10000)); err != nil {
		t.Fatalf("deposits must ignore checking limits, got %v", err)
	}

	if err := acc.ValidateDeposit(decimal.NewFromInt(-1)); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestAccount_TypeAndSnapshot(t *testing.T) {
	basic := NewBasicAccount(3, "222", testNow)
	if basic.Type() != AccountTypeBasic {
		t.Fatalf("expected basic, got %s", basic.Type())
	}
	if _, ok := basic.CheckingPolicy(); ok {
		t.Fatal("basic account must not carry a checking policy")
	}

	snap := basic.Snapshot()
	if snap.Agency != DefaultAgency || snap.Number != 3 || !snap.Balance.IsZero() {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if snap.PerOperationLimit != nil || snap.MaxWithdrawals != nil {
		t.Fatalf("basic snapshot must not have limits: %+v", snap)
	}

	checking := newChecking(t, 500, 50)
	snap = checking.Snapshot()
	if snap.Type != AccountTypeChecking || snap.PerOperationLimit == nil || !snap.PerOperationLimit.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("unexpected checking snapshot: %+v", snap)
	}
	if snap.MaxWithdrawals == nil || *snap.MaxWithdrawals != 50 {
		t.Fatalf("unexpected max withdrawals: %+v", snap)
	}
}

func TestNewCheckingAccount_InvalidPolicy(t *testing.T) {
	_, err := NewCheckingAccount(1, "111", CheckingPolicy{PerOperationLimit: decimal.Zero, MaxWithdrawals: 1}, testNow)
	if !errors.Is(err, ErrInvalidAccountType) {
		t.Fatalf("expected ErrInvalidAccountType, got %v", err)
	}

	_, err = NewCheckingAccount(1, "111", CheckingPolicy{PerOperationLimit: decimal.NewFromInt(1), MaxWithdrawals: -1}, testNow)
	if !errors.Is(err, ErrInvalidAccountType) {
		t.Fatalf("expected ErrInvalidAccountType, got %v", err)
	}
}

func TestParseAccountType(t *testing.T) {
	tests := []struct {
		input   string
		want    AccountType
		wantErr bool
	}{
		{"", AccountTypeChecking, false},
		{"checking", AccountTypeChecking, false},
		{"basic", AccountTypeBasic, false},
		{"savings", "", true},
	}

	for _, tt := range tests {
		got, err := ParseAccountType(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidAccountType) {
				t.Fatalf("ParseAccountType(%q): expected ErrInvalidAccountType, got %v", tt.input, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("ParseAccountType(%q) = %s, %v; want %s", tt.input, got, err, tt.want)
		}
	}
}
