package entity

import "math"

// Overview summarizes the league for the admin dashboard. Amounts are minor units.
type Overview struct {
	TotalAccounts int
	TotalMatches  int
	PendingCount  int
	TotalRevenue  int64 // Sum of approved deposits
	TotalPayout   int64 // Sum of approved withdrawals
}

// Tally folds one ledger entry into the overview. Sums stop at math.MaxInt64.
func (o *Overview) Tally(tx *Transaction) {
	switch {
	case tx.IsPending():
		o.PendingCount++
	case tx.Status == StatusApproved && tx.Kind == KindDeposit:
		o.TotalRevenue = saturatingAdd(o.TotalRevenue, tx.Amount)
	case tx.Status == StatusApproved && tx.Kind == KindWithdraw:
		o.TotalPayout = saturatingAdd(o.TotalPayout, tx.Amount)
	}
}

func saturatingAdd(total, amount int64) int64 {
	sum, err := AddMinor(total, amount)
	if err != nil {
		return math.MaxInt64
	}
	return sum
}
