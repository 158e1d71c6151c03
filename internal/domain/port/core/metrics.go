package core

// Metrics records domain counters
type Metrics interface {
	// ObserveJoin counts a join attempt by outcome ("joined" or an error code name)
	ObserveJoin(category, outcome string)
	// ObserveWalletRequest counts deposit/withdraw requests by outcome
	ObserveWalletRequest(kind, outcome string)
	// ObserveModeration counts approve/reject decisions, including absorbed no-ops
	ObserveModeration(action, outcome string)
}
