package main

import (
	"fmt"

	"github.com/amirhossein-jamali/league-wallet/internal/domain/entity"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/port/usecase"
	"github.com/fatih/color"
)

var (
	accent  = color.New(color.FgCyan, color.Bold)
	success = color.New(color.FgGreen, color.Bold)
	warn    = color.New(color.FgYellow, color.Bold)
	danger  = color.New(color.FgRed, color.Bold)
	neutral = color.New(color.FgHiWhite)
)

func printSuccess(msg string) {
	success.Println(msg)
}

func printWarn(msg string) {
	warn.Println(msg)
}

func printError(msg string) {
	danger.Println(msg)
}

func printMatches(matches []*entity.Match) {
	accent.Printf("%-4s %-28s %-14s %-6s %-9s %-10s %s\n", "#", "TITLE", "MODE", "TEAM", "FEE", "PRIZE", "TIME")
	for _, m := range matches {
		neutral.Printf("%-4d %-28s %-14s %-6s %-9s %-10s %s\n",
			m.SequenceNumber,
			trimmed(m.Title, 28),
			m.Category.Label(),
			m.TeamFormat.Label(),
			m.EntryFee.String(),
			m.PrizeDescriptor,
			m.ScheduledTimeDescriptor,
		)
	}
	fmt.Printf("%d matches\n", len(matches))
}

func printAccounts(accounts []*entity.Account) {
	accent.Printf("%-15s %-20s %-7s %12s\n", "MOBILE", "NAME", "ROLE", "BALANCE")
	for _, a := range accounts {
		line := neutral
		if a.IsAdmin() {
			line = warn
		}
		line.Printf("%-15s %-20s %-7s %12s\n", a.Mobile, trimmed(a.DisplayName, 20), a.Role, a.BalanceMoney())
	}
	fmt.Printf("%d accounts\n", len(accounts))
}

func printBalanceChange(change *usecase.BalanceChange) {
	if change.Adjustment == nil {
		printWarn(fmt.Sprintf("%s already holds %s; nothing recorded", change.Account.Mobile, change.Account.BalanceMoney()))
		return
	}
	printSuccess(fmt.Sprintf("%s: %s -> %s (entry %s)",
		change.Account.Mobile,
		entity.NewMoney(change.Previous),
		change.Account.BalanceMoney(),
		change.Adjustment.ID,
	))
}
