package engine

import "fmt"

// Rules holds the tunable constants of a session.
type Rules struct {
	StartingMoney    int `json:"starting_money"`
	GoBonus          int `json:"go_bonus"`
	JailFine         int `json:"jail_fine"`
	MaxDoubles       int `json:"max_doubles"`
	MaxJailTurns     int `json:"max_jail_turns"`
	IncomeTax        int `json:"income_tax"`
	SuperTax         int `json:"super_tax"`
	AuctionIncrement int `json:"auction_increment"`
	// UnmortgageInterest is a percentage of the mortgage value.
	UnmortgageInterest int `json:"unmortgage_interest"`
	Houses             int `json:"houses"`
	Hotels             int `json:"hotels"`
	// SaleRefund is the percentage of the house cost returned on sale.
	SaleRefund int `json:"sale_refund"`
}

func DefaultRules() Rules {
	return Rules{
		StartingMoney:      1500,
		GoBonus:            200,
		JailFine:           50,
		MaxDoubles:         3,
		MaxJailTurns:       3,
		IncomeTax:          200,
		SuperTax:           100,
		AuctionIncrement:   10,
		UnmortgageInterest: 10,
		Houses:             32,
		Hotels:             12,
		SaleRefund:         50,
	}
}

func (r Rules) validate() error {
	switch {
	case r.StartingMoney < 0, r.GoBonus < 0, r.JailFine < 0, r.IncomeTax < 0, r.SuperTax < 0:
		return fmt.Errorf("%w: negative amount in rules", ErrInvalidConfig)
	case r.MaxDoubles < 1, r.MaxJailTurns < 1:
		return fmt.Errorf("%w: doubles and jail caps must be positive", ErrInvalidConfig)
	case r.AuctionIncrement < 1:
		return fmt.Errorf("%w: auction increment must be positive", ErrInvalidConfig)
	case r.Houses < 0, r.Hotels < 0:
		return fmt.Errorf("%w: negative building pool", ErrInvalidConfig)
	case r.UnmortgageInterest < 0, r.SaleRefund < 0, r.SaleRefund > 100:
		return fmt.Errorf("%w: percentage out of range", ErrInvalidConfig)
	}
	return nil
}

func (r Rules) unmortgageCost(mortgageValue int) int {
	return mortgageValue + mortgageValue*r.UnmortgageInterest/100
}

// RNG is the only source of randomness. *rand.Rand satisfies it.
type RNG interface {
	Intn(n int) int
}

// Dice is one throw of two six-sided dice.
type Dice [2]int

func (d Dice) Total() int {
	return d[0] + d[1]
}

func (d Dice) Double() bool {
	return d[0] != 0 && d[0] == d[1]
}

func throw(rng RNG) Dice {
	return Dice{rng.Intn(6) + 1, rng.Intn(6) + 1}
}
