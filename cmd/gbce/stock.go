package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// yieldCmd implements "yield".
type yieldCmd struct {
	catalogFlags
	symbol string
	price  float64
}

func (*yieldCmd) Name() string     { return "yield" }
func (*yieldCmd) Synopsis() string { return "prints the dividend yield of a stock at a price" }
func (*yieldCmd) Usage() string {
	return `yield -config <file> -symbol <SYM> -price <p>

Prints the dividend yield of a catalog stock at the given price.
`
}

func (c *yieldCmd) SetFlags(f *flag.FlagSet) {
	c.register(f)
	f.StringVar(&c.symbol, "symbol", "", "stock symbol")
	f.Float64Var(&c.price, "price", 0, "stock price")
}

func (c *yieldCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	st, err := c.stock(c.symbol)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	y, err := st.DividendYield(c.price)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%s dividend yield @ %g = %.4f\n", st.Symbol(), c.price, y)
	return subcommands.ExitSuccess
}

// peCmd implements "pe".
type peCmd struct {
	catalogFlags
	symbol string
	price  float64
}

func (*peCmd) Name() string     { return "pe" }
func (*peCmd) Synopsis() string { return "prints the P/E ratio of a stock at a price" }
func (*peCmd) Usage() string {
	return `pe -config <file> -symbol <SYM> -price <p>

Prints the P/E ratio (1 / dividend yield) of a catalog stock at the given price.
Stocks without a dividend have no P/E ratio.
`
}

func (c *peCmd) SetFlags(f *flag.FlagSet) {
	c.register(f)
	f.StringVar(&c.symbol, "symbol", "", "stock symbol")
	f.Float64Var(&c.price, "price", 0, "stock price")
}

func (c *peCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	st, err := c.stock(c.symbol)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	pe, err := st.PERatio(c.price)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%s P/E @ %g = %.2f\n", st.Symbol(), c.price, pe)
	return subcommands.ExitSuccess
}
