package main

import (
	"fmt"

	"github.com/fwojciec/adlib"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	counts, err := deps.Records.CountByStatus(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", adlib.ErrorMessage(err))
		return err
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	fmt.Fprintf(deps.Stdout, "total    %d\n", total)
	for _, status := range []adlib.Status{adlib.StatusSuccess, adlib.StatusError, adlib.StatusFailed} {
		fmt.Fprintf(deps.Stdout, "%-8s %d\n", status, counts[status])
	}

	return nil
}
