package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/sangga"
)

// Run executes the regions command.
func (c *RegionsCmd) Run(deps *Dependencies) error {
	region := strings.TrimSpace(c.Region)
	if region == "" {
		for _, r := range sangga.Regions() {
			fmt.Fprintln(deps.Stdout, r)
		}
		return nil
	}

	if !sangga.IsKnownRegion(region) {
		err := sangga.Errorf(sangga.ENOTFOUND, "unknown region %q", region)
		fmt.Fprintf(deps.Stderr, "error: %s\n", sangga.ErrorMessage(err))
		return err
	}
	if sangga.IsFreeInput(region) {
		fmt.Fprintf(deps.Stdout, "%s takes any location name, e.g. sangga search %s 판교\n", region, region)
		return nil
	}
	for _, d := range sangga.Districts(region) {
		fmt.Fprintln(deps.Stdout, d)
	}
	return nil
}
