package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/fwojciec/sangga"
	"github.com/fwojciec/sangga/csv"
	"github.com/fwojciec/sangga/termenv"
)

// cliSearchKey identifies the CLI to the search service's rate limiter.
const cliSearchKey = "cli"

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	params, err := c.params()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sangga.ErrorMessage(err))
		return err
	}

	outcome, err := deps.Search.Search(deps.Ctx, cliSearchKey, params)
	if err != nil {
		msg := sangga.ErrorMessage(err)
		if sangga.ErrorCode(err) == sangga.EINTERNAL {
			msg = sangga.MsgSearchFailed
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", msg)
		return err
	}

	w := deps.Stdout
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", c.Output, err)
		}
		defer f.Close()
		w = f
	}

	if err := c.write(w, params, outcome); err != nil {
		return err
	}
	if c.Output != "" {
		fmt.Fprintf(deps.Stderr, "Wrote %d listings to %s\n", len(outcome.Result.Properties), c.Output)
	}
	return nil
}

// params converts the command line into search parameters.
func (c *SearchCmd) params() (sangga.SearchParams, error) {
	p := sangga.DefaultSearchParams()

	region := strings.TrimSpace(c.Region)
	if !sangga.IsKnownRegion(region) {
		return p, sangga.Errorf(sangga.EINVALID, "unknown region %q. Run 'sangga regions' to list them", region)
	}
	p.SelectRegion(region)

	if sub := strings.TrimSpace(c.SubRegion); sub != "" {
		if !sangga.IsFreeInput(region) && !slices.Contains(sangga.Districts(region), sub) {
			return p, sangga.Errorf(sangga.EINVALID, "unknown district %q in %s. Run 'sangga regions %s' to list them", sub, region, region)
		}
		p.SelectSubRegion(sub)
	}
	if sangga.IsFreeInput(region) && p.SubRegion == "" {
		return p, sangga.Errorf(sangga.EINVALID, "a location name is required with %s", region)
	}

	p.Categories = nil
	for _, cat := range c.Category {
		if !slices.Contains(sangga.Categories, cat) {
			return p, sangga.Errorf(sangga.EINVALID, "unknown category %q", cat)
		}
		if !p.HasCategory(cat) {
			p.Categories = append(p.Categories, cat)
		}
	}

	p.DealTypes = nil
	for _, d := range c.DealType {
		deal := sangga.DealType(d)
		if !p.HasDealType(deal) {
			p.DealTypes = append(p.DealTypes, deal)
		}
	}

	p.DepositRange = sangga.Range{c.DepositMin, c.DepositMax}
	p.RentRange = sangga.Range{c.RentMin, c.RentMax}
	return p, p.Validate()
}

// searchOutput is the JSON document written by --format json.
type searchOutput struct {
	Location   string                `json:"location"`
	Properties []*sangga.Property    `json:"properties"`
	Sources    []sangga.Source       `json:"sources"`
	Insight    *sangga.MarketInsight `json:"insight,omitempty"`
}

func (c *SearchCmd) write(w io.Writer, params sangga.SearchParams, outcome *sangga.SearchOutcome) error {
	result := outcome.Result
	switch c.Format {
	case "csv":
		if len(result.Properties) == 0 {
			return nil
		}
		return csv.NewExporter().ExportProperties(w, result.Properties)

	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(searchOutput{
			Location:   params.Location(),
			Properties: result.Properties,
			Sources:    result.Sources,
			Insight:    outcome.Insight,
		})

	case "md":
		if len(result.Properties) == 0 {
			_, err := fmt.Fprintln(w, sangga.MsgNoResults)
			return err
		}
		_, err := fmt.Fprintln(w, sangga.FormatProperties(result.Properties))
		return err

	default:
		p := termenv.NewPrinter(w, termenv.ParseColorMode(c.Color))
		if outcome.Insight != nil {
			if err := p.WriteInsight(params.Location(), outcome.Insight); err != nil {
				return err
			}
			fmt.Fprintln(w)
		}
		if err := p.WriteTable(result.Properties); err != nil {
			return err
		}
		if len(result.Sources) > 0 {
			fmt.Fprintln(w)
		}
		return p.WriteSources(result.Sources)
	}
}
