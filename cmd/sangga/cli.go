package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/sangga"
	"github.com/fwojciec/sangga/collect"
	"github.com/fwojciec/sangga/config"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	// ConfigPath is the config file in use; empty selects config.ConfigPath.
	ConfigPath string
	Config     config.Config

	Logger  *slog.Logger
	Search  sangga.SearchService
	Limiter *collect.KeyLimiter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Model    string `help:"Gemini model" default:"${model}"`
	LogLevel string `name:"log-level" help:"Log level (debug, info, warn, error)" default:"${log_level}"`

	Serve   ServeCmd   `cmd:"" help:"Run the web front-end"`
	Search  SearchCmd  `cmd:"" help:"Search listings once and print them"`
	Regions RegionsCmd `cmd:"" help:"List provinces or the districts of a province"`
	Config  ConfigCmd  `cmd:"" help:"Manage the config file"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr          string        `short:"a" help:"Listen address" default:"${addr}"`
	SearchTimeout time.Duration `name:"search-timeout" help:"Upper bound for one search" default:"3m"`
	SweepInterval time.Duration `name:"sweep-interval" help:"How often idle sessions are dropped" default:"5m"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Region     string   `arg:"" help:"Province, e.g. 서울특별시, or 기타 for a free-form location"`
	SubRegion  string   `arg:"" optional:"" help:"District or, with 기타, any location name"`
	Category   []string `short:"c" help:"Property category (repeatable)" default:"지식산업센터"`
	DealType   []string `short:"d" name:"deal-type" help:"Deal type (repeatable)" default:"월세"`
	DepositMin int      `name:"deposit-min" help:"Minimum deposit in 만원" default:"0"`
	DepositMax int      `name:"deposit-max" help:"Maximum deposit in 만원" default:"5000"`
	RentMin    int      `name:"rent-min" help:"Minimum monthly rent in 만원" default:"0"`
	RentMax    int      `name:"rent-max" help:"Maximum monthly rent in 만원" default:"300"`
	Insight    bool     `help:"Include a market insight" default:"true" negatable:""`
	Format     string   `short:"f" help:"Output format" enum:"table,csv,json,md" default:"table"`
	Output     string   `short:"o" help:"Write to file instead of stdout" type:"path"`
	Color      string   `help:"Colour output" enum:"auto,always,never" default:"auto"`
}

// RegionsCmd is the "regions" subcommand.
type RegionsCmd struct {
	Region string `arg:"" optional:"" help:"Province whose districts to list"`
}

// ConfigCmd groups config file subcommands.
type ConfigCmd struct {
	Init ConfigInitCmd `cmd:"" help:"Write a default config file"`
	Show ConfigShowCmd `cmd:"" help:"Print the effective configuration"`
}

// ConfigInitCmd is the "config init" subcommand.
type ConfigInitCmd struct{}

// ConfigShowCmd is the "config show" subcommand.
type ConfigShowCmd struct{}
