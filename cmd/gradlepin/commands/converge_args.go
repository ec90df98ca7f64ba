package commands

import "time"

type ConvergeArgs struct {
	policy  *string
	glob    *string
	only    *[]string
	timeout *time.Duration
	workers *int
	dryRun  *bool
	quiet   *bool
}

func NewConvergeArgs() *ConvergeArgs {
	return &ConvergeArgs{
		policy:  new(string),
		glob:    new(string),
		only:    new([]string),
		timeout: new(time.Duration),
		workers: new(int),
		dryRun:  new(bool),
		quiet:   new(bool),
	}
}

func (a *ConvergeArgs) GetPolicy() string {
	return *a.policy
}

func (a *ConvergeArgs) GetGlob() string {
	return *a.glob
}

func (a *ConvergeArgs) GetOnly() []string {
	return *a.only
}

func (a *ConvergeArgs) GetTimeout() time.Duration {
	return *a.timeout
}

func (a *ConvergeArgs) GetWorkers() int {
	return *a.workers
}

func (a *ConvergeArgs) GetDryRun() bool {
	return *a.dryRun
}

func (a *ConvergeArgs) GetQuiet() bool {
	return *a.quiet
}
