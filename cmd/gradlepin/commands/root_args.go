package commands

type RootArgs struct {
	logLevel       *string
	logFormat      *string
	cpuProfile     *string
	memProfile     *string
	memProfileRate *int
}

func NewRootArgs() *RootArgs {
	return &RootArgs{
		logLevel:       new(string),
		logFormat:      new(string),
		cpuProfile:     new(string),
		memProfile:     new(string),
		memProfileRate: new(int),
	}
}

func (a *RootArgs) GetLogLevel() string {
	return *a.logLevel
}

func (a *RootArgs) GetLogFormat() string {
	return *a.logFormat
}

func (a *RootArgs) GetCPUProfile() string {
	return *a.cpuProfile
}

func (a *RootArgs) GetMemProfile() string {
	return *a.memProfile
}

func (a *RootArgs) GetMemProfileRate() int {
	return *a.memProfileRate
}
