package cli

import "tsplit/internal/config"

// Flags holds command-line flags
type Flags struct {
	Processors  int
	TestPath    string
	NameFilter  string
	Nodes       string
	NodeNumber  string
	HashByClass bool
	Algorithm   string
	LPTData     string
	Disabled    bool
	Format      string
	Output      string
	Save        bool
	Interactive bool
	LogLevel    string
}

// partitionFlags are the flags whose explicit use overrides the environment
var partitionFlags = []string{"nodes", "node-number", "hash-by-class", "algorithm", "lpt-data", "distributed-disabled"}

// ToConfigFlags converts CLI flags to config flags. changed reports whether
// a flag was set on the command line.
func (f *Flags) ToConfigFlags(changed func(name string) bool) config.Flags {
	set := make(map[string]bool)
	for _, name := range partitionFlags {
		if changed != nil && changed(name) {
			set[name] = true
		}
	}
	return config.Flags{
		Processors:  f.Processors,
		TestPath:    f.TestPath,
		NameFilter:  f.NameFilter,
		Nodes:       f.Nodes,
		NodeNumber:  f.NodeNumber,
		HashByClass: f.HashByClass,
		Algorithm:   f.Algorithm,
		LPTData:     f.LPTData,
		Disabled:    f.Disabled,
		Format:      f.Format,
		Output:      f.Output,
		Save:        f.Save || f.Output != "",
		Interactive: f.Interactive,
		Changed:     set,
	}
}
