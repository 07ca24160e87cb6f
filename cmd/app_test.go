package cmd

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/allocation"
	"github.com/google/subcommands"
)

const testHoldings = `{"symbol":"AAA","quantity":80,"price":{"currency":"USD","amount":100}}
{"symbol":"BBB","quantity":40,"price":{"currency":"USD","amount":50}}
`

const testPrices = `{"on":"2024-01-02","AAA":100,"BBB":50}
{"on":"2024-01-03","AAA":100.3,"BBB":50.05}
{"on":"2024-01-04","AAA":99.9,"BBB":50.02}
{"on":"2024-01-05","AAA":100.4,"BBB":50.1}
{"on":"2024-01-08","AAA":100.5,"BBB":50.12}
{"on":"2024-01-09","AAA":100.2,"BBB":50.15}
`

// setup writes the input files in a temporary directory and points the global flags to them.
// An empty config leaves the configuration file missing.
func setup(t *testing.T, config string) {
	t.Helper()
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	oldHoldings, oldPrices, oldConfig := *holdingsFile, *pricesFile, *configFile
	t.Cleanup(func() { *holdingsFile, *pricesFile, *configFile = oldHoldings, oldPrices, oldConfig })

	*holdingsFile = write("holdings.jsonl", testHoldings)
	*pricesFile = write("prices.jsonl", testPrices)
	*configFile = filepath.Join(dir, "alloc.yaml")
	if config != "" {
		write("alloc.yaml", config)
	}
}

// run executes cmd with args and returns what it printed.
func run(t *testing.T, cmd subcommands.Command, args ...string) (string, subcommands.ExitStatus) {
	t.Helper()
	var out bytes.Buffer
	old := stdout
	stdout = &out
	defer func() { stdout = old }()

	f := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("invalid arguments %v: %v", args, err)
	}
	status := cmd.Execute(context.Background(), f)
	return strings.TrimSpace(out.String()), status
}

func TestLoadOptions(t *testing.T) {
	tests := []struct {
		name    string
		config  string
		want    func(o allocation.Options) bool
		wantErr bool
	}{
		{
			name:   "missing file",
			config: "",
			want:   func(o allocation.Options) bool { return o.Threshold == 0.01 && o.Selection == allocation.ByTarget },
		},
		{
			name:   "empty file",
			config: "\n",
			want:   func(o allocation.Options) bool { return o.NumPoints == 100 },
		},
		{
			name:   "overrides",
			config: "threshold: 0.05\nselection: sharpe\nsolver: gradient\nalignment: forward-fill\n",
			want: func(o allocation.Options) bool {
				return o.Threshold == 0.05 && o.Selection == allocation.BySharpe &&
					o.Method == allocation.ProjectedGradient && o.Alignment == allocation.AlignForwardFill &&
					o.AnnualizationFactor == 252
			},
		},
		{name: "unknown field", config: "treshold: 0.05\n", wantErr: true},
		{name: "unknown selection", config: "selection: luck\n", wantErr: true},
		{name: "invalid value", config: "threshold: -1\n", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup(t, tt.config)
			got, err := loadOptions()
			if (err != nil) != tt.wantErr {
				t.Fatalf("loadOptions() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && !tt.want(got) {
				t.Errorf("loadOptions() = %+v", got)
			}
			if err == nil && got.Logger == nil {
				t.Errorf("loadOptions() has no logger")
			}
		})
	}
}

func TestQuery(t *testing.T) {
	data := []byte(`{"b":{"y":2,"x":1},"list":[{"v":"a"},{"v":"b"}]}`)
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{path: "$.b", want: `{"x":1,"y":2}`},
		{path: "$.list[*].v", want: `["a","b"]`},
		{path: "$.list[1]", want: `{"v":"b"}`},
		{path: "$.missing", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := query(data, tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("query() error = %v, wantErr %v", err, tt.wantErr)
			}
			if string(got) != tt.want {
				t.Errorf("query() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name   string
		cmd    subcommands.Command
		config string
		args   []string
		want   string
	}{
		{"stats symbols", &statsCmd{}, "", []string{"-q", "$.symbols"}, `["AAA","BBB"]`},
		{"stats observations", &statsCmd{}, "", []string{"-q", "$.observations"}, `[5,5]`},
		{"optimize total", &optimizeCmd{}, "", []string{"-n", "10", "-samples", "0", "-q", "$.totalValue"}, `{"amount":10000,"currency":"USD"}`},
		{"rebalance actions", &rebalanceCmd{}, "", []string{"-weights", "AAA=0.5,BBB=0.5", "-q", "$.adjustments[*].action"}, `["sell","buy"]`},
		{"rebalance shares", &rebalanceCmd{}, "", []string{"-weights", "AAA=0.5,BBB=0.5", "-q", "$.adjustments[*].shares"}, `[30,60]`},
		{"rebalance threshold from config", &rebalanceCmd{}, "threshold: 0.5\n", []string{"-weights", "AAA=0.5,BBB=0.5", "-q", "$.totalBuy.amount"}, `0`},
		{"topic list", &topicCmd{}, "", []string{"-list"}, "config\nfrontier\ninputs\noptimize\nrebalance\nreview\nstats"},
		{"rebalance threshold flag wins", &rebalanceCmd{}, "threshold: 0.5\n", []string{"-threshold", "0.01", "-weights", "AAA=0.5,BBB=0.5", "-q", "$.totalBuy.amount"}, `3000`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup(t, tt.config)
			got, status := run(t, tt.cmd, tt.args...)
			if status != subcommands.ExitSuccess {
				t.Fatalf("%s %v exited with %v", tt.cmd.Name(), tt.args, status)
			}
			if got != tt.want {
				t.Errorf("%s %v = %s, want %s", tt.cmd.Name(), tt.args, got, tt.want)
			}
		})
	}
}

func TestSample_Reproducible(t *testing.T) {
	setup(t, "")
	first, status := run(t, &sampleCmd{}, "-n", "20", "-seed", "7", "-json")
	if status != subcommands.ExitSuccess {
		t.Fatalf("sample exited with %v", status)
	}
	second, _ := run(t, &sampleCmd{}, "-n", "20", "-seed", "7", "-json")
	if first != second {
		t.Errorf("sample with the same seed differs:\n%s\n%s", first, second)
	}
	other, _ := run(t, &sampleCmd{}, "-n", "20", "-seed", "8", "-json")
	if first == other {
		t.Errorf("sample with another seed is the same:\n%s", first)
	}
}

func TestCommands_Markdown(t *testing.T) {
	tests := []struct {
		cmd  subcommands.Command
		args []string
		want string
	}{
		{&statsCmd{}, nil, "diversification score"},
		{&frontierCmd{}, []string{"-n", "10"}, "Efficient Frontier"},
		{&sampleCmd{}, []string{"-n", "50"}, "Random Portfolios"},
		{&optimizeCmd{}, []string{"-n", "10", "-samples", "50"}, "Rebalancing"},
		{&rebalanceCmd{}, []string{"-weights", "AAA=0.5,BBB=0.5"}, "Rebalancing"},
		{&topicCmd{}, []string{"rebalance"}, "Rebalance"},
	}
	for _, tt := range tests {
		t.Run(tt.cmd.Name(), func(t *testing.T) {
			setup(t, "")
			got, status := run(t, tt.cmd, tt.args...)
			if status != subcommands.ExitSuccess {
				t.Fatalf("%s %v exited with %v", tt.cmd.Name(), tt.args, status)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("%s %v does not contain %q:\n%s", tt.cmd.Name(), tt.args, tt.want, got)
			}
		})
	}
}

func TestCommands_Errors(t *testing.T) {
	tests := []struct {
		name   string
		cmd    subcommands.Command
		config string
		args   []string
		want   subcommands.ExitStatus
	}{
		{"rebalance without weights", &rebalanceCmd{}, "", nil, subcommands.ExitUsageError},
		{"rebalance unknown symbol", &rebalanceCmd{}, "", []string{"-weights", "ZZZ=1"}, subcommands.ExitUsageError},
		{"sample negative count", &sampleCmd{}, "", []string{"-n", "-1"}, subcommands.ExitUsageError},
		{"optimize invalid config", &optimizeCmd{}, "frontier_points: 0\n", nil, subcommands.ExitFailure},
		{"stats invalid query", &statsCmd{}, "", []string{"-q", "$.nothing"}, subcommands.ExitFailure},
		{"topic unknown", &topicCmd{}, "", []string{"nothing"}, subcommands.ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup(t, tt.config)
			if _, got := run(t, tt.cmd, tt.args...); got != tt.want {
				t.Errorf("%s %v exited with %v, want %v", tt.cmd.Name(), tt.args, got, tt.want)
			}
		})
	}
}

func TestCommands_MissingInput(t *testing.T) {
	setup(t, "")
	*pricesFile = filepath.Join(t.TempDir(), "none.jsonl")
	if _, got := run(t, &statsCmd{}); got != subcommands.ExitFailure {
		t.Errorf("stats without prices exited with %v, want a failure", got)
	}
	// rebalance does not read the prices.
	if _, got := run(t, &rebalanceCmd{}, "-weights", "AAA=1", "-json"); got != subcommands.ExitSuccess {
		t.Errorf("rebalance without prices exited with %v", got)
	}
}

func TestCompletion(t *testing.T) {
	c := subcommands.NewCommander(flag.NewFlagSet("alloc", flag.ContinueOnError), "alloc")
	c.Register(c.HelpCommand(), "help")
	Register(c)

	root := Completion(c)
	for _, name := range []string{"stats", "frontier", "sample", "optimize", "rebalance", "topic", "review", "help"} {
		if _, ok := root.Sub[name]; !ok {
			t.Errorf("Completion() has no %q command", name)
		}
	}
	if got := root.Sub["optimize"].Flags["selection"].Predict(""); len(got) != 3 {
		t.Errorf("optimize -selection predicts %v", got)
	}
	if got := root.Sub["topic"].Args.Predict(""); !contains(got, "rebalance") {
		t.Errorf("topic predicts %v, want the topics", got)
	}

	if got := root.Sub["topic"].Flags["list"].Predict(""); len(got) != 0 {
		t.Errorf("topic -list predicts %v, want nothing", got)
	}

	if !IsRegistered(c, "optimize") || IsRegistered(c, "hello") {
		t.Errorf("IsRegistered() does not match the registered commands")
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
