package shell

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/shlex"
	"github.com/hadoopsh/hadoopsh/client"
	"github.com/hadoopsh/hadoopsh/types"
	"github.com/hadoopsh/hadoopsh/utils"
	"github.com/peterh/liner"
	"github.com/pkg/errors"
)

// ErrQuit ends the command loop.
var ErrQuit = errors.New("quit")

// Handler runs one command. The returned value is rendered with Echo.
type Handler func(ctx context.Context, args Args) (interface{}, error)

// Command is one entry of a shell's command table. An entry without a
// name is a separator in the help page.
type Command struct {
	Name    string
	Aliases []string
	Params  string
	Help    string
	Run     Handler
}

func (c Command) matches(verb string) bool {
	if c.Name == "" {
		return false
	}
	if c.Name == verb {
		return true
	}
	for _, a := range c.Aliases {
		if a == verb {
			return true
		}
	}
	return false
}

// Args is the remainder of a command line.
type Args struct {
	Raw    string
	Fields []string
}

// ParseArgs splits raw with shell quoting rules, falling back to plain
// whitespace splitting when the quoting is unbalanced.
func ParseArgs(raw string) Args {
	raw = strings.TrimSpace(raw)
	fields, err := shlex.Split(raw)
	if err != nil {
		fields = strings.Fields(raw)
	}
	return Args{Raw: raw, Fields: fields}
}

func (a Args) Len() int { return len(a.Fields) }

// Arg returns the i-th field or "".
func (a Args) Arg(i int) string {
	if i < len(a.Fields) {
		return a.Fields[i]
	}
	return ""
}

// ProfileStore persists connection profiles, db.DB implements it.
type ProfileStore interface {
	SaveProfile(profile *types.Profile) (*types.Profile, error)
	GetProfile(service, name string) (*types.Profile, error)
	ListProfiles(service string) ([]types.Profile, error)
}

type Options struct {
	Out         io.Writer
	Profiles    ProfileStore
	Prompter    Prompter
	HistoryPath string
}

// Shell is an interactive command interpreter bound to one service
// endpoint.
type Shell struct {
	Service  string
	Banner   string
	Endpoint *client.Endpoint

	// Cluster exposes shell state saved with profiles, e.g. the Knox topology
	Cluster    func() string
	SetCluster func(string)
	// OnConnect runs after the endpoint was changed by load
	OnConnect func(ctx context.Context)
	// Location is shown after the base url in the prompt
	Location func() string

	out         io.Writer
	profiles    ProfileStore
	prompter    Prompter
	historyPath string
	commands    []Command
}

func New(service, banner string, endpoint *client.Endpoint, commands []Command, opts Options) *Shell {
	s := &Shell{
		Service:     service,
		Banner:      banner,
		Endpoint:    endpoint,
		out:         opts.Out,
		profiles:    opts.Profiles,
		prompter:    opts.Prompter,
		historyPath: opts.HistoryPath,
	}
	if s.out == nil {
		s.out = os.Stdout
	}
	if s.prompter == nil {
		s.prompter = PromptUI{}
	}
	if endpoint.CurlOut == nil {
		endpoint.CurlOut = s.out
	}
	builtins := s.builtins()
	s.commands = make([]Command, 0, len(commands)+1+len(builtins))
	s.commands = append(s.commands, commands...)
	s.commands = append(s.commands, Command{})
	s.commands = append(s.commands, builtins...)
	return s
}

func (s *Shell) Out() io.Writer { return s.out }

func (s *Shell) Prompt() string {
	if s.Location != nil {
		return s.Endpoint.BaseURL() + " " + s.Location() + "> "
	}
	return s.Endpoint.BaseURL() + "> "
}

func (s *Shell) lookup(verb string) (Command, bool) {
	for _, c := range s.commands {
		if c.matches(verb) {
			return c, true
		}
	}
	return Command{}, false
}

func splitVerb(line string) (string, string) {
	line = strings.TrimSpace(line)
	i := strings.IndexAny(line, " \t")
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimSpace(line[i+1:])
}

// Execute runs one command line and reports whether the shell should exit.
func (s *Shell) Execute(ctx context.Context, line string) bool {
	verb, rest := splitVerb(line)
	if verb == "" {
		return false
	}
	return s.dispatch(ctx, verb, ParseArgs(rest))
}

func (s *Shell) dispatch(ctx context.Context, verb string, args Args) bool {
	cmd, ok := s.lookup(verb)
	if !ok {
		fmt.Fprintf(s.out, "Invalid command '%s'\n", verb)
		fmt.Fprintln(s.out, "Please press h(elp) for more details")
		return false
	}

	logger := utils.GetLogger()
	logger.Debug().Str("shell", s.Service).Str("command", cmd.Name).Msg("executing")
	value, err := cmd.Run(ctx, args)
	if errors.Is(err, ErrQuit) {
		return true
	}
	if err != nil {
		s.printError(err)
		return false
	}
	Echo(s.out, value)
	return false
}

func (s *Shell) printError(err error) {
	var statusErr *client.StatusError
	if errors.As(err, &statusErr) {
		Echo(s.out, statusErr.Result.Value())
		return
	}
	fmt.Fprintf(s.out, "Error: %v\n", err)
}

// RunOnce executes a single command given as separate arguments. The
// arguments are used as is, without another round of shell splitting.
func (s *Shell) RunOnce(ctx context.Context, args []string) {
	if len(args) == 0 {
		return
	}
	s.dispatch(ctx, args[0], Args{Raw: strings.Join(args[1:], " "), Fields: args[1:]})
}

// keepInHistory reports whether a line may be written to the history file.
// Password changes never are.
func keepInHistory(line string) bool {
	verb, _ := splitVerb(line)
	return verb != "passwd"
}

func (s *Shell) complete(line string) (c []string) {
	for _, cmd := range s.commands {
		for _, name := range append([]string{cmd.Name}, cmd.Aliases...) {
			if name != "" && strings.HasPrefix(name, line) {
				c = append(c, name)
			}
		}
	}
	return
}

// Run reads commands until quit or end of input.
func (s *Shell) Run(ctx context.Context) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(s.complete)

	if s.historyPath != "" {
		if f, err := os.Open(s.historyPath); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
		defer s.saveHistory(line)
	}

	fmt.Fprintf(s.out, "Welcome to the %s\n", s.Banner)
	for {
		input, err := line.Prompt(s.Prompt())
		if err == liner.ErrPromptAborted {
			continue
		}
		if err == io.EOF {
			fmt.Fprintln(s.out, "quit")
			break
		}
		if err != nil {
			return errors.Wrap(err, "error reading command")
		}

		if strings.TrimSpace(input) == "" {
			continue
		}
		if keepInHistory(input) {
			line.AppendHistory(input)
		}
		if s.Execute(ctx, input) {
			break
		}
	}
	fmt.Fprintln(s.out, "Exit...")
	return nil
}

func (s *Shell) saveHistory(line *liner.State) {
	f, err := os.Create(s.historyPath)
	if err != nil {
		logger := utils.GetLogger()
		logger.Debug().Err(err).Msg("could not write history")
		return
	}
	defer f.Close()
	line.WriteHistory(f)
}
