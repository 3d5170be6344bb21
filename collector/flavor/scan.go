package flavor

import (
	"bufio"
	"context"
	"io"
	"os/exec"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ftahirops/xinfo/model"
)

// Runner runs a command and returns its stdout.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs the command with os/exec.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Scanner runs apt-cache policy over the flavor table.
type Scanner struct {
	AptCache string // binary, default "apt-cache"
	Run      Runner
	Log      *logrus.Entry
}

// NewScanner returns a Scanner using os/exec.
func NewScanner(aptCache string, log *logrus.Entry) *Scanner {
	if aptCache == "" {
		aptCache = "apt-cache"
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Scanner{
		AptCache: aptCache,
		Run:      ExecRunner,
		Log:      log.WithField("component", "flavor"),
	}
}

// Scan returns the installed flavors in output order. A missing apt-cache or a
// failed run yields nil; a non-zero exit still parses whatever was printed.
func (s *Scanner) Scan(ctx context.Context) []model.Flavor {
	pkgs := Packages()
	if len(pkgs) == 0 {
		return nil
	}
	args := append([]string{"policy"}, pkgs...)

	out, err := s.Run(ctx, s.AptCache, args...)
	if err != nil {
		if len(out) == 0 {
			s.Log.Debugf("%s policy: %v", s.AptCache, err)
			return nil
		}
		s.Log.Debugf("%s policy exited with %v, parsing partial output", s.AptCache, err)
	}
	return Parse(strings.NewReader(string(out)))
}

var packageLine = regexp.MustCompile(`^([^\s:]+):`)

// Parse reads apt-cache policy output. A line starting with "<pkg>:" selects
// the current package; a following "Installed:" line that is not "(none)"
// marks it installed. Packages missing from the flavor table are ignored.
func Parse(r io.Reader) []model.Flavor {
	var (
		out     []model.Flavor
		current *model.Flavor
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		if line[0] != ' ' && line[0] != '\t' {
			current = nil
			if m := packageLine.FindStringSubmatch(line); m != nil {
				if f, ok := Find(m[1]); ok {
					current = &f
				}
			}
			continue
		}
		if current != nil && strings.Contains(line, "Installed:") && !strings.Contains(line, "(none)") {
			out = append(out, *current)
		}
	}
	return out
}
