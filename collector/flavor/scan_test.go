package flavor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

const policyOutput = `ubuntu-server:
  Installed: (none)
  Candidate: 1.481
  Version table:
     1.481 500
        500 http://archive.ubuntu.com/ubuntu focal-updates/main amd64 Packages
ubuntu-desktop:
  Installed: 1.450.2
  Candidate: 1.450.2
  Version table:
 *** 1.450.2 500
        500 http://archive.ubuntu.com/ubuntu focal-updates/main amd64 Packages
        100 /var/lib/dpkg/status
xubuntu-desktop:
  Installed: (none)
  Candidate: 2.233
`

func TestParse_InstalledFlavor(t *testing.T) {
	r := require.New(t)
	got := Parse(strings.NewReader(policyOutput))

	r.Len(got, 1)
	r.Equal("ubuntu-desktop", got[0].Package)
	r.Equal("Ubuntu GNOME", got[0].Name)
	r.Equal("distros/ubuntu.png", got[0].Icon)
	r.Equal("https://ubuntu.org/", got[0].URL)
}

func TestParse_EpochVersion(t *testing.T) {
	out := "ubuntu-desktop:\n  Installed: 2:20.04\n  Candidate: 2:20.04\n"
	got := Parse(strings.NewReader(out))

	require.Len(t, got, 1)
	require.Equal(t, "ubuntu-desktop", got[0].Package)
}

func TestParse_NotInstalled(t *testing.T) {
	out := "ubuntu-desktop:\n  Installed: (none)\n  Candidate: 2:20.04\n"
	require.Empty(t, Parse(strings.NewReader(out)))
}

func TestParse_UnknownPackageIgnored(t *testing.T) {
	out := "gnome-shell:\n  Installed: 3.36.9\nkubuntu-desktop:\n  Installed: 1.390\n"
	got := Parse(strings.NewReader(out))

	require.Len(t, got, 1)
	require.Equal(t, "kubuntu-desktop", got[0].Package)
}

func TestParse_InstalledBeforeAnyPackage(t *testing.T) {
	require.Empty(t, Parse(strings.NewReader("  Installed: 1.0\n")))
}

func TestParse_MultipleFlavors(t *testing.T) {
	out := "xubuntu-desktop:\n  Installed: 2.233\nlubuntu-desktop:\n  Installed: (none)\nubuntu-mate-desktop:\n\tInstalled: 1.251\n"
	got := Parse(strings.NewReader(out))

	require.Len(t, got, 2)
	require.Equal(t, "xubuntu-desktop", got[0].Package)
	require.Equal(t, "ubuntu-mate-desktop", got[1].Package)
}

func newTestScanner(run Runner) *Scanner {
	log := logrus.New()
	log.SetLevel(logrus.DebugLevel)
	s := NewScanner("", logrus.NewEntry(log))
	s.Run = run
	return s
}

func TestScan_QueriesEveryPackage(t *testing.T) {
	r := require.New(t)
	var gotName string
	var gotArgs []string
	s := newTestScanner(func(_ context.Context, name string, args ...string) ([]byte, error) {
		gotName, gotArgs = name, args
		return []byte(policyOutput), nil
	})

	got := s.Scan(context.Background())

	r.Len(got, 1)
	r.Equal("apt-cache", gotName)
	r.Equal(append([]string{"policy"}, Packages()...), gotArgs)
	r.Len(gotArgs, len(Flavors)+1)
}

func TestScan_CommandMissing(t *testing.T) {
	s := newTestScanner(func(context.Context, string, ...string) ([]byte, error) {
		return nil, errors.New(`exec: "apt-cache": executable file not found in $PATH`)
	})
	require.Empty(t, s.Scan(context.Background()))
}

func TestScan_NonZeroExitStillParses(t *testing.T) {
	s := newTestScanner(func(context.Context, string, ...string) ([]byte, error) {
		return []byte(policyOutput), errors.New("exit status 100")
	})
	require.Len(t, s.Scan(context.Background()), 1)
}

func TestFind(t *testing.T) {
	f, ok := Find("lubuntu-desktop")
	require.True(t, ok)
	require.Equal(t, "https://lubuntu.me/", f.URL)

	_, ok = Find("fedora-workstation")
	require.False(t, ok)
}
