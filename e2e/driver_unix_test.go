//go:build e2e && unix

package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
)

var binPath = "typeahead_e2e"

// Terminal input sequences
const (
	KeyEnter    = "\r"
	KeyCtrlC    = "\x03"
	KeyEsc      = "\x1b"
	KeyDown     = "\x1b[B"
	KeyUp       = "\x1b[A"
	KeyPageDown = "\x1b[6~"
	KeyF1       = "\x1bOP"
	KeyQuit     = "q" // closes the help pager
)

// ansiRe strips CSI, OSC, charset and keypad sequences plus carriage returns
var ansiRe = regexp.MustCompile(
	`(?:\x1b\[[0-9;?]*[ -/]*[@-~])|` +
		`(?:\x1b\][^\x07]*\x07)|` +
		`(?:\x1b[\(\)][A-Za-z])|` +
		`(?:\x1b=|\x1b>)|` +
		`\r`,
)

// screen accumulates everything the app writes to its terminal
type screen struct {
	mu  sync.Mutex
	out bytes.Buffer
}

func (s *screen) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.out.Write(p)
}

func (s *screen) plain() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ansiRe.ReplaceAllString(s.out.String(), "")
}

func (s *screen) raw() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.out.String()
}

// TUITestFramework drives the typeahead binary through a PTY
type TUITestFramework struct {
	t         *testing.T
	pty       *os.File
	cmd       *exec.Cmd
	workspace string
	screen    *screen
}

// NewTUITest creates a new TUI test framework instance
func NewTUITest(t *testing.T) *TUITestFramework {
	return &TUITestFramework{t: t, screen: &screen{}}
}

// StartApp launches the binary in a 120x40 PTY with an isolated home
func (tf *TUITestFramework) StartApp(args ...string) error {
	tf.cmd = exec.Command(binPath, args...)
	tf.cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"LC_ALL=C",
		"LANG=C",
		"HOME="+tf.workspace,
		"XDG_CONFIG_HOME="+tf.workspace,
		"TYPEAHEAD_E2E_TEST=1",
	)

	f, err := pty.StartWithSize(tf.cmd, &pty.Winsize{Rows: 40, Cols: 120})
	if err != nil {
		return fmt.Errorf("failed to start in pty: %w", err)
	}
	tf.pty = f

	go copyOutput(tf.screen, f)
	return nil
}

func copyOutput(dst *screen, src *os.File) {
	buf := make([]byte, 8192)
	for {
		n, err := src.Read(buf)
		if n > 0 {
			_, _ = dst.Write(buf[:n])
		}
		if err != nil {
			return
		}
	}
}

// SendKeys writes raw input to the terminal
func (tf *TUITestFramework) SendKeys(keys string) error {
	tf.t.Helper()
	_, err := tf.pty.Write([]byte(keys))
	return err
}

// Type sends text as typed runes
func (tf *TUITestFramework) Type(text string) error {
	tf.t.Helper()
	return tf.SendKeys(text)
}

// SendEnter commits the highlighted suggestion
func (tf *TUITestFramework) SendEnter() error {
	tf.t.Helper()
	return tf.SendKeys(KeyEnter)
}

// Down moves the highlight to the next suggestion
func (tf *TUITestFramework) Down() error {
	tf.t.Helper()
	return tf.SendKeys(KeyDown)
}

// Up moves the highlight to the previous suggestion
func (tf *TUITestFramework) Up() error {
	tf.t.Helper()
	return tf.SendKeys(KeyUp)
}

// PageDown highlights the last suggestion
func (tf *TUITestFramework) PageDown() error {
	tf.t.Helper()
	return tf.SendKeys(KeyPageDown)
}

// Dismiss sends escape to clear the suggestions
func (tf *TUITestFramework) Dismiss() error {
	tf.t.Helper()
	return tf.SendKeys(KeyEsc)
}

// OpenHelp sends F1 to open the help pager
func (tf *TUITestFramework) OpenHelp() error {
	tf.t.Helper()
	return tf.SendKeys(KeyF1)
}

// PressQuit sends 'q' to leave the help pager
func (tf *TUITestFramework) PressQuit() error {
	tf.t.Helper()
	return tf.SendKeys(KeyQuit)
}

// Quit sends ctrl+c, the host's quit key
func (tf *TUITestFramework) Quit() error {
	tf.t.Helper()
	return tf.SendKeys(KeyCtrlC)
}

// Click sends an SGR left click at the 0-based cell x, y
func (tf *TUITestFramework) Click(x, y int) error {
	tf.t.Helper()
	press := fmt.Sprintf("\x1b[<0;%d;%dM", x+1, y+1)
	release := fmt.Sprintf("\x1b[<0;%d;%dm", x+1, y+1)
	return tf.SendKeys(press + release)
}

// Ready waits for the marker the host prints in test mode
func (tf *TUITestFramework) Ready() bool {
	tf.t.Helper()
	return tf.waitFor(func() bool { return strings.Contains(tf.screen.raw(), "__READY__") }, 5*time.Second)
}

// SeePlain waits up to three seconds for text in the normalized output
func (tf *TUITestFramework) SeePlain(text string) bool {
	tf.t.Helper()
	return tf.WaitForStatusMessage(text, 3*time.Second)
}

// WaitForStatusMessage waits for text in the normalized output
func (tf *TUITestFramework) WaitForStatusMessage(text string, timeout time.Duration) bool {
	tf.t.Helper()
	return tf.waitFor(func() bool { return strings.Contains(tf.screen.plain(), text) }, timeout)
}

func (tf *TUITestFramework) waitFor(cond func() bool, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for !cond() {
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(25 * time.Millisecond)
	}
	return true
}

// DumpTailOnFail saves the last n bytes of normalized output for debugging
func (tf *TUITestFramework) DumpTailOnFail(t *testing.T, name string, n int) {
	s := tf.screen.plain()
	if len(s) > n {
		s = s[len(s)-n:]
	}
	p := filepath.Join(t.TempDir(), name+".txt")
	_ = os.WriteFile(p, []byte(s), 0644)
	t.Logf("Saved tail to %s", p)
}

// Cleanup closes the PTY and kills the app if it is still running
func (tf *TUITestFramework) Cleanup() {
	if tf.pty != nil {
		_ = tf.pty.Close()
		tf.pty = nil
	}
	if tf.cmd != nil && tf.cmd.Process != nil {
		_ = tf.cmd.Process.Kill()
		_, _ = tf.cmd.Process.Wait()
		tf.cmd = nil
	}
}
