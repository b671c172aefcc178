// Package session opens a remote desktop session to a booked machine.
package session

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/benchbook/internal/constants"
	"github.com/julianstephens/benchbook/internal/logger"
	"github.com/julianstephens/benchbook/internal/models"
)

// ErrViewerNotFound is returned when no VNC viewer executable can be located.
var ErrViewerNotFound = errors.New("VNC viewer not found, install RealVNC Viewer first")

// Launcher starts a remote session from a machine's connection parameters.
type Launcher interface {
	Launch(params models.ConnectionParams) error
}

// DefaultTemplate is used when no .vnc template is configured.
const DefaultTemplate = `ConnMethod=tcp
Encryption=PreferOn
Scaling=AspectFit
Host=
`

var (
	lookPathFunc  = exec.LookPath
	processesFunc = ps.Processes
	statFunc      = os.Stat
	tempDirFunc   = os.TempDir
	startFunc     = func(viewer, file string) error {
		return exec.Command(viewer, file).Start()
	}
)

// VNC launches RealVNC Viewer with a generated connection file.
type VNC struct {
	// TemplatePath is an existing .vnc file to start from; empty uses DefaultTemplate.
	TemplatePath string
}

func NewVNC(templatePath string) *VNC {
	return &VNC{TemplatePath: templatePath}
}

func viewerCandidates() []string {
	var paths []string
	for _, env := range []string{"ProgramFiles", "ProgramFiles(x86)"} {
		if dir := os.Getenv(env); dir != "" {
			paths = append(paths, filepath.Join(dir, "RealVNC", "VNC Viewer", "vncviewer.exe"))
		}
	}
	if runtime.GOOS == "darwin" {
		paths = append(paths, "/Applications/VNC Viewer.app/Contents/MacOS/vncviewer")
	}
	return paths
}

// ViewerPath finds the viewer on PATH or in its usual install locations.
func ViewerPath() (string, error) {
	for _, name := range []string{"vncviewer", "vncviewer.exe"} {
		if p, err := lookPathFunc(name); err == nil {
			return p, nil
		}
	}
	for _, p := range viewerCandidates() {
		if _, err := statFunc(p); err == nil {
			return p, nil
		}
	}
	return "", ErrViewerNotFound
}

// ViewerRunning reports whether a viewer process is already alive.
func ViewerRunning() (bool, error) {
	procs, err := processesFunc()
	if err != nil {
		return false, fmt.Errorf("failed to list processes: %w", err)
	}
	for _, p := range procs {
		if p != nil && strings.HasPrefix(strings.ToLower(p.Executable()), "vncviewer") {
			return true, nil
		}
	}
	return false, nil
}

// SetKey replaces every "key=..." line (key matched case-insensitively) with
// key=val, or appends the line when the key is absent.
func SetKey(text, key, val string) string {
	pat := regexp.MustCompile(`(?mi)^` + regexp.QuoteMeta(key) + `\s*=.*$`)
	line := key + "=" + val
	if pat.MatchString(text) {
		return pat.ReplaceAllLiteralString(text, line)
	}
	return text + "\n" + line + "\n"
}

// Render fills the connection parameters into a .vnc template. Empty account
// and password leave the template's values alone.
func Render(template string, p models.ConnectionParams) string {
	out := SetKey(template, "Host", p.Host)
	if p.Account != "" {
		out = SetKey(out, "Username", p.Account)
	}
	if p.Password != "" {
		out = SetKey(out, "Password", p.Password)
	}
	return out
}

func (v *VNC) template() (string, error) {
	if v.TemplatePath == "" {
		return DefaultTemplate, nil
	}
	b, err := os.ReadFile(v.TemplatePath)
	if err != nil {
		return "", fmt.Errorf("template not found: %w", err)
	}
	return string(b), nil
}

// Prepare writes the rendered connection file to the temp dir and returns its path.
func (v *VNC) Prepare(p models.ConnectionParams) (string, error) {
	if p.Host == "" {
		return "", fmt.Errorf("machine %s has no host_name", p.Resource)
	}
	tpl, err := v.template()
	if err != nil {
		return "", err
	}

	name := constants.ViewerFilePrefix + filepath.Base(p.Resource) + constants.ViewerFileSuffix
	path := filepath.Join(tempDirFunc(), name)
	if err := os.WriteFile(path, []byte(Render(tpl, p)), 0600); err != nil {
		return "", fmt.Errorf("failed to write connection file: %w", err)
	}
	return path, nil
}

func (v *VNC) Launch(p models.ConnectionParams) error {
	viewer, err := ViewerPath()
	if err != nil {
		return err
	}
	path, err := v.Prepare(p)
	if err != nil {
		return err
	}

	if running, err := ViewerRunning(); err == nil && running {
		logger.Info("VNC viewer already running, opening another session", "resource", p.Resource)
	}

	if err := startFunc(viewer, path); err != nil {
		return fmt.Errorf("failed to start viewer: %w", err)
	}
	logger.Info("Remote session launched", "resource", p.Resource, "host", p.Host, "file", path)
	return nil
}
