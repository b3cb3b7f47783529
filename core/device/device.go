package device

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const installIDFile = "installation_id"

// Info describes the hardware/OS the client runs on. Best effort: fields the
// platform cannot answer stay "unknown".
type Info struct {
	Brand     string
	Model     string
	OSName    string
	OSVersion string
}

func (i Info) String() string {
	return fmt.Sprintf("%s %s (OS: %s %s)", i.Brand, i.Model, i.OSName, i.OSVersion)
}

// CurrentInfo probes the local platform.
func CurrentInfo() Info {
	info := Info{Brand: "unknown", Model: "unknown", OSName: runtime.GOOS, OSVersion: "unknown"}
	switch runtime.GOOS {
	case "linux":
		if v := readSysFile("/sys/class/dmi/id/sys_vendor"); v != "" {
			info.Brand = v
		}
		if v := readSysFile("/sys/class/dmi/id/product_name"); v != "" {
			info.Model = v
		}
		if v := commandOutput("uname", "-r"); v != "" {
			info.OSVersion = v
		}
	case "darwin":
		info.Brand = "Apple"
		if v := commandOutput("sysctl", "-n", "hw.model"); v != "" {
			info.Model = v
		}
		if v := commandOutput("sw_vers", "-productVersion"); v != "" {
			info.OSVersion = v
		}
	case "windows":
		if v := commandOutput("wmic", "csproduct", "get", "vendor"); v != "" {
			info.Brand = lastLine(v)
		}
		if v := commandOutput("wmic", "csproduct", "get", "name"); v != "" {
			info.Model = lastLine(v)
		}
		if v := commandOutput("cmd", "/c", "ver"); v != "" {
			info.OSVersion = v
		}
	}
	return info
}

// InstallationID returns this installation's identifier, creating and
// persisting a fresh one under dataDir on first use so it stays stable
// across runs.
func InstallationID(dataDir string) (string, error) {
	path := filepath.Join(dataDir, installIDFile)
	if b, err := os.ReadFile(path); err == nil {
		if id := strings.TrimSpace(string(b)); id != "" {
			return id, nil
		}
	} else if !os.IsNotExist(err) {
		return "", errors.Wrap(err, "reading installation id")
	}

	id := uuid.NewString()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return "", errors.Wrap(err, "creating data dir")
	}
	if err := os.WriteFile(path, []byte(id+"\n"), 0600); err != nil {
		return "", errors.Wrap(err, "persisting installation id")
	}
	return id, nil
}

// ID composes the device identifier sent with attendance marks:
// "<installation id> | <brand> <model> (OS: <name> <version>)". It is a
// spoofable hint by construction; the server treats it accordingly.
func ID(dataDir string) (string, error) {
	installID, err := InstallationID(dataDir)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s | %s", installID, CurrentInfo()), nil
}

func readSysFile(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

func commandOutput(name string, args ...string) string {
	out, err := exec.Command(name, args...).Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

func lastLine(s string) string {
	lines := strings.Fields(s)
	if len(lines) == 0 {
		return s
	}
	return lines[len(lines)-1]
}
