package fleet

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Camera is one fleet member parsed from the camera list file.
type Camera struct {
	// Name is the display name shown in logs and reports.
	Name string `json:"name"`
	// Target is the SSH destination, either a bare host/alias or user@host.
	Target string `json:"target"`
	// Preview is an optional preview URL (third list field); not used by
	// the update path, carried for the dashboard.
	Preview string `json:"preview,omitempty"`
}

// ParseLine parses one line of the camera list. It returns ok=false for
// blank lines and comments. Recognized formats:
//
//	user@host
//	name, user@host
//	name, user@host, http://host:8000
//
// Fields beyond the third are ignored. A line without a comma is both the
// name and the target.
func ParseLine(line string) (Camera, bool, error) {
	s := strings.TrimSpace(line)
	if s == "" || strings.HasPrefix(s, "#") {
		return Camera{}, false, nil
	}
	if !strings.Contains(s, ",") {
		return Camera{Name: s, Target: s}, true, nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	cam := Camera{Name: parts[0], Target: parts[1]}
	if cam.Target == "" {
		return Camera{}, false, fmt.Errorf("camera %q has an empty ssh target", cam.Name)
	}
	if len(parts) >= 3 {
		cam.Preview = parts[2]
	}
	return cam, true, nil
}

// Load reads the camera list file and returns the cameras in file order.
func Load(path string) ([]Camera, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open camera list: %w", err)
	}
	defer f.Close()

	var cams []Camera
	sc := bufio.NewScanner(f)
	lineno := 0
	for sc.Scan() {
		lineno++
		cam, ok, err := ParseLine(sc.Text())
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineno, err)
		}
		if ok {
			cams = append(cams, cam)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read camera list: %w", err)
	}
	return cams, nil
}

// Find returns the camera with the given display name.
func Find(cams []Camera, name string) (Camera, bool) {
	for _, c := range cams {
		if c.Name == name {
			return c, true
		}
	}
	return Camera{}, false
}

// Select returns the cameras whose names appear in names, preserving file
// order. It errors on the first unknown name.
func Select(cams []Camera, names []string) ([]Camera, error) {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		if _, ok := Find(cams, n); !ok {
			return nil, fmt.Errorf("unknown camera %q", n)
		}
		want[n] = true
	}
	out := make([]Camera, 0, len(names))
	for _, c := range cams {
		if want[c.Name] {
			out = append(out, c)
		}
	}
	return out, nil
}
