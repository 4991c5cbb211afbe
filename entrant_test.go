package axelrod

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

// writeEntrant creates an entrant directory under root. An empty config
// leaves entrant.json out.
func writeEntrant(t *testing.T, root, name, config string, dockerfile bool) string {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if config != "" {
		if err := os.WriteFile(filepath.Join(dir, entrantFile), []byte(config), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if dockerfile {
		if err := os.WriteFile(filepath.Join(dir, "Dockerfile"), []byte("FROM alpine\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestDiscoverEntrant_LocalCommand(t *testing.T) {
	root := t.TempDir()
	dir := writeEntrant(t, root, "tft", `{"author":"ada","command":["./tft","--fast"],"timeout":"2s","env":{"SEED":"1"}}`, false)

	e, err := DiscoverEntrant(root, "tft")
	if err != nil {
		t.Fatalf("DiscoverEntrant: %v", err)
	}
	if e.Name != "tft" || e.Dir != dir || e.Dockerfile != "" {
		t.Errorf("entrant: got %+v", e)
	}
	if e.Config.Author != "ada" || e.Timeout != 2*time.Second {
		t.Errorf("config: got author %q timeout %v", e.Config.Author, e.Timeout)
	}
	if e.Containerized() {
		t.Error("local entrant reported as containerized")
	}
}

func TestDiscoverEntrant_Dockerfile(t *testing.T) {
	root := t.TempDir()
	dir := writeEntrant(t, root, "grudger", `{"author":"bo"}`, true)

	e, err := DiscoverEntrant(root, "grudger")
	if err != nil {
		t.Fatalf("DiscoverEntrant: %v", err)
	}
	if e.Dockerfile != filepath.Join(dir, "Dockerfile") {
		t.Errorf("Dockerfile: got %q", e.Dockerfile)
	}
	if !e.Containerized() || e.ImageTag() != "axelrod-grudger" {
		t.Errorf("container: containerized=%v image=%q", e.Containerized(), e.ImageTag())
	}
}

func TestDiscoverEntrant_ExplicitImage(t *testing.T) {
	root := t.TempDir()
	writeEntrant(t, root, "remote", `{"image":"ghcr.io/example/remote:1"}`, true)

	e, err := DiscoverEntrant(root, "remote")
	if err != nil {
		t.Fatalf("DiscoverEntrant: %v", err)
	}
	if e.ImageTag() != "ghcr.io/example/remote:1" {
		t.Errorf("ImageTag: got %q", e.ImageTag())
	}
}

func TestDiscoverEntrant_Errors(t *testing.T) {
	root := t.TempDir()
	writeEntrant(t, root, "empty", "", false)
	writeEntrant(t, root, "nothing", `{"author":"x"}`, false)
	writeEntrant(t, root, "broken", `{"command":`, false)
	writeEntrant(t, root, "badtimeout", `{"command":["x"],"timeout":"soon"}`, false)

	tests := []struct {
		name string
		want error
	}{
		{"missing", ErrEntrantNotFound},
		{"empty", ErrInvalidEntrant},
		{"nothing", ErrInvalidEntrant},
		{"broken", nil},
		{"badtimeout", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DiscoverEntrant(root, tt.name)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
			if tt.want == nil && (errors.Is(err, ErrInvalidEntrant) || errors.Is(err, ErrEntrantNotFound)) {
				t.Errorf("malformed definition should not be skippable: %v", err)
			}
		})
	}
}

func TestDiscoverAll(t *testing.T) {
	root := t.TempDir()
	writeEntrant(t, root, "zeta", `{"command":["zeta"]}`, false)
	writeEntrant(t, root, "alpha", `{"command":["alpha"]}`, false)
	writeEntrant(t, root, "docker", `{}`, true)
	writeEntrant(t, root, "incomplete", "", false)
	if err := os.WriteFile(filepath.Join(root, "README"), []byte("not an entrant"), 0o644); err != nil {
		t.Fatal(err)
	}

	entrants, err := DiscoverAll(root)
	if err != nil {
		t.Fatalf("DiscoverAll: %v", err)
	}
	var names []string
	for _, e := range entrants {
		names = append(names, e.Name)
	}
	if want := []string{"alpha", "docker", "zeta"}; !slices.Equal(names, want) {
		t.Errorf("names: got %v, want %v", names, want)
	}
}

func TestDiscoverAll_MalformedFails(t *testing.T) {
	root := t.TempDir()
	writeEntrant(t, root, "ok", `{"command":["ok"]}`, false)
	writeEntrant(t, root, "broken", `not json`, false)

	if _, err := DiscoverAll(root); err == nil {
		t.Fatal("expected error for malformed entrant.json")
	}
}

func TestDiscoverAll_MissingDir(t *testing.T) {
	if _, err := DiscoverAll(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestEntrant_ProcessSpec_Local(t *testing.T) {
	e := Entrant{
		Name: "tft",
		Dir:  "/entrants/tft",
		Config: EntrantConfig{
			Command: []string{"bin/tft", "--fast"},
			Env:     map[string]string{"SEED": "1"},
		},
	}
	spec := e.ProcessSpec()
	if want := []string{"/entrants/tft/bin/tft", "--fast"}; !slices.Equal(spec.Command, want) {
		t.Errorf("Command: got %v, want %v", spec.Command, want)
	}
	if spec.Workdir != "/entrants/tft" || spec.Image != "" || spec.Env["SEED"] != "1" {
		t.Errorf("spec: got %+v", spec)
	}
	if e.Config.Command[0] != "bin/tft" {
		t.Error("ProcessSpec modified the entrant config")
	}
}

func TestEntrant_ProcessSpec_CommandForms(t *testing.T) {
	tests := []struct {
		command string
		want    string
	}{
		{"./tft", "/e/tft"},
		{"python3", "python3"},
		{"/usr/bin/tft", "/usr/bin/tft"},
	}
	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			e := Entrant{Name: "tft", Dir: "/e", Config: EntrantConfig{Command: []string{tt.command}}}
			if got := e.ProcessSpec().Command[0]; got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEntrant_ProcessSpec_Container(t *testing.T) {
	e := Entrant{
		Name:       "tft",
		Dir:        "/entrants/tft",
		Dockerfile: "/entrants/tft/Dockerfile",
		Config:     EntrantConfig{Command: []string{"./tft"}},
	}
	spec := e.ProcessSpec()
	if spec.Image != "axelrod-tft" {
		t.Errorf("Image: got %q", spec.Image)
	}
	if spec.Workdir != "" || spec.Command[0] != "./tft" {
		t.Errorf("container paths should be left for the image: %+v", spec)
	}
}
