package config

import (
	"reflect"
	"testing"
)

func TestLoadSettingsMissingFile(t *testing.T) {
	p, _ := newTestProject(t)

	s, err := p.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if s.BridgePort != DefaultBridgePort {
		t.Errorf("BridgePort = %d, want %d", s.BridgePort, DefaultBridgePort)
	}
	if s.SSHPort != DefaultSSHPort {
		t.Errorf("SSHPort = %d, want %d", s.SSHPort, DefaultSSHPort)
	}
	if len(s.Packages) != 0 || len(s.Mounts) != 0 || s.ClaudeCommand != "" {
		t.Errorf("LoadSettings() = %+v, want zero-contents defaults", s)
	}
}

func TestLoadSettingsParsesFile(t *testing.T) {
	p, fs := newTestProject(t)
	fs.AddFile(p.SettingsPath(), []byte(`
packages = ["ripgrep", "jq"]
bridge_port = 9876
ssh_port = 2322
claude_command = "claude --dangerously-skip-permissions"

[[mounts]]
host = "data"
container = "/data"
read_only = true
`), 0644)

	s, err := p.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if want := []string{"ripgrep", "jq"}; !reflect.DeepEqual(s.Packages, want) {
		t.Errorf("Packages = %v, want %v", s.Packages, want)
	}
	if s.BridgePort != 9876 {
		t.Errorf("BridgePort = %d, want 9876", s.BridgePort)
	}
	if s.SSHPort != 2322 {
		t.Errorf("SSHPort = %d, want 2322", s.SSHPort)
	}
	if len(s.Mounts) != 1 || s.Mounts[0].Host != "data" || s.Mounts[0].Container != "/data" || !s.Mounts[0].ReadOnly {
		t.Errorf("Mounts = %+v, want [{data /data true}]", s.Mounts)
	}
}

func TestLoadSettingsDefaultsUnsetPorts(t *testing.T) {
	p, fs := newTestProject(t)
	fs.AddFile(p.SettingsPath(), []byte(`packages = ["vim"]`), 0644)

	s, err := p.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if s.BridgePort != DefaultBridgePort || s.SSHPort != DefaultSSHPort {
		t.Errorf("ports = %d/%d, want defaults %d/%d",
			s.BridgePort, s.SSHPort, DefaultBridgePort, DefaultSSHPort)
	}
}

func TestLoadSettingsRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"bad toml", `packages = [`},
		{"bad port", `bridge_port = 70000`},
		{"relative container mount", "[[mounts]]\nhost = \"d\"\ncontainer = \"data\""},
		{"empty mount host", "[[mounts]]\nhost = \"\"\ncontainer = \"/data\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, fs := newTestProject(t)
			fs.AddFile(p.SettingsPath(), []byte(tt.toml), 0644)
			if _, err := p.LoadSettings(); err == nil {
				t.Error("LoadSettings() error = nil, want parse/validate failure")
			}
		})
	}
}

func TestSaveSettingsRoundTrip(t *testing.T) {
	p, _ := newTestProject(t)
	in := Settings{
		Packages:   []string{"jq"},
		BridgePort: 9999,
		SSHPort:    2222,
		Mounts:     []Mount{{Host: "data", Container: "/data"}},
	}

	if err := p.SaveSettings(in); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}
	out, err := p.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestClaudeArgv(t *testing.T) {
	tests := []struct {
		name    string
		command string
		want    []string
		wantErr bool
	}{
		{"default", "", []string{"claude"}, false},
		{"whitespace only", "   ", []string{"claude"}, false},
		{"plain override", "claude --resume", []string{"claude", "--resume"}, false},
		{"quoted args", `claude --append-system-prompt "be brief"`, []string{"claude", "--append-system-prompt", "be brief"}, false},
		{"unterminated quote", `claude "oops`, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Settings{ClaudeCommand: tt.command}
			got, err := s.ClaudeArgv()
			if tt.wantErr {
				if err == nil {
					t.Error("ClaudeArgv() error = nil, want parse failure")
				}
				return
			}
			if err != nil {
				t.Fatalf("ClaudeArgv() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ClaudeArgv() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveMounts(t *testing.T) {
	p, _ := newTestProject(t)
	s := Settings{Mounts: []Mount{
		{Host: "data", Container: "/data"},
		{Host: "assets/img", Container: "/img", ReadOnly: true},
	}}

	got, err := p.ResolveMounts(s)
	if err != nil {
		t.Fatalf("ResolveMounts() error = %v", err)
	}
	want := []Mount{
		{Host: "/home/u/project/data", Container: "/data"},
		{Host: "/home/u/project/assets/img", Container: "/img", ReadOnly: true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ResolveMounts() = %+v, want %+v", got, want)
	}
}

func TestResolveMountsRejectsEscapes(t *testing.T) {
	p, _ := newTestProject(t)

	for _, host := range []string{"../secrets", "/etc", "a/../../b"} {
		s := Settings{Mounts: []Mount{{Host: host, Container: "/x"}}}
		if _, err := p.ResolveMounts(s); err == nil {
			t.Errorf("ResolveMounts(%q) error = nil, want escape rejection", host)
		}
	}
}

func TestResolveMountsEmpty(t *testing.T) {
	p, _ := newTestProject(t)

	got, err := p.ResolveMounts(Settings{})
	if err != nil {
		t.Fatalf("ResolveMounts() error = %v", err)
	}
	if got != nil {
		t.Errorf("ResolveMounts() = %v, want nil", got)
	}
}
