// ABOUTME: Tests for the install-skill command.
// ABOUTME: Validates skill installation, confirmation handling, and embedded content.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInstallSkillWritesFile(t *testing.T) {
	home := t.TempDir()
	var out bytes.Buffer

	if err := installSkill(home, strings.NewReader(""), &out, true); err != nil {
		t.Fatalf("installSkill failed: %v", err)
	}

	written, err := os.ReadFile(skillPath(home))
	if err != nil {
		t.Fatalf("Skill file not created: %v", err)
	}
	if !strings.Contains(string(written), "name: nutri") {
		t.Error("Expected installed skill to contain 'name: nutri'")
	}

	info, err := os.Stat(filepath.Dir(skillPath(home)))
	if err != nil {
		t.Fatalf("Skill directory not created: %v", err)
	}
	if info.Mode()&0700 != 0700 {
		t.Errorf("Expected directory to be rwx for owner, got %v", info.Mode())
	}
}

func TestInstallSkillOverwritesExistingFile(t *testing.T) {
	home := t.TempDir()
	path := skillPath(home)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create skill directory: %v", err)
	}
	if err := os.WriteFile(path, []byte("# Old Skill\nstale content"), 0644); err != nil {
		t.Fatalf("Failed to write old skill file: %v", err)
	}

	var out bytes.Buffer
	if err := installSkill(home, strings.NewReader("y\n"), &out, false); err != nil {
		t.Fatalf("installSkill failed: %v", err)
	}
	if !strings.Contains(out.String(), "already exists") {
		t.Error("Expected overwrite notice")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read skill file: %v", err)
	}
	if strings.Contains(string(data), "stale content") {
		t.Error("Old content should have been replaced")
	}
}

func TestInstallSkillCanceled(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"explicit no", "n\n"},
		{"empty answer", "\n"},
		{"no newline", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := t.TempDir()
			var out bytes.Buffer

			if err := installSkill(home, strings.NewReader(tt.input), &out, false); err != nil {
				t.Fatalf("installSkill failed: %v", err)
			}
			if !strings.Contains(out.String(), "Installation canceled.") {
				t.Error("Expected cancel message")
			}
			if _, err := os.Stat(skillPath(home)); !os.IsNotExist(err) {
				t.Error("Skill file should not be written when canceled")
			}
		})
	}
}

func TestSkillEmbeddedContent(t *testing.T) {
	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		t.Fatalf("Failed to read embedded skill/SKILL.md: %v", err)
	}

	contentStr := string(content)
	if !strings.HasPrefix(contentStr, "---") {
		t.Error("Expected SKILL.md to start with YAML frontmatter (---)")
	}

	expected := []string{
		"name: nutri",
		"description:",
		"## When to use nutri",
		"mcp__nutri__log_food",
		"mcp__nutri__get_insight",
		"mcp__nutri__create_profile",
		"nutri://today",
	}
	for _, marker := range expected {
		if !strings.Contains(contentStr, marker) {
			t.Errorf("Expected SKILL.md to contain %q", marker)
		}
	}
}

func TestSkillSkipConfirmFlag(t *testing.T) {
	flag := installSkillCmd.Flags().Lookup("yes")
	if flag == nil {
		t.Fatal("Expected --yes flag to be defined")
	}
	if flag.Shorthand != "y" {
		t.Errorf("Expected shorthand 'y', got %q", flag.Shorthand)
	}
	if flag.DefValue != "false" {
		t.Errorf("Expected default value 'false', got %q", flag.DefValue)
	}
}
