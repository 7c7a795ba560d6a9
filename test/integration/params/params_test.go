package params_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/conson/internal/configs"
	kerrors "github.com/PolarWolf314/conson/internal/errors"
	"github.com/PolarWolf314/conson/internal/params"
	"github.com/PolarWolf314/conson/test/integration/shared"
)

// TestParamsIntegration contains end to end tests for the `conson params` commands.
func TestParamsIntegration(t *testing.T) {
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get original working directory: %v", err)
	}

	originalUserSettings := configs.UserConsonSettings

	t.Run("Lifecycle", func(t *testing.T) {
		testLifecycle(t, originalWd, originalUserSettings)
	})

	t.Run("VeiledValuesStayOnTheirMachine", func(t *testing.T) {
		testVeiledValuesStayOnTheirMachine(t, originalWd, originalUserSettings)
	})

	t.Run("VeilTwiceNeedsTwoUnveils", func(t *testing.T) {
		testVeilTwiceNeedsTwoUnveils(t, originalWd, originalUserSettings)
	})

	t.Run("HandEditedFileIsMerged", func(t *testing.T) {
		testHandEditedFileIsMerged(t, originalWd, originalUserSettings)
	})

	t.Run("VerboseOutput", func(t *testing.T) {
		testVerboseOutput(t, originalWd, originalUserSettings)
	})
}

func setup(t *testing.T, originalWd string, originalUserSettings *configs.UserSettings) string {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	tempDir := t.TempDir()
	shared.SetupTestEnvironment(t, tempDir, t.TempDir(), originalWd, originalUserSettings)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

// testLifecycle creates, veils, shows, unveils and disposes parameters.
func testLifecycle(t *testing.T, originalWd string, originalUserSettings *configs.UserSettings) {
	wd := setup(t, originalWd, originalUserSettings)

	steps := [][]string{
		{"params", "create", "db_host", "localhost", "--salt", "pepper"},
		{"params", "create", "pc1", "admin", "hunter2", "--salt", "pepper"},
		{"params", "veil", "pc1", "--index", "1", "--salt", "pepper"},
	}
	for _, args := range steps {
		if output, err := shared.Run(t, args...); err != nil {
			t.Fatalf("%v failed: %v\n%s", args, err, output)
		}
	}

	data, err := os.ReadFile(filepath.Join(wd, "config.json"))
	if err != nil {
		t.Fatalf("Failed to read parameter file: %v", err)
	}
	if strings.Contains(string(data), "hunter2") {
		t.Error("Veiled value stored in plaintext")
	}
	if !strings.HasPrefix(string(data), "{\n    \"db_host\": \"localhost\",\n    \"pc1\": [\n        \"admin\",\n") {
		t.Errorf("Unexpected file layout:\n%s", data)
	}

	output, err := shared.Run(t, "params", "show", "--unveil", "--salt", "pepper")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(output, "[1] hunter2 (unveiled)") {
		t.Errorf("Expected unveiled element, got %q", output)
	}

	v, _ := shared.LoadParams(t, wd, "config.json", "pepper").Get("pc1")
	output, err = shared.Run(t, "params", "unveil", v.Items()[1], "--salt", "pepper")
	if err != nil {
		t.Fatalf("unveil failed: %v", err)
	}
	if strings.TrimSpace(output) != "hunter2" {
		t.Errorf("Expected 'hunter2', got %q", output)
	}

	if _, err := shared.Run(t, "params", "dispose", "pc1"); err != nil {
		t.Fatalf("dispose failed: %v", err)
	}
	names := shared.LoadParams(t, wd, "config.json", "pepper").Names()
	if len(names) != 1 || names[0] != "db_host" {
		t.Errorf("Expected only db_host left, got %v", names)
	}

	output, err = shared.Run(t, "params", "log", "--operation", "create,veil,dispose")
	if err != nil {
		t.Fatalf("log failed: %v", err)
	}
	if strings.Count(output, "\n") != 4 {
		t.Errorf("Expected 4 audit entries, got %q", output)
	}
	if strings.Contains(output, "hunter2") {
		t.Error("Audit log output contains a value")
	}
}

// testVeiledValuesStayOnTheirMachine checks a token cannot be unveiled by another machine.
func testVeiledValuesStayOnTheirMachine(t *testing.T, originalWd string, originalUserSettings *configs.UserSettings) {
	wd := setup(t, originalWd, originalUserSettings)

	if _, err := shared.Run(t, "params", "create", "api_key", "k-123", "--veil", "0"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	v, _ := shared.LoadParams(t, wd, "config.json", params.DefaultSalt).Get("api_key")

	_, err := shared.CaptureOutput(func() error {
		return shared.CreateTestCLI([]string{"params", "unveil", v.String()}, shared.OtherMachineUUID, false, false).Execute()
	})
	if !errors.Is(err, kerrors.ErrDecryptionFailed) {
		t.Errorf("Expected ErrDecryptionFailed on another machine, got %v", err)
	}

	output, err := shared.CaptureOutput(func() error {
		return shared.CreateTestCLI([]string{"params", "show", "--unveil"}, shared.OtherMachineUUID, false, false).Execute()
	})
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if strings.Contains(output, "k-123") {
		t.Errorf("Another machine unveiled the value: %q", output)
	}
}

// testVeilTwiceNeedsTwoUnveils checks that veiling twice encrypts the token again.
func testVeilTwiceNeedsTwoUnveils(t *testing.T, originalWd string, originalUserSettings *configs.UserSettings) {
	wd := setup(t, originalWd, originalUserSettings)

	_, _ = shared.Run(t, "params", "create", "pw", "s3cret")
	_, _ = shared.Run(t, "params", "veil", "pw")
	if _, err := shared.Run(t, "params", "veil", "pw"); err != nil {
		t.Fatalf("second veil failed: %v", err)
	}

	s := shared.LoadParams(t, wd, "config.json", params.DefaultSalt)
	v, _ := s.Get("pw")
	once, err := s.Unveil(v.String())
	if err != nil {
		t.Fatalf("first unveil failed: %v", err)
	}
	twice, err := s.Unveil(once)
	if err != nil || twice != "s3cret" {
		t.Errorf("Expected second unveil to give 's3cret', got %q, %v", twice, err)
	}
}

// testHandEditedFileIsMerged checks commands keep parameters they did not touch.
func testHandEditedFileIsMerged(t *testing.T, originalWd string, originalUserSettings *configs.UserSettings) {
	wd := setup(t, originalWd, originalUserSettings)

	content := "{\"zeta\": \"1\", \"alpha\": [\"a\", \"b\"]}"
	if err := os.WriteFile(filepath.Join(wd, "config.json"), []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if _, err := shared.Run(t, "params", "create", "mid", "m"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	names := shared.LoadParams(t, wd, "config.json", params.DefaultSalt).Names()
	if strings.Join(names, ",") != "zeta,alpha,mid" {
		t.Errorf("Expected file order kept and new name appended, got %v", names)
	}
}

// testVerboseOutput checks verbose mode prints info lines instead of the spinner.
func testVerboseOutput(t *testing.T, originalWd string, originalUserSettings *configs.UserSettings) {
	setup(t, originalWd, originalUserSettings)

	output, err := shared.CaptureOutput(func() error {
		return shared.CreateTestCLI([]string{"params", "create", "a", "1"}, shared.MachineUUID, true, false).Execute()
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !strings.Contains(output, "[info]") || !strings.Contains(output, "Created 'a'") {
		t.Errorf("Expected info lines and result, got %q", output)
	}
}
