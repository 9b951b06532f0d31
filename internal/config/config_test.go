package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// testOptions mirrors the shape of the daemon's Options struct.
type testOptions struct {
	Config string `help:"Config file path"`

	StringField string   `toml:"test.string_field" env:"STRING_FIELD"`
	BoolField   bool     `toml:"test.bool_field" env:"BOOL_FIELD"`
	IntField    int      `toml:"test.int_field" env:"INT_FIELD"`
	SliceField  []string `toml:"test.slice_field" env:"SLICE_FIELD"`

	NestedString string `toml:"nested.value" env:"NESTED_VALUE"`
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "exifd.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoadConfigFromTOML(t *testing.T) {
	path := writeTempConfig(t, `
[test]
string_field = "hello world"
bool_field = true
int_field = 42
slice_field = ["item1", "item2", "item3"]

[nested]
value = "nested value"
`)

	config := &testOptions{Config: path}
	if err := LoadConfig(config, nil); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.StringField != "hello world" {
		t.Errorf("StringField = %q", config.StringField)
	}
	if !config.BoolField {
		t.Errorf("BoolField = %v, want true", config.BoolField)
	}
	if config.IntField != 42 {
		t.Errorf("IntField = %d, want 42", config.IntField)
	}
	if want := []string{"item1", "item2", "item3"}; !reflect.DeepEqual(config.SliceField, want) {
		t.Errorf("SliceField = %v, want %v", config.SliceField, want)
	}
	if config.NestedString != "nested value" {
		t.Errorf("NestedString = %q", config.NestedString)
	}
}

func TestLoadConfigFromEnvVars(t *testing.T) {
	t.Setenv("EXIFD_STRING_FIELD", "env string")
	t.Setenv("EXIFD_BOOL_FIELD", "false")
	t.Setenv("EXIFD_INT_FIELD", "123")
	t.Setenv("EXIFD_SLICE_FIELD", "a,b,c")
	t.Setenv("EXIFD_NESTED_VALUE", "env nested")

	config := &testOptions{}
	if err := LoadConfig(config, nil); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.StringField != "env string" {
		t.Errorf("StringField = %q", config.StringField)
	}
	if config.BoolField {
		t.Errorf("BoolField = %v, want false", config.BoolField)
	}
	if config.IntField != 123 {
		t.Errorf("IntField = %d, want 123", config.IntField)
	}
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(config.SliceField, want) {
		t.Errorf("SliceField = %v, want %v", config.SliceField, want)
	}
	if config.NestedString != "env nested" {
		t.Errorf("NestedString = %q", config.NestedString)
	}
}

func TestLoadConfigEnvOverridesToml(t *testing.T) {
	path := writeTempConfig(t, `
[test]
string_field = "toml value"
bool_field = true
int_field = 100
slice_field = ["toml1", "toml2"]
`)

	t.Setenv("EXIFD_STRING_FIELD", "env override")
	t.Setenv("EXIFD_BOOL_FIELD", "false")

	config := &testOptions{Config: path}
	if err := LoadConfig(config, nil); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	// Env vars override TOML
	if config.StringField != "env override" {
		t.Errorf("StringField = %q, want env override", config.StringField)
	}
	if config.BoolField {
		t.Errorf("BoolField = %v, want false (env override)", config.BoolField)
	}

	// TOML values remain where no env override exists
	if config.IntField != 100 {
		t.Errorf("IntField = %d, want 100 (from TOML)", config.IntField)
	}
	if want := []string{"toml1", "toml2"}; !reflect.DeepEqual(config.SliceField, want) {
		t.Errorf("SliceField = %v, want %v (from TOML)", config.SliceField, want)
	}
}

func TestGetNestedValue(t *testing.T) {
	data := map[string]any{
		"level1": map[string]any{
			"level2": map[string]any{
				"value": "nested_value",
			},
			"simple": "simple_value",
		},
		"root": "root_value",
	}

	tests := []struct {
		path     string
		expected any
	}{
		{"root", "root_value"},
		{"level1.simple", "simple_value"},
		{"level1.level2.value", "nested_value"},
		{"nonexistent", nil},
		{"level1.nonexistent", nil},
	}

	for _, test := range tests {
		result := getNestedValue(data, test.path)
		if result != test.expected {
			t.Errorf("getNestedValue(%q) = %v, expected %v", test.path, result, test.expected)
		}
	}
}

func TestSetFieldValueFromString(t *testing.T) {
	type target struct {
		StringField string
		BoolField   bool
		IntField    int
		SliceField  []string
	}

	s := &target{}
	v := reflect.ValueOf(s).Elem()

	setFieldValueFromString(v.FieldByName("StringField"), "test string")
	if s.StringField != "test string" {
		t.Errorf("StringField = %q", s.StringField)
	}

	setFieldValueFromString(v.FieldByName("BoolField"), "true")
	if !s.BoolField {
		t.Errorf("BoolField = %v, want true", s.BoolField)
	}

	setFieldValueFromString(v.FieldByName("IntField"), "123")
	if s.IntField != 123 {
		t.Errorf("IntField = %d, want 123", s.IntField)
	}

	// Comma-separated values, with and without spaces
	setFieldValueFromString(v.FieldByName("SliceField"), "x,y,z")
	if want := []string{"x", "y", "z"}; !reflect.DeepEqual(s.SliceField, want) {
		t.Errorf("SliceField = %v, want %v", s.SliceField, want)
	}
	setFieldValueFromString(v.FieldByName("SliceField"), " a , b , c ")
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(s.SliceField, want) {
		t.Errorf("SliceField = %v, want %v", s.SliceField, want)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	config := &testOptions{Config: "nonexistent_file.toml"}
	if err := LoadConfig(config, nil); err != nil {
		t.Fatalf("LoadConfig should not fail for missing file: %v", err)
	}
}

func TestLoadConfigInvalidTOML(t *testing.T) {
	path := writeTempConfig(t, `
[test
invalid toml syntax
`)

	config := &testOptions{Config: path}
	if err := LoadConfig(config, nil); err == nil {
		t.Fatalf("LoadConfig should fail for invalid TOML")
	}
}

func TestLoadLoggingConfig(t *testing.T) {
	path := writeTempConfig(t, `
[logging]
level = "debug"
format = "json"
engine = "debug"
api = "warn"
`)

	cfg := LoadLoggingConfig(path)
	if cfg.Level != "debug" || cfg.Format != "json" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	want := map[string]string{"engine": "debug", "api": "warn"}
	if !reflect.DeepEqual(cfg.Modules, want) {
		t.Fatalf("modules = %v, want %v", cfg.Modules, want)
	}
}

func TestLoadLoggingConfigDefaults(t *testing.T) {
	cfg := LoadLoggingConfig("")
	if cfg.Level != "info" || cfg.Format != "text" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}

	cfg = LoadLoggingConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if cfg.Level != "info" {
		t.Fatalf("missing file should fall back to defaults: %+v", cfg)
	}
}
