package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

type testConfig struct {
	StringField   string        `env:"TEST_STRING"`
	IntField      int           `env:"TEST_INT"`
	Int64Field    int64         `env:"TEST_INT64"`
	BoolField     bool          `env:"TEST_BOOL"`
	DefaultField  string        `env:"TEST_DEFAULT" envDefault:"defaultValue"`
	LegacyDefault string        `env:"TEST_LEGACY,default:legacy"`
	Duration      time.Duration `env:"TEST_DURATION" envDefault:"30s"`
	Ratio         float64       `env:"TEST_RATIO"`
	List          []string      `env:"TEST_LIST" envSeparator:"|"`
	NoTagField    string
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		expected testConfig
		wantErr  bool
	}{
		{
			name: "all fields set from environment",
			envVars: map[string]string{
				"T_TEST_STRING":   "hello",
				"T_TEST_INT":      "42",
				"T_TEST_INT64":    "9223372036854775807",
				"T_TEST_BOOL":     "true",
				"T_TEST_DURATION": "2m",
				"T_TEST_RATIO":    "0.2",
				"T_TEST_LIST":     "a| b |c",
			},
			expected: testConfig{
				StringField:   "hello",
				IntField:      42,
				Int64Field:    9223372036854775807,
				BoolField:     true,
				DefaultField:  "defaultValue",
				LegacyDefault: "legacy",
				Duration:      2 * time.Minute,
				Ratio:         0.2,
				List:          []string{"a", "b", "c"},
			},
		},
		{
			name: "override default value",
			envVars: map[string]string{
				"T_TEST_DEFAULT": "overridden",
				"T_TEST_LEGACY":  "new",
			},
			expected: testConfig{
				DefaultField:  "overridden",
				LegacyDefault: "new",
				Duration:      30 * time.Second,
			},
		},
		{
			name:    "invalid int value",
			envVars: map[string]string{"T_TEST_INT": "not-a-number"},
			wantErr: true,
		},
		{
			name:    "invalid bool value",
			envVars: map[string]string{"T_TEST_BOOL": "not-a-bool"},
			wantErr: true,
		},
		{
			name:    "invalid duration",
			envVars: map[string]string{"T_TEST_DURATION": "soon"},
			wantErr: true,
		},
		{
			name:    "empty environment leaves zero values",
			envVars: map[string]string{},
			expected: testConfig{
				DefaultField:  "defaultValue",
				LegacyDefault: "legacy",
				Duration:      30 * time.Second,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := &testConfig{}
			err := Load(cfg, LoadOptions{Prefix: "T_", EnvFiles: []string{filepath.Join(t.TempDir(), "missing.env")}})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(*cfg, tt.expected) {
				t.Errorf("Load() = %+v, want %+v", *cfg, tt.expected)
			}
		})
	}
}

func TestLoadRejectsNonPointer(t *testing.T) {
	var cfg testConfig
	if err := Load(cfg); err != ErrNotStructPointer {
		t.Errorf("Load(struct) error = %v, want ErrNotStructPointer", err)
	}
	var nilCfg *testConfig
	if err := Load(nilCfg); err != ErrNotStructPointer {
		t.Errorf("Load(nil) error = %v, want ErrNotStructPointer", err)
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("F_TEST_STRING=from-file\nF_TEST_INT=7\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		os.Unsetenv("F_TEST_STRING")
		os.Unsetenv("F_TEST_INT")
	})
	// Process environment wins over the file
	t.Setenv("F_TEST_INT", "9")

	cfg := &testConfig{}
	if err := Load(cfg, LoadOptions{Prefix: "F_", EnvFiles: []string{path}}); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.StringField != "from-file" {
		t.Errorf("StringField = %q, want from-file", cfg.StringField)
	}
	if cfg.IntField != 9 {
		t.Errorf("IntField = %d, want 9", cfg.IntField)
	}
}

func TestApply(t *testing.T) {
	o := Apply()
	if o.Prefix != DefaultPrefix {
		t.Errorf("default prefix = %q", o.Prefix)
	}
	o = Apply(WithPrefix("X_"), WithDebug(), WithEnvFiles("a.env"))
	if o.Prefix != "X_" || !o.Debug || len(o.EnvFiles) != 1 {
		t.Errorf("Apply() = %+v", o)
	}
}
