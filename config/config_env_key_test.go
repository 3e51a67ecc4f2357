package config

import "testing"

func TestAlignEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"backend": map[string]any{
			"baseUrl": "http://localhost:3000/api",
			"timeout": "15s",
		},
		"storage": map[string]any{
			"driver": "file",
		},
		"catalog": map[string]any{
			"pageSize": 12,
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "BACKEND_BASEURL", want: "backend.baseUrl"},
		{envKey: "BACKEND_TIMEOUT", want: "backend.timeout"},
		{envKey: "STORAGE_DRIVER", want: "storage.driver"},
		{envKey: "CATALOG_PAGESIZE", want: "catalog.pageSize"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := alignEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("alignEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}
