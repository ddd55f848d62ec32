package cache

import "testing"

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{
			name:        "without paramsKey",
			serviceName: "quiz",
			objectType:  "session",
			identifier:  "123",
			paramsKey:   nil,
			expectedKey: "pariksha:quiz:session:123",
		},
		{
			name:        "with empty paramsKey",
			serviceName: "quiz",
			objectType:  "session",
			identifier:  "123",
			paramsKey:   []string{},
			expectedKey: "pariksha:quiz:session:123",
		},
		{
			name:        "with one paramsKey",
			serviceName: "question",
			objectType:  "list",
			identifier:  "loksewa",
			paramsKey:   []string{"en"},
			expectedKey: "pariksha:question:list:loksewa:en",
		},
		{
			name:        "with multiple paramsKey",
			serviceName: "question",
			objectType:  "list",
			identifier:  "loksewa",
			paramsKey:   []string{"ne", "10"},
			expectedKey: "pariksha:question:list:loksewa:ne_10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actualKey := GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...)
			if actualKey != tt.expectedKey {
				t.Errorf("GenerateCacheKey() = %v, want %v", actualKey, tt.expectedKey)
			}
		})
	}
}
