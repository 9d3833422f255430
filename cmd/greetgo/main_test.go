package main

import "testing"

func TestGetEnvIntPortFallback(t *testing.T) {
	testCases := []struct {
		name  string
		value string
		want  int
	}{
		{"unset", "", 10000},
		{"numeric", "8080", 8080},
		{"trailing garbage", "8080abc", 10000},
		{"non-numeric", "abc", 10000},
		{"leading space", " 9090", 10000},
		{"float", "80.80", 10000},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("PORT", tc.value)
			if got := getEnvInt("PORT", defaultPort); got != tc.want {
				t.Errorf("PORT=%q: got %d, want %d", tc.value, got, tc.want)
			}
		})
	}
}

func TestGetEnvFloatFallback(t *testing.T) {
	t.Setenv("GREETGO_RPS", "fast")
	if got := getEnvFloat("GREETGO_RPS", 20); got != 20 {
		t.Errorf("invalid value: got %v, want 20", got)
	}
	t.Setenv("GREETGO_RPS", "2.5")
	if got := getEnvFloat("GREETGO_RPS", 20); got != 2.5 {
		t.Errorf("valid value: got %v, want 2.5", got)
	}
}
