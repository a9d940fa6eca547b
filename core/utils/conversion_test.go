package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
	}{
		{"int", 7, 7},
		{"int64", int64(8), 8},
		{"float", 9.9, 9},
		{"string", " 12 ", 12},
		{"bytes", []byte("13"), 13},
		{"garbage", "abc", 0},
		{"nil", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToInt(tt.in))
		})
	}
}

func TestToBool(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want bool
	}{
		{"bool", true, true},
		{"one", 1, true},
		{"zero", 0, false},
		{"string one", "1", true},
		{"string zero", "0", false},
		{"string true", "TRUE", true},
		{"empty", "", false},
		{"bytes", []byte("1"), true},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToBool(tt.in))
		})
	}
}
