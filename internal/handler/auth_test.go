package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidPassword(t *testing.T) {
	tests := []struct {
		password string
		ok       bool
	}{
		{"Abcdefg1", true},
		{"aB3xxxxx", true},
		{"abcdefg1", false}, // 缺大写
		{"ABCDEFG1", false}, // 缺小写
		{"Abcdefgh", false}, // 缺数字
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.ok, validPassword(tt.password), "password %q", tt.password)
	}
}
