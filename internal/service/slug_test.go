package service

import (
    "testing"

    "github.com/stretchr/testify/require"
)

func TestParameterize(t *testing.T) {
    cases := []struct {
        in   string
        want string
    }{
        {"Hello World", "hello-world"},
        {"Hello, World!", "hello-world"},
        {"  Leading & trailing  ", "leading-trailing"},
        {"Already-hyphenated title", "already-hyphenated-title"},
        {"MiXeD CaSe 123", "mixed-case-123"},
        {"___", ""},
        {"", ""},
        {"多语言 Title", "多语言-title"},
    }
    for _, tc := range cases {
        require.Equal(t, tc.want, Parameterize(tc.in), "input %q", tc.in)
    }
}
