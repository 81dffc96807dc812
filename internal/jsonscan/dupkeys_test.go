package jsonscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuplicateTopLevelKeys(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"none", `{"a":1,"b":2}`, nil},
		{"top level", `{"a":1,"b":2,"a":3,"a":4}`, []string{"a"}},
		{"nested ignored", `{"a":{"x":1,"x":2},"b":[{"y":1,"y":1}]}`, nil},
		{"after nested", `{"a":{"b":1},"b":2,"a":[1,{"a":1}]}`, []string{"a"}},
		{"string values are not keys", `{"a":"a","b":"a"}`, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DuplicateTopLevelKeys([]byte(tc.in))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDuplicateTopLevelKeys_Malformed(t *testing.T) {
	_, err := DuplicateTopLevelKeys([]byte(`{"a":`))
	assert.Error(t, err)
}
