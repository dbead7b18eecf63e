package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithSearchPath(t *testing.T) {
	cases := []struct {
		name   string
		dsn    string
		schema string
		want   string
	}{
		{name: "empty schema", dsn: "host=db user=app", schema: "", want: "host=db user=app"},
		{name: "key value", dsn: "host=db user=app ", schema: "storefront", want: "host=db user=app search_path=storefront"},
		{name: "url", dsn: "postgres://app:secret@db:5432/shop?sslmode=disable", schema: "storefront", want: "postgres://app:secret@db:5432/shop?search_path=storefront&sslmode=disable"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, WithSearchPath(tc.dsn, tc.schema))
		})
	}
}
