package goquery_test

import (
	"testing"

	"github.com/fwojciec/newsparse"
	"github.com/fwojciec/newsparse/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Get(t *testing.T) {
	t.Parallel()

	t.Run("returns registered adapter", func(t *testing.T) {
		t.Parallel()

		registry := goquery.NewRegistry(goquery.Adapter{Name: "farsnews", Title: goquery.Query("h1")})

		got, ok := registry.Get("farsnews")

		require.True(t, ok)
		assert.Equal(t, "farsnews", got.Name)
	})

	t.Run("reports unknown adapter", func(t *testing.T) {
		t.Parallel()

		registry := goquery.NewRegistry()

		_, ok := registry.Get("farsnews")

		assert.False(t, ok)
	})

	t.Run("register replaces adapter with same name", func(t *testing.T) {
		t.Parallel()

		registry := goquery.NewRegistry(goquery.Adapter{Name: "isna", AcceptNoTitle: false})
		registry.Register(goquery.Adapter{Name: "isna", AcceptNoTitle: true})

		got, _ := registry.Get("isna")

		assert.True(t, got.AcceptNoTitle)
	})
}

func TestRegistry_Lookup(t *testing.T) {
	t.Parallel()

	registry := goquery.NewRegistry(
		goquery.Adapter{Name: "farsnews", URL: newsparse.URLRules{Host: "farsnews.ir", ValidDomains: []string{"farsnews.com"}}},
		goquery.Adapter{Name: "isna", URL: newsparse.URLRules{Host: "www.isna.ir"}},
	)

	tests := []struct {
		name string
		url  string
		want string
		ok   bool
	}{
		{name: "exact host", url: "https://farsnews.ir/news/1", want: "farsnews", ok: true},
		{name: "www prefix", url: "https://www.farsnews.ir/news/1", want: "farsnews", ok: true},
		{name: "alias domain", url: "http://farsnews.com/news/1", want: "farsnews", ok: true},
		{name: "host registered with www", url: "https://isna.ir/news/1", want: "isna", ok: true},
		{name: "unknown host", url: "https://example.com/", ok: false},
		{name: "no host", url: "/news/1", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := registry.Lookup(tt.url)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got.Name)
		})
	}
}

func TestRegistry_List(t *testing.T) {
	t.Parallel()

	registry := goquery.NewRegistry(goquery.Adapter{Name: "zoomit"}, goquery.Adapter{Name: "alef"}, goquery.Adapter{Name: "isna"})

	assert.Equal(t, []string{"alef", "isna", "zoomit"}, registry.List())
}
