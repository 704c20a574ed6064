package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/newsparse"
	"github.com/fwojciec/newsparse/mock"
	npslog "github.com/fwojciec/newsparse/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingCookieSource_Cookies(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.CookieSource{
		CookiesFn: func(context.Context, string) ([]newsparse.Cookie, error) {
			return []newsparse.Cookie{{Name: "__arcsjs", Value: "secret-token"}}, nil
		},
	}

	cookies, err := npslog.NewLoggingCookieSource(inner, logger).Cookies(context.Background(), "https://www.irna.ir/")

	require.NoError(t, err)
	assert.Len(t, cookies, 1)
	output := buf.String()
	assert.Contains(t, output, "session cookies")
	assert.Contains(t, output, "__arcsjs")
	assert.NotContains(t, output, "secret-token")
}
