package newsparse_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/newsparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pageOf(page int, hasNext bool) *newsparse.CommentPage {
	return &newsparse.CommentPage{
		Comments: []newsparse.Comment{
			{Text: fmt.Sprintf("p%d-a", page)},
			{Text: fmt.Sprintf("p%d-b", page)},
		},
		HasNext: hasNext,
	}
}

func TestPaginate(t *testing.T) {
	t.Parallel()

	t.Run("stops when continuation flag is false", func(t *testing.T) {
		t.Parallel()

		var calls []int
		comments, err := newsparse.Paginate(context.Background(), 10, func(ctx context.Context, page int) (*newsparse.CommentPage, error) {
			calls = append(calls, page)
			return pageOf(page, page < 2), nil
		})

		require.NoError(t, err)
		assert.Equal(t, []int{0, 1, 2}, calls)
		texts := make([]string, len(comments))
		for i, c := range comments {
			texts[i] = c.Text
		}
		assert.Equal(t, []string{"p0-a", "p0-b", "p1-a", "p1-b", "p2-a", "p2-b"}, texts)
	})

	t.Run("caps iterations when server never stops", func(t *testing.T) {
		t.Parallel()

		calls := 0
		comments, err := newsparse.Paginate(context.Background(), 3, func(ctx context.Context, page int) (*newsparse.CommentPage, error) {
			calls++
			return pageOf(page, true), nil
		})

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
		assert.Len(t, comments, 6)
	})

	t.Run("uses default cap for non-positive limit", func(t *testing.T) {
		t.Parallel()

		calls := 0
		_, err := newsparse.Paginate(context.Background(), 0, func(ctx context.Context, page int) (*newsparse.CommentPage, error) {
			calls++
			return pageOf(page, true), nil
		})

		require.NoError(t, err)
		assert.Equal(t, newsparse.DefaultMaxCommentPages, calls)
	})

	t.Run("returns accumulated comments on failure", func(t *testing.T) {
		t.Parallel()

		comments, err := newsparse.Paginate(context.Background(), 10, func(ctx context.Context, page int) (*newsparse.CommentPage, error) {
			if page == 1 {
				return nil, errors.New("timeout")
			}
			return pageOf(page, true), nil
		})

		require.Error(t, err)
		assert.Len(t, comments, 2)
	})

	t.Run("stops on cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		comments, err := newsparse.Paginate(ctx, 10, func(ctx context.Context, page int) (*newsparse.CommentPage, error) {
			t.Fatal("fetch must not be called")
			return nil, nil
		})

		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, comments)
	})
}
