package sites

import (
	"github.com/fwojciec/newsparse"
	"github.com/fwojciec/newsparse/dateparser"
	"github.com/fwojciec/newsparse/goquery"
)

var sport = newsparse.Category{Major: newsparse.MajorNews, Minor: newsparse.TopicSport, TextType: newsparse.TextFormal}

// Varzesh3 is the adapter of varzesh3.com. Comment dates are relative
// ("۲ ساعت پیش").
func Varzesh3() goquery.Adapter {
	return goquery.Adapter{
		Name: "varzesh3",
		URL: newsparse.URLRules{
			Host:              "www.varzesh3.com",
			Scheme:            "https",
			InvalidStartPaths: []string{"/video"},
			ValidPathItems:    []string{"news"},
			PathCheckIndex:    1,
		},
		ArticleRoot: goquery.Query(".news-content-holder article"),
		AboveTitle:  goquery.Query(".subhead"),
		Title:       goquery.Query(".headline"),
		Subtitle:    goquery.Query(".lead"),
		Content: goquery.ContentSpec{
			Main:          goquery.Query(".news-detail-image, .news-text"),
			IgnoreClasses: []string{"video-js", "news-inline-biz"},
		},
		Tags: goquery.Query(".tagbox .tag"),
		Date: goquery.DateSpec{Container: goquery.Query(".news-info span:nth-child(2)"), Delimiter: "ساعت"},
		Category: goquery.CategorySpec{
			Mapper: newsparse.CategoryMapper{Default: sport},
		},
		Comments: goquery.CommentSpec{
			Container: goquery.Query(".vrz-user-comment"),
			Author:    goquery.Query(".cm-by-user"),
			Text:      goquery.Query(".cm-message"),
			Date: goquery.DateSpec{
				Container:    goquery.Query(".cm-data-t span:nth-child(2)"),
				Fallback:     dateparser.NewParser(),
				AcceptNoDate: true,
			},
		},
	}
}

// Tarafdari is the adapter of tarafdari.com.
func Tarafdari() goquery.Adapter {
	return goquery.Adapter{
		Name: "tarafdari",
		URL: newsparse.URLRules{
			Host:                "www.tarafdari.com",
			Scheme:              "https",
			InvalidStartPaths:   []string{"/user/", "/video"},
			IgnoreContentOnPath: []string{"/static/page/taxonomy/"},
		},
		ArticleRoot: goquery.Query("article.node-content"),
		AboveTitle:  goquery.Query(".field-name-field-surtitle"),
		Title:       goquery.Query("h1"),
		Subtitle:    goquery.Query(".field-name-field-teaser"),
		Content: goquery.ContentSpec{
			Main:          goquery.Query(".field-name-body .field-item.even"),
			IgnoreClasses: []string{"video-js", "news-inline-biz"},
		},
		Tags: goquery.Query(".field-name-field-tags a"),
		Date: goquery.DateSpec{Container: goquery.Query(".timeago[data-tarikh]"), Attr: "data-tarikh", Delimiter: "-"},
		Category: goquery.CategorySpec{
			Mapper: newsparse.CategoryMapper{Default: sport},
		},
		Comments: goquery.CommentSpec{
			Container: goquery.DocQuery(".discuss"),
			Author:    goquery.Query(".username"),
			Text:      goquery.Query(".discuss-content p"),
		},
	}
}
