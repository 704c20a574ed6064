package sites

import (
	"html"
	"net/url"
	"regexp"
	"strings"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsparse"
	"github.com/fwojciec/newsparse/gofeed"
	"github.com/fwojciec/newsparse/goquery"
)

// Alef is the adapter of alef.ir. The breadcrumb is missing, so the
// category comes from the active navigation item.
func Alef() goquery.Adapter {
	return goquery.Adapter{
		Name:        "alef",
		URL:         newsparse.URLRules{Host: "www.alef.ir", Scheme: "https"},
		ArticleRoot: goquery.Query("article"),
		Title:       goquery.Query(".post-title"),
		Subtitle:    goquery.Query(".post-lead"),
		Content: goquery.ContentSpec{
			Main:           goquery.Query(".post-content>*, header img"),
			TextNode:       goquery.Query(".post-content"),
			IgnorePatterns: []*regexp.Regexp{regexp.MustCompile(`.*tavoos_init_player.*`)},
		},
		Tags: goquery.Query(".post-tag"),
		Date: goquery.DateSpec{Container: goquery.Query(".post-sous time"), Delimiter: "،"},
		Category: goquery.CategorySpec{
			Selector: goquery.Func(alefActiveNav),
			Mapper: newsparse.CategoryMapper{Default: formal, Rules: []newsparse.CategoryRule{
				news(rawIn("سیاسی"), newsparse.TopicPolitical, ""),
				news(rawIn("اقتصادی"), newsparse.TopicEconomics, ""),
				news(rawIn("اجتماعی"), newsparse.TopicSocial, ""),
				news(rawIn("فرهنگی"), newsparse.TopicCulture, ""),
				news(rawIn("بین"), newsparse.TopicPolitical, newsparse.TopicIntl),
				news(rawIn("ورزشی"), newsparse.TopicSport, ""),
				news(rawIn("فناوری", "دانش"), newsparse.TopicScienceTech, ""),
			}},
		},
		Comments: goquery.CommentSpec{
			Container: goquery.DocQuery(".comment"),
			Author:    goquery.Query(".comment-author"),
			Text:      goquery.Query(".comment-text"),
			Date:      goquery.DateSpec{Container: goquery.Query(".comment-date"), Delimiter: " ", AcceptNoDate: true},
		},
		NeedsSessionCookie: true,
	}
}

func alefActiveNav(_, full *gq.Selection, _ *url.URL) *gq.Selection {
	text := strings.TrimSpace(strings.ReplaceAll(full.Find(".navbar-nav .nav-item.active").First().Text(), "(current)", ""))
	if text == "" {
		return nil
	}
	return goquery.ParseFragment("<span>" + html.EscapeString(text) + "</span>")
}

// Euronews is the adapter of the Persian edition of euronews.com.
func Euronews() goquery.Adapter {
	return goquery.Adapter{
		Name: "euronews",
		URL: newsparse.URLRules{
			Host:   "parsi.euronews.com",
			Scheme: "https",
			// Some links repeat the host in the path.
			Rewrite: func(u *url.URL) {
				u.Path = strings.Replace(u.Path, "/parsi.euronews.com", "", 1)
			},
		},
		ArticleRoot: goquery.Query("article.o-article-newsy"),
		Title:       goquery.Query("h1"),
		Summary:     goquery.Query("p.c-article-summary"),
		Content: goquery.ContentSpec{
			Main:           goquery.Query(".c-article-content"),
			IgnoreClasses:  []string{"widget__wrapper", "c-ad", "c-article-you-might-also-like"},
			IgnorePatterns: []*regexp.Regexp{regexp.MustCompile(`.*به کانال تلگرام یورونیوز.*`)},
		},
		Tags: goquery.Query("#adb-article-tags div a"),
		Date: goquery.DateSpec{Container: goquery.DocQuery("time"), Attr: "datetime", Delimiter: "-"},
		Category: goquery.CategorySpec{
			Selector: goquery.DocQuery("#adb-article-breadcrumb a"),
			Mapper: newsparse.CategoryMapper{Default: formal, Rules: []newsparse.CategoryRule{
				news(rawIn("ورزش"), newsparse.TopicSport, ""),
				news(rawIn("اقتصاد", "کسب و کار"), newsparse.TopicEconomics, ""),
				news(rawIn("فرهنگ"), newsparse.TopicCulture, ""),
				news(rawIn("سلامت"), newsparse.TopicHealth, ""),
				news(rawIn("علم", "فناوری"), newsparse.TopicScienceTech, ""),
				news(newsparse.Always(), newsparse.TopicPolitical, newsparse.TopicIntl),
			}},
		},
	}
}

// Ekhtebar is the adapter of ekhtebar.ir, a legal news site.
func Ekhtebar() goquery.Adapter {
	return goquery.Adapter{
		Name:        "ekhtebar",
		URL:         newsparse.URLRules{Host: "ekhtebar.ir", Scheme: "https", RemoveWWW: true},
		ArticleRoot: goquery.Query("#the-post"),
		Title:       goquery.Query(".entry-title"),
		Subtitle:    goquery.Query(".lead"),
		Content: goquery.ContentSpec{
			Main:          goquery.Query(".entry-content"),
			IgnoreClasses: []string{"ez-toc-container", "ez-toc-title-container", "post-bottom-meta", "stream-item"},
			IgnoreTexts:   []string{"بیشتر بخوانید:"},
		},
		Tags: goquery.Query(".tagcloud a"),
		Date: goquery.DateSpec{Container: goquery.Query(".date")},
		Category: goquery.CategorySpec{
			Selector: goquery.Slice{Query: "#breadcrumb a", Start: 1},
			Mapper: newsparse.CategoryMapper{
				Default: newsparse.Category{Major: newsparse.MajorNews, Minor: newsparse.TopicLaw, TextType: newsparse.TextFormal},
			},
		},
		Comments: goquery.CommentSpec{Fetch: &gofeed.CommentFeed{PageParam: "paged", MaxPages: 10}},
	}
}
