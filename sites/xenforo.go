package sites

import (
	"regexp"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsparse"
	"github.com/fwojciec/newsparse/goquery"
)

var isoDay = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// postDay reads the day of a post from its machine-readable timestamp.
func postDay(node, _ *gq.Selection) string {
	v, _ := node.Attr("datetime")
	return isoDay.FindString(v)
}

// xenforo is the base adapter of forums running XenForo. The first post
// is the article; replies are comments.
func xenforo(override goquery.Adapter) goquery.Adapter {
	base := goquery.Adapter{
		URL: newsparse.URLRules{
			Scheme:              "https",
			RemoveWWW:           true,
			IgnoreContentOnPath: []string{"/tags", "/goto", "/forums", "/showpost"},
			InvalidStartPaths:   []string{"/members", "/search", "/misc"},
		},
		ArticleRoot: goquery.Query(".block--messages"),
		Title:       goquery.DocQuery("h1"),
		Content: goquery.ContentSpec{
			Main: goquery.Slice{Query: "article.message .bbWrapper", Last: 1},
		},
		Date: goquery.DateSpec{Container: goquery.Query("time"), Splitter: postDay},
		Category: goquery.CategorySpec{
			Selector: goquery.DocQuery("ul.p-breadcrumbs li a span"),
			Mapper: newsparse.CategoryMapper{
				Default: newsparse.Category{Major: newsparse.MajorForum, TextType: newsparse.TextInformal},
			},
		},
		Comments: goquery.CommentSpec{
			Container: goquery.Slice{Query: ".js-replyNewMessageContainer article.message", Start: 1},
			Author:    goquery.Query(".message-name"),
			Text:      goquery.Query(".bbWrapper"),
			Date:      goquery.DateSpec{Container: goquery.Query("time"), Splitter: postDay, AcceptNoDate: true},
		},
	}
	return goquery.Merge(base, override)
}

func forum(match newsparse.CategoryPredicate, minor, subminor newsparse.Topic) newsparse.CategoryRule {
	return newsparse.CategoryRule{
		Match:    match,
		Category: newsparse.Category{Major: newsparse.MajorForum, Minor: minor, Subminor: subminor, TextType: newsparse.TextInformal},
	}
}

// Persiantools is the adapter of forum.persiantools.com.
func Persiantools() goquery.Adapter {
	return xenforo(goquery.Adapter{
		Name: "persiantools",
		URL:  newsparse.URLRules{Host: "forum.persiantools.com"},
		Category: goquery.CategorySpec{Mapper: newsparse.CategoryMapper{Rules: []newsparse.CategoryRule{
			forum(secondHas("ورزش"), newsparse.TopicSport, ""),
			forum(secondHas("موبایل"), newsparse.TopicScienceTech, newsparse.TopicMobile),
			forum(secondHas("سخت افزار", "سخت‌افزار"), newsparse.TopicScienceTech, newsparse.TopicHardware),
			forum(secondHas("نرم افزار", "نرم‌افزار", "سیستم عامل"), newsparse.TopicScienceTech, newsparse.TopicSoftware),
			forum(secondHas("امنیت"), newsparse.TopicScienceTech, newsparse.TopicSecurity),
			forum(secondHas("کامپیوتر", "اینترنت", "شبکه"), newsparse.TopicScienceTech, newsparse.TopicIT),
			forum(secondHas("بازی"), newsparse.TopicFun, newsparse.TopicGame),
			forum(secondHas("خودرو"), newsparse.TopicGeneric, newsparse.TopicCar),
			forum(secondHas("آشپزی"), newsparse.TopicLifeStyle, newsparse.TopicCooking),
			forum(secondHas("سینما", "فیلم"), newsparse.TopicCulture, newsparse.TopicCinema),
			forum(secondHas("موسیقی"), newsparse.TopicCulture, newsparse.TopicMusic),
			forum(secondHas("کتاب", "ادبیات"), newsparse.TopicCulture, newsparse.TopicLiterature),
			forum(secondHas("سیاس"), newsparse.TopicPolitical, ""),
			forum(secondHas("اقتصاد", "بورس"), newsparse.TopicEconomics, ""),
			forum(secondHas("پزشکی", "سلامت"), newsparse.TopicHealth, ""),
			forum(secondHas("تاریخ"), newsparse.TopicHistorical, ""),
			forum(secondHas("گردشگری", "سفر"), newsparse.TopicTourism, ""),
			forum(secondHas("گپ", "گفتگو"), newsparse.TopicDiscussion, ""),
		}}},
	})
}

// Majidonline is the adapter of forum.majidonline.com, a forum about
// graphics and web development.
func Majidonline() goquery.Adapter {
	return xenforo(goquery.Adapter{
		Name: "majidonline",
		URL: newsparse.URLRules{
			Host:                "forum.majidonline.com",
			IgnoreContentOnPath: []string{"/members"},
		},
		Category: goquery.CategorySpec{Mapper: newsparse.CategoryMapper{
			Default: newsparse.Category{Major: newsparse.MajorForum, Minor: newsparse.TopicScienceTech, Subminor: newsparse.TopicIT, TextType: newsparse.TextInformal},
		}},
	})
}
