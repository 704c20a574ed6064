package sites

import (
	"net/url"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsparse"
	"github.com/fwojciec/newsparse/goquery"
)

// Isna is the adapter of isna.ir.
func Isna() goquery.Adapter {
	return goquery.Adapter{
		Name: "isna",
		URL: newsparse.URLRules{
			Host:           "www.isna.ir",
			Scheme:         "https",
			PathCheckIndex: 1,
		},
		ArticleRoot: goquery.Query("article"),
		AboveTitle:  goquery.Query(".kicker"),
		Title:       goquery.Query(".first-title"),
		Summary:     goquery.Query(".summary"),
		Content: goquery.ContentSpec{
			Main:        goquery.Query(".item-body .item-text>*, .photoGall li"),
			Alternative: goquery.Func(isnaGalleryCaption),
			TextNode:    goquery.Query(".item-text"),
			IgnoreTexts: []string{"بیشتر:"},
		},
		Tags: goquery.Query(".tags li"),
		Date: goquery.DateSpec{
			Container: goquery.Query(".meta-news li:nth-child(1) .text-meta, time"),
			Splitter: func(node, _ *gq.Selection) string {
				delim := " "
				if node.HasClass("text-meta") || gq.NodeName(node) == "time" {
					delim = "/"
				}
				return newsparse.ExtractDate(node.Text(), delim)
			},
		},
		Category: goquery.CategorySpec{
			Selector: goquery.Query(".meta-news li:nth-child(2) .text-meta"),
			Mapper:   isnaCategories(),
		},
		Comments: goquery.CommentSpec{
			Container: goquery.Query(".comments .comment"),
			Author:    goquery.Query(".comment-name"),
			Text:      goquery.Query("p"),
			Date:      goquery.DateSpec{Container: goquery.Query(".date-comment"), AcceptNoDate: true},
		},
	}
}

// isnaGalleryCaption returns the block after the date on gallery pages.
func isnaGalleryCaption(article, _ *gq.Selection, _ *url.URL) *gq.Selection {
	if article.Find("section.gallery").Length() == 0 {
		return nil
	}
	return article.Find("time").First().Next()
}

func isnaCategories() newsparse.CategoryMapper {
	intl := or(rawHas("آمریکا", "غرب", "انرژی هسته", "بین الملل"), rawIn("خارجی", "ایران در جهان", "اقیانوسیه", "تحلیل"))
	return newsparse.CategoryMapper{
		Default: formal,
		Rules: []newsparse.CategoryRule{
			news(rawHas("اجتماعی", "جامعه", "خانواده", "محیط"), newsparse.TopicSocial, ""),
			news(rawIn("دانشگاه", "دانشجو"), newsparse.TopicUniversity, ""),
			news(rawIn("علم", "دانش", "پژوهش"), newsparse.TopicScienceTech, ""),
			news(rawHas("انرژی هسته"), newsparse.TopicPolitical, newsparse.TopicIntl),
			news(or(rawHas("اقتصاد", "انرژی", "عمران", "استخدام", "ترین", "تمدن‌سازی", "مردمی‌سازی", "امید و آگاهی", "الگوی پیشرفت"),
				rawIn("تجارت", "بازار")), newsparse.TopicEconomics, ""),
			news(intl, newsparse.TopicPolitical, newsparse.TopicIntl),
			news(rawHas("عکس", "فیلم", "ویدئو", "ویدیو", "صوت", "گزارش", "دیدنی", "موشن", "کاریکاتور", "اینفوگرافیک"), newsparse.TopicMultimedia, ""),
			news(rawIn("ورزش", "المپیک", "جام ", "بازی", "یورو"), newsparse.TopicSport, ""),
			news(rawHas("فوتبال"), newsparse.TopicSport, newsparse.TopicFootball),
			news(rawHas("کشتی"), newsparse.TopicSport, newsparse.TopicWrestling),
			news(rawHas("توپ"), newsparse.TopicSport, newsparse.TopicBall),
			news(rawHas("سینما"), newsparse.TopicCulture, newsparse.TopicCinema),
			news(rawHas("تجسمی"), newsparse.TopicCulture, newsparse.TopicArt),
			news(rawIn("ادبیات"), newsparse.TopicCulture, newsparse.TopicLiterature),
			news(or(rawIn("فرهنگ", "میراث"), rawHas("رسانه")), newsparse.TopicCulture, ""),
			news(rawHas("ارتباطات"), newsparse.TopicEconomics, newsparse.TopicIT),
			news(or(rawHas("دین"), rawIn("اسلامی")), newsparse.TopicReligious, ""),
			news(rawHas("سلامت"), newsparse.TopicHealth, ""),
			news(rawIn("آموزش"), newsparse.TopicEducation, ""),
			news(rawHas("حقوقی"), newsparse.TopicLaw, ""),
			news(or(rawHas("سیاس", "مجلس", "دولت", "محور مقاومت", "ایسنا+", "شبکه", "سند", "اندیشه"), rawIn("خبر")), newsparse.TopicPolitical, ""),
			news(rawHas("دفاعی"), newsparse.TopicPolitical, newsparse.TopicDefence),
			news(rawHas("چهره", "دیدگاه", "باشگاه", "کانون", "یادداشت"), newsparse.TopicGeneric, ""),
			news(rawHas("حوادث"), newsparse.TopicGeneric, newsparse.TopicAccident),
			news(rawIn("جهان"), newsparse.TopicPolitical, newsparse.TopicIntl),
			news(newsparse.Always(), "", newsparse.TopicLocal),
		},
	}
}
