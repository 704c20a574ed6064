package sites

import (
	"regexp"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsparse"
	"github.com/fwojciec/newsparse/goquery"
)

// nastooh is the base adapter of sites running the Nastooh CMS.
func nastooh(override goquery.Adapter) goquery.Adapter {
	base := goquery.Adapter{
		URL: newsparse.URLRules{
			Scheme:            "https",
			InvalidStartPaths: []string{"/old/upload", "/d/"},
			PathCheckIndex:    1,
		},
		ArticleRoot: goquery.Query("article"),
		AboveTitle:  goquery.Query(".rutitr, .kicker"),
		Title:       goquery.Query(".title"),
		Subtitle:    goquery.Query(".introtext"),
		Summary:     goquery.Query(".item-summary"),
		Content: goquery.ContentSpec{
			Main:        goquery.Query(".item-body .item-text>*, .introtext+figure, .item-header+figure, section.photoGall li, .item-text .gallery figure, .item-summary figure"),
			Alternative: goquery.Query(".item-body>*"),
			TextNode:    goquery.Query(".item-body .item-text"),
		},
		Tags: goquery.Query(".tags li"),
		Date: goquery.DateSpec{Container: goquery.Query(".item-date>span"), Delimiter: "-"},
		Category: goquery.CategorySpec{
			Selector: goquery.Query(".breadcrumb li"),
			Mapper:   newsparse.CategoryMapper{Default: formal},
		},
		Comments: goquery.CommentSpec{
			Container: goquery.Query(".comments-list li"),
			Author:    goquery.Query(".author"),
			Text:      goquery.Query(".comment-body"),
			Date:      goquery.DateSpec{Container: goquery.Query(".date"), AcceptNoDate: true},
		},
	}
	return goquery.Merge(base, override)
}

// Hamshahrionline is the adapter of hamshahrionline.ir.
func Hamshahrionline() goquery.Adapter {
	return nastooh(goquery.Adapter{
		Name:        "hamshahrionline",
		URL:         newsparse.URLRules{Host: "www.hamshahrionline.ir"},
		ArticleRoot: goquery.Query(".main-content"),
	})
}

// Irna is the adapter of irna.ir. The site sits behind a bot challenge.
func Irna() goquery.Adapter {
	return nastooh(goquery.Adapter{
		Name:               "irna",
		URL:                newsparse.URLRules{Host: "www.irna.ir"},
		Date:               goquery.DateSpec{Delimiter: "،"},
		NeedsSessionCookie: true,
		Category: goquery.CategorySpec{Mapper: newsparse.CategoryMapper{Rules: []newsparse.CategoryRule{
			news(or(firstHas("ورزش"), secondHas("جام جهانی")), newsparse.TopicSport, ""),
			news(or(firstHas("جامعه"), secondIn("اجتماعی")), newsparse.TopicSocial, ""),
			news(rawIn("اقتصاد"), newsparse.TopicEconomics, ""),
			news(firstIn("بهداشت"), newsparse.TopicHealth, ""),
			news(rawIn("عکس", "فیلم", "ویدئو"), newsparse.TopicMultimedia, ""),
			news(or(firstHas("جهان"), secondHas("سیاست خارجی"), rawIn("بین")), newsparse.TopicPolitical, newsparse.TopicIntl),
			news(rawIn("آموزش", "دانشگاه"), newsparse.TopicEducation, ""),
			news(secondIn("ایران‌شناسی"), newsparse.TopicCulture, ""),
			news(firstIn("علم"), newsparse.TopicScienceTech, ""),
			news(and(firstHas("فرهنگ"), secondHas("کتاب")), newsparse.TopicCulture, newsparse.TopicLiterature),
			news(and(firstHas("فرهنگ"), secondHas("سینما")), newsparse.TopicCulture, newsparse.TopicCinema),
			news(firstIn("فرهنگ"), newsparse.TopicCulture, ""),
			news(rawIn("سبک زندگی"), newsparse.TopicLifeStyle, ""),
			news(or(firstHas("سیاست", "پژوهش", "صفحات"), secondIn("سیاسی"), secondHas("خبر")), newsparse.TopicPolitical, ""),
			news(newsparse.FirstIsProvince(), newsparse.TopicLocal, ""),
		}}},
	})
}

// Khabaronline is the adapter of khabaronline.ir.
func Khabaronline() goquery.Adapter {
	return nastooh(goquery.Adapter{
		Name: "khabaronline",
		URL: newsparse.URLRules{
			Host:           "www.khabaronline.ir",
			ValidPathItems: []string{"news", "live", "photo", "media"},
		},
		Content: goquery.ContentSpec{
			IgnoreTexts: []string{"بیشتر بخوانید:"},
			// Page numbers trail the body as bare text nodes.
			IgnoreTextNode: func(text string, index, count int) bool {
				return index > count-5 && digitsOnly.MatchString(text)
			},
		},
	})
}

var digitsOnly = regexp.MustCompile(`^[0-9۰-۹]+$`)

// Mehrnews is the adapter of mehrnews.com. Photo pages carry their date in
// a different block and format than news pages.
func Mehrnews() goquery.Adapter {
	return nastooh(goquery.Adapter{
		Name: "mehrnews",
		URL:  newsparse.URLRules{Host: "www.mehrnews.com"},
		Date: goquery.DateSpec{
			Splitter: func(node, full *gq.Selection) string {
				if photo := full.Find("#photo"); photo.Length() > 0 {
					if span := photo.Find(".item-date>span").First(); span.Length() > 0 {
						node = span
					}
					return newsparse.ExtractDate(node.Text(), "-")
				}
				return newsparse.ExtractDate(node.Text(), "،")
			},
		},
		Category: goquery.CategorySpec{Mapper: newsparse.CategoryMapper{Rules: []newsparse.CategoryRule{
			news(secondHas("توپ"), newsparse.TopicSport, newsparse.TopicBall),
			news(or(and(firstHas("هنر"), secondHas("سینما")), secondHas("جشنواره")), newsparse.TopicCulture, newsparse.TopicCinema),
			news(and(firstHas("هنر"), secondHas("تئاتر")), newsparse.TopicCulture, newsparse.TopicTheatre),
			news(and(firstHas("هنر"), secondIn("تلویزیون")), newsparse.TopicCulture, newsparse.TopicTV),
			news(and(firstHas("هنر"), secondHas("موسیقی")), newsparse.TopicCulture, newsparse.TopicMusic),
			news(and(firstHas("هنر"), secondHas("کتاب")), newsparse.TopicCulture, newsparse.TopicBook),
			news(firstHas("هنر"), newsparse.TopicCulture, newsparse.TopicArt),
			news(rawIn("عکس", "فیلم", "اینفو", "دکه", "مهرکارتون", "گرافیک"), newsparse.TopicMultimedia, ""),
			news(secondHas("فوتبال"), newsparse.TopicSport, newsparse.TopicFootball),
			news(secondHas("کشتی"), newsparse.TopicSport, newsparse.TopicWrestling),
			news(or(firstHas("ورزش"), secondHas("جام جهانی")), newsparse.TopicSport, ""),
			news(rawIn("جامعه/حوادث"), newsparse.TopicSocial, newsparse.TopicAccident),
			news(and(firstHas("جامعه"), secondIn("حقوقی")), newsparse.TopicSocial, newsparse.TopicLaw),
			news(and(firstHas("جامعه"), secondIn("آموزش")), newsparse.TopicSocial, newsparse.TopicEducation),
			news(or(firstHas("جامعه"), rawIn("زندگی")), newsparse.TopicSocial, ""),
			news(secondHas("گپ"), newsparse.TopicTalk, ""),
			news(rawIn("دفاعی"), newsparse.TopicPolitical, newsparse.TopicDefence),
			news(firstHas("سلامت"), newsparse.TopicHealth, ""),
			news(rawIn("اقتصاد", "بازار"), newsparse.TopicEconomics, ""),
			news(rawIn("دانشگاه"), newsparse.TopicUniversity, ""),
			news(or(secondHas("سیاست خارجی"), rawIn("بین", "دنیا")), newsparse.TopicPolitical, newsparse.TopicIntl),
			news(rawIn("آموزش"), newsparse.TopicSocial, newsparse.TopicEducation),
			news(or(firstHas("دانش"), rawIn("مجازی")), newsparse.TopicScienceTech, ""),
			news(rawIn("فرهنگ", "گردشگری"), newsparse.TopicCulture, ""),
			news(rawIn("سیاست", "انتخابات", "خبر"), newsparse.TopicPolitical, ""),
			news(or(newsparse.FirstIsProvince(), firstHas("ایران")), newsparse.TopicLocal, ""),
			news(firstHas("دین"), newsparse.TopicReligious, ""),
			news(rawIn("رادیومهر"), newsparse.TopicGeneric, newsparse.TopicRadio),
		}}},
	})
}

// Imna is the adapter of imna.ir. The site sits behind a bot challenge.
func Imna() goquery.Adapter {
	return nastooh(goquery.Adapter{
		Name:               "imna",
		URL:                newsparse.URLRules{Host: "www.imna.ir"},
		NeedsSessionCookie: true,
		Category: goquery.CategorySpec{Mapper: newsparse.CategoryMapper{Rules: []newsparse.CategoryRule{
			news(firstHas("عکس", "چند رسانه"), newsparse.TopicMultimedia, ""),
			news(firstHas("اقتصاد"), newsparse.TopicEconomics, ""),
			news(and(firstHas("جامعه"), secondHas("سلامت")), newsparse.TopicSocial, newsparse.TopicHealth),
			news(firstHas("جامعه"), newsparse.TopicSocial, ""),
			news(firstHas("بین"), newsparse.TopicPolitical, newsparse.TopicIntl),
			news(firstHas("سیاست"), newsparse.TopicPolitical, ""),
			news(and(firstHas("فرهنگ"), secondIn("موسیقی")), newsparse.TopicCulture, newsparse.TopicMusic),
			news(and(firstHas("فرهنگ"), secondIn("دین")), newsparse.TopicCulture, newsparse.TopicReligious),
			news(and(firstHas("فرهنگ"), secondIn("ادبیات")), newsparse.TopicCulture, newsparse.TopicLiterature),
			news(and(firstHas("فرهنگ"), secondIn("سینما")), newsparse.TopicCulture, newsparse.TopicCinema),
			news(firstHas("فرهنگ"), newsparse.TopicCulture, ""),
			news(rawIn("ورزش"), newsparse.TopicSport, ""),
			news(firstHas("علم"), newsparse.TopicScienceTech, ""),
			news(rawIn("شهر"), newsparse.TopicLocal, ""),
		}}},
	})
}
