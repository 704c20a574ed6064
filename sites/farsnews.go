package sites

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/fwojciec/newsparse"
	"github.com/fwojciec/newsparse/goquery"
)

const farsnewsCommentsURL = "https://www.farsnews.ir/api/getcomments"

// Farsnews is the adapter of farsnews.ir. Comments come from the site API.
func Farsnews() goquery.Adapter {
	return goquery.Adapter{
		Name: "farsnews",
		URL: newsparse.URLRules{
			Host:              "farsnews.ir",
			CanonicalHost:     "www.farsnews.ir",
			Scheme:            "https",
			InvalidStartPaths: []string{"/newstext", "/printable", "/af", "/api"},
			ValidPathItems:    []string{"news", "media"},
			PathCheckIndex:    1,
			ValidDomains:      []string{"farsnews.com"},
		},
		ArticleRoot: goquery.Query(".news-box, .gallery, .top-video .text"),
		Title:       goquery.Query(".title"),
		Summary:     goquery.Query(".lead"),
		Content: goquery.ContentSpec{
			Main:        goquery.Query(".nt-body>*, .top figure"),
			Alternative: goquery.Query(".row.photos img"),
			TextNode:    goquery.Query(".nt-body"),
		},
		Tags: goquery.Query(".tags .radius"),
		Date: goquery.DateSpec{Container: goquery.Query(".publish-time, .data-box span:nth-child(3)")},
		Category: goquery.CategorySpec{
			Selector: goquery.FirstOf{goquery.Query(".category-name a"), goquery.Query(".subject-category")},
			Mapper:   farsnewsCategories(),
		},
		Comments: goquery.CommentSpec{Fetch: newsparse.CommentFetcherFunc(farsnewsComments)},
	}
}

type farsnewsComment struct {
	Text     string            `json:"text"`
	Name     string            `json:"name"`
	Date     string            `json:"persianCreateDate"`
	Children []farsnewsComment `json:"children"`
}

func (c farsnewsComment) comment() newsparse.Comment {
	return newsparse.Comment{
		Text:   newsparse.NormalizeText(c.Text),
		Author: newsparse.NormalizeText(c.Name),
		Date:   newsparse.ExtractDate(c.Date, "-"),
	}
}

// farsnewsComments posts the story code, the second path segment, to the
// comments endpoint. Replies follow their parent.
func farsnewsComments(ctx context.Context, u *url.URL, r newsparse.Requester) ([]newsparse.Comment, error) {
	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segs) < 2 || segs[1] == "" {
		return nil, nil
	}

	var items []farsnewsComment
	err := doJSON(ctx, r, &newsparse.Request{
		Method: http.MethodPost,
		URL:    farsnewsCommentsURL,
		Header: map[string]string{"Content-Type": "application/x-www-form-urlencoded; charset=UTF-8"},
		Form:   url.Values{"storyCode": {segs[1]}},
	}, &items)
	if err != nil {
		return nil, err
	}

	var comments []newsparse.Comment
	for _, item := range items {
		comments = append(comments, item.comment())
		for _, child := range item.Children {
			comments = append(comments, child.comment())
		}
	}
	return comments, nil
}

func farsnewsCategories() newsparse.CategoryMapper {
	return newsparse.CategoryMapper{
		StripPrefixes: []string{"اخبار"},
		Default:       formal,
		Rules: []newsparse.CategoryRule{
			news(newsparse.FirstIsProvince(), newsparse.TopicLocal, ""),
			news(firstHas("فوتبال"), newsparse.TopicSport, newsparse.TopicFootball),
			news(firstHas("رالی"), newsparse.TopicSport, newsparse.TopicCar),
			news(firstHas("کشتی"), newsparse.TopicSport, newsparse.TopicWrestling),
			news(or(firstHas("سیاست خارجی"), firstIn("الملل")), newsparse.TopicPolitical, newsparse.TopicIntl),
			news(firstHas("سیاست"), newsparse.TopicPolitical, ""),
			news(firstHas("اقتصاد", "نرخ", "واحد"), newsparse.TopicEconomics, ""),
			news(firstHas("سینما"), newsparse.TopicCulture, newsparse.TopicCinema),
			news(firstHas("کتاب"), newsparse.TopicCulture, newsparse.TopicBook),
			news(firstHas("سفر "), newsparse.TopicCulture, newsparse.TopicTourism),
			news(firstIn("فضای مجازی"), newsparse.TopicIT, ""),
			news(firstHas("چندرسانه‌ای", "عکس", "ویدیو", "ویدئو", "تصویر", "کاریکاتور"), newsparse.TopicMultimedia, ""),
			news(or(firstIn("اجتماعی", "شهروند"), firstHas("جامعه", "محیط")), newsparse.TopicSocial, ""),
			news(firstIn("اقتصادی", "پولی", "قیمت", "تولید", "بازار", "مالیات", "اشتغال", "بورس", "بیمه", "نفت",
				"خودرو", "ارز ", "سکه", "بازرگانی", "حمل ", "کارگری"), newsparse.TopicEconomics, ""),
			news(firstIn("فرهنگ", "رسانه", "هنری"), newsparse.TopicCulture, ""),
			news(firstIn("المپیک", "ورزش", "جام جهانی", "باشگاهی"), newsparse.TopicSport, ""),
			news(firstIn("زندگی", "آشپزی", "زیبایی"), newsparse.TopicLifeStyle, ""),
			news(firstIn("کنکور"), newsparse.TopicEducation, ""),
			news(firstIn("دانشگاه"), newsparse.TopicUniversity, ""),
			news(firstIn("سلامت"), newsparse.TopicHealth, ""),
			news(firstIn("حوادث", "زورگیری"), newsparse.TopicSocial, newsparse.TopicAccident),
			news(firstIn("سفر"), newsparse.TopicLifeStyle, newsparse.TopicTourism),
			news(firstIn("قضایی", "حقوق"), newsparse.TopicLaw, ""),
			news(firstIn("سلبریتی", "آرامش"), newsparse.TopicLifeStyle, ""),
			news(firstIn("سرگرمی", "فال "), newsparse.TopicFun, ""),
			news(firstIn("پاسخ"), newsparse.TopicTalk, ""),
			news(firstIn("انتخابات", "جنبش عدم تعهد", "سیاسی"), newsparse.TopicPolitical, ""),
			news(firstIn("تکنولوژی", "فناوری", "علم", "دانش"), newsparse.TopicScienceTech, ""),
		},
		Refinements: []newsparse.Refinement{
			refine(secondIn("انتخابات"), newsparse.TopicPolitical),
			refine(secondIn("آموزش"), newsparse.TopicEducation),
			refine(secondIn("قرآن", "قران"), newsparse.TopicReligious),
			refine(secondIn("زندگی"), newsparse.TopicLifeStyle),
			refine(secondIn("اقتصاد"), newsparse.TopicEconomics),
			refine(secondIn("قضایی"), newsparse.TopicLaw),
			refine(secondIn("جامعه", "شهری", "محیط"), newsparse.TopicSocial),
			refine(secondIn("سلامت"), newsparse.TopicHealth),
			refine(secondIn("آشپزی"), newsparse.TopicCooking),
			refineOr(secondIn("حوادث"), newsparse.TopicSocial, newsparse.TopicAccident),
			refine(secondIn("دفاع", "نظامی"), newsparse.TopicDefence),
			refineOr(secondIn("کتاب"), newsparse.TopicCulture, newsparse.TopicBook),
			refineOr(secondIn("تلویزیون"), newsparse.TopicCulture, newsparse.TopicTV),
			refineOr(secondIn("سینما"), newsparse.TopicCulture, newsparse.TopicCinema),
			refineOr(secondIn("انرژی", "نفت"), newsparse.TopicScienceTech, newsparse.TopicEnergy),
			refineOr(secondIn("کشاورزی"), newsparse.TopicScienceTech, newsparse.TopicAgriculture),
			refine(secondIn("دانشگاه"), newsparse.TopicUniversity),
			refine(secondIn("تکنولوژی", "فناوری", "علم", "دانش"), newsparse.TopicScienceTech),
			refineOr(secondIn("هنر", "گالری"), newsparse.TopicCulture, newsparse.TopicArt),
			refineOr(secondIn("موسیقی"), newsparse.TopicCulture, newsparse.TopicMusic),
			refineOr(secondIn("مذهبی"), newsparse.TopicCulture, newsparse.TopicReligious),
			refine(secondIn("تاریخی"), newsparse.TopicHistorical),
			refineOr(secondIn("گردشگری", "سفر"), newsparse.TopicCulture, newsparse.TopicTourism),
			refine(secondIn("المپیک", "ورزش", "جام جهانی", "باشگاهی"), newsparse.TopicSport),
			force(secondIn("رالی"), newsparse.TopicSport, newsparse.TopicCar),
			force(secondIn("فوتبال"), newsparse.TopicSport, newsparse.TopicFootball),
			force(secondIn("رزمی"), newsparse.TopicSport, newsparse.TopicMartial),
			force(secondIn("کشتی"), newsparse.TopicSport, newsparse.TopicWrestling),
		},
	}
}
