package sites

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"

	"github.com/fwojciec/newsparse"
	"github.com/fwojciec/newsparse/goquery"
)

const (
	zoomitCommentsURL = "https://api2.zoomit.ir/discussion/api/feedbacks"
	zoomitPageSize    = 20
)

var zoomitTopicID = regexp.MustCompile(`/(\d+)-`)

// Zoomit is the adapter of zoomit.ir. Comments are paginated through the
// discussion API.
func Zoomit() goquery.Adapter {
	return goquery.Adapter{
		Name: "zoomit",
		URL: newsparse.URLRules{
			Host:              "www.zoomit.ir",
			Scheme:            "https",
			InvalidStartPaths: []string{"/product"},
		},
		ArticleRoot: goquery.Query("main"),
		AboveTitle:  goquery.Query("#Content_rutitr"),
		Title:       goquery.Query("h1"),
		Summary:     goquery.Query(".cJZnLd .BlockContainer__InnerArticleContainer-i5s1rc-1.hXzioD"),
		Content: goquery.ContentSpec{
			Main: goquery.Query(".eQTmR .BlockContainer__InnerArticleContainer-i5s1rc-1.hXzioD>*, img"),
		},
		Date: goquery.DateSpec{
			Container: goquery.Query(".oNOID > span:nth-child(3), .dgQNji > span:nth-child(3), .header-detail > span.eMeOeL"),
			Delimiter: "-",
		},
		Category: goquery.CategorySpec{
			Selector: goquery.Query(".kDyGrB a"),
			Mapper: newsparse.CategoryMapper{
				Default: newsparse.Category{
					Major:    newsparse.MajorNews,
					Minor:    newsparse.TopicScienceTech,
					Subminor: newsparse.TopicIT,
					TextType: newsparse.TextFormal,
				},
				Rules: []newsparse.CategoryRule{
					news(secondHas("موبایل"), "", newsparse.TopicMobile),
					news(secondHas("روباتیك", "رباتیک"), "", newsparse.TopicRobotic),
					news(secondHas("بازی"), "", newsparse.TopicGame),
					news(secondHas("سخت‌افزار", "كامپیوتر همراه"), "", newsparse.TopicHardware),
					news(or(firstHas("ارتباطات"), firstIn("ICT")), "", newsparse.TopicICT),
					news(firstHas("نجوم"), "", newsparse.TopicCosmos),
					news(firstHas("نرم"), "", newsparse.TopicSoftware),
					news(firstHas("امنیت"), "", newsparse.TopicSecurity),
				},
			},
		},
		Comments: goquery.CommentSpec{Fetch: newsparse.CommentFetcherFunc(zoomitComments)},
	}
}

type zoomitFeedback struct {
	Content string `json:"content"`
	User    struct {
		UserName string `json:"userName"`
	} `json:"user"`
	CreatedAt string           `json:"createdAt"`
	Children  []zoomitFeedback `json:"commentChildren"`
}

func (f zoomitFeedback) comment() newsparse.Comment {
	return newsparse.Comment{
		Text:   newsparse.NormalizeText(f.Content),
		Author: newsparse.NormalizeText(f.User.UserName),
		Date:   newsparse.ExtractDate(f.CreatedAt, "-"),
	}
}

type zoomitPage struct {
	AllFeedback []zoomitFeedback `json:"allFeedback"`
	HasNext     bool             `json:"hasNext"`
}

// zoomitComments walks the feedback pages of the article whose topic id
// prefixes the slug. API offsets start at 1.
func zoomitComments(ctx context.Context, u *url.URL, r newsparse.Requester) ([]newsparse.Comment, error) {
	m := zoomitTopicID.FindStringSubmatch(u.Path)
	if m == nil {
		return nil, nil
	}
	topicID := m[1]

	return newsparse.Paginate(ctx, newsparse.DefaultMaxCommentPages, func(ctx context.Context, page int) (*newsparse.CommentPage, error) {
		q := url.Values{
			"topicId":           {topicID},
			"topicType":         {"Article"},
			"sortBy":            {"MostLike"},
			"offset":            {fmt.Sprint(page + 1)},
			"size":              {fmt.Sprint(zoomitPageSize)},
			"commentDepthLevel": {"5"},
		}
		var res zoomitPage
		err := doJSON(ctx, r, &newsparse.Request{
			Method: http.MethodGet,
			URL:    zoomitCommentsURL + "?" + q.Encode(),
			Header: map[string]string{"Content-Type": "application/json; charset=UTF-8"},
		}, &res)
		if err != nil {
			return nil, err
		}

		var comments []newsparse.Comment
		for _, f := range res.AllFeedback {
			comments = append(comments, f.comment())
			for _, child := range f.Children {
				comments = append(comments, child.comment())
			}
		}
		return &newsparse.CommentPage{Comments: comments, HasNext: res.HasNext}, nil
	})
}
