package extractors

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mrjoshuak/gravity/types"
)

// Links returns the anchors under root that carry both an href and some
// inner markup.
func Links(root *goquery.Selection) []types.Link {
	if root == nil {
		return nil
	}

	var links []types.Link
	root.Find("a").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		text, err := a.Html()
		if err != nil {
			return
		}
		if href != "" && text != "" {
			links = append(links, types.Link{Href: href, Text: text})
		}
	})
	return links
}

// Videos returns the embedded media under root that declare a source and
// dimensions, the first occurrence of each source only.
func Videos(root *goquery.Selection) []types.Video {
	if root == nil {
		return nil
	}

	var candidates []types.Video
	root.Find("iframe, embed, object, video").Each(func(_ int, s *goquery.Selection) {
		switch goquery.NodeName(s) {
		case "embed":
			if goquery.NodeName(s.Parent()) == "object" {
				candidates = append(candidates, objectVideo(s))
			} else {
				candidates = append(candidates, videoAttrs(s))
			}
		case "object":
			candidates = append(candidates, objectVideo(s))
		default:
			candidates = append(candidates, videoAttrs(s))
		}
	})

	seen := make(map[string]bool)
	var videos []types.Video
	for _, v := range candidates {
		if v.Src == "" || v.Height == "" || v.Width == "" || seen[v.Src] {
			continue
		}
		seen[v.Src] = true
		videos = append(videos, v)
	}
	return videos
}

func videoAttrs(s *goquery.Selection) types.Video {
	return types.Video{
		Src:    s.AttrOr("src", ""),
		Width:  s.AttrOr("width", ""),
		Height: s.AttrOr("height", ""),
	}
}

// objectVideo reads the movie parameter of a plugin element
func objectVideo(s *goquery.Selection) types.Video {
	param := s.Find("param[name=movie]")
	if param.Length() == 0 {
		return types.Video{}
	}
	v := videoAttrs(s)
	v.Src = strings.TrimSpace(param.AttrOr("value", ""))
	return v
}
