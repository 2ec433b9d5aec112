package scrape

import (
	"net/url"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/net/html"

	"showtag/internal/episodes"
)

var (
	soundcloudTrackPattern = regexp.MustCompile(`tracks?/([0-9]+)`)
	archiveEmbedPattern    = regexp.MustCompile(`archive\.org/embed/([^/?]+)`)
	preWrapPattern         = regexp.MustCompile(`white-space:\s*pre-wrap`)
)

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// walk visits every element node in document order. The visitor returns
// false to stop descending into the node's children.
func walk(n *html.Node, visit func(*html.Node) bool) {
	if n.Type == html.ElementNode && !visit(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	var found *html.Node
	walk(n, func(node *html.Node) bool {
		if found != nil {
			return false
		}
		if match(node) {
			found = node
			return false
		}
		return true
	})
	return found
}

// nodeText flattens the text content of a node. <br> elements become
// newlines so line-per-track markup survives the flattening.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var f func(*html.Node)
	f = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			b.WriteString(n.Data)
		case n.Type == html.ElementNode && n.Data == "br":
			b.WriteString("\n")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(n)
	return b.String()
}

func resolveURL(base *url.URL, href string) (string, bool) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	return base.ResolveReference(ref).String(), true
}

// episodeLinks extracts all episode URLs from a listing page: masonry
// articles hold one link each. Numbered episodes sort newest first; other
// site-local links (special mixes) follow alphabetically.
func episodeLinks(doc *html.Node, base *url.URL) []string {
	type numbered struct {
		number int
		url    string
	}
	var withNumber []numbered
	others := make(map[string]struct{})

	walk(doc, func(n *html.Node) bool {
		if n.Data != "article" || !hasClass(n, "masonry-item") {
			return true
		}
		link := findFirst(n, func(c *html.Node) bool {
			return c.Data == "a" && hasClass(c, "masonry-link")
		})
		if link == nil {
			return false
		}
		href := attr(link, "href")
		if href == "" {
			return false
		}
		full, ok := resolveURL(base, href)
		if !ok {
			return false
		}
		if num, ok := episodes.Number(full); ok {
			withNumber = append(withNumber, numbered{number: num, url: full})
		} else if strings.Contains(full, "/episode-") || strings.HasPrefix(full, base.String()) {
			others[full] = struct{}{}
		}
		return false
	})

	sort.Slice(withNumber, func(i, j int) bool {
		return withNumber[i].number > withNumber[j].number
	})

	urls := make([]string, 0, len(withNumber)+len(others))
	for _, n := range withNumber {
		urls = append(urls, n.url)
	}
	rest := make([]string, 0, len(others))
	for u := range others {
		rest = append(rest, u)
	}
	sort.Strings(rest)
	return append(urls, rest...)
}

// rangePageURLs discovers the archive listing pages from the RADIO SHOWS
// navigation folder. The homepage only shows recent episodes; the archive
// is split across these range pages.
func rangePageURLs(doc *html.Node, base *url.URL) []string {
	var urls []string
	walk(doc, func(n *html.Node) bool {
		if n.Data != "li" || !hasClass(n, "folder-collection") || !hasClass(n, "folder") {
			return true
		}
		label := findFirst(n, func(c *html.Node) bool {
			return c.Data == "a" && strings.TrimSpace(nodeText(c)) == "RADIO SHOWS"
		})
		if label == nil {
			return false
		}
		child := findFirst(n, func(c *html.Node) bool {
			return c.Data == "div" && hasClass(c, "folder-child")
		})
		if child == nil {
			return false
		}
		walk(child, func(c *html.Node) bool {
			if c.Data == "a" {
				if full, ok := resolveURL(base, attr(c, "href")); ok && attr(c, "href") != "" {
					urls = append(urls, full)
				}
			}
			return true
		})
		return false
	})
	return urls
}

// parseEpisode extracts thumbnail, player URL, and tracklist from one
// episode page.
func parseEpisode(pageURL string, doc *html.Node) episodes.Episode {
	ep := episodes.Episode{URL: pageURL}

	if figure := findFirst(doc, func(n *html.Node) bool {
		return n.Data == "figure" && attr(n, "id") == "thumbnail"
	}); figure != nil {
		if img := findFirst(figure, func(n *html.Node) bool { return n.Data == "img" }); img != nil {
			if src := attr(img, "data-src"); src != "" {
				ep.Thumbnail = src
			} else {
				ep.Thumbnail = attr(img, "src")
			}
		}
	}

	ep.AudioURL, ep.AudioType = audioSource(doc)
	ep.Tracklist = tracklist(doc)
	return ep
}

func audioSource(doc *html.Node) (string, string) {
	if iframe := findFirst(doc, func(n *html.Node) bool {
		return n.Data == "iframe" && strings.Contains(attr(n, "src"), "soundcloud.com/player")
	}); iframe != nil {
		src, err := url.QueryUnescape(attr(iframe, "src"))
		if err != nil {
			src = attr(iframe, "src")
		}
		if m := soundcloudTrackPattern.FindStringSubmatch(src); m != nil {
			return "https://soundcloud.com/chanceswithwolves/tracks/" + m[1], "soundcloud"
		}
	}

	if iframe := findFirst(doc, func(n *html.Node) bool {
		return n.Data == "iframe" && strings.Contains(attr(n, "src"), "archive.org/embed")
	}); iframe != nil {
		if m := archiveEmbedPattern.FindStringSubmatch(attr(iframe, "src")); m != nil {
			return "https://archive.org/details/" + m[1], "archive.org"
		}
	}
	return "", ""
}

// tracklist finds the player block and reads track lines from it and its
// following sibling blocks. Newer episodes put one track per pre-wrap
// paragraph; older ones pack the whole list into spans separated by <br>.
// Either way each line reads "title - artist", split on the first " - ".
func tracklist(doc *html.Node) []episodes.Track {
	block := findFirst(doc, func(n *html.Node) bool {
		return n.Data == "div" && strings.Contains(attr(n, "class"), "soundcloud-block")
	})
	if block == nil {
		block = findFirst(doc, func(n *html.Node) bool {
			return n.Data == "div" && strings.Contains(attr(n, "class"), "html-block")
		})
	}
	if block == nil {
		return nil
	}

	var tracks []episodes.Track
	tracks = appendSpanTracks(tracks, block)

	for sibling := block.NextSibling; sibling != nil; sibling = sibling.NextSibling {
		if sibling.Type != html.ElementNode || sibling.Data != "div" {
			continue
		}
		class := attr(sibling, "class")
		if strings.Contains(class, "sqs-block-markdown") || strings.Contains(class, "sqs-block-video") {
			break
		}
		tracks = appendPreWrapTracks(tracks, sibling)
		tracks = appendSpanTracks(tracks, sibling)
	}
	return tracks
}

func appendPreWrapTracks(tracks []episodes.Track, n *html.Node) []episodes.Track {
	walk(n, func(p *html.Node) bool {
		if p.Data != "p" || !preWrapPattern.MatchString(attr(p, "style")) {
			return true
		}
		tracks = appendTrackLine(tracks, nodeText(p))
		return false
	})
	return tracks
}

func appendSpanTracks(tracks []episodes.Track, n *html.Node) []episodes.Track {
	walk(n, func(p *html.Node) bool {
		if p.Data != "p" {
			return true
		}
		walk(p, func(span *html.Node) bool {
			if span.Data != "span" {
				return true
			}
			for _, line := range strings.Split(nodeText(span), "\n") {
				tracks = appendTrackLine(tracks, line)
			}
			return false
		})
		return false
	})
	return tracks
}

func appendTrackLine(tracks []episodes.Track, line string) []episodes.Track {
	line = strings.TrimSpace(line)
	title, artist, found := strings.Cut(line, " - ")
	if !found {
		return tracks
	}
	title = strings.TrimSpace(title)
	artist = strings.TrimSpace(artist)
	if title == "" || artist == "" {
		return tracks
	}
	return append(tracks, episodes.Track{Track: title, Artist: artist})
}
