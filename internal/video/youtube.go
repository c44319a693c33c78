// Package video extracts identifiers from recognized video host URLs.
// References are otherwise opaque: nothing is fetched or validated beyond
// the URL shape.
package video

import (
	"fmt"
	"regexp"
)

// videoID matches the 11-character YouTube video identifier out of the URL
// shapes questions link to: watch?v=, youtu.be/, embed/ and shorts/.
var videoID = regexp.MustCompile(
	`(?:youtube\.com/(?:watch\?(?:.*&)?v=|embed/|shorts/)|youtu\.be/)([A-Za-z0-9_-]{11})`)

// YouTubeID returns the video id embedded in url, or "" when the URL does
// not match a known shape.
func YouTubeID(url string) string {
	m := videoID.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}

// YouTubeThumbnail returns the thumbnail URL for a recognized video link,
// or "" when the link shape is not recognized.
func YouTubeThumbnail(url string) string {
	id := YouTubeID(url)
	if id == "" {
		return ""
	}
	return fmt.Sprintf("https://img.youtube.com/vi/%s/hqdefault.jpg", id)
}
