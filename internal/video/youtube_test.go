package video

import "testing"

func TestYouTubeID(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?list=PL123&v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ?t=42", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://vimeo.com/123456", ""},
		{"https://www.youtube.com/playlist?list=PL123", ""},
		{"not a url", ""},
		{"", ""},
	}

	for _, tc := range cases {
		if got := YouTubeID(tc.url); got != tc.want {
			t.Errorf("YouTubeID(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}

func TestYouTubeThumbnail(t *testing.T) {
	got := YouTubeThumbnail("https://youtu.be/dQw4w9WgXcQ")
	want := "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg"
	if got != want {
		t.Errorf("thumbnail = %q, want %q", got, want)
	}

	if got := YouTubeThumbnail("https://example.com/clip.mp4"); got != "" {
		t.Errorf("unrecognized host should yield no thumbnail, got %q", got)
	}
}
