package seoengine

import "testing"

func TestLazyLoadImages(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{
			name: "plain image",
			in:   `<p><img src="a.jpg" alt="A"></p>`,
			want: `<p><img loading="lazy" src="a.jpg" alt="A"></p>`,
		},
		{
			name: "existing loading attribute",
			in:   `<img src="a.jpg" loading="eager">`,
			want: `<img src="a.jpg" loading="eager">`,
		},
		{
			name: "logo is skipped",
			in:   `<img class="site-logo" src="logo.png">`,
			want: `<img class="site-logo" src="logo.png">`,
		},
		{
			name: "icon is skipped",
			in:   `<IMG SRC="/icons/rss.svg">`,
			want: `<IMG SRC="/icons/rss.svg">`,
		},
		{
			name: "self-closing and multiple",
			in:   `<img src="1.jpg"/><img src="2.jpg" />`,
			want: `<img loading="lazy" src="1.jpg"/><img loading="lazy" src="2.jpg" />`,
		},
		{
			name: "no images",
			in:   `<p>text</p>`,
			want: `<p>text</p>`,
		},
		{
			name: "imgur is not an img tag",
			in:   `<imgur src="x">`,
			want: `<imgur src="x">`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LazyLoadImages(tt.in); got != tt.want {
				t.Errorf("LazyLoadImages(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
