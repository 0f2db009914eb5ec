package seoengine

import "regexp"

var (
	reImgTag      = regexp.MustCompile(`(?i)<img\b[^>]*>`)
	reLoadingAttr = regexp.MustCompile(`(?i)\sloading\s*=`)
	reLogoOrIcon  = regexp.MustCompile(`(?i)logo|icon`)
)

// LazyLoadImages adds loading="lazy" to every <img> tag that has no loading
// attribute yet. Images whose attributes mention "logo" or "icon" are left
// alone; they are usually above the fold.
func LazyLoadImages(content string) string {
	return reImgTag.ReplaceAllStringFunc(content, func(tag string) string {
		attrs := tag[len("<img"):]
		if reLoadingAttr.MatchString(attrs) || reLogoOrIcon.MatchString(attrs) {
			return tag
		}
		return tag[:len("<img")] + ` loading="lazy"` + attrs
	})
}
