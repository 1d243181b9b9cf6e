package colorcache

import "net/url"

// strippedParams are query parameters that only select a rendition size or
// quality and do not change pixel content.
var strippedParams = []string{"w", "q"}

// ResolveURL makes raw absolute against origin. Malformed or already absolute
// URLs, and any URL when origin is nil, are returned unchanged.
func ResolveURL(origin *url.URL, raw string) string {
	if origin == nil {
		return raw
	}
	ref, err := url.Parse(raw)
	if err != nil || ref.IsAbs() {
		return raw
	}
	return origin.ResolveReference(ref).String()
}

// NormalizeKey resolves raw against origin and strips size/quality query
// parameters, so the same artwork requested at thumbnail and hero sizes maps
// to one key. Malformed URLs are returned unchanged.
//
// The remaining parameters are re-encoded in sorted order, so a key is not
// necessarily the URL the image was fetched with. Only compare keys with
// keys.
func NormalizeKey(origin *url.URL, raw string) string {
	u, err := url.Parse(ResolveURL(origin, raw))
	if err != nil {
		return raw
	}

	q := u.Query()
	for _, p := range strippedParams {
		q.Del(p)
	}
	u.RawQuery = q.Encode()
	return u.String()
}
