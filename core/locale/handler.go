package locale

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/sagetools/sagekit/core/cookie"
	"github.com/sagetools/sagekit/core/handler"
	"github.com/sagetools/sagekit/core/response"
)

// SetLanguage handles a language switch form posted with "language" and
// "next" fields. A supported language is stored in the cookie and the client
// is redirected to next rewritten for that language; anything else redirects
// to next unchanged. next must be a local path, otherwise "/" is used.
//
// Mount it under one of the excluded prefixes, e.g. POST /set-language/.
func SetLanguage[C handler.Context](rw *Rewriter, cookies *cookie.Manager) handler.HandlerFunc[C] {
	return func(ctx C) handler.Response {
		r := ctx.Request()
		if err := r.ParseForm(); err != nil {
			return response.Error(response.ErrBadRequest.WithMessage("invalid form data"))
		}

		lang := strings.TrimSpace(r.PostForm.Get("language"))
		if lang == "" {
			lang = rw.Default()
		}
		next := localTarget(r.PostForm.Get("next"))

		if !rw.IsSupported(lang) {
			return response.Redirect(next.String())
		}

		next.Path = rw.LocalizedPath(next.Path, lang)
		target := next.String()

		return func(w http.ResponseWriter, r *http.Request) error {
			if err := rw.WriteCookie(w, cookies, lang); err != nil {
				return err
			}
			http.Redirect(w, r, target, http.StatusFound)
			return nil
		}
	}
}

// localTarget parses next and rejects anything that could leave the site.
func localTarget(next string) *url.URL {
	root := &url.URL{Path: "/"}
	if !IsLocalPath(next) {
		return root
	}
	u, err := url.Parse(next)
	if err != nil {
		return root
	}
	return &url.URL{Path: u.Path, RawQuery: u.RawQuery, Fragment: u.Fragment}
}
