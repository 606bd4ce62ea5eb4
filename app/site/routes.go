package site

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sagetools/sagekit/core/binder"
	"github.com/sagetools/sagekit/core/handler"
	"github.com/sagetools/sagekit/core/health"
	"github.com/sagetools/sagekit/core/i18n"
	"github.com/sagetools/sagekit/core/locale"
	"github.com/sagetools/sagekit/core/logger"
	"github.com/sagetools/sagekit/core/response"
	"github.com/sagetools/sagekit/core/router"
	"github.com/sagetools/sagekit/core/slugger"
	"github.com/sagetools/sagekit/core/validator"
	"github.com/sagetools/sagekit/middleware"
)

type ctx = *router.Context

func (a *App) routes() {
	r := a.router

	r.Get("/health/live", health.Liveness[ctx])
	r.Get("/health/ready", health.Readiness[ctx](a.log, a.checks...))
	r.Get("/ping", health.NoContent[ctx])

	// Form endpoints posted from the pages.
	r.Group(func(r router.Router[ctx]) {
		r.Use(
			middleware.CSRFFromEnv[ctx](a.cfg.CSRF, a.cookies, a.log),
			middleware.SessionWithConfig(middleware.SessionConfig[ctx, preferences]{
				Transport: a.sessions,
				Logger:    a.log,
			}),
			a.i18n(),
		)
		r.Post("/set-language/", locale.SetLanguage[ctx](a.rewriter, a.cookies))
		r.Post("/set-timezone/", a.setTimezone)
	})

	r.Group(func(r router.Router[ctx]) {
		r.Use(a.i18n())
		r.Post("/api/articles", a.createArticle)
		r.Get("/api/articles/{id}", a.getArticle)
		r.Put("/api/articles/{id}", a.updateArticle)
	})

	// Pages are registered with and without a language segment. The catch-all
	// route lets the locale middleware canonicalize paths like "/es".
	r.Group(func(r router.Router[ctx]) {
		r.Use(
			middleware.LocaleWithConfig[ctx](middleware.LocaleConfig{
				Rewriter: a.rewriter,
				Cookies:  a.cookies,
				Logger:   a.log,
			}),
			middleware.CSRFFromEnv[ctx](a.cfg.CSRF, a.cookies, a.log),
			middleware.SessionWithConfig(middleware.SessionConfig[ctx, preferences]{
				Transport: a.sessions,
				Logger:    a.log,
			}),
			middleware.TimezoneWithConfig[ctx](middleware.TimezoneConfig{
				Source: middleware.SessionTimezone(func(p preferences) string { return p.Timezone }),
				Logger: a.log,
			}),
			a.i18n(),
		)
		r.Get("/", a.home)
		r.Get("/{lang}/", a.home)
		r.Get("/articles/{slug}", a.showArticle)
		r.Get("/{lang}/articles/{slug}", a.showArticle)
		r.Get("/*", a.notFound)
	})
}

// i18n follows the locale middleware on pages and Accept-Language elsewhere.
func (a *App) i18n() handler.Middleware[ctx] {
	return middleware.I18n[ctx](a.translations, translationNamespace)
}

func translator(c ctx) *i18n.Translator {
	if tr, ok := middleware.GetTranslator(c); ok {
		return tr
	}
	panic("site: i18n middleware is not installed")
}

func (a *App) home(c ctx) handler.Response {
	if lang := c.Param("lang"); lang != "" && !a.rewriter.IsSupported(lang) {
		return a.notFound(c)
	}

	tr := translator(c)
	lang, _ := middleware.GetLanguage(c)
	lines := []string{
		a.cfg.AppName,
		tr.T("language", i18n.M{"code": lang, "name": a.rewriter.DisplayName(lang)}),
	}
	if tz, ok := middleware.GetTimezone(c); ok {
		lines = append(lines, tr.T("time", i18n.M{
			"time": time.Now().In(tz).Format(time.RFC3339),
			"zone": tz.String(),
		}))
	}
	if field, token := middleware.CSRFField(c); token != "" {
		lines = append(lines, tr.T("timezone_form", i18n.M{
			"action": "/set-timezone/",
			"field":  field,
			"token":  token,
		}))
	}
	if mode, ok := middleware.GetMaintenanceMode(c); ok && mode.ComingSoon {
		lines = append(lines, tr.T("coming_soon"))
	}
	return response.String(strings.Join(lines, "\n") + "\n")
}

func (a *App) showArticle(c ctx) handler.Response {
	if lang := c.Param("lang"); lang != "" && !a.rewriter.IsSupported(lang) {
		return a.notFound(c)
	}

	slug := c.Param("slug")
	free, err := a.resolver.IsUnique(c, slug, "")
	if err != nil {
		return a.apiError(c, err)
	}
	if free {
		return a.notFound(c)
	}

	tr := translator(c)
	lang, _ := middleware.GetLanguage(c)
	return response.String(tr.T("article", i18n.M{"slug": slug}) + "\n" +
		tr.T("language", i18n.M{"code": lang, "name": a.rewriter.DisplayName(lang)}) + "\n")
}

func (a *App) notFound(ctx) handler.Response {
	return response.Error(response.ErrNotFound)
}

type timezoneForm struct {
	Timezone string `form:"timezone" sanitize:"trim" validate:"required;timezone"`
	Next     string `form:"next" sanitize:"trim"`
}

// setTimezone stores a validated IANA zone name in the visitor session and
// returns to next when it is a local path.
func (a *App) setTimezone(c ctx) handler.Response {
	var form timezoneForm
	if err := binder.Bind(c.Request(), &form, binder.Form()); err != nil {
		return a.apiError(c, err)
	}

	sess := middleware.MustGetSession[preferences](c)
	data := sess.Data
	data.Timezone = form.Timezone
	sess.SetData(data)
	middleware.SetSession(c, sess)

	a.log.DebugContext(c, "timezone updated",
		logger.Action("set_timezone"),
		logger.Key("timezone", form.Timezone),
	)

	if form.Next != "" && locale.IsLocalPath(form.Next) {
		return response.Redirect(form.Next)
	}
	return response.NoContent()
}

type articleRequest struct {
	Title string `json:"title" sanitize:"strip_html,text,max:500" validate:"max:500"`
	Slug  string `json:"slug,omitempty" sanitize:"text,max:255" validate:"max:255"`
}

type articleResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Slug        string            `json:"slug"`
	SlugChanged bool              `json:"slug_changed,omitempty"`
	URLs        map[string]string `json:"urls"`
}

func (a *App) createArticle(c ctx) handler.Response {
	req, err := bindArticle(c)
	if err != nil {
		return a.apiError(c, err)
	}

	e, err := a.resolver.Save(c, slugger.Entity{Title: req.Title, Slug: req.Slug})
	if err != nil {
		return a.apiError(c, err)
	}
	a.log.InfoContext(c, "article created", logger.ID("id", e.ID), logger.Slug(e.Slug))
	return response.JSONWithStatus(a.article(e, false), http.StatusCreated)
}

func (a *App) getArticle(c ctx) handler.Response {
	e, err := a.store.Get(c, c.Param("id"))
	if err != nil {
		return a.apiError(c, err)
	}
	return response.JSON(a.article(e, false))
}

func (a *App) updateArticle(c ctx) handler.Response {
	id := c.Param("id")
	req, err := bindArticle(c)
	if err != nil {
		return a.apiError(c, err)
	}
	if _, err := a.store.Get(c, id); err != nil {
		return a.apiError(c, err)
	}

	e := slugger.Entity{ID: id, Title: req.Title, Slug: req.Slug}
	next, err := a.resolver.ResolveEntity(c, e)
	if err != nil {
		return a.apiError(c, err)
	}
	changed, err := a.resolver.HasChanged(c, id, next)
	if err != nil {
		return a.apiError(c, err)
	}

	saved, err := a.resolver.Save(c, e)
	if err != nil {
		return a.apiError(c, err)
	}
	if changed {
		a.log.InfoContext(c, "article slug changed", logger.ID("id", id), logger.Slug(saved.Slug))
	}
	return response.JSON(a.article(saved, changed))
}

func (a *App) article(e slugger.Entity, changed bool) articleResponse {
	urls := make(map[string]string, len(a.rewriter.Languages()))
	for _, code := range a.rewriter.Languages().Codes() {
		urls[code] = a.rewriter.LocalizedPath("/articles/"+e.Slug, code)
	}
	return articleResponse{ID: e.ID, Title: e.Title, Slug: e.Slug, SlugChanged: changed, URLs: urls}
}

// bindArticle decodes the JSON body. Either a title or a slug is required.
func bindArticle(c ctx) (articleRequest, error) {
	var req articleRequest
	if err := binder.Bind(c.Request(), &req, binder.JSON()); err != nil {
		return req, err
	}
	if req.Title == "" && req.Slug == "" {
		return req, validator.ValidationErrors{validator.Required("title", "").Error}
	}
	return req, nil
}

type validationResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func (a *App) apiError(c ctx, err error) handler.Response {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		tr := translator(c)
		fields := make(map[string]string, len(verrs))
		for _, e := range verrs {
			name := strings.ToLower(e.Field)
			if _, ok := fields[name]; ok {
				continue
			}
			values := i18n.M{}
			for k, v := range e.TranslationValues {
				values[k] = v
			}
			values["field"] = name
			msg := tr.T(e.TranslationKey, values)
			if msg == e.TranslationKey {
				msg = name + ": " + e.Message
			}
			fields[name] = msg
		}
		return response.JSONWithStatus(validationResponse{Error: "validation_failed", Fields: fields}, http.StatusUnprocessableEntity)
	case binder.IsMediaTypeError(err):
		return response.Error(response.ErrUnsupportedMediaType)
	case errors.Is(err, binder.ErrFailedToParseJSON), errors.Is(err, binder.ErrFailedToParseForm):
		return response.Error(response.ErrBadRequest.WithMessage("malformed request body"))
	case errors.Is(err, slugger.ErrNotFound):
		return response.Error(response.ErrNotFound)
	case errors.Is(err, slugger.ErrEmptySlug):
		return response.Error(response.ErrBadRequest.WithMessage("title produces an empty slug"))
	case errors.Is(err, slugger.ErrTooManyAttempts):
		return response.Error(response.ErrConflict.WithMessage("no free slug available"))
	case errors.Is(err, slugger.ErrStoreUnavailable):
		return response.Error(response.ErrServiceUnavailable)
	}
	return response.Error(err)
}
