package http

import (
	"html/template"
	"net/http"
)

// The pages themselves are rendered by the front end; these stubs give the
// guard real auth-only routes to redirect from.
var pageTemplate = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body><main id="app" data-page="{{.Page}}" data-callback="{{.CallbackURL}}"></main></body>
</html>
`))

type pageData struct {
	Title       string
	Page        string
	CallbackURL string
}

func (h *Handler) signInPage(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, pageData{Title: "Sign in", Page: "signin", CallbackURL: r.URL.Query().Get("callbackUrl")})
}

func (h *Handler) signUpPage(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, pageData{Title: "Sign up", Page: "signup"})
}

func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		h.logger.Err(err).Str("page", data.Page).Msg("error rendering page")
	}
}
