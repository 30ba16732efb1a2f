// Package view renders the HTML pages. Handlers hand it a context map, it
// never talks to the store.
package view

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"maqola/platform/internal/identity"
	"maqola/platform/internal/service"
	"maqola/platform/validators"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gitlab.com/golang-commonmark/markdown"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var files embed.FS

// Raw HTML in publications is escaped, everything else is regular markdown
var md = markdown.New(markdown.HTML(false), markdown.Linkify(true), markdown.Typographer(true), markdown.MaxNesting(10))

var funcs = template.FuncMap{
	"markdown": Markdown,
	"date": func(t time.Time) string {
		return t.Format("02.01.2006 15:04")
	},
}

// Templates parses every embedded page, ready for gin's SetHTMLTemplate
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(files, "templates/*.html")
}

func Markdown(src string) template.HTML {
	return template.HTML(md.RenderToString([]byte(src)))
}

// Page renders a template. The current user is always added so the layout
// can show the right navigation.
func Page(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	data["CurrentUser"] = identity.Current(c)
	c.HTML(status, name, data)
}

// Error renders the generic error page
func Error(c *gin.Context, status int, msg string) {
	Page(c, status, "error.html", gin.H{
		"Status":    status,
		"Message":   msg,
		"RequestID": c.GetString("requestID"),
	})
}

// Internal logs err and answers 500 without leaking any detail
func Internal(c *gin.Context, err error, msg string) {
	zap.L().Error(msg, zap.Error(err), zap.String("requestID", c.GetString("requestID")))
	Error(c, http.StatusInternalServerError, "Internal server error")
}

// Reject is used by the route guards for refused requests
func Reject(c *gin.Context, status int) {
	msg := http.StatusText(status)
	if status == http.StatusUnauthorized {
		msg = "Authorization required"
	}

	Error(c, status, msg)
}

var fieldLabels = map[string]string{
	"full_name":  "Full name",
	"FullName":   "Full name",
	"email":      "Email",
	"Email":      "Email",
	"password":   "Password",
	"Password":   "Password",
	"title":      "Title",
	"Title":      "Title",
	"category":   "Category",
	"Category":   "Category",
	"annotation": "Annotation",
	"Annotation": "Annotation",
	"content":    "Content",
	"Content":    "Content",
}

func label(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}

	return field
}

// FormError turns a form binding or validation error into a message that can
// be shown next to the form. The second value is false for anything that
// isn't the user's fault.
func FormError(err error) (string, bool) {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		return label(ve.Field) + ": " + ve.Err.Error(), true
	}

	var bindErrs validator.ValidationErrors
	if errors.As(err, &bindErrs) && len(bindErrs) > 0 {
		return label(bindErrs[0].Field()) + ": " + validators.ErrFieldEmpty.Error(), true
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return "The submitted form is too large", true
	}

	return "", false
}
