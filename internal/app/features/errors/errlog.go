// internal/app/features/errors/errlog.go
package errors

import (
	goerrors "errors"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"

	"github.com/nursehub/nursehub/internal/app/gateway"
	"github.com/nursehub/nursehub/internal/app/system/viewdata"
	"github.com/nursehub/nursehub/internal/app/system/views"
)

// SessionExpirer is the forced sign-out hook. In production it is the
// session manager; tests substitute a recorder.
type SessionExpirer interface {
	ExpireAndRedirect(w http.ResponseWriter, r *http.Request)
}

// ErrorLogger pairs the operational log line with the user-facing error
// page so both always happen together. Feature handlers hold one and
// route every failure through it.
type ErrorLogger struct {
	log      *zap.Logger
	sessions SessionExpirer
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger, sessions SessionExpirer) *ErrorLogger {
	return &ErrorLogger{log: logger, sessions: sessions}
}

// LogServerError logs err at error level and renders the error page with
// userMsg and a back link.
func (l *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	l.log.Error(logMsg, zap.Error(err), zap.String("path", r.URL.Path))
	w.WriteHeader(http.StatusInternalServerError)
	l.renderPage(w, r, userMsg, backURL)
}

// LogBadRequest logs err at warn level and renders the error page with
// userMsg and a back link.
func (l *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	l.log.Warn(logMsg, zap.Error(err), zap.String("path", r.URL.Path))
	w.WriteHeader(http.StatusBadRequest)
	l.renderPage(w, r, userMsg, backURL)
}

// GatewayError handles a failure from the backend API. An expired
// authorization triggers the global forced sign-out; everything else is
// logged and rendered with the error's user-facing message. Handlers
// must route every gateway failure through here so the authorization
// rule holds at every call site.
func (l *ErrorLogger) GatewayError(w http.ResponseWriter, r *http.Request, logMsg string, err error, backURL string) {
	if goerrors.Is(err, gateway.ErrAuthExpired) {
		l.sessions.ExpireAndRedirect(w, r)
		return
	}
	l.log.Error(logMsg, zap.Error(err), zap.String("path", r.URL.Path))
	w.WriteHeader(http.StatusBadGateway)
	l.renderPage(w, r, gateway.Message(err), backURL)
}

func (l *ErrorLogger) renderPage(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, "Something went wrong", views.Feed),
		Message: msg,
	}
	if backURL != "" {
		data.BackURL = backURL
	}
	templates.Render(w, r, "error_page", data)
}
