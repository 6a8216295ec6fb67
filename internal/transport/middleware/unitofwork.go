package middleware

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/hr-management/internal/core/uow"
	"github.com/frahmantamala/hr-management/internal/transport"
	"github.com/frahmantamala/hr-management/pkg/logger"
	"gorm.io/gorm"
)

// UnitOfWork gives every mutating request one unit of work. The transaction
// is opened by the first repository call, so a request rejected before it
// reaches persistence never takes a connection. The response is buffered and
// only released after the commit, so a client never sees success for a write
// that was rolled back. Handler statuses of 400 and above roll back.
func UnitOfWork(db *gorm.DB, lg *slog.Logger) func(http.Handler) http.Handler {
	base := transport.NewBaseHandler(lg)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !mutating(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			ctx, unit := uow.Begin(r.Context(), db)
			defer unit.Rollback()

			bw := &bufferedWriter{header: w.Header(), status: http.StatusOK}
			next.ServeHTTP(bw, r.WithContext(ctx))

			if bw.status >= http.StatusBadRequest {
				unit.Rollback()
				bw.flush(w)
				return
			}

			if err := unit.Commit(); err != nil {
				logger.From(r.Context()).Error("failed to commit transaction", "error", err)
				base.WriteError(w, http.StatusInternalServerError, "internal server error")
				return
			}
			bw.flush(w)
		})
	}
}

func mutating(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	return true
}

// bufferedWriter holds the handler's response until the transaction settles.
type bufferedWriter struct {
	header      http.Header
	status      int
	wroteHeader bool
	body        bytes.Buffer
}

func (b *bufferedWriter) Header() http.Header {
	return b.header
}

func (b *bufferedWriter) WriteHeader(code int) {
	if b.wroteHeader {
		return
	}
	b.status = code
	b.wroteHeader = true
}

func (b *bufferedWriter) Write(p []byte) (int, error) {
	if !b.wroteHeader {
		b.WriteHeader(http.StatusOK)
	}
	return b.body.Write(p)
}

func (b *bufferedWriter) flush(w http.ResponseWriter) {
	w.WriteHeader(b.status)
	_, _ = w.Write(b.body.Bytes())
}
