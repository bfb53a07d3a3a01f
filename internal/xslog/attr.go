package xslog

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/garrettladley/huddle/internal/version"
	"github.com/garrettladley/huddle/internal/xhttp"
)

const (
	keyError = "error"
)

func Error(err error) slog.Attr {
	return slog.String(keyError, err.Error())
}

func RequestID(requestID string) slog.Attr {
	const requestIDKey = "request_id"
	return slog.String(requestIDKey, requestID)
}

func Stack() slog.Attr {
	const stackKey = "stack"
	return slog.String(stackKey, string(debug.Stack()))
}

func HTTPStatus(status int) slog.Attr {
	const statusKey = "status"
	return slog.Int(statusKey, status)
}

func Duration(duration time.Duration) slog.Attr {
	const durationKey = "duration"
	return slog.Duration(durationKey, duration)
}

func requestMethod(r *http.Request) slog.Attr {
	const methodKey = "method"
	return slog.String(methodKey, r.Method)
}

func requestPath(r *http.Request) slog.Attr {
	const pathKey = "path"
	return slog.String(pathKey, r.URL.Path)
}

func RequestIP(r *http.Request) slog.Attr {
	const ipKey = "ip"
	return slog.String(ipKey, xhttp.GetRequestIP(r))
}

func Version() slog.Attr {
	const versionKey = "version"
	return slog.String(versionKey, version.Get())
}

func Count(count int) slog.Attr {
	const countKey = "count"
	return slog.Int(countKey, count)
}

func NotificationID(id string) slog.Attr {
	const notificationIDKey = "notification_id"
	return slog.String(notificationIDKey, id)
}

func GroupID(id string) slog.Attr {
	const groupIDKey = "group_id"
	return slog.String(groupIDKey, id)
}

func UserID(id string) slog.Attr {
	const userIDKey = "user_id"
	return slog.String(userIDKey, id)
}

func Title(title string) slog.Attr {
	const titleKey = "title"
	return slog.String(titleKey, title)
}

func Interval(d time.Duration) slog.Attr {
	const intervalKey = "interval"
	return slog.Duration(intervalKey, d)
}

func Backend(name string) slog.Attr {
	const backendKey = "backend"
	return slog.String(backendKey, name)
}

func Method(name string) slog.Attr {
	const methodKey = "notify_method"
	return slog.String(methodKey, name)
}

func Key(key string) slog.Attr {
	const keyKey = "key"
	return slog.String(keyKey, key)
}

func Fetched(n int) slog.Attr {
	const fetchedKey = "fetched"
	return slog.Int(fetchedKey, n)
}

func Failed(n int) slog.Attr {
	const failedKey = "failed"
	return slog.Int(failedKey, n)
}
